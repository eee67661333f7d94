package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/model"
)

// InsertAcceptedTransactions stores committed transaction rows in ClickHouse.
func (r *Repository) InsertAcceptedTransactions(ctx context.Context, txs []model.AcceptedTransaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_accepted_transactions", err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	const query = `
INSERT INTO ledger_accepted_transactions (
	epoch_seq,
	position,
	txid,
	fee,
	input_count,
	output_count
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare accepted transactions batch: %w", err)
	}

	for _, tx := range txs {
		if err = batch.Append(
			tx.EpochSeq,
			tx.Position,
			tx.TxID,
			tx.Fee,
			tx.InputCount,
			tx.OutputCount,
		); err != nil {
			return fmt.Errorf("append accepted transaction: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert accepted transactions: %w", err)
	}
	return nil
}
