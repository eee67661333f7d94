package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/model"
)

// InsertEpochs stores epoch summary rows in ClickHouse.
func (r *Repository) InsertEpochs(ctx context.Context, epochs []model.EpochRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_epochs", err, start)
	}()

	if len(epochs) == 0 {
		return nil
	}

	const query = `
INSERT INTO ledger_epochs (
	seq,
	started_at,
	duration_ms,
	candidates,
	accepted,
	total_fee
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare epochs batch: %w", err)
	}

	for _, epoch := range epochs {
		if err = batch.Append(
			epoch.Seq,
			epoch.StartedAt,
			uint64(epoch.Duration.Milliseconds()),
			epoch.Candidates,
			epoch.Accepted,
			epoch.TotalFee,
		); err != nil {
			return fmt.Errorf("append epoch: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert epochs: %w", err)
	}
	return nil
}
