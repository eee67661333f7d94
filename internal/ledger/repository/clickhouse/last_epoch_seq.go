package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// LastEpochSeq returns the highest archived epoch sequence number, or zero
// when the archive is empty.
func (r *Repository) LastEpochSeq(ctx context.Context) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("last_epoch_seq", err, start)
	}()

	const query = `
SELECT coalesce(max(seq), toUInt64(0)) AS last_seq
FROM ledger_epochs`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("query last epoch seq: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var seq uint64
	if !rows.Next() {
		return 0, fmt.Errorf("last epoch seq not found")
	}

	if err = rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan last epoch seq: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate last epoch seq: %w", err)
	}

	return seq, nil
}
