// Package service runs the epoch processing loop and archives its results.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/clock"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/epoch"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/model"
	"github.com/goodnatureofminers/ledgercore7000-backend/pkg/batcher"
	"github.com/goodnatureofminers/ledgercore7000-backend/pkg/safe"
)

// ErrPendingBufferFull is returned by Submit when the pending buffer cannot
// take more candidates before the next epoch drains it.
var ErrPendingBufferFull = errors.New("pending transaction buffer is full")

// EpochWorker buffers submitted candidate transactions and periodically
// processes them as one epoch, archiving the results.
type EpochWorker struct {
	handler  EpochHandler
	repo     ArchiveRepository
	metrics  EpochWorkerMetrics
	logger   *zap.Logger
	sleep    func(context.Context, time.Duration) error
	interval time.Duration

	mu         sync.Mutex
	pending    []*model.Transaction
	batchLimit int
	pendingCap int
	seq        uint64

	epochBatcher    *batcher.Batcher[model.EpochRecord]
	acceptedBatcher *batcher.Batcher[model.AcceptedTransaction]
}

// NewEpochWorker builds an EpochWorker. repo may be nil, which disables
// archiving; interval, batchLimit and pendingCap fall back to defaults when
// <= 0. batchLimit bounds how many candidates a single epoch drains and must
// not exceed the resolver's batch cap, or epochs over full buffers would fail.
func NewEpochWorker(
	handler EpochHandler,
	repo ArchiveRepository,
	metrics EpochWorkerMetrics,
	interval time.Duration,
	batchLimit int,
	pendingCap int,
	logger *zap.Logger,
) (*EpochWorker, error) {
	if handler == nil {
		return nil, errors.New("epoch handler is required")
	}
	if metrics == nil {
		return nil, errors.New("epoch worker metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = defaultEpochInterval
	}
	if batchLimit <= 0 {
		batchLimit = defaultEpochBatchLimit
	}
	if pendingCap <= 0 {
		pendingCap = defaultPendingCapacity
	}

	w := &EpochWorker{
		handler:    handler,
		repo:       repo,
		metrics:    metrics,
		logger:     logger,
		sleep:      clock.SleepWithContext,
		interval:   interval,
		batchLimit: batchLimit,
		pendingCap: pendingCap,
	}
	if repo != nil {
		w.epochBatcher = batcher.New[model.EpochRecord](
			logger.Named("epochBatcher"),
			repo.InsertEpochs,
			nil,
			epochFlushThreshold,
			archiveFlushInterval,
			archiveFlushRPS,
		)
		w.acceptedBatcher = batcher.New[model.AcceptedTransaction](
			logger.Named("acceptedBatcher"),
			repo.InsertAcceptedTransactions,
			nil,
			acceptedFlushThreshold,
			archiveFlushInterval,
			archiveFlushRPS,
		)
	}
	return w, nil
}

// Submit queues candidate transactions for the next epoch and returns how many
// were queued. Nil entries are dropped here; duplicate and invalid entries are
// the resolver's business.
func (w *EpochWorker) Submit(txs ...*model.Transaction) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	queued := 0
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		if len(w.pending) >= w.pendingCap {
			return queued, fmt.Errorf("%w: cap %d", ErrPendingBufferFull, w.pendingCap)
		}
		w.pending = append(w.pending, tx)
		queued++
	}
	return queued, nil
}

// PendingLen reports the number of buffered candidates.
func (w *EpochWorker) PendingLen() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Run processes epochs on the configured interval until ctx is canceled.
func (w *EpochWorker) Run(ctx context.Context) error {
	if w.repo != nil {
		lastSeq, err := w.repo.LastEpochSeq(ctx)
		if err != nil {
			return fmt.Errorf("resume epoch sequence: %w", err)
		}
		w.mu.Lock()
		w.seq = lastSeq
		w.mu.Unlock()
		w.logger.Info("resumed epoch sequence", zap.Uint64("last_seq", lastSeq))

		w.epochBatcher.Start(ctx)
		defer w.epochBatcher.Stop()
		w.acceptedBatcher.Start(ctx)
		defer w.acceptedBatcher.Stop()
	}

	for {
		if err := w.sleep(ctx, w.interval); err != nil {
			return err
		}
		if _, err := w.RunEpoch(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			w.logger.Error("epoch failed", zap.Error(err))
		}
	}
}

// RunEpoch drains up to batchLimit candidates from the pending buffer and
// processes them as one epoch; the remainder stays queued for the next one.
// A nil result means there was nothing to process.
func (w *EpochWorker) RunEpoch(ctx context.Context) (*epoch.Result, error) {
	w.mu.Lock()
	candidates := w.pending
	if len(candidates) > w.batchLimit {
		candidates = candidates[:w.batchLimit]
		w.pending = append([]*model.Transaction(nil), w.pending[w.batchLimit:]...)
	} else {
		w.pending = nil
	}
	w.mu.Unlock()

	if len(candidates) == 0 {
		return nil, nil
	}

	started := time.Now()
	result, err := w.handler.HandleEpoch(ctx, candidates)
	if err != nil {
		w.metrics.ObserveEpoch(err, len(candidates), 0, 0, 0, started)
		return nil, fmt.Errorf("handle epoch: %w", err)
	}
	w.metrics.ObserveEpoch(nil, len(candidates), len(result.Accepted), result.Passes, int64(result.TotalFee), started)

	seq := w.nextSeq()
	w.logger.Info("epoch processed",
		zap.Uint64("seq", seq),
		zap.Int("candidates", len(candidates)),
		zap.Int("accepted", len(result.Accepted)),
		zap.Int("passes", result.Passes),
		zap.Int64("total_fee", int64(result.TotalFee)),
	)

	if err := w.archive(ctx, seq, started, len(candidates), result); err != nil {
		return result, err
	}
	return result, nil
}

func (w *EpochWorker) nextSeq() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	return w.seq
}

func (w *EpochWorker) archive(ctx context.Context, seq uint64, started time.Time, candidates int, result *epoch.Result) error {
	if w.repo == nil {
		return nil
	}

	candidateCount, err := safe.Uint32(candidates)
	if err != nil {
		return fmt.Errorf("candidate count: %w", err)
	}
	acceptedCount, err := safe.Uint32(len(result.Accepted))
	if err != nil {
		return fmt.Errorf("accepted count: %w", err)
	}

	record := model.EpochRecord{
		Seq:        seq,
		StartedAt:  started.UTC(),
		Duration:   time.Since(started),
		Candidates: candidateCount,
		Accepted:   acceptedCount,
		TotalFee:   int64(result.TotalFee),
	}
	if err := w.epochBatcher.Add(ctx, record); err != nil {
		return fmt.Errorf("queue epoch record: %w", err)
	}

	for position, tx := range result.Accepted {
		pos, err := safe.Uint32(position)
		if err != nil {
			return fmt.Errorf("accepted position: %w", err)
		}
		inputCount, err := safe.Uint32(len(tx.Inputs))
		if err != nil {
			return fmt.Errorf("input count: %w", err)
		}
		outputCount, err := safe.Uint32(len(tx.Outputs))
		if err != nil {
			return fmt.Errorf("output count: %w", err)
		}

		row := model.AcceptedTransaction{
			EpochSeq:    seq,
			Position:    pos,
			TxID:        tx.TxID().String(),
			Fee:         int64(result.Fees[position]),
			InputCount:  inputCount,
			OutputCount: outputCount,
		}
		if err := w.acceptedBatcher.Add(ctx, row); err != nil {
			return fmt.Errorf("queue accepted transaction: %w", err)
		}
	}
	return nil
}
