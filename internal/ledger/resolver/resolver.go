// Package resolver selects a mutually valid subset from an unordered batch of
// candidate transactions.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/model"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/validator"
	"github.com/goodnatureofminers/ledgercore7000-backend/pkg/workerpool"
)

// ErrBatchTooLarge is returned when a batch exceeds the resolver's size cap.
var ErrBatchTooLarge = errors.New("candidate batch exceeds resolver capacity")

const defaultMaxBatchSize = 10_000

// precheckWorkerCount bounds the parallel structural pre-check.
// It is a var to allow overriding in tests.
var precheckWorkerCount = 8

// Result is the outcome of resolving one batch.
type Result struct {
	// Accepted transactions in acceptance order. Each is valid against the
	// epoch-start set extended by the effects of all earlier entries; applying
	// the sequence in order is equivalent to validating and applying one at a
	// time.
	Accepted []*model.Transaction
	// TotalFee is the summed fee of the accepted set, measured against the
	// working snapshot at each acceptance.
	TotalFee btcutil.Amount
	// Passes is the number of fixed-point scans performed.
	Passes int
}

// Resolver finds a maximal mutually valid subset of a candidate batch using an
// iterative fixed-point scan over a private snapshot. The authoritative set
// handed to Resolve is never mutated.
//
// Worst case is O(n^2) validation calls when candidates keep becoming valid
// across passes; the batch cap keeps that bounded. An exhaustive search over
// candidate orderings blows up factorially and is deliberately not offered.
type Resolver struct {
	validator    *validator.Validator
	ordering     Ordering
	maxBatchSize int
	logger       *zap.Logger
}

// New constructs a Resolver with the given ordering strategy. maxBatchSize
// caps accepted batch sizes; values <= 0 select the default cap.
func New(v *validator.Validator, ordering Ordering, maxBatchSize int, logger *zap.Logger) *Resolver {
	if ordering == nil {
		ordering = OrderArrival
	}
	if maxBatchSize <= 0 {
		maxBatchSize = defaultMaxBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		validator:    v,
		ordering:     ordering,
		maxBatchSize: maxBatchSize,
		logger:       logger,
	}
}

// Resolve deduplicates candidates, orders them with the configured strategy,
// and runs the fixed-point acceptance loop against a private clone of
// authoritative. Nil and structurally broken candidates are dropped silently;
// oversized batches fail with ErrBatchTooLarge.
func (r *Resolver) Resolve(ctx context.Context, candidates []*model.Transaction, authoritative *model.UTXOSet) (*Result, error) {
	if len(candidates) > r.maxBatchSize {
		return nil, fmt.Errorf("%w: %d candidates, cap %d", ErrBatchTooLarge, len(candidates), r.maxBatchSize)
	}

	deduped := dedupe(candidates)
	remaining, err := r.precheck(ctx, deduped)
	if err != nil {
		return nil, err
	}

	snapshot := authoritative.Clone()
	remaining = r.ordering(remaining, r.validator, snapshot)

	working := snapshot.Clone()
	result := &Result{}
	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Passes++

		acceptedThisPass := 0
		next := remaining[:0]
		for _, tx := range remaining {
			if !r.validator.Validate(tx, working) {
				next = append(next, tx)
				continue
			}
			fee := r.validator.Fee(tx, working)
			r.validator.Apply(tx, working)
			result.Accepted = append(result.Accepted, tx)
			result.TotalFee += fee
			acceptedThisPass++
		}
		remaining = next
		if acceptedThisPass == 0 {
			break
		}
	}

	r.logger.Debug("batch resolved",
		zap.Int("candidates", len(candidates)),
		zap.Int("accepted", len(result.Accepted)),
		zap.Int("passes", result.Passes),
		zap.Int64("total_fee", int64(result.TotalFee)),
	)
	return result, nil
}

// dedupe collapses candidates sharing a content identifier to the first-seen
// representative and drops nil entries, preserving arrival order.
func dedupe(candidates []*model.Transaction) []*model.Transaction {
	seen := make(map[chainhash.Hash]struct{}, len(candidates))
	deduped := make([]*model.Transaction, 0, len(candidates))
	for _, tx := range candidates {
		if tx == nil {
			continue
		}
		id := tx.TxID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, tx)
	}
	return deduped
}

// precheck drops candidates that fail snapshot-independent rules (intra-tx
// double spend, negative output value) in parallel. Snapshot-dependent rules
// stay in the serial scan, where tentative acceptances are visible.
func (r *Resolver) precheck(ctx context.Context, txs []*model.Transaction) ([]*model.Transaction, error) {
	if len(txs) == 0 {
		return txs, nil
	}

	workers := precheckWorkerCount
	if workers > len(txs) {
		workers = len(txs)
	}

	rejected := make([]bool, len(txs))
	indexes := make([]int, len(txs))
	for i := range indexes {
		indexes[i] = i
	}
	err := workerpool.Process(ctx, workers, indexes, func(_ context.Context, i int) error {
		tx := txs[i]
		rejected[i] = validator.HasDoubleSpend(tx) || validator.HasNegativeOutput(tx)
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}

	kept := txs[:0]
	for i, tx := range txs {
		if rejected[i] {
			r.logger.Debug("candidate dropped in structural pre-check", zap.String("txid", tx.TxID().String()))
			continue
		}
		kept = append(kept, tx)
	}
	return kept, nil
}
