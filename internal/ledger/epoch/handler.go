// Package epoch owns the authoritative UTXO set and advances it one epoch at a
// time.
package epoch

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/btcutil"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/model"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/resolver"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/validator"
)

// Result is the outcome of one committed epoch.
type Result struct {
	// Accepted transactions in commit order.
	Accepted []*model.Transaction
	// Fees per accepted transaction, aligned with Accepted.
	Fees []btcutil.Amount
	// TotalFee collected by the accepted set.
	TotalFee btcutil.Amount
	// Passes the resolver needed to reach its fixed point.
	Passes int
}

// Handler owns the authoritative UTXO set. Epochs are strictly serialized: one
// HandleEpoch call completes before the set is visible to the next.
type Handler struct {
	mu        sync.Mutex
	pool      *model.UTXOSet
	validator *validator.Validator
	resolver  *resolver.Resolver
	logger    *zap.Logger
}

// New constructs a Handler with an empty authoritative set.
func New(v *validator.Validator, r *resolver.Resolver, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		pool:      model.NewUTXOSet(),
		validator: v,
		resolver:  r,
		logger:    logger,
	}
}

// HandleEpoch resolves candidates against a copy of the authoritative set,
// then commits the accepted transactions to it in acceptance order. Each
// commit re-validates against the authoritative set, so the commit path stays
// safe even if the resolver's snapshot had drifted.
func (h *Handler) HandleEpoch(ctx context.Context, candidates []*model.Transaction) (*Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	resolved, err := h.resolver.Resolve(ctx, candidates, h.pool)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Accepted: make([]*model.Transaction, 0, len(resolved.Accepted)),
		Passes:   resolved.Passes,
	}
	for _, tx := range resolved.Accepted {
		fee := h.validator.Fee(tx, h.pool)
		if !h.validator.ValidateAndApply(tx, h.pool) {
			// Single-threaded epochs make this unreachable; not fatal, the
			// transaction is simply not committed.
			h.logger.Error("resolved transaction failed commit re-validation",
				zap.String("txid", tx.TxID().String()))
			continue
		}
		result.Accepted = append(result.Accepted, tx)
		result.Fees = append(result.Fees, fee)
		result.TotalFee += fee
	}
	return result, nil
}

// IsValid reports whether tx is valid against the current authoritative set.
func (h *Handler) IsValid(tx *model.Transaction) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.validator.Validate(tx, h.pool)
}

// Fund seeds the authoritative set with a spendable output (genesis and test
// fixtures).
func (h *Handler) Fund(outpoint model.Outpoint, output model.Output) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pool.Add(outpoint, output)
}

// Contains reports whether outpoint is currently spendable.
func (h *Handler) Contains(outpoint model.Outpoint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pool.Contains(outpoint)
}

// Output returns the spendable output for outpoint, if present.
func (h *Handler) Output(outpoint model.Outpoint) (model.Output, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pool.Get(outpoint)
}

// Outpoints enumerates the authoritative set's outpoints deterministically.
func (h *Handler) Outpoints() []model.Outpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pool.Outpoints()
}

// Snapshot returns an independent copy of the authoritative set.
func (h *Handler) Snapshot() *model.UTXOSet {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pool.Clone()
}
