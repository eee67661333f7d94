// Package transport exposes the HTTP intake API for candidate transactions.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/epoch"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/model"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/service"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Submitter queues candidates and triggers epochs on demand.
	Submitter interface {
		Submit(txs ...*model.Transaction) (int, error)
		RunEpoch(ctx context.Context) (*epoch.Result, error)
	}

	// LedgerQuery reads the authoritative UTXO set.
	LedgerQuery interface {
		Outpoints() []model.Outpoint
		Output(outpoint model.Outpoint) (model.Output, bool)
	}

	// IntakeMetrics observes intake API traffic.
	IntakeMetrics interface {
		ObserveRequest(handler string, code int, started time.Time)
		ObserveSubmitted(count int)
	}
)

// IntakeHandler serves the JSON intake API.
type IntakeHandler struct {
	worker  Submitter
	ledger  LedgerQuery
	metrics IntakeMetrics
	logger  *zap.Logger
}

// NewIntakeHandler returns an IntakeHandler instance.
func NewIntakeHandler(worker Submitter, ledger LedgerQuery, metrics IntakeMetrics, logger *zap.Logger) *IntakeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeHandler{worker: worker, ledger: ledger, metrics: metrics, logger: logger}
}

// Register attaches the intake routes to mux.
func (h *IntakeHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/transactions", h.SubmitTransactions)
	mux.HandleFunc("POST /v1/epochs", h.TriggerEpoch)
	mux.HandleFunc("GET /v1/outpoints", h.ListOutpoints)
	mux.HandleFunc("GET /v1/health", h.Health)
}

// SubmitTransactions queues candidate transactions for the next epoch.
func (h *IntakeHandler) SubmitTransactions(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var dtos []TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		h.respondError(w, "submit_transactions", http.StatusBadRequest, "malformed request body", started)
		return
	}

	txs := make([]*model.Transaction, 0, len(dtos))
	for i, dto := range dtos {
		tx, err := dto.toModel()
		if err != nil {
			h.logger.Debug("rejecting malformed transaction", zap.Int("position", i), zap.Error(err))
			h.respondError(w, "submit_transactions", http.StatusBadRequest, err.Error(), started)
			return
		}
		txs = append(txs, tx)
	}

	queued, err := h.worker.Submit(txs...)
	if err != nil {
		if errors.Is(err, service.ErrPendingBufferFull) {
			h.respondError(w, "submit_transactions", http.StatusTooManyRequests, err.Error(), started)
			return
		}
		h.logger.Error("submit failed", zap.Error(err))
		h.respondError(w, "submit_transactions", http.StatusInternalServerError, "submit failed", started)
		return
	}

	h.metrics.ObserveSubmitted(queued)
	h.respondJSON(w, "submit_transactions", http.StatusAccepted, map[string]int{"queued": queued}, started)
}

// TriggerEpoch runs one epoch over the currently buffered candidates.
func (h *IntakeHandler) TriggerEpoch(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	result, err := h.worker.RunEpoch(r.Context())
	if err != nil {
		h.logger.Error("epoch trigger failed", zap.Error(err))
		h.respondError(w, "trigger_epoch", http.StatusInternalServerError, "epoch failed", started)
		return
	}
	if result == nil {
		h.respondJSON(w, "trigger_epoch", http.StatusOK, EpochResultDTO{Accepted: []string{}}, started)
		return
	}

	dto := EpochResultDTO{
		Accepted: make([]string, 0, len(result.Accepted)),
		TotalFee: int64(result.TotalFee),
		Passes:   result.Passes,
	}
	for _, tx := range result.Accepted {
		dto.Accepted = append(dto.Accepted, tx.TxID().String())
	}
	h.respondJSON(w, "trigger_epoch", http.StatusOK, dto, started)
}

// ListOutpoints returns the authoritative set's spendable outputs.
func (h *IntakeHandler) ListOutpoints(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	outpoints := h.ledger.Outpoints()
	dtos := make([]OutpointDTO, 0, len(outpoints))
	for _, outpoint := range outpoints {
		output, ok := h.ledger.Output(outpoint)
		if !ok {
			continue
		}
		dtos = append(dtos, outpointDTO(outpoint, output))
	}
	h.respondJSON(w, "list_outpoints", http.StatusOK, dtos, started)
}

// Health reports server health.
func (h *IntakeHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, "health", http.StatusOK, map[string]string{"status": "healthy"}, time.Now())
}

func (h *IntakeHandler) respondJSON(w http.ResponseWriter, handler string, code int, body any, started time.Time) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("write response", zap.String("handler", handler), zap.Error(err))
	}
	if h.metrics != nil {
		h.metrics.ObserveRequest(handler, code, started)
	}
}

func (h *IntakeHandler) respondError(w http.ResponseWriter, handler string, code int, message string, started time.Time) {
	h.respondJSON(w, handler, code, map[string]string{"error": message}, started)
}
