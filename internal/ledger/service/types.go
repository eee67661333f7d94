package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/epoch"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// EpochHandler advances the authoritative UTXO set by one epoch.
	EpochHandler interface {
		HandleEpoch(ctx context.Context, candidates []*model.Transaction) (*epoch.Result, error)
	}

	// ArchiveRepository persists epoch results.
	ArchiveRepository interface {
		InsertEpochs(ctx context.Context, epochs []model.EpochRecord) error
		InsertAcceptedTransactions(ctx context.Context, txs []model.AcceptedTransaction) error
		LastEpochSeq(ctx context.Context) (uint64, error)
	}

	// EpochWorkerMetrics observes processed epochs.
	EpochWorkerMetrics interface {
		ObserveEpoch(err error, candidates, accepted, passes int, totalFee int64, started time.Time)
	}
)
