package model

import "time"

// EpochRecord summarizes one processed epoch, persisted to ClickHouse.
type EpochRecord struct {
	Seq        uint64
	StartedAt  time.Time
	Duration   time.Duration
	Candidates uint32
	Accepted   uint32
	TotalFee   int64
}

// AcceptedTransaction is one committed transaction within an epoch, persisted
// to ClickHouse in commit order.
type AcceptedTransaction struct {
	EpochSeq    uint64
	Position    uint32
	TxID        string
	Fee         int64
	InputCount  uint32
	OutputCount uint32
}
