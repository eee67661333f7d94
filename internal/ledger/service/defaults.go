package service

import "time"

const (
	defaultEpochInterval   = 5 * time.Second
	defaultEpochBatchLimit = 10_000
	defaultPendingCapacity = 50_000

	epochFlushThreshold    = 64
	acceptedFlushThreshold = 1000
	archiveFlushInterval   = 1 * time.Second
	archiveFlushRPS        = 10
)
