package model

import "time"

// HarvestSummary captures counters from a single batch harvest run.
type HarvestSummary struct {
	ProvidersRead int
	RequestsSent  int
	FilesWritten  int
	Skipped       int
	Failed        int
	Duration      time.Duration
}
