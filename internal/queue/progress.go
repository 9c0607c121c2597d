package queue

import "time"

// Progress is a point-in-time snapshot of a [GenericQueue]'s processing.
type Progress struct {
	HasStarted      bool
	HasFinished     bool
	StartTime       time.Time
	FinishTime      time.Time
	ProgressPct     float64
	TotalItems      int
	ProcessedItems  int
	InProgressItems int
	SuccessItems    int
	SkippedItems    int
	FailedItems     int
	ETA             time.Time
	TimeLeft        time.Duration
	ItemsPerSec     float64
}
