package host

import (
	"time"

	"github.com/vovakirdan/paddle-arena/internal/sim"
)

// Summary describes a finished (or interrupted) run.
type Summary struct {
	Driver    string
	Preset    string
	Seed      int64
	TickRate  int
	Ticks     uint64
	Counters  sim.Counters
	FinalHash uint64
	Realtime  bool
	Dropped   uint64 // Ticks skipped by the realtime catch-up limit
	StartedAt time.Time
	Elapsed   time.Duration
}

// SimulatedTime returns the amount of simulated time covered by the run.
func (s Summary) SimulatedTime() time.Duration {
	if s.TickRate <= 0 {
		return 0
	}
	return time.Duration(s.Ticks) * time.Second / time.Duration(s.TickRate) //#nosec G115 -- tick counts stay far below 2^63
}

// SummarySaver persists run summaries.
type SummarySaver interface {
	SaveSummary(s Summary) error
}
