package input

import (
	"github.com/vovakirdan/paddle-arena/internal/core"
	"github.com/vovakirdan/paddle-arena/internal/sim"
)

func init() {
	Register("idle", "never presses anything; the paddle stays put", func(Options) (Driver, error) {
		return Idle{}, nil
	})
}

// Idle is a driver that holds no keys.
type Idle struct{}

func (Idle) Name() string { return "idle" }

func (Idle) Frame(uint64, sim.Snapshot) core.InputFrame {
	return core.InputFrame{}
}
