package input

import (
	"math"

	"github.com/vovakirdan/paddle-arena/internal/core"
	"github.com/vovakirdan/paddle-arena/internal/sim"
)

// DefaultDeadZone is how far the ball may drift from the paddle center
// before the autopilot reacts.
const DefaultDeadZone = 10.0

func init() {
	Register("autopilot", "tracks the ball's height while it approaches the paddle", func(opts Options) (Driver, error) {
		return NewAutopilot(opts.DeadZone), nil
	})
}

// Autopilot steers the paddle toward the ball, the way a CPU opponent would.
type Autopilot struct {
	deadZone float64
}

// NewAutopilot creates an autopilot. A non-positive dead zone uses the default.
func NewAutopilot(deadZone float64) *Autopilot {
	if !(deadZone > 0) {
		deadZone = DefaultDeadZone
	}
	return &Autopilot{deadZone: deadZone}
}

func (a *Autopilot) Name() string { return "autopilot" }

// Frame presses up or down when the ball is coming toward the paddle and its
// height is outside the dead zone around the paddle center.
func (a *Autopilot) Frame(_ uint64, view sim.Snapshot) core.InputFrame {
	var in core.InputFrame

	// Only move if ball is coming towards the paddle
	if !view.BallInPlay || view.BallVelocity.X >= 0 {
		return in
	}

	diff := view.BallPosition.Y - view.PaddlePosition.Y
	if math.Abs(diff) <= a.deadZone {
		return in
	}
	if diff > 0 {
		in.Set(core.ActionUp)
	} else {
		in.Set(core.ActionDown)
	}
	return in
}
