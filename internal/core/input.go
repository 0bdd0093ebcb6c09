package core

// Action represents a semantic control, abstracted from physical key presses.
// The simulation only consumes ActionUp and ActionDown. The host reads
// ActionServe to serve early after a miss and ActionQuit to end the run.
type Action int

const (
	ActionNone  Action = iota
	ActionUp           // W, Up arrow - move paddle up
	ActionDown         // S, Down arrow - move paddle down
	ActionServe        // Space - serve now instead of waiting out the serve delay
	ActionQuit         // Q - stop the host loop after this tick
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionServe:
		return "Serve"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the pressed state of every control during one simulation tick.
// Bits are indexed by Action, so the frame is a plain value with no allocation.
type InputFrame struct {
	held uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= 32 {
		return
	}
	f.held |= 1 << uint(a)
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= 32 {
		return false
	}
	return f.held&(1<<uint(a)) != 0
}

// Direction collapses the up/down controls into a signal in {-1, 0, +1}.
// Holding both cancels out.
func (f InputFrame) Direction() float64 {
	var d float64
	if f.Has(ActionUp) {
		d++
	}
	if f.Has(ActionDown) {
		d--
	}
	return d
}
