package input

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/paddle-arena/internal/core"
	"github.com/vovakirdan/paddle-arena/internal/sim"
)

// ErrInvalidScript is returned when an input script cannot be used.
var ErrInvalidScript = errors.New("input: invalid script")

func init() {
	Register("script", "replays key holds from a YAML script (--script)", func(opts Options) (Driver, error) {
		if opts.ScriptPath == "" {
			return nil, fmt.Errorf("%w: script driver needs a script path", ErrInvalidScript)
		}
		return LoadScript(opts.ScriptPath)
	})
}

// Step holds keys for the ticks in [From, To).
type Step struct {
	From  uint64 `yaml:"from"`
	To    uint64 `yaml:"to"`
	Up    bool   `yaml:"up"`
	Down  bool   `yaml:"down"`
	Serve bool   `yaml:"serve"` // Serve early while the ball is out of play
	Quit  bool   `yaml:"quit"`  // End the run
}

// Script replays a fixed sequence of key holds. Overlapping steps combine,
// so a tick covered by an up and a down step holds both keys.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// ParseScript decodes and validates a YAML input script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	for i, st := range s.Steps {
		if st.To <= st.From {
			return nil, fmt.Errorf("%w: step %d has empty range [%d, %d)", ErrInvalidScript, i, st.From, st.To)
		}
	}
	return &s, nil
}

// LoadScript reads an input script from disk.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("input: cannot read script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Script) Name() string { return "script" }

// Frame returns the keys held at tick. The snapshot is ignored, so replays
// are identical regardless of what the ball does.
func (s *Script) Frame(tick uint64, _ sim.Snapshot) core.InputFrame {
	var in core.InputFrame
	for _, st := range s.Steps {
		if tick < st.From || tick >= st.To {
			continue
		}
		if st.Up {
			in.Set(core.ActionUp)
		}
		if st.Down {
			in.Set(core.ActionDown)
		}
		if st.Serve {
			in.Set(core.ActionServe)
		}
		if st.Quit {
			in.Set(core.ActionQuit)
		}
	}
	return in
}

// Len returns the first tick after the last step.
func (s *Script) Len() uint64 {
	var end uint64
	for _, st := range s.Steps {
		end = max(end, st.To)
	}
	return end
}
