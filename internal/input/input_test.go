package input

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/paddle-arena/internal/core"
	"github.com/vovakirdan/paddle-arena/internal/sim"
)

func TestRegistryList(t *testing.T) {
	list := List()

	want := []string{"autopilot", "idle", "script"}
	if len(list) != len(want) {
		t.Fatalf("List() returned %d drivers, expected %d", len(list), len(want))
	}
	for i, info := range list {
		if info.Name != want[i] {
			t.Errorf("List()[%d] = %q, expected %q", i, info.Name, want[i])
		}
		if info.Description == "" {
			t.Errorf("driver %q has no description", info.Name)
		}
		if !Exists(info.Name) {
			t.Errorf("Exists(%q) = false", info.Name)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("joystick", Options{})
	if !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("Create() error = %v, expected ErrUnknownDriver", err)
	}
	if Exists("joystick") {
		t.Error("Exists() should be false for unregistered driver")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() should panic on duplicate name")
		}
	}()
	Register("idle", "again", func(Options) (Driver, error) { return Idle{}, nil })
}

func TestCreateNamesMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte("steps: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, info := range List() {
		d, err := Create(info.Name, Options{ScriptPath: path})
		if err != nil {
			t.Fatalf("Create(%q) error = %v", info.Name, err)
		}
		if d.Name() != info.Name {
			t.Errorf("Create(%q).Name() = %q", info.Name, d.Name())
		}
	}
}

func TestScriptRequiresPath(t *testing.T) {
	if _, err := Create("script", Options{}); !errors.Is(err, ErrInvalidScript) {
		t.Errorf("Create(script) error = %v, expected ErrInvalidScript", err)
	}
}

func TestIdle(t *testing.T) {
	if f := (Idle{}).Frame(10, sim.Snapshot{BallInPlay: true}); f != (core.InputFrame{}) {
		t.Error("idle driver should never press anything")
	}
}

func TestScriptFrame(t *testing.T) {
	s, err := ParseScript([]byte(`
steps:
  - from: 0
    to: 10
    up: true
  - from: 5
    to: 15
    down: true
  - from: 20
    to: 21
    up: true
`))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}

	tests := []struct {
		tick     uint64
		expected float64
	}{
		{0, 1},
		{4, 1},
		{5, 0}, // Both held
		{9, 0},
		{10, -1}, // Ranges are half-open
		{14, -1},
		{15, 0},
		{19, 0},
		{20, 1},
		{21, 0},
	}
	for _, tc := range tests {
		if got := s.Frame(tc.tick, sim.Snapshot{}).Direction(); got != tc.expected {
			t.Errorf("Frame(%d).Direction() = %v, expected %v", tc.tick, got, tc.expected)
		}
	}

	if s.Len() != 21 {
		t.Errorf("Len() = %d, expected 21", s.Len())
	}
}

func TestScriptServeAndQuit(t *testing.T) {
	s, err := ParseScript([]byte(`
steps:
  - from: 3
    to: 4
    serve: true
  - from: 8
    to: 9
    quit: true
`))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}

	tests := []struct {
		tick        uint64
		serve, quit bool
	}{
		{2, false, false},
		{3, true, false},
		{4, false, false},
		{8, false, true},
	}
	for _, tc := range tests {
		f := s.Frame(tc.tick, sim.Snapshot{})
		if f.Has(core.ActionServe) != tc.serve || f.Has(core.ActionQuit) != tc.quit {
			t.Errorf("Frame(%d) serve=%v quit=%v, expected %v %v",
				tc.tick, f.Has(core.ActionServe), f.Has(core.ActionQuit), tc.serve, tc.quit)
		}
		if f.Direction() != 0 {
			t.Errorf("Frame(%d).Direction() = %v, expected 0", tc.tick, f.Direction())
		}
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty range", "steps:\n  - {from: 5, to: 5, up: true}\n"},
		{"inverted range", "steps:\n  - {from: 9, to: 3}\n"},
		{"not yaml", "steps: [\n"},
		{"negative tick", "steps:\n  - {from: -1, to: 3}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tc.data)); !errors.Is(err, ErrInvalidScript) {
				t.Errorf("ParseScript() error = %v, expected ErrInvalidScript", err)
			}
		})
	}
}

func TestLoadScriptMissing(t *testing.T) {
	_, err := LoadScript(filepath.Join(t.TempDir(), "none.yaml"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadScript() error = %v, expected not-exist", err)
	}
}

func TestAutopilot(t *testing.T) {
	a := NewAutopilot(0)

	base := sim.Snapshot{
		PaddlePosition: core.V(-430, 0),
		BallPosition:   core.V(0, 100),
		BallVelocity:   core.V(-300, 0),
		BallInPlay:     true,
	}

	tests := []struct {
		name     string
		mutate   func(*sim.Snapshot)
		expected float64
	}{
		{"ball above", func(*sim.Snapshot) {}, 1},
		{"ball below", func(s *sim.Snapshot) { s.BallPosition.Y = -100 }, -1},
		{"inside dead zone", func(s *sim.Snapshot) { s.BallPosition.Y = DefaultDeadZone }, 0},
		{"ball moving away", func(s *sim.Snapshot) { s.BallVelocity.X = 300 }, 0},
		{"ball out of play", func(s *sim.Snapshot) { s.BallInPlay = false }, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view := base
			tc.mutate(&view)
			if got := a.Frame(0, view).Direction(); got != tc.expected {
				t.Errorf("Frame().Direction() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAutopilotReturnsBall(t *testing.T) {
	s := sim.DefaultSettings()
	s.MaxServeAngle = math.Pi / 12 // Keep the serve clear of the walls
	w := sim.New(s)
	w.Reset(core.RuntimeConfig{TickRate: 60, Seed: 77})
	a := NewAutopilot(0)

	snap := w.Snapshot()
	for range 600 {
		res := w.Step(a.Frame(w.Tick(), snap))
		snap = res.Snapshot
		if res.Missed() {
			break
		}
	}
	if snap.Counters.PaddleHits == 0 {
		t.Errorf("autopilot should return the serve, counters = %+v", snap.Counters)
	}
}

func TestBundledScript(t *testing.T) {
	s, err := LoadScript(filepath.Join("..", "..", "configs", "scripts", "climb.yaml"))
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}
	if s.Len() != 360 {
		t.Errorf("Len() = %d, expected 360", s.Len())
	}

	var view sim.Snapshot
	if f := s.Frame(0, view); !f.Has(core.ActionUp) {
		t.Errorf("Frame(0) should hold up")
	}
	if f := s.Frame(90, view); f.Direction() != 0 {
		t.Errorf("Frame(90).Direction() = %v, expected 0", f.Direction())
	}
	if f := s.Frame(200, view); !f.Has(core.ActionDown) {
		t.Errorf("Frame(200) should hold down")
	}
}
