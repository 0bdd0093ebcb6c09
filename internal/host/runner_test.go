package host

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/paddle-arena/internal/core"
	"github.com/vovakirdan/paddle-arena/internal/input"
	"github.com/vovakirdan/paddle-arena/internal/sim"
)

// holdUp keeps the up key pressed forever.
type holdUp struct{}

func (holdUp) Name() string { return "hold-up" }

func (holdUp) Frame(uint64, sim.Snapshot) core.InputFrame {
	return core.NewInputFrame(core.ActionUp)
}

// holdUpAndServe also asks for an early serve on every tick.
type holdUpAndServe struct{}

func (holdUpAndServe) Name() string { return "hold-up-serve" }

func (holdUpAndServe) Frame(uint64, sim.Snapshot) core.InputFrame {
	return core.NewInputFrame(core.ActionUp, core.ActionServe)
}

type recordingSaver struct {
	saved []Summary
	err   error
}

func (s *recordingSaver) SaveSummary(sum Summary) error {
	s.saved = append(s.saved, sum)
	return s.err
}

// flatServe returns settings whose serve travels horizontally along y=-50,
// so a paddle parked at the top always misses it.
func flatServe() sim.Settings {
	s := sim.DefaultSettings()
	s.MaxServeAngle = 0
	return s
}

func runtime60(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{TickRate: 60, Seed: seed}
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() Summary {
		r := New(sim.DefaultSettings(), runtime60(99), input.NewAutopilot(0), Options{ServeDelay: 30})
		sum, err := r.Run(context.Background(), 3000)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return sum
	}

	a, b := run(), run()
	if a.FinalHash != b.FinalHash {
		t.Errorf("Determinism failed: hashes differ. Run1=%016x, Run2=%016x", a.FinalHash, b.FinalHash)
	}
	if a.Counters != b.Counters {
		t.Errorf("Determinism failed: counters differ. Run1=%+v, Run2=%+v", a.Counters, b.Counters)
	}
	if a.Ticks != 3000 {
		t.Errorf("Ticks = %d, expected 3000", a.Ticks)
	}
}

func TestServeDelay(t *testing.T) {
	for _, delay := range []int{0, 1, 3, 10} {
		r := New(flatServe(), runtime60(1), holdUp{}, Options{ServeDelay: delay})

		var results []sim.StepResult
		missAt := -1
		for i := 0; i < 200 && (missAt < 0 || i <= missAt+delay+1); i++ {
			res := r.step()
			results = append(results, res)
			if missAt < 0 && res.Missed() {
				missAt = i
			}
		}
		if missAt < 0 {
			t.Fatalf("delay %d: ball was never missed", delay)
		}

		for i := missAt + 1; i <= missAt+delay; i++ {
			if results[i].Snapshot.BallInPlay {
				t.Errorf("delay %d: ball back in play %d ticks after the miss", delay, i-missAt)
			}
		}

		next := results[missAt+delay+1]
		if !next.Snapshot.BallInPlay {
			t.Errorf("delay %d: ball not served after the delay", delay)
		}
		if len(next.Events) == 0 || next.Events[0].Kind != sim.EventServe {
			t.Errorf("delay %d: expected serve event, got %v", delay, next.Events)
		}
	}
}

func TestServeActionSkipsDelay(t *testing.T) {
	r := New(flatServe(), runtime60(1), holdUpAndServe{}, Options{ServeDelay: 30})

	var results []sim.StepResult
	missAt := -1
	for i := 0; i < 200 && (missAt < 0 || i <= missAt+2); i++ {
		res := r.step()
		results = append(results, res)
		if missAt < 0 && res.Missed() {
			missAt = i
		}
	}
	if missAt < 0 {
		t.Fatal("ball was never missed")
	}

	// Serve held on the miss tick itself does not count
	if results[missAt+1].Snapshot.BallInPlay {
		t.Error("ball back in play on the tick after the miss")
	}
	next := results[missAt+2]
	if !next.Snapshot.BallInPlay {
		t.Error("ball not served one tick after the miss")
	}
	if len(next.Events) == 0 || next.Events[0].Kind != sim.EventServe {
		t.Errorf("expected serve event, got %v", next.Events)
	}
}

func TestQuitActionStopsRun(t *testing.T) {
	var buf bytes.Buffer
	script := &input.Script{Steps: []input.Step{{From: 5, To: 6, Quit: true}}}
	r := New(sim.DefaultSettings(), runtime60(1), script, Options{Logger: log.New(&buf)})

	sum, err := r.Run(context.Background(), 100)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sum.Ticks != 6 {
		t.Errorf("Ticks = %d, expected 6", sum.Ticks)
	}
	if !strings.Contains(buf.String(), "driver quit") {
		t.Errorf("expected quit in log, got:\n%s", buf.String())
	}
}

func TestRunSavesSummary(t *testing.T) {
	saver := &recordingSaver{}
	r := New(flatServe(), runtime60(4), holdUp{}, Options{Preset: "hard", ServeDelay: 5, Saver: saver})

	sum, err := r.Run(context.Background(), 240)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(saver.saved) != 1 {
		t.Fatalf("saver called %d times, expected 1", len(saver.saved))
	}
	got := saver.saved[0]
	if got.Driver != "hold-up" || got.Preset != "hard" || got.Seed != 4 || got.TickRate != 60 {
		t.Errorf("saved summary = %+v", got)
	}
	if got.Ticks != 240 || got.Realtime {
		t.Errorf("Ticks = %d, Realtime = %v; expected 240, false", got.Ticks, got.Realtime)
	}
	// Misses at ticks 89 and 183, serves at 0, 94 and 188
	if got.Counters.Misses != 2 || got.Counters.Serves != 3 {
		t.Errorf("counters = %+v, expected 2 misses and 3 serves", got.Counters)
	}
	if got.FinalHash != sum.FinalHash {
		t.Errorf("saved hash %016x != returned hash %016x", got.FinalHash, sum.FinalHash)
	}
}

func TestRunSaveErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	saver := &recordingSaver{err: errors.New("disk full")}
	r := New(sim.DefaultSettings(), runtime60(1), input.Idle{}, Options{
		Saver:  saver,
		Logger: log.New(&buf),
	})

	if _, err := r.Run(context.Background(), 10); err != nil {
		t.Fatalf("Run() error = %v, save failures should not fail the run", err)
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("expected save error in log, got:\n%s", buf.String())
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(sim.DefaultSettings(), runtime60(1), input.Idle{}, Options{})
	sum, err := r.Run(ctx, 100)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if sum.Ticks != 0 {
		t.Errorf("Ticks = %d, expected 0", sum.Ticks)
	}
}

func TestRunStopped(t *testing.T) {
	r := New(sim.DefaultSettings(), runtime60(1), input.Idle{}, Options{})
	r.Stop()
	r.Stop() // Idempotent

	sum, err := r.Run(context.Background(), 100)
	if err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if sum.Ticks != 0 {
		t.Errorf("Ticks = %d, expected 0", sum.Ticks)
	}
}

func TestRunPublishesSnapshots(t *testing.T) {
	r := New(sim.DefaultSettings(), runtime60(2), holdUp{}, Options{})

	snap, ok := r.Snapshots().Load()
	if !ok || snap.Tick != 0 {
		t.Fatalf("initial snapshot = %+v, %v", snap, ok)
	}

	if _, err := r.Run(context.Background(), 25); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	snap, _ = r.Snapshots().Load()
	if snap.Tick != 25 {
		t.Errorf("published tick = %d, expected 25", snap.Tick)
	}
	if snap.PaddlePosition.Y <= 0 {
		t.Errorf("paddle y = %v, expected it to have moved up", snap.PaddlePosition.Y)
	}
}

func TestRunRealtime(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	r := New(sim.DefaultSettings(), core.RuntimeConfig{TickRate: 200, Seed: 3}, input.Idle{}, Options{
		ObserveEvery: 4,
		Logger:       logger,
	})

	sum, err := r.RunRealtime(context.Background(), 100*time.Millisecond)
	if err != nil {
		t.Fatalf("RunRealtime() error = %v", err)
	}
	if !sum.Realtime {
		t.Error("summary should be marked realtime")
	}
	if sum.Ticks == 0 {
		t.Error("expected some ticks in 100ms at 200 tps")
	}
	// 20 ticks of wall time, plus catch-up slack
	if sum.Ticks+sum.Dropped > 40 {
		t.Errorf("Ticks = %d (dropped %d), too many for 100ms at 200 tps", sum.Ticks, sum.Dropped)
	}
	if !strings.Contains(buf.String(), "realtime run started") {
		t.Errorf("missing start log line:\n%s", buf.String())
	}
}

func TestRunRealtimeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(sim.DefaultSettings(), runtime60(1), input.Idle{}, Options{})
	if _, err := r.RunRealtime(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("RunRealtime() error = %v, expected context.Canceled", err)
	}
}

func TestRunRealtimeStop(t *testing.T) {
	r := New(sim.DefaultSettings(), core.RuntimeConfig{TickRate: 100, Seed: 1}, input.Idle{}, Options{})

	go func() {
		time.Sleep(30 * time.Millisecond)
		r.Stop()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := r.RunRealtime(context.Background(), 0); err != nil {
			t.Errorf("RunRealtime() error = %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunRealtime did not return after Stop")
	}
}

func TestSummarySimulatedTime(t *testing.T) {
	tests := []struct {
		ticks    uint64
		rate     int
		expected time.Duration
	}{
		{120, 60, 2 * time.Second},
		{50, 100, 500 * time.Millisecond},
		{10, 0, 0},
	}
	for _, tc := range tests {
		s := Summary{Ticks: tc.ticks, TickRate: tc.rate}
		if got := s.SimulatedTime(); got != tc.expected {
			t.Errorf("SimulatedTime(%d @ %d) = %v, expected %v", tc.ticks, tc.rate, got, tc.expected)
		}
	}
}
