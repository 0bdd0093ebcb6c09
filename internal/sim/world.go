package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/paddle-arena/internal/core"
)

// Counters tallies contacts since the last Reset.
type Counters struct {
	PaddleHits int
	WallHits   int
	Misses     int
	Serves     int
}

// StepResult is returned by World.Step after each simulation tick.
type StepResult struct {
	Tick     uint64
	Events   []Event // Valid until the next Step call
	Snapshot Snapshot
}

// Missed reports whether the ball left play during this tick.
func (r StepResult) Missed() bool {
	for _, ev := range r.Events {
		if ev.Kind == EventMiss {
			return true
		}
	}
	return false
}

// World is the tick driver. It owns the entity store and runs paddle motion,
// ball integration and collision in that order once per fixed step.
type World struct {
	settings Settings
	runtime  core.RuntimeConfig
	store    Store
	rng      *rand.Rand
	tick     uint64
	counters Counters
	events   []Event // Reported by the current step
	pending  []Event // Raised between steps, reported by the next one
}

// New creates a world with the given settings. Call Reset before stepping.
func New(s Settings) *World {
	return &World{
		settings: s,
		runtime:  core.DefaultConfig(),
		events:   make([]Event, 0, 4),
		pending:  make([]Event, 0, 2),
	}
}

// Settings returns the constants this world was built with.
func (w *World) Settings() Settings {
	return w.settings
}

// Tick returns the number of completed steps since Reset.
func (w *World) Tick() uint64 {
	return w.tick
}

// Counters returns the contact tallies since Reset.
func (w *World) Counters() Counters {
	return w.counters
}

// Reset places the paddle at its home position, seeds the RNG and serves the
// ball toward the paddle.
func (w *World) Reset(runtime core.RuntimeConfig) {
	w.runtime = runtime
	w.rng = rand.New(rand.NewSource(runtime.Seed))
	w.tick = 0
	w.counters = Counters{}
	w.events = w.events[:0]
	w.pending = w.pending[:0]

	w.store = Store{
		Paddle: Paddle{
			Position: core.V(w.settings.PaddleX(), 0),
			Size:     w.settings.PaddleSize,
			Speed:    w.settings.PaddleSpeed,
			Caps:     CapCollider | CapControlled,
		},
		Ball: Ball{
			Position: w.settings.BallStart,
			Radius:   w.settings.BallRadius,
			Caps:     CapCollider | CapKinematic,
		},
	}
	// Keep the home position legal for arenas where y=0 is outside the band.
	w.store.movePaddle(0, 0, w.settings.Bounds)

	w.Serve(-1)
}

// Serve relaunches the ball from its start position. dir < 0 sends it toward
// the paddle, dir > 0 away from it. The vertical angle comes from the seeded
// RNG, so serves are reproducible for a given seed.
func (w *World) Serve(dir float64) {
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(w.runtime.Seed))
	}
	sx := core.Sign(dir)
	if sx == 0 {
		sx = -1
	}

	angle := (w.rng.Float64()*2 - 1) * w.settings.MaxServeAngle
	speed := w.settings.ServeSpeed

	b := &w.store.Ball
	b.Position = w.settings.BallStart
	b.Velocity = core.V(sx*speed*math.Cos(angle), speed*math.Sin(angle))
	b.InPlay = true

	w.counters.Serves++
	w.pending = append(w.pending, Event{
		Kind:     EventServe,
		Tick:     w.tick,
		Position: b.Position,
		Velocity: b.Velocity,
	})
}

// Step advances the simulation by one fixed tick of 1/TickRate seconds.
func (w *World) Step(in core.InputFrame) StepResult {
	return w.StepDT(in, w.runtime.TickSeconds())
}

// StepDT advances the simulation by dt seconds: paddle motion, then ball
// integration, then collision. Events raised by Serve since the previous step
// are reported with this step's result.
func (w *World) StepDT(in core.InputFrame, dt float64) StepResult {
	if !(dt > 0) {
		dt = 0
	}
	w.events = append(w.events[:0], w.pending...)
	w.pending = w.pending[:0]
	w.tick++

	w.store.movePaddle(in.Direction(), dt, w.settings.Bounds)

	b := &w.store.Ball
	if b.InPlay && b.Caps.Has(CapKinematic) {
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}

	if ev, ok := collide(&w.store, w.settings); ok {
		ev.Tick = w.tick
		w.count(ev.Kind)
		w.events = append(w.events, ev)
	}

	return StepResult{
		Tick:     w.tick,
		Events:   w.events,
		Snapshot: w.Snapshot(),
	}
}

func (w *World) count(k EventKind) {
	switch k {
	case EventPaddleHit:
		w.counters.PaddleHits++
	case EventWallHit:
		w.counters.WallHits++
	case EventMiss:
		w.counters.Misses++
	}
}
