// Package host drives the simulation without a display: it feeds input from a
// driver, applies the serve-after-miss policy, logs contacts and reports a
// summary. Presentation layers read snapshots from the runner's buffer.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/paddle-arena/internal/core"
	"github.com/vovakirdan/paddle-arena/internal/input"
	"github.com/vovakirdan/paddle-arena/internal/sim"
)

// DefaultMaxCatchUp is used when Options.MaxCatchUp is not positive.
const DefaultMaxCatchUp = 5

// Options configures a Runner. A zero ServeDelay serves right after a miss
// and a zero ObserveEvery disables the observer.
type Options struct {
	Preset       string
	ServeDelay   int // Ticks the ball stays out of play after a miss
	MaxCatchUp   int // Most steps run per ticker wake-up in realtime mode
	ObserveEvery int // Ticks between observer log lines in realtime mode
	Logger       *log.Logger
	Saver        SummarySaver // Optional, receives the summary when a run ends
}

// Runner owns a World and steps it with input from a Driver.
type Runner struct {
	world   *sim.World
	runtime core.RuntimeConfig
	driver  input.Driver
	opts    Options
	logger  *log.Logger

	buffer sim.SnapshotBuffer
	last   sim.Snapshot

	awaitingServe bool
	serveWait     int
	dropped       uint64

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a runner with a freshly reset world.
func New(settings sim.Settings, runtime core.RuntimeConfig, driver input.Driver, opts Options) *Runner {
	if opts.ServeDelay < 0 {
		opts.ServeDelay = 0
	}
	if opts.MaxCatchUp <= 0 {
		opts.MaxCatchUp = DefaultMaxCatchUp
	}
	if opts.Preset == "" {
		opts.Preset = "normal"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := sim.New(settings)
	w.Reset(runtime)

	r := &Runner{
		world:   w,
		runtime: runtime,
		driver:  driver,
		opts:    opts,
		logger:  logger,
		done:    make(chan struct{}),
	}
	r.last = w.Snapshot()
	r.buffer.Publish(r.last)
	return r
}

// World returns the simulated world.
func (r *Runner) World() *sim.World {
	return r.world
}

// Snapshots returns the buffer the runner publishes to after every tick.
func (r *Runner) Snapshots() *sim.SnapshotBuffer {
	return &r.buffer
}

// Stop ends a running Run or RunRealtime after the current tick.
func (r *Runner) Stop() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}

func (r *Runner) stopped() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Run steps the world exactly ticks times as fast as possible. It returns
// early with the context's error if ctx is cancelled.
func (r *Runner) Run(ctx context.Context, ticks uint64) (Summary, error) {
	start := time.Now()
	r.logger.Info("run started",
		"driver", r.driver.Name(),
		"seed", r.runtime.Seed,
		"ticks", ticks,
	)

	var err error
	for i := uint64(0); i < ticks; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		if r.stopped() {
			break
		}
		r.step()
	}

	return r.finish(false, start), err
}

// RunRealtime steps the world at its tick rate for d (or until ctx is
// cancelled or Stop is called when d is zero). Each ticker wake-up runs
// the steps owed since the previous one, at most MaxCatchUp; the rest are
// dropped so a stalled process does not spiral.
//
// Running out the duration is not an error; cancellation returns ctx.Err().
func (r *Runner) RunRealtime(ctx context.Context, d time.Duration) (Summary, error) {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	interval := r.runtime.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	r.logger.Info("realtime run started",
		"driver", r.driver.Name(),
		"seed", r.runtime.Seed,
		"tick_rate", r.runtime.TickRate,
		"duration", d,
	)

	// Observer reads snapshots concurrently with the step loop
	obsCtx, stopObserver := context.WithCancel(ctx)
	var wg sync.WaitGroup
	if r.opts.ObserveEvery > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.observe(obsCtx, interval*time.Duration(r.opts.ObserveEvery))
		}()
	}
	defer func() {
		stopObserver()
		wg.Wait()
	}()

	last := start
	var owed time.Duration
	for {
		select {
		case now := <-ticker.C:
			owed += now.Sub(last)
			last = now

			steps := int(owed / interval)
			if steps > r.opts.MaxCatchUp {
				skipped := steps - r.opts.MaxCatchUp
				r.dropped += uint64(skipped) //#nosec G115 -- skipped is positive
				r.logger.Debug("dropping ticks", "count", skipped, "tick", r.world.Tick())
				owed -= time.Duration(skipped) * interval
				steps = r.opts.MaxCatchUp
			}
			for range steps {
				if r.stopped() {
					break
				}
				r.step()
				owed -= interval
			}

		case <-ctx.Done():
			err := ctx.Err()
			if d > 0 && errors.Is(err, context.DeadlineExceeded) {
				err = nil
			}
			return r.finish(true, start), err

		case <-r.done:
			return r.finish(true, start), nil
		}
	}
}

// step runs one tick: input, simulation, serve policy, logging and publish.
func (r *Runner) step() sim.StepResult {
	in := r.driver.Frame(r.world.Tick(), r.last)
	res := r.world.Step(in)
	r.last = res.Snapshot

	r.logEvents(res.Events)

	// Serve policy: the ball sits out ServeDelay ticks after a miss, unless
	// the driver asks to serve on a later tick
	if res.Missed() {
		r.awaitingServe = true
		r.serveWait = r.opts.ServeDelay
	} else if r.awaitingServe {
		r.serveWait--
		if in.Has(core.ActionServe) {
			r.serveWait = 0
		}
	}
	if r.awaitingServe && r.serveWait <= 0 {
		r.awaitingServe = false
		r.world.Serve(-1)
		r.last = r.world.Snapshot()
	}

	if in.Has(core.ActionQuit) {
		r.logger.Info("driver quit", "tick", res.Tick)
		r.Stop()
	}

	r.buffer.Publish(r.last)
	return res
}

func (r *Runner) logEvents(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventMiss:
			r.logger.Info("ball missed",
				"tick", ev.Tick,
				"side", ev.Side,
				"y", fmt.Sprintf("%.1f", ev.Position.Y),
			)
		case sim.EventPaddleHit:
			r.logger.Debug("paddle hit",
				"tick", ev.Tick,
				"offset", fmt.Sprintf("%.2f", ev.Offset),
				"speed", fmt.Sprintf("%.1f", ev.Velocity.Len()),
			)
		case sim.EventWallHit:
			r.logger.Debug("wall hit", "tick", ev.Tick, "side", ev.Side)
		case sim.EventServe:
			r.logger.Debug("serve",
				"tick", ev.Tick,
				"vx", fmt.Sprintf("%.1f", ev.Velocity.X),
				"vy", fmt.Sprintf("%.1f", ev.Velocity.Y),
			)
		}
	}
}

// observe logs the latest published transforms every period.
func (r *Runner) observe(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			snap, ok := r.buffer.Load()
			if !ok {
				continue
			}
			r.logger.Info("transform",
				"tick", snap.Tick,
				"paddle_y", fmt.Sprintf("%.1f", snap.PaddlePosition.Y),
				"ball", fmt.Sprintf("(%.1f, %.1f)", snap.BallPosition.X, snap.BallPosition.Y),
				"in_play", snap.BallInPlay,
			)
		case <-ctx.Done():
			return
		}
	}
}

// finish builds the summary, logs it and hands it to the saver.
func (r *Runner) finish(realtime bool, start time.Time) Summary {
	snap := r.world.Snapshot()
	sum := Summary{
		Driver:    r.driver.Name(),
		Preset:    r.opts.Preset,
		Seed:      r.runtime.Seed,
		TickRate:  r.runtime.TickRate,
		Ticks:     r.world.Tick(),
		Counters:  r.world.Counters(),
		FinalHash: snap.Hash(),
		Realtime:  realtime,
		Dropped:   r.dropped,
		StartedAt: start,
		Elapsed:   time.Since(start),
	}

	r.logger.Info("run finished",
		"ticks", sum.Ticks,
		"paddle_hits", sum.Counters.PaddleHits,
		"wall_hits", sum.Counters.WallHits,
		"misses", sum.Counters.Misses,
		"hash", fmt.Sprintf("%016x", sum.FinalHash),
	)

	if r.opts.Saver != nil {
		if err := r.opts.Saver.SaveSummary(sum); err != nil {
			r.logger.Warn("could not save run", "error", err)
		}
	}
	return sum
}
