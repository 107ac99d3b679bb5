package ecs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/input"
	"github.com/milk9111/porp/vmath"
)

var (
	// ErrTerminated is returned once the window has been closed.
	ErrTerminated = errors.New("ecs: game terminated")
	// ErrBeingPanicked wraps a panic raised inside TickPrep or Tick.
	ErrBeingPanicked = errors.New("ecs: being panicked")
)

// State is the scheduler's position in its loop.
type State int32

const (
	StateIdle State = iota
	StatePolling
	StateTickPrep
	StateBarrier
	StateTick
	StateRendering
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateTickPrep:
		return "tick_prep"
	case StateBarrier:
		return "barrier"
	case StateTick:
		return "tick"
	case StateRendering:
		return "rendering"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

const (
	DefaultTickRate       = 60
	DefaultReportInterval = time.Second
)

// Options configures a Game. Zero values select defaults.
type Options struct {
	Threads  int
	TickRate float64 // ticks per second
	Clock    Clock
	Logger   *logrus.Entry

	// PauseOnBlur suspends ticking while the window is unfocused.
	PauseOnBlur bool
	// ReportInterval is how often frame and tick counts are logged.
	// Negative disables reporting.
	ReportInterval time.Duration
	Resolution     vmath.Vec2
	// FrameInterval throttles Run. Zero renders as fast as possible.
	FrameInterval time.Duration
}

// Window is what Run drives: an event source and renderer that can present
// a finished frame.
type Window interface {
	input.Source
	gfx.Renderer
	Present() error
}

// Stats are running totals plus the rates from the last report.
type Stats struct {
	Ticks  uint64
	Frames uint64
	TPS    float64
	FPS    float64
}

// Game is the fixed-timestep scheduler. Advance and Render must be called
// from one goroutine; everything a tick touches is shared with the pool.
type Game struct {
	opts Options
	log  *logrus.Entry

	alloc      *ids.Allocator
	transforms *gfx.Transforms
	keyboard   *input.Keyboard
	mouse      *input.Mouse
	display    *input.Display
	world      *World
	pool       *Pool
	clock      Clock
	timestep   time.Duration

	state  atomic.Int32
	paused atomic.Bool

	last        time.Time
	accumulated time.Duration

	// renderErr is the first Render failure; it ends the loop.
	renderErr error

	statsMu      sync.Mutex
	stats        Stats
	reportStart  time.Time
	reportTicks  uint64
	reportFrames uint64
}

func NewGame(opts Options) *Game {
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.ReportInterval == 0 {
		opts.ReportInterval = DefaultReportInterval
	}
	if opts.Resolution == (vmath.Vec2{}) {
		opts.Resolution = vmath.Vec2{1, 1}
	}

	g := &Game{
		opts:       opts,
		log:        opts.Logger.WithField("component", "scheduler"),
		alloc:      ids.NewAllocator(),
		transforms: gfx.NewTransforms(),
		keyboard:   input.NewKeyboard(),
		mouse:      input.NewMouse(),
		display:    input.NewDisplay(opts.Resolution),
		pool:       NewPool(opts.Threads),
		clock:      opts.Clock,
		timestep:   time.Duration(float64(time.Second) / opts.TickRate),
	}
	g.world = NewWorld(g.alloc, g.keyboard, g.mouse, g.display)
	g.world.timestep = g.timestep
	g.last = g.clock.Now()
	g.reportStart = g.last
	return g
}

func (g *Game) World() *World { return g.world }
func (g *Game) Transforms() *gfx.Transforms { return g.transforms }
func (g *Game) Allocator() *ids.Allocator { return g.alloc }
func (g *Game) Timestep() time.Duration { return g.timestep }
func (g *Game) State() State { return State(g.state.Load()) }
func (g *Game) TickNumber() uint64 { return g.world.TickNumber() }
func (g *Game) Paused() bool { return g.paused.Load() }
func (g *Game) SetPaused(p bool) { g.paused.Store(p) }
func (g *Game) setState(s State) { g.state.Store(int32(s)) }
func (g *Game) Logger() *logrus.Entry { return g.log }

// Close stops the game; later calls to Advance return ErrTerminated.
func (g *Game) Close() {
	g.setState(StateTerminated)
}

func (g *Game) Stats() Stats {
	g.statsMu.Lock()
	defer g.statsMu.Unlock()
	return g.stats
}

// Advance runs every full timestep that elapsed on the clock since the last
// call. Before each tick it drains src and applies the events. Leftover time
// carries over to the next call. Once Render has failed, Advance returns
// that error without ticking.
func (g *Game) Advance(src input.Source) error {
	if g.State() == StateTerminated {
		return ErrTerminated
	}
	if g.renderErr != nil {
		return g.renderErr
	}

	now := g.clock.Now()
	g.accumulated += now.Sub(g.last)
	g.last = now

	if g.Paused() {
		// Keep listening for focus and close while paused.
		g.setState(StatePolling)
		if err := g.handleEvents(poll(src)); err != nil {
			return err
		}
		if g.Paused() {
			g.accumulated = 0
			g.setState(StateIdle)
			return nil
		}
	}

	for g.accumulated >= g.timestep {
		g.setState(StatePolling)
		if err := g.handleEvents(poll(src)); err != nil {
			return err
		}
		if g.Paused() {
			g.accumulated = 0
			break
		}
		if err := g.tick(); err != nil {
			g.setState(StateIdle)
			return err
		}
		g.accumulated -= g.timestep
	}
	g.setState(StateIdle)
	return nil
}

func poll(src input.Source) []input.Event {
	if src == nil {
		return nil
	}
	return src.PollEvents()
}

// tick runs both phases over the Beings registered when it starts.
func (g *Game) tick() error {
	reg := g.world.Beings()
	handles := reg.Snapshot()
	dt := float32(g.timestep.Seconds())

	reg.beginTick()

	g.setState(StateTickPrep)
	prep := g.pool.Batch()
	for _, h := range handles {
		prep.Go(func() error {
			return guard("tick prep", h, func() {
				h.Read(func(b Being) { b.TickPrep(dt, g.world, g.transforms) })
			})
		})
	}

	g.setState(StateBarrier)
	prepErr := prep.Wait()

	var tickErr error
	if prepErr == nil {
		g.setState(StateTick)
		tick := g.pool.Batch()
		for _, h := range handles {
			tick.Go(func() error {
				return guard("tick", h, func() {
					h.Write(func(b Being) { b.Tick(g.world, g.transforms, g.alloc) })
				})
			})
		}
		tickErr = tick.Wait()
	}

	spawned, despawned := reg.endTick()
	if spawned > 0 || despawned > 0 {
		g.log.WithFields(logrus.Fields{
			"tick":      g.world.TickNumber(),
			"spawned":   spawned,
			"despawned": despawned,
		}).Debug("registry changed")
	}
	if err := errors.Join(prepErr, tickErr); err != nil {
		return err
	}

	g.world.tick.Add(1)
	g.statsMu.Lock()
	g.stats.Ticks++
	g.reportTicks++
	g.statsMu.Unlock()
	return nil
}

func guard(op string, h *Handle, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ecs: %s %s %d: %v: %w", op, h.Kind(), h.ID(), r, ErrBeingPanicked)
		}
	}()
	fn()
	return nil
}

// Render forwards pending render updates of every Being to r, then draws
// every part of every Being. It never overlaps a tick. A failure stops the
// loop: Run returns it and so does every later Advance.
func (g *Game) Render(r gfx.Renderer) error {
	if g.State() == StateTerminated {
		return ErrTerminated
	}
	g.setState(StateRendering)
	defer g.setState(StateIdle)

	if err := g.render(r); err != nil {
		if g.renderErr == nil {
			g.renderErr = err
		}
		return err
	}

	g.statsMu.Lock()
	g.stats.Frames++
	g.reportFrames++
	g.statsMu.Unlock()
	g.report()
	return nil
}

func (g *Game) render(r gfx.Renderer) error {
	handles := g.world.Beings().Snapshot()
	for _, h := range handles {
		var err error
		h.Read(func(b Being) { err = ApplyRenderUpdates(b, r) })
		if err != nil {
			return fmt.Errorf("ecs: render updates %s %d: %w", h.Kind(), h.ID(), err)
		}
	}
	for _, h := range handles {
		var err error
		h.Read(func(b Being) { err = DrawBeing(b, r, g.transforms) })
		if err != nil {
			return fmt.Errorf("ecs: render %s %d: %w", h.Kind(), h.ID(), err)
		}
	}
	return nil
}

func (g *Game) report() {
	if g.opts.ReportInterval < 0 {
		return
	}
	now := g.clock.Now()
	elapsed := now.Sub(g.reportStart)
	if elapsed < g.opts.ReportInterval {
		return
	}

	g.statsMu.Lock()
	secs := elapsed.Seconds()
	g.stats.FPS = float64(g.reportFrames) / secs
	g.stats.TPS = float64(g.reportTicks) / secs
	frames, ticks := g.reportFrames, g.reportTicks
	g.reportFrames, g.reportTicks = 0, 0
	g.statsMu.Unlock()

	g.reportStart = now
	g.log.WithFields(logrus.Fields{
		"frames": frames,
		"ticks":  ticks,
		"beings": g.world.Beings().Len(),
	}).Info("loop stats")
}

// Run advances, renders and presents until the window closes or ctx ends.
// Render errors end the loop.
func (g *Game) Run(ctx context.Context, w Window) error {
	g.log.WithFields(logrus.Fields{
		"threads":   g.pool.Threads(),
		"tick_rate": g.opts.TickRate,
	}).Info("game loop started")
	defer g.log.Info("game loop stopped")

	var frame *time.Ticker
	if g.opts.FrameInterval > 0 {
		frame = time.NewTicker(g.opts.FrameInterval)
		defer frame.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			g.Close()
			return nil
		default:
		}

		if err := g.Advance(w); err != nil {
			if errors.Is(err, ErrTerminated) {
				return nil
			}
			return err
		}
		if err := g.Render(w); err != nil {
			return err
		}
		if err := w.Present(); err != nil {
			return fmt.Errorf("ecs: present: %w", err)
		}

		if frame != nil {
			select {
			case <-ctx.Done():
				g.Close()
				return nil
			case <-frame.C:
			}
		}
	}
}
