// Command headless runs the simulation without a window. Frames go to a
// recorder, which makes it useful for profiling and soak runs.
//
//	go run ./cmd/headless -ticks 3600 -profile cpu
//	go tool pprof -http=":8000" cpu.pprof
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/porp/beings"
	"github.com/milk9111/porp/config"
	"github.com/milk9111/porp/ecs"
	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/input"
	"github.com/milk9111/porp/vmath"
)

type window struct {
	*input.Queue
	*gfx.Recorder
}

func main() {
	configPath := flag.String("config", "porp.yaml", "path to the config file")
	levelName := flag.String("level", "", "level to load; overrides the config")
	ticks := flag.Uint64("ticks", 600, "ticks to run; 0 runs until interrupted")
	realtime := flag.Bool("realtime", false, "pace ticks with the wall clock instead of running flat out")
	prof := flag.String("profile", "", "write a profile: cpu or mem")
	flag.Parse()

	stopProfile, err := startProfile(*prof, ".")
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, *configPath, *levelName, *ticks, *realtime)
	stop()
	stopProfile()
	if err != nil {
		log.Fatal(err)
	}
}

// startProfile starts the named profile writing into dir. The returned
// func flushes it and must run before the process exits.
func startProfile(kind, dir string) (func(), error) {
	var mode func(*profile.Profile)
	switch kind {
	case "":
		return func() {}, nil
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		return nil, fmt.Errorf("unknown profile %q: want cpu or mem", kind)
	}
	p := profile.Start(mode, profile.ProfilePath(dir), profile.NoShutdownHook)
	return p.Stop, nil
}

func run(ctx context.Context, configPath, level string, ticks uint64, realtime bool) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	entry := logrus.NewEntry(logger).WithField("mode", "headless")
	if level == "" {
		level = cfg.Level
	}

	var clock ecs.Clock = ecs.SystemClock{}
	var manual *ecs.ManualClock
	var frame time.Duration
	if realtime {
		frame = time.Duration(float64(time.Second) / cfg.Loop.TickRate)
	} else {
		manual = ecs.NewManualClock(time.Now())
		clock = manual
	}

	game := ecs.NewGame(ecs.Options{
		Threads:        cfg.Loop.Threads,
		TickRate:       cfg.Loop.TickRate,
		Clock:          clock,
		Logger:         entry,
		ReportInterval: cfg.Loop.ReportInterval,
		FrameInterval:  frame,
		Resolution:     vmath.Vec2{float32(cfg.Window.Width), float32(cfg.Window.Height)},
	})
	if _, err := beings.NewScene(game, level); err != nil {
		return err
	}
	w := window{Queue: input.NewQueue(), Recorder: gfx.NewRecorder()}

	start := time.Now()
	if realtime {
		err = runRealtime(ctx, game, w, ticks)
	} else {
		err = runFlat(ctx, game, manual, w, ticks)
	}
	if err != nil {
		return err
	}

	s := game.Stats()
	elapsed := time.Since(start)
	entry.WithFields(logrus.Fields{
		"ticks":   s.Ticks,
		"frames":  s.Frames,
		"elapsed": elapsed.Round(time.Millisecond),
		"tps":     fmt.Sprintf("%.1f", float64(s.Ticks)/elapsed.Seconds()),
	}).Info("done")
	return nil
}

// runFlat steps the manual clock one timestep per frame.
func runFlat(ctx context.Context, g *ecs.Game, clock *ecs.ManualClock, w window, ticks uint64) error {
	for ticks == 0 || g.TickNumber() < ticks {
		if ctx.Err() != nil {
			return nil
		}
		clock.Advance(g.Timestep())
		if err := g.Advance(w); err != nil {
			return err
		}
		if err := g.Render(w); err != nil {
			return err
		}
		if err := w.Present(); err != nil {
			return err
		}
	}
	return nil
}

// runRealtime drives Game.Run and closes the window after ticks.
func runRealtime(ctx context.Context, g *ecs.Game, w window, ticks uint64) error {
	if ticks > 0 {
		timer := time.AfterFunc(time.Duration(ticks)*g.Timestep(), func() { w.Push(input.Closed()) })
		defer timer.Stop()
	}
	err := g.Run(ctx, w)
	if errors.Is(err, ecs.ErrTerminated) {
		return nil
	}
	return err
}
