package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/porp/beings"
	"github.com/milk9111/porp/config"
	"github.com/milk9111/porp/ebitenwin"
	"github.com/milk9111/porp/ecs"
	"github.com/milk9111/porp/levels"
	"github.com/milk9111/porp/prefabs"
	"github.com/milk9111/porp/vmath"
)

type options struct {
	configPath string
	level      string
	debug      bool
	watch      bool
}

func run(opts options) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	log := logrus.NewEntry(logger)

	level := cfg.Level
	if opts.level != "" {
		level = opts.level
	}

	game := ecs.NewGame(ecs.Options{
		Threads:        cfg.Loop.Threads,
		TickRate:       cfg.Loop.TickRate,
		Logger:         log,
		PauseOnBlur:    cfg.Loop.PauseOnBlur,
		ReportInterval: cfg.Loop.ReportInterval,
		Resolution:     vmath.Vec2{float32(cfg.Window.Width), float32(cfg.Window.Height)},
	})
	scene, err := beings.NewScene(game, level)
	if err != nil {
		return err
	}

	if opts.watch {
		w, err := watchFiles(log, opts.configPath)
		if err != nil {
			log.WithError(err).Warn("file watching disabled")
		} else {
			defer w.Close()
			go dispatch(w, log, logger, opts.configPath, scene)
		}
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(int(cfg.Loop.TickRate))

	log.WithFields(logrus.Fields{
		"level":   level,
		"threads": cfg.Loop.Threads,
	}).Info("starting")
	if err := ebiten.RunGame(ebitenwin.NewGame(game, opts.debug)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// watchFiles watches the on-disk prefab, script and level directories and
// the directory holding the config file. Missing directories are skipped.
func watchFiles(log *logrus.Entry, configPath string) (*prefabs.Watcher, error) {
	candidates := []string{
		prefabs.DiskDir,
		filepath.Join(prefabs.DiskDir, "scripts"),
		levels.DiskDir,
		filepath.Dir(configPath),
	}
	var dirs []string
	seen := make(map[string]bool)
	for _, d := range candidates {
		d = filepath.Clean(d)
		if seen[d] {
			continue
		}
		seen[d] = true
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, d)
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}
	log.WithField("dirs", dirs).Debug("watching")
	return prefabs.NewWatcher(prefabs.WatchOptions{
		Dirs: dirs,
		Filter: func(path string) bool {
			return prefabs.IsSpecFile(path) || prefabs.IsScriptFile(path) || sameFile(path, configPath)
		},
	})
}

// dispatch applies file changes until the watcher closes.
func dispatch(w *prefabs.Watcher, log *logrus.Entry, logger *logrus.Logger, configPath string, scene *beings.Scene) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if sameFile(path, configPath) {
				reloadConfig(log, logger, configPath)
				continue
			}
			if err := scene.HandleChange(path); err != nil {
				log.WithError(err).WithField("path", path).Warn("reload failed")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("watcher error")
		}
	}
}

// reloadConfig applies the settings that can change at runtime.
func reloadConfig(log *logrus.Entry, logger *logrus.Logger, path string) {
	cfg, err := config.Load(path)
	if err != nil {
		log.WithError(err).Warn("config reload failed")
		return
	}
	if err := config.ApplyLog(logger, cfg.Log); err != nil {
		log.WithError(err).Warn("config reload failed")
		return
	}
	log.WithField("log_level", cfg.Log.Level).Info("config reloaded")
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}
