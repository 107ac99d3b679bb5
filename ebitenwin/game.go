package ebitenwin

import (
	"errors"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/porp/ecs"
)

// Game adapts an ecs.Game to ebiten. Update advances the simulation and
// Draw renders it; ebiten calls both from its own goroutine.
type Game struct {
	game  *ecs.Game
	win   *Window
	pause *ebitenui.UI
	log   *logrus.Entry

	debug bool
	quit  bool
	err   error
}

func NewGame(g *ecs.Game, debug bool) *Game {
	a := &Game{
		game:  g,
		win:   NewWindow(),
		log:   g.Logger().WithField("component", "window"),
		debug: debug,
	}
	a.pause = NewPauseUI(func() { g.SetPaused(false) }, func() { a.quit = true })
	return a
}

func (a *Game) Window() *Window { return a.win }

func (a *Game) Update() error {
	if a.quit {
		a.game.Close()
		return ebiten.Termination
	}
	if a.err != nil {
		return a.err
	}
	a.win.collect()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.game.SetPaused(!a.game.Paused())
	}
	if a.game.Paused() {
		a.pause.Update()
	}

	if err := a.game.Advance(a.win); err != nil {
		if errors.Is(err, ecs.ErrTerminated) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (a *Game) Draw(screen *ebiten.Image) {
	a.win.screen = screen
	if err := a.game.Render(a.win); err != nil && !errors.Is(err, ecs.ErrTerminated) && a.err == nil {
		a.log.WithError(err).Error("render failed")
		a.err = err
	}
	if err := a.win.Present(); err != nil {
		a.log.WithError(err).Error("present failed")
	}

	if a.debug {
		s := a.game.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f  ticks: %d  beings: %d",
			s.TPS, s.FPS, s.Ticks, a.game.World().Beings().Len()))
	}
	if a.game.Paused() {
		a.pause.Draw(screen)
	}
}

func (a *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.win.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
