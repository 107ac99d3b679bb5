package ecs

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/porp/input"
)

// handleEvents applies window events in arrival order. Button transitions
// are stamped with the number of the tick about to run.
func (g *Game) handleEvents(events []input.Event) error {
	tick := g.world.TickNumber()
	for _, ev := range events {
		switch ev.Kind {
		case input.EventResized:
			g.display.SetResolution(ev.Size)
			g.log.WithFields(logrus.Fields{"width": ev.Size[0], "height": ev.Size[1]}).Debug("resized")
		case input.EventClosed:
			g.log.Info("window closed")
			g.Close()
			return ErrTerminated
		case input.EventFocused:
			g.focus(ev.Focused)
		case input.EventKey:
			g.keyboard.SetKey(ev.Key, input.Button{Tick: tick, State: ev.State})
		case input.EventMouseMoved:
			g.mouse.SetPosition(ev.Position)
		case input.EventMouseButton:
			g.mouse.SetButton(ev.Mouse, input.Button{Tick: tick, State: ev.State})
		}
	}
	return nil
}

func (g *Game) focus(focused bool) {
	if focused {
		g.log.Info("resumed")
	} else {
		g.log.Info("paused")
	}
	if g.opts.PauseOnBlur {
		g.SetPaused(!focused)
	}
}
