package beings

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/porp/ecs"
	"github.com/milk9111/porp/input"
	"github.com/milk9111/porp/prefabs"
	"github.com/milk9111/porp/vmath"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

type harness struct {
	game  *ecs.Game
	clock *ecs.ManualClock
	queue *input.Queue
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := ecs.NewManualClock(time.Unix(1000, 0))
	g := ecs.NewGame(ecs.Options{
		Threads:        2,
		TickRate:       60,
		Clock:          clock,
		Logger:         quietLogger(),
		ReportInterval: -1,
		Resolution:     vmath.Vec2{100, 100},
	})
	return &harness{game: g, clock: clock, queue: input.NewQueue()}
}

// step runs n ticks, applying the given events before the first.
func (h *harness) step(t *testing.T, n int, events ...input.Event) {
	t.Helper()
	h.queue.Push(events...)
	for i := 0; i < n; i++ {
		h.clock.Advance(h.game.Timestep())
		require.NoError(t, h.game.Advance(h.queue))
	}
}

// topDown looks straight down at the origin from y = 10.
func topDown() prefabs.CameraSpec {
	return prefabs.CameraSpec{
		Name:       "top",
		Position:   prefabs.Vec3Spec{Y: 10},
		Pitch:      -90,
		Projection: "perspective",
		FOV:        60,
		Near:       0.1,
		Far:        100,
	}
}

func testTileSpec() *prefabs.TileSpec {
	return &prefabs.TileSpec{
		Name:      "tile",
		Size:      1,
		Step:      0.25,
		MaxHeight: 2,
		HoverLift: 0.1,
		Texture:   prefabs.Texture{Size: 4, Border: 1},
		Draw:      prefabs.DrawSpec{Depth: true, Cull: "none"},
	}
}
