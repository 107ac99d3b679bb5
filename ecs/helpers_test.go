package ecs

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/input"
	"github.com/milk9111/porp/vmath"
)

// counter counts phase entries across every being sharing it.
type counter struct {
	beings    int64
	prepDone  atomic.Int64
	tickStart atomic.Int64
	early     atomic.Int64 // ticks that began before every prep finished
}

type countingBeing struct {
	Base
	p      *counter
	delay  time.Duration
	ticks  int
	onTick func(w *World, a *ids.Allocator)
}

func newCountingBeing(p *counter, delay time.Duration) *countingBeing {
	return &countingBeing{Base: NewBase(vmath.Vec3{}), p: p, delay: delay}
}

func (b *countingBeing) Kind() Kind { return "counting" }

func (b *countingBeing) TickPrep(dt float32, w *World, t *gfx.Transforms) {
	time.Sleep(b.delay)
	b.p.prepDone.Add(1)
}

func (b *countingBeing) Tick(w *World, t *gfx.Transforms, a *ids.Allocator) {
	b.p.tickStart.Add(1)
	if b.p.prepDone.Load()%b.p.beings != 0 {
		b.p.early.Add(1)
	}
	b.ticks++
	if b.onTick != nil {
		b.onTick(w, a)
	}
}

// staticBeing owns parts with seeded transforms and queued resources.
type staticBeing struct {
	Base
}

func newStaticBeing(a *ids.Allocator, t *gfx.Transforms, parts int) *staticBeing {
	b := &staticBeing{Base: NewBase(vmath.Vec3{})}
	verts := []gfx.Vertex{
		gfx.NewVertex(vmath.Vec3{0, 0, 0}, vmath.Vec2{0, 0}),
		gfx.NewVertex(vmath.Vec3{1, 0, 0}, vmath.Vec2{1, 0}),
		gfx.NewVertex(vmath.Vec3{0, 1, 0}, vmath.Vec2{0, 1}),
	}
	for i := 0; i < parts; i++ {
		e := gfx.NewEntity(a)
		eid := e.IDs()
		t.Set(gfx.Perspective, eid.Perspective, vmath.Identity())
		t.Set(gfx.View, eid.View, vmath.Identity())
		t.Set(gfx.Model, eid.Model, vmath.Identity())
		if err := b.AddPart(uint64(i), e); err != nil {
			panic(err)
		}
		q := b.RenderQueue()
		q.PushVertices(uint64(i), verts)
		q.PushIndices(uint64(i), []gfx.Index{0, 1, 2})
		q.PushTexture(uint64(i), onePixelPNG)
		q.PushDrawMethod(uint64(i), gfx.Neither())
	}
	return b
}

func (b *staticBeing) Kind() Kind { return "static" }

func (b *staticBeing) TickPrep(float32, *World, *gfx.Transforms) {}

func (b *staticBeing) Tick(*World, *gfx.Transforms, *ids.Allocator) {}

// onePixelPNG is a 1x1 opaque PNG.
var onePixelPNG = func() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}()

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func newTestGame(threads int) (*Game, *ManualClock) {
	clock := NewManualClock(time.Unix(1000, 0))
	g := NewGame(Options{
		Threads:        threads,
		TickRate:       60,
		Clock:          clock,
		Logger:         quietLogger(),
		ReportInterval: -1,
		Resolution:     vmath.Vec2{800, 600},
	})
	return g, clock
}

type fakeWindow struct {
	*input.Queue
	*gfx.Recorder
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{Queue: input.NewQueue(), Recorder: gfx.NewRecorder()}
}
