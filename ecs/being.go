package ecs

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/vmath"
)

// ErrDuplicatePart is returned when a part key is added twice.
var ErrDuplicatePart = errors.New("ecs: duplicate part")

// Kind tags the variant of a Being.
type Kind string

// Being is a simulated object. The scheduler calls TickPrep for every Being
// under a shared lock, waits for all of them, then calls Tick under an
// exclusive lock. TickPrep may read the World and Transforms but must leave
// every state read by other Beings untouched; Tick is the only place a Being
// changes itself or allocates ids.
type Being interface {
	Entities() map[uint64]*gfx.Entity
	RenderQueue() *gfx.RenderQueue
	TickPrep(dt float32, w *World, t *gfx.Transforms)
	Tick(w *World, t *gfx.Transforms, a *ids.Allocator)
	Position() vmath.Vec3
	Kind() Kind
}

// Base implements the bookkeeping every Being needs. Embed it and supply
// TickPrep, Tick and Kind.
type Base struct {
	parts    map[uint64]*gfx.Entity
	queue    *gfx.RenderQueue
	position vmath.Vec3
}

func NewBase(position vmath.Vec3) Base {
	return Base{
		parts:    make(map[uint64]*gfx.Entity),
		queue:    gfx.NewRenderQueue(),
		position: position,
	}
}

// AddPart registers e under key. Keys are never reused.
func (b *Base) AddPart(key uint64, e *gfx.Entity) error {
	if b.parts == nil {
		b.parts = make(map[uint64]*gfx.Entity)
	}
	if _, ok := b.parts[key]; ok {
		return fmt.Errorf("ecs: add part %d: %w", key, ErrDuplicatePart)
	}
	b.parts[key] = e
	return nil
}

func (b *Base) Part(key uint64) (*gfx.Entity, bool) {
	e, ok := b.parts[key]
	return e, ok
}

// Entities returns a copy of the part map.
func (b *Base) Entities() map[uint64]*gfx.Entity {
	return maps.Clone(b.parts)
}

func (b *Base) RenderQueue() *gfx.RenderQueue {
	if b.queue == nil {
		b.queue = gfx.NewRenderQueue()
	}
	return b.queue
}

func (b *Base) Position() vmath.Vec3 { return b.position }

func (b *Base) SetPosition(p vmath.Vec3) { b.position = p }

// ApplyRenderUpdates forwards the pending updates of b to r.
func ApplyRenderUpdates(b Being, r gfx.Renderer) error {
	return b.RenderQueue().Apply(r, b.Entities())
}

// DrawBeing issues one draw call per part of b, in part key order.
func DrawBeing(b Being, r gfx.Renderer, t *gfx.Transforms) error {
	parts := b.Entities()
	for _, key := range slices.Sorted(maps.Keys(parts)) {
		call, err := gfx.NewDrawCall(parts[key].IDs(), t)
		if err != nil {
			return fmt.Errorf("ecs: draw part %d: %w", key, err)
		}
		if err := r.Draw(call); err != nil {
			return fmt.Errorf("ecs: draw part %d: %w", key, err)
		}
	}
	return nil
}
