package beings

import (
	"fmt"
	"sync/atomic"

	"github.com/milk9111/porp/ecs"
	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/input"
	"github.com/milk9111/porp/prefabs"
	"github.com/milk9111/porp/vmath"
)

const (
	KindTile ecs.Kind = "tile"

	PartTile uint64 = 0
)

// Tile is one column of the map. Tiles built with NewTile upload geometry
// and a texture; tiles built with DeriveTile reuse those and only own a
// model transform.
type Tile struct {
	ecs.Base
	entity  *gfx.Entity
	spec    *prefabs.TileSpec
	height  int
	hovered bool

	hover atomic.Bool
}

// NewTile creates a column at position (the center of its base) that
// draws through the camera's perspective and view.
func NewTile(a *ids.Allocator, t *gfx.Transforms, camera *gfx.Entity, spec *prefabs.TileSpec, texture []byte, position vmath.Vec3, height int) (*Tile, error) {
	method, err := drawMethod(spec.Draw)
	if err != nil {
		return nil, err
	}

	e := gfx.NewEntity(a)
	if err := e.UseOldID(camera, ids.Perspective); err != nil {
		return nil, err
	}
	if err := e.UseOldID(camera, ids.View); err != nil {
		return nil, err
	}

	tile := newTile(e, spec, position, height)
	verts, idx := Column()
	q := tile.RenderQueue()
	q.PushVertices(PartTile, verts)
	q.PushIndices(PartTile, idx)
	q.PushTexture(PartTile, texture)
	q.PushDrawMethod(PartTile, method)

	tile.writeModel(t)
	return tile, nil
}

// DeriveTile creates a column sharing everything with base except its
// model transform.
func DeriveTile(a *ids.Allocator, t *gfx.Transforms, base *Tile, position vmath.Vec3, height int) (*Tile, error) {
	e := gfx.DeriveEntity(base.entity)
	if _, err := e.UseNewID(a, ids.Model); err != nil {
		return nil, fmt.Errorf("beings: derive tile: %w", err)
	}
	tile := newTile(e, base.spec, position, height)
	tile.writeModel(t)
	return tile, nil
}

func newTile(e *gfx.Entity, spec *prefabs.TileSpec, position vmath.Vec3, height int) *Tile {
	tile := &Tile{
		Base:   ecs.NewBase(position),
		entity: e,
		spec:   spec,
		height: height,
	}
	if err := tile.AddPart(PartTile, e); err != nil {
		panic(err)
	}
	return tile
}

func (t *Tile) Kind() ecs.Kind { return KindTile }

func (t *Tile) Height() int { return t.height }

func (t *Tile) Hovered() bool { return t.hovered }

func (t *Tile) ModelID() ids.ID { return t.entity.IDs().Model }

// Model places the unit column at the tile position, stretched to its
// height and lifted while hovered.
func (t *Tile) Model() vmath.Mat4 {
	pos := t.Position()
	if t.hovered {
		pos[1] += t.spec.HoverLift
	}
	h := float32(t.height+1) * t.spec.Step
	return vmath.Translation(pos).Mul(vmath.Scale(vmath.Vec3{t.spec.Size, h, t.spec.Size}))
}

// TickPrep casts the mouse ray into tile space and tests the top face.
func (t *Tile) TickPrep(_ float32, w *ecs.World, tr *gfx.Transforms) {
	t.hover.Store(t.underCursor(w.MouseNDC(), tr))
}

func (t *Tile) underCursor(ndc vmath.Vec2, tr *gfx.Transforms) bool {
	e := t.entity.IDs()
	near, err := tr.Backwards4(vmath.Vec4{ndc[0], ndc[1], -1, 1}, e)
	if err != nil {
		return false
	}
	far, err := tr.Backwards4(vmath.Vec4{ndc[0], ndc[1], 1, 1}, e)
	if err != nil {
		return false
	}
	n, f := near.Homogenize(), far.Homogenize()
	dy := f[1] - n[1]
	if dy == 0 {
		return false
	}
	s := (1 - n[1]) / dy
	hit := n.Add(f.Sub(n).Scale(s))
	return hit[0] >= -0.5 && hit[0] <= 0.5 && hit[2] >= -0.5 && hit[2] <= 0.5
}

// Tick applies the hover state and raises or lowers the column on a click
// made this tick.
func (t *Tile) Tick(w *ecs.World, tr *gfx.Transforms, _ *ids.Allocator) {
	hovered := t.hover.Load()
	changed := hovered != t.hovered
	t.hovered = hovered

	if hovered {
		tick := w.TickNumber()
		if w.MouseButton(input.MouseLeft).PressedAt(tick) && (t.spec.MaxHeight <= 0 || t.height < t.spec.MaxHeight) {
			t.height++
			changed = true
		}
		if w.MouseButton(input.MouseRight).PressedAt(tick) && t.height > 0 {
			t.height--
			changed = true
		}
	}
	if changed {
		t.writeModel(tr)
	}
}

func (t *Tile) writeModel(tr *gfx.Transforms) {
	tr.Set(gfx.Model, t.ModelID(), t.Model())
}
