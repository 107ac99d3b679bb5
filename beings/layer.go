package beings

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/porp/assets"
	"github.com/milk9111/porp/ecs"
	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/levels"
	"github.com/milk9111/porp/prefabs"
	"github.com/milk9111/porp/vmath"
)

const KindLayer ecs.Kind = "layer"

// Content is everything a layer is built from.
type Content struct {
	Level   *levels.Level
	Tile    *prefabs.TileSpec
	Spinner *SpinnerKind
}

func (c Content) validate() error {
	if c.Level == nil || c.Tile == nil {
		return errors.New("beings: content needs a level and a tile spec")
	}
	if len(c.Level.Spinners) > 0 && c.Spinner == nil {
		return fmt.Errorf("beings: level %s places spinners but no spinner kind is loaded", c.Level.Name)
	}
	return nil
}

// LoadContent reads the named level and the current prefabs.
func LoadContent(level string) (Content, error) {
	lvl, err := levels.Load(level)
	if err != nil {
		return Content{}, err
	}
	tile, err := prefabs.LoadTileSpec()
	if err != nil {
		return Content{}, err
	}
	spinner, err := LoadSpinnerKind()
	if err != nil {
		return Content{}, err
	}
	return Content{Level: lvl, Tile: tile, Spinner: spinner}, nil
}

type child struct {
	id    ids.ID
	model ids.ID
}

// Layer owns the tiles and spinners of one level. A new level is requested
// from any goroutine and built during the layer's Tick, so the swap lands
// between two ticks.
type Layer struct {
	ecs.Base
	camera   *gfx.Entity
	textures *assets.Cache
	log      *logrus.Entry

	content  Content
	children []child
	stale    []ids.ID
	tiles    []*Tile

	reload chan Content
}

func NewLayer(camera *gfx.Entity, textures *assets.Cache, log *logrus.Entry) *Layer {
	if textures == nil {
		textures = assets.NewCache()
	}
	return &Layer{
		Base:     ecs.NewBase(vmath.Vec3{}),
		camera:   camera,
		textures: textures,
		log:      log,
		reload:   make(chan Content, 1),
	}
}

func (l *Layer) Kind() ecs.Kind { return KindLayer }

// Request queues c to be built on the next tick. A request that has not
// been picked up yet is replaced.
func (l *Layer) Request(c Content) {
	for {
		select {
		case l.reload <- c:
			return
		default:
		}
		select {
		case <-l.reload:
		default:
		}
	}
}

// Content is the content currently built.
func (l *Layer) Content() Content { return l.content }

// Tiles returns the tiles of the current level in row order.
func (l *Layer) Tiles() []*Tile { return l.tiles }

// Children is the number of Beings the layer spawned for the current level.
func (l *Layer) Children() int { return len(l.children) }

func (l *Layer) TickPrep(float32, *ecs.World, *gfx.Transforms) {}

func (l *Layer) Tick(w *ecs.World, t *gfx.Transforms, a *ids.Allocator) {
	for _, m := range l.stale {
		t.Forget(gfx.Model, m)
	}
	l.stale = nil

	var c Content
	select {
	case c = <-l.reload:
	default:
		return
	}
	if err := l.swap(w, t, a, c); err != nil && l.log != nil {
		l.log.WithError(err).Error("level reload failed, keeping the current level")
	}
}

// swap builds c and replaces the current children with it. Nothing changes
// when building fails.
func (l *Layer) swap(w *ecs.World, t *gfx.Transforms, a *ids.Allocator, c Content) error {
	if err := c.validate(); err != nil {
		return err
	}
	tiles, spinners, err := l.build(t, a, c)
	if err != nil {
		for _, b := range tiles {
			t.Forget(gfx.Model, b.ModelID())
		}
		for _, s := range spinners {
			t.Forget(gfx.Model, s.ModelID())
		}
		return fmt.Errorf("beings: build level %s: %w", c.Level.Name, err)
	}

	reg := w.Beings()
	for _, ch := range l.children {
		reg.Despawn(ch.id)
		l.stale = append(l.stale, ch.model)
	}
	l.children = l.children[:0]
	for _, b := range tiles {
		l.children = append(l.children, child{id: reg.Spawn(b), model: b.ModelID()})
	}
	for _, s := range spinners {
		l.children = append(l.children, child{id: reg.Spawn(s), model: s.ModelID()})
	}
	l.content = c
	l.tiles = tiles

	if l.log != nil {
		l.log.WithFields(logrus.Fields{
			"level":    c.Level.Name,
			"tiles":    len(tiles),
			"spinners": len(spinners),
		}).Info("level built")
	}
	return nil
}

// build creates one full tile per palette key and derives the rest from it.
func (l *Layer) build(t *gfx.Transforms, a *ids.Allocator, c Content) ([]*Tile, []*Spinner, error) {
	lvl, spec := c.Level, c.Tile
	bases := make(map[string]*Tile)
	tiles := make([]*Tile, 0, lvl.Width()*lvl.Depth())

	for z := 0; z < lvl.Depth(); z++ {
		for x := 0; x < lvl.Width(); x++ {
			h, key := lvl.Cell(x, z)
			pos := CellPosition(lvl, spec, x, z)

			base, ok := bases[key]
			if !ok {
				tex, err := l.tileTexture(spec, lvl.Palette[key])
				if err != nil {
					return tiles, nil, err
				}
				tile, err := NewTile(a, t, l.camera, spec, tex, pos, h)
				if err != nil {
					return tiles, nil, err
				}
				bases[key] = tile
				tiles = append(tiles, tile)
				continue
			}
			tile, err := DeriveTile(a, t, base, pos, h)
			if err != nil {
				return tiles, nil, err
			}
			tiles = append(tiles, tile)
		}
	}

	spinners := make([]*Spinner, 0, len(lvl.Spinners))
	for _, p := range lvl.Spinners {
		h, _ := lvl.Cell(p.X, p.Z)
		pos := CellPosition(lvl, spec, p.X, p.Z)
		pos[1] = float32(h+1)*spec.Step + p.Lift + c.Spinner.Spec.Size/2
		s, err := NewSpinner(a, t, l.camera, c.Spinner, pos, l.log)
		if err != nil {
			return tiles, spinners, err
		}
		spinners = append(spinners, s)
	}
	return tiles, spinners, nil
}

func (l *Layer) tileTexture(spec *prefabs.TileSpec, color string) ([]byte, error) {
	key := fmt.Sprintf("tile/%s/%d/%d/%v", color, spec.Texture.Size, spec.Texture.Border, spec.Texture.Edge.NRGBA())
	return l.textures.Get(key, func() ([]byte, error) {
		fill, err := prefabs.ParseColor(color)
		if err != nil {
			return nil, err
		}
		return assets.Texture(assets.TextureSpec{
			Size:   spec.Texture.Size,
			Border: spec.Texture.Border,
			Fill:   fill,
			Edge:   spec.Texture.Edge.Color,
		})
	})
}

// CellPosition is the base center of column (x, z) with the grid centered
// on the origin.
func CellPosition(lvl *levels.Level, spec *prefabs.TileSpec, x, z int) vmath.Vec3 {
	w, d := float32(lvl.Width()), float32(lvl.Depth())
	return vmath.Vec3{
		(float32(x) - w/2 + 0.5) * spec.Size,
		0,
		(float32(z) - d/2 + 0.5) * spec.Size,
	}
}
