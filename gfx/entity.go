package gfx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/milk9111/porp/ids"
)

// ErrNotEntityCategory is returned for categories an entity does not hold.
var ErrNotEntityCategory = errors.New("gfx: not an entity category")

// EntityIDs names the renderer resources and transforms of one drawable part.
type EntityIDs struct {
	Vertex        ids.ID
	Index         ids.ID
	Texture       ids.ID
	DrawParameter ids.ID
	Perspective   ids.ID
	View          ids.ID
	Model         ids.ID
}

// Get returns the id held for c.
func (e EntityIDs) Get(c ids.Category) (ids.ID, error) {
	p, err := e.field(c)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

func (e *EntityIDs) field(c ids.Category) (*ids.ID, error) {
	switch c {
	case ids.Vertex:
		return &e.Vertex, nil
	case ids.Index:
		return &e.Index, nil
	case ids.Texture:
		return &e.Texture, nil
	case ids.DrawParameter:
		return &e.DrawParameter, nil
	case ids.Perspective:
		return &e.Perspective, nil
	case ids.View:
		return &e.View, nil
	case ids.Model:
		return &e.Model, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotEntityCategory, c)
}

// Entity is a lockable bundle of identifiers for one part of a Being. It
// never owns the resources; the renderer and Transforms key them by id.
type Entity struct {
	mu  sync.RWMutex
	ids EntityIDs
}

// NewEntity allocates a fresh identifier in every entity category.
func NewEntity(a *ids.Allocator) *Entity {
	return &Entity{ids: EntityIDs{
		Vertex:        a.Allocate(ids.Vertex),
		Index:         a.Allocate(ids.Index),
		Texture:       a.Allocate(ids.Texture),
		DrawParameter: a.Allocate(ids.DrawParameter),
		Perspective:   a.Allocate(ids.Perspective),
		View:          a.Allocate(ids.View),
		Model:         a.Allocate(ids.Model),
	}}
}

// DeriveEntity copies every identifier of base. Callers then re-roll or
// borrow individual fields with UseNewID and UseOldID.
func DeriveEntity(base *Entity) *Entity {
	return &Entity{ids: base.IDs()}
}

// IDs returns a snapshot of the identifiers.
func (e *Entity) IDs() EntityIDs {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ids
}

// UseNewID replaces the identifier for c with a freshly allocated one.
func (e *Entity) UseNewID(a *ids.Allocator, c ids.Category) (ids.ID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.ids.field(c)
	if err != nil {
		return 0, err
	}
	*p = a.Allocate(c)
	return *p, nil
}

// UseOldID copies the identifier for c from other.
func (e *Entity) UseOldID(other *Entity, c ids.Category) error {
	id, err := other.IDs().Get(c)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.ids.field(c)
	if err != nil {
		return err
	}
	*p = id
	return nil
}
