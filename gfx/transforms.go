package gfx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/vmath"
)

// ErrUnknownTransform is returned when no matrix is stored for an id.
var ErrUnknownTransform = errors.New("gfx: unknown transform")

// TransformKind selects one of the transform tables.
type TransformKind uint8

const (
	Perspective TransformKind = iota
	View
	Model
)

func (k TransformKind) String() string {
	switch k {
	case Perspective:
		return "perspective"
	case View:
		return "view"
	case Model:
		return "model"
	}
	return fmt.Sprintf("transform(%d)", uint8(k))
}

type matrixPair struct {
	m   vmath.Mat4
	inv vmath.Mat4
}

// transformTable keeps a matrix and its inverse under one lock, so readers
// never see one updated without the other.
type transformTable struct {
	mu    sync.RWMutex
	pairs map[ids.ID]matrixPair
}

func (t *transformTable) set(id ids.ID, p matrixPair) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pairs == nil {
		t.pairs = make(map[ids.ID]matrixPair)
	}
	t.pairs[id] = p
}

func (t *transformTable) get(id ids.ID) (matrixPair, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.pairs[id]
	return p, ok
}

func (t *transformTable) forget(id ids.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pairs, id)
}

// Transforms holds the perspective, view and model matrices of every entity,
// keyed by the entity's id of the matching category.
type Transforms struct {
	tables [3]transformTable
}

// NewTransforms creates empty tables.
func NewTransforms() *Transforms {
	return &Transforms{}
}

func (t *Transforms) table(k TransformKind) *transformTable {
	if int(k) >= len(t.tables) {
		panic(fmt.Sprintf("gfx: invalid transform kind %d", k))
	}
	return &t.tables[k]
}

// Set stores m and its computed inverse.
func (t *Transforms) Set(k TransformKind, id ids.ID, m vmath.Mat4) {
	t.table(k).set(id, matrixPair{m: m, inv: m.Inverse()})
}

// SetWithInverse stores m with a caller supplied inverse.
func (t *Transforms) SetWithInverse(k TransformKind, id ids.ID, m, inv vmath.Mat4) {
	t.table(k).set(id, matrixPair{m: m, inv: inv})
}

// Forget drops the matrices stored for id.
func (t *Transforms) Forget(k TransformKind, id ids.ID) {
	t.table(k).forget(id)
}

// Matrix returns the matrix stored for id.
func (t *Transforms) Matrix(k TransformKind, id ids.ID) (vmath.Mat4, error) {
	p, ok := t.table(k).get(id)
	if !ok {
		return vmath.Mat4{}, unknownTransform("matrix", k, id)
	}
	return p.m, nil
}

// Inverse returns the cached inverse stored for id.
func (t *Transforms) Inverse(k TransformKind, id ids.ID) (vmath.Mat4, error) {
	p, ok := t.table(k).get(id)
	if !ok {
		return vmath.Mat4{}, unknownTransform("inverse", k, id)
	}
	return p.inv, nil
}

// Lookup returns the perspective, view and model matrices for an entity.
func (t *Transforms) Lookup(e EntityIDs) (p, v, m vmath.Mat4, err error) {
	if p, err = t.Matrix(Perspective, e.Perspective); err != nil {
		return
	}
	if v, err = t.Matrix(View, e.View); err != nil {
		return
	}
	m, err = t.Matrix(Model, e.Model)
	return
}

func (t *Transforms) inverses(e EntityIDs) (p, v, m vmath.Mat4, err error) {
	if p, err = t.Inverse(Perspective, e.Perspective); err != nil {
		return
	}
	if v, err = t.Inverse(View, e.View); err != nil {
		return
	}
	m, err = t.Inverse(Model, e.Model)
	return
}

// Backwards4 maps a clip-space vector back to the entity's model space by
// applying the perspective, view and model inverses in that order.
func (t *Transforms) Backwards4(v vmath.Vec4, e EntityIDs) (vmath.Vec4, error) {
	p, view, m, err := t.inverses(e)
	if err != nil {
		return vmath.Vec4{}, err
	}
	return m.MulVec4(view.MulVec4(p.MulVec4(v))), nil
}

// Backwards3 maps a normalized device coordinate to a model-space point.
func (t *Transforms) Backwards3(v vmath.Vec3, e EntityIDs) (vmath.Vec3, error) {
	out, err := t.Backwards4(v.Vec4(1), e)
	if err != nil {
		return vmath.Vec3{}, err
	}
	return out.Homogenize(), nil
}

// Backwards2 is Backwards3 on the z=0 device plane.
func (t *Transforms) Backwards2(v vmath.Vec2, e EntityIDs) (vmath.Vec2, error) {
	out, err := t.Backwards3(v.Vec3(0), e)
	if err != nil {
		return vmath.Vec2{}, err
	}
	return out.Vec2(), nil
}

func unknownTransform(op string, k TransformKind, id ids.ID) error {
	return fmt.Errorf("gfx: %s %s %d: %w", op, k, id, ErrUnknownTransform)
}
