package ids

import (
	"strconv"
	"sync"
)

// Category namespaces identifiers. Each category counts independently.
type Category string

const (
	Vertex        Category = "vertex"
	Index         Category = "index"
	Texture       Category = "texture"
	DrawParameter Category = "draw_parameter"
	Perspective   Category = "perspective"
	View          Category = "view"
	Model         Category = "model"

	// Being keys the world registry.
	Being Category = "being"
)

// EntityCategories lists the categories an entity holds one identifier for.
var EntityCategories = []Category{Vertex, Index, Texture, DrawParameter, Perspective, View, Model}

// ID is an identifier scoped to a Category. Zero is never allocated.
type ID uint32

// Valid reports whether the id was handed out by an Allocator.
func (id ID) Valid() bool {
	return id != 0
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Allocator hands out monotonically increasing identifiers per category.
// Identifiers are never recycled.
type Allocator struct {
	mu   sync.Mutex
	last map[Category]ID
}

// NewAllocator creates an allocator with every category unseen.
func NewAllocator() *Allocator {
	return &Allocator{last: make(map[Category]ID)}
}

// Allocate returns the next identifier for c, starting at 1.
func (a *Allocator) Allocate(c Category) ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		a.last = make(map[Category]ID)
	}
	id := a.last[c] + 1
	a.last[c] = id
	return id
}

// Last returns the most recent identifier allocated for c, or 0.
func (a *Allocator) Last(c Category) ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last[c]
}
