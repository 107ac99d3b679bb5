package ecs

import (
	"maps"
	"slices"
	"sync"

	"github.com/milk9111/porp/ids"
)

// Handle is one registry slot. Its lock guards the Being's own state.
type Handle struct {
	id    ids.ID
	kind  Kind
	mu    sync.RWMutex
	being Being
}

func (h *Handle) ID() ids.ID { return h.id }

func (h *Handle) Kind() Kind { return h.kind }

// Read calls fn with the Being under a shared lock.
func (h *Handle) Read(fn func(Being)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn(h.being)
}

// Write calls fn with the Being under an exclusive lock.
func (h *Handle) Write(fn func(Being)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.being)
}

type pendingOp struct {
	spawn  *Handle
	remove ids.ID
}

// Registry holds the live Beings keyed by id. While a tick is in flight,
// Spawn and Despawn are queued and applied once both phases have finished,
// so a tick always runs over the set of Beings it started with.
type Registry struct {
	alloc *ids.Allocator

	mu      sync.RWMutex
	handles map[ids.ID]*Handle
	ticking bool
	pending []pendingOp
}

func NewRegistry(a *ids.Allocator) *Registry {
	return &Registry{
		alloc:   a,
		handles: make(map[ids.ID]*Handle),
	}
}

// Spawn registers b and returns its id. The id is valid immediately even
// when insertion is deferred.
func (r *Registry) Spawn(b Being) ids.ID {
	if b == nil {
		panic("ecs: spawn nil being")
	}
	h := &Handle{id: r.alloc.Allocate(ids.Being), kind: b.Kind(), being: b}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ticking {
		r.pending = append(r.pending, pendingOp{spawn: h})
		return h.id
	}
	r.handles[h.id] = h
	return h.id
}

// Despawn removes the Being with id. Unknown ids are ignored.
func (r *Registry) Despawn(id ids.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ticking {
		r.pending = append(r.pending, pendingOp{remove: id})
		return
	}
	delete(r.handles, id)
}

func (r *Registry) Get(id ids.ID) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[id]
	return h, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

// Pending returns the number of queued Spawn and Despawn calls.
func (r *Registry) Pending() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pending)
}

// Snapshot returns the live handles ordered by id.
func (r *Registry) Snapshot() []*Handle {
	r.mu.RLock()
	keys := slices.Sorted(maps.Keys(r.handles))
	out := make([]*Handle, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.handles[k])
	}
	r.mu.RUnlock()
	return out
}

// Range calls fn for each live handle in id order until fn returns false.
func (r *Registry) Range(fn func(*Handle) bool) {
	for _, h := range r.Snapshot() {
		if !fn(h) {
			return
		}
	}
}

func (r *Registry) beginTick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticking = true
}

// endTick applies queued operations in call order.
func (r *Registry) endTick() (spawned, despawned int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticking = false
	for _, op := range r.pending {
		if op.spawn != nil {
			r.handles[op.spawn.id] = op.spawn
			spawned++
			continue
		}
		if _, ok := r.handles[op.remove]; ok {
			delete(r.handles, op.remove)
			despawned++
		}
	}
	r.pending = nil
	return spawned, despawned
}
