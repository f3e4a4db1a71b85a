package scene

import (
	"sync"

	"github.com/san-kum/wobble/internal/motion"
)

// Surface receives one transform per element per tick.
type Surface interface {
	Apply(id string, t motion.Transform)
}

// Grid is a thread-safe surface keeping the latest transform of every
// placed element, in placement order.
type Grid struct {
	mu         sync.RWMutex
	order      []string
	elements   map[string]Element
	transforms map[string]motion.Transform
	writes     uint64
}

func NewGrid(elements ...Element) *Grid {
	g := &Grid{
		elements:   make(map[string]Element),
		transforms: make(map[string]motion.Transform),
	}
	for _, e := range elements {
		g.Place(e)
	}
	return g
}

// Place adds or replaces an element and clears its transform.
func (g *Grid) Place(e Element) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.elements[e.ID]; !ok {
		g.order = append(g.order, e.ID)
	}
	g.elements[e.ID] = e
	g.transforms[e.ID] = motion.Transform{}
}

// Apply ignores ids that were never placed.
func (g *Grid) Apply(id string, t motion.Transform) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.elements[id]; !ok {
		return
	}
	g.transforms[id] = t
	g.writes++
}

// Reset zeroes every transform.
func (g *Grid) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id := range g.transforms {
		g.transforms[id] = motion.Transform{}
	}
}

func (g *Grid) Snapshot() []Sprite {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Sprite, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, Sprite{Element: g.elements[id], Transform: g.transforms[id]})
	}
	return out
}

func (g *Grid) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.order)
}

// Writes counts accepted Apply calls.
func (g *Grid) Writes() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.writes
}

// Write is one recorded Apply call.
type Write struct {
	ID string
	motion.Transform
}

// Recorder keeps every write in arrival order.
type Recorder struct {
	mu     sync.Mutex
	writes []Write
}

func (r *Recorder) Apply(id string, t motion.Transform) {
	r.mu.Lock()
	r.writes = append(r.writes, Write{ID: id, Transform: t})
	r.mu.Unlock()
}

func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Write, len(r.writes))
	copy(out, r.writes)
	return out
}

// For returns the transforms written for one element, in order.
func (r *Recorder) For(id string) []motion.Transform {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []motion.Transform
	for _, w := range r.writes {
		if w.ID == id {
			out = append(out, w.Transform)
		}
	}
	return out
}

// Fanout forwards every write to each surface in turn.
type Fanout []Surface

func (f Fanout) Apply(id string, t motion.Transform) {
	for _, s := range f {
		s.Apply(id, t)
	}
}
