package tween

import "slices"

type key struct {
	target   any
	property string
}

// registry owns id allocation and the set of live records. Records are kept
// in insertion order, which is also the order they are applied in.
type registry struct {
	lastID  ID
	free    []ID
	records map[ID]*record
	order   []*record
	byKey   map[key][]*record
}

func newRegistry() *registry {
	return &registry{
		records: make(map[ID]*record),
		byKey:   make(map[key][]*record),
	}
}

// allocate returns the most recently freed id, or a fresh one.
func (g *registry) allocate() ID {
	if n := len(g.free); n > 0 {
		id := g.free[n-1]
		g.free = g.free[:n-1]
		return id
	}
	g.lastID++
	return g.lastID
}

func (g *registry) add(r *record) ID {
	r.id = g.allocate()
	g.records[r.id] = r
	g.order = append(g.order, r)
	k := key{r.target, r.property}
	g.byKey[k] = append(g.byKey[k], r)
	return r.id
}

// remove unregisters r and returns its id to the free list.
func (g *registry) remove(r *record) {
	if g.records[r.id] != r {
		return
	}
	delete(g.records, r.id)
	g.free = append(g.free, r.id)
	g.order = slices.DeleteFunc(g.order, func(o *record) bool { return o == r })

	k := key{r.target, r.property}
	rest := slices.DeleteFunc(g.byKey[k], func(o *record) bool { return o == r })
	if len(rest) == 0 {
		delete(g.byKey, k)
	} else {
		g.byKey[k] = rest
	}
}

func (g *registry) get(id ID) *record {
	return g.records[id]
}

// colliding returns the live records writing target.property.
func (g *registry) colliding(target any, property string) []*record {
	return slices.Clone(g.byKey[key{target, property}])
}

// snapshot returns the live records in insertion order. Callers iterate the
// snapshot so records may be added or removed during iteration.
func (g *registry) snapshot() []*record {
	return slices.Clone(g.order)
}

func (g *registry) len() int {
	return len(g.records)
}

// runnable reports whether any record needs another tick.
func (g *registry) runnable() bool {
	for _, r := range g.order {
		if r.runnable() {
			return true
		}
	}
	return false
}
