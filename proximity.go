package main

import (
	"math"
	"sort"
)

const ProximityRadius = 500

// withinRadius reports whether two hitbox origins are at most radius
// apart. The distance is truncated to an integer before comparing.
func withinRadius(a, b *Hitbox, radius int) bool {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return int(math.Sqrt(dx*dx+dy*dy)) <= radius
}

// Near is the reference linear-scan proximity query: every item whose
// origin lies within radius of ref, in slice order.
func Near[T Positioned](items []T, ref *Hitbox, radius int) []T {
	var out []T
	for _, it := range items {
		if withinRadius(&it.Obj().Box, ref, radius) {
			out = append(out, it)
		}
	}
	return out
}

type cellKey struct{ cx, cy int }

type gridEntry[T Positioned] struct {
	idx int // position in the source slice, keeps results in world order
	v   T
}

// grid buckets entities by origin into square cells one radius wide, so a
// radius query only has to visit the 3x3 block of cells around the
// reference. The world is unbounded, hence the map.
type grid[T Positioned] struct {
	cell  int
	cells map[cellKey][]gridEntry[T]
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (g *grid[T]) keyOf(b *Hitbox) cellKey {
	return cellKey{floorDiv(b.X, g.cell), floorDiv(b.Y, g.cell)}
}

// reset clears all cells, keeping allocated capacity
func (g *grid[T]) reset(cell int) {
	g.cell = cell
	if g.cells == nil {
		g.cells = make(map[cellKey][]gridEntry[T])
	}
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
}

func (g *grid[T]) fill(items []T) {
	for i, it := range items {
		k := g.keyOf(&it.Obj().Box)
		g.cells[k] = append(g.cells[k], gridEntry[T]{idx: i, v: it})
	}
}

// query returns every entry within radius of ref, ordered as in the
// source slice. Positions are read live, so the index stays exact as long
// as indexed entities have not moved since fill.
func (g *grid[T]) query(ref *Hitbox, radius int) []T {
	center := g.keyOf(ref)
	var hits []gridEntry[T]
	for cy := center.cy - 1; cy <= center.cy+1; cy++ {
		for cx := center.cx - 1; cx <= center.cx+1; cx++ {
			for _, e := range g.cells[cellKey{cx, cy}] {
				if withinRadius(&e.v.Obj().Box, ref, radius) {
					hits = append(hits, e)
				}
			}
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].idx < hits[j].idx })
	out := make([]T, len(hits))
	for i, e := range hits {
		out[i] = e.v
	}
	return out
}

// ProximityIndex answers "what is near this entity" for each collection.
// Rebuild it whenever the indexed entities have moved.
type ProximityIndex struct {
	Radius        int
	avatars       grid[*Avatar]
	enemies       grid[*Enemy]
	attacks       grid[*Attack]
	interactables grid[*Interactable]
}

// NewProximityIndex creates an index for the given radius
func NewProximityIndex(radius int) *ProximityIndex {
	return &ProximityIndex{Radius: radius}
}

// Rebuild re-buckets every entity in w
func (p *ProximityIndex) Rebuild(w *World) {
	p.avatars.reset(p.Radius)
	p.avatars.fill(w.Avatars)
	p.enemies.reset(p.Radius)
	p.enemies.fill(w.Enemies)
	p.attacks.reset(p.Radius)
	p.attacks.fill(w.Attacks)
	p.interactables.reset(p.Radius)
	p.interactables.fill(w.Interactables)
}

func (p *ProximityIndex) Avatars(ref *Hitbox) []*Avatar { return p.avatars.query(ref, p.Radius) }
func (p *ProximityIndex) Enemies(ref *Hitbox) []*Enemy  { return p.enemies.query(ref, p.Radius) }
func (p *ProximityIndex) Attacks(ref *Hitbox) []*Attack { return p.attacks.query(ref, p.Radius) }

func (p *ProximityIndex) Interactables(ref *Hitbox) []*Interactable {
	return p.interactables.query(ref, p.Radius)
}
