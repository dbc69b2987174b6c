package main

import (
	"math"
	"time"
)

// Vec is an integer 2D vector (positions, velocities)
type Vec struct {
	X, Y int
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Rotate rotates v by angle radians and rounds back to the integer grid
func (v Vec) Rotate(angle float64) Vec {
	c, s := math.Cos(angle), math.Sin(angle)
	x, y := float64(v.X), float64(v.Y)
	return Vec{int(math.Round(x*c - y*s)), int(math.Round(x*s + y*c))}
}

// Hitbox is an axis-aligned rectangle used both as an entity's position
// and its collision shape. LastCollided drives invincibility windows.
type Hitbox struct {
	X, Y, W, H   int
	LastCollided time.Time
}

// NewHitbox creates a hitbox with its top-left corner at (x, y)
func NewHitbox(x, y, w, h int) Hitbox {
	return Hitbox{X: x, Y: y, W: w, H: h}
}

// CenteredHitbox creates a w x h hitbox centred on c
func CenteredHitbox(c Vec, w, h int) Hitbox {
	return Hitbox{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (h *Hitbox) Left() int   { return h.X }
func (h *Hitbox) Right() int  { return h.X + h.W }
func (h *Hitbox) Top() int    { return h.Y }
func (h *Hitbox) Bottom() int { return h.Y + h.H }

func (h *Hitbox) Origin() Vec { return Vec{h.X, h.Y} }
func (h *Hitbox) Center() Vec { return Vec{h.X + h.W/2, h.Y + h.H/2} }

// Translate moves the hitbox by (dx, dy)
func (h *Hitbox) Translate(dx, dy int) {
	h.X += dx
	h.Y += dy
}

// SetLocation moves the top-left corner to (x, y)
func (h *Hitbox) SetLocation(x, y int) {
	h.X = x
	h.Y = y
}

// Contains reports whether (x, y) lies inside the box. The left and top
// edges are inclusive, the right and bottom edges exclusive.
func (h *Hitbox) Contains(x, y int) bool {
	return h.W > 0 && h.H > 0 &&
		x >= h.X && y >= h.Y && x < h.X+h.W && y < h.Y+h.H
}

// Intersects reports whether the interiors of two boxes overlap.
// Boxes that only share an edge do not intersect.
func (h *Hitbox) Intersects(o *Hitbox) bool {
	if h.W <= 0 || h.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return h.X < o.X+o.W && h.Y < o.Y+o.H && o.X < h.X+h.W && o.Y < h.Y+h.H
}

// RestsOn reports whether h stands exactly on top of o with some
// horizontal overlap.
func (h *Hitbox) RestsOn(o *Hitbox) bool {
	return h.Bottom() == o.Top() && h.X < o.Right() && o.X < h.Right()
}

// SegmentIntersectsBox reports whether the segment a-b touches the closed
// rectangle r (slab clipping).
func SegmentIntersectsBox(a, b Vec, r *Hitbox) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	tmin, tmax := 0.0, 1.0
	if !clipSlab(float64(a.X), float64(b.X-a.X), float64(r.Left()), float64(r.Right()), &tmin, &tmax) {
		return false
	}
	return clipSlab(float64(a.Y), float64(b.Y-a.Y), float64(r.Top()), float64(r.Bottom()), &tmin, &tmax)
}

func clipSlab(p, d, lo, hi float64, tmin, tmax *float64) bool {
	if d == 0 {
		return p >= lo && p <= hi
	}
	t1 := (lo - p) / d
	t2 := (hi - p) / d
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > *tmin {
		*tmin = t1
	}
	if t2 < *tmax {
		*tmax = t2
	}
	return *tmin <= *tmax
}
