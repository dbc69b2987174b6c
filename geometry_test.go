package main

import (
	"math"
	"testing"
)

func TestHitboxContains(t *testing.T) {
	b := NewHitbox(0, 0, 10, 10)
	if !b.Contains(0, 0) {
		t.Error("top-left corner should be inside")
	}
	if !b.Contains(9, 9) {
		t.Error("(9,9) should be inside")
	}
	if b.Contains(10, 5) {
		t.Error("right edge should be outside")
	}
	if b.Contains(5, 10) {
		t.Error("bottom edge should be outside")
	}
	empty := NewHitbox(0, 0, 0, 10)
	if empty.Contains(0, 0) {
		t.Error("zero-width box contains nothing")
	}
}

func TestHitboxIntersects(t *testing.T) {
	a := NewHitbox(0, 0, 10, 10)
	b := NewHitbox(5, 5, 10, 10)
	if !a.Intersects(&b) || !b.Intersects(&a) {
		t.Error("overlapping boxes should intersect both ways")
	}
	edge := NewHitbox(10, 0, 10, 10)
	if a.Intersects(&edge) {
		t.Error("boxes sharing an edge should not intersect")
	}
	flat := NewHitbox(2, 2, 5, 0)
	if a.Intersects(&flat) {
		t.Error("zero-height box should not intersect")
	}
}

func TestHitboxRestsOn(t *testing.T) {
	a := NewHitbox(0, 0, 10, 10)
	floor := NewHitbox(5, 10, 10, 10)
	if !a.RestsOn(&floor) {
		t.Error("box should rest on floor")
	}
	side := NewHitbox(10, 10, 10, 10)
	if a.RestsOn(&side) {
		t.Error("corner contact is not resting")
	}
	below := NewHitbox(0, 11, 10, 10)
	if a.RestsOn(&below) {
		t.Error("gap of 1px is not resting")
	}
}

func TestCenteredHitbox(t *testing.T) {
	b := CenteredHitbox(Vec{100, 50}, 20, 40)
	if b.X != 90 || b.Y != 30 {
		t.Errorf("expected origin (90,30), got (%d,%d)", b.X, b.Y)
	}
	if c := b.Center(); c != (Vec{100, 50}) {
		t.Errorf("expected center (100,50), got %v", c)
	}
}

func TestSegmentIntersectsBox(t *testing.T) {
	box := NewHitbox(40, -5, 10, 10)
	if !SegmentIntersectsBox(Vec{0, 0}, Vec{100, 0}, &box) {
		t.Error("horizontal segment through box should hit")
	}
	if SegmentIntersectsBox(Vec{0, 0}, Vec{30, 0}, &box) {
		t.Error("segment ending short of box should miss")
	}
	if !SegmentIntersectsBox(Vec{45, -100}, Vec{45, 100}, &box) {
		t.Error("vertical segment through box should hit")
	}
	off := NewHitbox(40, 10, 10, 10)
	if SegmentIntersectsBox(Vec{0, 0}, Vec{100, 0}, &off) {
		t.Error("segment above box should miss")
	}
}

func TestVecRotate(t *testing.T) {
	v := Vec{10, 0}.Rotate(math.Pi / 2)
	if v != (Vec{0, 10}) {
		t.Errorf("expected (0,10), got %v", v)
	}
}
