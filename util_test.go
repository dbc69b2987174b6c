package main

import "testing"

func TestLowestUnused(t *testing.T) {
	if n := lowestUnused(nil); n != 0 {
		t.Errorf("expected 0 for empty set, got %d", n)
	}
	if n := lowestUnused(map[int]bool{0: true, 1: true, 3: true}); n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}

func TestIDHelpers(t *testing.T) {
	if s := idSuffix("11-7"); s != "7" {
		t.Errorf("expected 7, got %s", s)
	}
	if s := idSuffix("32-7.3"); s != "7.3" {
		t.Errorf("expected 7.3, got %s", s)
	}
	if n, ok := suffixNumber("7.3"); !ok || n != 7 {
		t.Errorf("expected 7, got %d (%v)", n, ok)
	}
	if _, ok := suffixNumber("x"); ok {
		t.Error("non-numeric suffix should not parse")
	}
	if s := creatorSuffix("32-7.3"); s != "7" {
		t.Errorf("expected creator 7, got %s", s)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Vec{0, 0}, Vec{3, 4}); d != 5 {
		t.Errorf("expected 5, got %d", d)
	}
	if d := Distance(Vec{0, 0}, Vec{1, 1}); d != 1 {
		t.Errorf("expected truncated 1, got %d", d)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Error("clamp out of range")
	}
}
