package main

import "testing"

func TestSessionIDsReuseLowest(t *testing.T) {
	r := NewSessionRegistry()
	a := r.Add()
	b := r.Add()
	if a != "C-0" || b != "C-1" {
		t.Fatalf("expected C-0 and C-1, got %s and %s", a, b)
	}
	r.Remove(a)
	if c := r.Add(); c != "C-0" {
		t.Errorf("expected freed C-0 to be reused, got %s", c)
	}
	if r.Count() != 2 {
		t.Errorf("expected 2 sessions, got %d", r.Count())
	}
}

func TestSessionAllReady(t *testing.T) {
	r := NewSessionRegistry()
	if r.AllReady() {
		t.Error("empty registry is never ready")
	}
	a := r.Add()
	b := r.Add()
	r.MarkReady(a)
	if r.AllReady() {
		t.Error("one session still waiting")
	}
	r.MarkReady(b)
	if !r.AllReady() {
		t.Error("all sessions ready")
	}
	if r.MarkReady("C-9") {
		t.Error("unknown session should not be marked")
	}
	if ids := r.IDs(); len(ids) != 2 || ids[0] != "C-0" || ids[1] != "C-1" {
		t.Errorf("unexpected ids %v", ids)
	}
}
