package main

import (
	"testing"
	"time"
)

func TestCollidesWindow(t *testing.T) {
	t0 := time.Unix(1000, 0)
	a := NewHitbox(0, 0, 10, 10)
	b := NewHitbox(5, 5, 10, 10)

	if got := Collides(&a, &b, t0); got != NoneInvincible {
		t.Errorf("expected NONE_INVINCIBLE on first contact, got %s", got)
	}
	if !a.LastCollided.Equal(t0) || !b.LastCollided.Equal(t0) {
		t.Error("both sides should be stamped")
	}

	t1 := t0.Add(InvincibilityDuration - time.Millisecond)
	if got := Collides(&a, &b, t1); got != BothInvincible {
		t.Errorf("expected BOTH_INVINCIBLE inside window, got %s", got)
	}

	// The second call restamped both sides at t1
	t2 := t1.Add(InvincibilityDuration)
	if got := Collides(&a, &b, t2); got != NoneInvincible {
		t.Errorf("expected NONE_INVINCIBLE once window elapsed, got %s", got)
	}
}

func TestCollidesOneSided(t *testing.T) {
	now := time.Unix(1000, 0)
	a := NewHitbox(0, 0, 10, 10)
	b := NewHitbox(0, 0, 10, 10)
	a.LastCollided = now.Add(-time.Second)

	if got := Collides(&a, &b, now); got != FirstInvincible {
		t.Errorf("expected FIRST_INVINCIBLE, got %s", got)
	}

	c := NewHitbox(0, 0, 10, 10)
	d := NewHitbox(0, 0, 10, 10)
	d.LastCollided = now.Add(-time.Second)
	if got := Collides(&c, &d, now); got != SecondInvincible {
		t.Errorf("expected SECOND_INVINCIBLE, got %s", got)
	}
	if SecondInvincible.shielded() {
		t.Error("second-side invincibility should not shield the first side")
	}
}

func TestContactSide(t *testing.T) {
	solid := NewHitbox(0, 100, 200, 20)

	box := NewHitbox(50, 85, 10, 20) // fell into the top
	if side := contactSideOf(&box, Vec{50, 70}, &solid); side != sideTop {
		t.Errorf("expected top contact, got %d", side)
	}

	box = NewHitbox(50, 110, 10, 20) // rose into the underside
	if side := contactSideOf(&box, Vec{50, 125}, &solid); side != sideBottom {
		t.Errorf("expected bottom contact, got %d", side)
	}

	box = NewHitbox(-5, 100, 10, 10) // moved right into the left face
	if side := contactSideOf(&box, Vec{-15, 100}, &solid); side != sideLeft {
		t.Errorf("expected left contact, got %d", side)
	}

	box = NewHitbox(195, 100, 10, 10) // moved left into the right face
	if side := contactSideOf(&box, Vec{205, 100}, &solid); side != sideRight {
		t.Errorf("expected right contact, got %d", side)
	}
}

func TestTouchingResting(t *testing.T) {
	solid := NewHitbox(0, 100, 200, 20)
	box := NewHitbox(50, 80, 10, 20)
	if !touching(&box, Vec{0, 0}, &solid) {
		t.Error("resting box should touch")
	}
	if touching(&box, Vec{0, -10}, &solid) {
		t.Error("box moving up off the surface should not touch")
	}
}
