package main

import "time"

const (
	InvincibilityDuration = 1500 * time.Millisecond
	SideBounceGap         = 10 // px an avatar is pushed clear of a wall it ran into
	WallSlideBrake        = 5  // vertical speed removed when sliding down a wall
)

// CollisionType classifies a contact by which sides are inside their
// invincibility window
type CollisionType int

const (
	NoneInvincible CollisionType = iota
	FirstInvincible
	SecondInvincible
	BothInvincible
)

func (c CollisionType) String() string {
	switch c {
	case FirstInvincible:
		return "FIRST_INVINCIBLE"
	case SecondInvincible:
		return "SECOND_INVINCIBLE"
	case BothInvincible:
		return "BOTH_INVINCIBLE"
	}
	return "NONE_INVINCIBLE"
}

// Collides classifies the contact between a and b and then stamps both
// boxes with now. A side is invincible while its last contact is less
// than InvincibilityDuration old. The stamp makes a repeated call inside
// the window report both sides invincible.
func Collides(a, b *Hitbox, now time.Time) CollisionType {
	first := a.LastCollided.Add(InvincibilityDuration).After(now)
	second := b.LastCollided.Add(InvincibilityDuration).After(now)
	a.LastCollided = now
	b.LastCollided = now
	switch {
	case first && second:
		return BothInvincible
	case first:
		return FirstInvincible
	case second:
		return SecondInvincible
	}
	return NoneInvincible
}

// shielded reports whether the first side of a contact takes no damage
func (c CollisionType) shielded() bool {
	return c == FirstInvincible || c == BothInvincible
}

// contactSide names the face of a solid that a moving box ran into
type contactSide int

const (
	sideTop    contactSide = iota // landed on the solid
	sideBottom                    // head hit the underside
	sideLeft                      // moving right into the solid's left face
	sideRight                     // moving left into the solid's right face
)

// contactSideOf compares the moving box's previous-frame edges (box
// placed at prev) against the solid. When the previous frame already
// overlapped, the face with the shallowest penetration wins.
func contactSideOf(box *Hitbox, prev Vec, s *Hitbox) contactSide {
	switch {
	case prev.Y+box.H <= s.Top():
		return sideTop
	case prev.Y >= s.Bottom():
		return sideBottom
	case prev.X+box.W <= s.Left():
		return sideLeft
	case prev.X >= s.Right():
		return sideRight
	}
	side, depth := sideTop, box.Bottom()-s.Top()
	if d := s.Bottom() - box.Top(); d < depth {
		side, depth = sideBottom, d
	}
	if d := box.Right() - s.Left(); d < depth {
		side, depth = sideLeft, d
	}
	if d := s.Right() - box.Left(); d < depth {
		side = sideRight
	}
	return side
}

// touching reports a contact worth resolving: an overlap, or a box
// resting on top of the solid while not moving upward.
func touching(box *Hitbox, vel Vec, s *Hitbox) bool {
	return box.Intersects(s) || (vel.Y >= 0 && box.RestsOn(s))
}
