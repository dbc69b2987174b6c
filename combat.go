package main

import "time"

// knockback shoves v away from src. Projectiles and explosions pass on
// their own horizontal speed; anything else pushes back with the victim's
// current horizontal speed, pointed away from the source.
func knockback(v *Vitals, box *Hitbox, src *Object, srcVel Vec) {
	if src.Kind.Projectile() || src.Kind == KindExplosion {
		v.Vel.X = srcVel.X
	} else {
		push := abs(v.Vel.X)
		if box.Center().X < src.Box.Center().X {
			push = -push
		}
		v.Vel.X = push
	}
	v.Vel.Y = KnockbackSpeed
}

// strikeAvatar applies a damaging contact from src. It returns false when
// the avatar was shielded by its invincibility window.
func strikeAvatar(a *Avatar, src *Object, srcVel Vec, damage int, now time.Time) bool {
	if Collides(&a.Box, &src.Box, now).shielded() {
		return false
	}
	knockback(&a.Vitals, &a.Box, src, srcVel)
	a.TakeDamage(damage)
	return true
}

// correct snaps the avatar out of a solid it moved into
func (a *Avatar) correct(s *Hitbox) {
	switch contactSideOf(&a.Box, a.Prev, s) {
	case sideTop:
		a.Box.Y = s.Top() - a.Box.H
		a.Vel.Y = 0
		a.Jumps = a.MaxJumps
	case sideBottom:
		a.Box.Y = s.Bottom()
		a.Vel.Y = -a.Vel.Y / 2
	case sideLeft:
		a.Box.X = s.Left() - a.Box.W - SideBounceGap
		a.bounceOffWall()
	case sideRight:
		a.Box.X = s.Right() + SideBounceGap
		a.bounceOffWall()
	}
}

func (a *Avatar) bounceOffWall() {
	a.Vel.X = -a.Vel.X / 2
	if a.Vel.Y > 0 {
		a.Vel.Y -= WallSlideBrake
	}
}

// avatarContacts is the avatar-versus-interactable behaviour per kind
var avatarContacts = map[Kind]func(a *Avatar, it *Interactable, now time.Time){
	KindWall: func(a *Avatar, it *Interactable, _ time.Time) {
		a.correct(&it.Box)
	},
	KindHazard: func(a *Avatar, it *Interactable, now time.Time) {
		a.correct(&it.Box)
		strikeAvatar(a, &it.Object, Vec{}, it.Damage, now)
	},
	KindPowerUp: func(a *Avatar, it *Interactable, now time.Time) {
		it.Apply(a, now)
	},
}

// touchInteractable resolves one avatar/interactable pair if they are in
// contact
func touchInteractable(a *Avatar, it *Interactable, now time.Time) {
	if it.blocksAvatars() {
		if !touching(&a.Box, a.Vel, &it.Box) {
			return
		}
	} else if !a.Box.Intersects(&it.Box) {
		return
	}
	if fn := avatarContacts[it.Kind]; fn != nil {
		fn(a, it, now)
	}
}

// strikeEnemy applies an attack to an enemy. Enemies only take hits while
// charging at full speed, and never from their own attacks. It reports
// whether this hit killed the enemy.
func strikeEnemy(e *Enemy, at *Attack, now time.Time) bool {
	if e.Mood != MoodAggressive || at.CreatorID == e.ID {
		return false
	}
	if Collides(&e.Box, &at.Box, now).shielded() {
		return false
	}
	wasAlive := !e.Dead()
	knockback(&e.Vitals, &e.Box, &at.Object, at.Vel)
	e.TakeDamage(at.Damage)
	return wasAlive && e.Dead()
}
