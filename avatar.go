package main

import (
	"math/rand"
	"time"
)

const (
	Gravity              = 6
	SpeedStep            = 2
	DragDivisor          = 5 // horizontal drag is ceil(|vx| / DragDivisor) per tick
	StartingLives        = 3
	RespawnInvincibility = 2000 * time.Millisecond
	KnockbackSpeed       = -30
	MeleeGap             = 20
	MeleeDuration        = 1000 * time.Millisecond
	MeleeDamage          = 20
)

// MovementMode tells whether an avatar is under regular physics or
// following a movement ability
type MovementMode int

const (
	MoveRegular MovementMode = iota
	MoveInAbility
)

// Avatar is a player-controlled fighter
type Avatar struct {
	Object
	Vitals
	SessionID       string
	Lives           int
	Jumps           int
	MaxJumps        int
	MaxSpeed        int
	Weapon          Weapon
	Holster         [weaponCount]bool
	Mode            MovementMode
	Ability         *MovementAbility
	UltimateCharged bool
	LastDash        time.Time
	LastLaunch      time.Time
	Facing          int // +1 right, -1 left
	Prev            Vec // box origin before this tick's move

	// per-match stats
	Deaths     int
	EnemyKills int
}

// Move advances the avatar one tick
func (a *Avatar) Move() {
	a.Prev = a.Box.Origin()
	if a.Mode == MoveInAbility {
		if a.Ability != nil && a.Ability.Step(&a.Box) {
			return
		}
		a.Mode = MoveRegular
		a.Ability = nil
		return
	}
	a.Box.Translate(a.Vel.X, a.Vel.Y)
	a.Vel.Y += Gravity
	a.Vel.X -= sign(a.Vel.X) * ((abs(a.Vel.X) + DragDivisor - 1) / DragDivisor)
	if a.Vel.X != 0 {
		a.Facing = sign(a.Vel.X)
	}
}

// SpeedUp pushes horizontal speed one step in dir, up to the kind's cap
func (a *Avatar) SpeedUp(dir int) {
	if dir >= 0 {
		if a.Vel.X < a.MaxSpeed {
			a.Vel.X = min(a.Vel.X+SpeedStep, a.MaxSpeed)
		}
		a.Facing = 1
		return
	}
	if a.Vel.X > -a.MaxSpeed {
		a.Vel.X = max(a.Vel.X-SpeedStep, -a.MaxSpeed)
	}
	a.Facing = -1
}

// Jump spends one jump if any remain
func (a *Avatar) Jump() bool {
	if a.Jumps <= 0 {
		return false
	}
	a.Vel.Y += JumpSpeed
	a.Jumps--
	return true
}

// Dash starts a horizontal dash in the facing direction
func (a *Avatar) Dash(now time.Time) bool {
	if a.Mode != MoveRegular || now.Sub(a.LastDash) <= DashCooldown {
		return false
	}
	a.LastDash = now
	a.Mode = MoveInAbility
	a.Ability = newDash(a.Facing)
	return true
}

// Launch starts a vertical launch
func (a *Avatar) Launch(now time.Time) bool {
	if a.Mode != MoveRegular || now.Sub(a.LastLaunch) <= LaunchCooldown {
		return false
	}
	a.LastLaunch = now
	a.Mode = MoveInAbility
	a.Ability = newLaunch()
	a.Vel.Y = 0
	return true
}

// SwitchWeapon selects the weapon for a slot (1-based). Slots outside
// the holster, or locked for this kind, are ignored.
func (a *Avatar) SwitchWeapon(slot int) bool {
	w := Weapon(slot - 1)
	if w < 0 || w >= weaponCount || !a.Holster[w] {
		return false
	}
	a.Weapon = w
	return true
}

// NewAttack produces the current weapon's attack aimed at aim. The
// returned attack has no ID yet; World.AddAttack assigns one.
func (a *Avatar) NewAttack(aim Vec, rng *rand.Rand, now time.Time) *Attack {
	switch a.Weapon {
	case WeaponGun:
		bloom := (rng.Float64()*2 - 1) * BulletBloom
		vel := projectileVelocity(a.Box.Center(), aim, bloom)
		return newProjectile(KindBullet, a.Box.Center(), vel, int(BulletDamage*a.DamageMult), a.ID, now)
	case WeaponRPG:
		vel := projectileVelocity(a.Box.Center(), aim, 0)
		return newProjectile(KindRocket, a.Box.Center(), vel, int(RocketDamage*a.DamageMult), a.ID, now)
	}
	box := NewHitbox(a.Box.Right()+MeleeGap, a.Box.Y, a.Box.W, a.Box.H)
	if a.Facing < 0 {
		box.X = a.Box.X - a.Box.W - MeleeGap
	}
	return &Attack{
		Object:    Object{Kind: KindMelee, Box: box},
		CreatorID: a.ID,
		Damage:    int(MeleeDamage * a.DamageMult),
		Born:      now,
	}
}

// Ultimate fires the kind's ultimate if it is charged. It returns nil
// when there is nothing to fire.
func (a *Avatar) Ultimate(now time.Time) *Attack {
	fn, ok := ultimates[a.Kind]
	if !a.UltimateCharged || !ok {
		return nil
	}
	a.UltimateCharged = false
	return newExplosion(a.Box.Center(), fn(a), a.ID, now)
}

// Respawn puts the avatar back at point with full health, one life
// fewer, and a short invincibility window.
func (a *Avatar) Respawn(point Vec, now time.Time) {
	a.Lives--
	a.Deaths++
	a.Health = a.MaxHealth
	a.Vel = Vec{}
	a.Weapon = WeaponMelee
	a.Mode = MoveRegular
	a.Ability = nil
	a.Jumps = a.MaxJumps
	a.Box.SetLocation(point.X, point.Y)
	a.Prev = point
	a.Box.LastCollided = now.Add(RespawnInvincibility)
}
