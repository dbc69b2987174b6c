package main

import (
	"math"
	"math/rand"
	"time"
)

const (
	ProjectileSpeed        = 35
	ProjectileMaxAge       = 10 * time.Second
	BulletDrop             = 1
	BulletBloom            = 0.1 // max aim deviation, radians
	BulletDamage           = 30
	BulletW, BulletH       = 10, 20
	RocketDamage           = 30
	RocketW, RocketH       = 20, 40
	ExplosionInitialRadius = 5
	ExplosionMaxRadius     = 50
	ExplosionDamage        = 80
	ShrapnelMin            = 5
	ShrapnelMax            = 24
	ShrapnelSize           = 20
	ShrapnelDamage         = 20
)

// Attack is a melee swing, projectile or explosion
type Attack struct {
	Object
	CreatorID string // full ID of the entity that spawned it
	Damage    int
	Vel       Vec
	Radius    int // explosions only
	Born      time.Time
	Expired   bool // marked for removal at the end of the tick
}

func newProjectile(kind Kind, center, vel Vec, damage int, creator string, now time.Time) *Attack {
	w, h := BulletW, BulletH
	if kind == KindRocket {
		w, h = RocketW, RocketH
	}
	return &Attack{
		Object:    Object{Kind: kind, Box: CenteredHitbox(center, w, h)},
		CreatorID: creator,
		Damage:    damage,
		Vel:       vel,
		Born:      now,
	}
}

func newExplosion(center Vec, damage int, creator string, now time.Time) *Attack {
	r := ExplosionInitialRadius
	return &Attack{
		Object:    Object{Kind: KindExplosion, Box: NewHitbox(center.X-r, center.Y-r, 2*r, 2*r)},
		CreatorID: creator,
		Damage:    damage,
		Radius:    r,
		Born:      now,
	}
}

// projectileVelocity returns a ProjectileSpeed velocity from from toward
// to, rotated by bloom radians. Aiming at the origin itself yields zero.
func projectileVelocity(from, to Vec, bloom float64) Vec {
	d := to.Sub(from)
	if d.X == 0 && d.Y == 0 {
		return Vec{}
	}
	angle := math.Atan2(float64(d.Y), float64(d.X)) + bloom
	return Vec{
		X: int(math.Round(math.Cos(angle) * ProjectileSpeed)),
		Y: int(math.Round(math.Sin(angle) * ProjectileSpeed)),
	}
}

// attackStep advances one attack by a tick and returns any attacks it
// spawned.
type attackStep func(at *Attack, now time.Time, rng *rand.Rand) []*Attack

var attackSteps = map[Kind]attackStep{
	KindMelee:     stepMelee,
	KindBullet:    stepBullet,
	KindRocket:    stepRocket,
	KindExplosion: stepExplosion,
}

func stepMelee(at *Attack, now time.Time, _ *rand.Rand) []*Attack {
	if now.Sub(at.Born) > MeleeDuration {
		at.Expired = true
	}
	return nil
}

func stepBullet(at *Attack, now time.Time, _ *rand.Rand) []*Attack {
	at.Box.Translate(at.Vel.X, at.Vel.Y)
	at.Vel.Y += BulletDrop
	if now.Sub(at.Born) > ProjectileMaxAge {
		at.Expired = true
	}
	return nil
}

func stepRocket(at *Attack, now time.Time, _ *rand.Rand) []*Attack {
	at.Box.Translate(at.Vel.X, at.Vel.Y)
	if now.Sub(at.Born) > ProjectileMaxAge {
		at.Expired = true
	}
	return nil
}

// stepExplosion grows the blast on every side. Growth slows as the
// radius nears its maximum; on reaching it the blast bursts into
// shrapnel and is removed.
func stepExplosion(at *Attack, now time.Time, rng *rand.Rand) []*Attack {
	grow := (ExplosionMaxRadius-at.Radius)/6 + 1
	at.Radius += grow
	at.Box.X -= grow
	at.Box.Y -= grow
	at.Box.W += 2 * grow
	at.Box.H += 2 * grow
	if at.Radius < ExplosionMaxRadius {
		return nil
	}
	at.Expired = true
	return shrapnel(at, now, rng)
}

func shrapnel(at *Attack, now time.Time, rng *rand.Rand) []*Attack {
	n := ShrapnelMin + rng.Intn(ShrapnelMax-ShrapnelMin+1)
	center := at.Box.Center()
	out := make([]*Attack, 0, n)
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		vel := Vec{
			X: int(math.Round(math.Cos(angle) * ProjectileSpeed)),
			Y: int(math.Round(math.Sin(angle) * ProjectileSpeed)),
		}
		out = append(out, &Attack{
			Object:    Object{Kind: KindBullet, Box: CenteredHitbox(center, ShrapnelSize, ShrapnelSize)},
			CreatorID: at.CreatorID,
			Damage:    ShrapnelDamage,
			Vel:       vel,
			Born:      now,
		})
	}
	return out
}

// impactRules decides what a projectile does when it hits a solid or a
// body. Kinds without a rule (melee, explosions) pass through and live
// out their own lifetime.
var impactRules = map[Kind]func(at *Attack, now time.Time) *Attack{
	KindRocket: func(at *Attack, now time.Time) *Attack {
		at.Expired = true
		return newExplosion(at.Box.Center(), ExplosionDamage, at.CreatorID, now)
	},
	KindBullet: func(at *Attack, _ time.Time) *Attack {
		at.Expired = true
		return nil
	},
}
