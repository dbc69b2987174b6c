package main

import (
	"fmt"
	"time"
)

const (
	EnemyPassiveSpeed    = 5
	EnemyChargeUpSpeed   = 5
	EnemyAggressiveSpeed = 30
	EnemyChargeUp        = 1000 * time.Millisecond
	EnemyCooldown        = 500 * time.Millisecond
	EnemyMaxAggressive   = 3000 * time.Millisecond // a charge that never meets a wall still ends
	EdgeProbeInset       = 15
)

// Mood is an enemy's behavioural state
type Mood int

const (
	MoodPassive Mood = iota
	MoodCharging
	MoodAggressive
	MoodCooldown
)

func (m Mood) String() string {
	switch m {
	case MoodCharging:
		return "CHARGING"
	case MoodAggressive:
		return "AGGRESSIVE"
	case MoodCooldown:
		return "COOLDOWN"
	}
	return "PASSIVE"
}

// EnemyStats holds the fixed stats of one enemy kind
type EnemyStats struct {
	W, H          int
	MaxHealth     int
	Defense       float64
	DamageMult    float64
	DefenseMult   float64
	CollideDamage int
}

var enemyStats = map[Kind]EnemyStats{
	KindThunderGuard: {
		W: 75, H: 75, MaxHealth: 75,
		Defense: 1, DamageMult: 2, DefenseMult: 0.5,
		CollideDamage: 20,
	},
}

// Enemy is an AI-controlled brawler that charges avatars it can see
type Enemy struct {
	Object
	Vitals
	CollideDamage int
	Mood          Mood
	MoodSince     time.Time
	TargetID      string
	TargetRight   bool // which side the target was last seen on
	Facing        int
	Prev          Vec
}

// NewEnemy creates an enemy of kind with the given ID, standing at pos
func NewEnemy(kind Kind, id string, pos Vec, now time.Time) (*Enemy, error) {
	st, ok := enemyStats[kind]
	if !ok {
		return nil, fmt.Errorf("not an enemy kind: %s", kind)
	}
	return &Enemy{
		Object: Object{ID: id, Kind: kind, Box: NewHitbox(pos.X, pos.Y, st.W, st.H)},
		Vitals: Vitals{
			Health:      st.MaxHealth,
			MaxHealth:   st.MaxHealth,
			Vel:         Vec{EnemyPassiveSpeed, 0},
			Defense:     st.Defense,
			DamageMult:  st.DamageMult,
			DefenseMult: st.DefenseMult,
		},
		CollideDamage: st.CollideDamage,
		MoodSince:     now,
		Facing:        1,
		Prev:          pos,
	}, nil
}

func (e *Enemy) setMood(m Mood, now time.Time) {
	e.Mood = m
	e.MoodSince = now
}

// Update runs one tick of AI and movement. avatars and solids are the
// entities within proximity of the enemy.
func (e *Enemy) Update(now time.Time, avatars []*Avatar, solids []*Interactable) {
	e.Prev = e.Box.Origin()
	e.Vel.Y += Gravity
	elapsed := now.Sub(e.MoodSince)

	switch e.Mood {
	case MoodPassive:
		if t := e.pickTarget(avatars, solids); t != nil {
			e.startCharge(t, now)
			return
		}
		e.Box.Translate(e.Vel.X, e.Vel.Y)
		if abs(e.Vel.X) > EnemyPassiveSpeed {
			e.Vel.X -= e.Vel.X / 10
		}
	case MoodCharging:
		for _, a := range avatars {
			if a.ID == e.TargetID {
				e.TargetRight = a.Box.Center().X > e.Box.Center().X
				break
			}
		}
		if elapsed >= EnemyChargeUp {
			e.startAttack(now)
			return
		}
		e.Box.Translate(e.Vel.X, e.Vel.Y)
	case MoodAggressive:
		if elapsed >= EnemyMaxAggressive {
			e.startCooldown(now)
			return
		}
		e.Box.Translate(e.Vel.X, e.Vel.Y)
	case MoodCooldown:
		if elapsed >= EnemyCooldown {
			e.becomePassive(now)
		}
		e.Box.Translate(0, e.Vel.Y)
	}
	if e.Vel.X != 0 {
		e.Facing = sign(e.Vel.X)
	}
}

// pickTarget returns the nearest avatar with a clear line of sight
func (e *Enemy) pickTarget(avatars []*Avatar, solids []*Interactable) *Avatar {
	var best *Avatar
	bestDist := 0
	for _, a := range avatars {
		if !inSight(e.Box.Origin(), a.Box.Origin(), solids) {
			continue
		}
		d := Distance(e.Box.Center(), a.Box.Center())
		if best == nil || d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

// inSight reports whether the segment from -> to misses every solid
func inSight(from, to Vec, solids []*Interactable) bool {
	for _, s := range solids {
		if SegmentIntersectsBox(from, to, &s.Box) {
			return false
		}
	}
	return true
}

func (e *Enemy) startCharge(t *Avatar, now time.Time) {
	e.TargetID = t.ID
	e.TargetRight = t.Box.Center().X > e.Box.Center().X
	e.Vel.X = e.towardTarget(EnemyChargeUpSpeed)
	e.setMood(MoodCharging, now)
}

func (e *Enemy) startAttack(now time.Time) {
	e.Vel.X = e.towardTarget(EnemyAggressiveSpeed)
	e.setMood(MoodAggressive, now)
}

func (e *Enemy) startCooldown(now time.Time) {
	e.Vel.X = 0
	e.TargetID = ""
	e.setMood(MoodCooldown, now)
}

func (e *Enemy) becomePassive(now time.Time) {
	e.Vel.X = EnemyPassiveSpeed * e.Facing
	e.setMood(MoodPassive, now)
}

func (e *Enemy) towardTarget(speed int) int {
	if e.TargetRight {
		return speed
	}
	return -speed
}

// correct snaps the enemy out of a solid. Landing also checks for
// ledges against every supporting solid nearby.
func (e *Enemy) correct(s *Hitbox, support []*Interactable, now time.Time) {
	switch contactSideOf(&e.Box, e.Prev, s) {
	case sideTop:
		e.Box.Y = s.Top() - e.Box.H
		e.Vel.Y = 0
		e.checkLedge(support)
	case sideBottom:
		e.Box.Y = s.Bottom()
		e.Vel.Y = 0
	case sideLeft:
		e.Box.X = s.Left() - e.Box.W
		e.hitWall(now)
	case sideRight:
		e.Box.X = s.Right()
		e.hitWall(now)
	}
}

func (e *Enemy) hitWall(now time.Time) {
	if e.Mood == MoodAggressive {
		e.startCooldown(now)
		return
	}
	e.Vel.X = 0
}

// Ledge states found by probing the ground under an enemy's feet
type ledge int

const (
	ledgeNone ledge = iota
	ledgeLeft       // left foot unsupported
	ledgeRight      // right foot unsupported
	ledgeHanging    // a whole side unsupported
)

// probeLedge samples both bottom corners and two points inset from them
// against the supporting solids.
func probeLedge(box *Hitbox, support []*Interactable) ledge {
	y := box.Bottom()
	supported := func(x int) bool {
		for _, s := range support {
			if s.supports() && s.Box.Contains(x, y) {
				return true
			}
		}
		return false
	}
	left, right := box.Left(), box.Right()-1
	bl, bml := supported(left), supported(left+EdgeProbeInset)
	br, bmr := supported(right), supported(right-EdgeProbeInset)
	switch {
	case !bl && !bml && !br && !bmr:
		return ledgeNone
	case !bl && !bml, !br && !bmr:
		return ledgeHanging
	case !bl:
		return ledgeLeft
	case !br:
		return ledgeRight
	}
	return ledgeNone
}

// checkLedge kills an enemy hanging off a ledge by a whole side and turns
// back one that has just stepped over it.
func (e *Enemy) checkLedge(support []*Interactable) {
	switch probeLedge(&e.Box, support) {
	case ledgeHanging:
		e.Health = -1
	case ledgeLeft:
		if e.Vel.X < 0 {
			e.Vel.X = -e.Vel.X
			e.Box.Translate(e.Vel.X, 0)
		}
	case ledgeRight:
		if e.Vel.X > 0 {
			e.Vel.X = -e.Vel.X
			e.Box.Translate(e.Vel.X, 0)
		}
	}
}

// enemyContacts is the enemy-versus-interactable behaviour per kind
var enemyContacts = map[Kind]func(e *Enemy, it *Interactable, support []*Interactable, now time.Time){
	KindWall: func(e *Enemy, it *Interactable, support []*Interactable, now time.Time) {
		e.correct(&it.Box, support, now)
	},
	KindHazard: func(e *Enemy, _ *Interactable, _ []*Interactable, _ time.Time) {
		e.Health = -1
	},
	KindPowerUp: func(e *Enemy, it *Interactable, support []*Interactable, now time.Time) {
		e.correct(&it.Box, support, now)
	},
}

// touchSolid resolves one enemy/interactable pair if they are in contact
func (e *Enemy) touchSolid(it *Interactable, support []*Interactable, now time.Time) {
	if !touching(&e.Box, e.Vel, &it.Box) {
		return
	}
	if fn := enemyContacts[it.Kind]; fn != nil {
		fn(e, it, support, now)
	}
}
