package main

import "time"

const (
	DashSpeed      = 40
	DashDistance   = 150
	DashCooldown   = 2000 * time.Millisecond
	LaunchSpeed    = -50
	LaunchDistance = 300
	LaunchCooldown = 5000 * time.Millisecond
	JumpSpeed      = -50
)

// AbilityKind identifies a movement ability
type AbilityKind int

const (
	AbilityDash AbilityKind = iota
	AbilityLaunch
)

// MovementAbility is an in-progress dash or launch: straight-line motion
// until Limit pixels have been covered.
type MovementAbility struct {
	Kind     AbilityKind
	Vel      Vec
	Traveled int
	Limit    int
}

func newDash(facing int) *MovementAbility {
	return &MovementAbility{Kind: AbilityDash, Vel: Vec{DashSpeed * facing, 0}, Limit: DashDistance}
}

func newLaunch() *MovementAbility {
	return &MovementAbility{Kind: AbilityLaunch, Vel: Vec{0, LaunchSpeed}, Limit: LaunchDistance}
}

// Step moves box one tick along the ability path. It returns false once
// the travel distance is used up, without moving.
func (m *MovementAbility) Step(box *Hitbox) bool {
	if m.Traveled >= m.Limit {
		return false
	}
	m.Traveled += abs(m.Vel.X) + abs(m.Vel.Y)
	box.Translate(m.Vel.X, m.Vel.Y)
	return true
}

// ultimates applies a kind's ultimate buff and returns the damage of the
// explosion it releases.
var ultimates = map[Kind]func(a *Avatar) int{
	KindNorman: func(a *Avatar) int {
		a.Lives++
		return 80
	},
	KindTitan: func(a *Avatar) int {
		a.MaxHealth *= 2
		a.Health = a.MaxHealth
		a.DamageMult += 0.1
		a.DefenseMult += 0.5
		return 40
	},
	KindGoblino: func(a *Avatar) int {
		a.MaxJumps++
		a.Health = a.MaxHealth
		a.DamageMult += 0.5
		a.DefenseMult += 0.1
		return 80
	},
}
