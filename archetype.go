package main

import (
	"fmt"
	"strings"
)

// Weapon is an avatar's currently held weapon
type Weapon int

const (
	WeaponMelee Weapon = iota
	WeaponGun
	WeaponRPG
	weaponCount
)

func (w Weapon) String() string {
	switch w {
	case WeaponGun:
		return "gun"
	case WeaponRPG:
		return "rpg"
	}
	return "melee"
}

// Archetype holds the fixed stats of one avatar kind
type Archetype struct {
	W, H        int
	MaxHealth   int
	Defense     float64
	DamageMult  float64
	DefenseMult float64
	MaxJumps    int
	MaxSpeed    int // horizontal speed cap for start-moving requests
	Holster     [weaponCount]bool
}

var archetypes = map[Kind]Archetype{
	KindNorman: {
		W: 75, H: 128, MaxHealth: 100,
		Defense: 1.1, DamageMult: 1.1, DefenseMult: 1.1,
		MaxJumps: 2, MaxSpeed: 10,
		Holster: [weaponCount]bool{true, true, true},
	},
	KindGoblino: {
		W: 78, H: 96, MaxHealth: 75,
		Defense: 1, DamageMult: 2.0, DefenseMult: 0.5,
		MaxJumps: 3, MaxSpeed: 12,
		Holster: [weaponCount]bool{true, true, false},
	},
	KindTitan: {
		W: 105, H: 144, MaxHealth: 200,
		Defense: 1.5, DamageMult: 1.5, DefenseMult: 1.0,
		MaxJumps: 1, MaxSpeed: 8,
		Holster: [weaponCount]bool{true, true, false},
	},
}

// ParseAvatarKind maps a client-supplied kind name onto the closed set of
// avatar kinds. Anything else is rejected.
func ParseAvatarKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "norman":
		return KindNorman, true
	case "goblino":
		return KindGoblino, true
	case "titan":
		return KindTitan, true
	}
	return 0, false
}

// NewAvatar builds an avatar of the given kind for a session. Its ID is
// the kind prefix plus the session's numeric suffix.
func NewAvatar(kind Kind, sessionID string) (*Avatar, error) {
	arch, ok := archetypes[kind]
	if !ok {
		return nil, fmt.Errorf("not an avatar kind: %s", kind)
	}
	n, ok := suffixNumber(idSuffix(sessionID))
	if !ok {
		return nil, fmt.Errorf("bad session id %q", sessionID)
	}
	return &Avatar{
		Object: Object{
			ID:   fmt.Sprintf("%s%d", kind.Prefix(), n),
			Kind: kind,
			Box:  NewHitbox(0, 0, arch.W, arch.H),
		},
		Vitals: Vitals{
			Health:      arch.MaxHealth,
			MaxHealth:   arch.MaxHealth,
			Defense:     arch.Defense,
			DamageMult:  arch.DamageMult,
			DefenseMult: arch.DefenseMult,
		},
		SessionID: sessionID,
		Lives:     StartingLives,
		Jumps:     arch.MaxJumps,
		MaxJumps:  arch.MaxJumps,
		MaxSpeed:  arch.MaxSpeed,
		Holster:   arch.Holster,
		Facing:    1,
	}, nil
}
