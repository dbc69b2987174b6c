package main

import (
	"fmt"
	"strings"
	"time"
)

const PowerUpRespawn = 20000 * time.Millisecond

// BoostType is the effect a power-up grants
type BoostType int

const (
	BoostDamage BoostType = iota
	BoostDefense
	BoostUltimate
)

func (b BoostType) String() string {
	switch b {
	case BoostDefense:
		return "DEFENSE"
	case BoostUltimate:
		return "ULTIMATE"
	}
	return "DAMAGE"
}

// ParseBoostType reads a map-file boost name
func ParseBoostType(s string) (BoostType, error) {
	switch strings.ToUpper(s) {
	case "DAMAGE":
		return BoostDamage, nil
	case "DEFENSE":
		return BoostDefense, nil
	case "ULTIMATE":
		return BoostUltimate, nil
	}
	return 0, fmt.Errorf("unknown boost type %q", s)
}

// Interactable is static level geometry: walls, hazards and power-ups
type Interactable struct {
	Object
	Damage   int       // hazards
	Boost    BoostType // power-ups
	Mult     float64   // power-ups
	LastUsed time.Time // power-ups; a fresh power-up counts as just used
}

// Available reports whether a power-up's cooldown has run out
func (it *Interactable) Available(now time.Time) bool {
	return now.Sub(it.LastUsed) > PowerUpRespawn
}

// Apply grants the power-up's boost to a if it is off cooldown
func (it *Interactable) Apply(a *Avatar, now time.Time) bool {
	if it.Kind != KindPowerUp || !it.Available(now) {
		return false
	}
	switch it.Boost {
	case BoostDamage:
		a.DamageMult += it.Mult
	case BoostDefense:
		a.DefenseMult += it.Mult
	case BoostUltimate:
		a.UltimateCharged = true
	}
	it.LastUsed = now
	return true
}

// blocksAvatars reports whether avatars collide with the interactable's
// body. Power-ups are walked through.
func (it *Interactable) blocksAvatars() bool {
	return it.Kind != KindPowerUp
}

// supports reports whether an enemy can count the interactable as
// ground when checking for ledges
func (it *Interactable) supports() bool {
	return it.Kind != KindPowerUp
}
