package main

import "fmt"

// Family groups entity kinds into the four world collections
type Family uint8

const (
	FamilyAvatar Family = iota + 1
	FamilyEnemy
	FamilyAttack
	FamilyInteractable
)

// Kind is the closed set of concrete entity kinds
type Kind uint8

const (
	KindNorman Kind = iota
	KindGoblino
	KindTitan
	KindThunderGuard
	KindMelee
	KindBullet
	KindRocket
	KindExplosion
	KindWall
	KindHazard
	KindPowerUp
	kindCount
)

type kindInfo struct {
	name   string
	prefix string
	family Family
}

// kinds is consulted by tag everywhere an entity's kind matters. The ID
// prefix is what clients use to pick sprites.
var kinds = [kindCount]kindInfo{
	KindNorman:       {"norman", "11-", FamilyAvatar},
	KindGoblino:      {"goblino", "12-", FamilyAvatar},
	KindTitan:        {"titan", "13-", FamilyAvatar},
	KindThunderGuard: {"thunderguard", "21-", FamilyEnemy},
	KindMelee:        {"melee", "31-", FamilyAttack},
	KindBullet:       {"bullet", "32-", FamilyAttack},
	KindRocket:       {"rocket", "33-", FamilyAttack},
	KindExplosion:    {"explosion", "34-", FamilyAttack},
	KindWall:         {"wall", "41-", FamilyInteractable},
	KindHazard:       {"hazard", "42-", FamilyInteractable},
	KindPowerUp:      {"powerup", "43-", FamilyInteractable},
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kinds[k].name
}

func (k Kind) Prefix() string { return kinds[k].prefix }
func (k Kind) Family() Family { return kinds[k].family }

// Projectile reports whether the kind flies with its own velocity
func (k Kind) Projectile() bool { return k == KindBullet || k == KindRocket }

// Object is the identity and shape shared by every entity
type Object struct {
	ID   string
	Kind Kind
	Box  Hitbox
}

func (o *Object) Obj() *Object { return o }

// Suffix is the identity part of the ID, without the kind prefix
func (o *Object) Suffix() string { return idSuffix(o.ID) }

// Positioned is anything in the world with an ID and a hitbox
type Positioned interface {
	Obj() *Object
}

// Damageable is implemented by entities with health
type Damageable interface {
	Positioned
	Life() *Vitals
}

// Vitals holds the health and motion state shared by avatars and enemies
type Vitals struct {
	Health      int
	MaxHealth   int
	Vel         Vec
	Defense     float64
	DamageMult  float64
	DefenseMult float64
}

func (v *Vitals) Life() *Vitals { return v }

// TakeDamage reduces health by damage scaled down by defense. The
// quotient is truncated toward zero.
func (v *Vitals) TakeDamage(damage int) {
	v.Health -= int(float64(damage) / (v.Defense * v.DefenseMult))
}

// Dead reports whether health dropped strictly below zero. Zero health
// is still alive.
func (v *Vitals) Dead() bool { return v.Health < 0 }
