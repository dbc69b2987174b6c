package main

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectileVelocity(t *testing.T) {
	assert.Equal(t, Vec{35, 0}, projectileVelocity(Vec{0, 0}, Vec{100, 0}, 0))
	assert.Equal(t, Vec{0, -35}, projectileVelocity(Vec{10, 10}, Vec{10, -90}, 0))
	assert.Equal(t, Vec{}, projectileVelocity(Vec{5, 5}, Vec{5, 5}, 0))
	// Purely vertical aim is still a real shot
	assert.NotEqual(t, Vec{}, projectileVelocity(Vec{5, 5}, Vec{5, 50}, 0))
}

func TestAvatarWeapons(t *testing.T) {
	now := time.Unix(1000, 0)
	rng := rand.New(rand.NewSource(1))
	a := newTestAvatar(t, KindNorman, "C-4")
	a.Box.SetLocation(200, 100)

	melee := a.NewAttack(Vec{0, 0}, rng, now)
	assert.Equal(t, KindMelee, melee.Kind)
	assert.Equal(t, a.Box.Right()+MeleeGap, melee.Box.X)
	assert.Equal(t, 22, melee.Damage)

	a.Facing = -1
	melee = a.NewAttack(Vec{0, 0}, rng, now)
	assert.Equal(t, a.Box.X-a.Box.W-MeleeGap, melee.Box.X)

	require.True(t, a.SwitchWeapon(2))
	bullet := a.NewAttack(Vec{1000, 100}, rng, now)
	assert.Equal(t, KindBullet, bullet.Kind)
	assert.Equal(t, 33, bullet.Damage)
	assert.Equal(t, "11-4", bullet.CreatorID)

	require.True(t, a.SwitchWeapon(3))
	rocket := a.NewAttack(Vec{1000, 164}, rng, now)
	assert.Equal(t, KindRocket, rocket.Kind)
	assert.Equal(t, Vec{35, 0}, rocket.Vel)

	assert.False(t, a.SwitchWeapon(4), "slot 4 is empty")
	assert.Equal(t, WeaponRPG, a.Weapon)

	g := newTestAvatar(t, KindGoblino, "C-5")
	assert.False(t, g.SwitchWeapon(3), "goblino cannot hold an RPG")
}

func TestMeleeExpires(t *testing.T) {
	born := time.Unix(1000, 0)
	at := &Attack{Object: Object{Kind: KindMelee}, Born: born}
	stepMelee(at, born.Add(MeleeDuration), nil)
	assert.False(t, at.Expired)
	stepMelee(at, born.Add(MeleeDuration+time.Millisecond), nil)
	assert.True(t, at.Expired)
}

func TestBulletDrops(t *testing.T) {
	now := time.Unix(1000, 0)
	at := newProjectile(KindBullet, Vec{0, 0}, Vec{35, 0}, 30, "11-0", now)
	x0, y0 := at.Box.X, at.Box.Y
	stepBullet(at, now, nil)
	stepBullet(at, now, nil)
	assert.Equal(t, x0+70, at.Box.X)
	assert.Equal(t, y0+1, at.Box.Y)
	assert.Equal(t, 2, at.Vel.Y)

	stepBullet(at, now.Add(ProjectileMaxAge+time.Millisecond), nil)
	assert.True(t, at.Expired)
}

func TestExplosionGrowsThenBursts(t *testing.T) {
	now := time.Unix(1000, 0)
	rng := rand.New(rand.NewSource(7))
	ex := newExplosion(Vec{100, 100}, ExplosionDamage, "11-2", now)

	var shards []*Attack
	prev := ex.Radius
	for i := 0; i < 100 && !ex.Expired; i++ {
		shards = stepExplosion(ex, now, rng)
		require.Greater(t, ex.Radius, prev)
		prev = ex.Radius
	}
	require.True(t, ex.Expired)
	assert.Equal(t, ExplosionMaxRadius, ex.Radius)
	assert.Equal(t, 2*ExplosionMaxRadius, ex.Box.W)
	assert.Equal(t, Vec{100, 100}, ex.Box.Center())

	assert.GreaterOrEqual(t, len(shards), ShrapnelMin)
	assert.LessOrEqual(t, len(shards), ShrapnelMax)
	for _, s := range shards {
		assert.Equal(t, KindBullet, s.Kind)
		assert.Equal(t, ShrapnelDamage, s.Damage)
		assert.Equal(t, "11-2", s.CreatorID)
		assert.Equal(t, ShrapnelSize, s.Box.W)
	}
}

func TestUltimateNeedsCharge(t *testing.T) {
	now := time.Unix(1000, 0)
	a := newTestAvatar(t, KindNorman, "C-0")
	assert.Nil(t, a.Ultimate(now))

	a.UltimateCharged = true
	ex := a.Ultimate(now)
	require.NotNil(t, ex)
	assert.Equal(t, KindExplosion, ex.Kind)
	assert.Equal(t, 80, ex.Damage)
	assert.Equal(t, StartingLives+1, a.Lives)
	assert.False(t, a.UltimateCharged)
}

func TestAttackIDs(t *testing.T) {
	w := NewWorld()
	now := time.Unix(1000, 0)
	mk := func(kind Kind) *Attack {
		return &Attack{Object: Object{Kind: kind}, CreatorID: "11-4", Born: now}
	}
	a0, a1 := mk(KindBullet), mk(KindBullet)
	w.AddAttack(a0)
	w.AddAttack(a1)
	assert.Equal(t, "32-4.0", a0.ID)
	assert.Equal(t, "32-4.1", a1.ID)

	m := mk(KindMelee)
	w.AddAttack(m)
	assert.Equal(t, "31-4.0", m.ID)

	a0.Expired = true
	assert.Equal(t, []string{"32-4.0"}, w.RemoveExpiredAttacks())
	a2 := mk(KindBullet)
	w.AddAttack(a2)
	assert.Equal(t, "32-4.0", a2.ID, "freed number is reused")
}
