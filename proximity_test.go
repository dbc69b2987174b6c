package main

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinRadiusBoundary(t *testing.T) {
	ref := NewHitbox(0, 0, 10, 10)
	cases := []struct {
		x, y int
		want bool
	}{
		{500, 0, true},
		{501, 0, false},
		{300, 400, true},
		{354, 354, true}, // 500.63 truncates to 500
		{355, 355, false},
		{-500, 0, true},
	}
	for _, c := range cases {
		b := NewHitbox(c.x, c.y, 10, 10)
		if got := withinRadius(&b, &ref, ProximityRadius); got != c.want {
			t.Errorf("(%d,%d): expected %v, got %v", c.x, c.y, c.want, got)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	cases := [][3]int{{499, 500, 0}, {500, 500, 1}, {-1, 500, -1}, {-500, 500, -1}, {-501, 500, -2}}
	for _, c := range cases {
		if got := floorDiv(c[0], c[1]); got != c[2] {
			t.Errorf("floorDiv(%d, %d): expected %d, got %d", c[0], c[1], c[2], got)
		}
	}
}

func randomWorld(rng *rand.Rand, n int) *World {
	w := NewWorld()
	now := time.Unix(1000, 0)
	coord := func() int { return rng.Intn(6000) - 3000 }
	for i := 0; i < n; i++ {
		a, _ := NewAvatar(KindNorman, fmt.Sprintf("C-%d", i))
		a.Box.SetLocation(coord(), coord())
		w.Avatars = append(w.Avatars, a)

		e, _ := NewEnemy(KindThunderGuard, fmt.Sprintf("21-%d", i), Vec{coord(), coord()}, now)
		w.Enemies = append(w.Enemies, e)

		w.Attacks = append(w.Attacks, &Attack{
			Object: Object{ID: fmt.Sprintf("32-0.%d", i), Kind: KindBullet, Box: NewHitbox(coord(), coord(), 10, 20)},
		})
		w.Interactables = append(w.Interactables, &Interactable{
			Object: Object{ID: fmt.Sprintf("41-%d", i), Kind: KindWall, Box: NewHitbox(coord(), coord(), 200, 60)},
		})
	}
	return w
}

func TestProximityIndexMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	w := randomWorld(rng, 200)
	idx := NewProximityIndex(ProximityRadius)
	idx.Rebuild(w)

	for _, a := range w.Avatars {
		ref := &a.Box
		require.Equal(t, Near(w.Avatars, ref, ProximityRadius), idx.Avatars(ref), "avatars near %s", a.ID)
		require.Equal(t, Near(w.Enemies, ref, ProximityRadius), idx.Enemies(ref), "enemies near %s", a.ID)
		require.Equal(t, Near(w.Attacks, ref, ProximityRadius), idx.Attacks(ref), "attacks near %s", a.ID)
		require.Equal(t, Near(w.Interactables, ref, ProximityRadius), idx.Interactables(ref), "interactables near %s", a.ID)
	}
}

func TestProximityIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := randomWorld(rng, 150)
	idx := NewProximityIndex(ProximityRadius)
	idx.Rebuild(w)

	near := make(map[[2]string]bool)
	for _, a := range w.Avatars {
		for _, b := range idx.Avatars(&a.Box) {
			near[[2]string{a.ID, b.ID}] = true
		}
	}
	for pair := range near {
		assert.True(t, near[[2]string{pair[1], pair[0]}], "%s near %s but not the reverse", pair[0], pair[1])
	}
}

func TestProximityIncludesSelf(t *testing.T) {
	w := NewWorld()
	a, err := NewAvatar(KindTitan, "C-0")
	require.NoError(t, err)
	w.Avatars = append(w.Avatars, a)
	idx := NewProximityIndex(ProximityRadius)
	idx.Rebuild(w)
	assert.Equal(t, []*Avatar{a}, idx.Avatars(&a.Box))
}

func TestProximityRebuildDropsStale(t *testing.T) {
	w := NewWorld()
	a, _ := NewAvatar(KindNorman, "C-0")
	b, _ := NewAvatar(KindNorman, "C-1")
	b.Box.SetLocation(100, 0)
	w.Avatars = []*Avatar{a, b}
	idx := NewProximityIndex(ProximityRadius)
	idx.Rebuild(w)
	require.Len(t, idx.Avatars(&a.Box), 2)

	b.Box.SetLocation(5000, 0)
	idx.Rebuild(w)
	assert.Equal(t, []*Avatar{a}, idx.Avatars(&a.Box))
}
