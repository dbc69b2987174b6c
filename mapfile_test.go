package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMap = `600 200
300 500 1500 500
Wall 0 0 700 200 60
Wall 41-7 200 700
  200 60
Hazard 0 900 660 200 40 35
PowerUp 2 950 300 60 60 DEFENSE 0.3
`

func TestParseMap(t *testing.T) {
	m, err := ParseMap(strings.NewReader(sampleMap))
	require.NoError(t, err)

	assert.Equal(t, Vec{600, 200}, m.Respawn)
	assert.Equal(t, []Vec{{300, 500}, {1500, 500}}, m.EnemySpawns)
	require.Len(t, m.Interactables, 4)

	assert.Equal(t, "41-0", m.Interactables[0].ID)
	assert.Equal(t, "41-7", m.Interactables[1].ID, "records may span lines")
	assert.Equal(t, NewHitbox(200, 700, 200, 60), m.Interactables[1].Box)

	hz := m.Interactables[2]
	assert.Equal(t, KindHazard, hz.Kind)
	assert.Equal(t, 35, hz.Damage)

	pu := m.Interactables[3]
	assert.Equal(t, "43-2", pu.ID)
	assert.Equal(t, BoostDefense, pu.Boost)
	assert.InDelta(t, 0.3, pu.Mult, 1e-9)
}

func TestParseMapNoEnemies(t *testing.T) {
	m, err := ParseMap(strings.NewReader("10 20\n\nWall 0 0 100 100 10\n"))
	require.NoError(t, err)
	assert.Empty(t, m.EnemySpawns)
	assert.Len(t, m.Interactables, 1)
}

func TestParseMapErrors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"bad respawn":    "10\n",
		"odd spawns":     "0 0\n1 2 3\n",
		"unknown record": "0 0\n\nDoor 0 0 0 10 10\n",
		"truncated":      "0 0\n\nWall 0 0 0 10\n",
		"duplicate id":   "0 0\n\nWall 0 0 0 10 10 Wall 0 20 0 10 10\n",
		"zero size":      "0 0\n\nWall 0 0 0 0 10\n",
		"bad boost":      "0 0\n\nPowerUp 0 0 0 10 10 SPEED 1\n",
		"bad damage":     "0 0\n\nHazard 0 0 0 10 10 lots\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMap(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadBundledMap(t *testing.T) {
	m, err := LoadMap("maps/arena.txt")
	require.NoError(t, err)
	assert.Len(t, m.EnemySpawns, 2)

	walls := 0
	for _, it := range m.Interactables {
		if it.Kind == KindWall {
			walls++
			assert.LessOrEqual(t, it.Box.W, 2*ProximityRadius/5, "wall %s too wide for proximity", it.ID)
		}
	}
	assert.Equal(t, 22, walls)
}

func TestLoadMapMissing(t *testing.T) {
	_, err := LoadMap("maps/does-not-exist.txt")
	assert.Error(t, err)
}
