package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// InteractableSpec is one Wall/Hazard/PowerUp record of a map file
type InteractableSpec struct {
	ID     string
	Kind   Kind
	Box    Hitbox
	Damage int
	Boost  BoostType
	Mult   float64
}

// MapData is a parsed map file
type MapData struct {
	Respawn       Vec
	EnemySpawns   []Vec
	Interactables []InteractableSpec
}

// LoadMap reads and parses a map file from disk
func LoadMap(path string) (*MapData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	m, err := ParseMap(f)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	return m, nil
}

// recordFields is the number of fields after the record name
var recordFields = map[string]int{
	"Wall":    5, // id x y w h
	"Hazard":  6, // id x y w h damage
	"PowerUp": 7, // id x y w h boostType multiplier
}

var recordKinds = map[string]Kind{
	"Wall":    KindWall,
	"Hazard":  KindHazard,
	"PowerUp": KindPowerUp,
}

// ParseMap reads the line-oriented map format:
//
//	<respawn x> <respawn y>
//	<enemy x> <enemy y> ...
//	Wall <id> <x> <y> <w> <h>
//	Hazard <id> <x> <y> <w> <h> <damage>
//	PowerUp <id> <x> <y> <w> <h> <boostType> <multiplier>
//
// Records may be spread over any number of lines.
func ParseMap(r io.Reader) (*MapData, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(lines) < 1 {
		return nil, fmt.Errorf("empty map")
	}

	m := &MapData{}
	respawn, err := ints(strings.Fields(lines[0]))
	if err != nil || len(respawn) != 2 {
		return nil, fmt.Errorf("line 1: want respawn \"x y\", got %q", lines[0])
	}
	m.Respawn = Vec{respawn[0], respawn[1]}

	if len(lines) >= 2 {
		spawns, err := ints(strings.Fields(lines[1]))
		if err != nil || len(spawns)%2 != 0 {
			return nil, fmt.Errorf("line 2: want enemy spawn pairs, got %q", lines[1])
		}
		for i := 0; i < len(spawns); i += 2 {
			m.EnemySpawns = append(m.EnemySpawns, Vec{spawns[i], spawns[i+1]})
		}
	}

	var tokens []string
	if len(lines) > 2 {
		tokens = strings.Fields(strings.Join(lines[2:], " "))
	}
	seen := make(map[string]bool)
	for len(tokens) > 0 {
		name := tokens[0]
		n, ok := recordFields[name]
		if !ok {
			return nil, fmt.Errorf("unknown record %q", name)
		}
		if len(tokens) < n+1 {
			return nil, fmt.Errorf("%s record truncated", name)
		}
		rec, err := parseRecord(recordKinds[name], tokens[1:n+1])
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", name, tokens[1], err)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("duplicate id %s", rec.ID)
		}
		seen[rec.ID] = true
		m.Interactables = append(m.Interactables, rec)
		tokens = tokens[n+1:]
	}
	return m, nil
}

func parseRecord(kind Kind, f []string) (InteractableSpec, error) {
	rec := InteractableSpec{Kind: kind, ID: interactableID(kind, f[0])}
	geo, err := ints(f[1:5])
	if err != nil {
		return rec, err
	}
	if geo[2] <= 0 || geo[3] <= 0 {
		return rec, fmt.Errorf("non-positive size %dx%d", geo[2], geo[3])
	}
	rec.Box = NewHitbox(geo[0], geo[1], geo[2], geo[3])
	switch kind {
	case KindHazard:
		if rec.Damage, err = strconv.Atoi(f[5]); err != nil {
			return rec, fmt.Errorf("damage: %w", err)
		}
	case KindPowerUp:
		if rec.Boost, err = ParseBoostType(f[5]); err != nil {
			return rec, err
		}
		if rec.Mult, err = strconv.ParseFloat(f[6], 64); err != nil {
			return rec, fmt.Errorf("multiplier: %w", err)
		}
	}
	return rec, nil
}

// interactableID accepts either a bare number or a fully prefixed ID
func interactableID(kind Kind, raw string) string {
	if strings.HasPrefix(raw, kind.Prefix()) {
		return raw
	}
	return kind.Prefix() + raw
}

func ints(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
