package main

import (
	"fmt"
	"slices"
	"time"
)

const KillPlaneDepth = 2000 // px below the lowest interactable

// World holds the four entity collections. It is owned by the game loop
// goroutine; nothing else touches it.
type World struct {
	Avatars       []*Avatar
	Enemies       []*Enemy
	Attacks       []*Attack
	Interactables []*Interactable

	Respawn     Vec
	EnemySpawns []Vec
	KillY       int
	HasKillY    bool
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{}
}

// AvatarBySession finds the avatar bound to a session by ID suffix
func (w *World) AvatarBySession(sessionID string) *Avatar {
	suffix := idSuffix(sessionID)
	for _, a := range w.Avatars {
		if a.Suffix() == suffix {
			return a
		}
	}
	return nil
}

// AvatarByID finds an avatar by its full ID
func (w *World) AvatarByID(id string) *Avatar {
	for _, a := range w.Avatars {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// PutAvatar inserts a, replacing any avatar already bound to the same
// session. It returns the replaced avatar, if any.
func (w *World) PutAvatar(a *Avatar) *Avatar {
	suffix := a.Suffix()
	for i, old := range w.Avatars {
		if old.Suffix() == suffix {
			w.Avatars[i] = a
			return old
		}
	}
	w.Avatars = append(w.Avatars, a)
	return nil
}

// RemoveAvatar removes the avatar with the given ID
func (w *World) RemoveAvatar(id string) bool {
	n := len(w.Avatars)
	w.Avatars = slices.DeleteFunc(w.Avatars, func(a *Avatar) bool { return a.ID == id })
	return len(w.Avatars) != n
}

// SpawnEnemy creates an enemy of kind at pos with the lowest free ID
func (w *World) SpawnEnemy(kind Kind, pos Vec, now time.Time) (*Enemy, error) {
	taken := make(map[int]bool)
	for _, e := range w.Enemies {
		if e.Kind != kind {
			continue
		}
		if n, ok := suffixNumber(e.Suffix()); ok {
			taken[n] = true
		}
	}
	id := fmt.Sprintf("%s%d", kind.Prefix(), lowestUnused(taken))
	e, err := NewEnemy(kind, id, pos, now)
	if err != nil {
		return nil, err
	}
	w.Enemies = append(w.Enemies, e)
	return e, nil
}

// AddAttack assigns at an ID and inserts it. Attack IDs embed the
// creator's suffix followed by the lowest number free for that kind and
// creator: "32-4.0", "32-4.1", ...
func (w *World) AddAttack(at *Attack) {
	owner := idSuffix(at.CreatorID)
	taken := make(map[int]bool)
	for _, other := range w.Attacks {
		if other.Kind != at.Kind || creatorSuffix(other.ID) != owner {
			continue
		}
		s := other.Suffix()
		if n, ok := suffixNumber(s[len(owner)+1:]); ok {
			taken[n] = true
		}
	}
	at.ID = fmt.Sprintf("%s%s.%d", at.Kind.Prefix(), owner, lowestUnused(taken))
	w.Attacks = append(w.Attacks, at)
}

// RemoveExpiredAttacks drops every attack marked Expired and returns
// their IDs in world order
func (w *World) RemoveExpiredAttacks() []string {
	var ids []string
	w.Attacks = slices.DeleteFunc(w.Attacks, func(at *Attack) bool {
		if at.Expired {
			ids = append(ids, at.ID)
		}
		return at.Expired
	})
	return ids
}

// RemoveDeadEnemies drops enemies whose health fell below zero
func (w *World) RemoveDeadEnemies() []*Enemy {
	var dead []*Enemy
	w.Enemies = slices.DeleteFunc(w.Enemies, func(e *Enemy) bool {
		if e.Dead() {
			dead = append(dead, e)
		}
		return e.Dead()
	})
	return dead
}

// Install loads the map's interactables and spawn points into the world
func (w *World) Install(m *MapData, now time.Time) {
	w.Respawn = m.Respawn
	w.EnemySpawns = slices.Clone(m.EnemySpawns)
	w.Interactables = w.Interactables[:0]
	lowest, found := 0, false
	for _, spec := range m.Interactables {
		it := &Interactable{
			Object:   Object{ID: spec.ID, Kind: spec.Kind, Box: spec.Box},
			Damage:   spec.Damage,
			Boost:    spec.Boost,
			Mult:     spec.Mult,
			LastUsed: now,
		}
		w.Interactables = append(w.Interactables, it)
		if b := it.Box.Bottom(); !found || b > lowest {
			lowest, found = b, true
		}
	}
	w.KillY = lowest + KillPlaneDepth
	w.HasKillY = found
}

// belowKillPlane reports whether a box has fallen out of the level
func (w *World) belowKillPlane(box *Hitbox) bool {
	return w.HasKillY && box.Top() > w.KillY
}

// Each visits every entity in broadcast order: avatars, attacks,
// enemies, interactables.
func (w *World) Each(fn func(o *Object)) {
	for _, a := range w.Avatars {
		fn(&a.Object)
	}
	for _, at := range w.Attacks {
		fn(&at.Object)
	}
	for _, e := range w.Enemies {
		fn(&e.Object)
	}
	for _, it := range w.Interactables {
		fn(&it.Object)
	}
}
