package main

import (
	"fmt"
	"sort"

	"github.com/sasha-s/go-deadlock"
)

const sessionPrefix = "C-"

// SessionRegistry tracks live session IDs and their lobby readiness
type SessionRegistry struct {
	mu    deadlock.RWMutex
	ready map[string]bool // session ID -> ready
}

// NewSessionRegistry creates an empty registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{ready: make(map[string]bool)}
}

// Add allocates the lowest unused "C-n" ID
func (r *SessionRegistry) Add() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	taken := make(map[int]bool, len(r.ready))
	for id := range r.ready {
		if n, ok := suffixNumber(idSuffix(id)); ok {
			taken[n] = true
		}
	}
	id := fmt.Sprintf("%s%d", sessionPrefix, lowestUnused(taken))
	r.ready[id] = false
	return id
}

// Remove forgets a session
func (r *SessionRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ready[id]; !ok {
		return false
	}
	delete(r.ready, id)
	return true
}

// MarkReady flags a known session as ready
func (r *SessionRegistry) MarkReady(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ready[id]; !ok {
		return false
	}
	r.ready[id] = true
	return true
}

// AllReady reports whether there is at least one session and every
// session is ready
func (r *SessionRegistry) AllReady() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.ready) == 0 {
		return false
	}
	for _, ok := range r.ready {
		if !ok {
			return false
		}
	}
	return true
}

// Count returns the number of live sessions
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ready)
}

// IDs returns the live session IDs, sorted
func (r *SessionRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.ready))
	for id := range r.ready {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
