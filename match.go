package main

import (
	"sync/atomic"
	"time"
)

// Phase is the server-wide lifecycle of the one match it hosts
type Phase int32

const (
	PhaseLobby Phase = iota
	PhaseGame
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseGame:
		return "GAME"
	case PhaseOver:
		return "OVER"
	}
	return "LOBBY"
}

// PhaseMachine moves LOBBY -> GAME -> OVER. Each transition can happen
// at most once per server lifetime.
type PhaseMachine struct {
	v atomic.Int32
}

// Current returns the current phase
func (m *PhaseMachine) Current() Phase {
	return Phase(m.v.Load())
}

// StartGame moves LOBBY to GAME. Only the first caller succeeds.
func (m *PhaseMachine) StartGame() bool {
	return m.v.CompareAndSwap(int32(PhaseLobby), int32(PhaseGame))
}

// EndGame moves GAME to OVER. Only the first caller succeeds.
func (m *PhaseMachine) EndGame() bool {
	return m.v.CompareAndSwap(int32(PhaseGame), int32(PhaseOver))
}

// MatchPlayer is one avatar's participation in a match
type MatchPlayer struct {
	SessionID  string `json:"session_id"`
	AvatarID   string `json:"avatar_id"`
	AvatarKind string `json:"avatar_kind"`
	Deaths     int    `json:"deaths"`
	EnemyKills int    `json:"enemy_kills"`
	Eliminated bool   `json:"eliminated"`
}

// MatchRecord summarises a finished match
type MatchRecord struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Winner    string        `json:"winner"` // avatar ID, empty when nobody survived
	Players   []MatchPlayer `json:"players"`
}

// Duration is the match length
func (r MatchRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
