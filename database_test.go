package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordMatch(t *testing.T) {
	db := openTestDB(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := MatchRecord{
		ID:        "0f8c2f7e-0000-4000-8000-000000000001",
		StartedAt: start,
		EndedAt:   start.Add(90 * time.Second),
		Winner:    "13-1",
		Players: []MatchPlayer{
			{SessionID: "C-0", AvatarID: "11-0", AvatarKind: "norman", Deaths: 3, Eliminated: true},
			{SessionID: "C-1", AvatarID: "13-1", AvatarKind: "titan", Deaths: 1, EnemyKills: 2},
		},
	}
	require.NoError(t, db.RecordMatch(rec))

	matches, err := db.ListMatches(10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, rec.ID, m.ID)
	assert.Equal(t, "13-1", m.Winner)
	assert.Equal(t, 2, m.Players)
	assert.InDelta(t, 90, m.Duration, 1e-6)
	assert.True(t, m.StartedAt.Equal(start))

	players, err := db.GetMatchPlayers(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Players, players)

	// A match ID is recorded once
	assert.Error(t, db.RecordMatch(rec))
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)
	assert.Empty(t, db.GetSetting("missing"))
	require.NoError(t, db.SetSetting("k", "v1"))
	require.NoError(t, db.SetSetting("k", "v2"))
	assert.Equal(t, "v2", db.GetSetting("k"))
}

func TestOperators(t *testing.T) {
	db := openTestDB(t)
	op, err := db.GetOperatorByUsername("admin")
	require.NoError(t, err)
	assert.Nil(t, op)

	id, err := db.CreateOperator("admin", "hash")
	require.NoError(t, err)
	exists, err := db.OperatorExists("admin")
	require.NoError(t, err)
	assert.True(t, exists)

	op, err = db.GetOperatorByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, op)
	assert.Equal(t, id, op.ID)
	assert.Equal(t, "hash", op.PassHash)

	_, err = db.CreateOperator("admin", "other")
	assert.Error(t, err, "usernames are unique")
}

func TestAnalyticsFlushOnStop(t *testing.T) {
	db := openTestDB(t)
	a := NewAnalytics(db)
	a.Track(EvtSessionStart, "C-0", "")
	a.Track(EvtSessionStart, "C-1", "")
	a.Track(EvtMatchStart, "", `{"match":"x"}`)
	a.Stop()

	counts, err := a.EventCounts(7)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[EvtSessionStart])
	assert.Equal(t, 1, counts[EvtMatchStart])

	// Tracking after stop is dropped, not a panic
	a.Track(EvtSessionEnd, "C-0", "")
	a.Stop()
}

func TestNilAnalytics(t *testing.T) {
	var a *Analytics
	a.Track(EvtSessionStart, "C-0", "")
	a.Stop()
	counts, err := a.EventCounts(1)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
