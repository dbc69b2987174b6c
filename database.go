package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// MatchRow represents a completed match
type MatchRow struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Duration  float64   `json:"duration"` // seconds
	Winner    string    `json:"winner"`
	Players   int       `json:"players"`
}

// OperatorRow represents an operator account
type OperatorRow struct {
	ID        int64
	Username  string
	PassHash  string
	CreatedAt time.Time
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite serialises writers; one connection keeps :memory: databases
	// shared too.
	conn.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		duration REAL NOT NULL DEFAULT 0,
		winner TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS match_players (
		match_id TEXT NOT NULL REFERENCES matches(id),
		session_id TEXT NOT NULL,
		avatar_id TEXT NOT NULL,
		avatar_kind TEXT NOT NULL,
		deaths INTEGER NOT NULL DEFAULT 0,
		enemy_kills INTEGER NOT NULL DEFAULT 0,
		eliminated INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (match_id, avatar_id)
	);

	CREATE TABLE IF NOT EXISTS analytics_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		session_id TEXT,
		data TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS operators (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		pass_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_type ON analytics_events(event_type, created_at);
	CREATE INDEX IF NOT EXISTS idx_matches_ended ON matches(ended_at);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// RecordMatch stores a finished match and its roster in one transaction
func (db *DB) RecordMatch(m MatchRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO matches (id, started_at, ended_at, duration, winner) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.StartedAt.UTC(), m.EndedAt.UTC(), m.Duration().Seconds(), m.Winner,
	)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", m.ID, err)
	}
	for _, p := range m.Players {
		_, err = tx.Exec(
			`INSERT INTO match_players (match_id, session_id, avatar_id, avatar_kind, deaths, enemy_kills, eliminated)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.ID, p.SessionID, p.AvatarID, p.AvatarKind, p.Deaths, p.EnemyKills, p.Eliminated,
		)
		if err != nil {
			return fmt.Errorf("insert player %s: %w", p.AvatarID, err)
		}
	}
	return tx.Commit()
}

// ListMatches returns the most recent matches, newest first
func (db *DB) ListMatches(limit int) ([]MatchRow, error) {
	rows, err := db.conn.Query(`
		SELECT m.id, m.started_at, m.ended_at, m.duration, m.winner,
			(SELECT COUNT(*) FROM match_players mp WHERE mp.match_id = m.id)
		FROM matches m
		ORDER BY m.ended_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MatchRow
	for rows.Next() {
		var r MatchRow
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.EndedAt, &r.Duration, &r.Winner, &r.Players); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetMatchPlayers returns the roster of one match
func (db *DB) GetMatchPlayers(matchID string) ([]MatchPlayer, error) {
	rows, err := db.conn.Query(`
		SELECT session_id, avatar_id, avatar_kind, deaths, enemy_kills, eliminated
		FROM match_players WHERE match_id = ?
		ORDER BY avatar_id`,
		matchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MatchPlayer
	for rows.Next() {
		var p MatchPlayer
		if err := rows.Scan(&p.SessionID, &p.AvatarID, &p.AvatarKind, &p.Deaths, &p.EnemyKills, &p.Eliminated); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetSetting returns a stored setting, or "" when unset
func (db *DB) GetSetting(key string) string {
	var v string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if err != nil {
		return ""
	}
	return v
}

func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// CreateOperator creates an operator account (returns its ID)
func (db *DB) CreateOperator(username, passHash string) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO operators (username, pass_hash) VALUES (?, ?)",
		username, passHash,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetOperatorByUsername returns an operator, or nil when none exists
func (db *DB) GetOperatorByUsername(username string) (*OperatorRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, pass_hash, created_at FROM operators WHERE username = ?",
		username,
	)
	o := &OperatorRow{}
	err := row.Scan(&o.ID, &o.Username, &o.PassHash, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return o, err
}

// OperatorExists checks if a username is taken
func (db *DB) OperatorExists(username string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM operators WHERE username = ?", username).Scan(&count)
	return count > 0, err
}
