package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one finished game.
type Run struct {
	ID      int64
	GameID  string
	Score   int
	Reason  string // Why the run ended, e.g. "timeout" or "strikes"
	NewHigh bool   // The run set a new high score
	// CreatedAt defaults to now when recording.
	CreatedAt time.Time
}

// GameStats aggregates the runs of one game.
type GameStats struct {
	GameID     string
	Runs       int
	Best       int
	Average    float64
	Total      int64
	LastPlayed time.Time
	// Reasons counts runs per end reason.
	Reasons map[string]int
}

const runColumns = "id, game_id, score, reason, new_high, created_at"

// RecordRun appends a finished run and returns its ID.
func (s *Store) RecordRun(r Run) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (game_id, score, reason, new_high, created_at) VALUES (?, ?, ?, ?, ?)",
		r.GameID, r.Score, r.Reason, boolInt(r.NewHigh), r.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs of a game, highest score first. Ties keep
// the earlier run ahead. A non-positive limit means 10.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		"SELECT "+runColumns+" FROM runs WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?",
		gameID, limit,
	)
}

// RecentRuns returns the latest runs of a game, newest first. A
// non-positive limit returns every run.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	return s.queryRuns(
		"SELECT "+runColumns+" FROM runs WHERE game_id = ? ORDER BY id DESC LIMIT ?",
		gameID, limit,
	)
}

// Best returns the highest recorded score, or 0 without runs.
func (s *Store) Best(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE game_id = ?", gameID).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return int(score.Int64), nil
}

// ClearRuns deletes the history of a game and returns how many runs went.
func (s *Store) ClearRuns(gameID string) (int64, error) {
	result, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

// Stats aggregates the runs of one game. A game without runs yields zero
// counts and an empty Reasons map.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID, Reasons: make(map[string]int)}

	var last sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.Best, &stats.Average, &stats.Total, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if last.Valid {
		stats.LastPlayed = parseTime(last.String)
	}

	rows, err := s.db.Query(
		"SELECT reason, COUNT(*) FROM runs WHERE game_id = ? GROUP BY reason",
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count end reasons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan reason row: %w", err)
		}
		stats.Reasons[reason] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// PlayedGames returns the IDs of games with at least one run, sorted.
func (s *Store) PlayedGames() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT game_id FROM runs ORDER BY game_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan game row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Reason, &r.NewHigh, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.CreatedAt = parseTime(created)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTime reads the UTC DATETIME text written by RecordRun.
func parseTime(v string) time.Time {
	t, err := time.ParseInLocation(time.DateTime, v, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
