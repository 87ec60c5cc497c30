package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is a single finished playthrough.
type Run struct {
	ID         int64
	WorldID    string
	Player     string
	Elapsed    time.Duration
	Respawns   int
	Stomps     int
	Discovered int
	Signs      int
	CreatedAt  time.Time
}

// WorldStats contains aggregated statistics for a world.
type WorldStats struct {
	WorldID    string
	Runs       int
	Best       time.Duration
	Average    time.Duration
	LastPlayed time.Time
}

const runColumns = `id, world_id, player, elapsed_ms, respawns, stomps, discovered, signs, created_at`

// SaveRun records a finished run and returns its ID. A zero CreatedAt is
// replaced by the current time.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	var id int64
	err := s.db.QueryRow(
		s.dialect.rebind(`INSERT INTO runs
		 (world_id, player, elapsed_ms, respawns, stomps, discovered, signs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`),
		r.WorldID, r.Player, r.Elapsed.Milliseconds(),
		r.Respawns, r.Stomps, r.Discovered, r.Signs,
		r.CreatedAt.UnixMilli(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	return id, nil
}

// BestRuns retrieves the fastest runs for the given world.
// Ties are broken by fewer respawns, then by who finished first.
func (s *Store) BestRuns(worldID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		s.dialect.rebind(`SELECT `+runColumns+`
		 FROM runs
		 WHERE world_id = ?
		 ORDER BY elapsed_ms ASC, respawns ASC, created_at ASC
		 LIMIT ?`),
		worldID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all worlds.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		s.dialect.rebind(`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent runs: %w", err)
	}
	return scanRuns(rows)
}

// Best returns the fastest run for the given world, or nil if there is none.
func (s *Store) Best(worldID string) (*Run, error) {
	runs, err := s.BestRuns(worldID, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearRuns deletes all runs for the given world.
func (s *Store) ClearRuns(worldID string) error {
	_, err := s.db.Exec(s.dialect.rebind("DELETE FROM runs WHERE world_id = ?"), worldID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a world. A world without runs
// yields zero stats.
func (s *Store) Stats(worldID string) (*WorldStats, error) {
	stats := &WorldStats{WorldID: worldID}

	var best, last sql.NullInt64
	var avg sql.NullFloat64
	err := s.db.QueryRow(
		s.dialect.rebind(`SELECT COUNT(*), MIN(elapsed_ms), AVG(elapsed_ms), MAX(created_at)
		 FROM runs WHERE world_id = ?`),
		worldID,
	).Scan(&stats.Runs, &best, &avg, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get world stats: %w", err)
	}

	if best.Valid {
		stats.Best = time.Duration(best.Int64) * time.Millisecond
	}
	if avg.Valid {
		stats.Average = time.Duration(avg.Float64 * float64(time.Millisecond))
	}
	if last.Valid {
		stats.LastPlayed = time.UnixMilli(last.Int64)
	}

	return stats, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var elapsedMs, createdAt int64
		if err := rows.Scan(&r.ID, &r.WorldID, &r.Player, &elapsedMs,
			&r.Respawns, &r.Stomps, &r.Discovered, &r.Signs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		r.CreatedAt = time.UnixMilli(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}
