// Package sqlite stores high scores in a local SQLite database.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ storage.ScoreStore = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
		expanded, err := expandHome(dbPath)
		if err != nil {
			return nil, err
		}
		dbPath = expanded

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			lines INTEGER NOT NULL DEFAULT 0,
			created_ms INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(score DESC, level DESC, created_ms, id);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save records a finished game.
func (s *Store) Save(ctx context.Context, e storage.Entry) (storage.Entry, error) {
	e = storage.Normalize(e)
	e.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (player, score, level, lines, created_ms) VALUES (?, ?, ?, ?, ?)",
		e.Player, e.Score, e.Level, e.Lines, e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return storage.Entry{}, fmt.Errorf("storage: cannot save score: %w", err)
	}

	e.ID, err = result.LastInsertId()
	if err != nil {
		return storage.Entry{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return e, nil
}

// Top retrieves the best entries in leaderboard order.
func (s *Store) Top(ctx context.Context, limit int) ([]storage.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, score, level, lines, created_ms
		 FROM scores
		 ORDER BY score DESC, level DESC, created_ms ASC, id ASC
		 LIMIT ?`,
		storage.Limit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []storage.Entry
	for rows.Next() {
		var e storage.Entry
		var createdMs int64
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.Level, &e.Lines, &createdMs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdMs).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score, or 0 if no scores exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM scores").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Rank returns the leaderboard position of the player's best entry.
func (s *Store) Rank(ctx context.Context, player string) (int, error) {
	player = storage.NormalizePlayer(player)

	var id, createdMs int64
	var score, level int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, score, level, created_ms
		 FROM scores
		 WHERE player = ?
		 ORDER BY score DESC, level DESC, created_ms ASC, id ASC
		 LIMIT 1`,
		player,
	).Scan(&id, &score, &level, &createdMs)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score for %s: %w", player, err)
	}

	var ahead int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scores
		 WHERE score > ?1
		    OR (score = ?1 AND level > ?2)
		    OR (score = ?1 AND level = ?2 AND created_ms < ?3)
		    OR (score = ?1 AND level = ?2 AND created_ms = ?3 AND id < ?4)`,
		score, level, createdMs, id,
	).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot compute rank for %s: %w", player, err)
	}
	return ahead + 1, nil
}

// Clear deletes every score.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over every recorded game.
type Stats struct {
	Games      int
	HighScore  int
	AvgScore   float64
	TotalLines int
	LastPlayed time.Time
}

// Stats returns aggregate figures for the whole table.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var last sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(lines), 0), MAX(created_ms)
		 FROM scores`,
	).Scan(&st.Games, &st.HighScore, &st.AvgScore, &st.TotalLines, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if last.Valid {
		st.LastPlayed = time.UnixMilli(last.Int64).UTC()
	}
	return st, nil
}
