// Package storage defines the high-score store shared by the sqlite, redis
// and in-memory backends, along with the normalization and ordering rules
// every backend applies.
package storage

import (
	"context"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultLimit is the size of the leaderboard when no limit is given.
	DefaultLimit = 10
	// MaxPlayerLen is the longest stored player name, in runes.
	MaxPlayerLen = 8
	// DefaultPlayer replaces empty player names.
	DefaultPlayer = "PLAYER"
)

// Entry is one finished game on the leaderboard.
type Entry struct {
	ID        int64
	Player    string
	Score     int
	Level     int
	Lines     int
	CreatedAt time.Time
}

// ScoreStore persists finished games.
type ScoreStore interface {
	// Save normalizes and stores e, returning the stored entry with its ID
	// and timestamp filled in.
	Save(ctx context.Context, e Entry) (Entry, error)
	// Top returns the best entries in leaderboard order. limit <= 0 means DefaultLimit.
	Top(ctx context.Context, limit int) ([]Entry, error)
	// HighScore returns the best score, or 0 for an empty store.
	HighScore(ctx context.Context) (int, error)
	// Rank returns the 1-based leaderboard position of player's best entry,
	// or 0 if the player has no entries.
	Rank(ctx context.Context, player string) (int, error)
	Clear(ctx context.Context) error
	Close() error
}

// Normalize applies the stored-value rules to e: the player name is trimmed,
// upper-cased and cut to MaxPlayerLen runes, and counters are clamped to
// their minimums.
func Normalize(e Entry) Entry {
	e.Player = NormalizePlayer(e.Player)
	e.Score = max(e.Score, 0)
	e.Level = max(e.Level, 1)
	e.Lines = max(e.Lines, 0)
	return e
}

// NormalizePlayer returns the stored form of a player name.
func NormalizePlayer(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return DefaultPlayer
	}
	if utf8.RuneCountInString(name) > MaxPlayerLen {
		name = string([]rune(name)[:MaxPlayerLen])
	}
	return name
}

// Less reports whether a ranks above b: higher score first, then higher
// level, then the earlier entry.
func Less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Sort orders entries best first.
func Sort(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		switch {
		case Less(a, b):
			return -1
		case Less(b, a):
			return 1
		}
		return 0
	})
}

// Limit returns limit, or DefaultLimit when limit is not positive.
func Limit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
