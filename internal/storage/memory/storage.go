// Package memory keeps high scores in process memory. It backs games that
// should not persist anything and the TUI tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Store is an in-memory implementation of storage.ScoreStore.
type Store struct {
	mu sync.RWMutex

	entries  []storage.Entry // kept sorted best first
	nextID   int64
	capacity int
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity keeps only the best n entries. n <= 0 keeps everything.
func WithCapacity(n int) Option {
	return func(s *Store) { s.capacity = n }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{nextID: 1, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure Store implements the interface
var _ storage.ScoreStore = (*Store)(nil)

func (s *Store) Save(ctx context.Context, e storage.Entry) (storage.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e = storage.Normalize(e)
	e.ID = s.nextID
	e.CreatedAt = s.now().UTC()
	s.nextID++

	s.entries = append(s.entries, e)
	storage.Sort(s.entries)
	if s.capacity > 0 && len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
	return e, nil
}

func (s *Store) Top(ctx context.Context, limit int) ([]storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(storage.Limit(limit), len(s.entries))
	out := make([]storage.Entry, n)
	copy(out, s.entries)
	return out, nil
}

func (s *Store) HighScore(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return 0, nil
	}
	return s.entries[0].Score, nil
}

func (s *Store) Rank(ctx context.Context, player string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player = storage.NormalizePlayer(player)
	for i, e := range s.entries {
		if e.Player == player {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
