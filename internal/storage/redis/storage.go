// Package redis stores high scores in Redis: each entry is a JSON record and
// sorted sets index the entries by score, overall and per player.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Store is a Redis-backed score store.
type Store struct {
	client *redis.Client
	cfg    Config
	now    func() time.Time
}

// Ensure Store implements the interface
var _ storage.ScoreStore = (*Store)(nil)

// record is the JSON form of an entry.
type record struct {
	ID        int64     `json:"id"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Lines     int       `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

func (r record) entry() storage.Entry {
	return storage.Entry{
		ID:        r.ID,
		Player:    r.Player,
		Score:     r.Score,
		Level:     r.Level,
		Lines:     r.Lines,
		CreatedAt: r.CreatedAt,
	}
}

// New connects to the server named by cfg.URL.
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("storage: invalid redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot reach redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Store{
		client: client,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Save stores a finished game and indexes it.
func (s *Store) Save(ctx context.Context, e storage.Entry) (storage.Entry, error) {
	e = storage.Normalize(e)
	e.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	id, err := s.client.Incr(ctx, s.sequenceKey()).Result()
	if err != nil {
		return storage.Entry{}, fmt.Errorf("storage: cannot allocate entry id: %w", err)
	}
	e.ID = id

	data, err := json.Marshal(record(e))
	if err != nil {
		return storage.Entry{}, fmt.Errorf("storage: cannot encode entry: %w", err)
	}

	z := redis.Z{Score: float64(e.Score), Member: member(id)}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.entryKey(member(id)), data, 0)
		pipe.ZAdd(ctx, s.leaderboardKey(), z)
		pipe.ZAdd(ctx, s.playerKey(e.Player), z)
		pipe.SAdd(ctx, s.playersKey(), e.Player)
		return nil
	})
	if err != nil {
		return storage.Entry{}, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return e, nil
}

// Top returns the best entries in leaderboard order. Entries tied on score
// with the last one fetched are loaded too so the tie-break order holds.
func (s *Store) Top(ctx context.Context, limit int) ([]storage.Entry, error) {
	limit = storage.Limit(limit)

	top, err := s.client.ZRevRangeWithScores(ctx, s.leaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	if len(top) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(top))
	for _, z := range top {
		ids = append(ids, z.Member.(string))
	}
	if len(top) == limit {
		cutoff := int(top[len(top)-1].Score)
		tied, err := s.idsWithScore(ctx, s.leaderboardKey(), cutoff)
		if err != nil {
			return nil, err
		}
		for _, id := range tied {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}

	entries, err := s.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	storage.Sort(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// HighScore returns the best score, or 0 for an empty board.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	top, err := s.client.ZRevRangeWithScores(ctx, s.leaderboardKey(), 0, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if len(top) == 0 {
		return 0, nil
	}
	return int(top[0].Score), nil
}

// Rank returns the leaderboard position of the player's best entry.
func (s *Store) Rank(ctx context.Context, player string) (int, error) {
	player = storage.NormalizePlayer(player)

	best, err := s.client.ZRevRangeWithScores(ctx, s.playerKey(player), 0, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score for %s: %w", player, err)
	}
	if len(best) == 0 {
		return 0, nil
	}
	score := int(best[0].Score)

	// The player's own ties are resolved first to find their best entry.
	own, err := s.entriesWithScore(ctx, s.playerKey(player), score)
	if err != nil {
		return 0, err
	}
	if len(own) == 0 {
		return 0, nil
	}
	storage.Sort(own)
	mine := own[0]

	ahead, err := s.client.ZCount(ctx, s.leaderboardKey(), "("+scoreBound(score), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count higher scores: %w", err)
	}

	tied, err := s.entriesWithScore(ctx, s.leaderboardKey(), score)
	if err != nil {
		return 0, err
	}
	for _, e := range tied {
		if storage.Less(e, mine) {
			ahead++
		}
	}
	return int(ahead) + 1, nil
}

// Clear deletes the keys this store wrote: entries, player boards, the
// leaderboard and the ID counter. Keys of other prefixes are never touched,
// even when their prefix starts with this one.
func (s *Store) Clear(ctx context.Context) error {
	ids, err := s.client.ZRange(ctx, s.leaderboardKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("storage: cannot list entries: %w", err)
	}
	players, err := s.client.SMembers(ctx, s.playersKey()).Result()
	if err != nil {
		return fmt.Errorf("storage: cannot list players: %w", err)
	}

	keys := make([]string, 0, len(ids)+len(players)+3)
	for _, id := range ids {
		keys = append(keys, s.entryKey(id))
	}
	for _, p := range players {
		keys = append(keys, s.playerKey(p))
	}
	keys = append(keys, s.leaderboardKey(), s.playersKey(), s.sequenceKey())

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

func (s *Store) idsWithScore(ctx context.Context, key string, score int) ([]string, error) {
	bound := scoreBound(score)
	ids, err := s.client.ZRangeByScore(ctx, key, &redis.ZRangeBy{Min: bound, Max: bound}).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tied scores: %w", err)
	}
	return ids, nil
}

func (s *Store) entriesWithScore(ctx context.Context, key string, score int) ([]storage.Entry, error) {
	ids, err := s.idsWithScore(ctx, key, score)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, ids)
}

// load fetches entry records by ID. IDs whose record is gone are skipped.
func (s *Store) load(ctx context.Context, ids []string) ([]storage.Entry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.entryKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load entries: %w", err)
	}

	entries := make([]storage.Entry, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var r record
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("storage: cannot decode entry %s: %w", ids[i], err)
		}
		entries = append(entries, r.entry())
	}
	return entries, nil
}
