package redis

import (
	"fmt"
	"strconv"
)

// leaderboardKey is the sorted set of every entry ID, scored by game score.
func (s *Store) leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", s.cfg.KeyPrefix)
}

// playerKey is the sorted set of one player's entry IDs.
func (s *Store) playerKey(player string) string {
	return fmt.Sprintf("%s:player:%s", s.cfg.KeyPrefix, player)
}

// entryKey holds the JSON record of one entry.
func (s *Store) entryKey(id string) string {
	return fmt.Sprintf("%s:entry:%s", s.cfg.KeyPrefix, id)
}

// sequenceKey is the counter that hands out entry IDs.
func (s *Store) sequenceKey() string {
	return fmt.Sprintf("%s:seq", s.cfg.KeyPrefix)
}

// playersKey is the set of player names that have a player board.
func (s *Store) playersKey() string {
	return fmt.Sprintf("%s:players", s.cfg.KeyPrefix)
}

func member(id int64) string {
	return strconv.FormatInt(id, 10)
}

// scoreBound formats a sorted-set score for range queries.
func scoreBound(score int) string {
	return strconv.Itoa(score)
}
