package redis

import "time"

// Config holds Redis connection and key settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// DialTimeout bounds the initial connection check.
	DialTimeout time.Duration

	// KeyPrefix namespaces every key, so several boards can share one server.
	KeyPrefix string
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		KeyPrefix:    "tetris",
	}
}
