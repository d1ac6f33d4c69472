package redis

import "time"

// Config holds Redis connection and TTL settings
type Config struct {
	// URL is the Redis connection URL (redis://...)
	URL string

	// PoolSize is the maximum number of connections
	PoolSize int

	// MinIdleConns is the minimum number of idle connections
	MinIdleConns int

	// LookupTimeout bounds individual dictionary lookups so a slow Redis
	// never stalls a room's writer
	LookupTimeout time.Duration

	// SummaryTTL is how long archived game summaries are retained
	SummaryTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		PoolSize:      10,
		MinIdleConns:  2,
		LookupTimeout: 2 * time.Second,
		SummaryTTL:    30 * 24 * time.Hour,
	}
}
