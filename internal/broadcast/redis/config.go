package redis

import "time"

// Config holds Redis connection and publishing settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// KeyPrefix namespaces channels and keys
	KeyPrefix string

	// StateTTL bounds how long the last published room state is kept
	StateTTL time.Duration

	// ClosedTTL bounds how long a torn-down room's marker is kept. Late
	// state writes for the room are refused while it exists.
	ClosedTTL time.Duration

	// PublishTimeout bounds each publish round trip
	PublishTimeout time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		KeyPrefix:      "tdgame",
		StateTTL:       24 * time.Hour,
		ClosedTTL:      time.Minute,
		PublishTimeout: 2 * time.Second,
	}
}
