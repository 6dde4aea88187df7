package storage

import (
	"time"

	"github.com/redhat-appstudio/workshop-console/pkg/display"
)

// RegionRecord is the JSON document stored for each mirrored display region.
type RegionRecord struct {
	// Region is the display region id (e.g., "api-response")
	Region string `json:"region"`

	// Content is what the region showed when it was mirrored
	Content display.Content `json:"content"`

	// Timestamp is when this record was written to Redis
	Timestamp time.Time `json:"timestamp"`
}

// RedisConfig holds Redis-specific configuration.
type RedisConfig struct {
	// Enabled indicates if mirroring is enabled
	Enabled bool `json:"enabled"`

	// Address is the Redis server address (host:port)
	Address string `json:"address"`

	// Password is the Redis password (optional)
	Password string `json:"password"`

	// Database is the Redis database number (0-15)
	Database int `json:"database"`

	// KeyPrefix is the prefix for all Redis keys
	KeyPrefix string `json:"key_prefix"`

	// TTL is how long a mirrored region survives without updates
	TTL time.Duration `json:"ttl"`
}
