package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/redhat-appstudio/workshop-console/pkg/display"
	"github.com/redhat-appstudio/workshop-console/pkg/logger"
)

// DefaultTTL applies when the configuration does not set one.
const DefaultTTL = 10 * time.Minute

// ErrRegionNotFound is returned when no mirrored record exists for a region.
var ErrRegionNotFound = errors.New("region not found")

// RedisClient mirrors display regions into Redis so other tools can read
// what the console currently shows. It implements display.Sink.
type RedisClient struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	now       func() time.Time
}

// NewRedisClient connects to Redis and verifies connectivity with a ping.
func NewRedisClient(config RedisConfig) (*RedisClient, error) {
	if !config.Enabled {
		return nil, fmt.Errorf("Redis storage is disabled")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("Redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Address,
		Password:     config.Password,
		DB:           config.Database,
		PoolSize:     4,
		MinIdleConns: 1,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Redis display mirror connected to %s", config.Address)

	return newRedisClient(rdb, config.KeyPrefix, config.TTL), nil
}

func newRedisClient(rdb redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisClient {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisClient{
		client:    rdb,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// buildKey joins the prefix and parts with ':'
func (r *RedisClient) buildKey(parts ...string) string {
	var builder strings.Builder
	builder.WriteString(r.keyPrefix)
	for _, part := range parts {
		builder.WriteByte(':')
		builder.WriteString(part)
	}
	return builder.String()
}

// RegionKey returns the key a region is mirrored under.
func (r *RedisClient) RegionKey(id string) string {
	return r.buildKey("region", id)
}

// Publish implements display.Sink by storing the region's content.
func (r *RedisClient) Publish(ctx context.Context, id string, c display.Content) error {
	record := RegionRecord{
		Region:    id,
		Content:   c,
		Timestamp: r.now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal region record: %w", err)
	}

	if err := r.client.Set(ctx, r.RegionKey(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store region record: %w", err)
	}

	logger.Debugf("Mirrored region %s (%s)", id, c.Kind)
	return nil
}

// GetRegion reads a mirrored region back.
func (r *RedisClient) GetRegion(ctx context.Context, id string) (*RegionRecord, error) {
	data, err := r.client.Get(ctx, r.RegionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRegionNotFound
		}
		return nil, fmt.Errorf("failed to get region record: %w", err)
	}

	var record RegionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal region record: %w", err)
	}

	return &record, nil
}
