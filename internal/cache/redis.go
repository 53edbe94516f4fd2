package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/voiceassist/backend/internal/domain"
)

const weatherKeyPrefix = "voiceassist:weather:"

// WeatherCache stores weather snapshots in Redis keyed by the requested city
type WeatherCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWeatherCache connects to Redis and verifies the connection
func NewWeatherCache(ctx context.Context, redisURL string, ttl time.Duration) (*WeatherCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: failed to connect to redis: %w", err)
	}

	return NewWeatherCacheFromClient(client, ttl), nil
}

// NewWeatherCacheFromClient wraps an existing client
func NewWeatherCacheFromClient(client *redis.Client, ttl time.Duration) *WeatherCache {
	return &WeatherCache{client: client, ttl: ttl}
}

// WeatherKey normalizes a city query into a cache key
func WeatherKey(city string) string {
	return weatherKeyPrefix + strings.Join(strings.Fields(strings.ToLower(city)), " ")
}

// Get returns the cached snapshot for city. A miss is not an error.
func (c *WeatherCache) Get(ctx context.Context, city string) (domain.WeatherSnapshot, bool, error) {
	raw, err := c.client.Get(ctx, WeatherKey(city)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.WeatherSnapshot{}, false, nil
	}
	if err != nil {
		return domain.WeatherSnapshot{}, false, fmt.Errorf("cache: failed to read weather: %w", err)
	}

	var snapshot domain.WeatherSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domain.WeatherSnapshot{}, false, fmt.Errorf("cache: failed to decode weather: %w", err)
	}

	return snapshot, true, nil
}

// Set stores a snapshot for city with the configured TTL
func (c *WeatherCache) Set(ctx context.Context, city string, snapshot domain.WeatherSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("cache: failed to encode weather: %w", err)
	}

	if err := c.client.Set(ctx, WeatherKey(city), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: failed to write weather: %w", err)
	}

	return nil
}

// Close releases the Redis connection pool
func (c *WeatherCache) Close() error {
	return c.client.Close()
}
