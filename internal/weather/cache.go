package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gquyenhsb/agriplan-backend/internal/projects/domain"
)

const (
	cityKeyPrefix  = "weather:city:"   // Cached conditions per city: weather:city:{city}
	trackedCityKey = "weather:cities"  // Set of cities with at least one lookup
	DefaultTTL     = 10 * time.Minute  // Matches the original client's refetch period
)

// Cache stores recent weather lookups in Redis so repeated lookups for the
// same city within the TTL do not hit the upstream provider.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) cityKey(city string) string {
	return cityKeyPrefix + strings.ToLower(strings.TrimSpace(city))
}

// Get returns the cached conditions for a city, or found = false on a miss.
func (c *Cache) Get(ctx context.Context, city string) (*domain.WeatherInfo, bool, error) {
	data, err := c.client.Get(ctx, c.cityKey(city)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("weather cache get: %w", err)
	}

	var info domain.WeatherInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil, false, fmt.Errorf("weather cache unmarshal: %w", err)
	}
	return &info, true, nil
}

// Set stores conditions for a city and remembers the city in the tracked set
// so the periodic refresh job can re-fetch it.
func (c *Cache) Set(ctx context.Context, city string, info *domain.WeatherInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("weather cache marshal: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.cityKey(city), data, c.ttl)
	pipe.SAdd(ctx, trackedCityKey, strings.ToLower(strings.TrimSpace(city)))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("weather cache set: %w", err)
	}
	return nil
}

// TrackedCities lists every city that has been looked up so far.
func (c *Cache) TrackedCities(ctx context.Context) ([]string, error) {
	cities, err := c.client.SMembers(ctx, trackedCityKey).Result()
	if err != nil {
		return nil, fmt.Errorf("weather cache cities: %w", err)
	}
	return cities, nil
}
