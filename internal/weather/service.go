package weather

import (
	"context"
	"log"
	"time"

	"github.com/gquyenhsb/agriplan-backend/internal/planner"
	"github.com/gquyenhsb/agriplan-backend/internal/projects/domain"
)

// Service answers weather lookups through the cache, falling back to the
// upstream provider on a miss.
type Service struct {
	client *Client
	cache  *Cache
	nowFn  func() time.Time
}

func NewService(client *Client, cache *Cache) *Service {
	return &Service{client: client, cache: cache, nowFn: time.Now}
}

// Lookup returns current conditions for a city. Cache hits skip the provider
// entirely; misses fetch, stamp and store the result.
func (s *Service) Lookup(ctx context.Context, city string) (*domain.WeatherInfo, error) {
	if cached, found, err := s.cache.Get(ctx, city); err == nil && found {
		return cached, nil
	} else if err != nil {
		// A broken cache degrades to a direct fetch.
		log.Printf("weather cache read for %q failed: %v", city, err)
	}

	info, err := s.client.Current(ctx, city)
	if err != nil {
		return nil, err
	}
	info.LastUpdated = s.stamp()

	if err := s.cache.Set(ctx, city, info); err != nil {
		log.Printf("weather cache write for %q failed: %v", city, err)
	}
	return info, nil
}

// RefreshAll re-fetches every tracked city, keeping cached conditions warm
// between user lookups. Called from the periodic job.
func (s *Service) RefreshAll(ctx context.Context) {
	cities, err := s.cache.TrackedCities(ctx)
	if err != nil {
		log.Printf("weather refresh: %v", err)
		return
	}

	for _, city := range cities {
		info, err := s.client.Current(ctx, city)
		if err != nil {
			log.Printf("weather refresh for %q failed: %v", city, err)
			continue
		}
		info.LastUpdated = s.stamp()
		if err := s.cache.Set(ctx, city, info); err != nil {
			log.Printf("weather refresh store for %q failed: %v", city, err)
		}
	}
}

func (s *Service) stamp() string {
	now := s.nowFn()
	return now.Format("15:04, ") + planner.FormatDate(now)
}
