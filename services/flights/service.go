package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skytrip/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache is the subset of redis used for search results, kept as an
// interface so tests can substitute a fake.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// FlightService exposes flight search to the API layer.
type FlightService interface {
	Search(ctx context.Context, query models.SearchQuery) ([]models.FlightOffer, error)
}

// DefaultFlightService fronts the aggregator with a short-lived redis cache.
// Provider failures are downgraded to "no offers available": search is a
// best-effort read and never a fatal error.
type DefaultFlightService struct {
	Provider Provider
	Cache    Cache
	CacheTTL time.Duration
}

// Search returns cached offers when fresh, otherwise asks the aggregator.
func (s *DefaultFlightService) Search(ctx context.Context, query models.SearchQuery) ([]models.FlightOffer, error) {
	key := cacheKey(query)

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var offers []models.FlightOffer
			if err := json.Unmarshal([]byte(raw), &offers); err == nil {
				return offers, nil
			}
		}
	}

	offers, err := s.Provider.Search(ctx, query)
	if err != nil {
		zap.L().Warn("flight provider unavailable, returning no offers",
			zap.String("origin", query.Origin),
			zap.String("destination", query.Destination),
			zap.Error(err))
		return []models.FlightOffer{}, nil
	}

	if s.Cache != nil && len(offers) > 0 {
		if raw, err := json.Marshal(offers); err == nil {
			if err := s.Cache.Set(ctx, key, raw, s.CacheTTL).Err(); err != nil {
				zap.L().Warn("failed to cache flight search results", zap.Error(err))
			}
		}
	}
	return offers, nil
}

func cacheKey(q models.SearchQuery) string {
	return fmt.Sprintf("flights:%s:%s:%s:%s:%d:%s",
		q.Origin, q.Destination, q.Date, q.ReturnDate, q.TicketCount, q.TravelClass)
}

var _ FlightService = (*DefaultFlightService)(nil)
