package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/voyago/travel-agency-backend/internal/domain/entities"
	"github.com/voyago/travel-agency-backend/internal/domain/providers"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/observability"
)

// Cache TTLs (in seconds)
const (
	destinationByIDTTL = 300 // 5 minutes for single destination
	destinationListTTL = 180 // 3 minutes for the catalog
)

// CachedDestinationAdapter wraps DestinationAdapter with read-through caching.
// The catalog rarely changes, so entries just age out.
type CachedDestinationAdapter struct {
	adapter repositories.DestinationRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedDestinationAdapter creates a new cached destination adapter
func NewCachedDestinationAdapter(adapter repositories.DestinationRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.DestinationRepository {
	return &CachedDestinationAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

func destinationCacheKey(id string) string {
	return fmt.Sprintf("destination:%s", id)
}

const destinationListCacheKey = "destinations:list"

// GetByID retrieves a destination by ID with caching
func (a *CachedDestinationAdapter) GetByID(ctx context.Context, id string) (*entities.Destination, error) {
	cacheKey := destinationCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var destination entities.Destination
		unmarshalErr := json.Unmarshal(cached, &destination)
		if unmarshalErr == nil {
			observability.RecordCacheHit(ctx, a.metrics, "destination")
			return &destination, nil
		}
		// Corrupt entry; fall through to the database
		observability.GetLogger().Warn().Err(unmarshalErr).Str("key", cacheKey).Msg("failed to unmarshal cached destination")
	}

	observability.RecordCacheMiss(ctx, a.metrics, "destination")

	destination, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(destination); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, destinationByIDTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Str("key", cacheKey).Msg("failed to cache destination")
			}
		}
	}()

	return destination, nil
}

// List retrieves the destination catalog with caching
func (a *CachedDestinationAdapter) List(ctx context.Context) ([]*entities.Destination, error) {
	if cached, err := a.cache.Get(ctx, destinationListCacheKey); err == nil {
		var destinations []*entities.Destination
		unmarshalErr := json.Unmarshal(cached, &destinations)
		if unmarshalErr == nil {
			observability.RecordCacheHit(ctx, a.metrics, "destinations_list")
			return destinations, nil
		}
		observability.GetLogger().Warn().Err(unmarshalErr).Msg("failed to unmarshal cached destination list")
	}

	observability.RecordCacheMiss(ctx, a.metrics, "destinations_list")

	destinations, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(destinations); err == nil {
			if err := a.cache.Set(bgCtx, destinationListCacheKey, data, destinationListTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Msg("failed to cache destination list")
			}
		}
	}()

	return destinations, nil
}
