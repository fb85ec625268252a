package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/helmet-store/app/models"
	"github.com/shashiranjanraj/helmet-store/pkg/cache"
	"github.com/shashiranjanraj/helmet-store/pkg/logger"
)

// CachedHelmetRepository serves ListTypes from a cache and passes every
// other call through. Types cannot change through the API, so entries only
// expire by ttl.
type CachedHelmetRepository struct {
	HelmetRepository
	store cache.Store
	key   string
	ttl   time.Duration
}

// NewCachedHelmetRepository wraps repo. backend keeps the keys of the two
// adapters apart.
func NewCachedHelmetRepository(repo HelmetRepository, store cache.Store, backend string, ttl time.Duration) *CachedHelmetRepository {
	return &CachedHelmetRepository{
		HelmetRepository: repo,
		store:            store,
		key:              "helmet_store:types:" + backend,
		ttl:              ttl,
	}
}

// ListTypes reads through the cache. Cache errors are logged and fall back
// to storage; empty results are not cached.
func (r *CachedHelmetRepository) ListTypes(ctx context.Context) ([]models.HelmetType, error) {
	ctx = detach(ctx)
	log := logger.WithCtx(ctx)

	var types []models.HelmetType
	hit, err := r.store.Get(ctx, r.key, &types)
	if err != nil {
		log.Warn("cache read failed", "key", r.key, "error", err)
	}
	if hit {
		return types, nil
	}

	types, err = r.HelmetRepository.ListTypes(ctx)
	if err != nil || len(types) == 0 {
		return types, err
	}
	if err := r.store.Set(ctx, r.key, types, r.ttl); err != nil {
		log.Warn("cache write failed", "key", r.key, "error", err)
	}
	return types, nil
}
