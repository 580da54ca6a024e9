package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"metalpedia-backend/internal/domains/stats/model"
	"metalpedia-backend/internal/infrastructure/metrics"
	"metalpedia-backend/pkg/cache"
)

const statsCacheKey = "stats:counts"

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	ttl   time.Duration
}

// NewPostgresRepository builds the counters repository.
// cache may be nil, in which case every call hits the database.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache, ttl time.Duration) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache, ttl: ttl}
}

func (r *postgresRepository) Counts(ctx context.Context) (*model.Stats, error) {
	// Try cache first
	var stats model.Stats
	if r.cache != nil {
		hit, err := r.cache.Get(ctx, statsCacheKey, &stats)
		if err != nil {
			log.Warn().Err(err).Str("key", statsCacheKey).Msg("Stats cache read failed")
		}
		if err == nil && hit {
			metrics.CacheLookupsTotal.WithLabelValues(statsCacheKey, "hit").Inc()
			return &stats, nil
		}
		metrics.CacheLookupsTotal.WithLabelValues(statsCacheKey, "miss").Inc()
	}

	// Cache miss - query database
	query := `
		SELECT
			(SELECT COUNT(*) FROM bands),
			(SELECT COUNT(*) FROM albums),
			(SELECT COUNT(*) FROM users)
	`
	if err := r.pool.QueryRow(ctx, query).Scan(&stats.Bands, &stats.Albums, &stats.Fans); err != nil {
		return nil, model.ErrStatsUnavailable.Wrap(err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, statsCacheKey, stats, r.ttl); err != nil {
			log.Warn().Err(err).Str("key", statsCacheKey).Msg("Stats cache write failed")
		}
	}

	return &stats, nil
}

func (r *postgresRepository) Invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, statsCacheKey); err != nil {
		log.Warn().Err(err).Str("key", statsCacheKey).Msg("Stats cache invalidation failed")
	}
}
