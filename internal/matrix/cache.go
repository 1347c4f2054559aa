// internal/matrix/cache.go
package matrix

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/config"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/logger"
)

// CachedOrganizationService is a read-through Redis cache in front of
// organization-level lookups. Booking categories change rarely; a short TTL
// keeps them from being refetched on every tool call. Cache failures are
// never fatal, they fall through to the API.
type CachedOrganizationService struct {
	next   OrganizationService
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedOrganizationService(next OrganizationService, cfg config.CacheConfig, log logger.Logger) *CachedOrganizationService {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	return newCachedOrganizationService(next, rdb, cfg.EntryTTL(), log)
}

func newCachedOrganizationService(next OrganizationService, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedOrganizationService {
	return &CachedOrganizationService{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "matrix-cache"}),
	}
}

// Ping tests the Redis connection.
func (s *CachedOrganizationService) Ping(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *CachedOrganizationService) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

// GetCurrentUser is passed through uncached; it is the auth probe.
func (s *CachedOrganizationService) GetCurrentUser(ctx context.Context) (*User, error) {
	return s.next.GetCurrentUser(ctx)
}

// GetBookingCategories serves categories from Redis when present.
func (s *CachedOrganizationService) GetBookingCategories(ctx context.Context, orgID int64) ([]BookingCategory, error) {
	cacheKey := fmt.Sprintf("categories:%d", orgID)
	if val, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var categories []BookingCategory
		if err := json.Unmarshal([]byte(val), &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.next.GetBookingCategories(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(categories); err == nil {
		if err := s.redis.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
			s.logger.Debug("category cache write failed", map[string]interface{}{
				"orgId": orgID,
				"error": err.Error(),
			})
		}
	}
	return categories, nil
}
