package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"pricegrid/internal/models"
)

// Source supplies bookings for a time window.
type Source interface {
	BookingsBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
}

// CachedSource wraps a Source with a short-lived Redis cache. A cache miss or
// any Redis failure falls through to the underlying source; caching is an
// optimization, never a correctness dependency.
type CachedSource struct {
	src    Source
	redis  *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewCachedSource(src Source, redisClient *redis.Client, ttl time.Duration, logger *zerolog.Logger) *CachedSource {
	return &CachedSource{src: src, redis: redisClient, ttl: ttl, logger: logger}
}

func (c *CachedSource) BookingsBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	key := fmt.Sprintf("bookings:%s:%s", from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))

	if bookings, ok := c.readCache(ctx, key); ok {
		return bookings, nil
	}

	bookings, err := c.src.BookingsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, key, bookings)
	return bookings, nil
}

func (c *CachedSource) readCache(ctx context.Context, key string) ([]models.Booking, bool) {
	if c.redis == nil || c.ttl <= 0 {
		return nil, false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var bookings []models.Booking
	if err := json.Unmarshal([]byte(val), &bookings); err != nil {
		return nil, false
	}
	return bookings, true
}

func (c *CachedSource) writeCache(ctx context.Context, key string, bookings []models.Booking) {
	if c.redis == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(bookings)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("booking cache write failed")
	}
}
