package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricegrid/internal/models"
)

type countingSource struct {
	bookings []models.Booking
	calls    int
}

func (c *countingSource) BookingsBetween(_ context.Context, _, _ time.Time) ([]models.Booking, error) {
	c.calls++
	return c.bookings, nil
}

func TestCachedSourceServesFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	src := &countingSource{bookings: []models.Booking{
		{ID: 1, ClientID: 3, StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour)},
	}}

	logger := zerolog.Nop()
	cached := NewCachedSource(src, rdb, time.Minute, &logger)

	first, err := cached.BookingsBetween(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	second, err := cached.BookingsBetween(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, first, second)
}

func TestCachedSourceDistinguishesWindows(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	src := &countingSource{}
	logger := zerolog.Nop()
	cached := NewCachedSource(src, rdb, time.Minute, &logger)

	_, err := cached.BookingsBetween(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	_, err = cached.BookingsBetween(context.Background(), day, day.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
}

func TestCachedSourceWithoutRedisPassesThrough(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	src := &countingSource{}
	logger := zerolog.Nop()
	cached := NewCachedSource(src, nil, time.Minute, &logger)

	for i := 0; i < 3; i++ {
		_, err := cached.BookingsBetween(context.Background(), day, day.AddDate(0, 0, 1))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, src.calls)
}
