package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricegrid/internal/models"
)

func TestDayGridShape(t *testing.T) {
	eng := New(mondayTiers(), DefaultParams())
	eng.SetNow(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })

	slots := eng.DayGrid(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), nil)
	require.Len(t, slots, 48)

	assert.Equal(t, 0, slots[0].Hour)
	assert.Equal(t, 0, slots[0].Minute)
	assert.Equal(t, 23, slots[47].Hour)
	assert.Equal(t, 30, slots[47].Minute)

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, SlotStep, slots[i].StartTime.Sub(slots[i-1].StartTime))
	}
}

func TestDayGridAnnotations(t *testing.T) {
	eng := New(mondayTiers(), DefaultParams())
	// Noon on the grid day, with the default 1h lead: slots before 13:00 are past.
	eng.SetNow(func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) })

	bookings := []models.Booking{
		{ID: 1, StartTime: time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC), EndTime: time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC)},
	}
	slots := eng.DayGrid(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), bookings)
	require.Len(t, slots, 48)

	at := func(hour, minute int) models.TimeSlot {
		return slots[hour*2+minute/30]
	}

	assert.True(t, at(12, 30).IsPast)
	assert.False(t, at(13, 0).IsPast)

	// Premium window from the tier fixture.
	require.NotNil(t, at(10, 30).Tier)
	assert.Equal(t, "Premium", at(10, 30).Tier.Name)
	require.NotNil(t, at(9, 0).Tier)
	assert.Equal(t, "Standard", at(9, 0).Tier.Name)

	// Booking 15:00-16:00 with 1h buffers blocks 14:00 through 16:30 starts.
	assert.False(t, at(13, 30).IsBlocked)
	for _, h := range []int{14, 15, 16} {
		assert.True(t, at(h, 0).IsBlocked, "%d:00 should be blocked", h)
		assert.True(t, at(h, 30).IsBlocked, "%d:30 should be blocked", h)
		assert.NotEmpty(t, at(h, 0).BlockReason)
	}
	assert.False(t, at(17, 0).IsBlocked)
}

func TestDayGridRecomputedPerCall(t *testing.T) {
	eng := New(nil, DefaultParams())
	eng.SetNow(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	free := eng.DayGrid(day, nil)
	booked := eng.DayGrid(day, []models.Booking{
		{ID: 1, StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour)},
	})

	assert.False(t, free[20].IsBlocked)  // 10:00
	assert.True(t, booked[20].IsBlocked) // 10:00
}
