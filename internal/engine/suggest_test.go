package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricegrid/internal/models"
)

// suggestTiers marks every weekday Standard, with one Premium evening hour on
// Monday that the strict tier preference must reject.
func suggestTiers() []models.RateTier {
	tiers := make([]models.RateTier, 0, 8)
	for day := 0; day < 7; day++ {
		tiers = append(tiers, models.RateTier{
			ID: int64(day + 1), Name: "Standard", DayOfWeek: day,
			TimeStart: "00:00:00", TimeEnd: "00:00:00", TierLevel: 1, RateMultiplier: 1.0,
		})
	}
	tiers = append(tiers, models.RateTier{
		ID: 8, Name: "Premium", DayOfWeek: 1,
		TimeStart: "17:00:00", TimeEnd: "18:00:00", TierLevel: 2, RateMultiplier: 1.5,
	})
	return tiers
}

func suggestFixture(t *testing.T) (*Engine, []models.Booking) {
	t.Helper()
	eng := New(suggestTiers(), DefaultParams())
	eng.SetNow(func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) })

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{ID: 1, ClientID: 11, StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10*time.Hour + 30*time.Minute)},
		{ID: 2, ClientID: 12, StartTime: day.Add(12 * time.Hour), EndTime: day.Add(13 * time.Hour)},
		{ID: 3, ClientID: 13, StartTime: day.Add(15 * time.Hour), EndTime: day.Add(16 * time.Hour)},
	}
	return eng, bookings
}

func TestSuggestEarliestMatchingSlot(t *testing.T) {
	eng, bookings := suggestFixture(t)
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// Everything before 17:00 is taken or buffered; 17:00 and 17:30 fail the
	// strict Standard preference because of the Premium evening hour.
	got, err := eng.Suggest(base, 2*time.Hour, "standard", bookings)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC), got.StartTime)
	assert.Equal(t, time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC), got.EndTime)
}

func TestSuggestWithoutPreferenceTakesFirstFreeSlot(t *testing.T) {
	eng, bookings := suggestFixture(t)
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	got, err := eng.Suggest(base, 2*time.Hour, TierAny, bookings)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC), got.StartTime)
}

func TestSuggestDeterministic(t *testing.T) {
	eng, bookings := suggestFixture(t)
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	first, err := eng.Suggest(base, 2*time.Hour, "standard", bookings)
	require.NoError(t, err)
	second, err := eng.Suggest(base, 2*time.Hour, "standard", bookings)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSuggestRoundTripsThroughCheckBlocked(t *testing.T) {
	eng, bookings := suggestFixture(t)
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	got, err := eng.Suggest(base, 2*time.Hour, "standard", bookings)
	require.NoError(t, err)
	assert.False(t, eng.CheckBlocked(got.StartTime, got.EndTime.Sub(got.StartTime), bookings).Blocked)
}

func TestSuggestRespectsMinLead(t *testing.T) {
	eng := New(suggestTiers(), DefaultParams())
	eng.SetNow(func() time.Time { return time.Date(2025, 6, 2, 8, 10, 0, 0, time.UTC) })

	got, err := eng.Suggest(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), time.Hour, TierAny, nil)
	require.NoError(t, err)
	// 8:10 + 1h lead = 9:10, so the first eligible grid slot is 9:30.
	assert.Equal(t, time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC), got.StartTime)
}

func TestSuggestNeverCrossesMidnight(t *testing.T) {
	eng := New(suggestTiers(), DefaultParams())
	// Late in the day: a 6h interval no longer fits before midnight.
	eng.SetNow(func() time.Time { return time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC) })

	got, err := eng.Suggest(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), 6*time.Hour, TierAny, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), got.StartTime)
	assert.Equal(t, time.Date(2025, 6, 3, 6, 0, 0, 0, time.UTC), got.EndTime)
}

func TestSuggestExhaustsBoundedHorizon(t *testing.T) {
	params := DefaultParams()
	params.HorizonDays = 3
	eng := New(suggestTiers(), params)
	eng.SetNow(func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) })

	// No tier anywhere is named Emergency, so the strict preference can
	// never match and the bounded scan must give up.
	_, err := eng.Suggest(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), 2*time.Hour, "emergency", nil)
	require.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestSuggestValidatesDuration(t *testing.T) {
	eng := New(suggestTiers(), DefaultParams())

	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for _, d := range []time.Duration{0, 30 * time.Minute, 7 * time.Hour, 100 * time.Minute} {
		_, err := eng.Suggest(base, d, TierAny, nil)
		assert.Error(t, err, "duration %s", d)
		assert.NotErrorIs(t, err, ErrNoSlotAvailable)
	}
}
