package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	booking := Booking{
		StartTime: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "fully inside",
			start: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "straddles start",
			start: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "ends exactly at booking start",
			start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "starts exactly at booking end",
			start: time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.start, tt.end))
		})
	}
}

func TestRateTierWindow(t *testing.T) {
	tier := RateTier{TimeStart: "22:00:00", TimeEnd: "00:00:00"}

	assert.Equal(t, "24:00:00", tier.AdjustedTimeEnd())
	assert.True(t, tier.Contains("22:00:00"))
	assert.True(t, tier.Contains("23:59:59"))
	assert.False(t, tier.Contains("21:59:59"))

	day := RateTier{TimeStart: "09:00:00", TimeEnd: "17:00:00"}
	assert.Equal(t, "17:00:00", day.AdjustedTimeEnd())
	assert.True(t, day.Contains("09:00:00"))
	assert.False(t, day.Contains("17:00:00"))
}
