package engine

import (
	"fmt"
	"time"

	"pricegrid/internal/models"
)

// Conflict is the result of a blocking check. A blocked slot is a normal
// outcome, not an error; the reason is meant for direct display.
type Conflict struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
}

// CheckBlocked decides whether the candidate interval [start, start+duration)
// collides with an existing booking or its buffer zone.
//
// Per booking, the first matching rule wins:
//
//  1. direct overlap, half-open on both sides: a booking ending exactly at
//     the candidate start does not overlap;
//  2. post-booking buffer: the candidate start falls in
//     [booking.end, booking.end+BufferAfter), including the exact boundary
//     a rule-1 miss leaves open;
//  3. pre-booking buffer: the candidate end falls in
//     (booking.start-BufferBefore, booking.start].
//
// The requesting client's own bookings waive the buffer rules; only a direct
// overlap blocks against them.
func (e *Engine) CheckBlocked(start time.Time, duration time.Duration, bookings []models.Booking) Conflict {
	end := start.Add(duration)

	for i := range bookings {
		b := &bookings[i]

		if b.Overlaps(start, end) {
			return Conflict{
				Blocked: true,
				Reason: fmt.Sprintf("conflicts with a booking from %s to %s",
					clock(b.StartTime), clock(b.EndTime)),
			}
		}

		if b.IsOwn {
			continue
		}

		if e.params.BufferAfter > 0 &&
			!start.Before(b.EndTime) && start.Before(b.EndTime.Add(e.params.BufferAfter)) {
			return Conflict{
				Blocked: true,
				Reason: fmt.Sprintf("must wait %s after the booking ending at %s",
					humanDuration(e.params.BufferAfter), clock(b.EndTime)),
			}
		}

		if e.params.BufferBefore > 0 &&
			end.After(b.StartTime.Add(-e.params.BufferBefore)) && !end.After(b.StartTime) {
			return Conflict{
				Blocked: true,
				Reason: fmt.Sprintf("must end %s before the booking starting at %s",
					humanDuration(e.params.BufferBefore), clock(b.StartTime)),
			}
		}
	}

	return Conflict{}
}

func clock(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

func humanDuration(d time.Duration) string {
	if d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
