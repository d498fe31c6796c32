package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pricegrid/internal/models"
)

// ErrNoSlotAvailable reports that the bounded forward search found no
// acceptable slot. It is a normal negative result, not a failure; callers
// decide the fallback messaging.
var ErrNoSlotAvailable = errors.New("no available slot within the search horizon")

// TierAny disables the tier preference filter of Suggest.
const TierAny = "any"

// Suggest returns the earliest interval of the requested duration that
// respects the minimum lead time, stays inside a single UTC calendar day, is
// not blocked by a booking or buffer zone and, when a preference other than
// "any" is given, resolves every half-hour increment to a tier of that name.
//
// The scan starts at baseDate (or today, whichever is later for the lead
// cutoff) and walks the day grid in chronological order for at most
// HorizonDays days, so it always terminates.
func (e *Engine) Suggest(baseDate time.Time, duration time.Duration, tierPreference string, bookings []models.Booking) (*models.Suggestion, error) {
	if duration < e.params.MinDuration {
		return nil, fmt.Errorf("duration must be at least %s", humanDuration(e.params.MinDuration))
	}
	if duration > e.params.MaxDuration {
		return nil, fmt.Errorf("duration must not exceed %s", humanDuration(e.params.MaxDuration))
	}
	if duration%SlotStep != 0 {
		return nil, fmt.Errorf("duration must be a multiple of 30 minutes")
	}

	filterTier := tierPreference != "" && !strings.EqualFold(tierPreference, TierAny)
	cutoff := e.now().Add(e.params.MinLead)
	firstDay := startOfDayUTC(baseDate)

	for d := 0; d < e.params.HorizonDays; d++ {
		day := firstDay.AddDate(0, 0, d)
		nextDay := day.AddDate(0, 0, 1)

		for cur := day; cur.Before(nextDay); cur = cur.Add(SlotStep) {
			end := cur.Add(duration)
			// Every later start of this day crosses midnight too.
			if !end.Before(nextDay) {
				break
			}
			if cur.Before(cutoff) {
				continue
			}
			if e.CheckBlocked(cur, duration, bookings).Blocked {
				continue
			}
			if filterTier && !e.matchesTierThroughout(cur, end, tierPreference) {
				continue
			}
			return &models.Suggestion{StartTime: cur, EndTime: end}, nil
		}
	}

	return nil, ErrNoSlotAvailable
}
