package engine

import (
	"time"

	"pricegrid/internal/models"
)

// DayGrid produces the 48 ordered half-hour slots of the given UTC calendar
// day, each annotated with its resolved tier, past flag and blocking state.
// The grid is a pure function of the inputs and is rebuilt on every call.
func (e *Engine) DayGrid(date time.Time, bookings []models.Booking) []models.TimeSlot {
	day := startOfDayUTC(date)
	nextDay := day.AddDate(0, 0, 1)
	cutoff := e.now().Add(e.params.MinLead)

	slots := make([]models.TimeSlot, 0, 48)
	for cur := day; cur.Before(nextDay); cur = cur.Add(SlotStep) {
		conflict := e.CheckBlocked(cur, SlotStep, bookings)
		slots = append(slots, models.TimeSlot{
			StartTime:   cur,
			Hour:        cur.Hour(),
			Minute:      cur.Minute(),
			IsPast:      cur.Before(cutoff),
			Tier:        e.ResolveTier(cur),
			IsBlocked:   conflict.Blocked,
			BlockReason: conflict.Reason,
		})
	}
	return slots
}
