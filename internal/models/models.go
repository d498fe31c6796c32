// Package models defines the data types shared across the availability and
// pricing engine and its collaborators.
package models

import "time"

// Booking represents an existing reservation. Bookings are created by an
// external store and are read-only inside this service.
type Booking struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	ClientName  string    `json:"client_name,omitempty"`
	ServiceType string    `json:"service_type,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	// IsOwn marks the requesting client's own reservation. Derived per
	// request, never stored.
	IsOwn     bool      `json:"is_own,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Overlaps reports whether the booking intersects the half-open interval
// [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime) && end.After(b.StartTime)
}

// RateTier is a named pricing rule bound to a day-of-week and time-of-day
// window. Tiers are loaded once per session and treated as immutable.
type RateTier struct {
	ID        int64  `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	DayOfWeek int    `yaml:"day_of_week" json:"day_of_week"` // 0 = Sunday, matching time.Weekday
	TimeStart string `yaml:"time_start" json:"time_start"`   // "HH:MM:SS", UTC time of day
	TimeEnd   string `yaml:"time_end" json:"time_end"`       // "HH:MM:SS"; "00:00:00" means end of day
	// TierLevel is the ordinal priority; the highest level wins when
	// windows overlap (e.g. Standard=1, Premium=2, Emergency=3).
	TierLevel      int     `yaml:"tier_level" json:"tier_level"`
	RateMultiplier float64 `yaml:"rate_multiplier" json:"rate_multiplier"`
	ColorCode      string  `yaml:"color_code" json:"color_code,omitempty"`
}

// AdjustedTimeEnd returns the window end used for comparison. A tier ending
// at "00:00:00" runs to the day boundary and compares as "24:00:00".
func (t *RateTier) AdjustedTimeEnd() string {
	if t.TimeEnd == "00:00:00" {
		return "24:00:00"
	}
	return t.TimeEnd
}

// Contains reports whether the UTC clock string ("HH:MM:SS") falls inside the
// half-open window [TimeStart, AdjustedTimeEnd).
func (t *RateTier) Contains(clock string) bool {
	return clock >= t.TimeStart && clock < t.AdjustedTimeEnd()
}

// TimeSlot is a derived half-hour unit of a day's schedule grid. Slots are
// recomputed on every query and never persisted.
type TimeSlot struct {
	StartTime   time.Time `json:"start_time"`
	Hour        int       `json:"hour"`
	Minute      int       `json:"minute"`
	IsPast      bool      `json:"is_past"`
	Tier        *RateTier `json:"tier,omitempty"`
	IsBlocked   bool      `json:"is_blocked"`
	BlockReason string    `json:"block_reason,omitempty"`
}

// TierBlock is a maximal contiguous run of same-tier half-hour increments
// within a candidate interval, the atomic unit of cost reporting.
type TierBlock struct {
	TierName   string  `json:"tier_name"`
	Multiplier float64 `json:"multiplier"`
	Hours      float64 `json:"hours"`
	Cost       float64 `json:"cost"`
}

// CostBreakdown is the output of the cost calculator.
type CostBreakdown struct {
	BaseHourlyRate float64     `json:"base_hourly_rate"`
	Blocks         []TierBlock `json:"blocks"`
	Subtotal       float64     `json:"subtotal"`
	// FirstHourDiscount is the first-time-client comp: the cost of the
	// first hour of wall-clock time at the interval's leading tier mix.
	FirstHourDiscount float64     `json:"first_hour_discount,omitempty"`
	DiscountBlocks    []TierBlock `json:"discount_blocks,omitempty"`
	Total             float64     `json:"total"`
}

// Suggestion is a proposed bookable interval.
type Suggestion struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
