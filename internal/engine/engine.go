// Package engine implements the appointment availability and pricing engine:
// day-grid generation, rate tier resolution, conflict checking, cost
// estimation and slot suggestion. Every operation is a pure function of its
// inputs and the injected clock, so an Engine is safe for concurrent use.
package engine

import (
	"time"

	"pricegrid/internal/models"
)

// SlotStep is the fixed half-hour quantum that drives the day grid, the cost
// walk and all tier-block boundaries. A tier change inside one step is not
// representable.
const SlotStep = 30 * time.Minute

// Params holds the configured scheduling rules.
type Params struct {
	// BufferBefore and BufferAfter are the mandatory idle intervals around
	// another client's booking. They come from settings, not constants.
	BufferBefore time.Duration
	BufferAfter  time.Duration
	// MinLead is the minimum distance from "now" for a candidate start.
	MinLead time.Duration
	// MinDuration and MaxDuration bound caller-supplied durations.
	MinDuration time.Duration
	MaxDuration time.Duration
	// HorizonDays bounds the forward search of Suggest so it always
	// terminates.
	HorizonDays int
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		BufferBefore: time.Hour,
		BufferAfter:  time.Hour,
		MinLead:      time.Hour,
		MinDuration:  time.Hour,
		MaxDuration:  6 * time.Hour,
		HorizonDays:  30,
	}
}

// Engine evaluates availability and pricing against an immutable tier table.
// Bookings are supplied fresh on every call; the engine holds no mutable
// state of its own.
type Engine struct {
	params Params
	tiers  []models.RateTier
	now    func() time.Time
}

// New creates an engine over the given tier table and scheduling rules.
// Zero or negative limits fall back to the defaults so a misconfigured
// horizon can never produce an unbounded search.
func New(tiers []models.RateTier, params Params) *Engine {
	def := DefaultParams()
	if params.MinDuration <= 0 {
		params.MinDuration = def.MinDuration
	}
	if params.MaxDuration <= 0 {
		params.MaxDuration = def.MaxDuration
	}
	if params.HorizonDays <= 0 {
		params.HorizonDays = def.HorizonDays
	}
	return &Engine{
		params: params,
		tiers:  tiers,
		now:    time.Now,
	}
}

// Params returns the effective scheduling rules.
func (e *Engine) Params() Params {
	return e.params
}

// SetNow overrides the engine's clock. Intended for tests.
func (e *Engine) SetNow(now func() time.Time) {
	e.now = now
}

// startOfDayUTC truncates an instant to midnight UTC of its calendar day.
func startOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
