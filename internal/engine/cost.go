package engine

import (
	"fmt"
	"math"
	"time"

	"pricegrid/internal/models"
)

// standardTierName prices half-hour increments no tier window covers.
const standardTierName = "Standard"

// EstimateCost walks [start, end) in half-hour increments, accumulates the
// tier-weighted cost and, for first-time clients, comps the first hour of
// wall-clock time at the interval's actual leading tier mix.
//
// Increments that resolve to no tier are priced as Standard with a 1.0
// multiplier. Contiguous increments sharing a tier name and multiplier are
// grouped into one reported block.
func (e *Engine) EstimateCost(start, end time.Time, baseHourlyRate float64, isFirstTimeClient bool) (*models.CostBreakdown, error) {
	if baseHourlyRate < 0 {
		return nil, fmt.Errorf("base hourly rate must not be negative")
	}
	if err := e.validateInterval(start, end); err != nil {
		return nil, err
	}

	var blocks []models.TierBlock
	for cur := start; cur.Before(end); cur = cur.Add(SlotStep) {
		name, multiplier := standardTierName, 1.0
		if tier := e.ResolveTier(cur); tier != nil {
			name, multiplier = tier.Name, tier.RateMultiplier
		}
		if n := len(blocks); n > 0 && blocks[n-1].TierName == name && blocks[n-1].Multiplier == multiplier {
			blocks[n-1].Hours += 0.5
		} else {
			blocks = append(blocks, models.TierBlock{TierName: name, Multiplier: multiplier, Hours: 0.5})
		}
	}

	var subtotal float64
	for i := range blocks {
		blocks[i].Cost = blocks[i].Hours * baseHourlyRate * blocks[i].Multiplier
		subtotal += blocks[i].Cost
	}

	breakdown := &models.CostBreakdown{
		BaseHourlyRate: baseHourlyRate,
		Blocks:         blocks,
		Subtotal:       subtotal,
		Total:          subtotal,
	}

	if isFirstTimeClient && end.Sub(start) >= time.Hour {
		remaining := 1.0
		var discount float64
		var discountBlocks []models.TierBlock
		for _, blk := range blocks {
			if remaining <= 0 {
				break
			}
			hours := math.Min(blk.Hours, remaining)
			cost := hours * baseHourlyRate * blk.Multiplier
			discountBlocks = append(discountBlocks, models.TierBlock{
				TierName:   blk.TierName,
				Multiplier: blk.Multiplier,
				Hours:      hours,
				Cost:       cost,
			})
			discount += cost
			remaining -= hours
		}
		breakdown.FirstHourDiscount = discount
		breakdown.DiscountBlocks = discountBlocks
		breakdown.Total = math.Max(0, subtotal-discount)
	}

	return breakdown, nil
}

// validateInterval enforces the candidate interval rules: positive duration
// within the configured bounds, half-hour alignment and no crossing of the
// start's UTC calendar day. Violations are rejected, never clamped.
func (e *Engine) validateInterval(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("end time must be after start time")
	}
	duration := end.Sub(start)
	if duration < e.params.MinDuration {
		return fmt.Errorf("duration must be at least %s", humanDuration(e.params.MinDuration))
	}
	if duration > e.params.MaxDuration {
		return fmt.Errorf("duration must not exceed %s", humanDuration(e.params.MaxDuration))
	}
	if duration%SlotStep != 0 {
		return fmt.Errorf("duration must be a multiple of 30 minutes")
	}
	u := start.UTC()
	if u.Minute()%30 != 0 || u.Second() != 0 || u.Nanosecond() != 0 {
		return fmt.Errorf("start time must align to a half-hour boundary")
	}
	if nextMidnight := startOfDayUTC(start).AddDate(0, 0, 1); !end.Before(nextMidnight) {
		return fmt.Errorf("interval must end before midnight of its start day")
	}
	return nil
}
