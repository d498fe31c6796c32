package engine

import (
	"strings"
	"time"

	"pricegrid/internal/models"
)

// ResolveTier maps an instant to the winning rate tier, or nil when no tier
// window covers it. Matching happens strictly on the UTC day-of-week and UTC
// "HH:MM:SS" clock string; any local-time formatting belongs to the caller.
//
// When several windows overlap the same instant, the highest TierLevel wins;
// equal levels tie-break deterministically on the lowest tier ID.
func (e *Engine) ResolveTier(instant time.Time) *models.RateTier {
	u := instant.UTC()
	day := int(u.Weekday())
	clock := u.Format("15:04:05")

	var best *models.RateTier
	for i := range e.tiers {
		t := &e.tiers[i]
		if t.DayOfWeek != day || !t.Contains(clock) {
			continue
		}
		if best == nil || t.TierLevel > best.TierLevel ||
			(t.TierLevel == best.TierLevel && t.ID < best.ID) {
			best = t
		}
	}
	return best
}

// matchesTierThroughout reports whether every half-hour increment of
// [start, end) resolves to a tier named pref. The match is all-or-nothing:
// one unresolved or differently named increment fails the whole interval.
func (e *Engine) matchesTierThroughout(start, end time.Time, pref string) bool {
	for cur := start; cur.Before(end); cur = cur.Add(SlotStep) {
		tier := e.ResolveTier(cur)
		if tier == nil || !strings.EqualFold(tier.Name, pref) {
			return false
		}
	}
	return true
}
