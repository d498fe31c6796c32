package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"pricegrid/internal/models"
)

// LoadTiers reads the rate tier table from a YAML file and validates every
// row. Malformed rows fail here, at load time, so the resolver's hot path
// never has to re-check them.
func LoadTiers(path string) ([]models.RateTier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tier table: %w", err)
	}

	var doc struct {
		Tiers []models.RateTier `yaml:"tiers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tier table: %w", err)
	}

	seen := make(map[int64]bool, len(doc.Tiers))
	for i := range doc.Tiers {
		if err := validateTier(&doc.Tiers[i]); err != nil {
			return nil, fmt.Errorf("tier %q (row %d): %w", doc.Tiers[i].Name, i+1, err)
		}
		if seen[doc.Tiers[i].ID] {
			return nil, fmt.Errorf("tier %q (row %d): duplicate id %d", doc.Tiers[i].Name, i+1, doc.Tiers[i].ID)
		}
		seen[doc.Tiers[i].ID] = true
	}

	return doc.Tiers, nil
}

func validateTier(t *models.RateTier) error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if t.DayOfWeek < 0 || t.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week %d out of range 0-6", t.DayOfWeek)
	}
	if err := validateClock(t.TimeStart); err != nil {
		return fmt.Errorf("time_start: %w", err)
	}
	if err := validateClock(t.TimeEnd); err != nil {
		return fmt.Errorf("time_end: %w", err)
	}
	// A time_end of "00:00:00" means the day boundary and compares as
	// "24:00:00", so it can never invert the range.
	if end := t.AdjustedTimeEnd(); end <= t.TimeStart {
		return fmt.Errorf("time range %s-%s is inverted or empty", t.TimeStart, t.TimeEnd)
	}
	if t.TierLevel < 1 {
		return fmt.Errorf("tier_level must be at least 1")
	}
	if t.RateMultiplier < 1.0 {
		return fmt.Errorf("rate_multiplier %.2f must be at least 1.0", t.RateMultiplier)
	}
	return nil
}

func validateClock(s string) error {
	if len(s) != 8 {
		return fmt.Errorf("%q is not a HH:MM:SS time", s)
	}
	if _, err := time.Parse("15:04:05", s); err != nil {
		return fmt.Errorf("%q is not a HH:MM:SS time", s)
	}
	return nil
}
