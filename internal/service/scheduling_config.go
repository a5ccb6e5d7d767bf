package service

import (
	"fmt"
	"time"

	"github.com/Amrtamer711/ironforge-sub001/pkg/config"
	appErrors "github.com/Amrtamer711/ironforge-sub001/pkg/errors"
)

// SchedulingConfig is the immutable constraint set one scheduling run works
// against. It is built once from the process configuration and passed by
// value to every planning component; nothing mutates it after construction.
type SchedulingConfig struct {
	AllowedWeekdays      []time.Weekday
	PreferredWeekdays    []time.Weekday
	MaxShootsPerWeek     int
	MinGapDays           int
	PlanningHorizonWeeks int
	FallbackHorizonWeeks int
	FreezeThreshold      time.Duration
	MinCampaignsPerShoot int
	GalleriaLocations    []string
	AlQanaLocations      []string
}

// NewSchedulingConfig validates and normalises the raw configuration.
func NewSchedulingConfig(raw config.SchedulerConfig) (SchedulingConfig, error) {
	cfg := SchedulingConfig{
		AllowedWeekdays:      append([]time.Weekday(nil), raw.AllowedWeekdays...),
		PreferredWeekdays:    append([]time.Weekday(nil), raw.PreferredWeekdays...),
		MaxShootsPerWeek:     raw.MaxShootsPerWeek,
		MinGapDays:           raw.MinGapDays,
		PlanningHorizonWeeks: raw.PlanningHorizonWeeks,
		FallbackHorizonWeeks: raw.FallbackHorizonWeeks,
		FreezeThreshold:      raw.FreezeThreshold,
		MinCampaignsPerShoot: raw.MinCampaignsPerShoot,
		GalleriaLocations:    append([]string(nil), raw.GalleriaLocations...),
		AlQanaLocations:      append([]string(nil), raw.AlQanaLocations...),
	}

	if len(cfg.AllowedWeekdays) == 0 {
		return SchedulingConfig{}, appErrors.Clone(appErrors.ErrValidation, "scheduler requires at least one allowed weekday")
	}
	if cfg.MaxShootsPerWeek < 1 {
		return SchedulingConfig{}, appErrors.Clone(appErrors.ErrValidation, "max shoots per week must be positive")
	}
	if cfg.MinGapDays < 0 {
		return SchedulingConfig{}, appErrors.Clone(appErrors.ErrValidation, "min gap days must not be negative")
	}
	if cfg.PlanningHorizonWeeks < 1 {
		return SchedulingConfig{}, appErrors.Clone(appErrors.ErrValidation, "planning horizon must cover at least one week")
	}
	if cfg.FallbackHorizonWeeks < cfg.PlanningHorizonWeeks {
		cfg.FallbackHorizonWeeks = 52
	}
	if cfg.FreezeThreshold <= 0 {
		cfg.FreezeThreshold = 48 * time.Hour
	}
	if cfg.MinCampaignsPerShoot < 1 {
		cfg.MinCampaignsPerShoot = 1
	}
	if len(cfg.GalleriaLocations) == 0 || len(cfg.AlQanaLocations) == 0 {
		return SchedulingConfig{}, appErrors.Clone(appErrors.ErrValidation, "both areas need at least one configured location name")
	}

	allowed := make(map[time.Weekday]bool, len(cfg.AllowedWeekdays))
	for _, day := range cfg.AllowedWeekdays {
		allowed[day] = true
	}
	for _, day := range cfg.PreferredWeekdays {
		if !allowed[day] {
			return SchedulingConfig{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("preferred weekday %s is not in the allowed set", day))
		}
	}
	// Allowed days missing from the preference list keep their natural order
	// behind the explicit preferences.
	seen := make(map[time.Weekday]bool, len(cfg.PreferredWeekdays))
	for _, day := range cfg.PreferredWeekdays {
		seen[day] = true
	}
	for _, day := range cfg.AllowedWeekdays {
		if !seen[day] {
			cfg.PreferredWeekdays = append(cfg.PreferredWeekdays, day)
		}
	}

	return cfg, nil
}

// WeekdayAllowed reports whether the weekday is a legal shoot day.
func (c SchedulingConfig) WeekdayAllowed(day time.Weekday) bool {
	for _, allowed := range c.AllowedWeekdays {
		if allowed == day {
			return true
		}
	}
	return false
}

// WeekdayRank orders candidate dates by configured preference; lower ranks
// are tried first. Unlisted weekdays sort last.
func (c SchedulingConfig) WeekdayRank(day time.Weekday) int {
	for i, preferred := range c.PreferredWeekdays {
		if preferred == day {
			return i
		}
	}
	return len(c.PreferredWeekdays)
}
