package service

import (
	"time"

	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
)

// CandidateDateGenerator produces the legal shoot dates inside a window.
// The effective range is [max(today, windowStart), min(windowEnd,
// today+horizon)]; only allowed weekdays survive, in ascending order.
type CandidateDateGenerator struct {
	cfg SchedulingConfig
}

// NewCandidateDateGenerator builds a generator over the configured weekdays.
func NewCandidateDateGenerator(cfg SchedulingConfig) *CandidateDateGenerator {
	return &CandidateDateGenerator{cfg: cfg}
}

// Generate returns every allowed-weekday date in the effective window.
func (g *CandidateDateGenerator) Generate(windowStart, windowEnd, today time.Time, horizonWeeks int) []time.Time {
	start := dates.Midnight(windowStart)
	end := dates.Midnight(windowEnd)
	base := dates.Midnight(today)

	if start.Before(base) {
		start = base
	}
	horizonEnd := base.AddDate(0, 0, 7*horizonWeeks)
	if end.After(horizonEnd) {
		end = horizonEnd
	}

	var candidates []time.Time
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if g.cfg.WeekdayAllowed(current.Weekday()) {
			candidates = append(candidates, current)
		}
	}
	return candidates
}
