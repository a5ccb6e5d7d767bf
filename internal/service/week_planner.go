package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
)

// WeekPlanner greedily fills one area's shoot slots for a single week,
// repeatedly taking the best-scoring remaining candidate date until the
// weekly cap is reached or no candidate bundles enough campaigns.
type WeekPlanner struct {
	cfg       SchedulingConfig
	generator *CandidateDateGenerator
	scorer    OverlapScorer
	logger    *zap.Logger
}

// NewWeekPlanner constructs the planner.
func NewWeekPlanner(cfg SchedulingConfig, generator *CandidateDateGenerator, logger *zap.Logger) *WeekPlanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeekPlanner{cfg: cfg, generator: generator, logger: logger}
}

// candidatePick is the explicit result of one best-candidate sweep. A nil
// pick means no date survived the constraints, which is distinct from a
// pick whose score fell below the bundling minimum.
type candidatePick struct {
	date    time.Time
	block   models.TimeBlock
	score   int
	taskIDs []string
}

// PlanWeek builds up to MaxShootsPerWeek shoot days for the area inside the
// week starting at weekStart. Both previously committed shoot days and the
// ones created earlier in this same call constrain each pick.
func (p *WeekPlanner) PlanWeek(area models.Area, campaigns []pendingCampaign, weekStart, today time.Time, plan models.SchedulePlan) []*models.ShootDay {
	weekEnd := weekStart.AddDate(0, 0, 6)

	weekCampaigns := make([]pendingCampaign, 0, len(campaigns))
	for _, campaign := range campaigns {
		if !campaign.start.After(weekEnd) && !campaign.end.Before(weekStart) {
			weekCampaigns = append(weekCampaigns, campaign)
		}
	}
	if len(weekCampaigns) == 0 {
		return nil
	}

	// The horizon is deliberately generous here so the week window itself is
	// the limiting factor.
	candidates := p.generator.Generate(weekStart, weekEnd, today, p.cfg.FallbackHorizonWeeks)
	sort.SliceStable(candidates, func(i, j int) bool {
		return p.cfg.WeekdayRank(candidates[i].Weekday()) < p.cfg.WeekdayRank(candidates[j].Weekday())
	})

	var created []*models.ShootDay
	for len(created) < p.cfg.MaxShootsPerWeek {
		best := p.bestCandidate(area, weekCampaigns, candidates, plan, created)
		if best == nil || best.score < p.cfg.MinCampaignsPerShoot {
			break
		}

		day := &models.ShootDay{
			ID:         uuid.NewString(),
			Date:       best.date,
			Area:       area,
			TimeBlocks: []models.TimeBlock{best.block},
			TaskIDs:    best.taskIDs,
			Score:      best.score,
		}
		created = append(created, day)
		weekCampaigns = dropClaimed(weekCampaigns, best.taskIDs)
		p.logger.Debug("planned shoot day",
			zap.String("area", string(area)),
			zap.String("date", dates.Format(best.date)),
			zap.Int("score", best.score),
		)
	}
	return created
}

// bestCandidate sweeps every remaining candidate date and time block,
// keeping the first combination that reaches the highest score. Comparisons
// are strictly greater, so ties fall to the earlier candidate in preferred
// weekday order, then to the earlier time block.
func (p *WeekPlanner) bestCandidate(area models.Area, pool []pendingCampaign, candidates []time.Time, plan models.SchedulePlan, created []*models.ShootDay) *candidatePick {
	var best *candidatePick
	for _, date := range candidates {
		if !dateFits(p.cfg, plan, created, area, date, true) {
			continue
		}
		for _, block := range models.TimeBlocks() {
			score, taskIDs := p.scorer.Score(date, area, block, pool)
			if best == nil || score > best.score {
				best = &candidatePick{date: date, block: block, score: score, taskIDs: taskIDs}
			}
		}
	}
	return best
}

func dropClaimed(pool []pendingCampaign, taskIDs []string) []pendingCampaign {
	claimed := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		claimed[id] = true
	}
	kept := make([]pendingCampaign, 0, len(pool))
	for _, campaign := range pool {
		if !claimed[campaign.taskID] {
			kept = append(kept, campaign)
		}
	}
	return kept
}

// dateFits enforces the per-(area, ISO week) shoot cap and, when enforceGap
// is set, the minimum spacing between any two visits in the same ISO week.
// The gap spans both areas: the crew that covers Galleria Mall also covers
// Al Qana, so back-to-back days across areas are just as illegal.
func dateFits(cfg SchedulingConfig, plan models.SchedulePlan, extra []*models.ShootDay, area models.Area, date time.Time, enforceGap bool) bool {
	weekKey := dates.WeekKey(date)

	weekDays := append([]*models.ShootDay(nil), plan.Week(weekKey)...)
	for _, day := range extra {
		if day.WeekKey() == weekKey {
			weekDays = append(weekDays, day)
		}
	}

	areaCount := 0
	for _, day := range weekDays {
		if day.Area == area {
			areaCount++
		}
	}
	if areaCount >= cfg.MaxShootsPerWeek {
		return false
	}

	if enforceGap {
		for _, day := range weekDays {
			if dates.DaysBetween(date, day.Date) < cfg.MinGapDays {
				return false
			}
		}
	}

	return true
}
