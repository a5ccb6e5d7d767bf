package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
)

func TestPlanWeekStopsBelowBundlingMinimum(t *testing.T) {
	raw := rawSchedulerConfig()
	raw.MinCampaignsPerShoot = 2
	cfg, err := NewSchedulingConfig(raw)
	require.NoError(t, err)

	planner := NewWeekPlanner(cfg, NewCandidateDateGenerator(cfg), nil)
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	// A single live campaign can never reach a score of two.
	pool := []pendingCampaign{
		scorerCampaign("lonely", models.AreaGalleriaMall, models.TimeBlockDay, weekStart, weekStart.AddDate(0, 0, 20)),
	}
	days := planner.PlanWeek(models.AreaGalleriaMall, pool, weekStart, weekStart, models.SchedulePlan{})
	assert.Empty(t, days)
}

func TestPlanWeekPrefersConfiguredWeekdayOrder(t *testing.T) {
	cfg := testSchedulerConfig(t)
	planner := NewWeekPlanner(cfg, NewCandidateDateGenerator(cfg), nil)
	weekStart := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	// Live across the whole week, so every candidate scores identically and
	// the tie falls to the most preferred weekday.
	pool := []pendingCampaign{
		scorerCampaign("c", models.AreaGalleriaMall, models.TimeBlockDay, weekStart, weekStart.AddDate(0, 0, 20)),
	}
	days := planner.PlanWeek(models.AreaGalleriaMall, pool, weekStart, weekStart, models.SchedulePlan{})

	require.Len(t, days, 1)
	assert.Equal(t, time.Tuesday, days[0].Date.Weekday())
	assert.Equal(t, []string{"c"}, days[0].TaskIDs)
}

func TestDateFitsEnforcesCapAndGap(t *testing.T) {
	cfg := testSchedulerConfig(t)
	tuesday := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	thursday := tuesday.AddDate(0, 0, 2)
	friday := tuesday.AddDate(0, 0, 3)

	plan := models.SchedulePlan{}
	plan.Add(&models.ShootDay{ID: "v1", Date: tuesday, Area: models.AreaGalleriaMall})

	// Same date violates the gap, Thursday sits exactly at the minimum.
	assert.False(t, dateFits(cfg, plan, nil, models.AreaGalleriaMall, tuesday, true))
	assert.True(t, dateFits(cfg, plan, nil, models.AreaGalleriaMall, thursday, true))

	// The gap binds across areas, the weekly cap does not.
	assert.False(t, dateFits(cfg, plan, nil, models.AreaAlQana, tuesday, true))
	assert.True(t, dateFits(cfg, plan, nil, models.AreaAlQana, tuesday, false))

	plan.Add(&models.ShootDay{ID: "v2", Date: friday, Area: models.AreaGalleriaMall})
	assert.False(t, dateFits(cfg, plan, nil, models.AreaGalleriaMall, thursday, false))
	assert.True(t, dateFits(cfg, plan, nil, models.AreaAlQana, thursday, false))
}

func TestDateFitsCountsUncommittedDays(t *testing.T) {
	cfg := testSchedulerConfig(t)
	tuesday := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	extra := []*models.ShootDay{
		{ID: "pending", Date: tuesday, Area: models.AreaGalleriaMall},
	}

	assert.False(t, dateFits(cfg, models.SchedulePlan{}, extra, models.AreaGalleriaMall, tuesday.AddDate(0, 0, 1), true))
	assert.True(t, dateFits(cfg, models.SchedulePlan{}, extra, models.AreaGalleriaMall, tuesday.AddDate(0, 0, 3), true))
}
