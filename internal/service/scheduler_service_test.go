package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/pkg/config"
	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
)

type campaignPoolStub struct {
	campaigns []models.Campaign
	err       error
}

func (s *campaignPoolStub) ListPending(ctx context.Context) ([]models.Campaign, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.campaigns, nil
}

type filmingWriterStub struct {
	applied map[string]string
	err     error
}

func (s *filmingWriterStub) UpdateFilmingDates(ctx context.Context, assignments map[string]string) error {
	if s.err != nil {
		return s.err
	}
	s.applied = assignments
	return nil
}

type calendarStub struct {
	holidays map[string]bool
	err      error
}

func (s calendarStub) IsWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return false, nil
	}
	return !s.holidays[dates.Format(date)], nil
}

type sinkStub struct {
	notices map[models.StakeholderRole][]string
}

func (s *sinkStub) Notify(ctx context.Context, role models.StakeholderRole, message string) {
	if s.notices == nil {
		s.notices = make(map[models.StakeholderRole][]string)
	}
	s.notices[role] = append(s.notices[role], message)
}

func rawSchedulerConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		AllowedWeekdays:      []time.Weekday{time.Tuesday, time.Thursday, time.Friday},
		PreferredWeekdays:    []time.Weekday{time.Tuesday, time.Friday, time.Thursday},
		MaxShootsPerWeek:     2,
		MinGapDays:           2,
		PlanningHorizonWeeks: 4,
		FallbackHorizonWeeks: 52,
		FreezeThreshold:      48 * time.Hour,
		MinCampaignsPerShoot: 1,
		GalleriaLocations:    []string{"galleria mall", "the galleria"},
		AlQanaLocations:      []string{"al qana"},
	}
}

func testSchedulerConfig(t *testing.T) SchedulingConfig {
	t.Helper()
	cfg, err := NewSchedulingConfig(rawSchedulerConfig())
	require.NoError(t, err)
	return cfg
}

// Monday 02-03-2026. Allowed weekdays in the same week fall on 03-03 (Tue),
// 05-03 (Thu) and 06-03 (Fri).
var fixedNow = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T, cfg SchedulingConfig, pool *campaignPoolStub, writer *filmingWriterStub, sink *sinkStub) *SchedulerService {
	t.Helper()
	svc := NewSchedulerService(pool, writer, calendarStub{}, sink, cfg, nil, nil, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func pendingRecord(taskID, location, block, start, end string) models.Campaign {
	return models.Campaign{
		TaskID:      taskID,
		Brand:       taskID + " brand",
		Location:    location,
		SalesPerson: "sara",
		TaskType:    "video",
		StartDate:   start,
		EndDate:     end,
		TimeBlock:   block,
		Status:      models.CampaignStatusPending,
	}
}

func TestSchedulerRunBundlesOverlappingCampaigns(t *testing.T) {
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		pendingRecord("g1", "Galleria Mall", "day", "03-03-2026", "12-03-2026"),
		pendingRecord("g2", "Galleria Mall", "day", "04-03-2026", "14-03-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, &filmingWriterStub{}, &sinkStub{})

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	// Friday 06-03 is the first candidate in preferred order where both
	// campaigns are live, so one visit carries both.
	assert.Equal(t, "06-03-2026", result.Assignments["g1"])
	assert.Equal(t, "06-03-2026", result.Assignments["g2"])
	assert.Empty(t, result.Unscheduled)
	assert.Empty(t, result.RescueTiers)

	days := result.Plan.Days()
	require.Len(t, days, 1)
	assert.Equal(t, 2, days[0].Score)
	assert.ElementsMatch(t, []string{"g1", "g2"}, days[0].TaskIDs)
}

func TestSchedulerRunKeepsAreasApartWithinTheWeek(t *testing.T) {
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		pendingRecord("g1", "Galleria Mall", "day", "02-03-2026", "31-03-2026"),
		pendingRecord("a1", "Al Qana", "day", "02-03-2026", "31-03-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, &filmingWriterStub{}, &sinkStub{})

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	// Galleria Mall takes the Tuesday. The shared crew needs the gap across
	// areas too, so Al Qana skips to Friday instead of shooting Tuesday or
	// the adjacent Thursday slot.
	assert.Equal(t, "03-03-2026", result.Assignments["g1"])
	assert.Equal(t, "06-03-2026", result.Assignments["a1"])
	assert.Empty(t, result.Unscheduled)
}

func TestSchedulerRunServesMixedTimeBlocksWithOneVisit(t *testing.T) {
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		pendingRecord("gday", "Galleria Mall", "day", "02-03-2026", "31-03-2026"),
		pendingRecord("gnight", "Galleria Mall", "night", "02-03-2026", "31-03-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, &filmingWriterStub{}, &sinkStub{})

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "03-03-2026", result.Assignments["gday"])
	assert.Equal(t, "03-03-2026", result.Assignments["gnight"])

	days := result.Plan.Days()
	require.Len(t, days, 1)
	assert.Equal(t, []models.TimeBlock{models.TimeBlockBoth}, days[0].TimeBlocks)
	assert.Equal(t, 2, days[0].Score)
}

func TestSchedulerRunSkipsFrozenCampaigns(t *testing.T) {
	frozen := pendingRecord("frozen", "Galleria Mall", "day", "02-03-2026", "31-03-2026")
	frozen.FilmingDate = "03-03-2026"
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		frozen,
		pendingRecord("free", "Galleria Mall", "day", "02-03-2026", "31-03-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, &filmingWriterStub{}, &sinkStub{})

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, result.Assignments, "frozen")
	assert.Contains(t, result.Assignments, "free")
	assert.NotContains(t, result.Unscheduled, "frozen")
}

func TestSchedulerRunWeeklyCapPushesOverflowToTierFour(t *testing.T) {
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		pendingRecord("c1", "Galleria Mall", "day", "03-03-2026", "03-03-2026"),
		pendingRecord("c2", "Galleria Mall", "day", "06-03-2026", "06-03-2026"),
		pendingRecord("c3", "Galleria Mall", "day", "05-03-2026", "05-03-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, &filmingWriterStub{}, &sinkStub{})

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "03-03-2026", result.Assignments["c1"])
	assert.Equal(t, "06-03-2026", result.Assignments["c2"])

	// The week is full once Tuesday and Friday are taken; the Thursday-only
	// campaign can only land by ignoring the weekly cap.
	assert.Equal(t, "05-03-2026", result.Assignments["c3"])
	assert.Equal(t, tierRelaxWeeklyCap, result.RescueTiers["c3"])
	assert.Empty(t, result.Unscheduled)
}

func TestSchedulerRunPiggybacksOnExistingVisit(t *testing.T) {
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		pendingRecord("c1", "Galleria Mall", "day", "03-03-2026", "03-03-2026"),
		pendingRecord("c5", "Galleria Mall", "", "03-03-2026", "03-03-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, &filmingWriterStub{}, &sinkStub{})

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	// The blank-block campaign never scores in the primary pass. Its only
	// legal date already hosts c1's visit, which blocks a new shoot day via
	// the gap rule, so the rescue joins the existing visit instead.
	assert.Equal(t, "03-03-2026", result.Assignments["c5"])
	assert.Equal(t, tierPiggyback, result.RescueTiers["c5"])

	visit := result.Plan.FindVisit(models.AreaGalleriaMall, mustParseDate(t, "03-03-2026"))
	require.NotNil(t, visit)
	assert.Contains(t, visit.TaskIDs, "c5")
}

func TestSchedulerRunRelaxesGapBeforeCap(t *testing.T) {
	raw := rawSchedulerConfig()
	raw.MinGapDays = 3
	cfg, err := NewSchedulingConfig(raw)
	require.NoError(t, err)

	pool := &campaignPoolStub{campaigns: []models.Campaign{
		pendingRecord("c1", "Galleria Mall", "day", "03-03-2026", "03-03-2026"),
		pendingRecord("c6", "Galleria Mall", "day", "05-03-2026", "05-03-2026"),
	}}
	svc := newTestScheduler(t, cfg, pool, &filmingWriterStub{}, &sinkStub{})

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	// Thursday sits two days after the committed Tuesday, inside the 3-day
	// gap. The week still has capacity, so only the spacing rule is waived.
	assert.Equal(t, "05-03-2026", result.Assignments["c6"])
	assert.Equal(t, tierRelaxGap, result.RescueTiers["c6"])
}

func TestSchedulerRunTierFiveFindsGenericWorkingDay(t *testing.T) {
	// Saturday-Sunday window: no allowed weekday exists at all, so every
	// date-based tier fails and the scan falls back to plain working days.
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		pendingRecord("wknd", "Galleria Mall", "day", "07-03-2026", "08-03-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, &filmingWriterStub{}, &sinkStub{})

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, tierAnyWorkingDay, result.RescueTiers["wknd"])
	assert.Equal(t, "02-03-2026", result.Assignments["wknd"])
}

func TestSchedulerRunEscalatesUnschedulableCampaigns(t *testing.T) {
	sink := &sinkStub{}
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		pendingRecord("expired", "Galleria Mall", "day", "01-02-2026", "28-02-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, &filmingWriterStub{}, sink)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"expired"}, result.Unscheduled)
	assert.Empty(t, result.Assignments)

	require.Len(t, sink.notices[models.RoleReviewer], 1)
	require.Len(t, sink.notices[models.RoleHeadOfSales], 1)
	assert.Contains(t, sink.notices[models.RoleReviewer][0], "expired brand")
	assert.Contains(t, sink.notices[models.RoleReviewer][0], "28-02-2026")
}

func TestSchedulerRunSkipsMalformedRecords(t *testing.T) {
	bad := pendingRecord("bad", "Galleria Mall", "day", "2026-03-03", "12-03-2026")
	elsewhere := pendingRecord("dxb", "Dubai Mall", "day", "03-03-2026", "12-03-2026")
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		bad,
		elsewhere,
		pendingRecord("ok", "Galleria Mall", "day", "03-03-2026", "12-03-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, &filmingWriterStub{}, &sinkStub{})

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, result.Assignments, "ok")
	assert.NotContains(t, result.Assignments, "bad")
	assert.NotContains(t, result.Assignments, "dxb")
	assert.Empty(t, result.Unscheduled)
}

func TestSchedulerRunIsDeterministicForSameSnapshot(t *testing.T) {
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		pendingRecord("g1", "Galleria Mall", "day", "02-03-2026", "31-03-2026"),
		pendingRecord("a1", "Al Qana", "night", "02-03-2026", "31-03-2026"),
		pendingRecord("g2", "The Galleria", "both", "09-03-2026", "20-03-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, &filmingWriterStub{}, &sinkStub{})

	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	second, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.RescueTiers, second.RescueTiers)
	assert.Equal(t, first.Unscheduled, second.Unscheduled)
}

func TestSchedulerApplyPersistsAssignments(t *testing.T) {
	writer := &filmingWriterStub{}
	pool := &campaignPoolStub{campaigns: []models.Campaign{
		pendingRecord("g1", "Galleria Mall", "day", "03-03-2026", "12-03-2026"),
	}}
	svc := newTestScheduler(t, testSchedulerConfig(t), pool, writer, &sinkStub{})

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Apply(context.Background(), result))

	assert.Equal(t, result.Assignments, writer.applied)
}

func TestSchedulerApplyWithNoAssignmentsIsNoop(t *testing.T) {
	writer := &filmingWriterStub{err: assert.AnError}
	svc := newTestScheduler(t, testSchedulerConfig(t), &campaignPoolStub{}, writer, &sinkStub{})

	require.NoError(t, svc.Apply(context.Background(), &RunResult{Assignments: map[string]string{}}))
	require.NoError(t, svc.Apply(context.Background(), nil))
}

func mustParseDate(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := dates.Parse(raw)
	require.NoError(t, err)
	return parsed
}
