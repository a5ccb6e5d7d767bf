package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
	appErrors "github.com/Amrtamer711/ironforge-sub001/pkg/errors"
)

type campaignLister interface {
	ListPending(ctx context.Context) ([]models.Campaign, error)
}

type assignmentWriter interface {
	UpdateFilmingDates(ctx context.Context, assignments map[string]string) error
}

type workingDayOracle interface {
	IsWorkingDay(ctx context.Context, date time.Time) (bool, error)
}

type notificationSink interface {
	Notify(ctx context.Context, role models.StakeholderRole, message string)
}

// Fallback tiers, in relaxation order. Tier 0 means the campaign was placed
// by the primary weekly pass.
const (
	tierPrimary        = 0
	tierFullConstraint = 1
	tierPiggyback      = 2
	tierRelaxGap       = 3
	tierRelaxWeeklyCap = 4
	tierAnyWorkingDay  = 5
)

// SchedulerService drives the multi-week shoot planning run and the
// single-campaign advisory path. One Run call is a pure computation over the
// pending-pool snapshot fetched at its start; Apply persists the returned
// assignments afterwards. Concurrent runs are not guarded against, invokers
// must serialise scheduling jobs.
type SchedulerService struct {
	campaigns campaignLister
	writer    assignmentWriter
	calendar  workingDayOracle
	notifier  notificationSink
	resolver  *AreaResolver
	generator *CandidateDateGenerator
	planner   *WeekPlanner
	scorer    OverlapScorer
	cfg       SchedulingConfig
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSchedulerService wires the scheduling pipeline.
func NewSchedulerService(
	campaigns campaignLister,
	writer assignmentWriter,
	calendar workingDayOracle,
	notifier notificationSink,
	cfg SchedulingConfig,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *SchedulerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	generator := NewCandidateDateGenerator(cfg)
	return &SchedulerService{
		campaigns: campaigns,
		writer:    writer,
		calendar:  calendar,
		notifier:  notifier,
		resolver:  NewAreaResolver(cfg),
		generator: generator,
		planner:   NewWeekPlanner(cfg, generator, logger),
		cfg:       cfg,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// RunResult is the outcome of one scheduling run. Assignments and the plan
// cover both primary-pass and fallback-rescued campaigns; RescueTiers maps
// rescued task IDs to the tier that saved them.
type RunResult struct {
	RunID       string            `json:"run_id"`
	Assignments map[string]string `json:"assignments"`
	RescueTiers map[string]int    `json:"rescue_tiers"`
	Unscheduled []string          `json:"unscheduled"`
	Plan        models.SchedulePlan
}

// Run executes the whole planning horizon over the current pending pool.
// Unschedulable campaigns are a normal outcome handled through stakeholder
// notification, never an error; only collaborator failures abort the run.
func (s *SchedulerService) Run(ctx context.Context) (*RunResult, error) {
	started := s.now()
	today := dates.Midnight(started)

	raw, err := s.campaigns.ListPending(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pending campaigns")
	}

	pool := s.parseCampaigns(raw)
	eligible := s.dropFrozen(pool, started)

	result := &RunResult{
		RunID:       uuid.NewString(),
		Assignments: make(map[string]string),
		RescueTiers: make(map[string]int),
		Plan:        models.SchedulePlan{},
	}
	if len(eligible) == 0 {
		s.logger.Info("scheduling run found no eligible campaigns", zap.String("run_id", result.RunID))
		return result, nil
	}

	byArea := make(map[models.Area][]pendingCampaign)
	for _, campaign := range eligible {
		byArea[campaign.area] = append(byArea[campaign.area], campaign)
	}

	// Primary pass: Galleria Mall commits each week before Al Qana plans, so
	// the second area always sees the first area's occupied dates. Campaigns
	// leave the pool the moment a shoot day claims them.
	for week := 0; week < s.cfg.PlanningHorizonWeeks; week++ {
		weekStart := today.AddDate(0, 0, 7*week)
		for _, area := range models.PlanningOrder() {
			for _, day := range s.planner.PlanWeek(area, byArea[area], weekStart, today, result.Plan) {
				result.Plan.Add(day)
				for _, taskID := range day.TaskIDs {
					result.Assignments[taskID] = dates.Format(day.Date)
				}
				byArea[area] = dropClaimed(byArea[area], day.TaskIDs)
			}
		}
	}

	unassigned := make([]pendingCampaign, 0)
	for _, campaign := range eligible {
		if _, ok := result.Assignments[campaign.taskID]; !ok {
			unassigned = append(unassigned, campaign)
		}
	}
	// Earliest-expiring campaigns get first pick of the relaxed slots.
	sort.SliceStable(unassigned, func(i, j int) bool {
		return unassigned[i].end.Before(unassigned[j].end)
	})

	var unschedulable []pendingCampaign
	for _, campaign := range unassigned {
		tier, date, err := s.rescue(ctx, campaign, result.Plan, today)
		if err != nil {
			return nil, err
		}
		if tier == tierPrimary {
			unschedulable = append(unschedulable, campaign)
			result.Unscheduled = append(result.Unscheduled, campaign.taskID)
			continue
		}
		result.Assignments[campaign.taskID] = dates.Format(date)
		result.RescueTiers[campaign.taskID] = tier
		s.logger.Info("campaign rescued by fallback",
			zap.String("task_id", campaign.taskID),
			zap.Int("tier", tier),
			zap.String("date", dates.Format(date)),
		)
	}

	s.escalate(ctx, unschedulable)

	if s.metrics != nil {
		s.metrics.RecordSchedulerRun(s.now().Sub(started), len(result.Assignments), result.RescueTiers, len(result.Unscheduled))
	}
	s.logger.Info("scheduling run complete",
		zap.String("run_id", result.RunID),
		zap.Int("assigned", len(result.Assignments)),
		zap.Int("rescued", len(result.RescueTiers)),
		zap.Int("unscheduled", len(result.Unscheduled)),
	)
	return result, nil
}

// Apply writes the run's filming date assignments back onto the campaign
// records in one transaction.
func (s *SchedulerService) Apply(ctx context.Context, result *RunResult) error {
	if result == nil || len(result.Assignments) == 0 {
		return nil
	}
	if err := s.writer.UpdateFilmingDates(ctx, result.Assignments); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist filming dates")
	}
	s.logger.Info("filming dates persisted",
		zap.String("run_id", result.RunID),
		zap.Int("assignments", len(result.Assignments)),
	)
	return nil
}

// rescue walks the five relaxation tiers for one unassigned campaign and
// returns the winning tier with the chosen date, or tierPrimary when every
// tier failed. Only calendar-oracle failures surface as errors.
func (s *SchedulerService) rescue(ctx context.Context, campaign pendingCampaign, plan models.SchedulePlan, today time.Time) (int, time.Time, error) {
	block := campaign.block
	if block == models.TimeBlockNone {
		block = models.TimeBlockDay
	}

	// Fallback searches the campaign's entire remaining window, not just the
	// planning horizon: beating the deadline outranks horizon hygiene.
	candidates := s.generator.Generate(campaign.start, campaign.end, today, s.cfg.FallbackHorizonWeeks)

	// Tier 1: full constraints, whole window.
	for _, date := range candidates {
		if dateFits(s.cfg, plan, nil, campaign.area, date, true) {
			s.commitFallbackDay(plan, campaign, block, date)
			return tierFullConstraint, date, nil
		}
	}

	// Tier 2: piggyback on an existing same-area visit.
	for _, date := range candidates {
		if visit := plan.FindVisit(campaign.area, date); visit != nil {
			visit.AddTask(campaign.taskID, block)
			return tierPiggyback, date, nil
		}
	}

	// Tier 3: drop the spacing rule, keep the weekly cap and refuse a second
	// visit on an already-taken date.
	for _, date := range candidates {
		if plan.FindVisit(campaign.area, date) == nil && dateFits(s.cfg, plan, nil, campaign.area, date, false) {
			s.commitFallbackDay(plan, campaign, block, date)
			return tierRelaxGap, date, nil
		}
	}

	// Tier 4: first allowed weekday regardless of how full the week is.
	if len(candidates) > 0 {
		date := candidates[0]
		s.commitFallbackDay(plan, campaign, block, date)
		return tierRelaxWeeklyCap, date, nil
	}

	// Tier 5: abandon the allowed-weekday set entirely; any generic working
	// day between today and expiry will do. Never lands on a weekend or
	// holiday even here.
	for date := today; !date.After(campaign.end); date = date.AddDate(0, 0, 1) {
		ok, err := s.calendar.IsWorkingDay(ctx, date)
		if err != nil {
			return tierPrimary, time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "working-day calendar unavailable")
		}
		if ok {
			s.commitFallbackDay(plan, campaign, block, date)
			return tierAnyWorkingDay, date, nil
		}
	}

	return tierPrimary, time.Time{}, nil
}

func (s *SchedulerService) commitFallbackDay(plan models.SchedulePlan, campaign pendingCampaign, block models.TimeBlock, date time.Time) {
	plan.Add(&models.ShootDay{
		ID:         uuid.NewString(),
		Date:       date,
		Area:       campaign.area,
		TimeBlocks: []models.TimeBlock{block},
		TaskIDs:    []string{campaign.taskID},
		Score:      1,
	})
}

// escalate reports campaigns no tier could place. Delivery is best-effort;
// the sink owns retry and failure logging.
func (s *SchedulerService) escalate(ctx context.Context, unschedulable []pendingCampaign) {
	if s.notifier == nil {
		return
	}
	for _, campaign := range unschedulable {
		message := fmt.Sprintf(
			"Campaign %q (task %s) at %s could not be scheduled before its expiry on %s. Sales owner: %s. Manual intervention required.",
			campaign.brand, campaign.taskID, campaign.location, dates.Format(campaign.end), campaign.salesPerson,
		)
		for _, role := range models.EscalationRoles() {
			s.notifier.Notify(ctx, role, message)
		}
		s.logger.Warn("campaign unschedulable after all fallback tiers",
			zap.String("task_id", campaign.taskID),
			zap.String("brand", campaign.brand),
			zap.String("expiry", dates.Format(campaign.end)),
		)
	}
}

// parseCampaigns converts raw records into planner inputs. A single
// malformed record is logged and skipped; it never aborts the batch.
func (s *SchedulerService) parseCampaigns(raw []models.Campaign) []pendingCampaign {
	pool := make([]pendingCampaign, 0, len(raw))
	for _, record := range raw {
		if record.Status != models.CampaignStatusPending {
			continue
		}
		area, ok := s.resolver.Resolve(record.Location)
		if !ok {
			continue
		}

		start, err := dates.Parse(record.StartDate)
		if err != nil {
			s.logger.Warn("skipping campaign with malformed start date",
				zap.String("task_id", record.TaskID), zap.Error(err))
			continue
		}

		var end time.Time
		if strings.TrimSpace(record.EndDate) == "" {
			end = start.AddDate(0, 0, 30)
		} else {
			end, err = dates.Parse(record.EndDate)
			if err != nil {
				s.logger.Warn("skipping campaign with malformed end date",
					zap.String("task_id", record.TaskID), zap.Error(err))
				continue
			}
		}

		var filming *time.Time
		if strings.TrimSpace(record.FilmingDate) != "" {
			parsed, err := dates.Parse(record.FilmingDate)
			if err != nil {
				// An unreadable filming date cannot freeze a campaign.
				s.logger.Warn("ignoring malformed filming date",
					zap.String("task_id", record.TaskID), zap.Error(err))
			} else {
				filming = &parsed
			}
		}

		pool = append(pool, pendingCampaign{
			taskID:      record.TaskID,
			brand:       record.Brand,
			location:    record.Location,
			salesPerson: record.SalesPerson,
			area:        area,
			block:       models.ParseTimeBlock(record.TimeBlock),
			start:       start,
			end:         end,
			filming:     filming,
		})
	}
	return pool
}

// dropFrozen excludes campaigns whose existing filming date sits within the
// freeze threshold of now; those are locked in place for this run.
func (s *SchedulerService) dropFrozen(pool []pendingCampaign, now time.Time) []pendingCampaign {
	kept := make([]pendingCampaign, 0, len(pool))
	for _, campaign := range pool {
		if s.isFrozen(campaign, now) {
			s.logger.Debug("campaign frozen, excluded from planning",
				zap.String("task_id", campaign.taskID))
			continue
		}
		kept = append(kept, campaign)
	}
	return kept
}

func (s *SchedulerService) isFrozen(campaign pendingCampaign, now time.Time) bool {
	if campaign.filming == nil {
		return false
	}
	diff := campaign.filming.Sub(now)
	if diff < 0 {
		diff = -diff
	}
	return diff <= s.cfg.FreezeThreshold
}
