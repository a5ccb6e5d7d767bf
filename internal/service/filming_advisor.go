package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Amrtamer711/ironforge-sub001/internal/dto"
	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
	appErrors "github.com/Amrtamer711/ironforge-sub001/pkg/errors"
)

// AdviseFilmingDate is the cheap single-campaign path used at creation time,
// before the campaign joins the pending pool. It scores the campaign's own
// window against the current pool and recommends the best-bundling date; it
// creates no shoot day and mutates no schedule state. A real scheduling run
// afterwards may land the campaign somewhere else.
func (s *SchedulerService) AdviseFilmingDate(ctx context.Context, req dto.FilmingDateRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filming date payload")
	}

	start, err := dates.Parse(req.StartDate)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrInvalidDate, "campaign_start_date must use DD-MM-YYYY")
	}
	end := start.AddDate(0, 0, 30)
	if strings.TrimSpace(req.EndDate) != "" {
		end, err = dates.Parse(req.EndDate)
		if err != nil {
			return "", appErrors.Clone(appErrors.ErrInvalidDate, "campaign_end_date must use DD-MM-YYYY")
		}
	}
	if end.Before(start) {
		return "", appErrors.Clone(appErrors.ErrValidation, "campaign_end_date must be on or after campaign_start_date")
	}

	area, ok := s.resolver.Resolve(req.Location)
	if !ok {
		// Callers should not route non-managed locations here; handing the
		// raw start date back keeps the degenerate case harmless.
		s.logger.Warn("filming date requested for unmanaged location",
			zap.String("location", req.Location))
		return dates.Format(start), nil
	}

	block := models.ParseTimeBlock(req.TimeBlock)
	if block == models.TimeBlockNone {
		block = models.TimeBlockDay
	}

	today := dates.Midnight(s.now())
	candidates := s.generator.Generate(start, end, today, s.cfg.PlanningHorizonWeeks)
	if len(candidates) == 0 {
		return dates.Format(start), nil
	}

	raw, err := s.campaigns.ListPending(ctx)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pending campaigns")
	}
	pool := s.parseCampaigns(raw)

	bestDate := candidates[0]
	bestScore, _ := s.scorer.Score(bestDate, area, block, pool)
	for _, date := range candidates[1:] {
		score, _ := s.scorer.Score(date, area, block, pool)
		if score > bestScore {
			bestDate = date
			bestScore = score
		}
	}

	return dates.Format(bestDate), nil
}
