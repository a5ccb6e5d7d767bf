package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Amrtamer711/ironforge-sub001/internal/dto"
	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
	appErrors "github.com/Amrtamer711/ironforge-sub001/pkg/errors"
)

type campaignStore interface {
	List(ctx context.Context, filter models.CampaignFilter) ([]models.Campaign, int, error)
	FindByID(ctx context.Context, taskID string) (*models.Campaign, error)
	Create(ctx context.Context, campaign *models.Campaign) error
}

type filmingAdviser interface {
	AdviseFilmingDate(ctx context.Context, req dto.FilmingDateRequest) (string, error)
}

// CampaignService owns campaign intake and lookup.
type CampaignService struct {
	store     campaignStore
	adviser   filmingAdviser
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCampaignService creates a campaign service. A nil adviser skips the
// advisory filming date stamp at intake.
func NewCampaignService(store campaignStore, adviser filmingAdviser, validate *validator.Validate, logger *zap.Logger) *CampaignService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignService{store: store, adviser: adviser, validator: validate, logger: logger}
}

// Create validates and stores a new campaign in the pending pool.
func (s *CampaignService) Create(ctx context.Context, req dto.CreateCampaignRequest) (*models.Campaign, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid campaign payload")
	}

	start, err := dates.Parse(req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidDate, "campaign_start_date must use DD-MM-YYYY")
	}
	endDate := strings.TrimSpace(req.EndDate)
	if endDate != "" {
		end, err := dates.Parse(endDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidDate, "campaign_end_date must use DD-MM-YYYY")
		}
		if end.Before(start) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "campaign_end_date must be on or after campaign_start_date")
		}
	}

	if existing, err := s.store.FindByID(ctx, req.TaskID); err == nil && existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "task_id already exists")
	}

	campaign := &models.Campaign{
		TaskID:      req.TaskID,
		Brand:       req.Brand,
		Location:    req.Location,
		SalesPerson: req.SalesPerson,
		TaskType:    req.TaskType,
		StartDate:   dates.Format(start),
		EndDate:     endDate,
		TimeBlock:   string(models.ParseTimeBlock(req.TimeBlock)),
		Status:      models.CampaignStatusPending,
	}

	// Intake stamps an advisory date so sales sees a tentative slot
	// immediately; the next scheduling run may still move it.
	if s.adviser != nil {
		advised, err := s.adviser.AdviseFilmingDate(ctx, dto.FilmingDateRequest{
			Location:  req.Location,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			TaskType:  req.TaskType,
			TimeBlock: req.TimeBlock,
		})
		if err != nil {
			s.logger.Warn("advisory filming date unavailable at intake",
				zap.String("task_id", req.TaskID), zap.Error(err))
		} else {
			campaign.FilmingDate = advised
		}
	}

	if err := s.store.Create(ctx, campaign); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create campaign")
	}

	s.logger.Info("campaign created",
		zap.String("task_id", campaign.TaskID),
		zap.String("location", campaign.Location),
	)
	return campaign, nil
}

// List returns campaigns matching the filter plus the total match count.
func (s *CampaignService) List(ctx context.Context, filter models.CampaignFilter) ([]models.Campaign, int, error) {
	campaigns, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list campaigns")
	}
	return campaigns, total, nil
}

// Get loads one campaign by task id.
func (s *CampaignService) Get(ctx context.Context, taskID string) (*models.Campaign, error) {
	campaign, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "campaign not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load campaign")
	}
	return campaign, nil
}
