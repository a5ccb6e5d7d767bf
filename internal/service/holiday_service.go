package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Amrtamer711/ironforge-sub001/internal/dto"
	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
	appErrors "github.com/Amrtamer711/ironforge-sub001/pkg/errors"
)

type holidayStore interface {
	ListAll(ctx context.Context) ([]models.Holiday, error)
	Create(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id string) error
}

type holidayInvalidator interface {
	InvalidateHolidays(ctx context.Context)
}

// HolidayService manages the public-holiday table feeding the working-day
// calendar. Mutations invalidate the calendar's cached holiday set.
type HolidayService struct {
	store     holidayStore
	calendar  holidayInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHolidayService creates a holiday service.
func NewHolidayService(store holidayStore, calendar holidayInvalidator, validate *validator.Validate, logger *zap.Logger) *HolidayService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{store: store, calendar: calendar, validator: validate, logger: logger}
}

// List returns every registered holiday.
func (s *HolidayService) List(ctx context.Context) ([]models.Holiday, error) {
	holidays, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list holidays")
	}
	return holidays, nil
}

// Create registers a new public holiday.
func (s *HolidayService) Create(ctx context.Context, req dto.CreateHolidayRequest) (*models.Holiday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday payload")
	}

	date, err := dates.Parse(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidDate, "date must use DD-MM-YYYY")
	}

	holiday := &models.Holiday{Date: date, Name: req.Name}
	if err := s.store.Create(ctx, holiday); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create holiday")
	}

	if s.calendar != nil {
		s.calendar.InvalidateHolidays(ctx)
	}
	s.logger.Info("holiday created", zap.String("date", dates.Format(date)), zap.String("name", req.Name))
	return holiday, nil
}

// Delete removes a holiday by id.
func (s *HolidayService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "holiday id required")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete holiday")
	}
	if s.calendar != nil {
		s.calendar.InvalidateHolidays(ctx)
	}
	s.logger.Info("holiday deleted", zap.String("id", id))
	return nil
}
