package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
	appErrors "github.com/Amrtamer711/ironforge-sub001/pkg/errors"
)

const holidayCacheKey = "workdays:holidays"

type holidayLister interface {
	ListAll(ctx context.Context) ([]models.Holiday, error)
}

// WorkdayService is the working-day calendar oracle: a date is a working day
// when it falls Monday through Thursday and is not a public holiday. The
// holiday table is cached to keep fallback scans off the database.
type WorkdayService struct {
	holidays holidayLister
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewWorkdayService constructs the calendar oracle.
func NewWorkdayService(holidays holidayLister, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *WorkdayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 12 * time.Hour
	}
	return &WorkdayService{holidays: holidays, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// IsWorkingDay reports whether the date is a generic working day.
func (s *WorkdayService) IsWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return false, nil
	}

	holidaySet, err := s.holidaySet(ctx)
	if err != nil {
		return false, err
	}
	return !holidaySet[dates.Format(date)], nil
}

// NextWorkingDay steps forward from the given date to the first working day,
// inclusive of the date itself.
func (s *WorkdayService) NextWorkingDay(ctx context.Context, date time.Time) (time.Time, error) {
	current := dates.Midnight(date)
	for i := 0; i < 366; i++ {
		ok, err := s.IsWorkingDay(ctx, current)
		if err != nil {
			return time.Time{}, err
		}
		if ok {
			return current, nil
		}
		current = current.AddDate(0, 0, 1)
	}
	return time.Time{}, appErrors.Clone(appErrors.ErrInternal, "no working day found within a year")
}

// InvalidateHolidays drops the cached holiday set after table mutations.
func (s *WorkdayService) InvalidateHolidays(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, holidayCacheKey); err != nil {
		s.logger.Warn("holiday cache invalidation failed", zap.Error(err))
	}
}

func (s *WorkdayService) holidaySet(ctx context.Context) (map[string]bool, error) {
	var cached []string
	if s.cache.Enabled() {
		hit, err := s.cache.Get(ctx, holidayCacheKey, &cached)
		if err == nil && hit {
			return holidayKeysToSet(cached), nil
		}
	}

	holidays, err := s.holidays.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holiday calendar")
	}

	keys := make([]string, 0, len(holidays))
	for _, holiday := range holidays {
		keys = append(keys, dates.Format(holiday.Date))
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, holidayCacheKey, keys, s.cacheTTL); err != nil {
			s.logger.Warn("holiday cache set failed", zap.Error(err))
		}
	}

	return holidayKeysToSet(keys), nil
}

func holidayKeysToSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		set[key] = true
	}
	return set
}
