package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
)

type holidayListerStub struct {
	holidays []models.Holiday
	err      error
	calls    int
}

func (s *holidayListerStub) ListAll(ctx context.Context) ([]models.Holiday, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.holidays, nil
}

func TestIsWorkingDayWeekendAndFriday(t *testing.T) {
	svc := NewWorkdayService(&holidayListerStub{}, nil, 0, nil)

	// 06-03-2026 is a Friday, 07-03 Saturday, 08-03 Sunday, 09-03 Monday.
	friday := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ok, err := svc.IsWorkingDay(context.Background(), friday.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.False(t, ok)
	}

	ok, err := svc.IsWorkingDay(context.Background(), friday.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsWorkingDayExcludesHolidays(t *testing.T) {
	monday := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	svc := NewWorkdayService(&holidayListerStub{holidays: []models.Holiday{
		{ID: "h1", Date: monday, Name: "Eid"},
	}}, nil, 0, nil)

	ok, err := svc.IsWorkingDay(context.Background(), monday)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsWorkingDay(context.Background(), monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNextWorkingDaySkipsWeekendAndHoliday(t *testing.T) {
	monday := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	svc := NewWorkdayService(&holidayListerStub{holidays: []models.Holiday{
		{ID: "h1", Date: monday, Name: "Eid"},
	}}, nil, 0, nil)

	friday := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	next, err := svc.NextWorkingDay(context.Background(), friday)
	require.NoError(t, err)
	assert.Equal(t, monday.AddDate(0, 0, 1), next)
}

func TestIsWorkingDayPropagatesRepositoryFailure(t *testing.T) {
	svc := NewWorkdayService(&holidayListerStub{err: assert.AnError}, nil, 0, nil)

	_, err := svc.IsWorkingDay(context.Background(), time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}
