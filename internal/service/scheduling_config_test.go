package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedulingConfigFillsPreferredOrder(t *testing.T) {
	raw := rawSchedulerConfig()
	raw.PreferredWeekdays = []time.Weekday{time.Friday}

	cfg, err := NewSchedulingConfig(raw)
	require.NoError(t, err)

	// Explicit preferences first, then remaining allowed days in their
	// configured order.
	assert.Equal(t, 0, cfg.WeekdayRank(time.Friday))
	assert.Equal(t, 1, cfg.WeekdayRank(time.Tuesday))
	assert.Equal(t, 2, cfg.WeekdayRank(time.Thursday))
	assert.Equal(t, 3, cfg.WeekdayRank(time.Monday))
}

func TestNewSchedulingConfigRejectsPreferredOutsideAllowed(t *testing.T) {
	raw := rawSchedulerConfig()
	raw.PreferredWeekdays = []time.Weekday{time.Monday}

	_, err := NewSchedulingConfig(raw)
	assert.Error(t, err)
}

func TestNewSchedulingConfigValidation(t *testing.T) {
	raw := rawSchedulerConfig()
	raw.AllowedWeekdays = nil
	_, err := NewSchedulingConfig(raw)
	assert.Error(t, err)

	raw = rawSchedulerConfig()
	raw.MaxShootsPerWeek = 0
	_, err = NewSchedulingConfig(raw)
	assert.Error(t, err)

	raw = rawSchedulerConfig()
	raw.GalleriaLocations = nil
	_, err = NewSchedulingConfig(raw)
	assert.Error(t, err)
}

func TestNewSchedulingConfigDefaultsSoftFields(t *testing.T) {
	raw := rawSchedulerConfig()
	raw.FallbackHorizonWeeks = 0
	raw.FreezeThreshold = 0
	raw.MinCampaignsPerShoot = 0

	cfg, err := NewSchedulingConfig(raw)
	require.NoError(t, err)

	assert.Equal(t, 52, cfg.FallbackHorizonWeeks)
	assert.Equal(t, 48*time.Hour, cfg.FreezeThreshold)
	assert.Equal(t, 1, cfg.MinCampaignsPerShoot)
}

func TestWeekdayAllowed(t *testing.T) {
	cfg := testSchedulerConfig(t)
	assert.True(t, cfg.WeekdayAllowed(time.Tuesday))
	assert.False(t, cfg.WeekdayAllowed(time.Saturday))
}
