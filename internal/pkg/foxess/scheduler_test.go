package foxess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

func TestCurrentPeriodIndex(t *testing.T) {
	t.Parallel()
	groups := []model.SchedulerGroup{
		{StartHour: 6, StartMinute: 0, EndHour: 12, EndMinute: 0},
		{StartHour: 22, StartMinute: 0, EndHour: 2, EndMinute: 0}, // spans midnight
	}

	at := func(hour, minute int) time.Time {
		return time.Date(2026, 8, 23, hour, minute, 0, 0, time.UTC)
	}

	testCases := []struct {
		name     string
		now      time.Time
		expected int
		found    bool
	}{
		{name: "inside first period", now: at(8, 30), expected: 0, found: true},
		{name: "inclusive period start", now: at(6, 0), expected: 0, found: true},
		{name: "inclusive period end", now: at(12, 0), expected: 0, found: true},
		{name: "midnight span before midnight", now: at(23, 15), expected: 1, found: true},
		{name: "midnight span after midnight", now: at(1, 30), expected: 1, found: true},
		{name: "no period covers now", now: at(15, 0), found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			idx, found := CurrentPeriodIndex(groups, tc.now)
			assert.Equal(t, tc.found, found)
			if tc.found {
				assert.Equal(t, tc.expected, idx)
			}
		})
	}
}

func TestMinimalGroup(t *testing.T) {
	t.Parallel()
	got := MinimalGroup(model.SchedulerGroup{
		Enable:    1,
		StartHour: 1, StartMinute: 2,
		EndHour: 3, EndMinute: 4,
		MinSoc: 42,
	})
	assert.Equal(t, model.WorkModeSelfUse, got.WorkMode) // defaulted
	assert.Equal(t, 0, got.MinSoc)                       // stripped
	assert.Equal(t, 1, got.Enable)
	assert.Equal(t, 3, got.EndHour)
}

func TestBatterySettings_Fallbacks(t *testing.T) {
	t.Parallel()
	// No groups at all: vendor defaults.
	settings := batterySettings(nil)
	assert.Equal(t, 10, settings.MinSoc)
	assert.Equal(t, 10, settings.MinSocOnGrid)

	// Floor carried only in extraParam.
	settings = batterySettings([]model.SchedulerGroup{{
		StartHour: 0, EndHour: 23, EndMinute: 59,
		MinSoc:     30,
		ExtraParam: &model.SchedulerExtraParam{MinSocOnGrid: 35},
	}})
	assert.Equal(t, 30, settings.MinSoc)
	assert.Equal(t, 35, settings.MinSocOnGrid)
}
