package foxess

import (
	"context"
	"net/http"
	"time"

	"github.com/anicoll/foxess-integration/internal/pkg/config"
	"github.com/anicoll/foxess-integration/internal/pkg/model"
	"go.uber.org/zap"
)

// service is the signed FoxESS Cloud REST client. All calls go through a
// shared limiter, so concurrent callers (poller, MQTT commands, HTTP API)
// are serialised against the vendor's documented request limits.
type service struct {
	cfg     *config.FoxessConfig
	client  *http.Client
	limiter *limiter
	logger  *zap.Logger
	errChan chan error
}

func New(cfg *config.FoxessConfig, errChan chan error) *service {
	return &service{
		cfg:     cfg,
		client:  &http.Client{},
		limiter: newLimiter(),
		logger:  zap.L(), // returns the global logger.
		errChan: errChan,
	}
}

func (s *service) sendIfErr(err error) {
	if err != nil {
		s.errChan <- err
	}
}

// GetData runs one full poll cycle: device identity, real-time snapshot and,
// when a battery is present, the scheduler state the writable settings live
// in. The pieces are fetched sequentially; the limiter paces them.
func (s *service) GetData(ctx context.Context) (*model.Snapshot, error) {
	detail, err := s.GetDeviceDetail(ctx)
	if err != nil {
		return nil, err
	}

	realTime, err := s.GetRealTimeData(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &model.Snapshot{
		DeviceInfo: detail,
		RealTime:   *realTime,
		WorkMode:   model.WorkModeSelfUse,
	}

	if !detail.HasBattery {
		return snapshot, nil
	}

	groups, err := s.GetScheduleGroups(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.ScheduleGroups = groups
	snapshot.BatterySettings = batterySettings(groups)
	if idx, ok := CurrentPeriodIndex(groups, time.Now()); ok {
		snapshot.WorkMode = groups[idx].WorkMode
	}
	return snapshot, nil
}

// batterySettings reads the floor values out of the current schedule period,
// falling back to the first group and then to the vendor default of 10%.
func batterySettings(groups []model.SchedulerGroup) model.BatterySettings {
	settings := model.BatterySettings{MinSoc: 10, MinSocOnGrid: 10}
	if len(groups) == 0 {
		return settings
	}
	group := groups[0]
	if idx, ok := CurrentPeriodIndex(groups, time.Now()); ok {
		group = groups[idx]
	}
	if group.MinSoc > 0 {
		settings.MinSoc = group.MinSoc
	}
	switch {
	case group.MinSocOnGrid > 0:
		settings.MinSocOnGrid = group.MinSocOnGrid
	case group.ExtraParam != nil && group.ExtraParam.MinSocOnGrid > 0:
		settings.MinSocOnGrid = group.ExtraParam.MinSocOnGrid
	}
	return settings
}
