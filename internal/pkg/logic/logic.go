package logic

import (
	"context"
	"strconv"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

type foxessCommands interface {
	SetWorkMode(ctx context.Context, mode model.WorkMode) error
}

type database interface {
	GetLatestProperties(ctx context.Context) (model.Properties, error)
}

type snapshotter interface {
	Data() *model.Snapshot
	RequestRefresh()
}

type logic struct {
	inverter    foxessCommands
	db          database
	coordinator snapshotter
	socFloor    float64
	logger      *zap.Logger
}

func NewLogicSvc(fsvc foxessCommands, db database, coordinator snapshotter, socFloor float64) *logic {
	return &logic{
		inverter:    fsvc,
		db:          db,
		coordinator: coordinator,
		socFloor:    socFloor,
		logger:      zap.L(),
	}
}

func latestSoc(properties model.Properties) (float64, bool) {
	property, found := lo.Find(properties, func(p model.Property) bool {
		return p.Slug == "battery_soc"
	})
	if !found {
		return 0, false
	}
	value, err := strconv.ParseFloat(property.Value, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// GuardSocFloor drops a force-discharging battery back to self use once its
// state of charge falls under the configured floor.
func (l *logic) GuardSocFloor(ctx context.Context) error {
	snapshot := l.coordinator.Data()
	if snapshot == nil || !snapshot.DeviceInfo.HasBattery {
		return nil
	}
	if snapshot.WorkMode != model.WorkModeForceDischarge {
		return nil
	}

	properties, err := l.db.GetLatestProperties(ctx)
	if err != nil {
		return err
	}
	soc, found := latestSoc(properties)
	if !found {
		l.logger.Warn("no battery soc measurement recorded yet")
		return nil
	}
	if soc >= l.socFloor {
		return nil
	}

	l.logger.Info("battery below soc floor, switching to self use",
		zap.Float64("soc", soc),
		zap.Float64("floor", l.socFloor))
	if err := l.inverter.SetWorkMode(ctx, model.WorkModeSelfUse); err != nil {
		return err
	}
	l.coordinator.RequestRefresh()
	return nil
}
