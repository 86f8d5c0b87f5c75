package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
	"go.uber.org/zap"
)

var errAlreadyRegistered = errors.New("publisher already registered")

var (
	registeredPublishers = make(map[string]publisher)
	sensors              sync.Map
)

type publisher interface {
	// Write publishes the device status data to the registered adapter.
	Write(ctx context.Context, data []map[string]any) error
	RegisterDevice(device *model.Device) error
}

func RegisterPublisher(name string, publisher publisher) error {
	if _, ok := registeredPublishers[name]; ok {
		return errAlreadyRegistered
	}
	registeredPublishers[name] = publisher
	return nil
}

// PublishData fans the latest statuses out to every registered publisher.
// Unchanged values are skipped; a failing publisher does not block the rest.
func PublishData(ctx context.Context, deviceStatusMap map[model.Device][]model.DeviceStatus) error {
	count := 0
	data := make([]map[string]any, 0)
	for device, statuses := range deviceStatusMap {
		for _, status := range statuses {
			isTextSensor := model.TextSensors.HasSlug(status.Slug)
			if !isTextSensor && status.Value == nil {
				status.Value = func() *string {
					s := "0.00"
					return &s
				}()
			}
			if status.Value == nil {
				continue
			}
			// Some firmwares report the fullwidth degree sign.
			if status.Unit == "℃" {
				status.Unit = "°C"
			}
			val := *status.Value

			if !shouldUpdate(device.ID, status.Slug, val) {
				continue
			}
			count++
			payload := map[string]any{
				"value":               val,
				"slug":                status.Slug,
				"timestamp":           time.Now(),
				"identifier":          device.ID,
				"unit_of_measurement": status.Unit,
			}
			data = append(data, payload)
		}
	}
	for name, publisher := range registeredPublishers {
		if err := publisher.Write(ctx, data); err != nil {
			zap.L().Error("failed to publish data", zap.Error(err), zap.String("publisher", name))
			continue
		}
		zap.L().Debug("updated sensors", zap.Int("count", count), zap.String("publisher", name))
	}
	return nil
}

func RegisterDevice(device *model.Device) error {
	for name, publisher := range registeredPublishers {
		if err := publisher.RegisterDevice(device); err != nil {
			zap.L().Error("failed to register device", zap.Error(err), zap.String("publisher", name))
			continue
		}
		zap.L().Debug("registered device", zap.String("device", device.SerialNumber), zap.String("publisher", name))
	}
	return nil
}

func shouldUpdate(identifier, slug, newValue string) bool {
	key := fmt.Sprintf("%s_%s", identifier, slug)
	oldValue, exists := sensors.Load(key)
	if exists && strings.EqualFold(newValue, oldValue.(string)) {
		return false
	}
	if !exists {
		zap.L().Info("configured sensor", zap.String("device", identifier), zap.String("sensor", slug), zap.String("value", newValue))
	}
	sensors.Store(key, newValue)
	return true
}
