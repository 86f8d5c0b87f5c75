package coordinator

import (
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

// DeviceFromSnapshot builds the publish identity for the polled inverter.
// The identifier is a slug of station name + serial, stable across polls.
func DeviceFromSnapshot(s *model.Snapshot) *model.Device {
	name := s.DeviceInfo.StationName
	if name == "" {
		name = "FoxESS " + s.DeviceInfo.DeviceSN
	}
	identifier := strings.ReplaceAll(slug.Make(name+" "+s.DeviceInfo.DeviceSN), "-", "_")
	return &model.Device{
		ID:           identifier,
		Model:        s.DeviceInfo.DeviceType,
		SerialNumber: s.DeviceInfo.DeviceSN,
		Name:         name,
		SwVersion:    s.DeviceInfo.MasterVersion,
		HasBattery:   s.DeviceInfo.HasBattery,
	}
}

// StatusesFromSnapshot flattens a snapshot into one status per entity:
// every sensor description, the binary sensors, and (battery devices only)
// the current values of the writable controls.
func StatusesFromSnapshot(s *model.Snapshot) []model.DeviceStatus {
	datapoints := make([]model.DeviceStatus, 0, len(model.SensorDescriptions)+8)

	for _, d := range model.SensorDescriptions {
		dataPoint := model.DeviceStatus{
			Name:  d.Name,
			Slug:  d.Key,
			Unit:  string(d.Unit),
			Dirty: true,
		}
		if d.Text != nil {
			v := d.Text(&s.RealTime)
			dataPoint.Value = &v
		} else {
			v := formatFloat(d.Value(&s.RealTime))
			dataPoint.Value = &v
		}
		datapoints = append(datapoints, dataPoint)
	}

	for _, d := range model.BinarySensorDescriptions {
		dataPoint := model.DeviceStatus{
			Name:  d.Name,
			Slug:  d.Key,
			Dirty: true,
		}
		if on := d.Value(s); on != nil {
			v := "OFF"
			if *on {
				v = "ON"
			}
			dataPoint.Value = &v
		}
		datapoints = append(datapoints, dataPoint)
	}

	if s.DeviceInfo.HasBattery {
		for _, d := range model.NumberDescriptions {
			v := formatFloat(d.Value(s))
			datapoints = append(datapoints, model.DeviceStatus{
				Name:  d.Name,
				Slug:  d.Key,
				Value: &v,
				Unit:  string(d.Unit),
				Dirty: true,
			})
		}
		mode := s.WorkMode.String()
		datapoints = append(datapoints, model.DeviceStatus{
			Name:  model.WorkModeSelect.Name,
			Slug:  model.WorkModeSelect.Key,
			Value: &mode,
			Dirty: true,
		})
	}

	return datapoints
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
