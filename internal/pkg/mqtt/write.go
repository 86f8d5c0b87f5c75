package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

// platformFor maps an entity slug onto its Home Assistant platform, so state
// topics land where the discovery configs pointed.
func platformFor(slug string) string {
	for _, d := range model.BinarySensorDescriptions {
		if d.Key == slug {
			return "binary_sensor"
		}
	}
	for _, d := range model.NumberDescriptions {
		if d.Key == slug {
			return "number"
		}
	}
	if slug == model.WorkModeSelect.Key {
		return "select"
	}
	return "sensor"
}

func entityTopic(platform, identifier, slug string) string {
	return fmt.Sprintf("%s/%s/%s/%s", discoveryPrefix, platform, identifier, slug)
}

func (s *service) Write(ctx context.Context, data []map[string]any) error {
	for _, d := range data {
		if err := s.PublishData(d); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDevice publishes one retained discovery config per entity. Battery
// controls are skipped for battery-less devices.
func (s *service) RegisterDevice(device *model.Device) error {
	if _, exists := s.configuredDevices[device.ID]; exists {
		return nil
	}

	for _, d := range model.SensorDescriptions {
		msg := registerMsg(device, "sensor", d.Key, d.Name)
		msg.UnitOfMeasurement = string(d.Unit)
		msg.DeviceClass = d.DeviceClass
		msg.StateClass = d.StateClass
		msg.Icon = d.Icon
		if err := s.publishConfig("sensor", device.ID, d.Key, msg); err != nil {
			return err
		}
	}

	for _, d := range model.BinarySensorDescriptions {
		msg := registerMsg(device, "binary_sensor", d.Key, d.Name)
		msg.DeviceClass = d.DeviceClass
		msg.Icon = d.Icon
		if err := s.publishConfig("binary_sensor", device.ID, d.Key, msg); err != nil {
			return err
		}
	}

	if device.HasBattery {
		for _, d := range model.NumberDescriptions {
			d := d
			msg := registerMsg(device, "number", d.Key, d.Name)
			msg.UnitOfMeasurement = string(d.Unit)
			msg.Icon = d.Icon
			msg.CommandTopic = "~/set"
			msg.Min = &d.Min
			msg.Max = &d.Max
			msg.Step = &d.Step
			msg.Mode = "slider"
			if err := s.publishConfig("number", device.ID, d.Key, msg); err != nil {
				return err
			}
		}

		sel := registerMsg(device, "select", model.WorkModeSelect.Key, model.WorkModeSelect.Name)
		sel.Icon = model.WorkModeSelect.Icon
		sel.CommandTopic = "~/set"
		sel.Options = make([]string, 0, len(model.WorkModeSelect.Options))
		for _, o := range model.WorkModeSelect.Options {
			sel.Options = append(sel.Options, o.String())
		}
		if err := s.publishConfig("select", device.ID, model.WorkModeSelect.Key, sel); err != nil {
			return err
		}
	}

	s.configuredDevices[device.ID] = struct{}{}
	return nil
}

func (s *service) publishConfig(platform, identifier, slug string, msg model.RegisterMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	topic := entityTopic(platform, identifier, slug) + "/config"
	token := s.client.Publish(topic, 1, true, payload)
	if res := token.WaitTimeout(time.Second * 5); !res {
		if err := token.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) PublishData(data map[string]any) error {
	slug := data["slug"].(string)
	topic := entityTopic(platformFor(slug), data["identifier"].(string), slug) + "/state"

	payload := map[string]string{
		"value": data["value"].(string),
	}
	if unit, ok := data["unit_of_measurement"].(string); ok && unit != "" {
		payload["unit_of_measurement"] = unit
	}

	publishData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	token := s.client.Publish(topic, 0, false, publishData)
	res := token.WaitTimeout(time.Second * 10)
	if res {
		return nil
	}
	if err := token.Error(); err != nil {
		return err
	}
	return nil
}

func registerMsg(device *model.Device, platform, slug, name string) model.RegisterMessage {
	return model.RegisterMessage{
		Tilda:         entityTopic(platform, device.ID, slug),
		Name:          name,
		ID:            strings.ToLower(fmt.Sprintf("%s_%s", device.ID, slug)),
		StateTopic:    "~/state",
		ValueTemplate: "{{ value_json.value }}",
		Device: model.RegisterDevice{
			Name:         device.Name,
			Identifiers:  []string{device.ID},
			Model:        device.Model,
			Manufacturer: "FoxESS",
			SwVersion:    device.SwVersion,
		},
	}
}
