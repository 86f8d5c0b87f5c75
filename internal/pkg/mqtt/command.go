package mqtt

import (
	"context"
	"strconv"
	"strings"
	"time"

	paho_mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/anicoll/foxess-integration/internal/pkg/contxt"
	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

type commander interface {
	SetWorkMode(ctx context.Context, mode model.WorkMode) error
	SetMinSoc(ctx context.Context, field model.MinSocField, value int) error
}

type refresher interface {
	RequestRefresh()
}

// SubscribeCommands wires the Home Assistant command topics to the vendor
// write helpers. Each successful write requests a coordinator refresh so
// entity state converges without waiting for the next poll.
func (s *service) SubscribeCommands(device *model.Device, foxess commander, coordinator refresher) error {
	logger := zap.L()

	workModeTopic := entityTopic("select", device.ID, model.WorkModeSelect.Key) + "/set"
	token := s.client.Subscribe(workModeTopic, 1, func(_ paho_mqtt.Client, msg paho_mqtt.Message) {
		mode := model.WorkMode(strings.TrimSpace(string(msg.Payload())))
		if !mode.Valid() {
			logger.Error("invalid work mode command", zap.String("payload", string(msg.Payload())))
			return
		}
		if err := foxess.SetWorkMode(contxt.NewContext(time.Second*30), mode); err != nil {
			logger.Error("failed to set work mode", zap.Error(err))
			return
		}
		coordinator.RequestRefresh()
	})
	if ok := token.WaitTimeout(time.Second * 5); !ok {
		if err := token.Error(); err != nil {
			return err
		}
	}

	for _, d := range model.NumberDescriptions {
		field := d.Field
		topic := entityTopic("number", device.ID, d.Key) + "/set"
		token := s.client.Subscribe(topic, 1, func(_ paho_mqtt.Client, msg paho_mqtt.Message) {
			value, err := strconv.ParseFloat(strings.TrimSpace(string(msg.Payload())), 64)
			if err != nil {
				logger.Error("invalid number command", zap.String("payload", string(msg.Payload())), zap.Error(err))
				return
			}
			if err := foxess.SetMinSoc(contxt.NewContext(time.Second*30), field, int(value)); err != nil {
				logger.Error("failed to set battery floor", zap.String("field", field.String()), zap.Error(err))
				return
			}
			coordinator.RequestRefresh()
		})
		if ok := token.WaitTimeout(time.Second * 5); !ok {
			if err := token.Error(); err != nil {
				return err
			}
		}
	}
	return nil
}
