package foxess

import (
	"context"
	"net/http"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

// GetDeviceDetail fetches the device identity record.
func (s *service) GetDeviceDetail(ctx context.Context) (model.DeviceDetail, error) {
	detail := model.DeviceDetail{DeviceSN: s.cfg.DeviceSN}
	err := s.request(ctx, http.MethodGet, "/op/v1/device/detail?sn="+s.cfg.DeviceSN, nil, &detail, false)
	if err != nil {
		return model.DeviceDetail{}, err
	}
	if detail.DeviceSN == "" {
		detail.DeviceSN = s.cfg.DeviceSN
	}
	return detail, nil
}
