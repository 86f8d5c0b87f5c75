package foxess

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

// GetRealTimeData fetches the live measurement set. The vendor returns one
// entry per requested serial; only the first is used.
func (s *service) GetRealTimeData(ctx context.Context) (*model.RealTimeData, error) {
	results := []model.RealTimeResult{}
	err := s.request(ctx, http.MethodPost, "/op/v1/device/real/query",
		model.RealTimeQueryRequest{SNs: []string{s.cfg.DeviceSN}}, &results, false)
	if err != nil {
		return nil, err
	}

	variables := map[string]any{}
	if len(results) > 0 {
		for _, v := range results[0].Datas {
			variables[v.Variable] = v.Value
		}
	}
	return mapRealTime(variables), nil
}

// mapRealTime converts the raw variable map into the flat snapshot struct.
// Missing or malformed channels fall back to zero values.
func mapRealTime(variables map[string]any) *model.RealTimeData {
	f := func(key string) float64 {
		switch v := variables[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0
			}
			return parsed
		default:
			return 0
		}
	}
	i := func(key string) int {
		return int(f(key))
	}
	str := func(key string) string {
		switch v := variables[key].(type) {
		case nil:
			return ""
		case string:
			return v
		default:
			return fmt.Sprintf("%v", v)
		}
	}

	return &model.RealTimeData{
		PvPower:              f("pvPower"),
		BatterySoc:           f("SoC"),
		BatteryPower:         f("batChargePower") - f("batDischargePower"),
		GridPower:            f("meterPower"),
		LoadPower:            f("loadsPower"),
		FeedInPower:          f("feedinPower"),
		GridConsumptionPower: f("gridConsumptionPower"),
		GenerationPower:      f("generationPower"),

		Pv1Volt:    f("pv1Volt"),
		Pv1Current: f("pv1Current"),
		Pv1Power:   f("pv1Power"),
		Pv2Volt:    f("pv2Volt"),
		Pv2Current: f("pv2Current"),
		Pv2Power:   f("pv2Power"),
		Pv3Volt:    f("pv3Volt"),
		Pv3Current: f("pv3Current"),
		Pv3Power:   f("pv3Power"),
		Pv4Volt:    f("pv4Volt"),
		Pv4Current: f("pv4Current"),
		Pv4Power:   f("pv4Power"),

		EpsPower:    f("epsPower"),
		EpsCurrentR: f("epsCurrentR"),
		EpsVoltR:    f("epsVoltR"),
		EpsPowerR:   f("epsPowerR"),

		RCurrent: f("RCurrent"),
		RVolt:    f("RVolt"),
		RFreq:    f("RFreq"),
		RPower:   f("RPower"),

		AmbientTemp:  f("ambientTemperation"),
		InverterTemp: f("invTemperation"),
		BatteryTemp:  f("batTemperature"),

		InvBatVolt:    f("invBatVolt"),
		InvBatCurrent: f("invBatCurrent"),
		InvBatPower:   f("invBatPower"),

		BatChargePower:    f("batChargePower"),
		BatDischargePower: f("batDischargePower"),
		BatVolt:           f("batVolt"),
		BatCurrent:        f("batCurrent"),

		MeterPower2: f("meterPower2"),

		GenerationTotal: f("generation"),
		// Reported in 0.01kWh units by some firmwares; passed through as-is
		// to match the vendor dashboards.
		ResidualEnergy:       f("ResidualEnergy"),
		EnergyThroughput:     f("energyThroughput"),
		GridConsumptionTotal: f("gridConsumption"),
		LoadsTotal:           f("loads"),
		FeedInTotal:          f("feedin"),
		ChargeEnergyTotal:    f("chargeEnergyToTal"),
		DischargeEnergyTotal: f("dischargeEnergyToTal"),
		PvEnergyTotal:        f("PVEnergyTotal"),

		RunningState:      str("runningState"),
		BatteryStatus:     str("batStatus"),
		BatteryStatusName: str("batStatusV2"),
		CurrentFault:      str("currentFault"),
		CurrentFaultCount: i("currentFaultCount"),

		RawVariables: variables,
	}
}
