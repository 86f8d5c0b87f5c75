package model

// Home Assistant entity metadata.
const (
	StateClassMeasurement     = "measurement"
	StateClassTotalIncreasing = "total_increasing"

	DeviceClassPower         = "power"
	DeviceClassBattery       = "battery"
	DeviceClassVoltage       = "voltage"
	DeviceClassCurrent       = "current"
	DeviceClassFrequency     = "frequency"
	DeviceClassTemperature   = "temperature"
	DeviceClassEnergy        = "energy"
	DeviceClassEnergyStorage = "energy_storage"
)

// SensorDescription describes one monitoring entity backed by the snapshot.
// Exactly one of Value/Text is set.
type SensorDescription struct {
	Key         string
	Name        string
	Unit        NumericUnit
	DeviceClass string
	StateClass  string
	Icon        string
	Value       func(rt *RealTimeData) float64
	Text        func(rt *RealTimeData) string
}

// BinarySensorDescription derives an on/off state from the whole snapshot.
// Value returns nil when the backing data is missing.
type BinarySensorDescription struct {
	Key         string
	Name        string
	DeviceClass string
	Icon        string
	Value       func(s *Snapshot) *bool
}

// NumberDescription describes a writable battery floor setting.
type NumberDescription struct {
	Key   string
	Name  string
	Field MinSocField
	Min   float64
	Max   float64
	Step  float64
	Unit  NumericUnit
	Icon  string
	Value func(s *Snapshot) float64
}

// SelectDescription describes the work mode control.
type SelectDescription struct {
	Key     string
	Name    string
	Icon    string
	Options []WorkMode
}

var SensorDescriptions = []SensorDescription{
	// Main power metrics.
	{Key: "pv_power", Name: "PV Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:solar-power", Value: func(rt *RealTimeData) float64 { return rt.PvPower }},
	{Key: "battery_soc", Name: "Battery SoC", Unit: NumericUnitPercent, DeviceClass: DeviceClassBattery, StateClass: StateClassMeasurement, Icon: "mdi:battery", Value: func(rt *RealTimeData) float64 { return rt.BatterySoc }},
	{Key: "battery_power", Name: "Battery Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:battery-charging", Value: func(rt *RealTimeData) float64 { return rt.BatteryPower }},
	{Key: "grid_power", Name: "Grid Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:transmission-tower", Value: func(rt *RealTimeData) float64 { return rt.GridPower }},
	{Key: "load_power", Name: "Load Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:home-lightning-bolt", Value: func(rt *RealTimeData) float64 { return rt.LoadPower }},
	{Key: "feed_in_power", Name: "Feed-in Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:transmission-tower-export", Value: func(rt *RealTimeData) float64 { return rt.FeedInPower }},
	{Key: "grid_consumption_power", Name: "Grid Consumption Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:transmission-tower-import", Value: func(rt *RealTimeData) float64 { return rt.GridConsumptionPower }},
	{Key: "generation_power", Name: "Generation Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:solar-power-variant", Value: func(rt *RealTimeData) float64 { return rt.GenerationPower }},
	// PV string 1.
	{Key: "pv1_volt", Name: "PV1 Voltage", Unit: NumericUnitVolt, DeviceClass: DeviceClassVoltage, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv1Volt }},
	{Key: "pv1_current", Name: "PV1 Current", Unit: NumericUnitAmp, DeviceClass: DeviceClassCurrent, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv1Current }},
	{Key: "pv1_power", Name: "PV1 Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv1Power }},
	// PV string 2.
	{Key: "pv2_volt", Name: "PV2 Voltage", Unit: NumericUnitVolt, DeviceClass: DeviceClassVoltage, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv2Volt }},
	{Key: "pv2_current", Name: "PV2 Current", Unit: NumericUnitAmp, DeviceClass: DeviceClassCurrent, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv2Current }},
	{Key: "pv2_power", Name: "PV2 Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv2Power }},
	// PV string 3.
	{Key: "pv3_volt", Name: "PV3 Voltage", Unit: NumericUnitVolt, DeviceClass: DeviceClassVoltage, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv3Volt }},
	{Key: "pv3_current", Name: "PV3 Current", Unit: NumericUnitAmp, DeviceClass: DeviceClassCurrent, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv3Current }},
	{Key: "pv3_power", Name: "PV3 Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv3Power }},
	// PV string 4.
	{Key: "pv4_volt", Name: "PV4 Voltage", Unit: NumericUnitVolt, DeviceClass: DeviceClassVoltage, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv4Volt }},
	{Key: "pv4_current", Name: "PV4 Current", Unit: NumericUnitAmp, DeviceClass: DeviceClassCurrent, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv4Current }},
	{Key: "pv4_power", Name: "PV4 Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:solar-panel", Value: func(rt *RealTimeData) float64 { return rt.Pv4Power }},
	// EPS.
	{Key: "eps_power", Name: "EPS Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:power-plug-battery", Value: func(rt *RealTimeData) float64 { return rt.EpsPower }},
	{Key: "eps_current_r", Name: "EPS R Current", Unit: NumericUnitAmp, DeviceClass: DeviceClassCurrent, StateClass: StateClassMeasurement, Icon: "mdi:power-plug-battery", Value: func(rt *RealTimeData) float64 { return rt.EpsCurrentR }},
	{Key: "eps_volt_r", Name: "EPS R Voltage", Unit: NumericUnitVolt, DeviceClass: DeviceClassVoltage, StateClass: StateClassMeasurement, Icon: "mdi:power-plug-battery", Value: func(rt *RealTimeData) float64 { return rt.EpsVoltR }},
	{Key: "eps_power_r", Name: "EPS R Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:power-plug-battery", Value: func(rt *RealTimeData) float64 { return rt.EpsPowerR }},
	// Grid R-phase.
	{Key: "r_current", Name: "Grid R Current", Unit: NumericUnitAmp, DeviceClass: DeviceClassCurrent, StateClass: StateClassMeasurement, Icon: "mdi:transmission-tower", Value: func(rt *RealTimeData) float64 { return rt.RCurrent }},
	{Key: "r_volt", Name: "Grid R Voltage", Unit: NumericUnitVolt, DeviceClass: DeviceClassVoltage, StateClass: StateClassMeasurement, Icon: "mdi:transmission-tower", Value: func(rt *RealTimeData) float64 { return rt.RVolt }},
	{Key: "r_freq", Name: "Grid Frequency", Unit: NumericUnitHertz, DeviceClass: DeviceClassFrequency, StateClass: StateClassMeasurement, Icon: "mdi:sine-wave", Value: func(rt *RealTimeData) float64 { return rt.RFreq }},
	{Key: "r_power", Name: "Grid R Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:transmission-tower", Value: func(rt *RealTimeData) float64 { return rt.RPower }},
	// Temperatures.
	{Key: "ambient_temp", Name: "Ambient Temperature", Unit: NumericUnitDegreeC, DeviceClass: DeviceClassTemperature, StateClass: StateClassMeasurement, Icon: "mdi:thermometer", Value: func(rt *RealTimeData) float64 { return rt.AmbientTemp }},
	{Key: "inverter_temp", Name: "Inverter Temperature", Unit: NumericUnitDegreeC, DeviceClass: DeviceClassTemperature, StateClass: StateClassMeasurement, Icon: "mdi:thermometer", Value: func(rt *RealTimeData) float64 { return rt.InverterTemp }},
	{Key: "battery_temp", Name: "Battery Temperature", Unit: NumericUnitDegreeC, DeviceClass: DeviceClassTemperature, StateClass: StateClassMeasurement, Icon: "mdi:thermometer", Value: func(rt *RealTimeData) float64 { return rt.BatteryTemp }},
	// Inverter battery interface.
	{Key: "inv_bat_volt", Name: "Inverter Battery Voltage", Unit: NumericUnitVolt, DeviceClass: DeviceClassVoltage, StateClass: StateClassMeasurement, Icon: "mdi:battery", Value: func(rt *RealTimeData) float64 { return rt.InvBatVolt }},
	{Key: "inv_bat_current", Name: "Inverter Battery Current", Unit: NumericUnitAmp, DeviceClass: DeviceClassCurrent, StateClass: StateClassMeasurement, Icon: "mdi:battery", Value: func(rt *RealTimeData) float64 { return rt.InvBatCurrent }},
	{Key: "inv_bat_power", Name: "Inverter Battery Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:battery", Value: func(rt *RealTimeData) float64 { return rt.InvBatPower }},
	// Battery charge/discharge.
	{Key: "bat_charge_power", Name: "Battery Charge Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:battery-charging", Value: func(rt *RealTimeData) float64 { return rt.BatChargePower }},
	{Key: "bat_discharge_power", Name: "Battery Discharge Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:battery-arrow-down", Value: func(rt *RealTimeData) float64 { return rt.BatDischargePower }},
	// Battery direct measurements.
	{Key: "bat_volt", Name: "Battery Voltage", Unit: NumericUnitVolt, DeviceClass: DeviceClassVoltage, StateClass: StateClassMeasurement, Icon: "mdi:battery", Value: func(rt *RealTimeData) float64 { return rt.BatVolt }},
	{Key: "bat_current", Name: "Battery Current", Unit: NumericUnitAmp, DeviceClass: DeviceClassCurrent, StateClass: StateClassMeasurement, Icon: "mdi:battery", Value: func(rt *RealTimeData) float64 { return rt.BatCurrent }},
	// Meter power.
	{Key: "meter_power_2", Name: "Meter 2 Power", Unit: NumericUnitKiloWatt, DeviceClass: DeviceClassPower, StateClass: StateClassMeasurement, Icon: "mdi:meter-electric", Value: func(rt *RealTimeData) float64 { return rt.MeterPower2 }},
	// Energy totals.
	{Key: "generation_total", Name: "Total Generation", Unit: NumericUnitKiloWattHour, DeviceClass: DeviceClassEnergy, StateClass: StateClassTotalIncreasing, Icon: "mdi:solar-power-variant", Value: func(rt *RealTimeData) float64 { return rt.GenerationTotal }},
	{Key: "residual_energy", Name: "Battery Residual Energy", Unit: NumericUnitKiloWattHour, DeviceClass: DeviceClassEnergyStorage, StateClass: StateClassMeasurement, Icon: "mdi:battery", Value: func(rt *RealTimeData) float64 { return rt.ResidualEnergy }},
	{Key: "energy_throughput", Name: "Battery Throughput", Unit: NumericUnitKiloWattHour, DeviceClass: DeviceClassEnergy, StateClass: StateClassTotalIncreasing, Icon: "mdi:battery-sync", Value: func(rt *RealTimeData) float64 { return rt.EnergyThroughput }},
	{Key: "grid_consumption_total", Name: "Total Grid Consumption", Unit: NumericUnitKiloWattHour, DeviceClass: DeviceClassEnergy, StateClass: StateClassTotalIncreasing, Icon: "mdi:transmission-tower-import", Value: func(rt *RealTimeData) float64 { return rt.GridConsumptionTotal }},
	{Key: "loads_total", Name: "Total Load Consumption", Unit: NumericUnitKiloWattHour, DeviceClass: DeviceClassEnergy, StateClass: StateClassTotalIncreasing, Icon: "mdi:home-lightning-bolt", Value: func(rt *RealTimeData) float64 { return rt.LoadsTotal }},
	{Key: "feed_in_total", Name: "Total Feed-in", Unit: NumericUnitKiloWattHour, DeviceClass: DeviceClassEnergy, StateClass: StateClassTotalIncreasing, Icon: "mdi:transmission-tower-export", Value: func(rt *RealTimeData) float64 { return rt.FeedInTotal }},
	{Key: "charge_energy_total", Name: "Total Charge Energy", Unit: NumericUnitKiloWattHour, DeviceClass: DeviceClassEnergy, StateClass: StateClassTotalIncreasing, Icon: "mdi:battery-charging", Value: func(rt *RealTimeData) float64 { return rt.ChargeEnergyTotal }},
	{Key: "discharge_energy_total", Name: "Total Discharge Energy", Unit: NumericUnitKiloWattHour, DeviceClass: DeviceClassEnergy, StateClass: StateClassTotalIncreasing, Icon: "mdi:battery-arrow-down", Value: func(rt *RealTimeData) float64 { return rt.DischargeEnergyTotal }},
	{Key: "pv_energy_total", Name: "Total PV Energy", Unit: NumericUnitKiloWattHour, DeviceClass: DeviceClassEnergy, StateClass: StateClassTotalIncreasing, Icon: "mdi:solar-power", Value: func(rt *RealTimeData) float64 { return rt.PvEnergyTotal }},
	// Status channels.
	{Key: "running_state", Name: "Running State", Icon: "mdi:state-machine", Text: func(rt *RealTimeData) string { return rt.RunningState }},
	{Key: "battery_status", Name: "Battery Status Code", Icon: "mdi:battery-check", Text: func(rt *RealTimeData) string { return rt.BatteryStatus }},
	{Key: "battery_status_name", Name: "Battery Status", Icon: "mdi:battery-check", Text: func(rt *RealTimeData) string { return rt.BatteryStatusName }},
	{Key: "current_fault", Name: "Current Fault", Icon: "mdi:alert-circle", Text: func(rt *RealTimeData) string { return rt.CurrentFault }},
	{Key: "current_fault_count", Name: "Fault Count", StateClass: StateClassMeasurement, Icon: "mdi:alert-circle", Value: func(rt *RealTimeData) float64 { return float64(rt.CurrentFaultCount) }},
}

func boolPtr(b bool) *bool {
	return &b
}

var BinarySensorDescriptions = []BinarySensorDescription{
	{Key: "has_battery", Name: "Has Battery", DeviceClass: "plug", Icon: "mdi:battery", Value: func(s *Snapshot) *bool {
		return boolPtr(s.DeviceInfo.HasBattery)
	}},
	{Key: "battery_charging", Name: "Battery Charging", DeviceClass: "battery_charging", Icon: "mdi:battery-charging", Value: func(s *Snapshot) *bool {
		return boolPtr(s.RealTime.BatteryPower > 0)
	}},
	{Key: "battery_discharging", Name: "Battery Discharging", Icon: "mdi:battery-arrow-down", Value: func(s *Snapshot) *bool {
		return boolPtr(s.RealTime.BatteryPower < 0)
	}},
	{Key: "grid_exporting", Name: "Grid Exporting", Icon: "mdi:transmission-tower-export", Value: func(s *Snapshot) *bool {
		return boolPtr(s.RealTime.FeedInPower > 0)
	}},
}

// Battery floor controls, only registered when the device reports a battery.
var NumberDescriptions = []NumberDescription{
	{Key: "min_soc", Name: "Min SoC", Field: MinSocFieldBattery, Min: 10, Max: 100, Step: 1, Unit: NumericUnitPercent, Icon: "mdi:battery-low", Value: func(s *Snapshot) float64 {
		return float64(s.BatterySettings.MinSoc)
	}},
	{Key: "min_soc_on_grid", Name: "Min SoC On Grid", Field: MinSocFieldOnGrid, Min: 10, Max: 100, Step: 1, Unit: NumericUnitPercent, Icon: "mdi:battery-charging-low", Value: func(s *Snapshot) float64 {
		return float64(s.BatterySettings.MinSocOnGrid)
	}},
}

var WorkModeSelect = SelectDescription{
	Key:     "work_mode",
	Name:    "Work Mode",
	Icon:    "mdi:cog",
	Options: WorkModes,
}
