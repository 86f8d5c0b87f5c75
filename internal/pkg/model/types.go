package model

// WorkMode is the inverter energy management mode. Changing it goes through
// the scheduler endpoint; the vendor rejects unknown values.
type WorkMode string

func (wm WorkMode) String() string {
	return string(wm)
}

const (
	WorkModeSelfUse        WorkMode = "SelfUse"
	WorkModeForceCharge    WorkMode = "ForceCharge"
	WorkModeForceDischarge WorkMode = "ForceDischarge"
	WorkModeBackup         WorkMode = "Backup"
	WorkModeFeedInFirst    WorkMode = "FeedInFirst"
)

var WorkModes = []WorkMode{
	WorkModeSelfUse,
	WorkModeForceCharge,
	WorkModeForceDischarge,
	WorkModeBackup,
	WorkModeFeedInFirst,
}

func (wm WorkMode) Valid() bool {
	for _, m := range WorkModes {
		if m == wm {
			return true
		}
	}
	return false
}

// MinSocField selects which of the two battery floor settings a write targets.
type MinSocField string

func (f MinSocField) String() string {
	return string(f)
}

const (
	MinSocFieldBattery MinSocField = "minSoc"
	MinSocFieldOnGrid  MinSocField = "minSocOnGrid"
)

func (f MinSocField) Valid() bool {
	return f == MinSocFieldBattery || f == MinSocFieldOnGrid
}

type NumericUnit string

const (
	NumericUnitAmp          NumericUnit = "A"
	NumericUnitPercent      NumericUnit = "%"
	NumericUnitKiloWatt     NumericUnit = "kW"
	NumericUnitWatt         NumericUnit = "W"
	NumericUnitKiloWattHour NumericUnit = "kWh"
	NumericUnitDegreeC      NumericUnit = "°C"
	NumericUnitVolt         NumericUnit = "V"
	NumericUnitHertz        NumericUnit = "Hz"
	NumericUnitNone         NumericUnit = ""
)

type (
	TextSensor  string
	TextSensorz []TextSensor
)

const (
	RunningStateTextSensor      TextSensor = "running_state"
	BatteryStatusTextSensor     TextSensor = "battery_status"
	BatteryStatusNameTextSensor TextSensor = "battery_status_name"
	CurrentFaultTextSensor      TextSensor = "current_fault"
)

func (t TextSensor) String() string {
	return string(t)
}

func (ts TextSensorz) HasSlug(slug string) bool {
	for _, t := range ts {
		if t.String() == slug {
			return true
		}
	}
	return false
}

var TextSensors TextSensorz = TextSensorz{
	RunningStateTextSensor,
	BatteryStatusTextSensor,
	BatteryStatusNameTextSensor,
	CurrentFaultTextSensor,
}
