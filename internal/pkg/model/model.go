package model

// Response is the generic FoxESS Cloud envelope. errno is zero on success.
type Response[T any] struct {
	Errno  int    `json:"errno"`
	Msg    string `json:"msg"`
	Result T      `json:"result"`
}

// ################################
// GET /op/v1/device/detail

type DeviceDetail struct {
	StationName    string        `json:"stationName"`
	DeviceSN       string        `json:"deviceSN"`
	DeviceType     string        `json:"deviceType"`
	HasBattery     bool          `json:"hasBattery"`
	HasPV          bool          `json:"hasPV"`
	MasterVersion  string        `json:"masterVersion"`
	ManagerVersion string        `json:"managerVersion"`
	SlaveVersion   string        `json:"slaveVersion"`
	BatteryList    []BatteryUnit `json:"batteryList"`
}

type BatteryUnit struct {
	BatterySN string `json:"batterySN"`
	Model     string `json:"model"`
	Version   string `json:"version"`
}

// ################################
// POST /op/v1/device/real/query

type RealTimeQueryRequest struct {
	SNs []string `json:"sns"`
}

type RealTimeResult struct {
	DeviceSN string        `json:"deviceSN"`
	Time     string        `json:"time"`
	Datas    []RawVariable `json:"datas"`
}

// RawVariable is one named measurement channel. Value is numeric for most
// channels but a string for the status channels (runningState, batStatus...).
type RawVariable struct {
	Variable string `json:"variable"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Value    any    `json:"value"`
}

// ################################
// POST /op/v2/device/scheduler/get + /op/v2/device/scheduler/enable

type SchedulerGetRequest struct {
	DeviceSN string `json:"deviceSN"`
}

type SchedulerResult struct {
	Enable int              `json:"enable"`
	Groups []SchedulerGroup `json:"groups"`
}

type SchedulerGroup struct {
	Enable       int                  `json:"enable"`
	StartHour    int                  `json:"startHour"`
	StartMinute  int                  `json:"startMinute"`
	EndHour      int                  `json:"endHour"`
	EndMinute    int                  `json:"endMinute"`
	WorkMode     WorkMode             `json:"workMode"`
	MinSoc       int                  `json:"minSoc,omitempty"`
	MinSocOnGrid int                  `json:"minSocOnGrid,omitempty"`
	FdSoc        int                  `json:"fdSoc,omitempty"`
	FdPwr        int                  `json:"fdPwr,omitempty"`
	ExtraParam   *SchedulerExtraParam `json:"extraParam,omitempty"`
}

type SchedulerExtraParam struct {
	MinSocOnGrid int `json:"minSocOnGrid"`
}

type SchedulerEnableRequest struct {
	DeviceSN  string           `json:"deviceSN"`
	Groups    []SchedulerGroup `json:"groups"`
	Enable    int              `json:"enable"`
	IsDefault bool             `json:"isDefault"`
}

// ################################

// RealTimeData is the flat snapshot mapped out of a real/query response.
// Every field defaults to zero when the vendor omits the channel.
type RealTimeData struct {
	// Main power metrics (kW).
	PvPower              float64
	BatterySoc           float64
	BatteryPower         float64 // charge minus discharge, positive = charging
	GridPower            float64
	LoadPower            float64
	FeedInPower          float64
	GridConsumptionPower float64
	GenerationPower      float64

	// PV strings.
	Pv1Volt    float64
	Pv1Current float64
	Pv1Power   float64
	Pv2Volt    float64
	Pv2Current float64
	Pv2Power   float64
	Pv3Volt    float64
	Pv3Current float64
	Pv3Power   float64
	Pv4Volt    float64
	Pv4Current float64
	Pv4Power   float64

	// EPS (emergency power supply).
	EpsPower    float64
	EpsCurrentR float64
	EpsVoltR    float64
	EpsPowerR   float64

	// Grid R-phase.
	RCurrent float64
	RVolt    float64
	RFreq    float64
	RPower   float64

	// Temperatures (°C).
	AmbientTemp  float64
	InverterTemp float64
	BatteryTemp  float64

	// Inverter battery interface.
	InvBatVolt    float64
	InvBatCurrent float64
	InvBatPower   float64

	// Battery charge/discharge and direct measurements.
	BatChargePower    float64
	BatDischargePower float64
	BatVolt           float64
	BatCurrent        float64

	MeterPower2 float64

	// Energy totals (kWh).
	GenerationTotal      float64
	ResidualEnergy       float64
	EnergyThroughput     float64
	GridConsumptionTotal float64
	LoadsTotal           float64
	FeedInTotal          float64
	ChargeEnergyTotal    float64
	DischargeEnergyTotal float64
	PvEnergyTotal        float64

	// Status channels.
	RunningState      string
	BatteryStatus     string
	BatteryStatusName string
	CurrentFault      string
	CurrentFaultCount int

	// Every variable the vendor returned, untouched.
	RawVariables map[string]any
}

// BatterySettings carries the writable battery parameters, derived from the
// scheduler group covering the current period.
type BatterySettings struct {
	MinSoc       int
	MinSocOnGrid int
}

// Snapshot is the result of one full poll cycle. It is replaced wholesale on
// every successful refresh; there is no incremental update.
type Snapshot struct {
	DeviceInfo      DeviceDetail
	RealTime        RealTimeData
	ScheduleGroups  []SchedulerGroup
	BatterySettings BatterySettings
	WorkMode        WorkMode
}
