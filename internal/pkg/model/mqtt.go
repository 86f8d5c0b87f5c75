package model

type RegisterDevice struct {
	Name         string   `json:"name"`
	Identifiers  []string `json:"identifiers"`
	Model        string   `json:"model"`
	Manufacturer string   `json:"manufacturer"`
	SwVersion    string   `json:"sw_version,omitempty"`
}

// RegisterMessage is a Home Assistant MQTT discovery config payload, one per
// entity. Command fields are only set for the writable entities.
type RegisterMessage struct {
	Tilda             string         `json:"~"`
	Name              string         `json:"name"`
	ID                string         `json:"unique_id"`
	StateTopic        string         `json:"state_topic"`
	CommandTopic      string         `json:"command_topic,omitempty"`
	AvailabilityTopic string         `json:"availability_topic,omitempty"`
	ValueTemplate     string         `json:"value_template,omitempty"`
	UnitOfMeasurement string         `json:"unit_of_measurement,omitempty"`
	DeviceClass       string         `json:"device_class,omitempty"`
	StateClass        string         `json:"state_class,omitempty"`
	Icon              string         `json:"icon,omitempty"`
	Options           []string       `json:"options,omitempty"`
	Min               *float64       `json:"min,omitempty"`
	Max               *float64       `json:"max,omitempty"`
	Step              *float64       `json:"step,omitempty"`
	Mode              string         `json:"mode,omitempty"`
	Device            RegisterDevice `json:"device"`
}

type Device struct {
	ID           string
	Model        string
	SerialNumber string
	Name         string
	SwVersion    string
	HasBattery   bool
}

type DeviceStatus struct {
	Name  string  `json:"name"`
	Slug  string  `json:"slug"`
	Value *string `json:"value"`
	Unit  string  `json:"unit"`
	Dirty bool    `json:"dirty"`
}
