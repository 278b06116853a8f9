package configuration

import "time"

type SensorsConfig struct {
	// Humidity provides the relative humidity in percent
	Humidity SensorConfig `json:"humidity"`
	// Temperature provides the temperature reported next to the humidity, optional
	Temperature *SensorConfig `json:"temperature,omitempty"`
	// Thermistors are auxiliary temperature channels, at most MaxThermistors
	Thermistors []SensorConfig `json:"thermistors,omitempty"`
	// WetFlow and DryFlow provide flow in percent of full scale, required in cascade mode
	WetFlow *SensorConfig `json:"wetFlow,omitempty"`
	DryFlow *SensorConfig `json:"dryFlow,omitempty"`
}

const MaxThermistors = 4

type SensorConfig struct {
	ID        string                 `json:"id"`
	HwMon     *HwMonSensorConfig     `json:"hwMon,omitempty"`
	File      *FileSensorConfig      `json:"file,omitempty"`
	Cmd       *CmdSensorConfig       `json:"cmd,omitempty"`
	Simulated *SimulatedSensorConfig `json:"simulated,omitempty"`
}

type HwMonSensorConfig struct {
	Platform  string `json:"platform"`
	Index     int    `json:"index"`
	TempInput string `json:"tempInput"`
}

type FileSensorConfig struct {
	Path string `json:"path"`
	// Scale divides the raw file value, e.g. 1000 for millidegrees
	Scale float64 `json:"scale,omitempty"`
}

type CmdSensorConfig struct {
	Exec  string   `json:"exec"`
	Args  []string `json:"args"`
	Scale float64  `json:"scale,omitempty"`
}

const (
	ChannelHumidity    = "humidity"
	ChannelTemperature = "temperature"
	ChannelWetFlow     = "wetFlow"
	ChannelDryFlow     = "dryFlow"
)

type SimulatedSensorConfig struct {
	// Channel is one of: humidity | temperature | wetFlow | dryFlow
	Channel string `json:"channel"`
}

// SimulationConfig describes the simulated chamber used by simulated sensors and valves
type SimulationConfig struct {
	AmbientHumidity float64 `json:"ambientHumidity"`
	SourceHumidity  float64 `json:"sourceHumidity"`
	Temperature     float64 `json:"temperature"`
	// TimeConstant of the chamber humidity at full flow
	TimeConstant time.Duration `json:"timeConstant"`
	// FlowFullScale is the valve value that corresponds to 100% flow
	FlowFullScale int `json:"flowFullScale"`
}
