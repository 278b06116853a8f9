package sensors

import (
	"fmt"

	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/simulation"
)

// Sensor is a single measurement channel
type Sensor interface {
	GetId() string

	// GetValue returns the current value of this sensor
	GetValue() (float64, error)
}

// NewSensor creates the sensor described by the given configuration.
// chamber is only required for simulated sensors.
func NewSensor(config configuration.SensorConfig, chamber *simulation.Chamber) (Sensor, error) {
	if config.HwMon != nil {
		return &HwmonSensor{
			Index:  config.HwMon.Index,
			Input:  config.HwMon.TempInput,
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	if config.Simulated != nil {
		if chamber == nil {
			return nil, fmt.Errorf("sensor %s: simulated sensor without simulation", config.ID)
		}
		return &SimulatedSensor{
			Config:  config,
			Chamber: chamber,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

// scaled divides value by scale, a zero scale leaves the value untouched
func scaled(value float64, scale float64) float64 {
	if scale == 0 {
		return value
	}
	return value / scale
}
