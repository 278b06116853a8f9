package sensors

import (
	"fmt"

	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/simulation"
)

// SimulatedSensor reads one channel of a simulated chamber
type SimulatedSensor struct {
	Config  configuration.SensorConfig
	Chamber *simulation.Chamber
}

func (sensor SimulatedSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor SimulatedSensor) GetValue() (float64, error) {
	switch channel := sensor.Config.Simulated.Channel; channel {
	case configuration.ChannelHumidity:
		return sensor.Chamber.Humidity(), nil
	case configuration.ChannelTemperature:
		return sensor.Chamber.Temperature(), nil
	case configuration.ChannelWetFlow:
		return sensor.Chamber.WetFlow(), nil
	case configuration.ChannelDryFlow:
		return sensor.Chamber.DryFlow(), nil
	default:
		return 0, fmt.Errorf("sensor %s: unknown simulated channel '%s'", sensor.GetId(), channel)
	}
}
