package sensors

import (
	"fmt"

	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/util"
)

// HwmonSensor reads a temp*_input file of a hwmon device, in millidegrees
type HwmonSensor struct {
	Label  string                     `json:"label"`
	Index  int                        `json:"index"`
	Input  string                     `json:"input"`
	Max    int                        `json:"max"`
	Min    int                        `json:"min"`
	Value  float64                    `json:"value"`
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor HwmonSensor) GetId() string {
	if len(sensor.Config.ID) > 0 {
		return sensor.Config.ID
	}
	return sensor.Label
}

func (sensor HwmonSensor) GetValue() (result float64, err error) {
	if len(sensor.Input) <= 0 {
		return 0, fmt.Errorf("sensor %s: hwmon input not resolved", sensor.GetId())
	}
	integer, err := util.ReadIntFromFile(sensor.Input)
	if err != nil {
		return 0, err
	}
	return float64(integer) / 1000, nil
}
