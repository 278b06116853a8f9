package sensors

import (
	"fmt"

	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/util"
)

type FileSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor FileSensor) GetValue() (float64, error) {
	filePath, err := util.ExpandHomeDir(sensor.Config.File.Path)
	if err != nil {
		return 0, err
	}

	value, err := util.ReadFloatFromFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	return scaled(value, sensor.Config.File.Scale), nil
}
