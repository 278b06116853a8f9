package sensor

import (
	"fmt"

	"github.com/humidistat/humidistat/internal"
	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/hwmon"
	"github.com/humidistat/humidistat/internal/sensors"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current value of a configured sensor",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor(sensorId)
		if err != nil {
			return err
		}

		value, err := sensor.GetValue()
		if err != nil {
			return err
		}
		fmt.Printf("%.2f\n", value)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getSensor(id string) (sensors.Sensor, error) {
	configPath := configuration.ReadConfigFile()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.Fatal("%v", err)
	}
	config := configuration.CurrentConfig

	var availableSensorIds []string
	for _, sensorConfig := range internal.AllSensorConfigs(&config.Sensors) {
		availableSensorIds = append(availableSensorIds, sensorConfig.ID)
		if sensorConfig.ID != id {
			continue
		}
		if sensorConfig.HwMon != nil {
			if err := hwmon.ResolveSensorInput(hwmon.GetChips(), sensorConfig.HwMon); err != nil {
				return nil, err
			}
		}
		return sensors.NewSensor(*sensorConfig, internal.NewChamber(config.Simulation))
	}

	return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
}
