package hwmon

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/sensors"
	"github.com/humidistat/humidistat/internal/util"
	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

type HwMonController struct {
	Name     string
	Platform string
	Path     string

	Sensors []*sensors.HwmonSensor
}

// GetChips lists all hwmon devices providing at least one temperature input
func GetChips() []*HwMonController {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*HwMonController

	for i := 0; i < len(chips); i++ {
		chip := chips[i]

		identifier := computeIdentifier(chip)
		platform := findPlatform(chip.Path)
		if len(platform) <= 0 {
			platform = identifier
		}

		sensorsList := GetTempSensors(chip)
		if len(sensorsList) <= 0 {
			continue
		}

		list = append(list, &HwMonController{
			Name:     identifier,
			Platform: platform,
			Path:     chip.Path,
			Sensors:  sensorsList,
		})
	}

	return list
}

func GetTempSensors(chip gosensors.Chip) []*sensors.HwmonSensor {
	var sensorList []*sensors.HwmonSensor

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]

		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		subfeatures := feature.GetSubFeatures()

		inputSubFeature, ok := getSubFeature(subfeatures, gosensors.SubFeatureTypeTempInput)
		if !ok {
			continue
		}
		sensorInputPath := fmt.Sprintf("%s/%s", chip.Path, inputSubFeature.Name)

		max := -1
		if maxSubFeature, ok := getSubFeature(subfeatures, gosensors.SubFeatureTypeTempMax); ok {
			max = int(maxSubFeature.GetValue())
		}

		min := -1
		if minSubFeature, ok := getSubFeature(subfeatures, gosensors.SubFeatureTypeTempMin); ok {
			min = int(minSubFeature.GetValue())
		}

		sensorList = append(
			sensorList,
			&sensors.HwmonSensor{
				Label: util.GetLabel(chip.Path, inputSubFeature.Name),
				Index: len(sensorList) + 1,
				Input: sensorInputPath,
				Max:   max,
				Min:   min,
				Value: inputSubFeature.GetValue(),
			})
	}

	return sensorList
}

// ResolveSensorInput fills in the temp input path of the given hwmon sensor configuration
func ResolveSensorInput(controllers []*HwMonController, config *configuration.HwMonSensorConfig) error {
	for _, c := range controllers {
		matched, err := regexp.MatchString("(?i)"+config.Platform, c.Platform)
		if err != nil {
			return fmt.Errorf("failed to match platform regex %s against controller platform %s: %w", config.Platform, c.Platform, err)
		}
		if !matched {
			continue
		}
		index := config.Index - 1
		if index < 0 || index >= len(c.Sensors) {
			return fmt.Errorf("hwmon device %s has no temperature input with index %d", c.Platform, config.Index)
		}
		config.TempInput = c.Sensors[index].Input
		return nil
	}
	return fmt.Errorf("couldn't find hwmon device with platform '%s'", config.Platform)
}

func getSubFeature(subfeatures []gosensors.SubFeature, input gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, a := range subfeatures {
		if a.Type == input {
			return a, true
		}
	}
	return gosensors.SubFeature{}, false
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name = util.GetDeviceName(devicePath)
	}

	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}

func findPlatform(devicePath string) string {
	platformRegex := regexp.MustCompile(".*/platform/{}/.*")
	return platformRegex.FindString(devicePath)
}
