package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/humidistat/humidistat/internal/ui"
	"github.com/humidistat/humidistat/internal/util"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if err := validateMode(config); err != nil {
		return err
	}
	if err := validateUi(config); err != nil {
		return err
	}
	if err := validateSensors(config); err != nil {
		return err
	}
	if err := validateValves(config); err != nil {
		return err
	}
	if err := validateInput(config); err != nil {
		return err
	}
	if err := validateTelemetry(config); err != nil {
		return err
	}

	if containsCmdConfig(config) && path != "" {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %w", path, err)
		}
	}

	return nil
}

func validateMode(config *Configuration) error {
	_, err := ParseControllerMode(string(config.Mode))
	if err != nil {
		return err
	}
	if config.Mode.IsCascade() {
		if config.Sensors.WetFlow == nil || config.Sensors.DryFlow == nil {
			return errors.New("cascade mode requires both a wetFlow and a dryFlow sensor")
		}
	} else if config.Sensors.WetFlow != nil || config.Sensors.DryFlow != nil {
		ui.Warning("Flow sensors are only used in cascade mode")
	}
	return nil
}

func validateUi(config *Configuration) error {
	uiConfig := config.Ui
	if uiConfig.InputInterval <= 0 {
		return errors.New("ui: inputInterval must be > 0")
	}
	if uiConfig.RefreshInterval <= 0 {
		return errors.New("ui: refreshInterval must be > 0")
	}
	if uiConfig.BlinkInterval <= 0 {
		return errors.New("ui: blinkInterval must be > 0")
	}
	if uiConfig.LongPressDuration < uiConfig.ShortPressDuration {
		return errors.New("ui: longPressDuration must not be shorter than shortPressDuration")
	}
	if uiConfig.ShortPressMultiplier < 1 || uiConfig.LongPressMultiplier < 1 {
		return errors.New("ui: press multipliers must be >= 1")
	}
	if uiConfig.SaveCooldown < 0 {
		return errors.New("ui: saveCooldown must be >= 0")
	}
	if config.Scheduler.TurnInterval < 0 {
		return errors.New("scheduler: turnInterval must be >= 0")
	}
	return nil
}

func validateSensors(config *Configuration) error {
	all := []SensorConfig{config.Sensors.Humidity}
	if config.Sensors.Temperature != nil {
		all = append(all, *config.Sensors.Temperature)
	}
	if len(config.Sensors.Thermistors) > MaxThermistors {
		return fmt.Errorf("at most %d thermistors are supported, got %d", MaxThermistors, len(config.Sensors.Thermistors))
	}
	all = append(all, config.Sensors.Thermistors...)
	if config.Sensors.WetFlow != nil {
		all = append(all, *config.Sensors.WetFlow)
	}
	if config.Sensors.DryFlow != nil {
		all = append(all, *config.Sensors.DryFlow)
	}

	var ids []string
	for _, sensorConfig := range all {
		if sensorConfig.ID != "" {
			if slices.Contains(ids, sensorConfig.ID) {
				return fmt.Errorf("duplicate sensor id detected: %s", sensorConfig.ID)
			}
			ids = append(ids, sensorConfig.ID)
		}
		if err := validateSensor(sensorConfig); err != nil {
			return err
		}
	}
	return nil
}

func validateSensor(sensorConfig SensorConfig) error {
	subConfigs := 0
	if sensorConfig.HwMon != nil {
		subConfigs++
	}
	if sensorConfig.File != nil {
		subConfigs++
	}
	if sensorConfig.Cmd != nil {
		subConfigs++
	}
	if sensorConfig.Simulated != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
	}
	if subConfigs <= 0 {
		return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: hwmon | file | cmd | simulated", sensorConfig.ID)
	}

	if sensorConfig.HwMon != nil && sensorConfig.HwMon.Index <= 0 {
		return fmt.Errorf("sensor %s: invalid index, must be >= 1", sensorConfig.ID)
	}
	if sensorConfig.File != nil && len(sensorConfig.File.Path) <= 0 {
		return fmt.Errorf("sensor %s: no file path provided", sensorConfig.ID)
	}
	if sensorConfig.Cmd != nil && len(sensorConfig.Cmd.Exec) <= 0 {
		return fmt.Errorf("sensor %s: executable is missing", sensorConfig.ID)
	}
	if sensorConfig.Simulated != nil {
		supportedChannels := []string{ChannelHumidity, ChannelTemperature, ChannelWetFlow, ChannelDryFlow}
		if !slices.Contains(supportedChannels, sensorConfig.Simulated.Channel) {
			return fmt.Errorf("sensor %s: unsupported simulated channel '%s', use one of: %s", sensorConfig.ID, sensorConfig.Simulated.Channel, strings.Join(supportedChannels, " | "))
		}
	}
	return nil
}

func validateValves(config *Configuration) error {
	for name, valveConfig := range map[string]ValveConfig{"humid": config.Valves.Humid, "dry": config.Valves.Dry} {
		subConfigs := 0
		if valveConfig.File != nil {
			subConfigs++
			if len(valveConfig.File.Path) <= 0 {
				return fmt.Errorf("valve %s: no file path provided", name)
			}
		}
		if valveConfig.Cmd != nil {
			subConfigs++
			if len(valveConfig.Cmd.Exec) <= 0 {
				return fmt.Errorf("valve %s: executable is missing", name)
			}
		}
		if valveConfig.Simulated != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("valve %s: only one valve type can be used per valve definition block", name)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("valve %s: sub-configuration for valve is missing, use one of: file | cmd | simulated", name)
		}
	}
	return nil
}

func validateInput(config *Configuration) error {
	if config.Input.Type == InputScript && len(config.Input.Script) == 0 {
		return errors.New("input: script input requires a non-empty script")
	}
	supportedButtons := []string{"none", "up", "down", "left", "right", "select"}
	for _, entry := range config.Input.Script {
		if !slices.Contains(supportedButtons, strings.ToLower(strings.TrimSpace(entry))) {
			return fmt.Errorf("input: unknown button '%s' in script, use one of: %s", entry, strings.Join(supportedButtons, " | "))
		}
	}
	return nil
}

func validateTelemetry(config *Configuration) error {
	telemetry := config.Telemetry
	if !telemetry.Enabled {
		return nil
	}
	if len(telemetry.Output) <= 0 {
		return errors.New("telemetry: output is missing, use '-' for stdout")
	}
	if telemetry.Output == "-" && config.Display.Enabled {
		return errors.New("telemetry: stdout is used by the display, use a file or serial port")
	}
	if telemetry.Serial && telemetry.BaudRate <= 0 {
		return errors.New("telemetry: baudRate must be > 0 for serial output")
	}
	if telemetry.RollingWindowSize <= 0 {
		return errors.New("telemetry: rollingWindowSize must be > 0")
	}
	return nil
}

func containsCmdConfig(config *Configuration) bool {
	sensorConfigs := []*SensorConfig{&config.Sensors.Humidity, config.Sensors.Temperature, config.Sensors.WetFlow, config.Sensors.DryFlow}
	for i := range config.Sensors.Thermistors {
		sensorConfigs = append(sensorConfigs, &config.Sensors.Thermistors[i])
	}
	for _, sensorConfig := range sensorConfigs {
		if sensorConfig != nil && sensorConfig.Cmd != nil {
			return true
		}
	}
	return config.Valves.Humid.Cmd != nil || config.Valves.Dry.Cmd != nil
}
