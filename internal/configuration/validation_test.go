package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Configuration {
	return Configuration{
		Mode: ModeSingle,
		Ui: UiConfig{
			InputInterval:        100 * time.Millisecond,
			RefreshInterval:      200 * time.Millisecond,
			BlinkInterval:        500 * time.Millisecond,
			Tolerance:            3,
			ShortPressDuration:   time.Second,
			ShortPressMultiplier: 5,
			LongPressDuration:    5 * time.Second,
			LongPressMultiplier:  10,
			SaveCooldown:         100,
		},
		Sensors: SensorsConfig{
			Humidity: SensorConfig{ID: "humidity", Simulated: &SimulatedSensorConfig{Channel: ChannelHumidity}},
		},
		Valves: ValvesConfig{
			Humid: ValveConfig{Simulated: &SimulatedValveConfig{}},
			Dry:   ValveConfig{Simulated: &SimulatedValveConfig{}},
		},
		Telemetry: TelemetryConfig{Enabled: true, Output: "-", RollingWindowSize: 10},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	// GIVEN
	config := validConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidate_UnknownMode(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Mode = "triple"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "unknown controller mode 'triple', use one of: single | cascade")
}

func TestValidate_CascadeRequiresFlowSensors(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Mode = ModeCascade

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "cascade mode requires both a wetFlow and a dryFlow sensor")
}

func TestValidate_CascadeWithFlowSensors(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Mode = ModeCascade
	config.Sensors.WetFlow = &SensorConfig{ID: "wet", Simulated: &SimulatedSensorConfig{Channel: ChannelWetFlow}}
	config.Sensors.DryFlow = &SensorConfig{ID: "dry", Simulated: &SimulatedSensorConfig{Channel: ChannelDryFlow}}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidate_SensorSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors.Humidity = SensorConfig{ID: "humidity"}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor humidity: sub-configuration for sensor is missing, use one of: hwmon | file | cmd | simulated")
}

func TestValidate_SensorMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors.Humidity.File = &FileSensorConfig{Path: "/tmp/humidity"}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor humidity: only one sensor type can be used per sensor definition block")
}

func TestValidate_DuplicateSensorId(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors.Thermistors = []SensorConfig{
		{ID: "humidity", File: &FileSensorConfig{Path: "/tmp/ntc"}},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "duplicate sensor id detected: humidity")
}

func TestValidate_TooManyThermistors(t *testing.T) {
	// GIVEN
	config := validConfig()
	for i := 0; i < 5; i++ {
		config.Sensors.Thermistors = append(config.Sensors.Thermistors, SensorConfig{File: &FileSensorConfig{Path: "/tmp/ntc"}})
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "at most 4 thermistors are supported, got 5")
}

func TestValidate_HwMonIndex(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors.Temperature = &SensorConfig{ID: "temp", HwMon: &HwMonSensorConfig{Platform: "coretemp", Index: 0}}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor temp: invalid index, must be >= 1")
}

func TestValidate_UnknownSimulatedChannel(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors.Humidity.Simulated.Channel = "pressure"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor humidity: unsupported simulated channel 'pressure', use one of: humidity | temperature | wetFlow | dryFlow")
}

func TestValidate_ValveSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Valves.Dry = ValveConfig{}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "valve dry: sub-configuration for valve is missing, use one of: file | cmd | simulated")
}

func TestValidate_LongPressShorterThanShortPress(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Ui.LongPressDuration = 100 * time.Millisecond

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "ui: longPressDuration must not be shorter than shortPressDuration")
}

func TestValidate_ScriptInput(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Input = InputConfig{Type: InputScript}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "input: script input requires a non-empty script")

	// GIVEN
	config.Input.Script = []string{"up", "jump"}

	// WHEN
	err = validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "input: unknown button 'jump' in script, use one of: none | up | down | left | right | select")
}

func TestValidate_TelemetryOutputMissing(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Telemetry.Output = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "telemetry: output is missing, use '-' for stdout")
}

func TestParseControllerMode(t *testing.T) {
	mode, err := ParseControllerMode(" Cascade ")
	assert.NoError(t, err)
	assert.Equal(t, ModeCascade, mode)

	mode, err = ParseControllerMode("")
	assert.NoError(t, err)
	assert.Equal(t, ModeSingle, mode)
}

func TestValidate_TelemetryStdoutWithDisplay(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Display.Enabled = true

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "telemetry: stdout is used by the display, use a file or serial port")
}
