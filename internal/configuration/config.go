package configuration

import (
	"errors"
	"os"
	"time"

	"github.com/humidistat/humidistat/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// Mode selects the controller topology, one of: single | cascade
	Mode ControllerMode `json:"mode"`

	Scheduler  SchedulerConfig  `json:"scheduler"`
	Ui         UiConfig         `json:"ui"`
	Sensors    SensorsConfig    `json:"sensors"`
	Valves     ValvesConfig     `json:"valves"`
	Simulation SimulationConfig `json:"simulation"`
	Input      InputConfig      `json:"input"`
	Display    DisplayConfig    `json:"display"`
	Telemetry  TelemetryConfig  `json:"telemetry"`
	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("humidistat")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/humidistat/")
	}

	viper.SetEnvPrefix("humidistat")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/humidistat/humidistat.db")
	viper.SetDefault("mode", string(ModeSingle))

	viper.SetDefault("scheduler.turnInterval", 10*time.Millisecond)

	viper.SetDefault("ui.inputInterval", 100*time.Millisecond)
	viper.SetDefault("ui.refreshInterval", 200*time.Millisecond)
	viper.SetDefault("ui.blinkInterval", 500*time.Millisecond)
	viper.SetDefault("ui.tolerance", 3.0)
	viper.SetDefault("ui.shortPressDuration", 1*time.Second)
	viper.SetDefault("ui.shortPressMultiplier", 5)
	viper.SetDefault("ui.longPressDuration", 5*time.Second)
	viper.SetDefault("ui.longPressMultiplier", 10)
	viper.SetDefault("ui.saveCooldown", 500)

	viper.SetDefault("sensors.humidity", SensorConfig{ID: "humidity", Simulated: &SimulatedSensorConfig{Channel: ChannelHumidity}})

	viper.SetDefault("valves.humid", ValveConfig{Simulated: &SimulatedValveConfig{}})
	viper.SetDefault("valves.dry", ValveConfig{Simulated: &SimulatedValveConfig{}})

	viper.SetDefault("simulation.ambientHumidity", 10.0)
	viper.SetDefault("simulation.sourceHumidity", 95.0)
	viper.SetDefault("simulation.temperature", 21.0)
	viper.SetDefault("simulation.timeConstant", 20*time.Second)
	viper.SetDefault("simulation.flowFullScale", 255)

	viper.SetDefault("input.type", string(InputKeyboard))

	viper.SetDefault("display.enabled", true)

	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.output", "-")
	viper.SetDefault("telemetry.baudRate", 115200)
	viper.SetDefault("telemetry.rollingWindowSize", 10)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)
}

// ReadConfigFile reads and loads the config file and returns its path.
// Without a config file in any search path the defaults are used, a file given by flag must exist.
func ReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			ui.Fatal("Error reading config file, %s", err)
		}
		ui.Warning("No configuration file found, using defaults")
	}
	// this is only populated _after_ ReadInConfig()
	configPath := viper.ConfigFileUsed()
	if configPath != "" {
		ui.Info("Using configuration file at: %s", configPath)
	}

	LoadConfig()
	return configPath
}

// DecodeHook is the mapstructure hook chain used to unmarshal the configuration
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		ControllerModeHookFunc(),
		InputTypeHookFunc(),
	)
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(DecodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
