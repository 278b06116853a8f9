package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/humidistat/humidistat/internal/api"
	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/control_loop"
	"github.com/humidistat/humidistat/internal/controller"
	"github.com/humidistat/humidistat/internal/display"
	"github.com/humidistat/humidistat/internal/hwmon"
	"github.com/humidistat/humidistat/internal/input"
	"github.com/humidistat/humidistat/internal/navigation"
	"github.com/humidistat/humidistat/internal/persistence"
	"github.com/humidistat/humidistat/internal/scheduler"
	"github.com/humidistat/humidistat/internal/sensors"
	"github.com/humidistat/humidistat/internal/settings"
	"github.com/humidistat/humidistat/internal/simulation"
	"github.com/humidistat/humidistat/internal/statistics"
	"github.com/humidistat/humidistat/internal/telemetry"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/humidistat/humidistat/internal/valves"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// keyboardHoldGap bridges the delay before a terminal starts repeating a held key
const keyboardHoldGap = 600 * time.Millisecond

func RunDaemon() {
	config := configuration.CurrentConfig
	start := time.Now()

	store := persistence.NewStore(config.DbPath)
	if err := store.Init(); err != nil {
		ui.WarningAndNotify("Persistence", "Settings can not be stored at %s: %v", config.DbPath, err)
	}
	settingsConfig := settings.NewConfig(store)
	if settingsConfig.LoadedFromStore {
		ui.Info("Loaded settings from %s", store.Path())
	}

	humidistat := NewHumidistat(config.Mode, *settingsConfig.Snapshot)
	chamber := NewChamber(config.Simulation)

	inputs, err := InitializeInputs(&config, chamber)
	if err != nil {
		ui.Fatal("Unable to initialize sensors: %v", err)
	}
	outputs, err := InitializeValves(config.Valves, chamber)
	if err != nil {
		ui.Fatal("Unable to initialize valves: %v", err)
	}
	control := controller.NewController(humidistat, inputs, outputs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var keyboard *input.KeyboardSource
	source, err := NewInputSource(config.Input, func() {
		cancel()
	})
	if err != nil {
		ui.Fatal("Unable to initialize input: %v", err)
	}
	holdGap := config.Ui.InputInterval
	if k, ok := source.(*input.KeyboardSource); ok {
		keyboard = k
		holdGap = keyboardHoldGap
	}

	var screen io.Writer
	if config.Display.Enabled {
		screen = os.Stdout
	}
	canvas := display.NewCanvas(screen, display.DefaultCols, display.DefaultRows, keyboard != nil)

	machine, err := navigation.NewMachine(
		humidistat,
		settingsConfig,
		settingsConfig.Parameters(config.Mode.IsCascade()),
		input.NewButtonReader(source, holdGap),
		canvas,
		control,
		UiOptions(config.Ui, config.Scheduler.TurnInterval),
		start,
	)
	if err != nil {
		ui.Fatal("Unable to initialize user interface: %v", err)
	}
	machine.DrawSplash()

	sched := scheduler.New(scheduler.SystemClock{}, config.Scheduler.TurnInterval)
	sched.Add(machine.Task())
	sched.Add(control.Task())

	var telemetryOut io.WriteCloser
	if config.Telemetry.Enabled {
		telemetryOut, err = telemetry.Open(config.Telemetry)
		if err != nil {
			ui.Fatal("Unable to open telemetry output: %v", err)
		}
		defer telemetryOut.Close()
	}
	interval := TelemetryInterval(config.Telemetry, settingsConfig.Snapshot)
	windowSize := config.Telemetry.RollingWindowSize
	if windowSize <= 0 {
		windowSize = 1
	}
	var telemetryWriter io.Writer
	if telemetryOut != nil {
		telemetryWriter = telemetryOut
	}
	sched.Add(telemetry.New(telemetryWriter, control, windowSize, interval, start).Task())

	var g run.Group
	{
		// === scheduler, the only goroutine touching controller state
		g.Add(func() error {
			err := sched.Run(ctx)
			if closeErr := outputs.Close(); closeErr != nil {
				ui.Warning("Unable to close valves: %v", closeErr)
			}
			ui.Info("Scheduler stopped after %d turns.", sched.Turns())
			return err
		}, func(err error) {
			cancel()
		})
	}
	if keyboard != nil {
		g.Add(func() error {
			return keyboard.Run(ctx)
		}, func(err error) {
			cancel()
		})
	}
	if config.Statistics.Enabled || config.Api.Enabled {
		statistics.RegisterAll()
	}
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		g.Add(func() error {
			return runStatisticsServer(ctx, config.Statistics.Port)
		}, func(err error) {
			if err != nil {
				ui.Warning("Error stopping statistics server: %v", err)
			}
			cancel()
		})
	}
	if config.Api.Enabled {
		g.Add(func() error {
			return api.Run(ctx, config.Api, !config.Statistics.Enabled)
		}, func(err error) {
			if err != nil {
				ui.Warning("Error stopping api: %v", err)
			}
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	notifySystemd(daemon.SdNotifyReady)
	err = g.Run()
	notifySystemd(daemon.SdNotifyStopping)

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ui.Info("Done.")
}

func runStatisticsServer(ctx context.Context, port int) error {
	if port <= 0 || port >= 65535 {
		port = 9000
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
		return err
	case <-ctx.Done():
		ui.Info("Stopping statistics server...")
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer timeoutCancel()
		return server.Shutdown(timeoutCtx)
	}
}

func notifySystemd(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		ui.Warning("Unable to notify systemd: %v", err)
		return
	}
	if sent {
		ui.Debug("Notified systemd: %s", state)
	}
}

// NewHumidistat creates the controller topology selected by mode
func NewHumidistat(mode configuration.ControllerMode, snapshot settings.Snapshot) control_loop.Humidistat {
	if mode.IsCascade() {
		return control_loop.NewCascade(snapshot)
	}
	return control_loop.NewSingleStage(snapshot)
}

func NewChamber(config configuration.SimulationConfig) *simulation.Chamber {
	return simulation.NewChamber(simulation.Parameters{
		AmbientHumidity: config.AmbientHumidity,
		SourceHumidity:  config.SourceHumidity,
		Temperature:     config.Temperature,
		TimeConstant:    config.TimeConstant,
		FlowFullScale:   config.FlowFullScale,
	})
}

// TelemetryInterval returns the configured telemetry interval, or the humidity loop sample
// interval of the live snapshot. Cascade controllers step faster than that.
func TelemetryInterval(config configuration.TelemetryConfig, snapshot *settings.Snapshot) func() time.Duration {
	if config.Interval > 0 {
		return func() time.Duration { return config.Interval }
	}
	return func() time.Duration { return snapshot.SampleInterval() }
}

// UiOptions converts the ui configuration into navigation options
func UiOptions(config configuration.UiConfig, turnInterval time.Duration) navigation.Options {
	return navigation.Options{
		InputInterval:        config.InputInterval,
		RefreshInterval:      config.RefreshInterval,
		BlinkInterval:        config.BlinkInterval,
		Tolerance:            config.Tolerance,
		ShortPressDuration:   config.ShortPressDuration,
		ShortPressMultiplier: config.ShortPressMultiplier,
		LongPressDuration:    config.LongPressDuration,
		LongPressMultiplier:  config.LongPressMultiplier,
		SaveCooldown:         config.SaveCooldown,
		TurnInterval:         turnInterval,
	}
}

// NewInputSource creates the configured button source, onQuit is called by sources that can request shutdown
func NewInputSource(config configuration.InputConfig, onQuit func()) (input.Source, error) {
	switch config.Type {
	case configuration.InputKeyboard:
		return input.NewKeyboardSource(onQuit), nil
	case configuration.InputScript:
		return input.ParseScript(config.Script)
	case configuration.InputNone, "":
		return input.NewScriptSource(), nil
	default:
		return nil, fmt.Errorf("unknown input type: %s", config.Type)
	}
}

// InitializeInputs creates the sensors of the configuration, resolving hwmon sensors against the
// detected chips. config is modified in place with the resolved hwmon inputs.
func InitializeInputs(config *configuration.Configuration, chamber *simulation.Chamber) (controller.Inputs, error) {
	if err := resolveHwMonSensors(&config.Sensors); err != nil {
		return controller.Inputs{}, err
	}

	var result controller.Inputs

	humidity, err := sensors.NewSensor(config.Sensors.Humidity, chamber)
	if err != nil {
		return result, err
	}
	var temperature sensors.Sensor
	if config.Sensors.Temperature != nil {
		temperature, err = sensors.NewSensor(*config.Sensors.Temperature, chamber)
		if err != nil {
			return result, err
		}
	}
	result.Humidity = sensors.NewHumidity(humidity, temperature)

	for _, thermistorConfig := range config.Sensors.Thermistors {
		thermistor, err := sensors.NewSensor(thermistorConfig, chamber)
		if err != nil {
			return result, err
		}
		result.Thermistors = append(result.Thermistors, sensors.NewChannel(thermistor))
	}

	if config.Sensors.WetFlow != nil {
		wet, err := sensors.NewSensor(*config.Sensors.WetFlow, chamber)
		if err != nil {
			return result, err
		}
		result.WetFlow = sensors.NewChannel(wet)
	}
	if config.Sensors.DryFlow != nil {
		dry, err := sensors.NewSensor(*config.Sensors.DryFlow, chamber)
		if err != nil {
			return result, err
		}
		result.DryFlow = sensors.NewChannel(dry)
	}
	return result, nil
}

func resolveHwMonSensors(config *configuration.SensorsConfig) error {
	var hwmonConfigs []*configuration.SensorConfig
	for _, sensorConfig := range AllSensorConfigs(config) {
		if sensorConfig.HwMon != nil {
			hwmonConfigs = append(hwmonConfigs, sensorConfig)
		}
	}
	if len(hwmonConfigs) == 0 {
		return nil
	}

	controllers := hwmon.GetChips()
	for _, sensorConfig := range hwmonConfigs {
		if err := hwmon.ResolveSensorInput(controllers, sensorConfig.HwMon); err != nil {
			return fmt.Errorf("sensor %s: %w. Run 'humidistat detect' and correct the configuration", sensorConfig.ID, err)
		}
	}
	return nil
}

// AllSensorConfigs returns pointers to every sensor configuration, optional ones only if present
func AllSensorConfigs(config *configuration.SensorsConfig) []*configuration.SensorConfig {
	result := []*configuration.SensorConfig{&config.Humidity}
	for _, optional := range []*configuration.SensorConfig{config.Temperature, config.WetFlow, config.DryFlow} {
		if optional != nil {
			result = append(result, optional)
		}
	}
	for i := range config.Thermistors {
		result = append(result, &config.Thermistors[i])
	}
	return result
}

// InitializeValves creates the humid and dry valves
func InitializeValves(config configuration.ValvesConfig, chamber *simulation.Chamber) (*valves.Pair, error) {
	humid, err := valves.NewValve(valves.Humid, config.Humid, chamber)
	if err != nil {
		return nil, err
	}
	dry, err := valves.NewValve(valves.Dry, config.Dry, chamber)
	if err != nil {
		return nil, err
	}
	return valves.NewPair(humid, dry), nil
}
