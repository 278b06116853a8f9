package sensors

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSensor_Types(t *testing.T) {
	chamber := simulation.NewChamber(simulation.Parameters{})

	tests := []struct {
		config   configuration.SensorConfig
		expected Sensor
	}{
		{configuration.SensorConfig{ID: "a", File: &configuration.FileSensorConfig{Path: "x"}}, &FileSensor{}},
		{configuration.SensorConfig{ID: "b", Cmd: &configuration.CmdSensorConfig{Exec: "x"}}, &CmdSensor{}},
		{configuration.SensorConfig{ID: "c", HwMon: &configuration.HwMonSensorConfig{Index: 1}}, &HwmonSensor{}},
		{configuration.SensorConfig{ID: "d", Simulated: &configuration.SimulatedSensorConfig{Channel: configuration.ChannelHumidity}}, &SimulatedSensor{}},
	}

	for _, tt := range tests {
		// WHEN
		sensor, err := NewSensor(tt.config, chamber)

		// THEN
		require.NoError(t, err)
		assert.IsType(t, tt.expected, sensor)
		assert.Equal(t, tt.config.ID, sensor.GetId())
	}
}

func TestNewSensor_MissingSubConfig(t *testing.T) {
	// WHEN
	_, err := NewSensor(configuration.SensorConfig{ID: "x"}, nil)

	// THEN
	assert.EqualError(t, err, "no matching sensor type for sensor: x")
}

func TestNewSensor_SimulatedWithoutChamber(t *testing.T) {
	// WHEN
	_, err := NewSensor(configuration.SensorConfig{ID: "x", Simulated: &configuration.SimulatedSensorConfig{}}, nil)

	// THEN
	assert.Error(t, err)
}

func TestFileSensor_Scaled(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "humidity")
	require.NoError(t, os.WriteFile(path, []byte("523\n"), 0644))
	sensor := FileSensor{Config: configuration.SensorConfig{
		ID:   "humidity",
		File: &configuration.FileSensorConfig{Path: path, Scale: 10},
	}}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	require.NoError(t, err)
	assert.InDelta(t, 52.3, value, 1e-9)
}

func TestFileSensor_MissingFile(t *testing.T) {
	// GIVEN
	sensor := FileSensor{Config: configuration.SensorConfig{
		ID:   "humidity",
		File: &configuration.FileSensorConfig{Path: filepath.Join(t.TempDir(), "missing")},
	}}

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.Error(t, err)
}

func TestHwmonSensor_Millidegrees(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "temp1_input")
	require.NoError(t, os.WriteFile(path, []byte("21500"), 0644))
	sensor := HwmonSensor{Label: "temp1", Input: path}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 21.5, value)
	assert.Equal(t, "temp1", sensor.GetId())
}

func TestSimulatedSensor_Channels(t *testing.T) {
	// GIVEN
	chamber := simulation.NewChamber(simulation.Parameters{AmbientHumidity: 40, Temperature: 22, TimeConstant: time.Second})
	chamber.SetValve(simulation.ValveDry, 255)
	newSensor := func(channel string) Sensor {
		s, err := NewSensor(configuration.SensorConfig{ID: channel, Simulated: &configuration.SimulatedSensorConfig{Channel: channel}}, chamber)
		require.NoError(t, err)
		return s
	}

	// WHEN
	humidity, _ := newSensor(configuration.ChannelHumidity).GetValue()
	temperature, _ := newSensor(configuration.ChannelTemperature).GetValue()
	wet, _ := newSensor(configuration.ChannelWetFlow).GetValue()
	dry, _ := newSensor(configuration.ChannelDryFlow).GetValue()
	_, err := newSensor("pressure").GetValue()

	// THEN
	assert.Equal(t, 40.0, humidity)
	assert.Equal(t, 22.0, temperature)
	assert.Equal(t, 0.0, wet)
	assert.Equal(t, 100.0, dry)
	assert.Error(t, err)
}

func TestChannel_FailureYieldsNaN(t *testing.T) {
	// GIVEN
	sensor := &VirtualSensor{Name: "ntc", Err: errors.New("open circuit")}
	channel := NewChannel(sensor)

	// WHEN
	first := channel.Read()
	second := channel.ReadTemperature()

	// THEN
	assert.True(t, math.IsNaN(first))
	assert.True(t, math.IsNaN(second))

	// WHEN
	sensor.Err = nil
	sensor.Value = 23
	recovered := channel.ReadFlow()

	// THEN
	assert.Equal(t, 23.0, recovered)
}

func TestHumidity_WithoutTemperature(t *testing.T) {
	// GIVEN
	h := NewHumidity(&VirtualSensor{Name: "rh", Value: 55}, nil)

	// WHEN
	humidity := h.ReadHumidity()
	temperature := h.ReadTemperature()

	// THEN
	assert.Equal(t, 55.0, humidity)
	assert.True(t, math.IsNaN(temperature))
}
