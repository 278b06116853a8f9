package sensors

import (
	"math"

	"github.com/humidistat/humidistat/internal/ui"
)

// HumiditySensor provides relative humidity in percent and the temperature next to it.
// A failed reading yields NaN.
type HumiditySensor interface {
	ReadHumidity() float64
	ReadTemperature() float64
}

// TemperatureSensor provides a temperature, NaN if the reading failed
type TemperatureSensor interface {
	ReadTemperature() float64
}

// FlowSensor provides a flow in percent of full scale, NaN if the reading failed
type FlowSensor interface {
	ReadFlow() float64
}

// Channel turns a Sensor into a NaN reporting reading, logging only changes of the failure state
type Channel struct {
	sensor Sensor
	failed bool
}

func NewChannel(sensor Sensor) *Channel {
	return &Channel{sensor: sensor}
}

func (c *Channel) Read() float64 {
	if c == nil || c.sensor == nil {
		return math.NaN()
	}
	value, err := c.sensor.GetValue()
	if err != nil {
		if !c.failed {
			ui.Warning("Reading sensor %s failed: %v", c.sensor.GetId(), err)
		}
		c.failed = true
		return math.NaN()
	}
	if c.failed {
		ui.Info("Sensor %s recovered", c.sensor.GetId())
	}
	c.failed = false
	return value
}

func (c *Channel) ReadTemperature() float64 {
	return c.Read()
}

func (c *Channel) ReadFlow() float64 {
	return c.Read()
}

// Humidity pairs a humidity channel with an optional temperature channel
type Humidity struct {
	humidity    *Channel
	temperature *Channel
}

func NewHumidity(humidity Sensor, temperature Sensor) *Humidity {
	h := &Humidity{humidity: NewChannel(humidity)}
	if temperature != nil {
		h.temperature = NewChannel(temperature)
	}
	return h
}

func (h *Humidity) ReadHumidity() float64 {
	return h.humidity.Read()
}

func (h *Humidity) ReadTemperature() float64 {
	return h.temperature.Read()
}
