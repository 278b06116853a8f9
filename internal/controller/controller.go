package controller

import (
	"math"
	"time"

	"github.com/humidistat/humidistat/internal/control_loop"
	"github.com/humidistat/humidistat/internal/navigation"
	"github.com/humidistat/humidistat/internal/scheduler"
	"github.com/humidistat/humidistat/internal/sensors"
	"github.com/humidistat/humidistat/internal/status"
)

// Output drives the humid and dry valves
type Output interface {
	Apply(humid uint8, dry uint8)
}

// Inputs are the measurements the controller samples every step
type Inputs struct {
	Humidity    sensors.HumiditySensor
	Thermistors []sensors.TemperatureSensor
	// WetFlow and DryFlow are only sampled by cascade controllers
	WetFlow sensors.FlowSensor
	DryFlow sensors.FlowSensor
}

// Controller samples the sensors, steps the humidistat and writes the valve outputs.
// It must only be used from the scheduler goroutine.
type Controller struct {
	humidistat control_loop.Humidistat
	inputs     Inputs
	output     Output

	temperature float64
	thermistors []float64
	humid, dry  uint8
}

func NewController(humidistat control_loop.Humidistat, inputs Inputs, output Output) *Controller {
	return &Controller{
		humidistat:  humidistat,
		inputs:      inputs,
		output:      output,
		temperature: math.NaN(),
		thermistors: make([]float64, len(inputs.Thermistors)),
	}
}

// Task returns the scheduler task running Update every sample interval of the humidistat
func (c *Controller) Task() scheduler.Task {
	return scheduler.Task{
		Name:     "control",
		Interval: c.humidistat.SampleInterval,
		Run:      c.Update,
	}
}

// Update runs one control step
func (c *Controller) Update(now time.Time) {
	humidity := c.inputs.Humidity.ReadHumidity()
	c.temperature = c.inputs.Humidity.ReadTemperature()
	for i, thermistor := range c.inputs.Thermistors {
		c.thermistors[i] = thermistor.ReadTemperature()
	}

	c.humidistat.Sample(humidity)
	status.Record("humidity", humidity, now)
	status.Record("temperature", c.temperature, now)

	if cascade, ok := c.humidistat.(*control_loop.Cascade); ok {
		wet, dry := readFlow(c.inputs.WetFlow), readFlow(c.inputs.DryFlow)
		cascade.SampleFlows(wet, dry)
		status.Record("wetFlow", wet, now)
		status.Record("dryFlow", dry, now)
	}

	c.humidistat.Step()

	c.humid, c.dry = c.humidistat.ValveOutputs()
	c.output.Apply(c.humid, c.dry)
}

func readFlow(sensor sensors.FlowSensor) float64 {
	if sensor == nil {
		return math.NaN()
	}
	return sensor.ReadFlow()
}

// Readings returns the auxiliary measurements of the last step
func (c *Controller) Readings() navigation.Readings {
	thermistors := make([]float64, len(c.thermistors))
	copy(thermistors, c.thermistors)
	return navigation.Readings{
		Temperature: c.temperature,
		Thermistors: thermistors,
	}
}

// Status returns a view of the last step
func (c *Controller) Status() status.Status {
	h := c.humidistat
	s := status.Status{
		Mode:         "single",
		Active:       h.Active(),
		Humidity:     h.ProcessVariable(),
		Temperature:  c.temperature,
		Setpoint:     h.Setpoint(),
		ControlValue: h.ControlValue(),
		HumidValve:   c.humid,
		DryValve:     c.dry,
		Thermistors:  c.Readings().Thermistors,
	}
	if cascade, ok := h.(*control_loop.Cascade); ok {
		s.Mode = "cascade"
		s.CombinedControlValue = cascade.CombinedControlValue()
		for i := control_loop.WetLoop; i <= control_loop.DryLoop; i++ {
			inner, err := cascade.GetInner(i)
			if err != nil {
				continue
			}
			s.Inner = append(s.Inner, status.LoopStatus{
				ProcessVariable: inner.ProcessVariable(),
				Setpoint:        inner.Setpoint(),
				ControlValue:    inner.ControlValue(),
			})
		}
	}
	return s
}
