package control_loop

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/humidistat/humidistat/internal/settings"
	"github.com/humidistat/humidistat/internal/util"
)

const (
	// WetLoop is the index of the inner loop controlling the humid air flow
	WetLoop = 0
	// DryLoop is the index of the inner loop controlling the dry air flow
	DryLoop = 1
)

var ErrInvalidLoopIndex = errors.New("invalid inner loop index")

// Aggregation combines the control values of the two inner loops into one value
type Aggregation func(wet, dry uint8) uint8

// AverageAggregation returns the rounded mean of both inner control values
func AverageAggregation(wet, dry uint8) uint8 {
	return uint8((int(wet) + int(dry) + 1) / 2)
}

// Cascade controls humidity with an outer loop whose output splits a total flow
// into setpoints for a wet and a dry flow loop.
type Cascade struct {
	outer *Loop
	inner [2]*Loop

	// totalFlowrate is the combined flow as a fraction of the flow sensor full scale
	totalFlowrate float64
	aggregation   Aggregation

	// the outer loop is stepped every outerEvery inner steps
	outerEvery int
	step       int
}

// NewCascade creates a cascade controller using the given snapshot
func NewCascade(snapshot settings.Snapshot) *Cascade {
	outer := NewPid(snapshot.HumidityKp, snapshot.HumidityKi, snapshot.HumidityKd, snapshot.HumidityKf, snapshot.LowValue)
	wet := NewPid(snapshot.FlowKp, snapshot.FlowKi, snapshot.FlowKd, snapshot.FlowKf, snapshot.LowValue)
	dry := NewPid(snapshot.FlowKp, snapshot.FlowKi, snapshot.FlowKd, snapshot.FlowKf, snapshot.LowValue)
	return NewCascadeWithPid(outer, wet, dry, snapshot)
}

// NewCascadeWithPid creates a cascade controller using custom transfer functions
func NewCascadeWithPid(outer, wet, dry Pid, snapshot settings.Snapshot) *Cascade {
	c := &Cascade{
		outer: NewLoop(outer, snapshot.LowValue, snapshot.SampleInterval()),
		inner: [2]*Loop{
			NewLoop(wet, snapshot.LowValue, snapshot.FlowSampleInterval()),
			NewLoop(dry, snapshot.LowValue, snapshot.FlowSampleInterval()),
		},
		totalFlowrate: snapshot.TotalFlowrate,
		aggregation:   AverageAggregation,
	}
	// the inner loops always follow the setpoints derived from the outer loop
	c.inner[WetLoop].SetActive(true)
	c.inner[DryLoop].SetActive(true)
	c.outerEvery = outerEvery(snapshot.SampleInterval(), snapshot.FlowSampleInterval())
	c.updateInnerSetpoints()
	return c
}

func outerEvery(outer, inner time.Duration) int {
	if inner <= 0 || outer <= inner {
		return 1
	}
	return int(math.Ceil(float64(outer) / float64(inner)))
}

// SetAggregation replaces the policy used by CombinedControlValue
func (c *Cascade) SetAggregation(aggregation Aggregation) {
	c.aggregation = aggregation
}

// Outer returns the humidity loop
func (c *Cascade) Outer() *Loop {
	return c.outer
}

// GetInner returns the wet (0) or dry (1) flow loop
func (c *Cascade) GetInner(i int) (*Loop, error) {
	if i < 0 || i >= len(c.inner) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLoopIndex, i)
	}
	return c.inner[i], nil
}

// Sample stores the latest humidity measurement
func (c *Cascade) Sample(humidity float64) {
	c.outer.Sample(humidity)
}

// SampleFlows stores the latest wet and dry flow measurements, in percent of full scale
func (c *Cascade) SampleFlows(wet, dry float64) {
	c.inner[WetLoop].Sample(wet)
	c.inner[DryLoop].Sample(dry)
}

// Step advances the flow loops by one flow sample interval, and the humidity loop
// whenever a full humidity sample interval has passed.
func (c *Cascade) Step() {
	if c.step == 0 {
		c.outer.Step()
		c.updateInnerSetpoints()
	}
	c.step = (c.step + 1) % c.outerEvery

	for _, loop := range c.inner {
		loop.Step()
	}
}

// HumidFraction returns the share of the total flow routed through the wet path
func (c *Cascade) HumidFraction() float64 {
	low := float64(c.outer.LowValue())
	if low >= MaxControlValue {
		return 1
	}
	return util.Coerce((float64(c.outer.ControlValue())-low)/(MaxControlValue-low), 0, 1)
}

func (c *Cascade) updateInnerSetpoints() {
	f := c.HumidFraction()
	c.inner[WetLoop].SetSetpoint(int(math.Round(100 * f * c.totalFlowrate)))
	c.inner[DryLoop].SetSetpoint(int(math.Round(100 * (1 - f) * c.totalFlowrate)))
}

// CombinedControlValue aggregates both flow loop control values
func (c *Cascade) CombinedControlValue() uint8 {
	return c.aggregation(c.inner[WetLoop].ControlValue(), c.inner[DryLoop].ControlValue())
}

func (c *Cascade) Active() bool {
	return c.outer.Active()
}

func (c *Cascade) ToggleMode() bool {
	return c.outer.ToggleMode()
}

func (c *Cascade) Setpoint() uint8 {
	return c.outer.Setpoint()
}

func (c *Cascade) AdjustSetpoint(delta int) uint8 {
	return c.outer.AdjustSetpoint(delta)
}

// ControlValue returns the humidity loop output, i.e. the wet/dry split
func (c *Cascade) ControlValue() uint8 {
	return c.outer.ControlValue()
}

// AdjustControlValue changes the wet/dry split, effective immediately
func (c *Cascade) AdjustControlValue(delta int) uint8 {
	value := c.outer.AdjustControlValue(delta)
	c.updateInnerSetpoints()
	return value
}

func (c *Cascade) ProcessVariable() float64 {
	return c.outer.ProcessVariable()
}

func (c *Cascade) LowValue() uint8 {
	return c.outer.LowValue()
}

// SampleInterval returns the flow loop interval, which Step has to be called at
func (c *Cascade) SampleInterval() time.Duration {
	return c.inner[WetLoop].SampleInterval()
}

func (c *Cascade) TotalFlowrate() float64 {
	return c.totalFlowrate
}

func (c *Cascade) ApplySettings(snapshot settings.Snapshot) {
	c.outer.SetGains(snapshot.HumidityKp, snapshot.HumidityKi, snapshot.HumidityKd, snapshot.HumidityKf)
	c.outer.SetSampleInterval(snapshot.SampleInterval())
	c.outer.SetLowValue(snapshot.LowValue)
	for _, loop := range c.inner {
		loop.SetGains(snapshot.FlowKp, snapshot.FlowKi, snapshot.FlowKd, snapshot.FlowKf)
		loop.SetSampleInterval(snapshot.FlowSampleInterval())
		loop.SetLowValue(snapshot.LowValue)
	}
	c.totalFlowrate = snapshot.TotalFlowrate
	c.outerEvery = outerEvery(snapshot.SampleInterval(), snapshot.FlowSampleInterval())
	c.step = 0
	c.updateInnerSetpoints()
}

// ValveOutputs returns the control values of the wet and the dry flow loop
func (c *Cascade) ValveOutputs() (uint8, uint8) {
	return c.inner[WetLoop].ControlValue(), c.inner[DryLoop].ControlValue()
}
