// Package simulation provides a simple humidity chamber model fed by a humid
// and a dry air valve. It backs the simulated sensors and valves as well as the
// simulate command.
package simulation

import (
	"math"
	"sync"
	"time"

	"github.com/humidistat/humidistat/internal/util"
)

const (
	ValveHumid = "humid"
	ValveDry   = "dry"
)

type Parameters struct {
	AmbientHumidity float64
	SourceHumidity  float64
	Temperature     float64
	// TimeConstant of the chamber humidity when both valves are fully open
	TimeConstant time.Duration
	// FlowFullScale is the valve value at which a path delivers 100% flow
	FlowFullScale int
}

// Chamber mixes humid and dry air flows into a volume of well mixed air
type Chamber struct {
	mu sync.Mutex

	params Parameters

	humidity float64
	humid    uint8
	dry      uint8

	last time.Time
	now  func() time.Time
}

func NewChamber(params Parameters) *Chamber {
	if params.FlowFullScale <= 0 {
		params.FlowFullScale = 255
	}
	if params.TimeConstant <= 0 {
		params.TimeConstant = 20 * time.Second
	}
	return &Chamber{
		params:   params,
		humidity: params.AmbientHumidity,
		now:      time.Now,
	}
}

// SetClock replaces the wall clock the model follows when read
func (c *Chamber) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	c.last = time.Time{}
}

// SetValve applies a valve value, unknown valve names are ignored
func (c *Chamber) SetValve(name string, value uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sync()
	switch name {
	case ValveHumid:
		c.humid = value
	case ValveDry:
		c.dry = value
	}
}

// Advance moves the model forward by dt, independent of the wall clock
func (c *Chamber) Advance(dt time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance(dt)
}

// sync advances the model to the current wall clock time
func (c *Chamber) sync() {
	now := c.now()
	if !c.last.IsZero() {
		c.advance(now.Sub(c.last))
	}
	c.last = now
}

func (c *Chamber) advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	wet := c.flow(c.humid) / 100
	dry := c.flow(c.dry) / 100
	total := wet + dry
	if total <= 0 {
		return
	}
	target := (wet*c.params.SourceHumidity + dry*c.params.AmbientHumidity) / total
	// exchange rate scales with the total flow, both paths fully open yield TimeConstant
	rate := total / 2 / c.params.TimeConstant.Seconds()
	c.humidity += (target - c.humidity) * (1 - math.Exp(-rate*dt.Seconds()))
}

func (c *Chamber) flow(value uint8) float64 {
	return util.Coerce(100*float64(value)/float64(c.params.FlowFullScale), 0, 100)
}

func (c *Chamber) Humidity() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sync()
	return c.humidity
}

func (c *Chamber) Temperature() float64 {
	return c.params.Temperature
}

// WetFlow returns the humid air flow in percent of full scale
func (c *Chamber) WetFlow() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flow(c.humid)
}

// DryFlow returns the dry air flow in percent of full scale
func (c *Chamber) DryFlow() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flow(c.dry)
}
