package control_loop

import (
	"math"
	"time"

	"github.com/humidistat/humidistat/internal/util"
)

const (
	MinSetpoint     = 0
	MaxSetpoint     = 100
	MaxControlValue = 255

	DefaultSetpoint = 50
)

// Loop is a single control loop that is either driven by its PID (active)
// or by the operator (manual).
type Loop struct {
	pid Pid

	processVariable float64
	controlValue    uint8
	setpoint        uint8
	active          bool

	lowValue       uint8
	sampleInterval time.Duration
}

// NewLoop creates a loop in manual mode, with the control value centered in [lowValue, 255]
func NewLoop(pid Pid, lowValue uint8, sampleInterval time.Duration) *Loop {
	l := &Loop{
		pid:             pid,
		processVariable: math.NaN(),
		setpoint:        DefaultSetpoint,
		lowValue:        lowValue,
		sampleInterval:  sampleInterval,
	}
	l.controlValue = uint8((MaxControlValue + int(lowValue)) / 2)
	return l
}

// Sample stores the latest measurement
func (l *Loop) Sample(pv float64) {
	l.processVariable = pv
}

// Step advances the loop by one sample interval. In manual mode this is a no-op,
// a NaN measurement or output leaves the control value untouched.
func (l *Loop) Step() {
	if !l.active {
		return
	}
	if math.IsNaN(l.processVariable) {
		return
	}
	output := l.pid.Evaluate(float64(l.setpoint), l.processVariable, float64(l.controlValue), l.sampleInterval)
	if math.IsNaN(output) {
		return
	}
	l.controlValue = l.coerceControlValue(int(math.Round(output)))
}

func (l *Loop) coerceControlValue(value int) uint8 {
	return uint8(util.Coerce(value, int(l.lowValue), MaxControlValue))
}

// SetSetpoint sets the setpoint, clamped to [0, 100]
func (l *Loop) SetSetpoint(value int) uint8 {
	l.setpoint = uint8(util.Coerce(value, MinSetpoint, MaxSetpoint))
	return l.setpoint
}

// AdjustSetpoint adds delta to the setpoint, clamped to [0, 100]
func (l *Loop) AdjustSetpoint(delta int) uint8 {
	return l.SetSetpoint(int(l.setpoint) + delta)
}

// SetControlValue sets the control value, clamped to [lowValue, 255]
func (l *Loop) SetControlValue(value int) uint8 {
	l.controlValue = l.coerceControlValue(value)
	return l.controlValue
}

// AdjustControlValue adds delta to the control value, clamped to [lowValue, 255]
func (l *Loop) AdjustControlValue(delta int) uint8 {
	return l.SetControlValue(int(l.controlValue) + delta)
}

// ToggleMode switches between automatic and manual operation.
// The control value is kept as is in both directions.
func (l *Loop) ToggleMode() bool {
	l.active = !l.active
	return l.active
}

// SetActive switches to automatic (true) or manual (false) operation
func (l *Loop) SetActive(active bool) {
	l.active = active
}

// SetLowValue replaces the lower control value bound and re-clamps the current control value
func (l *Loop) SetLowValue(lowValue uint8) {
	l.lowValue = lowValue
	l.pid.SetLimits(float64(lowValue), MaxControlValue)
	l.controlValue = l.coerceControlValue(int(l.controlValue))
}

func (l *Loop) SetSampleInterval(d time.Duration) {
	l.sampleInterval = d
}

func (l *Loop) SetGains(kp, ki, kd, kf float64) {
	l.pid.SetGains(kp, ki, kd, kf)
}

func (l *Loop) ProcessVariable() float64 {
	return l.processVariable
}

func (l *Loop) ControlValue() uint8 {
	return l.controlValue
}

func (l *Loop) Setpoint() uint8 {
	return l.setpoint
}

func (l *Loop) Active() bool {
	return l.active
}

func (l *Loop) LowValue() uint8 {
	return l.lowValue
}

func (l *Loop) SampleInterval() time.Duration {
	return l.sampleInterval
}

// Terms returns the P, I and D contributions of the last PID evaluation
func (l *Loop) Terms() (float64, float64, float64) {
	return l.pid.Terms()
}
