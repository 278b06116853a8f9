package control_loop

import (
	"time"

	"github.com/humidistat/humidistat/internal/util"
)

// Pid is the transfer function driving a Loop in automatic mode.
// The loop only relies on Evaluate, everything else is used for tuning and display.
type Pid interface {
	// Evaluate returns the next output for the given setpoint and measurement.
	// lastOutput is the output currently applied to the plant.
	Evaluate(setpoint, measured, lastOutput float64, dt time.Duration) float64
	// SetGains replaces the proportional, integral, derivative and feed-forward gains
	SetGains(kp, ki, kd, kf float64)
	// SetLimits replaces the output range
	SetLimits(min, max float64)
	// Terms returns the P, I and D contributions of the last evaluation
	Terms() (float64, float64, float64)
}

// PidFunc adapts a plain function to the Pid interface, tuning calls are ignored
type PidFunc func(setpoint, measured, lastOutput float64, dt time.Duration) float64

func (f PidFunc) Evaluate(setpoint, measured, lastOutput float64, dt time.Duration) float64 {
	return f(setpoint, measured, lastOutput, dt)
}

func (f PidFunc) SetGains(kp, ki, kd, kf float64) {}

func (f PidFunc) SetLimits(min, max float64) {}

func (f PidFunc) Terms() (float64, float64, float64) {
	return 0, 0, 0
}

// NewPid creates the default PID implementation with its output bounded to the valve range
func NewPid(kp, ki, kd, kf float64, lowValue uint8) Pid {
	return util.NewPidLoop(kp, ki, kd, kf, float64(lowValue), MaxControlValue)
}
