package util

import (
	"math"
	"time"
)

// PidLoop is a PID transfer function with feed-forward, output clamping and
// conditional-integration anti-windup. The sample interval is handed in by the
// caller, so evaluation is deterministic and independent of the wall clock.
type PidLoop struct {
	// Proportional Constant
	p float64
	// Integral Constant
	i float64
	// Derivative Constant
	d float64
	// Feed-forward Constant, applied to the target
	f float64
	// Minimum output value
	outMin float64
	// Maximum output value
	outMax float64

	initialized bool
	// last measured value
	lastMeasured float64
	// integral from previous loop + error, i.e. integral error
	integral float64

	// terms of the last evaluation, for display purposes
	pTerm float64
	iTerm float64
	dTerm float64
}

func NewPidLoop(p, i, d, f, min, max float64) *PidLoop {
	return &PidLoop{
		p:      p,
		i:      i,
		d:      d,
		f:      f,
		outMin: min,
		outMax: max,
	}
}

// SetGains replaces the gains, keeping the accumulated state
func (p *PidLoop) SetGains(kp, ki, kd, kf float64) {
	p.p = kp
	p.i = ki
	p.d = kd
	p.f = kf
}

// SetLimits replaces the output limits
func (p *PidLoop) SetLimits(min, max float64) {
	p.outMin = min
	p.outMax = max
}

// Reset clears the integral and derivative state
func (p *PidLoop) Reset() {
	p.initialized = false
	p.integral = 0
	p.lastMeasured = 0
	p.pTerm, p.iTerm, p.dTerm = 0, 0, 0
}

// Terms returns the proportional, integral and derivative contributions of the last evaluation
func (p *PidLoop) Terms() (float64, float64, float64) {
	return p.pTerm, p.iTerm, p.dTerm
}

// Evaluate advances the pid loop by one sample interval.
// lastOutput is the output currently applied to the plant, which may differ from the
// last value returned by this loop (e.g. after manual operation).
func (p *PidLoop) Evaluate(target float64, measured float64, lastOutput float64, dt time.Duration) float64 {
	if math.IsNaN(measured) || math.IsNaN(target) {
		return lastOutput
	}

	err := target - measured

	if !p.initialized {
		p.initialized = true
		p.lastMeasured = measured
		p.integral = 0.0

		p.pTerm = p.p * err
		p.iTerm = 0
		p.dTerm = 0
		return Coerce(p.pTerm+p.f*target, p.outMin, p.outMax)
	}

	seconds := dt.Seconds()
	if seconds <= 0 {
		return lastOutput
	}

	// --- P Term ---
	p.pTerm = p.p * err

	// --- I Term (with basic anti-windup) ---
	integrate := true
	// Don't integrate if output is already saturated AND the error is trying to push it further
	if lastOutput >= p.outMax && err > 0 {
		integrate = false
	}
	if lastOutput <= p.outMin && err < 0 {
		integrate = false
	}
	if integrate {
		p.integral = p.integral + err*seconds
	}
	p.iTerm = p.i * p.integral

	// --- D Term (on measurement) ---
	// avoid derivative kick
	p.dTerm = -p.d * (measured - p.lastMeasured) / seconds

	p.lastMeasured = measured

	output := p.pTerm + p.iTerm + p.dTerm + p.f*target
	return Coerce(output, p.outMin, p.outMax)
}
