package control_loop

import (
	"time"

	"github.com/humidistat/humidistat/internal/settings"
)

// Humidistat is a humidity controller driving a humid and a dry air valve
type Humidistat interface {
	// Sample stores the latest humidity measurement
	Sample(humidity float64)
	// Step advances the controller by one sample interval
	Step()

	Active() bool
	ToggleMode() bool

	Setpoint() uint8
	AdjustSetpoint(delta int) uint8
	ControlValue() uint8
	AdjustControlValue(delta int) uint8
	ProcessVariable() float64
	LowValue() uint8
	// SampleInterval is the interval Step expects to be called at
	SampleInterval() time.Duration

	// ApplySettings propagates gains, sample intervals and bounds of the given snapshot
	ApplySettings(snapshot settings.Snapshot)
	// ValveOutputs returns the actuation of the humid and the dry air valve
	ValveOutputs() (humid uint8, dry uint8)
}

// SingleStage controls humidity with one loop driving both valves in opposition
type SingleStage struct {
	*Loop
}

// NewSingleStage creates a single stage controller using the given snapshot
func NewSingleStage(snapshot settings.Snapshot) *SingleStage {
	pid := NewPid(snapshot.HumidityKp, snapshot.HumidityKi, snapshot.HumidityKd, 0, snapshot.LowValue)
	return NewSingleStageWithPid(pid, snapshot)
}

// NewSingleStageWithPid creates a single stage controller using a custom transfer function
func NewSingleStageWithPid(pid Pid, snapshot settings.Snapshot) *SingleStage {
	return &SingleStage{
		Loop: NewLoop(pid, snapshot.LowValue, snapshot.SampleInterval()),
	}
}

func (s *SingleStage) ApplySettings(snapshot settings.Snapshot) {
	s.SetGains(snapshot.HumidityKp, snapshot.HumidityKi, snapshot.HumidityKd, 0)
	s.SetSampleInterval(snapshot.SampleInterval())
	s.SetLowValue(snapshot.LowValue)
}

// ValveOutputs opens the humid valve by the control value and the dry valve by its
// complement within [lowValue, 255]
func (s *SingleStage) ValveOutputs() (uint8, uint8) {
	cv := int(s.ControlValue())
	dry := MaxControlValue + int(s.LowValue()) - cv
	return uint8(cv), uint8(dry)
}
