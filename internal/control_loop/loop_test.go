package control_loop

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func constantPid(output float64) PidFunc {
	return func(setpoint, measured, lastOutput float64, dt time.Duration) float64 {
		return output
	}
}

func TestNewLoop_StartsManualAndCentered(t *testing.T) {
	// WHEN
	loop := NewLoop(constantPid(0), 100, time.Second)

	// THEN
	assert.False(t, loop.Active())
	assert.Equal(t, uint8(DefaultSetpoint), loop.Setpoint())
	assert.Equal(t, uint8(177), loop.ControlValue())
	assert.True(t, math.IsNaN(loop.ProcessVariable()))
}

func TestStep_ManualKeepsControlValue(t *testing.T) {
	// GIVEN
	loop := NewLoop(constantPid(255), 0, time.Second)
	loop.Sample(40)
	before := loop.ControlValue()

	// WHEN
	loop.Step()

	// THEN
	assert.Equal(t, before, loop.ControlValue())
}

func TestStep_ActiveAppliesPidOutput(t *testing.T) {
	// GIVEN
	var gotSetpoint, gotMeasured, gotLast float64
	var gotDt time.Duration
	pid := PidFunc(func(setpoint, measured, lastOutput float64, dt time.Duration) float64 {
		gotSetpoint, gotMeasured, gotLast, gotDt = setpoint, measured, lastOutput, dt
		return 200.4
	})
	loop := NewLoop(pid, 100, 500*time.Millisecond)
	loop.SetSetpoint(60)
	loop.Sample(55)
	loop.ToggleMode()

	// WHEN
	loop.Step()

	// THEN
	assert.Equal(t, uint8(200), loop.ControlValue())
	assert.Equal(t, 60.0, gotSetpoint)
	assert.Equal(t, 55.0, gotMeasured)
	assert.Equal(t, 177.0, gotLast)
	assert.Equal(t, 500*time.Millisecond, gotDt)
}

func TestStep_ClampsPidOutput(t *testing.T) {
	// GIVEN
	loop := NewLoop(constantPid(-50), 120, time.Second)
	loop.SetActive(true)
	loop.Sample(10)

	// WHEN
	loop.Step()

	// THEN
	assert.Equal(t, uint8(120), loop.ControlValue())

	// GIVEN
	loop = NewLoop(constantPid(1000), 120, time.Second)
	loop.SetActive(true)
	loop.Sample(10)

	// WHEN
	loop.Step()

	// THEN
	assert.Equal(t, uint8(255), loop.ControlValue())
}

func TestStep_NaNMeasurementHoldsOutput(t *testing.T) {
	// GIVEN
	called := false
	pid := PidFunc(func(setpoint, measured, lastOutput float64, dt time.Duration) float64 {
		called = true
		return 255
	})
	loop := NewLoop(pid, 0, time.Second)
	loop.SetActive(true)
	loop.Sample(math.NaN())
	before := loop.ControlValue()

	// WHEN
	loop.Step()

	// THEN
	assert.False(t, called)
	assert.Equal(t, before, loop.ControlValue())
	assert.True(t, loop.Active())
}

func TestStep_NaNOutputHoldsOutput(t *testing.T) {
	// GIVEN
	loop := NewLoop(constantPid(math.NaN()), 0, time.Second)
	loop.SetActive(true)
	loop.Sample(30)
	before := loop.ControlValue()

	// WHEN
	loop.Step()

	// THEN
	assert.Equal(t, before, loop.ControlValue())
}

func TestAdjustSetpoint_Clamps(t *testing.T) {
	tests := []struct {
		delta    int
		expected uint8
	}{
		{1, 51},
		{-1, 49},
		{49, 99},
		{50, 100},
		{51, 100},
		{1000, 100},
		{-50, 0},
		{-1000, 0},
	}

	for _, tt := range tests {
		// GIVEN
		loop := NewLoop(constantPid(0), 0, time.Second)

		// WHEN
		result := loop.AdjustSetpoint(tt.delta)

		// THEN
		assert.Equal(t, tt.expected, result, "delta %d", tt.delta)
		assert.Equal(t, tt.expected, loop.Setpoint())
	}
}

func TestAdjustSetpoint_PinnedAtBound(t *testing.T) {
	// GIVEN
	loop := NewLoop(constantPid(0), 0, time.Second)

	// WHEN
	for i := 0; i < 10; i++ {
		loop.AdjustSetpoint(100)
	}

	// THEN
	assert.Equal(t, uint8(100), loop.Setpoint())
}

func TestAdjustControlValue_Clamps(t *testing.T) {
	// GIVEN
	loop := NewLoop(constantPid(0), 100, time.Second)

	// WHEN
	high := loop.AdjustControlValue(500)

	// THEN
	assert.Equal(t, uint8(255), high)

	// WHEN
	low := loop.AdjustControlValue(-500)

	// THEN
	assert.Equal(t, uint8(100), low)

	// WHEN
	low = loop.AdjustControlValue(-1)

	// THEN
	assert.Equal(t, uint8(100), low)
}

func TestToggleMode_KeepsControlValue(t *testing.T) {
	// GIVEN
	loop := NewLoop(constantPid(0), 0, time.Second)
	loop.SetControlValue(42)

	// WHEN
	active := loop.ToggleMode()

	// THEN
	assert.True(t, active)
	assert.Equal(t, uint8(42), loop.ControlValue())

	// WHEN
	active = loop.ToggleMode()

	// THEN
	assert.False(t, active)
	assert.Equal(t, uint8(42), loop.ControlValue())
}

func TestSetLowValue_ReclampsControlValue(t *testing.T) {
	// GIVEN
	loop := NewLoop(constantPid(0), 0, time.Second)
	loop.SetControlValue(50)

	// WHEN
	loop.SetLowValue(80)

	// THEN
	assert.Equal(t, uint8(80), loop.LowValue())
	assert.Equal(t, uint8(80), loop.ControlValue())
}

func TestLoop_WithPidLoopConverges(t *testing.T) {
	// GIVEN
	loop := NewLoop(NewPid(2, 0.5, 0, 0, 0), 0, time.Second)
	loop.SetActive(true)
	loop.SetSetpoint(60)
	humidity := 40.0

	// WHEN
	for i := 0; i < 200; i++ {
		loop.Sample(humidity)
		loop.Step()
		// first order plant: humidity follows the valve opening
		humidity += (float64(loop.ControlValue())/255*100 - humidity) * 0.1
	}

	// THEN
	assert.InDelta(t, 60, humidity, 1.5)
}
