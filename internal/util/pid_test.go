package util

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPidLoop(t *testing.T) {
	// GIVEN
	p, i, d, f := 1.0, 2.0, 3.0, 4.0

	// WHEN
	pidLoop := NewPidLoop(p, i, d, f, 0, 255)

	// THEN
	assert.Equal(t, p, pidLoop.p)
	assert.Equal(t, i, pidLoop.i)
	assert.Equal(t, d, pidLoop.d)
	assert.Equal(t, f, pidLoop.f)
}

func TestPidLoop_FirstEvaluationIsProportionalOnly(t *testing.T) {
	// GIVEN
	pidLoop := NewPidLoop(2.0, 1.0, 1.0, 0, -100, 100)

	// WHEN
	output := pidLoop.Evaluate(10.0, 5.0, 0, time.Second)

	// THEN
	assert.Equal(t, 10.0, output)
	p, i, d := pidLoop.Terms()
	assert.Equal(t, 10.0, p)
	assert.Equal(t, 0.0, i)
	assert.Equal(t, 0.0, d)
}

func TestPidLoop_P(t *testing.T) {
	// GIVEN
	pidLoop := NewPidLoop(0.01, 0, 0, 0, -1, 1)
	pidLoop.Evaluate(10.0, 5.0, 0, time.Second)

	// WHEN
	output := pidLoop.Evaluate(10.0, 5.0, 0, time.Second)

	// THEN
	assert.InDelta(t, 0.05, output, 0.0001)
}

func TestPidLoop_I(t *testing.T) {
	// GIVEN
	pidLoop := NewPidLoop(0, 0.01, 0, 0, -1, 1)
	pidLoop.Evaluate(10.0, 5.0, 0, time.Second)

	// WHEN
	output := pidLoop.Evaluate(10.0, 5.0, 0, time.Second)

	// THEN
	assert.InDelta(t, 0.05, output, 0.0001)

	// WHEN
	output = pidLoop.Evaluate(10.0, 5.0, output, time.Second)

	// THEN
	assert.InDelta(t, 0.10, output, 0.0001)
}

func TestPidLoop_D(t *testing.T) {
	// GIVEN
	pidLoop := NewPidLoop(0, 0, 0.01, 0, -1, 1)
	pidLoop.Evaluate(10.0, 5.0, 0, time.Second)

	// WHEN
	output := pidLoop.Evaluate(10.0, 8.0, 0, time.Second)

	// THEN
	assert.InDelta(t, -0.03, output, 0.0001)
}

func TestPidLoop_FeedForward(t *testing.T) {
	// GIVEN
	pidLoop := NewPidLoop(0, 0, 0, 0.5, 0, 255)

	// WHEN
	output := pidLoop.Evaluate(100.0, 100.0, 0, time.Second)

	// THEN
	assert.Equal(t, 50.0, output)
}

func TestPidLoop_OutputIsClamped(t *testing.T) {
	// GIVEN
	pidLoop := NewPidLoop(100, 0, 0, 0, 20, 255)

	// WHEN
	high := pidLoop.Evaluate(100, 0, 0, time.Second)
	low := pidLoop.Evaluate(0, 100, high, time.Second)

	// THEN
	assert.Equal(t, 255.0, high)
	assert.Equal(t, 20.0, low)
}

func TestPidLoop_AntiWindup(t *testing.T) {
	// GIVEN
	pidLoop := NewPidLoop(0, 1, 0, 0, 0, 10)
	pidLoop.Evaluate(100, 0, 0, time.Second)

	// WHEN
	// output is saturated at max, the error keeps pushing upwards
	pidLoop.Evaluate(100, 0, 10, time.Second)
	pidLoop.Evaluate(100, 0, 10, time.Second)

	// THEN
	_, i, _ := pidLoop.Terms()
	assert.Equal(t, 0.0, i)
}

func TestPidLoop_NaNMeasurementHoldsOutput(t *testing.T) {
	// GIVEN
	pidLoop := NewPidLoop(1, 1, 1, 0, 0, 255)

	// WHEN
	output := pidLoop.Evaluate(50, math.NaN(), 42, time.Second)

	// THEN
	assert.Equal(t, 42.0, output)
}

func TestPidLoop_ZeroIntervalHoldsOutput(t *testing.T) {
	// GIVEN
	pidLoop := NewPidLoop(1, 1, 1, 0, 0, 255)
	pidLoop.Evaluate(50, 40, 0, time.Second)

	// WHEN
	output := pidLoop.Evaluate(50, 40, 17, 0)

	// THEN
	assert.Equal(t, 17.0, output)
}

func TestPidLoop_Reset(t *testing.T) {
	// GIVEN
	pidLoop := NewPidLoop(0, 1, 0, 0, -100, 100)
	pidLoop.Evaluate(10, 5, 0, time.Second)
	pidLoop.Evaluate(10, 5, 0, time.Second)

	// WHEN
	pidLoop.Reset()
	output := pidLoop.Evaluate(10, 5, 0, time.Second)

	// THEN
	assert.Equal(t, 0.0, output)
}
