package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent_Empty(t *testing.T) {
	// GIVEN
	Clear()

	// WHEN
	_, ok := Current()

	// THEN
	assert.False(t, ok)
}

func TestPublish_ReturnsCopies(t *testing.T) {
	// GIVEN
	Clear()
	s := Status{
		Mode:        "cascade",
		Humidity:    45.5,
		Thermistors: []float64{20, 21},
		Inner:       []LoopStatus{{ProcessVariable: 10, Setpoint: 20, ControlValue: 30}},
	}

	// WHEN
	Publish(s)
	s.Thermistors[0] = 99
	current, ok := Current()
	require.True(t, ok)
	current.Inner[0].Setpoint = 0
	again, _ := Current()

	// THEN
	assert.Equal(t, 45.5, current.Humidity)
	assert.Equal(t, []float64{20, 21}, current.Thermistors)
	assert.EqualValues(t, 20, again.Inner[0].Setpoint)
}

func TestRecord(t *testing.T) {
	// GIVEN
	Clear()
	now := time.Unix(10, 0)

	// WHEN
	Record("humidity", 50, now)
	Record("humidity", 51, now.Add(time.Second))

	// THEN
	reading, ok := Readings.Get("humidity")
	require.True(t, ok)
	assert.Equal(t, 51.0, reading.Value)
	assert.Equal(t, 1, Readings.Count())
}
