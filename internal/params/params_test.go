package params

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_FollowsBoundStorage(t *testing.T) {
	// GIVEN
	var b uint8
	var w uint16
	var f float64

	// WHEN
	pb := NewUint8("LV", &b)
	pw := NewUint16("dt", &w)
	pf := NewFloat("Kp", &f)

	// THEN
	assert.Equal(t, KindUint8, pb.Kind())
	assert.Equal(t, KindUint16, pw.Kind())
	assert.Equal(t, KindFloat, pf.Kind())
}

func TestAdjust_Uint8Saturates(t *testing.T) {
	// GIVEN
	v := uint8(250)
	p := NewUint8("LV", &v)

	// WHEN
	p.Adjust(100)

	// THEN
	assert.Equal(t, uint8(255), v)

	// WHEN
	p.Adjust(-1000)

	// THEN
	assert.Equal(t, uint8(0), v)
}

func TestAdjust_Uint16Saturates(t *testing.T) {
	// GIVEN
	v := uint16(65000)
	p := NewUint16("dt", &v)

	// WHEN
	p.Adjust(1000)

	// THEN
	assert.Equal(t, uint16(math.MaxUint16), v)

	// WHEN
	p.Adjust(-100)

	// THEN
	assert.Equal(t, uint16(65435), v)
}

func TestAdjust_FloatThousandths(t *testing.T) {
	// GIVEN
	v := 1.0
	p := NewFloat("Kp", &v)

	// WHEN
	p.Adjust(1)
	p.Adjust(100)

	// THEN
	assert.InDelta(t, 1.101, v, 1e-9)
	assert.InDelta(t, 1.101, p.Value(), 1e-9)

	// WHEN
	p.Adjust(-2000)

	// THEN
	assert.InDelta(t, -0.899, v, 1e-9)
}

func TestAdjust_FloatRepeatedEditsStayOnGrid(t *testing.T) {
	// GIVEN
	v := 0.0
	p := NewFloat("Ki", &v)

	// WHEN
	for i := 0; i < 1000; i++ {
		p.Adjust(1)
	}

	// THEN
	assert.Equal(t, 1.0, v)
}

func TestAdjust_FloatOffGridKeepsDecimals(t *testing.T) {
	// GIVEN
	v := 0.0525
	p := NewFloat("Ki", &v)

	// WHEN
	p.Adjust(1)

	// THEN
	assert.Equal(t, 0.0535, v)

	// WHEN
	p.Adjust(-2)

	// THEN
	assert.Equal(t, 0.0515, v)
}

func TestRender_Integer(t *testing.T) {
	// GIVEN
	v := uint16(500)
	p := NewUint16("dt", &v)

	// WHEN
	result := p.Render()

	// THEN
	assert.Equal(t, "dt         500", result)
	assert.Equal(t, "  500", p.RenderValue())
}

func TestRender_Float(t *testing.T) {
	// GIVEN
	v := 2.5
	p := NewFloat("Kp", &v)

	// WHEN
	result := p.Render()

	// THEN
	assert.Equal(t, "Kp        2.500", result)
	assert.Equal(t, " 2.500", p.RenderValue())
}

func TestRender_FloatNegative(t *testing.T) {
	// GIVEN
	v := -0.25
	p := NewFloat("Kd", &v)

	// WHEN
	result := p.RenderValue()

	// THEN
	assert.Equal(t, "-0.250", result)
}

func TestRender_FixedWidth(t *testing.T) {
	// GIVEN
	a := uint8(1)
	b := uint8(255)

	// WHEN
	ra := NewUint8("LV", &a).Render()
	rb := NewUint8("LV", &b).Render()

	// THEN
	assert.Equal(t, len(ra), len(rb))
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		value    float64
		expected int
	}{
		{0, 0},
		{0.5, 0},
		{9, 0},
		{99, 1},
		{100, 2},
		{-100, 2},
		{1234.5, 3},
	}

	for _, tt := range tests {
		// GIVEN
		v := tt.value
		p := NewFloat("x", &v)

		// WHEN
		result := p.Magnitude()

		// THEN
		assert.Equal(t, tt.expected, result, "value %v", tt.value)
	}
}

func TestMagnitude_Integer(t *testing.T) {
	// GIVEN
	v := uint16(1000)
	p := NewUint16("dt", &v)

	// WHEN
	result := p.Magnitude()

	// THEN
	assert.Equal(t, 3, result)
}

func TestDigitStep(t *testing.T) {
	assert.Equal(t, 1000, DigitStep(0))
	assert.Equal(t, 100, DigitStep(1))
	assert.Equal(t, 10, DigitStep(2))
	assert.Equal(t, 1, DigitStep(3))
}

func TestDigitOffset_Integer(t *testing.T) {
	// GIVEN
	v := uint16(1234)
	p := NewUint16("dt", &v)
	rendered := p.Render()

	for digit, expected := range []byte("1234") {
		// WHEN
		offset, err := DigitOffset(p, digit)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, expected, rendered[offset])
	}
}

func TestDigitOffset_FloatSkipsDecimalPoint(t *testing.T) {
	// GIVEN
	v := 1.234
	p := NewFloat("Kp", &v)
	rendered := p.Render()

	for digit, expected := range []byte("1234") {
		// WHEN
		offset, err := DigitOffset(p, digit)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, expected, rendered[offset])
	}
}

func TestDigitOffset_FloatWideIntegerPart(t *testing.T) {
	// GIVEN
	v := 12.345
	p := NewFloat("Kp", &v)
	rendered := p.Render()

	// WHEN
	ones, err := DigitOffset(p, 0)
	require.NoError(t, err)
	thousandths, err := DigitOffset(p, 3)
	require.NoError(t, err)

	// THEN
	assert.Equal(t, byte('2'), rendered[ones])
	assert.Equal(t, byte('5'), rendered[thousandths])
	assert.Equal(t, len(rendered)-1, thousandths)
	assert.True(t, strings.HasSuffix(rendered, "12.345"))
}

func TestDigitOffset_OutOfRange(t *testing.T) {
	// GIVEN
	v := uint8(1)
	p := NewUint8("LV", &v)

	// WHEN
	_, errLow := DigitOffset(p, -1)
	_, errHigh := DigitOffset(p, 4)

	// THEN
	assert.Error(t, errLow)
	assert.Error(t, errHigh)
}
