package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvas_PrintAdvancesCursor(t *testing.T) {
	// GIVEN
	c := NewCanvas(nil, 10, 2, false)

	// WHEN
	c.SetCursor(2, 1)
	c.Print("ab")
	c.Print("c")

	// THEN
	assert.Equal(t, "          ", c.Text(0))
	assert.Equal(t, "  abc     ", c.Text(1))
}

func TestCanvas_PrintClipsAtEdge(t *testing.T) {
	// GIVEN
	c := NewCanvas(nil, 4, 1, false)

	// WHEN
	c.SetCursor(2, 0)
	c.Print("xyz")

	// THEN
	assert.Equal(t, "  xy", c.Text(0))
}

func TestCanvas_XorBoxTwiceRestores(t *testing.T) {
	// GIVEN
	c := NewCanvas(nil, 6, 2, false)
	c.SetDrawColor(ColorSet)
	c.DrawBox(0, 0, 3, 1)

	// WHEN
	c.SetDrawColor(ColorXor)
	c.DrawBox(2, 0, 2, 1)

	// THEN
	assert.True(t, c.Inverted(0, 0))
	assert.True(t, c.Inverted(1, 0))
	assert.False(t, c.Inverted(2, 0))
	assert.True(t, c.Inverted(3, 0))

	// WHEN
	c.DrawBox(2, 0, 2, 1)

	// THEN
	assert.True(t, c.Inverted(2, 0))
	assert.False(t, c.Inverted(3, 0))
}

func TestCanvas_ClearColor(t *testing.T) {
	// GIVEN
	c := NewCanvas(nil, 3, 1, false)
	c.DrawBox(0, 0, 3, 1)

	// WHEN
	c.SetDrawColor(ColorClear)
	c.DrawBox(1, 0, 1, 1)

	// THEN
	assert.True(t, c.Inverted(0, 0))
	assert.False(t, c.Inverted(1, 0))
}

func TestCanvas_Lines(t *testing.T) {
	// GIVEN
	c := NewCanvas(nil, 4, 3, false)

	// WHEN
	c.DrawFrame(0, 0, 4, 3)
	c.DrawGlyph(1, 1, '◳')

	// THEN
	assert.Equal(t, "┌──┐", c.Text(0))
	assert.Equal(t, "│◳ │", c.Text(1))
	assert.Equal(t, "└──┘", c.Text(2))
}

func TestCanvas_ClearResets(t *testing.T) {
	// GIVEN
	c := NewCanvas(nil, 3, 1, false)
	c.Print("abc")
	c.DrawBox(0, 0, 3, 1)

	// WHEN
	c.Clear()

	// THEN
	assert.Equal(t, "   ", c.Text(0))
	assert.False(t, c.Inverted(0, 0))
}

func TestCanvas_Flush(t *testing.T) {
	// GIVEN
	out := &bytes.Buffer{}
	c := NewCanvas(out, 5, 2, true)
	c.Print("Main")
	c.SetCursor(0, 1)
	c.Print("x")

	// WHEN
	err := c.Flush()

	// THEN
	require.NoError(t, err)
	result := out.String()
	assert.True(t, strings.HasPrefix(result, cursorHome))
	assert.Contains(t, result, "Main")
	assert.NotContains(t, strings.ReplaceAll(result, "\r\n", ""), "\n")
}
