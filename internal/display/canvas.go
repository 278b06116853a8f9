package display

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgutz/ansi"
)

const (
	DefaultCols = 28
	DefaultRows = 9

	cursorHome = "\x1b[H"
)

type cell struct {
	glyph    rune
	inverted bool
}

// Canvas is a Display drawing into a cell buffer, flushed to a terminal
type Canvas struct {
	cols, rows int
	cells      [][]cell

	cursorCol, cursorRow int
	color                DrawColor

	out     io.Writer
	inverse func(string) string
	frame   lipgloss.Style
	// rawMode terminates lines with \r\n, required while the keyboard listener owns the terminal
	rawMode bool
}

func NewCanvas(out io.Writer, cols, rows int, rawMode bool) *Canvas {
	c := &Canvas{
		cols:    cols,
		rows:    rows,
		color:   ColorSet,
		out:     out,
		inverse: ansi.ColorFunc("default+i"),
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")),
		rawMode: rawMode,
	}
	c.cells = make([][]cell, rows)
	for i := range c.cells {
		c.cells[i] = make([]cell, cols)
	}
	c.Clear()
	return c
}

func (c *Canvas) Size() (int, int) {
	return c.cols, c.rows
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = cell{glyph: ' '}
		}
	}
	c.cursorCol, c.cursorRow = 0, 0
	c.color = ColorSet
}

func (c *Canvas) SetCursor(col, row int) {
	c.cursorCol, c.cursorRow = col, row
}

func (c *Canvas) SetDrawColor(color DrawColor) {
	c.color = color
}

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row][col]
}

func (c *Canvas) setGlyph(col, row int, glyph rune) {
	if target := c.at(col, row); target != nil {
		target.glyph = glyph
	}
}

func (c *Canvas) Print(text string) {
	for _, r := range text {
		c.setGlyph(c.cursorCol, c.cursorRow, r)
		c.cursorCol++
	}
}

func (c *Canvas) DrawHLine(col, row, width int) {
	for i := 0; i < width; i++ {
		c.setGlyph(col+i, row, '─')
	}
}

func (c *Canvas) DrawVLine(col, row, height int) {
	for i := 0; i < height; i++ {
		c.setGlyph(col, row+i, '│')
	}
}

func (c *Canvas) DrawBox(col, row, width, height int) {
	for y := row; y < row+height; y++ {
		for x := col; x < col+width; x++ {
			target := c.at(x, y)
			if target == nil {
				continue
			}
			switch c.color {
			case ColorClear:
				target.inverted = false
			case ColorSet:
				target.inverted = true
			case ColorXor:
				target.inverted = !target.inverted
			}
		}
	}
}

func (c *Canvas) DrawFrame(col, row, width, height int) {
	if width < 2 || height < 2 {
		return
	}
	c.DrawHLine(col+1, row, width-2)
	c.DrawHLine(col+1, row+height-1, width-2)
	c.DrawVLine(col, row+1, height-2)
	c.DrawVLine(col+width-1, row+1, height-2)
	c.setGlyph(col, row, '┌')
	c.setGlyph(col+width-1, row, '┐')
	c.setGlyph(col, row+height-1, '└')
	c.setGlyph(col+width-1, row+height-1, '┘')
}

func (c *Canvas) DrawGlyph(col, row int, glyph rune) {
	c.setGlyph(col, row, glyph)
}

// Text returns the glyphs of a row without styling
func (c *Canvas) Text(row int) string {
	if row < 0 || row >= c.rows {
		return ""
	}
	var b strings.Builder
	for _, target := range c.cells[row] {
		b.WriteRune(target.glyph)
	}
	return b.String()
}

// Inverted reports whether the cell at col, row is drawn inverted
func (c *Canvas) Inverted(col, row int) bool {
	target := c.at(col, row)
	return target != nil && target.inverted
}

// Render returns the styled buffer inside a border
func (c *Canvas) Render() string {
	lines := make([]string, c.rows)
	for i, row := range c.cells {
		var b strings.Builder
		var run strings.Builder
		inverted := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if inverted {
				b.WriteString(c.inverse(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, target := range row {
			if target.inverted != inverted {
				flush()
				inverted = target.inverted
			}
			run.WriteRune(target.glyph)
		}
		flush()
		lines[i] = b.String()
	}
	rendered := c.frame.Render(strings.Join(lines, "\n"))
	if c.rawMode {
		rendered = strings.ReplaceAll(rendered, "\n", "\r\n")
	}
	return rendered
}

func (c *Canvas) Flush() error {
	if c.out == nil {
		return nil
	}
	_, err := io.WriteString(c.out, cursorHome+c.Render()+"\r\n")
	return err
}
