// Package display provides the drawing primitives the navigation renders with,
// and a character cell canvas implementing them on a terminal.
package display

type DrawColor int

const (
	// ColorClear clears the region
	ColorClear DrawColor = iota
	// ColorSet sets the region
	ColorSet
	// ColorXor inverts the region
	ColorXor
)

// Display is a monochrome character grid addressed by column and row
type Display interface {
	Clear()
	SetCursor(col, row int)
	// Print writes text at the cursor and advances it
	Print(text string)
	DrawHLine(col, row, width int)
	DrawVLine(col, row, height int)
	// DrawBox fills a region using the current draw color
	DrawBox(col, row, width, height int)
	DrawFrame(col, row, width, height int)
	DrawGlyph(col, row int, glyph rune)
	SetDrawColor(color DrawColor)
	// Flush sends the buffer to the device
	Flush() error
	Size() (cols, rows int)
}
