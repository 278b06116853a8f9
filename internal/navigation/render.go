package navigation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/humidistat/humidistat/internal/control_loop"
	"github.com/humidistat/humidistat/internal/display"
	"github.com/humidistat/humidistat/internal/params"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/humidistat/humidistat/internal/util"
)

const (
	tabBarRow  = 0
	contentRow = 2
	legendRow  = 8
	width      = display.DefaultCols

	modeCol    = 16
	spinnerCol = width - 1

	valueCol  = 4
	detailCol = 12
	wetCol    = 14
	dryCol    = 20

	thermistorRow = 6

	configRows = 3
	actionCol  = 19

	glyphLeft   = '◀'
	glyphUp     = '▲'
	glyphDown   = '▼'
	glyphRight  = '▶'
	glyphSelect = '●'
	glyphSpin   = 0x25f3
)

type termSource interface {
	Terms() (float64, float64, float64)
}

// DrawSplash shows the name of the device until the first regular redraw
func (m *Machine) DrawSplash() {
	d := m.display
	d.Clear()
	title := "Humidistat"
	d.SetCursor((width-len(title))/2, 4)
	d.Print(title)
	if err := d.Flush(); err != nil {
		ui.Debug("Unable to flush display: %v", err)
	}
}

// Draw redraws the whole display
func (m *Machine) Draw(now time.Time) {
	d := m.display
	d.Clear()
	m.drawTabBar()
	switch m.state.Tab {
	case Main:
		m.drawMain(now)
	case Config:
		m.drawConfig()
	}
	if err := d.Flush(); err != nil {
		ui.Debug("Unable to flush display: %v", err)
	}

	m.state.Frame++
	m.refreshGate.Mark(now)
}

func (m *Machine) printAt(col, row int, format string, a ...interface{}) {
	m.display.SetCursor(col, row)
	m.display.Print(fmt.Sprintf(format, a...))
}

// printInverted prints text on a filled background
func (m *Machine) printInverted(col, row int, text string) {
	d := m.display
	d.SetDrawColor(display.ColorSet)
	d.DrawBox(col, row, len(text), 1)
	m.printAt(col, row, "%s", text)
}

// blink prints text during the visible half of the blink period and an equal width blank otherwise
func (m *Machine) blink(now time.Time, col, row int, text string) {
	if m.blinkVisible(now) {
		m.printAt(col, row, "%s", text)
		return
	}
	m.printAt(col, row, "%s", strings.Repeat(" ", len([]rune(text))))
}

func (m *Machine) blinkVisible(now time.Time) bool {
	period := 2 * m.options.BlinkInterval
	if period <= 0 {
		return true
	}
	return now.Sub(m.start)%period >= m.options.BlinkInterval
}

// outOfTolerance reports whether the measurement deviates from the setpoint by more than the tolerance
func (m *Machine) outOfTolerance() bool {
	deviation := math.Abs(float64(m.humidistat.Setpoint()) - m.humidistat.ProcessVariable())
	return deviation > m.options.Tolerance
}

func (m *Machine) drawTabBar() {
	d := m.display

	if m.state.Tab == Main {
		m.printInverted(0, tabBarRow, " Main ")
	} else {
		m.printAt(0, tabBarRow, " Main ")
	}
	if m.state.Tab == Config {
		m.printInverted(6, tabBarRow, " Config ")
	} else {
		m.printAt(6, tabBarRow, " Config ")
	}
	d.DrawVLine(14, tabBarRow, 1)

	switch {
	case m.state.Tab == Main && m.humidistat.Active():
		m.printAt(modeCol, tabBarRow, "auto")
	case m.state.Tab == Main:
		m.printAt(modeCol, tabBarRow, "manual")
	case m.config.LoadedFromStore:
		m.printAt(modeCol, tabBarRow, "EEPROM")
	}

	i := rune(m.state.Frame/2) % 4
	d.DrawGlyph(spinnerCol, tabBarRow, glyphSpin-i)
	d.DrawHLine(0, tabBarRow+1, width)
}

func (m *Machine) drawMain(now time.Time) {
	d := m.display
	h := m.humidistat

	m.printAt(0, contentRow, "PV")
	m.printAt(valueCol, contentRow, "%5.1f%%", util.NanToZero(h.ProcessVariable()))

	if h.Active() {
		m.printInverted(0, contentRow+1, "SP")
	} else {
		m.printAt(0, contentRow+1, "SP")
	}
	setpoint := fmt.Sprintf("%5.1f%%", float64(h.Setpoint()))
	if m.outOfTolerance() {
		m.blink(now, valueCol, contentRow+1, setpoint)
	} else {
		m.printAt(valueCol, contentRow+1, "%s", setpoint)
	}

	if !h.Active() {
		m.printInverted(0, contentRow+2, "CV")
	} else {
		m.printAt(0, contentRow+2, "CV")
	}
	m.printAt(valueCol, contentRow+2, "%5d", h.ControlValue())

	readings := Readings{Temperature: math.NaN()}
	if m.readings != nil {
		readings = m.readings.Readings()
	}

	m.printAt(detailCol, contentRow, "T %6.1fC", util.NanToZero(readings.Temperature))
	switch variant := h.(type) {
	case *control_loop.Cascade:
		m.drawCascade(variant)
	case termSource:
		p, i, dTerm := variant.Terms()
		m.printAt(detailCol, contentRow+1, "P %7.2f", p)
		m.printAt(detailCol, contentRow+2, "I %7.2f", i)
		m.printAt(detailCol, contentRow+3, "D %7.2f", dTerm)
	}

	m.printAt(0, thermistorRow, "NTC")
	for i, temperature := range readings.Thermistors {
		m.printAt(valueCol+i*3, thermistorRow, "%2d", int(util.NanToZero(temperature)))
	}

	d.DrawHLine(0, legendRow-1, width)
	d.DrawGlyph(0, legendRow, glyphLeft)
	m.printAt(2, legendRow, "tab")
	d.DrawGlyph(7, legendRow, glyphUp)
	d.DrawGlyph(8, legendRow, glyphDown)
	m.printAt(10, legendRow, "adj")
	d.DrawGlyph(15, legendRow, glyphSelect)
	m.printAt(17, legendRow, "mode")
}

func (m *Machine) drawCascade(c *control_loop.Cascade) {
	m.printAt(0, contentRow+3, "out")
	m.printAt(valueCol, contentRow+3, "%5d", c.CombinedControlValue())
	m.printAt(wetCol+2, contentRow+1, "wet")
	m.printAt(dryCol+2, contentRow+1, "dry")
	m.printAt(detailCol, contentRow+2, "F")
	m.printAt(detailCol, contentRow+3, "V")
	for i, col := range []int{wetCol, dryCol} {
		inner, err := c.GetInner(i)
		if err != nil {
			ui.Error("Unable to draw inner loop %d: %v", i, err)
			continue
		}
		m.printAt(col, contentRow+2, "%5.1f", util.NanToZero(inner.ProcessVariable()))
		m.printAt(col, contentRow+3, "%5d", inner.ControlValue())
	}
}

func (m *Machine) drawConfig() {
	d := m.display

	first, count := m.visibleParameters()
	for i := 0; i < count; i++ {
		index := first + i
		row := contentRow + i
		parameter := m.parameters[index]
		m.printAt(0, row, "%s", parameter.Render())

		if index != m.state.Parameter || m.state.Selection == ActionMenu {
			continue
		}
		d.SetDrawColor(display.ColorXor)
		switch m.state.Selection {
		case ParameterList:
			d.DrawBox(0, row, params.LabelWidth, 1)
		case DigitEdit:
			col, err := params.DigitOffset(parameter, m.state.Digit)
			if err == nil {
				d.DrawBox(col, row, 1, 1)
			}
		}
		d.SetDrawColor(display.ColorSet)
	}

	m.printAt(actionCol, contentRow+1, "Save")
	m.printAt(actionCol, contentRow+2, "Reset")
	if m.state.Selection == ActionMenu {
		row := contentRow + 1
		if m.state.Action == Reset {
			row = contentRow + 2
		}
		d.SetDrawColor(display.ColorXor)
		d.DrawBox(actionCol, row, 5, 1)
		d.SetDrawColor(display.ColorSet)
	}

	if m.state.SaveCooldown != 0 {
		m.printAt(actionCol, contentRow, "saved%3d", m.cooldownSeconds())
	}

	d.DrawHLine(0, legendRow-1, width)
	switch m.state.Selection {
	case ParameterList:
		d.DrawGlyph(0, legendRow, glyphLeft)
		m.printAt(2, legendRow, "tab")
		d.DrawGlyph(6, legendRow, glyphUp)
		d.DrawGlyph(7, legendRow, glyphDown)
		m.printAt(9, legendRow, "par")
		d.DrawGlyph(13, legendRow, glyphRight)
		m.printAt(15, legendRow, "menu")
		d.DrawGlyph(20, legendRow, glyphSelect)
		m.printAt(22, legendRow, "edit")
	case DigitEdit:
		d.DrawGlyph(0, legendRow, glyphLeft)
		d.DrawGlyph(1, legendRow, glyphRight)
		m.printAt(3, legendRow, "dig")
		d.DrawGlyph(7, legendRow, glyphUp)
		d.DrawGlyph(8, legendRow, glyphDown)
		m.printAt(10, legendRow, "adj")
		d.DrawGlyph(20, legendRow, glyphSelect)
		m.printAt(22, legendRow, "OK")
	case ActionMenu:
		d.DrawGlyph(0, legendRow, glyphLeft)
		m.printAt(2, legendRow, "back")
		d.DrawGlyph(13, legendRow, glyphRight)
		m.printAt(15, legendRow, "back")
		d.DrawGlyph(20, legendRow, glyphSelect)
		m.printAt(22, legendRow, "OK")
	}
}

func (m *Machine) cooldownSeconds() int {
	remaining := time.Duration(m.state.SaveCooldown) * m.options.TurnInterval
	return int(math.Ceil(remaining.Seconds()))
}
