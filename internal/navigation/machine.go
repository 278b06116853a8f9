package navigation

import (
	"errors"
	"time"

	"github.com/humidistat/humidistat/internal/control_loop"
	"github.com/humidistat/humidistat/internal/display"
	"github.com/humidistat/humidistat/internal/input"
	"github.com/humidistat/humidistat/internal/params"
	"github.com/humidistat/humidistat/internal/scheduler"
	"github.com/humidistat/humidistat/internal/settings"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/humidistat/humidistat/internal/util"
)

type Machine struct {
	state State

	humidistat control_loop.Humidistat
	config     *settings.Config
	parameters []params.Parameter

	reader   input.Reader
	display  display.Display
	readings ReadingsSource

	options     Options
	inputGate   *scheduler.Gate
	refreshGate *scheduler.Gate
	// start is the reference for blinking
	start time.Time
}

func NewMachine(
	humidistat control_loop.Humidistat,
	config *settings.Config,
	parameters []params.Parameter,
	reader input.Reader,
	d display.Display,
	readings ReadingsSource,
	options Options,
	start time.Time,
) (*Machine, error) {
	if len(parameters) == 0 {
		return nil, errors.New("at least one tunable parameter is required")
	}
	if humidistat == nil || config == nil || reader == nil || d == nil {
		return nil, errors.New("humidistat, config, input and display are required")
	}
	return &Machine{
		state: State{
			Digit: params.EditableDigits - 1,
		},
		humidistat:  humidistat,
		config:      config,
		parameters:  parameters,
		reader:      reader,
		display:     d,
		readings:    readings,
		options:     options,
		inputGate:   scheduler.NewGate(options.InputInterval),
		refreshGate: scheduler.NewGate(options.RefreshInterval),
		start:       start,
	}, nil
}

// Task returns the scheduler task running Update every turn, input and redraw are gated internally
func (m *Machine) Task() scheduler.Task {
	return scheduler.Task{
		Name: "ui",
		Run:  m.Update,
	}
}

// State returns a copy of the current navigation state
func (m *Machine) State() State {
	return m.state
}

// Update runs one scheduler turn of the interface: the save cooldown counts
// down, input is polled if the debounce interval has passed, and the display
// is redrawn after handled input or when the refresh interval has passed.
func (m *Machine) Update(now time.Time) {
	if m.state.SaveCooldown > 0 {
		m.state.SaveCooldown--
	}

	handled := false
	if m.inputGate.Enter(now) {
		button, heldFor := m.reader.Read(now)
		handled = m.HandleInput(button, heldFor)
	}

	if handled || m.refreshGate.Ready(now) {
		m.Draw(now)
	}
}

// HandleInput applies a button press and reports whether it changed anything
func (m *Machine) HandleInput(button input.Button, heldFor time.Duration) bool {
	if button == input.None {
		return false
	}
	switch m.state.Tab {
	case Main:
		return m.handleInputMain(button, heldFor)
	case Config:
		return m.handleInputConfig(button)
	}
	return false
}

func (m *Machine) handleInputMain(button input.Button, heldFor time.Duration) bool {
	delta := 0
	switch button {
	case input.Left:
		m.state.Tab = Config
		return true
	case input.Select:
		m.humidistat.ToggleMode()
		return true
	case input.Up:
		delta = 1
	case input.Down:
		delta = -1
	default:
		return false
	}

	// coarse adjustment while held
	if heldFor > m.options.ShortPressDuration {
		delta *= m.options.ShortPressMultiplier
	}
	if heldFor > m.options.LongPressDuration {
		delta *= m.options.LongPressMultiplier
	}

	if m.humidistat.Active() {
		m.humidistat.AdjustSetpoint(delta)
	} else {
		m.humidistat.AdjustControlValue(delta)
	}
	return true
}

func (m *Machine) handleInputConfig(button input.Button) bool {
	switch m.state.Selection {
	case ParameterList:
		return m.handleInputParameterList(button)
	case DigitEdit:
		return m.handleInputDigitEdit(button)
	case ActionMenu:
		return m.handleInputActionMenu(button)
	}
	return false
}

func (m *Machine) handleInputParameterList(button input.Button) bool {
	n := len(m.parameters)
	switch button {
	case input.Select:
		m.state.Selection = DigitEdit
	case input.Left:
		m.state.Tab = Main
	case input.Right:
		m.state.Selection = ActionMenu
	case input.Up:
		m.state.Parameter = (m.state.Parameter - 1 + n) % n
	case input.Down:
		m.state.Parameter = (m.state.Parameter + 1) % n
	default:
		return false
	}
	return true
}

func (m *Machine) handleInputDigitEdit(button input.Button) bool {
	switch button {
	case input.Left:
		m.state.Digit = (m.state.Digit - 1 + params.EditableDigits) % params.EditableDigits
	case input.Right:
		m.state.Digit = (m.state.Digit + 1) % params.EditableDigits
	case input.Select:
		m.state.Selection = ParameterList
	case input.Up:
		m.parameters[m.state.Parameter].Adjust(params.DigitStep(m.state.Digit))
	case input.Down:
		m.parameters[m.state.Parameter].Adjust(-params.DigitStep(m.state.Digit))
	default:
		return false
	}
	return true
}

func (m *Machine) handleInputActionMenu(button input.Button) bool {
	switch button {
	case input.Left, input.Right:
		m.state.Selection = ParameterList
	case input.Up, input.Down:
		if m.state.Action == Save {
			m.state.Action = Reset
		} else {
			m.state.Action = Save
		}
	case input.Select:
		m.execute(m.state.Action)
	default:
		return false
	}
	return true
}

func (m *Machine) execute(action Action) {
	switch action {
	case Save:
		if m.state.SaveCooldown != 0 {
			ui.Debug("Ignoring save request, cooldown active for %d more turns", m.state.SaveCooldown)
			return
		}
		if err := m.config.Save(); err != nil {
			ui.Error("Unable to save settings: %v", err)
		} else {
			ui.Success("Settings saved")
		}
		m.humidistat.ApplySettings(*m.config.Snapshot)
		m.state.SaveCooldown = m.options.SaveCooldown
	case Reset:
		m.config.Reset()
		ui.Info("Settings reset to defaults, save to apply them")
	}
}

// visibleParameters returns the index of the first of up to three parameter rows
func (m *Machine) visibleParameters() (first int, count int) {
	count = util.Coerce(len(m.parameters), 0, configRows)
	first = util.Coerce(m.state.Parameter-1, 0, len(m.parameters)-count)
	return first, count
}
