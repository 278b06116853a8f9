// Package navigation implements the operator interface of the controller: a
// main tab showing and adjusting the loop, and a config tab editing the tunable
// parameters digit by digit, saving them or resetting them to defaults.
package navigation

import "time"

type Tab int

const (
	Main Tab = iota
	Config
)

func (t Tab) String() string {
	if t == Config {
		return "config"
	}
	return "main"
}

type Selection int

const (
	ParameterList Selection = iota
	DigitEdit
	ActionMenu
)

func (s Selection) String() string {
	switch s {
	case DigitEdit:
		return "digit"
	case ActionMenu:
		return "actions"
	default:
		return "parameters"
	}
}

type Action int

const (
	Save Action = iota
	Reset
)

func (a Action) String() string {
	if a == Reset {
		return "reset"
	}
	return "save"
}

// State is the navigation position of the operator interface
type State struct {
	Tab       Tab
	Selection Selection
	// Parameter is the index of the highlighted parameter
	Parameter int
	// Digit is the edited digit, 0 is the most significant
	Digit  int
	Action Action
	// SaveCooldown is the number of scheduler turns until Save is accepted again
	SaveCooldown int
	// Frame counts redraws, it drives the spinner
	Frame uint8
}

type Options struct {
	// InputInterval is the minimum time between two button polls
	InputInterval time.Duration
	// RefreshInterval is the minimum time between two redraws without input
	RefreshInterval time.Duration
	// BlinkInterval is the half period of blinking values
	BlinkInterval time.Duration
	// Tolerance is the setpoint deviation above which the setpoint blinks
	Tolerance float64

	ShortPressDuration   time.Duration
	ShortPressMultiplier int
	LongPressDuration    time.Duration
	LongPressMultiplier  int

	// SaveCooldown is the number of scheduler turns Save is ignored for after saving
	SaveCooldown int
	// TurnInterval is the scheduler turn interval, used to show the cooldown in seconds
	TurnInterval time.Duration
}

// Readings are the auxiliary measurements shown on the main tab
type Readings struct {
	Temperature float64
	Thermistors []float64
}

type ReadingsSource interface {
	Readings() Readings
}
