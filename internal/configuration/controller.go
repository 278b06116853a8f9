package configuration

import "time"

type SchedulerConfig struct {
	// TurnInterval is the pause between two scheduler turns
	TurnInterval time.Duration `json:"turnInterval"`
}

type UiConfig struct {
	// InputInterval is the minimum time between two button polls
	InputInterval time.Duration `json:"inputInterval"`
	// RefreshInterval is the minimum time between two redraws
	RefreshInterval time.Duration `json:"refreshInterval"`
	// BlinkInterval is the half period of out of tolerance values
	BlinkInterval time.Duration `json:"blinkInterval"`
	// Tolerance is the setpoint deviation above which the setpoint blinks
	Tolerance float64 `json:"tolerance"`

	ShortPressDuration   time.Duration `json:"shortPressDuration"`
	ShortPressMultiplier int           `json:"shortPressMultiplier"`
	LongPressDuration    time.Duration `json:"longPressDuration"`
	LongPressMultiplier  int           `json:"longPressMultiplier"`

	// SaveCooldown is the number of scheduler turns during which Save is ignored after saving
	SaveCooldown int `json:"saveCooldown"`
}
