package status

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/qdm12/reprint"
)

const controllerKey = "controller"

type LoopStatus struct {
	ProcessVariable float64 `json:"processVariable"`
	Setpoint        uint8   `json:"setpoint"`
	ControlValue    uint8   `json:"controlValue"`
}

// Status is a point in time view of the controller, published by the scheduler goroutine
type Status struct {
	// Millis is the controller uptime in milliseconds
	Millis int64  `json:"millis"`
	Mode   string `json:"mode"`
	Active bool   `json:"active"`

	Humidity     float64 `json:"humidity"`
	Temperature  float64 `json:"temperature"`
	Setpoint     uint8   `json:"setpoint"`
	ControlValue uint8   `json:"controlValue"`

	HumidValve uint8 `json:"humidValve"`
	DryValve   uint8 `json:"dryValve"`

	// Inner holds the wet and dry flow loops of a cascade controller
	Inner []LoopStatus `json:"inner,omitempty"`
	// CombinedControlValue aggregates the inner loop control values of a cascade controller
	CombinedControlValue uint8     `json:"combinedControlValue,omitempty"`
	Thermistors          []float64 `json:"thermistors,omitempty"`

	// AverageHumidity is the mean over the telemetry window
	AverageHumidity float64 `json:"averageHumidity"`
}

// Reading is the last value of a sensor
type Reading struct {
	Id      string    `json:"id"`
	Value   float64   `json:"value"`
	Updated time.Time `json:"updated"`
}

var (
	controllers = cmap.New[Status]()
	Readings    = cmap.New[Reading]()
)

// Publish replaces the current status
func Publish(s Status) {
	controllers.Set(controllerKey, reprint.This(s).(Status))
}

// Current returns a copy of the last published status
func Current() (Status, bool) {
	s, ok := controllers.Get(controllerKey)
	if !ok {
		return Status{}, false
	}
	return reprint.This(s).(Status), true
}

// Record stores the last value of a sensor
func Record(id string, value float64, now time.Time) {
	Readings.Set(id, Reading{Id: id, Value: value, Updated: now})
}

// Clear removes all published values
func Clear() {
	controllers.Clear()
	Readings.Clear()
}
