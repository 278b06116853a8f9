// Package telemetry writes one tab separated line per interval with the state of the
// controller, and publishes the same state to the status registry.
package telemetry

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/scheduler"
	"github.com/humidistat/humidistat/internal/status"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/humidistat/humidistat/internal/util"
	"go.bug.st/serial"
)

// Source provides the state of the controller
type Source interface {
	Status() status.Status
}

type Telemetry struct {
	out    io.Writer
	source Source
	start  time.Time

	interval func() time.Duration

	headerWritten bool
	failed        bool

	humidity        *rolling.PointPolicy
	humiditySamples int
}

// New creates a telemetry writer. A nil out only publishes the status.
func New(out io.Writer, source Source, windowSize int, interval func() time.Duration, start time.Time) *Telemetry {
	return &Telemetry{
		out:      out,
		source:   source,
		start:    start,
		interval: interval,
		humidity: util.CreateRollingWindow(windowSize),
	}
}

func (t *Telemetry) Task() scheduler.Task {
	return scheduler.Task{
		Name:     "telemetry",
		Interval: t.interval,
		Run:      t.Update,
	}
}

// Update publishes the current status and writes it as a line
func (t *Telemetry) Update(now time.Time) {
	s := t.source.Status()
	s.Millis = now.Sub(t.start).Milliseconds()

	if !math.IsNaN(s.Humidity) {
		t.humidity.Append(s.Humidity)
		t.humiditySamples++
	}
	s.AverageHumidity = math.NaN()
	if t.humiditySamples > 0 {
		s.AverageHumidity = util.GetWindowAvg(t.humidity)
	}

	status.Publish(s)

	if t.out == nil {
		return
	}
	if err := t.write(s); err != nil {
		if !t.failed {
			ui.Error("Unable to write telemetry: %v", err)
		}
		t.failed = true
		return
	}
	t.failed = false
}

func (t *Telemetry) write(s status.Status) error {
	if !t.headerWritten {
		if _, err := io.WriteString(t.out, FormatHeader(s)+"\n"); err != nil {
			return err
		}
		t.headerWritten = true
	}
	_, err := io.WriteString(t.out, FormatLine(s)+"\n")
	return err
}

// FormatHeader returns the column names matching FormatLine for the given status
func FormatHeader(s status.Status) string {
	columns := []string{"millis", "humidity", "temperature", "setpoint", "controlValue", "active"}
	if len(s.Inner) > 0 {
		columns = append(columns, "wetPV", "wetCV", "dryPV", "dryCV", "combinedCV")
	}
	for i := range s.Thermistors {
		columns = append(columns, fmt.Sprintf("ntc%d", i))
	}
	return strings.Join(columns, "\t")
}

// FormatLine returns the tab separated values of a status
func FormatLine(s status.Status) string {
	active := 0
	if s.Active {
		active = 1
	}
	values := []string{
		fmt.Sprintf("%d", s.Millis),
		formatFloat(s.Humidity),
		formatFloat(s.Temperature),
		fmt.Sprintf("%d", s.Setpoint),
		fmt.Sprintf("%d", s.ControlValue),
		fmt.Sprintf("%d", active),
	}
	for _, inner := range s.Inner {
		values = append(values, formatFloat(inner.ProcessVariable), fmt.Sprintf("%d", inner.ControlValue))
	}
	if len(s.Inner) > 0 {
		values = append(values, fmt.Sprintf("%d", s.CombinedControlValue))
	}
	for _, thermistor := range s.Thermistors {
		values = append(values, formatFloat(thermistor))
	}
	return strings.Join(values, "\t")
}

func formatFloat(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// Open opens the configured telemetry output
func Open(config configuration.TelemetryConfig) (io.WriteCloser, error) {
	switch {
	case config.Output == "-":
		return nopCloser{os.Stdout}, nil
	case config.Serial:
		port, err := serial.Open(config.Output, &serial.Mode{
			BaudRate: config.BaudRate,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open serial port %s: %w", config.Output, err)
		}
		return port, nil
	default:
		path, err := util.ExpandHomeDir(config.Output)
		if err != nil {
			return nil, err
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open telemetry file %s: %w", path, err)
		}
		return file, nil
	}
}
