// Package settings holds the persisted tuning snapshot of the controller together
// with its compiled-in defaults and the tunable parameter bindings used by the
// configuration tab.
package settings

import (
	"time"

	"github.com/humidistat/humidistat/internal/params"
)

// Snapshot is the set of tunables kept in non-volatile storage
type Snapshot struct {
	// humidity (outer) loop gains
	HumidityKp float64 `json:"humidityKp" yaml:"humidityKp"`
	HumidityKi float64 `json:"humidityKi" yaml:"humidityKi"`
	HumidityKd float64 `json:"humidityKd" yaml:"humidityKd"`
	HumidityKf float64 `json:"humidityKf" yaml:"humidityKf"`

	// flow (inner) loop gains
	FlowKp float64 `json:"flowKp" yaml:"flowKp"`
	FlowKi float64 `json:"flowKi" yaml:"flowKi"`
	FlowKd float64 `json:"flowKd" yaml:"flowKd"`
	FlowKf float64 `json:"flowKf" yaml:"flowKf"`
	// FlowDt is the inner loop sample interval in milliseconds
	FlowDt uint16 `json:"flowDt" yaml:"flowDt"`

	// TotalFlowrate is the combined wet+dry flow as a fraction of the flow sensor full scale
	TotalFlowrate float64 `json:"totalFlowrate" yaml:"totalFlowrate"`

	// Dt is the humidity loop sample interval in milliseconds
	Dt uint16 `json:"dt" yaml:"dt"`
	// LowValue is the lowest valve actuation that still opens a valve
	LowValue uint8 `json:"lowValue" yaml:"lowValue"`
}

// Defaults returns the compiled-in snapshot used when nothing valid is stored
func Defaults() Snapshot {
	return Snapshot{
		HumidityKp: 2.0,
		HumidityKi: 0.05,
		HumidityKd: 0.5,
		HumidityKf: 0,

		FlowKp: 0.5,
		FlowKi: 1.0,
		FlowKd: 0,
		FlowKf: 1.2,
		FlowDt: 100,

		TotalFlowrate: 0.5,

		Dt:       500,
		LowValue: 140,
	}
}

// SampleInterval returns Dt as a duration
func (s Snapshot) SampleInterval() time.Duration {
	return time.Duration(s.Dt) * time.Millisecond
}

// FlowSampleInterval returns FlowDt as a duration
func (s Snapshot) FlowSampleInterval() time.Duration {
	return time.Duration(s.FlowDt) * time.Millisecond
}

// Store is the non-volatile backing of a Config
type Store interface {
	// Load returns the stored snapshot and whether it was present and valid
	Load() (Snapshot, bool)
	// Save persists the given snapshot
	Save(snapshot Snapshot) error
	// Reset returns the compiled-in defaults, the stored record is left untouched
	Reset() Snapshot
}

// Config is the live snapshot that parameters are bound to
type Config struct {
	// Snapshot is never replaced, only overwritten in place, so bound parameters stay valid
	Snapshot *Snapshot
	// LoadedFromStore is true if the live snapshot was loaded from or saved to the store
	LoadedFromStore bool

	store Store
}

// NewConfig loads the snapshot from the given store, falling back to defaults
func NewConfig(store Store) *Config {
	c := &Config{
		Snapshot: &Snapshot{},
		store:    store,
	}
	c.Load()
	return c
}

// Load replaces the live values with the stored ones, or the defaults if none are stored
func (c *Config) Load() bool {
	if c.store == nil {
		*c.Snapshot = Defaults()
		c.LoadedFromStore = false
		return false
	}
	snapshot, ok := c.store.Load()
	if !ok {
		snapshot = Defaults()
	}
	*c.Snapshot = snapshot
	c.LoadedFromStore = ok
	return ok
}

// Save persists the live values
func (c *Config) Save() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Save(*c.Snapshot); err != nil {
		return err
	}
	c.LoadedFromStore = true
	return nil
}

// Reset overwrites the live values with the compiled-in defaults without persisting them
func (c *Config) Reset() {
	if c.store == nil {
		*c.Snapshot = Defaults()
		return
	}
	*c.Snapshot = c.store.Reset()
}

// Parameters returns the tunable parameters bound to the live snapshot.
// Single stage controllers only expose the humidity loop.
func (c *Config) Parameters(cascade bool) []params.Parameter {
	return Bind(c.Snapshot, cascade)
}

// Bind creates the parameter list for the given snapshot
func Bind(s *Snapshot, cascade bool) []params.Parameter {
	if !cascade {
		return []params.Parameter{
			params.NewFloat("Kp", &s.HumidityKp),
			params.NewFloat("Ki", &s.HumidityKi),
			params.NewFloat("Kd", &s.HumidityKd),
			params.NewUint16("dt", &s.Dt),
			params.NewUint8("LV", &s.LowValue),
		}
	}
	return []params.Parameter{
		params.NewFloat("HC Kp", &s.HumidityKp),
		params.NewFloat("HC Ki", &s.HumidityKi),
		params.NewFloat("HC Kd", &s.HumidityKd),
		params.NewFloat("HC Kf", &s.HumidityKf),
		params.NewFloat("FC Kp", &s.FlowKp),
		params.NewFloat("FC Ki", &s.FlowKi),
		params.NewFloat("FC Kd", &s.FlowKd),
		params.NewFloat("FC Kf", &s.FlowKf),
		params.NewUint16("FC dt", &s.FlowDt),
		params.NewFloat("Total FR", &s.TotalFlowrate),
		params.NewUint16("dt", &s.Dt),
		params.NewUint8("LV", &s.LowValue),
	}
}
