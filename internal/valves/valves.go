// Package valves drives the humid and dry air valves.
package valves

import (
	"fmt"

	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/simulation"
	"github.com/humidistat/humidistat/internal/ui"
)

type ValveId string

const (
	Humid ValveId = "humid"
	Dry   ValveId = "dry"
)

type Valve interface {
	GetId() ValveId
	// SetValue applies the given actuation, 0 closes the valve
	SetValue(value uint8) error
}

// Actuator sets the actuation of a valve
type Actuator interface {
	SetValve(id ValveId, value uint8) error
}

func NewValve(id ValveId, config configuration.ValveConfig, chamber *simulation.Chamber) (Valve, error) {
	if config.File != nil {
		return &FileValve{Id: id, Config: *config.File}, nil
	}

	if config.Cmd != nil {
		return &CmdValve{Id: id, Config: *config.Cmd}, nil
	}

	if config.Simulated != nil {
		if chamber == nil {
			return nil, fmt.Errorf("valve %s: simulated valve without simulation", id)
		}
		return &SimulatedValve{Id: id, Chamber: chamber}, nil
	}

	return nil, fmt.Errorf("no matching valve type for valve: %s", id)
}

// Pair is the Actuator of a humid and a dry valve.
// Unchanged values are not written again.
type Pair struct {
	valves map[ValveId]Valve
	last   map[ValveId]uint8
}

func NewPair(humid Valve, dry Valve) *Pair {
	return &Pair{
		valves: map[ValveId]Valve{Humid: humid, Dry: dry},
		last:   map[ValveId]uint8{},
	}
}

func (p *Pair) SetValve(id ValveId, value uint8) error {
	valve, ok := p.valves[id]
	if !ok || valve == nil {
		return fmt.Errorf("unknown valve: %s", id)
	}
	if last, ok := p.last[id]; ok && last == value {
		return nil
	}
	if err := valve.SetValue(value); err != nil {
		// forget the last value, so the write is retried next time
		delete(p.last, id)
		return err
	}
	p.last[id] = value
	return nil
}

// Apply sets both valves, failures are logged and do not stop the other valve
func (p *Pair) Apply(humid uint8, dry uint8) {
	if err := p.SetValve(Humid, humid); err != nil {
		ui.Error("Error setting valve %s: %v", Humid, err)
	}
	if err := p.SetValve(Dry, dry); err != nil {
		ui.Error("Error setting valve %s: %v", Dry, err)
	}
}

// Close closes both valves
func (p *Pair) Close() error {
	var result error
	for _, id := range []ValveId{Humid, Dry} {
		delete(p.last, id)
		if err := p.SetValve(id, 0); err != nil {
			result = err
		}
	}
	return result
}
