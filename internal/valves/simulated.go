package valves

import "github.com/humidistat/humidistat/internal/simulation"

type SimulatedValve struct {
	Id      ValveId
	Chamber *simulation.Chamber
}

func (valve *SimulatedValve) GetId() ValveId {
	return valve.Id
}

func (valve *SimulatedValve) SetValue(value uint8) error {
	valve.Chamber.SetValve(string(valve.Id), value)
	return nil
}
