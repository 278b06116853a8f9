package valves

import (
	"fmt"
	"strconv"
	"time"

	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/util"
)

const cmdTimeout = 2 * time.Second

// CmdValve calls an executable with the actuation as last argument
type CmdValve struct {
	Id     ValveId
	Config configuration.CmdValveConfig
}

func (valve *CmdValve) GetId() ValveId {
	return valve.Id
}

func (valve *CmdValve) SetValue(value uint8) error {
	args := append(append([]string{}, valve.Config.Args...), strconv.Itoa(int(value)))
	_, err := util.SafeCmdExecution(valve.Config.Exec, args, cmdTimeout)
	if err != nil {
		return fmt.Errorf("valve %s: %w", valve.Id, err)
	}
	return nil
}
