package valves

import (
	"fmt"

	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/util"
)

// FileValve writes the actuation to a file, e.g. a sysfs pwm output
type FileValve struct {
	Id     ValveId
	Config configuration.FileValveConfig
}

func (valve *FileValve) GetId() ValveId {
	return valve.Id
}

func (valve *FileValve) SetValue(value uint8) error {
	path, err := util.ExpandHomeDir(valve.Config.Path)
	if err != nil {
		return err
	}
	if valve.Config.Atomic {
		err = util.WriteIntToFileAtomic(int(value), path)
	} else {
		err = util.WriteIntToFile(int(value), path)
	}
	if err != nil {
		return fmt.Errorf("valve %s: %w", valve.Id, err)
	}
	return nil
}
