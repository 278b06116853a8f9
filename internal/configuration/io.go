package configuration

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

type InputType string

const (
	InputKeyboard InputType = "keyboard"
	InputScript   InputType = "script"
	InputNone     InputType = "none"
)

type InputConfig struct {
	Type InputType `json:"type"`
	// Script is the button sequence replayed by the script input, one entry per input poll,
	// e.g. "left,down,select,up,select"
	Script []string `json:"script,omitempty"`
}

// InputTypeHookFunc returns a mapstructure decode hook for InputType
func InputTypeHookFunc() mapstructure.DecodeHookFuncType {
	inputType := reflect.TypeOf(InputType(""))
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != inputType {
			return data, nil
		}
		value, ok := data.(string)
		if !ok {
			return data, nil
		}
		switch result := InputType(strings.ToLower(value)); result {
		case InputKeyboard, InputScript, InputNone:
			return result, nil
		default:
			return nil, fmt.Errorf("unknown input type '%s', use one of: keyboard | script | none", value)
		}
	}
}

type DisplayConfig struct {
	Enabled bool `json:"enabled"`
}

type TelemetryConfig struct {
	Enabled bool `json:"enabled"`
	// Output is "-" for stdout, a file path, or a serial port like /dev/ttyUSB0
	Output   string `json:"output"`
	Serial   bool   `json:"serial"`
	BaudRate int    `json:"baudRate"`
	// Interval between two lines, defaults to the humidity sample interval
	Interval          time.Duration `json:"interval"`
	RollingWindowSize int           `json:"rollingWindowSize"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}
