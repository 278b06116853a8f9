package configuration

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type ControllerMode string

const (
	ModeSingle  ControllerMode = "single"
	ModeCascade ControllerMode = "cascade"
)

func (m ControllerMode) IsCascade() bool {
	return m == ModeCascade
}

// ParseControllerMode accepts the mode names case-insensitively
func ParseControllerMode(value string) (ControllerMode, error) {
	switch mode := ControllerMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case ModeSingle, ModeCascade:
		return mode, nil
	case "":
		return ModeSingle, nil
	default:
		return "", fmt.Errorf("unknown controller mode '%s', use one of: single | cascade", value)
	}
}

// ControllerModeHookFunc returns a mapstructure decode hook for ControllerMode
func ControllerModeHookFunc() mapstructure.DecodeHookFuncType {
	modeType := reflect.TypeOf(ControllerMode(""))
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != modeType {
			return data, nil
		}
		value, ok := data.(string)
		if !ok {
			return data, nil
		}
		return ParseControllerMode(value)
	}
}
