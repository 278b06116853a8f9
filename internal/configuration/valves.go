package configuration

type ValvesConfig struct {
	Humid ValveConfig `json:"humid"`
	Dry   ValveConfig `json:"dry"`
}

type ValveConfig struct {
	File      *FileValveConfig      `json:"file,omitempty"`
	Cmd       *CmdValveConfig       `json:"cmd,omitempty"`
	Simulated *SimulatedValveConfig `json:"simulated,omitempty"`
}

type FileValveConfig struct {
	// Path to a pwm value file, e.g. /sys/class/hwmon/hwmon0/pwm1
	Path string `json:"path"`
	// Atomic replaces the file instead of writing into it, for regular files read by other processes
	Atomic bool `json:"atomic,omitempty"`
}

type CmdValveConfig struct {
	// Exec is called with Args followed by the valve value
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

type SimulatedValveConfig struct{}
