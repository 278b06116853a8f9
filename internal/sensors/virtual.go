package sensors

// VirtualSensor returns a value that is set programmatically
type VirtualSensor struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Err   error   `json:"-"`
}

func (sensor *VirtualSensor) GetId() string {
	return sensor.Name
}

func (sensor *VirtualSensor) GetValue() (float64, error) {
	return sensor.Value, sensor.Err
}
