package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "humidistat"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}

// RegisterAll registers the collectors of all published values
func RegisterAll() {
	Register(NewControllerCollector())
	Register(NewValveCollector())
	Register(NewSensorCollector())
}
