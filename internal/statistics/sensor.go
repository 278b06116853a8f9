package statistics

import (
	"github.com/humidistat/humidistat/internal/status"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	value *prometheus.Desc
}

func NewSensorCollector() *SensorCollector {
	return &SensorCollector{
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "value"),
			"Last value of the sensor",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for id, reading := range status.Readings.Items() {
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, reading.Value, id)
	}
}
