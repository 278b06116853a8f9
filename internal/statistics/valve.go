package statistics

import (
	"github.com/humidistat/humidistat/internal/status"
	"github.com/prometheus/client_golang/prometheus"
)

const valveSubsystem = "valve"

type ValveCollector struct {
	value *prometheus.Desc
}

func NewValveCollector() *ValveCollector {
	return &ValveCollector{
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, valveSubsystem, "value"),
			"Current output of the valve",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ValveCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *ValveCollector) Collect(ch chan<- prometheus.Metric) {
	s, ok := status.Current()
	if !ok {
		return
	}
	ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, float64(s.HumidValve), "humid")
	ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, float64(s.DryValve), "dry")
}
