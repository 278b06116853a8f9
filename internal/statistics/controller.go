package statistics

import (
	"github.com/humidistat/humidistat/internal/status"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

var innerLoopNames = []string{"wet", "dry"}

type ControllerCollector struct {
	humidity        *prometheus.Desc
	averageHumidity *prometheus.Desc
	temperature     *prometheus.Desc
	setpoint        *prometheus.Desc
	controlValue    *prometheus.Desc
	active          *prometheus.Desc

	innerProcessVariable *prometheus.Desc
	innerSetpoint        *prometheus.Desc
	innerControlValue    *prometheus.Desc
	combinedControlValue *prometheus.Desc
}

func NewControllerCollector() *ControllerCollector {
	return &ControllerCollector{
		humidity: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "humidity"),
			"Measured relative humidity in percent",
			[]string{"mode"}, nil,
		),
		averageHumidity: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "humidity_avg"),
			"Rolling average of the measured relative humidity",
			[]string{"mode"}, nil,
		),
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "temperature"),
			"Temperature measured by the humidity sensor",
			[]string{"mode"}, nil,
		),
		setpoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "setpoint"),
			"Humidity setpoint in percent",
			[]string{"mode"}, nil,
		),
		controlValue: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "control_value"),
			"Control value of the humidity loop",
			[]string{"mode"}, nil,
		),
		active: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "active"),
			"1 if the controller is in automatic mode",
			[]string{"mode"}, nil,
		),
		innerProcessVariable: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "flow"),
			"Measured flow of an inner loop in percent of full scale",
			[]string{"loop"}, nil,
		),
		innerSetpoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "flow_setpoint"),
			"Flow setpoint of an inner loop",
			[]string{"loop"}, nil,
		),
		innerControlValue: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "flow_control_value"),
			"Control value of an inner loop",
			[]string{"loop"}, nil,
		),
		combinedControlValue: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "combined_control_value"),
			"Aggregate of the inner loop control values",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.humidity
	ch <- collector.averageHumidity
	ch <- collector.temperature
	ch <- collector.setpoint
	ch <- collector.controlValue
	ch <- collector.active
	ch <- collector.innerProcessVariable
	ch <- collector.innerSetpoint
	ch <- collector.innerControlValue
	ch <- collector.combinedControlValue
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	s, ok := status.Current()
	if !ok {
		return
	}
	active := 0.0
	if s.Active {
		active = 1
	}
	ch <- prometheus.MustNewConstMetric(collector.humidity, prometheus.GaugeValue, s.Humidity, s.Mode)
	ch <- prometheus.MustNewConstMetric(collector.averageHumidity, prometheus.GaugeValue, s.AverageHumidity, s.Mode)
	ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, s.Temperature, s.Mode)
	ch <- prometheus.MustNewConstMetric(collector.setpoint, prometheus.GaugeValue, float64(s.Setpoint), s.Mode)
	ch <- prometheus.MustNewConstMetric(collector.controlValue, prometheus.GaugeValue, float64(s.ControlValue), s.Mode)
	ch <- prometheus.MustNewConstMetric(collector.active, prometheus.GaugeValue, active, s.Mode)

	for i, inner := range s.Inner {
		if i >= len(innerLoopNames) {
			break
		}
		name := innerLoopNames[i]
		ch <- prometheus.MustNewConstMetric(collector.innerProcessVariable, prometheus.GaugeValue, inner.ProcessVariable, name)
		ch <- prometheus.MustNewConstMetric(collector.innerSetpoint, prometheus.GaugeValue, float64(inner.Setpoint), name)
		ch <- prometheus.MustNewConstMetric(collector.innerControlValue, prometheus.GaugeValue, float64(inner.ControlValue), name)
	}
	if len(s.Inner) > 0 {
		ch <- prometheus.MustNewConstMetric(collector.combinedControlValue, prometheus.GaugeValue, float64(s.CombinedControlValue))
	}
}
