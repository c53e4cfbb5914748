package services

import (
	"sulphur/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

// LatestSource exposes the newest measurement of every metric.
type LatestSource interface {
	Latest() (models.CPUUsage, models.NetUsageRate)
}

// NewPrometheusRegistry returns a registry exposing the newest samples as
// gauges. Values are read from source at scrape time.
func NewPrometheusRegistry(source LatestSource) *prometheus.Registry {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "sulphur",
			Name:      "cpu_usage_percent",
			Help:      "Most recent host-wide CPU usage in percent.",
		}, func() float64 {
			cpuUsage, _ := source.Latest()
			return cpuUsage.Percent()
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "sulphur",
			Name:      "network_throughput_bytes_per_second",
			Help:      "Most recent aggregate network throughput (received + transmitted).",
		}, func() float64 {
			_, netUsageRate := source.Latest()
			return netUsageRate.BytesPerSecond()
		}),
	)

	return registry
}
