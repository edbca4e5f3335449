package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - planner prometheus instruments
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	waypoints *prometheus.HistogramVec
	occupied  prometheus.Gauge
}

// NewMetrics - register planner metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_requests_total",
			Help: "Planning requests by kind and result",
		}, []string{"kind", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_duration_seconds",
			Help:    "Planning duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}, []string{"kind"}),
		waypoints: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_waypoints",
			Help:    "Waypoints per planned path",
			Buckets: []float64{2, 3, 5, 10, 20, 50, 100},
		}, []string{"kind"}),
		occupied: factory.NewGauge(prometheus.GaugeOpts{
			Name: "planner_occupied_voxels",
			Help: "Occupied voxels in the loaded scene",
		}),
	}
}

// ObservePlan - record one finished request
func (m *Metrics) ObservePlan(kind, result string, d time.Duration, waypoints int) {
	m.requests.WithLabelValues(kind, result).Inc()
	m.duration.WithLabelValues(kind).Observe(d.Seconds())
	if waypoints > 0 {
		m.waypoints.WithLabelValues(kind).Observe(float64(waypoints))
	}
}

func (m *Metrics) SetOccupiedVoxels(n int) {
	m.occupied.Set(float64(n))
}
