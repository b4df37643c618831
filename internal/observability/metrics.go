package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/dashboard"
)

type Metrics struct {
	gatherer            prometheus.Gatherer
	acquisitions        *prometheus.CounterVec
	acquisitionDuration prometheus.Histogram
	improvementPercent  prometheus.Gauge
	lastSuccess         prometheus.Gauge
	wsClients           prometheus.Gauge
}

// NewMetrics registers the dashboard collectors with reg. reg must also be a
// Gatherer (a *prometheus.Registry or the default registerer).
func NewMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		acquisitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_acquisitions_total",
			Help: "Joint acquisitions by outcome.",
		}, []string{"outcome"}),
		acquisitionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_acquisition_duration_seconds",
			Help:    "Time until all four reads settled.",
			Buckets: prometheus.DefBuckets,
		}),
		improvementPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_ai_improvement_percent",
			Help: "Improvement of the AI period over the manual period, last snapshot.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_last_snapshot_timestamp_seconds",
			Help: "Unix time of the last successful acquisition.",
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_websocket_clients",
			Help: "Connected websocket clients.",
		}),
	}

	reg.MustRegister(
		m.acquisitions,
		m.acquisitionDuration,
		m.improvementPercent,
		m.lastSuccess,
		m.wsClients,
	)
	return m
}

var _ dashboard.Observer = (*Metrics)(nil)

func (m *Metrics) AcquisitionSucceeded(s *dashboard.Snapshot, took time.Duration) {
	if m == nil {
		return
	}
	m.acquisitions.WithLabelValues("success").Inc()
	m.acquisitionDuration.Observe(took.Seconds())
	m.improvementPercent.Set(float64(s.Comparison.Improvement.Percent))
	m.lastSuccess.Set(float64(s.AcquiredAt.Unix()))
}

func (m *Metrics) AcquisitionFailed(_ error, took time.Duration) {
	if m == nil {
		return
	}
	m.acquisitions.WithLabelValues("failure").Inc()
	m.acquisitionDuration.Observe(took.Seconds())
}

func (m *Metrics) ClientConnected() {
	if m == nil {
		return
	}
	m.wsClients.Inc()
}

func (m *Metrics) ClientDisconnected() {
	if m == nil {
		return
	}
	m.wsClients.Dec()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
