package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the lead intake pipeline.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	deliveriesTotal  *prometheus.CounterVec
	deliveryLatency  *prometheus.HistogramVec
	alertsTotal      *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blckops",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead submissions by result (stored, invalid, failed)",
		}, []string{"result"}),
		deliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blckops",
			Subsystem: "leads",
			Name:      "sink_deliveries_total",
			Help:      "Lead delivery attempts per sink and outcome",
		}, []string{"sink", "outcome"}),
		deliveryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blckops",
			Subsystem: "leads",
			Name:      "sink_delivery_seconds",
			Help:      "Latency of a single sink delivery attempt",
			Buckets:   prometheus.DefBuckets,
		}, []string{"sink"}),
		alertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blckops",
			Subsystem: "leads",
			Name:      "alerts_total",
			Help:      "New-lead alert emails by status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.deliveriesTotal, m.deliveryLatency, m.alertsTotal)
	return m
}

func (m *LeadMetrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(result).Inc()
}

// ObserveDelivery records one sink attempt. outcome is "stored", "declined" or "error".
func (m *LeadMetrics) ObserveDelivery(sink, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.deliveriesTotal.WithLabelValues(sink, outcome).Inc()
	m.deliveryLatency.WithLabelValues(sink).Observe(seconds)
}

func (m *LeadMetrics) ObserveAlert(status string) {
	if m == nil {
		return
	}
	m.alertsTotal.WithLabelValues(status).Inc()
}

// CollabMetrics counts collab feed writes.
type CollabMetrics struct {
	createsTotal *prometheus.CounterVec
}

func NewCollabMetrics(reg prometheus.Registerer) *CollabMetrics {
	m := &CollabMetrics{
		createsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blckops",
			Subsystem: "collabs",
			Name:      "creates_total",
			Help:      "Collab create requests by result",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.createsTotal)
	return m
}

func (m *CollabMetrics) ObserveCreate(result string) {
	if m == nil {
		return
	}
	m.createsTotal.WithLabelValues(result).Inc()
}
