// Package metrics exposes Prometheus instrumentation for the assistant.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the dialogue engine. All
// methods are nil-safe so instrumentation can be omitted in tests.
type ChatMetrics struct {
	messagesTotal     *prometheus.CounterVec
	llmLatency        prometheus.Histogram
	retrievalFailures prometheus.Counter
	leadsSubmitted    prometheus.Counter
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gharfix",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total inbound messages by dialogue mode and outcome",
		}, []string{"mode", "status"}),
		llmLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gharfix",
			Subsystem: "chat",
			Name:      "llm_latency_seconds",
			Help:      "Latency of text-generation calls",
			Buckets:   prometheus.DefBuckets,
		}),
		retrievalFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gharfix",
			Subsystem: "chat",
			Name:      "retrieval_failures_total",
			Help:      "Embedding/index failures degraded to empty context",
		}),
		leadsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gharfix",
			Subsystem: "chat",
			Name:      "leads_submitted_total",
			Help:      "Confirmed bookings handed off to the human channel",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.llmLatency, m.retrievalFailures, m.leadsSubmitted)
	return m
}

func (m *ChatMetrics) ObserveMessage(mode, status string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(mode, status).Inc()
}

func (m *ChatMetrics) ObserveLLMLatency(seconds float64) {
	if m == nil {
		return
	}
	m.llmLatency.Observe(seconds)
}

func (m *ChatMetrics) ObserveRetrievalFailure() {
	if m == nil {
		return
	}
	m.retrievalFailures.Inc()
}

func (m *ChatMetrics) ObserveLeadSubmitted() {
	if m == nil {
		return
	}
	m.leadsSubmitted.Inc()
}
