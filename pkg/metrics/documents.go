package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DocumentMetrics records the quote PDF pipeline's behavior.
type DocumentMetrics struct {
	renderDuration *prometheus.HistogramVec
	publishSuccess prometheus.Counter
	publishFailure *prometheus.CounterVec
	signedURLMiss  prometheus.Counter
}

// NewDocumentMetrics registers the document metrics on the provided registerer.
func NewDocumentMetrics(reg prometheus.Registerer) *DocumentMetrics {
	if reg == nil {
		return &DocumentMetrics{}
	}
	renderDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_pdf_render_duration_seconds",
		Help:    "Time spent rendering quote PDFs.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	publishSuccess := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_pdf_publish_success_total",
		Help: "Quote PDFs uploaded and attached successfully.",
	})
	publishFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_pdf_publish_failure_total",
		Help: "Quote PDF publish failures by step.",
	}, []string{"step"})
	signedURLMiss := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_pdf_signed_url_fallback_total",
		Help: "Publishes that fell back to the raw storage path.",
	})
	reg.MustRegister(renderDuration, publishSuccess, publishFailure, signedURLMiss)
	return &DocumentMetrics{
		renderDuration: renderDuration,
		publishSuccess: publishSuccess,
		publishFailure: publishFailure,
		signedURLMiss:  signedURLMiss,
	}
}

// ObserveRender records one render with its outcome.
func (m *DocumentMetrics) ObserveRender(outcome string, d time.Duration) {
	if m == nil || m.renderDuration == nil {
		return
	}
	m.renderDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// PublishSucceeded counts a fully published document.
func (m *DocumentMetrics) PublishSucceeded() {
	if m == nil || m.publishSuccess == nil {
		return
	}
	m.publishSuccess.Inc()
}

// PublishFailed counts a failure at the named pipeline step.
func (m *DocumentMetrics) PublishFailed(step string) {
	if m == nil || m.publishFailure == nil {
		return
	}
	m.publishFailure.WithLabelValues(step).Inc()
}

// SignedURLFellBack counts a degraded publish that used the raw object path.
func (m *DocumentMetrics) SignedURLFellBack() {
	if m == nil || m.signedURLMiss == nil {
		return
	}
	m.signedURLMiss.Inc()
}
