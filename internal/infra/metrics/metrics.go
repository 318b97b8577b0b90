// Package metrics records order-flow metrics in a Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"storefront/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Recorder implements service.Metrics over its own registry.
type Recorder struct {
	registry *prometheus.Registry

	ordersCreated        prometheus.Counter
	statusTransitions    *prometheus.CounterVec
	trackingAttach       *prometheus.CounterVec
	paymentIntents       *prometheus.CounterVec
	authzDenials         *prometheus.CounterVec
	externalCallDuration *prometheus.HistogramVec
}

var _ service.Metrics = (*Recorder)(nil)

// New creates a Recorder with Go runtime and process collectors registered.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: registry,
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "orders_created_total",
			Help: "Orders successfully placed.",
		}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "order_status_transitions_total",
			Help: "Applied order status transitions.",
		}, []string{"from", "to"}),
		trackingAttach: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "tracking_attach_total",
			Help: "Tracking artifact attachment attempts by result.",
		}, []string{"result"}),
		paymentIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "payment_intents_total",
			Help: "Payment intent requests by result.",
		}, []string{"result"}),
		authzDenials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "authz_denials_total",
			Help: "Requests rejected by the authorizer.",
		}, []string{"action"}),
		externalCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "external_call_duration_seconds",
			Help:    "Latency of calls to external collaborators.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service"}),
	}

	registry.MustRegister(
		r.ordersCreated,
		r.statusTransitions,
		r.trackingAttach,
		r.paymentIntents,
		r.authzDenials,
		r.externalCallDuration,
	)

	return r
}

// NewMetrics is the fx constructor exposing the recorder as the domain port.
func NewMetrics(r *Recorder) service.Metrics {
	return r
}

func (r *Recorder) OrderCreated() {
	r.ordersCreated.Inc()
}

func (r *Recorder) OrderTransitioned(from, to string) {
	r.statusTransitions.WithLabelValues(from, to).Inc()
}

func (r *Recorder) TrackingAttach(result string) {
	r.trackingAttach.WithLabelValues(result).Inc()
}

func (r *Recorder) PaymentIntent(result string) {
	r.paymentIntents.WithLabelValues(result).Inc()
}

func (r *Recorder) AuthorizationDenied(action string) {
	r.authzDenials.WithLabelValues(action).Inc()
}

func (r *Recorder) ObserveExternalCall(service string, elapsed time.Duration) {
	r.externalCallDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the registry for tests and custom exporters.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
