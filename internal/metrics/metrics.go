package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics держит свой registry, чтобы тесты не делили глобальный
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	operations   *prometheus.CounterVec
	fieldErrors  *prometheus.CounterVec
	subscribers  prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gqltour_http_requests_total",
			Help: "Total number of HTTP requests by path and status code",
		}, []string{"path", "code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gqltour_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gqltour_graphql_operations_total",
			Help: "Total number of GraphQL operations by name and outcome",
		}, []string{"operation", "status"}),
		fieldErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gqltour_graphql_field_errors_total",
			Help: "Total number of GraphQL field errors by type, field and error code",
		}, []string{"type", "field", "code"}),
		subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gqltour_subscribers",
			Help: "Number of active GraphQL subscriptions",
		}),
	}
}

// Handler отдает /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Middleware считает запросы и время ответа для одного маршрута
func (m *Metrics) Middleware(path string, next http.Handler) http.Handler {
	labels := prometheus.Labels{"path": path}
	return promhttp.InstrumentHandlerDuration(
		m.httpDuration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.httpRequests.MustCurryWith(labels), next),
	)
}

// SubscriberAdded и SubscriberRemoved вызывает менеджер подписок
func (m *Metrics) SubscriberAdded() {
	m.subscribers.Inc()
}

func (m *Metrics) SubscriberRemoved() {
	m.subscribers.Dec()
}
