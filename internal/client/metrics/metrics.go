// Package metrics defines the Prometheus metrics the client records for
// outgoing API calls. Route labels use path templates ("/groups/{id}"),
// never raw paths, to keep cardinality bounded.
package metrics

import (
	"cmp"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripcart"

// CodeTransportError is the code label used when no HTTP response arrived.
const CodeTransportError = "transport_error"

type Metrics struct {
	// RequestsTotal counts finished API requests.
	// Labels: method, route, code (HTTP status or "transport_error").
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures request latency including body read.
	// Labels: method, route.
	RequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the metrics and registers them with reg. A nil reg means a
// private registry, which keeps tests and multiple clients independent.
// Stats and Handler read back from reg when it is also a Gatherer (a
// *prometheus.Registry is both).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	g, ok := reg.(prometheus.Gatherer)
	if !ok {
		g = prometheus.Gatherers{}
	}

	return &Metrics{
		gatherer: g,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests, by method, route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Duration of API requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Observe records one request. status <= 0 means the transport failed.
// Safe on a nil receiver.
func (m *Metrics) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := CodeTransportError
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.RequestsTotal.WithLabelValues(method, route, code).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RouteStat is the request count for one method, route and status code.
type RouteStat struct {
	Method string
	Route  string
	Code   string
	Count  float64
}

// Stats returns the request counters gathered from the registry, sorted by
// route, method and code.
func (m *Metrics) Stats() ([]RouteStat, error) {
	families, err := m.gatherer.Gather()
	if err != nil {
		return nil, err
	}

	var out []RouteStat
	for _, mf := range families {
		if mf.GetName() != namespace+"_api_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			st := RouteStat{Count: metric.GetCounter().GetValue()}
			for _, lp := range metric.GetLabel() {
				switch lp.GetName() {
				case "method":
					st.Method = lp.GetValue()
				case "route":
					st.Route = lp.GetValue()
				case "code":
					st.Code = lp.GetValue()
				}
			}
			out = append(out, st)
		}
	}

	slices.SortFunc(out, func(a, b RouteStat) int {
		return cmp.Or(
			cmp.Compare(a.Route, b.Route),
			cmp.Compare(a.Method, b.Method),
			cmp.Compare(a.Code, b.Code),
		)
	})
	return out, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
