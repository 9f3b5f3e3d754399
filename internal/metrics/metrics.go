package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"socialfeed/internal/models"
)

type Metrics struct {
	registry     *prometheus.Registry
	syncTotal    *prometheus.CounterVec
	syncDuration *prometheus.HistogramVec
	feedServed   *prometheus.CounterVec
	seedTotal    *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	storedPosts  *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		syncTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_sync_total",
			Help: "Sync attempts by source and status.",
		}, []string{"source", "status"}),
		syncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "socialfeed_sync_duration_seconds",
			Help:    "Duration of sync attempts.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		feedServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_feed_served_total",
			Help: "Feed reads by source and origin (store, provider, empty).",
		}, []string{"source", "origin"}),
		seedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_seed_total",
			Help: "Seed runs by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		storedPosts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "socialfeed_stored_posts",
			Help: "Rows written by the last successful sync per source.",
		}, []string{"source"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.syncTotal,
		m.syncDuration,
		m.feedServed,
		m.seedTotal,
		m.httpRequests,
		m.storedPosts,
	)

	return m
}

func (m *Metrics) ObserveSync(result models.SyncResult, elapsed time.Duration) {
	m.syncTotal.WithLabelValues(string(result.Source), string(result.Status)).Inc()
	m.syncDuration.WithLabelValues(string(result.Source)).Observe(elapsed.Seconds())
	if result.Status == models.StatusSuccess && result.Count > 0 {
		m.storedPosts.WithLabelValues(string(result.Source)).Set(float64(result.Count))
	}
}

func (m *Metrics) ObserveFeed(source models.Source, origin string) {
	m.feedServed.WithLabelValues(string(source), origin).Inc()
}

func (m *Metrics) ObserveSeed(outcome string) {
	m.seedTotal.WithLabelValues(outcome).Inc()
}

// InstrumentHandler - счетчик запросов по методу и коду ответа
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.httpRequests, next)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
