package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the advisory service.
type Metrics struct {
	AdvisoryRequests *prometheus.CounterVec   // labels: engine={harvest,mandi,spoilage,context}, outcome={success,error}
	AdvisoryDuration *prometheus.HistogramVec // labels: engine

	// Weather provider metrics.
	WeatherFetches     *prometheus.CounterVec // labels: outcome={success,error,rejected}
	WeatherFallbacks   prometheus.Counter
	WeatherAPIDuration prometheus.Histogram

	// Price dataset metrics.
	PriceRecordsLoaded prometheus.Gauge

	// Advisory event publishing metrics.
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AdvisoryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_advisor",
			Name:      "advisory_requests_total",
			Help:      "Advisory requests by engine and outcome.",
		}, []string{"engine", "outcome"}),
		AdvisoryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agri_advisor",
			Name:      "advisory_duration_seconds",
			Help:      "End-to-end duration of one advisory computation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"engine"}),
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_advisor",
			Name:      "weather_fetches_total",
			Help:      "Weather provider requests by outcome.",
		}, []string{"outcome"}),
		WeatherFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_advisor",
			Name:      "weather_fallbacks_total",
			Help:      "Times a synthetic forecast was substituted for the live provider.",
		}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agri_advisor",
			Name:      "weather_api_duration_seconds",
			Help:      "Open-Meteo request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		PriceRecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "agri_advisor",
			Name:      "price_records_loaded",
			Help:      "Number of price records held in memory.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_advisor",
			Name:      "events_published_total",
			Help:      "Advisory events written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_advisor",
			Name:      "publish_errors_total",
			Help:      "Failed advisory event writes.",
		}),
	}

	prometheus.MustRegister(
		m.AdvisoryRequests,
		m.AdvisoryDuration,
		m.WeatherFetches,
		m.WeatherFallbacks,
		m.WeatherAPIDuration,
		m.PriceRecordsLoaded,
		m.EventsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AdvisoryRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agri_advisor", Name: "advisory_requests_total"}, []string{"engine", "outcome"}),
		AdvisoryDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "agri_advisor", Name: "advisory_duration_seconds"}, []string{"engine"}),
		WeatherFetches:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agri_advisor", Name: "weather_fetches_total"}, []string{"outcome"}),
		WeatherFallbacks:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_advisor", Name: "weather_fallbacks_total"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "agri_advisor", Name: "weather_api_duration_seconds"}),
		PriceRecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "agri_advisor", Name: "price_records_loaded"}),
		EventsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_advisor", Name: "events_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_advisor", Name: "publish_errors_total"}),
	}
}
