package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Weather lookup outcomes
const (
	WeatherOK       = "ok"
	WeatherCached   = "cached"
	WeatherNotFound = "not_found"
	WeatherTimeout  = "timeout"
	WeatherError    = "error"
)

// Metrics holds the process collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	intents        *prometheus.CounterVec
	weatherLookups *prometheus.CounterVec
	transcriptions *prometheus.CounterVec
	speakRequests  *prometheus.CounterVec
}

// New creates and registers the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voiceassist",
			Name:      "intents_total",
			Help:      "Commands routed, by intent.",
		}, []string{"intent"}),
		weatherLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voiceassist",
			Name:      "weather_lookups_total",
			Help:      "Weather lookups, by outcome.",
		}, []string{"outcome"}),
		transcriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voiceassist",
			Name:      "transcriptions_total",
			Help:      "Speech recognition attempts, by outcome.",
		}, []string{"outcome"}),
		speakRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voiceassist",
			Name:      "speak_requests_total",
			Help:      "Text-to-speech requests, by whether the engine was enabled.",
		}, []string{"enabled"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.intents,
		m.weatherLookups,
		m.transcriptions,
		m.speakRequests,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveIntent(intent string) {
	if m != nil {
		m.intents.WithLabelValues(intent).Inc()
	}
}

func (m *Metrics) ObserveWeather(outcome string) {
	if m != nil {
		m.weatherLookups.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveTranscription(outcome string) {
	if m != nil {
		m.transcriptions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveSpeak(enabled bool) {
	if m == nil {
		return
	}
	label := "false"
	if enabled {
		label = "true"
	}
	m.speakRequests.WithLabelValues(label).Inc()
}
