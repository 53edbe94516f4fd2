package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveIntent("weather")
	m.ObserveIntent("weather")
	m.ObserveWeather(WeatherTimeout)
	m.ObserveSpeak(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.intents.WithLabelValues("weather")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.weatherLookups.WithLabelValues(WeatherTimeout)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.speakRequests.WithLabelValues("false")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveIntent("help")
		m.ObserveWeather(WeatherOK)
		m.ObserveTranscription("ok")
		m.ObserveSpeak(true)
	})
	assert.NotNil(t, m.Handler())
}
