package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voiceassist/backend/internal/domain"
	"github.com/voiceassist/backend/internal/metrics"
	"github.com/voiceassist/backend/pkg/utils"
)

const (
	msgNoCity   = "Please specify a city. For example, say 'weather in London' or 'weather for New York'."
	msgGreeting = "Hello! I'm your voice assistant. I can help you with weather information. Just ask me about the weather in any city!"
	msgHelp     = "I can help you with weather information. Try saying 'weather in [city name]' or 'what's the weather like in [city name]'."
	msgFallback = "I can help you with weather information, time, and date. Try asking about the weather in a city!"
)

var weatherKeywords = []string{"weather", "temperature", "temp", "climate"}

type rule struct {
	intent  domain.Intent
	matches func(text string) bool
	handle  func(ctx context.Context, text string) domain.CommandResult
}

// Router maps free-form text to a capability. Rules are checked in order
// with plain substring matching; the first match wins.
type Router struct {
	weather WeatherFetcher
	now     func() time.Time
	metrics *metrics.Metrics
	rules   []rule
}

// NewRouter creates a router delegating weather questions to weather
func NewRouter(weather WeatherFetcher, m *metrics.Metrics) *Router {
	r := &Router{weather: weather, now: time.Now, metrics: m}
	r.rules = []rule{
		{domain.IntentWeather, contains("weather"), r.handleWeather},
		{domain.IntentGreeting, contains("hello", "hi", "hey"), static(msgGreeting)},
		{domain.IntentHelp, contains("help"), static(msgHelp)},
		{domain.IntentTime, contains("time"), r.handleTime},
		{domain.IntentDate, contains("date"), r.handleDate},
	}
	return r
}

// Classify routes text and returns the capability's result
func (r *Router) Classify(ctx context.Context, text string) domain.CommandResult {
	_, result := r.Route(ctx, text)
	return result
}

// Route is Classify that also reports which intent handled the text
func (r *Router) Route(ctx context.Context, text string) (domain.Intent, domain.CommandResult) {
	text = strings.ToLower(strings.TrimSpace(text))

	for _, rl := range r.rules {
		if rl.matches(text) {
			r.metrics.ObserveIntent(string(rl.intent))
			return rl.intent, rl.handle(ctx, text)
		}
	}

	r.metrics.ObserveIntent(string(domain.IntentUnknown))
	return domain.IntentUnknown, domain.Fail(msgFallback)
}

func (r *Router) handleWeather(ctx context.Context, text string) domain.CommandResult {
	city := ExtractCity(text)
	if city == "" {
		return domain.Fail(msgNoCity)
	}
	return r.weather.FetchWeather(ctx, city)
}

func (r *Router) handleTime(_ context.Context, _ string) domain.CommandResult {
	return domain.Succeed(fmt.Sprintf("The current time is %s.", r.now().Format("15:04")), nil)
}

func (r *Router) handleDate(_ context.Context, _ string) domain.CommandResult {
	return domain.Succeed(fmt.Sprintf("Today is %s.", r.now().Format("January 02, 2006")), nil)
}

// ExtractCity pulls a city out of normalized weather text. Everything after
// the first "in" token is the city; failing that, everything after "for".
// Without either token the weather keyword is stripped and the rest is used.
func ExtractCity(text string) string {
	words := strings.Fields(text)

	for _, marker := range []string{"in", "for"} {
		if i := indexOf(words, marker); i >= 0 {
			return strings.Join(words[i+1:], " ")
		}
	}

	for _, keyword := range weatherKeywords {
		if strings.Contains(text, keyword) {
			return strings.TrimSpace(strings.ReplaceAll(text, keyword, ""))
		}
	}
	return ""
}

func indexOf(words []string, target string) int {
	for i, w := range words {
		if w == target {
			return i
		}
	}
	return -1
}

func contains(keywords ...string) func(string) bool {
	return func(text string) bool { return utils.ContainsAny(text, keywords...) }
}

func static(message string) func(context.Context, string) domain.CommandResult {
	return func(context.Context, string) domain.CommandResult { return domain.Succeed(message, nil) }
}
