package domain

// Intent identifies which capability a piece of free-form text was routed to
type Intent string

const (
	IntentWeather  Intent = "weather"
	IntentGreeting Intent = "greeting"
	IntentHelp     Intent = "help"
	IntentTime     Intent = "time"
	IntentDate     Intent = "date"
	IntentUnknown  Intent = "unknown"
)

// CommandResult is the response body shared by the chat, voice and weather endpoints.
// Data is only set on success.
type CommandResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Data           any    `json:"data,omitempty"`
	RecognizedText string `json:"recognized_text,omitempty"`
}

// Succeed builds a successful result
func Succeed(message string, data any) CommandResult {
	return CommandResult{Success: true, Message: message, Data: data}
}

// Fail builds a failed result; failures never carry a payload
func Fail(message string) CommandResult {
	return CommandResult{Success: false, Message: message}
}

// Weather returns the weather payload of a result, if any
func (r CommandResult) Weather() (WeatherSnapshot, bool) {
	switch w := r.Data.(type) {
	case WeatherSnapshot:
		return w, true
	case *WeatherSnapshot:
		if w != nil {
			return *w, true
		}
	}
	return WeatherSnapshot{}, false
}
