package http

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/voiceassist/backend/internal/domain"
	"github.com/voiceassist/backend/internal/metrics"
	"github.com/voiceassist/backend/internal/service"
	"github.com/voiceassist/backend/internal/speech"
)

const (
	msgRequestFailed = "An error occurred while processing your request."
	msgVoiceFailed   = "An error occurred while processing voice input."
	msgChatFailed    = "An error occurred while processing your message."
	msgSpeakFailed   = "An error occurred while processing text-to-speech."
	msgUnintelligible = "Could not understand the audio. Please try speaking more clearly."
	msgSTTDown       = "Speech recognition service is unavailable."
)

// Dependencies are the services the handlers orchestrate
type Dependencies struct {
	Weather    service.WeatherFetcher
	Router     *service.Router
	Recognizer speech.Recognizer
	Speaker    *speech.Speaker
	History    *service.HistoryService
	Metrics    *metrics.Metrics
}

// Handler contains all HTTP handlers
type Handler struct {
	deps Dependencies
	now  func() time.Time
}

// NewHandler creates a new handler
func NewHandler(deps Dependencies) *Handler {
	return &Handler{deps: deps, now: time.Now}
}

type weatherRequest struct {
	City string `json:"city"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type speakRequest struct {
	Text string `json:"text"`
}

// Index serves the landing page
func (h *Handler) Index(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(indexPage)
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "voiceassist-backend",
		"version": "1.0.0",
	})
}

// Status reports which capabilities are available
func (h *Handler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "online",
		"timestamp": h.now().Format(time.RFC3339),
		"features": fiber.Map{
			"weather":           true,
			"voice_recognition": h.deps.Recognizer != nil && h.deps.Recognizer.Available(),
			"text_to_speech":    h.deps.Speaker.Enabled(),
			"chat":              true,
		},
	})
}

// GetWeather looks up weather for the posted city
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	var req weatherRequest
	if err := c.BodyParser(&req); err != nil {
		log.WithError(err).Warn("invalid weather request body")
		return fiber.NewError(fiber.StatusInternalServerError, msgRequestFailed)
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a city name.")
	}

	result := h.deps.Weather.FetchWeather(c.UserContext(), city)
	h.record(domain.SourceWeather, city, domain.IntentWeather, result)

	return c.JSON(result)
}

// Chat routes a text message to a capability
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		log.WithError(err).Warn("invalid chat request body")
		return fiber.NewError(fiber.StatusInternalServerError, msgChatFailed)
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a message.")
	}

	intent, result := h.deps.Router.Route(c.UserContext(), message)
	h.record(domain.SourceChat, message, intent, result)

	return c.JSON(result)
}

// RecognizeVoice transcribes an uploaded clip and routes the transcript
func (h *Handler) RecognizeVoice(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No audio file provided.")
	}

	f, err := file.Open()
	if err != nil {
		log.WithError(err).Error("failed to open audio upload")
		return fiber.NewError(fiber.StatusInternalServerError, msgVoiceFailed)
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		log.WithError(err).Error("failed to read audio upload")
		return fiber.NewError(fiber.StatusInternalServerError, msgVoiceFailed)
	}

	if h.deps.Recognizer == nil {
		h.deps.Metrics.ObserveTranscription("unavailable")
		return c.JSON(domain.Fail(msgSTTDown))
	}

	text, err := h.deps.Recognizer.Transcribe(c.UserContext(), audio)
	switch {
	case errors.Is(err, speech.ErrUnintelligible):
		h.deps.Metrics.ObserveTranscription("unintelligible")
		return c.JSON(domain.Fail(msgUnintelligible))
	case errors.Is(err, speech.ErrServiceUnavailable):
		h.deps.Metrics.ObserveTranscription("unavailable")
		return c.JSON(domain.Fail(msgSTTDown))
	case err != nil:
		h.deps.Metrics.ObserveTranscription("error")
		log.WithError(err).Error("voice recognition failed")
		return fiber.NewError(fiber.StatusInternalServerError, msgVoiceFailed)
	}
	h.deps.Metrics.ObserveTranscription("ok")

	intent, result := h.deps.Router.Route(c.UserContext(), text)
	result.RecognizedText = text
	h.record(domain.SourceVoice, text, intent, result)

	return c.JSON(result)
}

// Speak queues text for speech output and acknowledges immediately
func (h *Handler) Speak(c *fiber.Ctx) error {
	var req speakRequest
	if err := c.BodyParser(&req); err != nil {
		log.WithError(err).Warn("invalid speak request body")
		return fiber.NewError(fiber.StatusInternalServerError, msgSpeakFailed)
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide text to speak.")
	}

	h.deps.Metrics.ObserveSpeak(h.deps.Speaker.Enabled())
	h.deps.Speaker.Speak(text)

	return c.JSON(domain.Succeed("Text is being spoken.", nil))
}

// GetHistory returns recently handled commands
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	if h.deps.History == nil {
		return fiber.NewError(fiber.StatusNotFound, "History is not enabled.")
	}

	data, err := h.deps.History.Recent(c.UserContext(), c.QueryInt("hours", 24))
	if err != nil {
		log.WithError(err).Error("failed to fetch command history")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch command history.")
	}
	if data == nil {
		data = []domain.CommandLog{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

func (h *Handler) record(source, input string, intent domain.Intent, result domain.CommandResult) {
	if h.deps.History != nil {
		h.deps.History.RecordCommand(source, input, intent, result)
	}
}
