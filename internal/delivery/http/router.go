package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, deps Dependencies) {
	handler := NewHandler(deps)

	app.Get("/", handler.Index)
	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	api := app.Group("/api")
	{
		api.Get("/status", handler.Status)
		api.Get("/history", handler.GetHistory)

		api.Post("/weather", handler.GetWeather)
		api.Post("/chat", handler.Chat)
		api.Post("/voice/recognize", handler.RecognizeVoice)
		api.Post("/speak", handler.Speak)
	}
}
