package api

import (
	"github.com/Conceptual-Machines/fretlab-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/fretlab-api/internal/api/middleware"
	"github.com/Conceptual-Machines/fretlab-api/internal/config"
	"github.com/Conceptual-Machines/fretlab-api/internal/metrics"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, presets []theory.Progression, cloudwatch *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cloudwatch))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.AllowedOrigins))

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, presets)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	{
		theoryHandler := handlers.NewTheoryHandler(presets)
		v1.GET("/notes", theoryHandler.Notes)
		v1.GET("/qualities", theoryHandler.Qualities)
		v1.GET("/scales", theoryHandler.Scales)
		v1.GET("/progressions", theoryHandler.Progressions)

		shapesHandler := handlers.NewShapesHandler(cloudwatch)
		v1.GET("/shapes", shapesHandler.Shapes)
		v1.GET("/triads", shapesHandler.Triads)

		riffHandler := handlers.NewRiffHandler(cfg, presets, cloudwatch)
		v1.POST("/riffs", riffHandler.Generate)
		v1.POST("/riffs/chord", riffHandler.GenerateChord)
		v1.POST("/riffs/notes/add", riffHandler.AddNote)
		v1.POST("/riffs/notes/update", riffHandler.UpdateNote)
		v1.POST("/riffs/notes/remove", riffHandler.RemoveNote)
		v1.POST("/riffs/tab", riffHandler.Tab)
		v1.POST("/riffs/schedule", riffHandler.Schedule)
		v1.POST("/riffs/midi", riffHandler.MIDI)

		positionHandler := handlers.NewPositionHandler(cfg)
		v1.POST("/positions/find", positionHandler.Find)
		v1.GET("/positions/available", positionHandler.Available)
	}

	return router
}
