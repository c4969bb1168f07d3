package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/fretlab-api/internal/api"
	"github.com/Conceptual-Machines/fretlab-api/internal/config"
	"github.com/Conceptual-Machines/fretlab-api/internal/metrics"
	"github.com/Conceptual-Machines/fretlab-api/internal/riff"
	"github.com/Conceptual-Machines/fretlab-api/internal/theory"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const sentryFlushTimeout = 2 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the HTTP API",
	Long:  `Runs the HTTP API. Configuration is read from the environment and an optional .env file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if _, err := riff.ParseStyle(cfg.DefaultRiffStyle); err != nil {
		return fmt.Errorf("DEFAULT_RIFF_STYLE: %w", err)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "fretlab-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            !cfg.IsProduction(),
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	presets, err := theory.LoadPresets()
	if err != nil {
		sentry.CaptureException(err)
		return fmt.Errorf("failed to load progression presets: %w", err)
	}

	cloudwatch, err := metrics.NewClient(context.Background(), cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to create metrics client: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, presets, cloudwatch, GetVersion())

	log.Printf("🚀 Starting server on port %s (%d progressions loaded)", cfg.Port, len(presets))
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string, len(headers))
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
