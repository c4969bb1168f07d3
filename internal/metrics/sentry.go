package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Spans are dropped by the SDK when Sentry is not initialised
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordRiffGeneration records a riff generation on the request transaction
func (m *SentryMetrics) RecordRiffGeneration(ctx context.Context, style string, measures, notes int, duration time.Duration, success bool) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("riff.style", style)
		transaction.SetData("riff.measures", measures)
		transaction.SetData("riff.notes", notes)
	}

	span := sentry.StartSpan(ctx, "riff.generate")
	defer span.Finish()

	span.SetTag("style", style)
	span.SetTag("success", fmt.Sprintf("%t", success))
	span.SetData("measures", measures)
	span.SetData("notes", notes)
	span.SetData("duration_ms", duration.Milliseconds())

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInvalidArgument
	}

	span.Description = fmt.Sprintf("Riff Generation: %s", style)
}

// RecordShapeLookup records a chord shape lookup
func (m *SentryMetrics) RecordShapeLookup(ctx context.Context, chord string, shapes int) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "shapes.lookup")
	defer span.Finish()

	span.SetTag("chord", chord)
	span.SetData("shapes", shapes)
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Shape Lookup: %s", chord)
}

// RecordPerformanceMetric records performance data
func (m *SentryMetrics) RecordPerformanceMetric(operation string, duration time.Duration, metadata map[string]interface{}) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	span := sentry.StartSpan(ctx, operation)
	span.Description = operation
	span.SetData("duration_ms", duration.Milliseconds())

	for key, value := range metadata {
		span.SetData(key, value)
	}

	span.Finish()
}
