package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "FretLab/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment}, nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)
	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
	}, nil
}

// Enabled reports whether metrics are shipped to CloudWatch
func (m *Client) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Client) dimensions(extra ...string) []types.Dimension {
	dims := make([]types.Dimension, 0, len(extra)/2+1)
	for i := 0; i+1 < len(extra); i += 2 {
		dims = append(dims, types.Dimension{
			Name:  aws.String(extra[i]),
			Value: aws.String(extra[i+1]),
		})
	}
	return append(dims, types.Dimension{
		Name:  aws.String("Environment"),
		Value: aws.String(m.environment),
	})
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	go func() {
		ctx := context.Background()
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}
		dims := m.dimensions("Endpoint", endpoint)

		if err := m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dims); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "APILatency", latencyMs, types.StandardUnitMilliseconds, dims); err != nil {
			log.Printf("Failed to record APILatency metric: %v", err)
		}
	}()
}

// RecordRiffGeneration records a generated riff's size and build time
func (m *Client) RecordRiffGeneration(style string, measures, notes int, duration time.Duration, success bool) {
	if !m.Enabled() {
		return
	}

	go func() {
		ctx := context.Background()
		dims := m.dimensions("Style", style, "Success", boolToString(success))

		if err := m.putMetric(ctx, "RiffGenerations", 1, types.StandardUnitCount, dims); err != nil {
			log.Printf("Failed to record RiffGenerations metric: %v", err)
		}
		if !success {
			return
		}

		if err := m.putMetric(ctx, "RiffMeasures", float64(measures), types.StandardUnitCount, dims); err != nil {
			log.Printf("Failed to record RiffMeasures metric: %v", err)
		}
		if err := m.putMetric(ctx, "RiffNotes", float64(notes), types.StandardUnitCount, dims); err != nil {
			log.Printf("Failed to record RiffNotes metric: %v", err)
		}

		durationMs := float64(duration.Microseconds()) / 1000
		if err := m.putMetric(ctx, "RiffGenerationDuration", durationMs, types.StandardUnitMilliseconds, dims); err != nil {
			log.Printf("Failed to record RiffGenerationDuration metric: %v", err)
		}
	}()
}

// RecordShapeLookup records how many voicings a chord lookup produced
func (m *Client) RecordShapeLookup(quality string, shapes int) {
	if !m.Enabled() {
		return
	}

	go func() {
		dims := m.dimensions("Quality", quality)
		if err := m.putMetric(context.Background(), "ShapeLookups", float64(shapes), types.StandardUnitCount, dims); err != nil {
			log.Printf("Failed to record ShapeLookups metric: %v", err)
		}
	}()
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	ctx context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
