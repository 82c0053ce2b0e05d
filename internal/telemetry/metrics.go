package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics. A nil *Metrics is valid and
// records nothing, so instrumentation can stay unconditional.
type Metrics struct {
	RequestCounter  metric.Int64Counter
	RequestDuration metric.Float64Histogram
	SchemeSearches  metric.Int64Counter
	EmptyResults    metric.Int64Counter
	OTPIssued       metric.Int64Counter
	OTPVerified     metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("scheme-assistant-platform")

	requestCounter, err := meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	schemeSearches, err := meter.Int64Counter(
		"scheme.searches.total",
		metric.WithDescription("Total scheme ranking invocations"),
	)
	if err != nil {
		return nil, err
	}

	emptyResults, err := meter.Int64Counter(
		"scheme.searches.empty",
		metric.WithDescription("Searches that fell back to suggestions"),
	)
	if err != nil {
		return nil, err
	}

	otpIssued, err := meter.Int64Counter(
		"otp.issued.total",
		metric.WithDescription("OTP codes issued"),
	)
	if err != nil {
		return nil, err
	}

	otpVerified, err := meter.Int64Counter(
		"otp.verified.total",
		metric.WithDescription("Successful OTP verifications"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCounter:  requestCounter,
		RequestDuration: requestDuration,
		SchemeSearches:  schemeSearches,
		EmptyResults:    emptyResults,
		OTPIssued:       otpIssued,
		OTPVerified:     otpVerified,
	}, nil
}

// RecordRequest records one handled HTTP request.
func (m *Metrics) RecordRequest(ctx context.Context, method, path, status string, duration float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.String("status", status),
	)
	m.RequestCounter.Add(ctx, 1, attrs)
	m.RequestDuration.Record(ctx, duration, attrs)
}

// RecordSearch records one ranking invocation and whether it produced
// any match.
func (m *Metrics) RecordSearch(ctx context.Context, found bool) {
	if m == nil {
		return
	}
	m.SchemeSearches.Add(ctx, 1)
	if !found {
		m.EmptyResults.Add(ctx, 1)
	}
}

// RecordOTPIssued records one issued code.
func (m *Metrics) RecordOTPIssued(ctx context.Context) {
	if m == nil {
		return
	}
	m.OTPIssued.Add(ctx, 1)
}

// RecordOTPVerified records one successful verification.
func (m *Metrics) RecordOTPVerified(ctx context.Context) {
	if m == nil {
		return
	}
	m.OTPVerified.Add(ctx, 1)
}
