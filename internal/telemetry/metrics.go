package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestCounter      metric.Int64Counter
	RequestDuration     metric.Float64Histogram
	CommentsIndexed     metric.Int64Counter
	QueriesAnswered     metric.Int64Counter
	PolicyRefusals      metric.Int64Counter
	TokensUsed          metric.Int64Counter
	CircuitBreakerState metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("reddit-insight-backend")

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

	commentsIndexed, err := meter.Int64Counter(
		"insight.comments.indexed",
		metric.WithDescription("Comments embedded and stored per index request"),
	)
	if err != nil {
		return nil, err
	}

	queriesAnswered, err := meter.Int64Counter(
		"insight.queries.answered",
		metric.WithDescription("Insight queries answered"),
	)
	if err != nil {
		return nil, err
	}

	policyRefusals, err := meter.Int64Counter(
		"insight.policy.refusals",
		metric.WithDescription("Queries refused by the content-safety policy"),
	)
	if err != nil {
		return nil, err
	}

	tokensUsed, err := meter.Int64Counter(
		"gemini.tokens.used",
		metric.WithDescription("Gemini tokens consumed"),
	)
	if err != nil {
		return nil, err
	}

	circuitBreakerState, err := meter.Int64Counter(
		"gemini.circuit_breaker.transitions",
		metric.WithDescription("Circuit breaker state transitions"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCounter:      requestCounter,
		RequestDuration:     requestDuration,
		CommentsIndexed:     commentsIndexed,
		QueriesAnswered:     queriesAnswered,
		PolicyRefusals:      policyRefusals,
		TokensUsed:          tokensUsed,
		CircuitBreakerState: circuitBreakerState,
	}, nil
}

// RecordRequest records a completed HTTP request
func (m *Metrics) RecordRequest(ctx context.Context, route string, status int, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.RequestCounter.Add(ctx, 1, attrs)
	m.RequestDuration.Record(ctx, seconds, attrs)
}

// The recorders below tolerate a nil receiver so components can be built
// without telemetry (tests, metrics disabled).

// RecordCommentsIndexed records how many comments an index run stored.
func (m *Metrics) RecordCommentsIndexed(ctx context.Context, count int) {
	if m == nil {
		return
	}
	m.CommentsIndexed.Add(ctx, int64(count))
}

// RecordQueryAnswered records one successfully answered query.
func (m *Metrics) RecordQueryAnswered(ctx context.Context) {
	if m == nil {
		return
	}
	m.QueriesAnswered.Add(ctx, 1)
}

// RecordPolicyRefusal records one query refused by the safety policy.
func (m *Metrics) RecordPolicyRefusal(ctx context.Context) {
	if m == nil {
		return
	}
	m.PolicyRefusals.Add(ctx, 1)
}

// RecordTokensUsed records tokens consumed by a generation call.
func (m *Metrics) RecordTokensUsed(ctx context.Context, tokens int) {
	if m == nil {
		return
	}
	m.TokensUsed.Add(ctx, int64(tokens))
}

// RecordBreakerTransition records a circuit breaker state change.
func (m *Metrics) RecordBreakerTransition(ctx context.Context, from, to string) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}
