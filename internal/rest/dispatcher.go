package rest

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pradeshm/infinispan-console/internal/auth"
	"github.com/pradeshm/infinispan-console/internal/observability"
)

// Dispatcher selects the transport for each call and issues it.
type Dispatcher struct {
	identity   auth.Identity
	capability auth.Capability
	httpClient *http.Client
	logger     observability.Logger
	metrics    *observability.Metrics
	tracer     *observability.Tracer

	token     *TokenAuthTransport
	challenge *ChallengeResponseTransport
}

// DispatcherOption is a functional option for configuring the dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(logger observability.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics *observability.Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = metrics
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer *observability.Tracer) DispatcherOption {
	return func(d *Dispatcher) {
		d.tracer = tracer
	}
}

// WithHTTPClient sets the client used for direct calls.
func WithHTTPClient(client *http.Client) DispatcherOption {
	return func(d *Dispatcher) {
		d.httpClient = client
	}
}

// NewDispatcher creates a new Dispatcher. A nil identity is treated as
// anonymous.
func NewDispatcher(identity auth.Identity, capability auth.Capability, opts ...DispatcherOption) *Dispatcher {
	if identity == nil {
		identity = auth.Anonymous()
	}

	d := &Dispatcher{
		identity:   identity,
		capability: capability,
		logger:     observability.NopLogger(),
		tracer:     observability.NopTracer(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.httpClient == nil {
		d.httpClient = NewHTTPClient(0)
	}
	d.logger = d.logger.With(observability.String("component", "dispatcher"))
	d.token = NewTokenAuthTransport(d.identity, d.httpClient)
	d.challenge = NewChallengeResponseTransport(d.capability)

	return d
}

// NewHTTPClient returns a client with a cookie jar, so session cookies are
// sent on every call. A zero timeout means none.
func NewHTTPClient(timeout time.Duration) *http.Client {
	// cookiejar.New only fails for a broken public suffix list; none is used.
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
	}
}

// IssueRequest sends req through the selected transport. Non-2xx responses
// are returned as is; errors are *Failure values.
func (d *Dispatcher) IssueRequest(ctx context.Context, req Request) (*http.Response, error) {
	transport := d.selectTransport()
	method := req.method()

	ctx = observability.ContextWithRequestID(ctx, uuid.NewString())
	ctx, span := d.tracer.StartSpan(ctx, "rest.issue",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", req.URL),
			attribute.String("console.transport", transport.Name()),
		),
	)
	defer span.End()

	logger := d.logger.WithContext(ctx)
	start := time.Now()

	resp, err := transport.Issue(ctx, req)
	duration := time.Since(start)

	if err != nil {
		failure := AsFailure(err)
		span.RecordError(failure)
		span.SetStatus(codes.Error, failure.Kind.String())
		d.metrics.RecordRequest(transport.Name(), method, 0, duration)
		logger.Debug("request failed",
			observability.String("transport", transport.Name()),
			observability.String("method", method),
			observability.String("url", req.URL),
			observability.String("failure", failure.Kind.String()),
			observability.Duration("duration", duration),
			observability.Error(err),
		)
		return nil, failure
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if !isSuccess(resp.StatusCode) {
		span.SetStatus(codes.Error, resp.Status)
	}
	d.metrics.RecordRequest(transport.Name(), method, resp.StatusCode, duration)
	logger.Debug("request completed",
		observability.String("transport", transport.Name()),
		observability.String("method", method),
		observability.String("url", req.URL),
		observability.Int("status", resp.StatusCode),
		observability.Duration("duration", duration),
	)

	return resp, nil
}

// AuthenticatedHeaders returns the header set requests with custom headers
// should start from.
func (d *Dispatcher) AuthenticatedHeaders() http.Header {
	return AuthenticatedHeaders(d.identity)
}

// selectTransport takes the direct path when a token identity is initialized
// or the session is not secured.
func (d *Dispatcher) selectTransport() Transport {
	if d.identity.IsInitialized() || d.capability == nil || d.capability.IsNotSecured() {
		return d.token
	}
	return d.challenge
}
