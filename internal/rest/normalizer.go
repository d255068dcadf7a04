package rest

import (
	"io"
	"net/http"

	"github.com/pradeshm/infinispan-console/internal/observability"
)

// LoginFailedMessage is reported by MapError for 401 responses.
const LoginFailedMessage = "Login failed. Check your credentials and try again."

const defaultFailureMessage = "request failed"

const outcomeSuccess = "success"

// ActionResponse is the normalized outcome of a call. A failed outcome always
// carries a message.
type ActionResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Normalizer converts responses and failures into ActionResponse values.
type Normalizer struct {
	logger  observability.Logger
	metrics *observability.Metrics
}

// NormalizerOption is a functional option for configuring the normalizer.
type NormalizerOption func(*Normalizer)

// WithNormalizerLogger sets the logger.
func WithNormalizerLogger(logger observability.Logger) NormalizerOption {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// WithNormalizerMetrics sets the metrics recorder.
func WithNormalizerMetrics(metrics *observability.Metrics) NormalizerOption {
	return func(n *Normalizer) {
		n.metrics = metrics
	}
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(n)
	}

	n.logger = n.logger.With(observability.String("component", "normalizer"))
	return n
}

// NormalizeCRUD turns the result of IssueRequest into an ActionResponse. A 2xx
// response yields its body text, or successMessage when the body is empty.
// The response body is always closed.
func (n *Normalizer) NormalizeCRUD(successMessage string, resp *http.Response, err error) ActionResponse {
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return n.fromFailure(AsFailure(err))
	}
	if resp == nil {
		return n.fromFailure(&Failure{Kind: FailureOther})
	}
	if !isSuccess(resp.StatusCode) {
		return n.fromFailure(ToFailure(resp))
	}

	var text string
	if resp.Body != nil {
		data, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return n.fromFailure(NewConnectivityFailure(readErr))
		}
		text = string(data)
	}

	if text == "" {
		text = successMessage
	}
	n.metrics.RecordOutcome(outcomeSuccess)
	n.logger.Debug("request succeeded", observability.Int("status", resp.StatusCode))

	return ActionResponse{Message: text, Success: true}
}

// MapError classifies an already caught error. Connectivity and other
// failures use their own message and fall back to fallback when it is empty.
// A 401 always yields LoginFailedMessage; other HTTP failures use the body,
// then fallback.
func (n *Normalizer) MapError(err error, fallback string) ActionResponse {
	f := AsFailure(err)
	if f == nil {
		f = &Failure{Kind: FailureOther}
	}

	var msg string
	switch f.Kind {
	case FailureHTTP:
		if f.Status == http.StatusUnauthorized {
			msg = LoginFailedMessage
		} else {
			msg = f.Body
		}
	default:
		msg = f.causeText()
	}
	if msg == "" {
		msg = fallback
	}

	return n.failed(f, msg)
}

func (n *Normalizer) fromFailure(f *Failure) ActionResponse {
	return n.failed(f, f.Message())
}

// failed records the outcome and guarantees a non-empty message.
func (n *Normalizer) failed(f *Failure, msg string) ActionResponse {
	if msg == "" && f.Kind == FailureHTTP {
		msg = http.StatusText(f.Status)
	}
	if msg == "" {
		msg = defaultFailureMessage
	}

	n.metrics.RecordOutcome(f.Kind.String())
	n.logger.Warn("request failed",
		observability.String("failure", f.Kind.String()),
		observability.Int("status", f.Status),
		observability.String("message", msg),
	)

	return ActionResponse{Message: msg, Success: false}
}
