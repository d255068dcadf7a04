package rest

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pradeshm/infinispan-console/internal/observability"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestNormalizer_NormalizeCRUD(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		expected ActionResponse
	}{
		{
			name:     "ok with empty body uses success message",
			status:   http.StatusOK,
			expected: ActionResponse{Message: "Created", Success: true},
		},
		{
			name:     "ok with body uses body",
			status:   http.StatusNoContent,
			body:     "done",
			expected: ActionResponse{Message: "done", Success: true},
		},
		{
			name:     "server error uses body",
			status:   http.StatusInternalServerError,
			body:     "boom",
			expected: ActionResponse{Message: "boom", Success: false},
		},
		{
			name:     "server error without body uses status text",
			status:   http.StatusServiceUnavailable,
			expected: ActionResponse{Message: "Service Unavailable", Success: false},
		},
		{
			name:     "unauthorized keeps body",
			status:   http.StatusUnauthorized,
			body:     "bad login",
			expected: ActionResponse{Message: "bad login", Success: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, body := newResponse(tt.status, tt.body)
			got := NewNormalizer().NormalizeCRUD("Created", resp, nil)
			assert.Equal(t, tt.expected, got)
			assert.True(t, body.closed)
		})
	}
}

func TestNormalizer_NormalizeCRUD_Failures(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()

	conn := NewConnectivityFailure(&url.Error{Op: "Get", URL: "http://x", Err: errors.New("dial tcp: refused")})
	got := n.NormalizeCRUD("ok", nil, conn)
	assert.False(t, got.Success)
	assert.Equal(t, conn.Cause.Error(), got.Message)

	got = n.NormalizeCRUD("ok", nil, errors.New("odd"))
	assert.Equal(t, ActionResponse{Message: "odd", Success: false}, got)

	got = n.NormalizeCRUD("ok", nil, nil)
	assert.Equal(t, ActionResponse{Message: defaultFailureMessage, Success: false}, got)

	resp := &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(failingReader{})}
	got = n.NormalizeCRUD("ok", resp, nil)
	assert.Equal(t, ActionResponse{Message: "connection reset", Success: false}, got)
}

func TestNormalizer_MapError(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()

	t.Run("401 ignores body", func(t *testing.T) {
		t.Parallel()

		resp, _ := newResponse(http.StatusUnauthorized, "realm says no")
		got := n.MapError(ToFailure(resp), "fallback")
		assert.Equal(t, ActionResponse{Message: LoginFailedMessage, Success: false}, got)
	})

	t.Run("http failure uses body", func(t *testing.T) {
		t.Parallel()

		resp, _ := newResponse(http.StatusConflict, "exists")
		assert.Equal(t, "exists", n.MapError(ToFailure(resp), "fallback").Message)
	})

	t.Run("http failure without body uses fallback", func(t *testing.T) {
		t.Parallel()

		resp, _ := newResponse(http.StatusConflict, "")
		assert.Equal(t, "fallback", n.MapError(ToFailure(resp), "fallback").Message)
	})

	t.Run("http failure without body or fallback uses status text", func(t *testing.T) {
		t.Parallel()

		resp, _ := newResponse(http.StatusConflict, "")
		assert.Equal(t, "Conflict", n.MapError(ToFailure(resp), "").Message)
	})

	t.Run("connectivity uses own message", func(t *testing.T) {
		t.Parallel()

		got := n.MapError(NewConnectivityFailure(errors.New("network down")), "fallback")
		assert.Equal(t, ActionResponse{Message: "network down", Success: false}, got)
	})

	t.Run("connectivity without message uses fallback", func(t *testing.T) {
		t.Parallel()

		got := n.MapError(NewConnectivityFailure(errors.New("")), "fallback")
		assert.Equal(t, "fallback", got.Message)
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "fallback", n.MapError(nil, "fallback").Message)
		assert.Equal(t, defaultFailureMessage, n.MapError(nil, "").Message)
	})
}

func TestNormalizer_RecordsOutcomes(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	metrics := observability.NewMetrics("test")
	n := NewNormalizer(
		WithNormalizerLogger(observability.NewLoggerFromZap(zap.New(core))),
		WithNormalizerMetrics(metrics),
	)

	ok, _ := newResponse(http.StatusOK, "")
	n.NormalizeCRUD("fine", ok, nil)
	bad, _ := newResponse(http.StatusBadRequest, "nope")
	n.NormalizeCRUD("fine", bad, nil)
	n.MapError(NewConnectivityFailure(errors.New("down")), "")

	reg := metrics.Registry()
	assert.Equal(t, 1.0, counterValue(t, reg, "test_rest_outcomes_total", map[string]string{"kind": "success"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "test_rest_outcomes_total", map[string]string{"kind": "http"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "test_rest_outcomes_total", map[string]string{"kind": "connectivity"}))

	assert.Equal(t, 2, logs.FilterMessage("request failed").Len())
}
