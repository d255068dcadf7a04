package rest

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackingBody records whether it was closed.
type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func newResponse(status int, body string) (*http.Response, *trackingBody) {
	tb := &trackingBody{Reader: strings.NewReader(body)}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       tb,
	}, tb
}

func TestToFailure(t *testing.T) {
	t.Parallel()

	resp, body := newResponse(http.StatusInternalServerError, "boom")
	resp.Status = "500 Internal Server Error"

	f := ToFailure(resp)
	assert.Equal(t, FailureHTTP, f.Kind)
	assert.Equal(t, 500, f.Status)
	assert.Equal(t, "Internal Server Error", f.StatusText)
	assert.Equal(t, "boom", f.Body)
	assert.Equal(t, "boom", f.Message())
	assert.True(t, body.closed)
	assert.Equal(t, "http failure: 500 Internal Server Error: boom", f.Error())
}

func TestToFailure_StatusTextFallback(t *testing.T) {
	t.Parallel()

	resp := &http.Response{StatusCode: http.StatusNotFound, Body: http.NoBody}
	f := ToFailure(resp)
	assert.Equal(t, "Not Found", f.StatusText)
	assert.Equal(t, "Not Found", f.Message())
}

func TestAsFailure(t *testing.T) {
	t.Parallel()

	assert.Nil(t, AsFailure(nil))

	existing := &Failure{Kind: FailureHTTP, Status: 409}
	assert.Same(t, existing, AsFailure(existing))
	assert.Same(t, existing, AsFailure(errors.Join(errors.New("ctx"), existing)))

	urlErr := &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}
	f := AsFailure(urlErr)
	assert.Equal(t, FailureConnectivity, f.Kind)
	assert.ErrorIs(t, f, urlErr)
	assert.Contains(t, f.Message(), "connection refused")

	plain := errors.New("weird")
	f = AsFailure(plain)
	assert.Equal(t, FailureOther, f.Kind)
	assert.Equal(t, "weird", f.Message())
	assert.Equal(t, "request failed: weird", f.Error())
}

func TestFailure_Is(t *testing.T) {
	t.Parallel()

	err := NewConnectivityFailure(errors.New("down"))
	assert.ErrorIs(t, err, &Failure{Kind: FailureConnectivity})
	assert.NotErrorIs(t, err, &Failure{Kind: FailureHTTP})
}

func TestFailureKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "connectivity", FailureConnectivity.String())
	assert.Equal(t, "http", FailureHTTP.String())
	assert.Equal(t, "other", FailureOther.String())
	require.Equal(t, "other", FailureKind(42).String())
}
