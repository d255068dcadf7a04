package rest

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxFailureBodyBytes bounds how much of an error response body is kept.
const maxFailureBodyBytes = 1 << 20

// FailureKind tags the cause of a failed call.
type FailureKind int

// Failure kinds.
const (
	// FailureOther is any failure that is neither a connectivity problem nor
	// an HTTP error status.
	FailureOther FailureKind = iota

	// FailureConnectivity means the request never produced a response.
	FailureConnectivity

	// FailureHTTP means the server answered with a non-2xx status.
	FailureHTTP
)

// String returns the label used in logs and metrics.
func (k FailureKind) String() string {
	switch k {
	case FailureConnectivity:
		return "connectivity"
	case FailureHTTP:
		return "http"
	default:
		return "other"
	}
}

// Failure is the error returned by transports and consumed by the Normalizer.
type Failure struct {
	Kind FailureKind

	// Status, StatusText and Body are set for FailureHTTP.
	Status     int
	StatusText string
	Body       string

	// Cause is set for FailureConnectivity and FailureOther.
	Cause error
}

// NewConnectivityFailure wraps an error raised before any response arrived.
func NewConnectivityFailure(cause error) *Failure {
	return &Failure{Kind: FailureConnectivity, Cause: cause}
}

// NewOtherFailure wraps an unclassified error.
func NewOtherFailure(cause error) *Failure {
	return &Failure{Kind: FailureOther, Cause: cause}
}

// Error implements the error interface.
func (f *Failure) Error() string {
	switch f.Kind {
	case FailureHTTP:
		msg := fmt.Sprintf("http failure: %d", f.Status)
		if f.StatusText != "" {
			msg += " " + f.StatusText
		}
		if f.Body != "" {
			msg += ": " + f.Body
		}
		return msg
	case FailureConnectivity:
		return "connectivity failure: " + f.causeText()
	default:
		return "request failed: " + f.causeText()
	}
}

// Message returns the text shown to users: the body or status text of an HTTP
// failure, the cause text otherwise. It may be empty.
func (f *Failure) Message() string {
	if f.Kind == FailureHTTP {
		if f.Body != "" {
			return f.Body
		}
		return f.StatusText
	}
	return f.causeText()
}

func (f *Failure) causeText() string {
	if f.Cause == nil {
		return ""
	}
	return f.Cause.Error()
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// Is reports whether target is a *Failure of the same kind.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

// ToFailure converts a non-2xx response into a FailureHTTP. The body is read
// and closed.
func ToFailure(resp *http.Response) *Failure {
	f := &Failure{
		Kind:       FailureHTTP,
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
	}

	if resp.Body != nil {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxFailureBodyBytes))
		_ = resp.Body.Close()
		f.Body = string(data)
	}

	return f
}

// AsFailure classifies err. Errors that already are (or wrap) a *Failure are
// returned as such; network errors become FailureConnectivity and everything
// else FailureOther. A nil error yields nil.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	if isConnectivityError(err) {
		return NewConnectivityFailure(err)
	}
	return NewOtherFailure(err)
}

func isConnectivityError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// statusText strips the numeric code from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
