package rest

import "net/http"

// Request describes one call against the management server.
type Request struct {
	URL    string
	Method string

	// Accept is the desired response media type. Empty means no preference.
	Accept string

	// Headers are caller supplied headers. They take precedence over any
	// computed header with the same name.
	Headers http.Header

	// Body is sent only when non-empty.
	Body string
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

func (r Request) hasBody() bool {
	return r.Body != ""
}
