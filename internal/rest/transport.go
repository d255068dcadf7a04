package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/pradeshm/infinispan-console/internal/auth"
	"github.com/pradeshm/infinispan-console/internal/observability"
)

// Transport names used in logs, spans and metrics.
const (
	TransportToken     = "token"
	TransportChallenge = "challenge"
)

var errNoAuthenticatedClient = errors.New("authentication capability has no client")

// Transport issues a single request. Errors are always *Failure values.
type Transport interface {
	Name() string
	Issue(ctx context.Context, req Request) (*http.Response, error)
}

// TokenAuthTransport sends requests directly, with a bearer token when the
// identity is initialized.
type TokenAuthTransport struct {
	identity auth.Identity
	client   *http.Client
}

// NewTokenAuthTransport creates a new TokenAuthTransport. The client should
// carry a cookie jar so that session cookies are sent.
func NewTokenAuthTransport(identity auth.Identity, client *http.Client) *TokenAuthTransport {
	return &TokenAuthTransport{identity: identity, client: client}
}

// Name returns the transport name.
func (t *TokenAuthTransport) Name() string {
	return TransportToken
}

// Issue sends the request.
func (t *TokenAuthTransport) Issue(ctx context.Context, req Request) (*http.Response, error) {
	var body io.Reader
	if req.hasBody() {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method(), req.URL, body)
	if err != nil {
		return nil, NewOtherFailure(err)
	}
	httpReq.Header = t.headers(req)
	observability.InjectTraceContext(ctx, httpReq.Header)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, NewConnectivityFailure(err)
	}
	return resp, nil
}

// headers starts from the caller's headers when given, otherwise from the
// authenticated set.
func (t *TokenAuthTransport) headers(req Request) http.Header {
	var headers http.Header
	if req.Headers != nil {
		headers = req.Headers.Clone()
	} else {
		headers = AuthenticatedHeaders(t.identity)
	}

	if req.Accept != "" && headers.Get("Accept") == "" {
		headers.Set("Accept", req.Accept)
	}
	return headers
}

// AuthenticatedHeaders returns a fresh header set carrying the bearer token
// when the identity is initialized. Callers that send their own headers start
// from it so the token is not lost.
func AuthenticatedHeaders(identity auth.Identity) http.Header {
	headers := make(http.Header)
	if identity != nil && identity.IsInitialized() {
		headers.Set("Authorization", "Bearer "+identity.Token())
	}
	return headers
}

// ChallengeResponseTransport delegates requests to the capability's
// authenticated client.
type ChallengeResponseTransport struct {
	capability auth.Capability
}

// NewChallengeResponseTransport creates a new ChallengeResponseTransport.
func NewChallengeResponseTransport(capability auth.Capability) *ChallengeResponseTransport {
	return &ChallengeResponseTransport{capability: capability}
}

// Name returns the transport name.
func (t *ChallengeResponseTransport) Name() string {
	return TransportChallenge
}

// Issue hands the request to the authenticated client.
func (t *ChallengeResponseTransport) Issue(ctx context.Context, req Request) (*http.Response, error) {
	client := t.capability.AuthenticatedClient()
	if client == nil {
		return nil, NewOtherFailure(errNoAuthenticatedClient)
	}

	opts := auth.FetchOptions{
		Method:  req.method(),
		Headers: plainHeaders(req),
	}
	if req.hasBody() {
		body := req.Body
		opts.Body = &body
	}

	resp, err := client.Fetch(ctx, req.URL, opts)
	if err != nil {
		return nil, AsFailure(err)
	}
	return resp, nil
}

// plainHeaders sets Accept first and then copies every caller header over
// it. Multi-valued headers are joined with ", ".
func plainHeaders(req Request) map[string]string {
	headers := make(map[string]string, len(req.Headers)+1)
	if req.Accept != "" {
		headers["Accept"] = req.Accept
	}
	for name, values := range req.Headers {
		headers[http.CanonicalHeaderKey(name)] = strings.Join(values, ", ")
	}
	return headers
}

var (
	_ Transport = (*TokenAuthTransport)(nil)
	_ Transport = (*ChallengeResponseTransport)(nil)
)
