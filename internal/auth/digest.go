package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/icholy/digest"

	"github.com/pradeshm/infinispan-console/internal/observability"
)

// Challenge schemes answered by DigestClient.
const (
	SchemeDigest = "digest"
	SchemeBasic  = "basic"
)

// DigestClient is an AuthenticatedClient that answers Digest (RFC 7616) and
// Basic challenges. The first request is sent without credentials; a 401
// carrying a supported challenge is answered once.
type DigestClient struct {
	credentials CredentialSource
	httpClient  *http.Client
	logger      observability.Logger
	metrics     *observability.Metrics
	nonceCount  atomic.Uint32
}

// DigestOption is a functional option for configuring the client.
type DigestOption func(*DigestClient)

// WithLogger sets the logger.
func WithLogger(logger observability.Logger) DigestOption {
	return func(c *DigestClient) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics *observability.Metrics) DigestOption {
	return func(c *DigestClient) {
		c.metrics = metrics
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) DigestOption {
	return func(c *DigestClient) {
		c.httpClient = client
	}
}

// NewDigestClient creates a new challenge/response client.
func NewDigestClient(credentials CredentialSource, opts ...DigestOption) *DigestClient {
	c := &DigestClient{
		credentials: credentials,
		httpClient:  http.DefaultClient,
		logger:      observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(observability.String("component", "digest_client"))
	return c
}

// Fetch sends the request and answers an authentication challenge if the
// server issues one.
func (c *DigestClient) Fetch(ctx context.Context, url string, opts FetchOptions) (*http.Response, error) {
	req, err := c.newRequest(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	ch, ok := selectChallenge(resp.Header)
	if !ok {
		return resp, nil
	}

	creds, err := c.credentials.Credentials(ctx)
	if err != nil {
		drainAndClose(resp)
		return nil, NewProviderErrorWithCause(ch.scheme, "fetch", "failed to get credentials", err)
	}

	authorization, err := c.authorize(ch, creds, req.Method, req.URL.RequestURI())
	if err != nil {
		c.logger.Warn("cannot answer authentication challenge",
			observability.String("scheme", ch.scheme),
			observability.Error(err),
		)
		return resp, nil
	}
	drainAndClose(resp)

	c.metrics.RecordChallenge(ch.scheme)
	c.logger.Debug("answering authentication challenge",
		observability.String("scheme", ch.scheme),
		observability.String("realm", ch.realm),
	)

	retry, err := c.newRequest(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	retry.Header.Set("Authorization", authorization)

	return c.httpClient.Do(retry)
}

func (c *DigestClient) newRequest(ctx context.Context, url string, opts FetchOptions) (*http.Request, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		body = strings.NewReader(*opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (c *DigestClient) authorize(ch challenge, creds Credentials, method, uri string) (string, error) {
	switch ch.scheme {
	case SchemeBasic:
		raw := creds.Username + ":" + creds.Password
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw)), nil
	case SchemeDigest:
		answer, err := digest.Digest(ch.digest, digest.Options{
			Method:   method,
			URI:      uri,
			Count:    int(c.nonceCount.Add(1)),
			Username: creds.Username,
			Password: creds.Password,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrUnsupportedChallenge, err)
		}
		return answer.String(), nil
	default:
		return "", ErrUnsupportedChallenge
	}
}

// challenge is the WWW-Authenticate challenge chosen for an answer.
type challenge struct {
	scheme string
	realm  string
	digest *digest.Challenge
}

// selectChallenge prefers Digest over Basic.
func selectChallenge(header http.Header) (challenge, bool) {
	if chal, err := digest.FindChallenge(header); err == nil {
		return challenge{scheme: SchemeDigest, realm: chal.Realm, digest: chal}, true
	}
	for _, v := range header.Values("WWW-Authenticate") {
		scheme, _, _ := strings.Cut(strings.TrimSpace(v), " ")
		if strings.EqualFold(scheme, SchemeBasic) {
			return challenge{scheme: SchemeBasic}, true
		}
	}
	return challenge{}, false
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

var _ AuthenticatedClient = (*DigestClient)(nil)
