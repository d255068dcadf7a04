package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pradeshm/infinispan-console/internal/encoding"
	"github.com/pradeshm/infinispan-console/internal/observability"
	"github.com/pradeshm/infinispan-console/internal/rest"
)

const restPrefix = "/rest/v2"

// Dispatcher issues requests against the management server.
type Dispatcher interface {
	IssueRequest(ctx context.Context, req rest.Request) (*http.Response, error)

	// AuthenticatedHeaders returns the header set custom headers are added to.
	AuthenticatedHeaders() http.Header
}

// Option is a functional option shared by the services.
type Option func(*client)

// WithLogger sets the logger.
func WithLogger(logger observability.Logger) Option {
	return func(c *client) {
		c.logger = logger
	}
}

// WithNormalizer sets the normalizer used by write operations.
func WithNormalizer(normalizer *rest.Normalizer) Option {
	return func(c *client) {
		c.normalizer = normalizer
	}
}

// WithCodec sets the content type codec.
func WithCodec(codec *encoding.Codec) Option {
	return func(c *client) {
		c.codec = codec
	}
}

// client holds what the services share.
type client struct {
	baseURL    string
	dispatcher Dispatcher
	normalizer *rest.Normalizer
	codec      *encoding.Codec
	logger     observability.Logger
}

func newClient(baseURL string, dispatcher Dispatcher, component string, opts []Option) *client {
	c := &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		dispatcher: dispatcher,
		logger:     observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.normalizer == nil {
		c.normalizer = rest.NewNormalizer(rest.WithNormalizerLogger(c.logger))
	}
	if c.codec == nil {
		c.codec = encoding.NewCodec(encoding.WithCodecLogger(c.logger))
	}
	c.logger = c.logger.With(observability.String("component", component))

	return c
}

// url joins the REST prefix and the escaped path segments.
func (c *client) url(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString(restPrefix)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// getText issues a GET and returns the body of a 2xx response.
func (c *client) getText(ctx context.Context, rawURL, accept string) (string, error) {
	resp, err := c.dispatcher.IssueRequest(ctx, rest.Request{
		URL:    rawURL,
		Method: http.MethodGet,
		Accept: accept,
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", rest.ToFailure(resp)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", rest.NewConnectivityFailure(err)
	}
	return string(data), nil
}

// getJSON issues a GET and decodes the body of a 2xx response into out.
func (c *client) getJSON(ctx context.Context, rawURL string, out any) error {
	text, err := c.getText(ctx, rawURL, encoding.MediaTypeJSON)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}

// do issues a write request and normalizes its outcome.
func (c *client) do(ctx context.Context, successMessage string, req rest.Request) rest.ActionResponse {
	resp, err := c.dispatcher.IssueRequest(ctx, req)
	return c.normalizer.NormalizeCRUD(successMessage, resp, err)
}
