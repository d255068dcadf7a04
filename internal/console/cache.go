package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pradeshm/infinispan-console/internal/encoding"
	"github.com/pradeshm/infinispan-console/internal/observability"
	"github.com/pradeshm/infinispan-console/internal/rest"
	"github.com/pradeshm/infinispan-console/internal/util"
)

// Entry metadata headers.
const (
	HeaderKeyContentType = "Key-Content-Type"
	HeaderContentType    = "Content-Type"
	HeaderTimeToLive     = "timeToLiveSeconds"
	HeaderMaxIdle        = "maxIdleTimeSeconds"
	HeaderFlags          = "flags"
	HeaderCreated        = "created"
	HeaderLastUsed       = "lastUsed"
	HeaderExpires        = "Expires"
)

// CacheService reads and writes cache entries and configuration.
type CacheService struct {
	*client
}

// NewCacheService creates a new CacheService.
func NewCacheService(baseURL string, dispatcher Dispatcher, opts ...Option) *CacheService {
	return &CacheService{client: newClient(baseURL, dispatcher, "cache_service", opts)}
}

// GetEntry reads the entry stored under key. A missing entry yields an error
// wrapping util.ErrNotFound.
func (s *CacheService) GetEntry(
	ctx context.Context,
	cache, key string,
	keyContentType encoding.ContentType,
) (*CacheEntry, error) {
	if err := util.ValidateResourceName("cache", cache); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("entry key cannot be empty: %w", util.ErrInvalidInput)
	}

	headers := s.dispatcher.AuthenticatedHeaders()
	if wire := s.codec.ToWire(keyContentType); wire != "" {
		headers.Set(HeaderKeyContentType, wire)
	}

	resp, err := s.dispatcher.IssueRequest(ctx, rest.Request{
		URL:     s.url("caches", cache, key),
		Method:  http.MethodGet,
		Headers: headers,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("entry %q in cache %s: %w: %w", key, cache, util.ErrNotFound, rest.ToFailure(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, rest.ToFailure(resp)
	}
	defer resp.Body.Close()

	value, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, rest.NewConnectivityFailure(err)
	}

	valueContentType := s.codec.FromWire(optionalHeader(resp.Header, HeaderContentType))

	return &CacheEntry{
		Key:              key,
		KeyContentType:   keyContentType,
		Value:            string(value),
		ValueContentType: valueContentType,
		Protostream:      valueContentType == encoding.ContentTypeJSON && encoding.IsJSONObject(string(value)),
		TimeToLive:       resp.Header.Get(HeaderTimeToLive),
		MaxIdle:          resp.Header.Get(HeaderMaxIdle),
		Created:          resp.Header.Get(HeaderCreated),
		LastUsed:         resp.Header.Get(HeaderLastUsed),
		Expires:          resp.Header.Get(HeaderExpires),
	}, nil
}

// AddEntry creates the entry, or replaces it when req.Update is set.
func (s *CacheService) AddEntry(ctx context.Context, req EntryRequest) ActionResponse {
	if err := util.ValidateResourceName("cache", req.Cache); err != nil {
		return s.normalizer.MapError(err, "")
	}
	if req.Key == "" {
		return s.normalizer.MapError(errors.New("entry key cannot be empty"), "")
	}

	headers := s.dispatcher.AuthenticatedHeaders()
	if wire := s.codec.ToWire(req.KeyContentType); wire != "" {
		headers.Set(HeaderKeyContentType, wire)
	}
	if wire := s.codec.ToWire(req.ValueContentType); wire != "" {
		headers.Set(HeaderContentType, wire)
	}
	if req.TimeToLive != "" {
		headers.Set(HeaderTimeToLive, req.TimeToLive)
	}
	if req.MaxIdle != "" {
		headers.Set(HeaderMaxIdle, req.MaxIdle)
	}
	if len(req.Flags) > 0 {
		headers.Set(HeaderFlags, encoding.JoinFlags(req.Flags))
	}

	method, verb := http.MethodPost, "added"
	if req.Update {
		method, verb = http.MethodPut, "updated"
	}

	s.logger.Debug("writing entry",
		observability.String("cache", req.Cache),
		observability.String("method", method),
	)

	return s.do(ctx, fmt.Sprintf("Entry %s %s.", req.Key, verb), rest.Request{
		URL:     s.url("caches", req.Cache, req.Key),
		Method:  method,
		Headers: headers,
		Body:    req.Value,
	})
}

// DeleteEntry removes the entry stored under key.
func (s *CacheService) DeleteEntry(
	ctx context.Context,
	cache, key string,
	keyContentType encoding.ContentType,
) ActionResponse {
	if err := util.ValidateResourceName("cache", cache); err != nil {
		return s.normalizer.MapError(err, "")
	}
	if key == "" {
		return s.normalizer.MapError(errors.New("entry key cannot be empty"), "")
	}

	headers := s.dispatcher.AuthenticatedHeaders()
	if wire := s.codec.ToWire(keyContentType); wire != "" {
		headers.Set(HeaderKeyContentType, wire)
	}

	return s.do(ctx, fmt.Sprintf("Entry %s deleted.", key), rest.Request{
		URL:     s.url("caches", cache, key),
		Method:  http.MethodDelete,
		Headers: headers,
	})
}

// ClearCache removes every entry of the cache.
func (s *CacheService) ClearCache(ctx context.Context, cache string) ActionResponse {
	if err := util.ValidateResourceName("cache", cache); err != nil {
		return s.normalizer.MapError(err, "")
	}

	return s.do(ctx, fmt.Sprintf("Cache %s cleared.", cache), rest.Request{
		URL:    s.url("caches", cache) + "?action=clear",
		Method: http.MethodPost,
	})
}

// CreateCache creates a cache from a JSON configuration.
func (s *CacheService) CreateCache(ctx context.Context, cache, configJSON string) ActionResponse {
	if err := util.ValidateResourceName("cache", cache); err != nil {
		return s.normalizer.MapError(err, "")
	}

	headers := s.dispatcher.AuthenticatedHeaders()
	headers.Set(HeaderContentType, encoding.MediaTypeJSON)

	return s.do(ctx, fmt.Sprintf("Cache %s created.", cache), rest.Request{
		URL:     s.url("caches", cache),
		Method:  http.MethodPost,
		Headers: headers,
		Body:    configJSON,
	})
}

// GetConfig returns the JSON configuration of the cache.
func (s *CacheService) GetConfig(ctx context.Context, cache string) (string, error) {
	if err := util.ValidateResourceName("cache", cache); err != nil {
		return "", err
	}
	return s.getText(ctx, s.url("caches", cache)+"?action=config", encoding.MediaTypeJSON)
}

// Encoding reports whether keys and values of the cache are protostream
// encoded.
func (s *CacheService) Encoding(ctx context.Context, cache string) (encoding.CacheEncoding, error) {
	config, err := s.GetConfig(ctx, cache)
	if err != nil {
		return encoding.CacheEncoding{}, err
	}
	return encoding.DetectProtobufCache(config)
}

// optionalHeader returns nil when the header is absent.
func optionalHeader(h http.Header, name string) *string {
	values := h.Values(name)
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}
