package console

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradeshm/infinispan-console/internal/auth"
	"github.com/pradeshm/infinispan-console/internal/encoding"
	"github.com/pradeshm/infinispan-console/internal/rest"
	"github.com/pradeshm/infinispan-console/internal/util"
)

func TestCacheService_EntryLifecycle(t *testing.T) {
	t.Parallel()

	f := newFakeServer()
	_, caches := startOpen(t, f)
	ctx := context.Background()

	added := caches.AddEntry(ctx, EntryRequest{
		Cache:            "plain",
		Key:              "user 1",
		KeyContentType:   encoding.ContentTypeString,
		Value:            `{"name":"Ada"}`,
		ValueContentType: encoding.ContentTypeJSON,
		TimeToLive:       "60",
		MaxIdle:          "30",
		Flags:            []encoding.Flags{encoding.FlagSkipCacheLoad, encoding.FlagIgnoreReturnValues},
	})
	assert.Equal(t, ActionResponse{Message: "Entry user 1 added.", Success: true}, added)

	stored, ok := f.entry("plain/user 1")
	require.True(t, ok)
	assert.Equal(t, "application/x-java-object;type=java.lang.String", stored.keyContentType)
	assert.Equal(t, "application/json", stored.contentType)
	assert.Equal(t, "60", stored.ttl)
	assert.Equal(t, "30", stored.maxIdle)
	assert.Equal(t, "SKIP_CACHE_LOAD,IGNORE_RETURN_VALUES", stored.flags)

	entry, err := caches.GetEntry(ctx, "plain", "user 1", encoding.ContentTypeString)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ada"}`, entry.Value)
	assert.Equal(t, encoding.ContentTypeJSON, entry.ValueContentType)
	assert.Equal(t, encoding.ContentTypeString, entry.KeyContentType)
	assert.Equal(t, "60", entry.TimeToLive)
	assert.Equal(t, "30", entry.MaxIdle)
	assert.Equal(t, "1700000000000", entry.LastUsed)
	assert.False(t, entry.Protostream)

	duplicate := caches.AddEntry(ctx, EntryRequest{Cache: "plain", Key: "user 1", Value: "x"})
	assert.Equal(t, ActionResponse{Message: "An entry with key user 1 already exists", Success: false}, duplicate)

	updated := caches.AddEntry(ctx, EntryRequest{
		Cache:            "plain",
		Key:              "user 1",
		Value:            "42",
		ValueContentType: encoding.ContentTypeInteger,
		Update:           true,
	})
	assert.Equal(t, ActionResponse{Message: "Entry user 1 updated.", Success: true}, updated)

	entry, err = caches.GetEntry(ctx, "plain", "user 1", encoding.ContentTypeString)
	require.NoError(t, err)
	assert.Equal(t, encoding.ContentTypeInteger, entry.ValueContentType)

	deleted := caches.DeleteEntry(ctx, "plain", "user 1", encoding.ContentTypeString)
	assert.Equal(t, ActionResponse{Message: "Entry user 1 deleted.", Success: true}, deleted)

	_, err = caches.GetEntry(ctx, "plain", "user 1", encoding.ContentTypeString)
	assert.ErrorIs(t, err, util.ErrNotFound)
	var failure *rest.Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, http.StatusNotFound, failure.Status)

	missing := caches.DeleteEntry(ctx, "plain", "user 1", encoding.ContentTypeString)
	assert.Equal(t, ActionResponse{Message: "Not Found", Success: false}, missing)
}

func TestCacheService_Validation(t *testing.T) {
	t.Parallel()

	_, caches := startOpen(t, newFakeServer())
	ctx := context.Background()

	_, err := caches.GetEntry(ctx, "a/b", "k", encoding.ContentTypeString)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = caches.GetEntry(ctx, "plain", "", encoding.ContentTypeString)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	result := caches.AddEntry(ctx, EntryRequest{Cache: "plain"})
	assert.False(t, result.Success)
	assert.Equal(t, "entry key cannot be empty", result.Message)

	result = caches.DeleteEntry(ctx, "plain", "", encoding.ContentTypeString)
	assert.False(t, result.Success)
	assert.Equal(t, "entry key cannot be empty", result.Message)

	result = caches.ClearCache(ctx, "")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}

func TestCacheService_ClearCache(t *testing.T) {
	t.Parallel()

	f := newFakeServer()
	_, caches := startOpen(t, f)

	result := caches.ClearCache(context.Background(), "people")
	assert.Equal(t, ActionResponse{Message: "Cache people cleared.", Success: true}, result)
	assert.Equal(t, []string{"people"}, f.cleared)

	result = caches.ClearCache(context.Background(), "ghost")
	assert.Equal(t, ActionResponse{Message: "cache ghost does not exist", Success: false}, result)
}

func TestCacheService_CreateCache(t *testing.T) {
	t.Parallel()

	_, caches := startOpen(t, newFakeServer())
	ctx := context.Background()

	result := caches.CreateCache(ctx, "orders", `{"replicated-cache":{}}`)
	assert.Equal(t, ActionResponse{Message: "Cache orders created.", Success: true}, result)

	config, err := caches.GetConfig(ctx, "orders")
	require.NoError(t, err)
	assert.JSONEq(t, `{"replicated-cache":{}}`, config)

	result = caches.CreateCache(ctx, "orders", `{}`)
	assert.Equal(t, ActionResponse{Message: "cache orders already exists", Success: false}, result)
}

func TestCacheService_Encoding(t *testing.T) {
	t.Parallel()

	_, caches := startOpen(t, newFakeServer())
	ctx := context.Background()

	enc, err := caches.Encoding(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, encoding.CacheEncoding{Key: true, Value: true}, enc)

	enc, err = caches.Encoding(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, encoding.CacheEncoding{}, enc)

	_, err = caches.Encoding(ctx, "broken")
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = caches.Encoding(ctx, "ghost")
	assert.Error(t, err)
}

func TestCacheService_ProtostreamValue(t *testing.T) {
	t.Parallel()

	_, caches := startOpen(t, newFakeServer())
	ctx := context.Background()

	added := caches.AddEntry(ctx, EntryRequest{
		Cache:            "people",
		Key:              "1",
		Value:            `{"_type":"org.example.Person","name":"Ada"}`,
		ValueContentType: encoding.ContentTypeJSON,
	})
	require.True(t, added.Success)

	entry, err := caches.GetEntry(ctx, "people", "1", encoding.ContentTypeString)
	require.NoError(t, err)
	assert.True(t, entry.Protostream)
}

func TestCacheService_TokenModeSendsBearerWithEntryHeaders(t *testing.T) {
	t.Parallel()

	requireBearer := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer entry-token" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}

	f := newFakeServer()
	server := httptest.NewServer(f.router(requireBearer))
	t.Cleanup(server.Close)

	identity := auth.NewTokenIdentity(auth.NewMemoryTokenStore("entry-token"))
	identity.MarkInitialized()
	caches := NewCacheService(server.URL, rest.NewDispatcher(identity, auth.NewService(true, nil)))
	ctx := context.Background()

	added := caches.AddEntry(ctx, EntryRequest{
		Cache:          "plain",
		Key:            "k1",
		KeyContentType: encoding.ContentTypeString,
		Value:          "v1",
	})
	assert.Equal(t, ActionResponse{Message: "Entry k1 added.", Success: true}, added)

	entry, err := caches.GetEntry(ctx, "plain", "k1", encoding.ContentTypeString)
	require.NoError(t, err)
	assert.Equal(t, "v1", entry.Value)

	created := caches.CreateCache(ctx, "orders", `{"local-cache":{}}`)
	assert.Equal(t, ActionResponse{Message: "Cache orders created.", Success: true}, created)

	deleted := caches.DeleteEntry(ctx, "plain", "k1", encoding.ContentTypeString)
	assert.Equal(t, ActionResponse{Message: "Entry k1 deleted.", Success: true}, deleted)
}
