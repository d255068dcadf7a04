package console

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pradeshm/infinispan-console/internal/auth"
	"github.com/pradeshm/infinispan-console/internal/rest"
)

type storedEntry struct {
	value          string
	keyContentType string
	contentType    string
	ttl            string
	maxIdle        string
	flags          string
}

// fakeServer is an in-memory management server.
type fakeServer struct {
	mu      sync.Mutex
	entries map[string]storedEntry
	configs map[string]string
	cleared []string
}

const protostreamConfig = `{"distributed-cache":{"mode":"SYNC","encoding":{` +
	`"key":{"media-type":"application/x-protostream"},` +
	`"value":{"media-type":"application/x-protostream"}}}}`

func newFakeServer() *fakeServer {
	return &fakeServer{
		entries: map[string]storedEntry{},
		configs: map[string]string{
			"people": protostreamConfig,
			"plain":  `{"local-cache":{}}`,
			"broken": `{not json`,
		},
	}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func (f *fakeServer) router(middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware...)

	api := r.Group("/rest/v2")
	api.GET("/cache-managers/default", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":                 "default",
			"version":              "15.0.0.Final",
			"cache_manager_status": "RUNNING",
			"cluster_name":         "cluster",
			"cluster_size":         3,
		})
	})
	api.GET("/cache-managers/:cm/cache-status", func(c *gin.Context) {
		if c.Param("cm") != "default" {
			c.String(http.StatusNotFound, "cache manager %s not found", c.Param("cm"))
			return
		}
		c.JSON(http.StatusOK, []gin.H{
			{"name": "people", "type": "distributed-cache", "status": "RUNNING", "health": "HEALTHY", "indexed": true},
			{"name": "plain", "type": "local-cache", "status": "RUNNING", "health": "DEGRADED"},
		})
	})

	api.GET("/caches/:cache", func(c *gin.Context) {
		if c.Query("action") != "config" {
			c.Status(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		cfg, ok := f.configs[c.Param("cache")]
		f.mu.Unlock()
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "application/json", []byte(cfg))
	})
	api.POST("/caches/:cache", func(c *gin.Context) {
		name := c.Param("cache")
		f.mu.Lock()
		defer f.mu.Unlock()

		if c.Query("action") == "clear" {
			if _, ok := f.configs[name]; !ok {
				c.String(http.StatusNotFound, "cache %s does not exist", name)
				return
			}
			f.cleared = append(f.cleared, name)
			c.Status(http.StatusNoContent)
			return
		}
		if _, ok := f.configs[name]; ok {
			c.String(http.StatusConflict, "cache %s already exists", name)
			return
		}
		body, _ := io.ReadAll(c.Request.Body)
		if c.GetHeader("Content-Type") != "application/json" {
			c.Status(http.StatusUnsupportedMediaType)
			return
		}
		f.configs[name] = string(body)
		c.Status(http.StatusOK)
	})

	api.GET("/caches/:cache/:key", func(c *gin.Context) {
		f.mu.Lock()
		e, ok := f.entries[c.Param("cache")+"/"+c.Param("key")]
		f.mu.Unlock()
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		if e.ttl != "" {
			c.Header("timeToLiveSeconds", e.ttl)
		}
		if e.maxIdle != "" {
			c.Header("maxIdleTimeSeconds", e.maxIdle)
		}
		c.Header("lastUsed", "1700000000000")
		c.Data(http.StatusOK, e.contentType, []byte(e.value))
	})
	write := func(c *gin.Context) {
		id := c.Param("cache") + "/" + c.Param("key")
		body, _ := io.ReadAll(c.Request.Body)

		f.mu.Lock()
		defer f.mu.Unlock()
		if _, exists := f.entries[id]; exists && c.Request.Method == http.MethodPost {
			c.String(http.StatusConflict, "An entry with key %s already exists", c.Param("key"))
			return
		}
		f.entries[id] = storedEntry{
			value:          string(body),
			keyContentType: c.GetHeader("Key-Content-Type"),
			contentType:    c.GetHeader("Content-Type"),
			ttl:            c.GetHeader("timeToLiveSeconds"),
			maxIdle:        c.GetHeader("maxIdleTimeSeconds"),
			flags:          c.GetHeader("flags"),
		}
		c.Status(http.StatusNoContent)
	}
	api.POST("/caches/:cache/:key", write)
	api.PUT("/caches/:cache/:key", write)
	api.DELETE("/caches/:cache/:key", func(c *gin.Context) {
		id := c.Param("cache") + "/" + c.Param("key")
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.entries[id]; !ok {
			c.Status(http.StatusNotFound)
			return
		}
		delete(f.entries, id)
		c.Status(http.StatusNoContent)
	})

	return r
}

func (f *fakeServer) entry(id string) (storedEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	return e, ok
}

// startOpen serves the fake on an unsecured endpoint and returns services
// bound to it.
func startOpen(t *testing.T, f *fakeServer) (*ContainerService, *CacheService) {
	t.Helper()

	server := httptest.NewServer(f.router())
	t.Cleanup(server.Close)

	dispatcher := rest.NewDispatcher(auth.Anonymous(), auth.NewService(false, nil))
	return NewContainerService(server.URL, dispatcher), NewCacheService(server.URL, dispatcher)
}
