package console

import (
	"github.com/pradeshm/infinispan-console/internal/encoding"
	"github.com/pradeshm/infinispan-console/internal/rest"
)

// ComponentStatus is the lifecycle status of a server component.
type ComponentStatus string

// Component statuses.
const (
	StatusStopping     ComponentStatus = "STOPPING"
	StatusRunning      ComponentStatus = "RUNNING"
	StatusOK           ComponentStatus = "OK"
	StatusCancelling   ComponentStatus = "CANCELLING"
	StatusSending      ComponentStatus = "SENDING"
	StatusError        ComponentStatus = "ERROR"
	StatusInstantiated ComponentStatus = "INSTANTIATED"
	StatusInitializing ComponentStatus = "INITIALIZING"
	StatusFailed       ComponentStatus = "FAILED"
	StatusTerminated   ComponentStatus = "TERMINATED"
)

// ComponentHealth is the health reported for a cache or cluster.
type ComponentHealth string

// Health values.
const (
	HealthHealthy            ComponentHealth = "HEALTHY"
	HealthHealthyRebalancing ComponentHealth = "HEALTHY_REBALANCING"
	HealthDegraded           ComponentHealth = "DEGRADED"
	HealthFailed             ComponentHealth = "FAILED"
)

// CacheType is the clustering mode of a cache.
type CacheType string

// Cache types.
const (
	CacheDistributed CacheType = "Distributed"
	CacheReplicated  CacheType = "Replicated"
	CacheLocal       CacheType = "Local"
	CacheInvalidated CacheType = "Invalidated"
	CacheScattered   CacheType = "Scattered"
)

var cacheTypesByTopology = map[string]CacheType{
	"distributed-cache":  CacheDistributed,
	"replicated-cache":   CacheReplicated,
	"local-cache":        CacheLocal,
	"invalidation-cache": CacheInvalidated,
	"scattered-cache":    CacheScattered,
}

// CacheManager describes a cache container.
type CacheManager struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Status      ComponentStatus `json:"cache_manager_status"`
	Health      ComponentHealth `json:"health,omitempty"`
	ClusterName string          `json:"cluster_name"`
	ClusterSize int             `json:"cluster_size"`
}

// CacheInfo is one row of the cache-status listing.
type CacheInfo struct {
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Status          ComponentStatus `json:"status"`
	Health          ComponentHealth `json:"health"`
	SimpleCache     bool            `json:"simple_cache"`
	Transactional   bool            `json:"transactional"`
	Persistent      bool            `json:"persistent"`
	Bounded         bool            `json:"bounded"`
	Secured         bool            `json:"secured"`
	Indexed         bool            `json:"indexed"`
	HasRemoteBackup bool            `json:"has_remote_backup"`
}

// CacheType maps the topology element name to a CacheType. Unknown
// topologies yield an empty value.
func (c CacheInfo) CacheType() CacheType {
	return cacheTypesByTopology[c.Type]
}

// CacheEntry is a single entry read from a cache.
type CacheEntry struct {
	Key              string               `json:"key"`
	KeyContentType   encoding.ContentType `json:"keyContentType"`
	Value            string               `json:"value"`
	ValueContentType encoding.ContentType `json:"valueContentType"`
	TimeToLive       string               `json:"timeToLive,omitempty"`
	MaxIdle          string               `json:"maxIdle,omitempty"`
	Created          string               `json:"created,omitempty"`
	LastUsed         string               `json:"lastUsed,omitempty"`
	Expires          string               `json:"expires,omitempty"`

	// Protostream is set when the value is a protostream entity rendered
	// as JSON.
	Protostream bool `json:"protostream,omitempty"`
}

// EntryRequest describes an entry to add or update.
type EntryRequest struct {
	Cache            string
	Key              string
	KeyContentType   encoding.ContentType
	Value            string
	ValueContentType encoding.ContentType

	// TimeToLive and MaxIdle are in seconds; empty leaves the cache default.
	TimeToLive string
	MaxIdle    string
	Flags      []encoding.Flags

	// Update replaces an existing entry instead of creating a new one.
	Update bool
}

// ActionResponse is re-exported for callers that only import this package.
type ActionResponse = rest.ActionResponse
