package console

import (
	"context"

	"github.com/pradeshm/infinispan-console/internal/observability"
	"github.com/pradeshm/infinispan-console/internal/util"
)

// DefaultCacheManager is the name of the default container.
const DefaultCacheManager = "default"

// ContainerService reads cache manager information.
type ContainerService struct {
	*client
}

// NewContainerService creates a new ContainerService.
func NewContainerService(baseURL string, dispatcher Dispatcher, opts ...Option) *ContainerService {
	return &ContainerService{client: newClient(baseURL, dispatcher, "container_service", opts)}
}

// GetDefaultCacheManager returns the default cache manager.
func (s *ContainerService) GetDefaultCacheManager(ctx context.Context) (*CacheManager, error) {
	var cm CacheManager
	if err := s.getJSON(ctx, s.url("cache-managers", DefaultCacheManager), &cm); err != nil {
		s.logger.Warn("failed to read default cache manager", observability.Error(err))
		return nil, err
	}
	return &cm, nil
}

// GetCaches lists the caches of the named cache manager.
func (s *ContainerService) GetCaches(ctx context.Context, cacheManager string) ([]CacheInfo, error) {
	if err := util.ValidateResourceName("cache manager", cacheManager); err != nil {
		return nil, err
	}

	var caches []CacheInfo
	if err := s.getJSON(ctx, s.url("cache-managers", cacheManager, "cache-status"), &caches); err != nil {
		s.logger.Warn("failed to list caches",
			observability.String("cache_manager", cacheManager),
			observability.Error(err),
		)
		return nil, err
	}
	return caches, nil
}
