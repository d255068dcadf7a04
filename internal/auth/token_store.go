package auth

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/pradeshm/infinispan-console/internal/observability"
)

// TokenStore holds the bearer token issued by the identity provider.
type TokenStore interface {
	Token() string
}

// MemoryTokenStore keeps the token in memory.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates a store holding token.
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

// Token returns the stored token.
func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the stored token.
func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// FileTokenStore reads the token from a file and reloads it whenever the
// file is written or replaced.
type FileTokenStore struct {
	MemoryTokenStore

	path      string
	logger    observability.Logger
	watcher   *fsnotify.Watcher
	stopCh    chan struct{}
	stoppedCh chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewFileTokenStore creates a store and performs the initial read. A missing
// file is not an error; the store stays empty until the file appears.
func NewFileTokenStore(path string, logger observability.Logger) (*FileTokenStore, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = observability.NopLogger()
	}

	s := &FileTokenStore{
		path:      absPath,
		logger:    logger.With(observability.String("component", "token_store")),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}

	if err := s.reload(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Path returns the absolute token file path.
func (s *FileTokenStore) Path() string {
	return s.path
}

// Watch starts following the token file until ctx is done or Close is called.
func (s *FileTokenStore) Watch(ctx context.Context) error {
	var startErr error
	s.startOnce.Do(func() {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			startErr = err
			close(s.stoppedCh)
			return
		}
		// The directory is watched so that atomic replacements are seen.
		if err := watcher.Add(filepath.Dir(s.path)); err != nil {
			_ = watcher.Close()
			startErr = err
			close(s.stoppedCh)
			return
		}
		s.watcher = watcher
		go s.loop(ctx)

		s.logger.Info("watching token file", observability.String("path", s.path))
	})
	return startErr
}

func (s *FileTokenStore) loop(ctx context.Context) {
	defer close(s.stoppedCh)
	defer func() { _ = s.watcher.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := s.reload(); err != nil {
				s.logger.Warn("failed to reload token file", observability.Error(err))
				continue
			}
			s.logger.Debug("token file reloaded")
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("token file watcher error", observability.Error(err))
		}
	}
}

func (s *FileTokenStore) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	s.SetToken(strings.TrimSpace(string(data)))
	return nil
}

// Close stops watching. It is safe to call when Watch was never started; a
// later Watch is then a no-op.
func (s *FileTokenStore) Close() error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	s.startOnce.Do(func() {
		close(s.stoppedCh)
	})
	<-s.stoppedCh
	return nil
}

var (
	_ TokenStore = (*MemoryTokenStore)(nil)
	_ TokenStore = (*FileTokenStore)(nil)
)
