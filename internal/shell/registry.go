package shell

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	DefaultRegistrySize = 10000
	DefaultIdleTTL      = 30 * time.Minute
)

// Registry keeps one Shell per browser session. Shells idle for longer than
// the TTL, pushed out by capacity, released, or still held at Close are
// unmounted.
type Registry struct {
	mu     sync.Mutex
	shells *expirable.LRU[string, *Shell]
	logger *zap.Logger
}

// NewRegistry returns a registry holding at most size shells.
func NewRegistry(size int, idleTTL time.Duration, logger *zap.Logger) *Registry {
	if size <= 0 {
		size = DefaultRegistrySize
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{logger: logger}
	r.shells = expirable.NewLRU[string, *Shell](size, r.evicted, idleTTL)
	return r
}

func (r *Registry) evicted(sessionID string, s *Shell) {
	s.Close()
	r.logger.Debug("shell unmounted", zap.String("session_id", sessionID), zap.String("path", s.Path()))
}

// Acquire returns the session's shell, mounting one at initialPath when the
// session has none. Each call restarts the idle timer.
func (r *Registry) Acquire(sessionID, initialPath string) *Shell {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.shells.Get(sessionID); ok {
		r.shells.Add(sessionID, s)
		return s
	}
	// an expired entry not yet swept still holds a mounted shell
	r.shells.Remove(sessionID)
	s := New(initialPath)
	r.shells.Add(sessionID, s)
	r.logger.Debug("shell mounted", zap.String("session_id", sessionID), zap.String("path", s.Path()))
	return s
}

// Peek returns the session's shell without mounting or refreshing it.
func (r *Registry) Peek(sessionID string) (*Shell, bool) {
	return r.shells.Peek(sessionID)
}

// Release unmounts and forgets the session's shell.
func (r *Registry) Release(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shells.Remove(sessionID)
}

// Len reports the number of mounted shells.
func (r *Registry) Len() int { return r.shells.Len() }

// Close unmounts every shell. The LRU's expiry sweeper goroutine is not
// stopped: golang-lru v2 gives it no shutdown hook, so it lives as long as
// the process.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shells.Purge()
}
