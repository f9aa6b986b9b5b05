// Package shutdown runs registered cleanup callbacks when the desk
// stops, bounded by a caller-supplied deadline.
package shutdown

import (
	"context"
	"sync"

	"github.com/deskbot/goexch/pkg/logger"
)

// Handler is one cleanup step. It should respect ctx and return promptly
// once the deadline passes.
type Handler func(ctx context.Context)

// Manager collects shutdown callbacks and runs them concurrently.
type Manager struct {
	mu        sync.Mutex
	callbacks []Handler
}

func NewManager() *Manager {
	return &Manager{}
}

// OnShutdown registers a callback. Registration order carries no
// ordering guarantee; independent resources only.
func (m *Manager) OnShutdown(handler Handler) {
	if handler == nil {
		return
	}
	m.mu.Lock()
	m.callbacks = append(m.callbacks, handler)
	m.mu.Unlock()
}

// Shutdown runs every registered callback and blocks until all have
// returned or ctx expires, whichever comes first.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	callbacks := m.callbacks
	m.mu.Unlock()

	if len(callbacks) == 0 {
		return
	}
	logger.Infof("shutting down, %d cleanup steps", len(callbacks))

	var wg sync.WaitGroup
	wg.Add(len(callbacks))
	for _, cb := range callbacks {
		go func(handler Handler) {
			defer wg.Done()
			handler(ctx)
		}(cb)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("cleanup complete")
	case <-ctx.Done():
		logger.Warnf("shutdown deadline passed: %v", ctx.Err())
	}
}
