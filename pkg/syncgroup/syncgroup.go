package syncgroup

import (
	"sync"
)

type groupFunc func()

// SyncGroup wraps sync.WaitGroup for fire-and-forget fan-outs: queue
// functions with Add, launch them all with Run. Add and Done bookkeeping
// is handled internally so a missing Done cannot hang the group.
type SyncGroup struct {
	wg sync.WaitGroup

	mu      sync.Mutex
	fns     []groupFunc
	running int
}

// NewSyncGroup creates an empty group.
func NewSyncGroup() *SyncGroup {
	return &SyncGroup{}
}

// Add queues a function. Queuing while a previous Run is still in flight
// is a no-op; Wait first.
func (g *SyncGroup) Add(fn groupFunc) {
	if fn == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running > 0 {
		return
	}
	g.fns = append(g.fns, fn)
}

// Run launches every queued function in its own goroutine and clears the
// queue. It does not wait.
func (g *SyncGroup) Run() {
	g.mu.Lock()
	if g.running > 0 {
		g.mu.Unlock()
		return
	}
	fns := g.fns
	g.fns = nil
	g.running = len(fns)
	g.mu.Unlock()

	for _, fn := range fns {
		g.wg.Add(1)
		go func(do groupFunc) {
			defer func() {
				g.wg.Done()
				g.mu.Lock()
				g.running--
				g.mu.Unlock()
			}()
			do()
		}(fn)
	}
}

// Wait blocks until every launched function has returned.
func (g *SyncGroup) Wait() {
	g.wg.Wait()
}
