package syncgroup

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunExecutesEveryQueuedFunc(t *testing.T) {
	g := NewSyncGroup()
	var n int32
	for i := 0; i < 5; i++ {
		g.Add(func() { atomic.AddInt32(&n, 1) })
	}
	g.Run()
	g.Wait()
	assert.Equal(t, int32(5), atomic.LoadInt32(&n))
}

func TestAddNilIsNoop(t *testing.T) {
	g := NewSyncGroup()
	g.Add(nil)
	g.Run()
	g.Wait()
}

func TestWaitWithoutRunReturns(t *testing.T) {
	g := NewSyncGroup()
	g.Add(func() {})
	g.Wait()
}

func TestGroupReusableAfterWait(t *testing.T) {
	g := NewSyncGroup()
	var n int32
	g.Add(func() { atomic.AddInt32(&n, 1) })
	g.Run()
	g.Wait()

	g.Add(func() { atomic.AddInt32(&n, 1) })
	g.Run()
	g.Wait()
	assert.Equal(t, int32(2), atomic.LoadInt32(&n))
}
