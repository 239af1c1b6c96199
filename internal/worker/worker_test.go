package worker

import (
	"sync"
	"testing"

	"ecocoin/internal/logging"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(3, logging.Discard())
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	p.Stop()
	require.Equal(t, 5, count)
}

func TestPoolSurvivesPanic(t *testing.T) {
	p := NewPool(1, logging.Discard())
	done := false
	p.Submit(func() { panic("boom") })
	p.Submit(nil)
	p.Submit(func() { done = true })
	p.Stop()
	require.True(t, done)
}

func TestPoolSubmitAfterStop(t *testing.T) {
	p := NewPool(0, nil)
	p.Stop()
	p.Stop()
	require.NotPanics(t, func() { p.Submit(func() {}) })
}

func TestFakePool(t *testing.T) {
	f := &FakePool{}
	ran := false
	f.Submit(func() { ran = true })
	f.Stop()
	require.True(t, ran)
	require.Equal(t, 1, f.Submitted)
	require.True(t, f.Stopped)
}
