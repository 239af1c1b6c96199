// Package worker 執行不需要阻塞請求的背景工作，例如寄送歡迎信
package worker

import (
	"log/slog"
	"sync"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool defines a simple worker pool.
type Pool interface {
	Submit(Task)
	Stop()
}

// queueFactor 每個 worker 可排隊的工作數
const queueFactor = 8

// NewPool creates a pool with n workers. n<=0 defaults to 1.
// 任一工作 panic 時只記錄錯誤，不會終止 worker。
func NewPool(n int, log *slog.Logger) Pool {
	if n <= 0 {
		n = 1
	}
	if log == nil {
		log = slog.Default()
	}
	p := &pool{jobs: make(chan Task, n*queueFactor), log: log}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.run(job)
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
	log  *slog.Logger

	mu      sync.RWMutex
	stopped bool
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("worker task panicked", "panic", r)
		}
	}()
	job()
}

// Submit 在 Stop 之後呼叫會直接丟棄工作
func (p *pool) Submit(t Task) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		p.log.Warn("worker pool stopped, task dropped")
		return
	}
	p.jobs <- t
}

// Stop 等待佇列中所有工作完成
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// FakePool 同步執行工作，供測試使用
type FakePool struct {
	Submitted int
	Stopped   bool
}

func (f *FakePool) Submit(t Task) {
	f.Submitted++
	if t != nil {
		t()
	}
}

func (f *FakePool) Stop() { f.Stopped = true }
