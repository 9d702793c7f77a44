// Package worker 在請求流程之外執行不需等待結果的工作，例如刪除被取代的食譜圖片
package worker

import (
	"errors"
	"sync"

	"foodgram/internal/logging"
)

var ErrStopped = errors.New("worker pool stopped")

// Task 是交給 pool 執行的工作
type Task func()

// Pool 定義簡單的 worker pool
type Pool interface {
	Submit(Task) error
	Stop()
}

// queueSize 是 Submit 阻塞前可累積的工作數
const queueSize = 64

// NewPool 建立 n 個 worker 的 pool，n<=0 時預設為 1
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, queueSize)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
}

func (p *pool) loop() {
	defer p.wg.Done()
	for job := range p.jobs {
		run(job)
	}
}

// run 避免單一 task panic 拖垮 worker
func run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Interface("panic", r).Msg("worker task panicked")
		}
	}()
	job()
}

// Submit 將 t 排入佇列，Stop 之後會回傳錯誤
func (p *pool) Submit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	p.jobs <- t
	return nil
}

// Stop 執行完佇列中的工作並等待 worker 結束
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
