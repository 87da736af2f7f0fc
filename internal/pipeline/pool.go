package pipeline

import (
	"context"
	"sync"

	"github.com/fluentoffice/notes-backend/internal/logger"
)

type implPool struct {
	runner  Runner
	logger  logger.Logger
	workers int
	queue   chan uint
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewPool creates a worker pool that processes enqueued meeting ids.
func NewPool(runner Runner, log logger.Logger, workers, queueSize int) Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 32
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &implPool{
		runner:  runner,
		logger:  log,
		workers: workers,
		queue:   make(chan uint, queueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines.
func (p *implPool) Start() {
	p.logger.Info(p.ctx, "Starting pipeline pool with %d workers", p.workers)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *implPool) worker(id int) {
	defer p.wg.Done()

	for meetingID := range p.queue {
		// Errors are already persisted on the record; log and move on.
		if err := p.runner.Process(p.ctx, meetingID); err != nil {
			p.logger.Error(p.ctx, "Worker %d: meeting %d failed: %v", id, meetingID, err)
		}
	}
}

// Enqueue submits a meeting for background processing without blocking the
// caller. Returns false when the queue is full or the pool is shut down.
func (p *implPool) Enqueue(meetingID uint) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	select {
	case p.queue <- meetingID:
		return true
	default:
		p.logger.Warn(p.ctx, "Pipeline queue full, rejecting meeting %d", meetingID)
		return false
	}
}

// Shutdown stops accepting work, drains the queue and waits for in-flight
// runs to finish.
func (p *implPool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.logger.Info(p.ctx, "Shutting down pipeline pool")
	p.wg.Wait()
	p.cancel()
}
