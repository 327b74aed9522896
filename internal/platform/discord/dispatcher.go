package discord

import (
	"context"

	"verification-gateway-backend/internal/common/logger"
)

const defaultQueueSize = 64

// Dispatcher carries delivery tasks from the web handlers onto the goroutine
// that owns the bot session. Producers never wait for a task to run or
// complete; a slow or failed delivery must not delay the HTTP response.
type Dispatcher struct {
	tasks chan func()
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		tasks: make(chan func(), defaultQueueSize),
	}
}

// Run consumes tasks until the context is cancelled. Meant to be started as
// a goroutine alongside the bot session.
func (d *Dispatcher) Run(ctx context.Context) {
	logger.Info().Msg("Delivery dispatcher started")
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Delivery dispatcher stopped")
			return
		case task := <-d.tasks:
			task()
		}
	}
}

// Enqueue hands a task to the dispatcher without blocking. When the queue is
// full the task is dropped; delivery is fire-and-forget by design.
func (d *Dispatcher) Enqueue(task func()) bool {
	select {
	case d.tasks <- task:
		return true
	default:
		logger.Warn().Msg("Delivery queue full, dropping task")
		return false
	}
}
