package bot

import (
	"context"
	"sync"

	"github.com/open-builders/school-bot/internal/chat"
	"github.com/open-builders/school-bot/internal/common/logger"
)

// HandlerFunc processes one event.
type HandlerFunc func(ctx context.Context, ev *chat.Event)

// Dispatcher serializes events per key. Each key with pending events has one
// goroutine draining its FIFO queue; different keys run concurrently.
type Dispatcher struct {
	handle HandlerFunc

	mu     sync.Mutex
	ctx    context.Context
	queues map[int64][]*chat.Event
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(handle HandlerFunc) *Dispatcher {
	return &Dispatcher{
		handle: handle,
		ctx:    context.Background(),
		queues: make(map[int64][]*chat.Event),
	}
}

// Start sets the context handed to the handler.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ctx = ctx
}

// Submit queues ev behind earlier events with the same key. It reports false
// once the dispatcher is closed.
func (d *Dispatcher) Submit(ev *chat.Event) bool {
	key := ev.Key()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		logger.Warn().Int64("key", key).Str("kind", ev.Kind.String()).Msg("dispatcher closed, dropping event")
		return false
	}

	q, running := d.queues[key]
	d.queues[key] = append(q, ev)
	if !running {
		d.wg.Add(1)
		go d.drain(key)
	}
	return true
}

// Close stops accepting events and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) drain(key int64) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		q := d.queues[key]
		if len(q) == 0 {
			delete(d.queues, key)
			d.mu.Unlock()
			return
		}
		ev := q[0]
		q[0] = nil
		d.queues[key] = q[1:]
		ctx := d.ctx
		d.mu.Unlock()

		d.handle(ctx, ev)
	}
}
