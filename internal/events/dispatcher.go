package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrQueueFull is returned when the dispatcher buffer cannot take another event.
var ErrQueueFull = errors.New("roster event queue full")

// Dispatcher queues roster events and delivers them to the wrapped Publisher from a
// background goroutine, so callers never wait on the broker.
type Dispatcher struct {
	next             Publisher
	queue            chan RosterChanged
	timeout          time.Duration
	logger           *log.Logger
	shutdownComplete chan struct{}
}

// NewDispatcher constructs a Dispatcher holding up to buffer undelivered events.
// Each delivery attempt is bounded by timeout.
func NewDispatcher(next Publisher, buffer int, timeout time.Duration, logger *log.Logger) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[events] ", log.LstdFlags)
	}
	return &Dispatcher{
		next:             next,
		queue:            make(chan RosterChanged, buffer),
		timeout:          timeout,
		logger:           logger,
		shutdownComplete: make(chan struct{}),
	}
}

// Publish enqueues evt without blocking. It fails with ErrQueueFull when the buffer is full.
func (d *Dispatcher) Publish(_ context.Context, evt RosterChanged) error {
	select {
	case d.queue <- evt:
		return nil
	default:
		droppedCounter.WithLabelValues(evt.EventType).Inc()
		return fmt.Errorf("%w: dropped %s for %q", ErrQueueFull, evt.EventType, evt.Activity)
	}
}

// Start delivers queued events until ctx is cancelled, then flushes whatever is
// already queued. It should be called in a goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	defer close(d.shutdownComplete)

	for {
		select {
		case evt := <-d.queue:
			d.deliver(evt)
		case <-ctx.Done():
			d.flush()
			return
		}
	}
}

// Done is closed once Start has returned.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.shutdownComplete
}

func (d *Dispatcher) flush() {
	for {
		select {
		case evt := <-d.queue:
			d.deliver(evt)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(evt RosterChanged) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.next.Publish(ctx, evt); err != nil {
		d.logger.Printf("deliver %s (id=%s, activity=%q) failed: %v", evt.EventType, evt.EventID, evt.Activity, err)
	}
}
