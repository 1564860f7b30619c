package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/logging"
)

// HandlerID uniquely identifies a sink registration. Each call to Subscribe
// generates a new HandlerID, allowing multiple sinks with independent
// lifecycles.
type HandlerID string

// Bus fans committed ledger events out to registered sinks. Emission is
// decoupled from delivery by a buffered inbox so a slow sink never blocks the
// ledger's write path; delivery order matches emission order.
type Bus struct {
	logger *logging.ColoredLogger

	mu     sync.RWMutex
	sinks  map[HandlerID]Sink
	closed bool

	inbox chan Event
	done  chan struct{}
}

// NewBus creates a bus with the given inbox capacity and starts its dispatch
// goroutine.
func NewBus(logger *logging.ColoredLogger, buffer int) *Bus {
	if buffer <= 0 {
		buffer = 256
	}
	b := &Bus{
		logger: logger,
		sinks:  make(map[HandlerID]Sink),
		inbox:  make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	go b.dispatch()
	return b
}

// Subscribe registers a sink and returns its handler id.
func (b *Bus) Subscribe(sink Sink) HandlerID {
	id := HandlerID(uuid.NewString())
	b.mu.Lock()
	b.sinks[id] = sink
	b.mu.Unlock()
	return id
}

// Unsubscribe removes a previously registered sink.
func (b *Bus) Unsubscribe(id HandlerID) {
	b.mu.Lock()
	delete(b.sinks, id)
	b.mu.Unlock()
}

// Emit enqueues a committed event for delivery. The event id and timestamp
// are filled in when absent. Emit never blocks: when the inbox is full the
// event is dropped with a warning, matching the contract that event delivery
// is best-effort observation, not part of the write's atomicity.
func (b *Bus) Emit(evt Event) {
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return
	}

	select {
	case b.inbox <- evt:
	default:
		b.logger.ComponentWarn(logging.ComponentEvents, "event inbox full, dropping event",
			zap.String("kind", string(evt.Kind)),
			zap.Uint64("land_id", evt.LandID),
		)
	}
}

// Close stops the dispatch goroutine after draining queued events.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	close(b.inbox)
	<-b.done
}

func (b *Bus) dispatch() {
	defer close(b.done)
	for evt := range b.inbox {
		b.mu.RLock()
		sinks := make([]Sink, 0, len(b.sinks))
		for _, s := range b.sinks {
			sinks = append(sinks, s)
		}
		b.mu.RUnlock()

		for _, s := range sinks {
			if err := s.HandleEvent(evt); err != nil {
				b.logger.ComponentError(logging.ComponentEvents, "sink failed to handle event",
					zap.String("kind", string(evt.Kind)),
					zap.String("event_id", evt.ID),
					zap.Error(err),
				)
			}
		}
	}
}
