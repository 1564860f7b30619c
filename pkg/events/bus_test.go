package events

import (
	"sync"
	"testing"
	"time"

	"github.com/landchain/titleledger/pkg/identity"
	"github.com/landchain/titleledger/pkg/logging"
)

func testLogger(t *testing.T) *logging.ColoredLogger {
	t.Helper()
	logger, err := logging.NewColoredLogger(logging.ComponentEvents, false)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

// collector records delivered events for assertions.
type collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *collector) HandleEvent(evt Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	return nil
}

func (c *collector) snapshot() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event{}, c.events...)
}

func TestBusDeliversInOrder(t *testing.T) {
	bus := NewBus(testLogger(t), 16)
	sink := &collector{}
	bus.Subscribe(sink)

	owner := identity.MustParse("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	for i := uint64(1); i <= 5; i++ {
		bus.Emit(Event{Kind: KindLandRegistered, LandID: i, Owner: owner})
	}
	bus.Close()

	got := sink.snapshot()
	if len(got) != 5 {
		t.Fatalf("expected 5 events, got %d", len(got))
	}
	for i, evt := range got {
		if evt.LandID != uint64(i+1) {
			t.Errorf("event %d: expected land %d, got %d", i, i+1, evt.LandID)
		}
		if evt.ID == "" {
			t.Errorf("event %d: missing id", i)
		}
		if evt.Timestamp.IsZero() {
			t.Errorf("event %d: missing timestamp", i)
		}
	}
}

func TestBusFansOutToAllSinks(t *testing.T) {
	bus := NewBus(testLogger(t), 16)
	a, b := &collector{}, &collector{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Emit(Event{Kind: KindLandVerified, LandID: 9, Owner: identity.MustParse("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")})
	bus.Close()

	if len(a.snapshot()) != 1 || len(b.snapshot()) != 1 {
		t.Errorf("both sinks should receive the event, got %d and %d", len(a.snapshot()), len(b.snapshot()))
	}
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(testLogger(t), 16)
	sink := &collector{}
	id := bus.Subscribe(sink)
	bus.Unsubscribe(id)

	bus.Emit(Event{Kind: KindAdminChanged, Owner: identity.MustParse("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")})
	bus.Close()

	if len(sink.snapshot()) != 0 {
		t.Error("unsubscribed sink should receive nothing")
	}
}

func TestBusEmitAfterCloseIsNoOp(t *testing.T) {
	bus := NewBus(testLogger(t), 16)
	sink := &collector{}
	bus.Subscribe(sink)
	bus.Close()

	// Must not panic or deliver.
	bus.Emit(Event{Kind: KindLandRegistered, LandID: 1})
	time.Sleep(10 * time.Millisecond)

	if len(sink.snapshot()) != 0 {
		t.Error("events emitted after close should be discarded")
	}
}

func TestSinkFuncAdapter(t *testing.T) {
	var got Event
	done := make(chan struct{})
	bus := NewBus(testLogger(t), 1)
	bus.Subscribe(SinkFunc(func(evt Event) error {
		got = evt
		close(done)
		return nil
	}))

	bus.Emit(Event{Kind: KindOwnershipTransferred, LandID: 4})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sink func not invoked")
	}
	bus.Close()

	if got.Kind != KindOwnershipTransferred || got.LandID != 4 {
		t.Errorf("unexpected event %+v", got)
	}
}
