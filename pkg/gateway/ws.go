package gateway

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/events"
	"github.com/landchain/titleledger/pkg/logging"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Auth happens at the request layer; origin is not a trust boundary here.
		return true
	},
}

// wsClient is one connected event observer. Events are pushed through a
// buffered channel so one slow reader never stalls the hub.
type wsClient struct {
	conn *websocket.Conn
	send chan events.Event
	done chan struct{}
}

// wsHub fans committed ledger events out to websocket observers. It
// implements events.Sink and subscribes to the event bus.
type wsHub struct {
	logger  *logging.ColoredLogger
	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
}

func newWSHub(logger *logging.ColoredLogger) *wsHub {
	return &wsHub{
		logger:  logger,
		clients: make(map[*wsClient]struct{}),
	}
}

// HandleEvent implements events.Sink.
func (h *wsHub) HandleEvent(evt events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- evt:
		default:
			// Client is not keeping up; drop rather than block dispatch.
			h.logger.ComponentWarn(logging.ComponentGateway, "dropping event for slow websocket client",
				zap.String("event_id", evt.ID))
		}
	}
	return nil
}

// serve upgrades the request and streams events until the client disconnects.
func (h *wsHub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ComponentWarn(logging.ComponentGateway, "websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan events.Event, 64),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[client] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.ComponentInfo(logging.ComponentGateway, "websocket observer connected",
		zap.String("remote", r.RemoteAddr), zap.Int("observers", n))

	// Reader goroutine: we ignore inbound messages but need the read loop to
	// notice disconnects.
	go func() {
		defer close(client.done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
		conn.Close()
		h.logger.ComponentInfo(logging.ComponentGateway, "websocket observer disconnected",
			zap.String("remote", r.RemoteAddr))
	}()

	for {
		select {
		case evt := <-client.send:
			if err := conn.WriteJSON(eventPayload(evt)); err != nil {
				return
			}
		case <-client.done:
			return
		}
	}
}

// closeAll disconnects every observer and rejects new ones.
func (h *wsHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}

// eventPayload is the wire form of a committed event.
type eventJSON struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	LandID    uint64 `json:"land_id"`
	Owner     string `json:"owner"`
	PrevOwner string `json:"prev_owner,omitempty"`
	Timestamp string `json:"timestamp"`
}

func eventPayload(evt events.Event) eventJSON {
	out := eventJSON{
		ID:        evt.ID,
		Kind:      string(evt.Kind),
		LandID:    evt.LandID,
		Owner:     evt.Owner.Hex(),
		Timestamp: evt.Timestamp.Format(timeFormat),
	}
	if !evt.PrevOwner.IsZero() {
		out.PrevOwner = evt.PrevOwner.Hex()
	}
	return out
}
