package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"menedzer-plikow/internal/metrics"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const DefaultJournalSize = 1000

// Event is one change to the tree. ID grows by one per event so clients can ask for
// everything after the last id they saw.
type Event struct {
	ID        int64           `json:"id"`
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	EventTime time.Time       `json:"event_time"`
	Payload   json.RawMessage `json:"payload"`
}

type Hub struct {
	clients    map[*Client]bool
	mu         sync.RWMutex
	Register   chan *Client
	Unregister chan *Client
	quit       chan struct{}
	stopOnce   sync.Once

	journalMu   sync.Mutex
	journal     []Event
	journalSize int
	lastID      int64

	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewHub(journalSize int, m *metrics.Metrics, log *slog.Logger) *Hub {
	if journalSize <= 0 {
		journalSize = DefaultJournalSize
	}
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:     make(map[*Client]bool),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		quit:        make(chan struct{}),
		journalSize: journalSize,
		metrics:     m,
		log:         log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		case <-h.quit:
			h.closeAll()
			return
		}
	}
}

// Stop ends Run and disconnects every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Join hands the client to Run. It reports false once the hub has stopped.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	h.metrics.SetWebsocketClients(len(h.clients))
	h.log.Debug("websocket client registered", "client", client.ID, "clients", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.metrics.SetWebsocketClients(len(h.clients))
		h.log.Debug("websocket client unregistered", "client", client.ID, "clients", len(h.clients))
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.metrics.SetWebsocketClients(0)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish records the event in the journal and pushes it to every connected client.
// A client whose buffer is full misses the message and can catch up from the journal.
func (h *Hub) Publish(eventType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.log.Warn("failed to marshal event payload", "event_type", eventType, "error", err)
		return
	}

	h.journalMu.Lock()
	h.lastID++
	event := Event{
		ID:        h.lastID,
		EventID:   uuid.NewString(),
		EventType: eventType,
		EventTime: time.Now().UTC(),
		Payload:   raw,
	}
	h.journal = append(h.journal, event)
	if over := len(h.journal) - h.journalSize; over > 0 {
		h.journal = append([]Event(nil), h.journal[over:]...)
	}
	h.journalMu.Unlock()

	eventData, err := json.Marshal(event)
	if err != nil {
		h.log.Warn("failed to marshal event", "event_id", event.ID, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- eventData:
		default:
			h.log.Warn("websocket send buffer is full, dropping event", "client", client.ID, "event_id", event.ID)
		}
	}
}

// EventsSince returns up to limit journal events with an id greater than sinceID, oldest first.
func (h *Hub) EventsSince(sinceID int64, limit int) ([]Event, error) {
	if sinceID < 0 {
		return nil, fmt.Errorf("invalid event id %d", sinceID)
	}
	h.journalMu.Lock()
	defer h.journalMu.Unlock()

	events := []Event{}
	for _, e := range h.journal {
		if e.ID <= sinceID {
			continue
		}
		events = append(events, e)
		if limit > 0 && len(events) == limit {
			break
		}
	}
	return events, nil
}
