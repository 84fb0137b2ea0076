package libraries

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"noteboard-backend/internal/logger"
)

type EventType string

const (
	EventPing  EventType = "ping"
	EventPong  EventType = "pong"
	EventError EventType = "error"

	EventBoardCreated EventType = "board_created"
	EventBoardUpdated EventType = "board_updated"
	EventBoardDeleted EventType = "board_deleted"
	EventNoteCreated  EventType = "note_created"
	EventNoteUpdated  EventType = "note_updated"
	EventNoteDeleted  EventType = "note_deleted"
)

// Event is the envelope of every message sent over the change feed
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type DeletedPayload struct {
	BoardID uint  `json:"board_id"`
	NoteID  *uint `json:"note_id,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	once sync.Once
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.Send)
	})
}

type directMessage struct {
	client  *Client
	message []byte
}

// Hub fans events out to every connected client. Client channels are only
// written and closed by the goroutine running Run.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	direct     chan directMessage
	done       chan struct{}
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		direct:     make(chan directMessage, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves register, unregister and broadcast requests until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for id, client := range h.clients {
				delete(h.clients, id)
				client.close()
			}
			return
		case client := <-h.register:
			h.clients[client.ID] = client
		case client := <-h.unregister:
			h.drop(client)
		case dm := <-h.direct:
			if _, exists := h.clients[dm.client.ID]; exists {
				h.deliver(dm.client, dm.message)
			}
		case message := <-h.broadcast:
			for _, client := range h.clients {
				h.deliver(client, message)
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, exists := h.clients[client.ID]; exists {
		delete(h.clients, client.ID)
		client.close()
	}
}

func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		// slow consumer
		h.drop(client)
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues an event for every client. It never blocks the caller;
// events are dropped when the queue is full.
func (h *Hub) Publish(eventType EventType, data interface{}) {
	message, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		h.log.WithError(err).Error("failed to marshal event")
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.log.WithField("type", eventType).Warn("event queue full, dropping event")
	}
}

// SendEvent queues an event for a single client. Like Publish it never
// blocks; the event is dropped when the queue is full.
func (h *Hub) SendEvent(client *Client, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).Error("failed to marshal event")
		return
	}
	select {
	case h.direct <- directMessage{client: client, message: message}:
	case <-h.done:
	default:
		h.log.WithFields(logrus.Fields{"client_id": client.ID, "type": event.Type}).Warn("direct queue full, dropping event")
	}
}

func parseEvent(msg []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(msg, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// WebSocketHandler streams change events to the connection and answers pings.
func WebSocketHandler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := NewClient(conn)
		log := hub.log.WithFields(logrus.Fields{"client_id": client.ID})

		hub.Register(client)
		log.Debug("websocket client connected")

		// Write loop
		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.WithError(err).Debug("write error")
					return
				}
			}
		}()

		// Read loop
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}

			event, err := parseEvent(msg)
			if err != nil {
				hub.SendEvent(client, Event{Type: EventError, Data: ErrorPayload{Message: "Invalid JSON format"}})
				continue
			}

			if event.Type == EventPing {
				hub.SendEvent(client, Event{Type: EventPong})
			} else {
				hub.SendEvent(client, Event{Type: EventError, Data: ErrorPayload{Message: "Type is invalid or not provided"}})
			}
		}

		hub.Unregister(client)
		<-done
		conn.Close()
		log.Debug("websocket client disconnected")
	})
}
