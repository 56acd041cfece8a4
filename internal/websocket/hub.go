package scanws

import (
	"encoding/json"
	"log"
	"time"

	websocket "github.com/gofiber/contrib/websocket"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

// Hub fans scan lifecycle events out to a user's connected onboarding
// clients. Traffic is server-push only: clients never send anything the
// hub acts on, their read side exists to detect disconnects.
type Hub struct {
	clients    map[int64]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *event
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID int64
	send   chan []byte
}

type event struct {
	userID  int64
	payload []byte
}

// Message is the wire shape of a scan event.
type Message struct {
	Type      string                  `json:"type"`
	Progress  float64                 `json:"progress,omitempty"`
	Message   string                  `json:"message,omitempty"`
	Found     models.ScannedData      `json:"found"`
	Detected  *models.UserPreferences `json:"detected_preferences,omitempty"`
	Timestamp string                  `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *event, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID int64) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case ev := <-h.broadcast:
			h.sendToUser(ev.userID, ev.payload)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyScanProgress pushes a progress update to the user's clients.
func (h *Hub) NotifyScanProgress(userID int64, progress float64, message string, found models.ScannedData) {
	h.publish(userID, &Message{
		Type:     "scan_progress",
		Progress: progress,
		Message:  message,
		Found:    found,
	})
}

// NotifyScanComplete pushes the final scan result with the detected draft.
func (h *Hub) NotifyScanComplete(userID int64, detected *models.UserPreferences, found models.ScannedData) {
	h.publish(userID, &Message{
		Type:     "scan_complete",
		Progress: 100,
		Found:    found,
		Detected: detected,
	})
}

func (h *Hub) publish(userID int64, message *Message) {
	message.Timestamp = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("scan hub encode event: %v", err)
		return
	}
	select {
	case h.broadcast <- &event{userID: userID, payload: payload}:
	default:
		log.Printf("scan hub dropping event for user %d: broadcast backlog full", userID)
	}
}

func (h *Hub) sendToUser(userID int64, payload []byte) {
	set, ok := h.clients[userID]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

// ReadPump discards inbound frames until the connection drops, then
// unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
