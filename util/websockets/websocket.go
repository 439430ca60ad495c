package websockets

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Number of outbound messages buffered per connection.
const clientSendBuffer = 32

// NewWebSocketManager initializes a WebSocketManager on top of a Hub.
func NewWebSocketManager(hub *Hub) *WebSocketManager {
	return &WebSocketManager{
		hub:        hub,
		clients:    make(map[*websocket.Conn]*Client),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
	}
}

// Hub returns the broadcast hub the manager delivers from.
func (manager *WebSocketManager) Hub() *Hub {
	return manager.hub
}

// Run starts the WebSocket manager
func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.Conn] = client
			manager.mu.Unlock()

		case conn := <-manager.unregister:
			manager.mu.Lock()
			if client, exists := manager.clients[conn]; exists {
				delete(manager.clients, conn)
				manager.mu.Unlock()
				client.teardown()
				log.Printf("Client %s disconnected", client.UserID)
			} else {
				manager.mu.Unlock()
			}
		}
	}
}

// HandleConnections upgrades HTTP requests to WebSocket connections
func (manager *WebSocketManager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket Upgrade Error:", err)
		return
	}

	client := &Client{
		Conn: conn,
		send: make(chan []byte, clientSendBuffer),
		done: make(chan struct{}),
		subs: make(map[string]*Subscription),
	}
	manager.register <- client

	go client.writePump()

	defer func() {
		manager.unregister <- conn
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var message Message
		if err := json.Unmarshal(msg, &message); err != nil {
			log.Println("Invalid JSON:", err)
			continue
		}

		switch message.Type {
		case MsgTypeSubscribe:
			if message.UserID != "" {
				client.UserID = message.UserID
			}
			for _, topic := range message.Topics {
				manager.subscribe(client, topic)
			}

		case MsgTypeUnsubscribe:
			for _, topic := range message.Topics {
				client.dropTopic(topic)
			}
		}
	}
}

func (manager *WebSocketManager) subscribe(client *Client, topic string) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if _, exists := client.subs[topic]; exists {
		return
	}
	sub := manager.hub.Subscribe(topic)
	client.subs[topic] = sub
	go client.forward(sub)
}

func (c *Client) dropTopic(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sub, exists := c.subs[topic]; exists {
		delete(c.subs, topic)
		sub.Close()
	}
}

// forward moves one subscription's messages onto the shared send queue.
// A full queue drops the message rather than stalling the hub.
func (c *Client) forward(sub *Subscription) {
	for payload := range sub.C {
		select {
		case c.send <- payload:
		case <-c.done:
			return
		default:
		}
	}
}

// writePump is the single writer on the connection.
func (c *Client) writePump() {
	for {
		select {
		case payload := <-c.send:
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) teardown() {
	c.mu.Lock()
	for topic, sub := range c.subs {
		delete(c.subs, topic)
		sub.Close()
	}
	c.mu.Unlock()

	close(c.done)
	c.Conn.Close()
}
