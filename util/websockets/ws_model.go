package websockets

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Message types
const (
	MsgTypeSubscribe     = "subscribe"
	MsgTypeUnsubscribe   = "unsubscribe"
	MsgTypeReportUpdate  = "report_update"
	MsgTypeCommentUpdate = "comment_update"
)

// TopicReports is the global feed carrying every report mutation.
const TopicReports = "reports"

// ReportTopic is the per-report feed for clients watching a single report.
func ReportTopic(reportID int64) string {
	return fmt.Sprintf("reports:%d", reportID)
}

// Client represents a connected WebSocket user
type Client struct {
	Conn   *websocket.Conn
	UserID string

	send chan []byte
	done chan struct{}

	mu   sync.Mutex
	subs map[string]*Subscription
}

type WebSocketManager struct {
	hub        *Hub
	clients    map[*websocket.Conn]*Client
	register   chan *Client
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// Message struct for incoming WebSocket messages
type Message struct {
	Type   string   `json:"type"`
	UserID string   `json:"user_id,omitempty"`
	Topics []string `json:"topics,omitempty"`
}

// Envelope wraps every payload pushed to subscribers.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
