package channel

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// State is the connection state of the channel.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

// envelope is the wire format: one JSON object per websocket text frame.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handler receives the raw payload of one inbound event.
type Handler func(data json.RawMessage)

// Client is the real-time event channel: one connection per authenticated
// session. Handlers run on the read-loop goroutine; the UI queues its own
// redraws. The client never retries or reconnects on its own.
type Client struct {
	url    string
	dialer *websocket.Dialer

	mu       sync.Mutex
	handlers map[string][]Handler
	state    State
	conn     *websocket.Conn

	sendMu sync.Mutex
}

func NewClient(url string) *Client {
	return &Client{
		url:      url,
		dialer:   &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		handlers: make(map[string][]Handler),
	}
}

// On registers a handler for an inbound event. Multiple handlers per event
// are invoked in registration order.
func (c *Client) On(event string, fn Handler) {
	c.mu.Lock()
	c.handlers[event] = append(c.handlers[event], fn)
	c.mu.Unlock()
}

// Connect opens the connection with the bearer token in the handshake and
// starts the read loop. Registered connect handlers fire on success.
func (c *Client) Connect(token string) error {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return fmt.Errorf("channel already connected")
	}
	c.state = StateConnecting
	c.mu.Unlock()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, _, err := c.dialer.Dial(c.url, header)
	if err != nil {
		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()
		return fmt.Errorf("connect channel: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.state = StateConnected
	c.mu.Unlock()

	go c.readLoop(conn)

	c.notify(EventConnect, nil)
	return nil
}

// Disconnect tears the connection down unconditionally, with no drain.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

// IsConnected reports whether the channel is usable.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateConnected
}

// Emit sends one outbound event. Fire-and-forget: no acknowledgement is
// awaited.
func (c *Client) Emit(event string, payload any) error {
	c.mu.Lock()
	conn := c.conn
	connected := c.state == StateConnected
	c.mu.Unlock()

	if !connected || conn == nil {
		return fmt.Errorf("channel not connected")
	}

	env := envelope{Event: event}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", event, err)
		}
		env.Data = raw
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if err := conn.WriteJSON(env); err != nil {
		return fmt.Errorf("emit %s: %w", event, err)
	}
	return nil
}

// readLoop dispatches inbound events until the connection drops. A read
// failure while still connected surfaces as an error event.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			wasConnected := c.state == StateConnected && c.conn == conn
			if wasConnected {
				c.state = StateDisconnected
				c.conn = nil
			}
			c.mu.Unlock()
			if wasConnected {
				conn.Close()
				data, _ := json.Marshal(ErrorPayload{Message: "connection lost"})
				c.notify(EventError, data)
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
			continue
		}
		c.notify(env.Event, env.Data)
	}
}

func (c *Client) notify(event string, data json.RawMessage) {
	c.mu.Lock()
	handlers := make([]Handler, len(c.handlers[event]))
	copy(handlers, c.handlers[event])
	c.mu.Unlock()

	for _, fn := range handlers {
		fn(data)
	}
}
