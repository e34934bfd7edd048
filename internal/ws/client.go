package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 32
)

// Client is a single upgraded socket owned by one user.
type Client struct {
	id       string
	userID   uuid.UUID
	conn     *websocket.Conn
	registry *Registry

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(registry *Registry, userID uuid.UUID, conn *websocket.Conn) *Client {
	return &Client{
		id:       uuid.NewString(),
		userID:   userID,
		conn:     conn,
		registry: registry,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

func (c *Client) Send(msg []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.registry.Unregister(c.id)
		close(c.done)
		_ = c.conn.Close()
	})
}

// ReadPump discards client frames and keeps the read deadline alive.
func (c *Client) ReadPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
