package client

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teamseven/codeconnect/internal/domain"
	"github.com/teamseven/codeconnect/internal/hub"
	"github.com/teamseven/codeconnect/internal/registry"
	"github.com/teamseven/codeconnect/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Buffers hold whole source
	// files, so this is far larger than a chat frame.
	maxMessageSize = 256 * 1024
)

// Client is a WebSocket connection bound to a session state machine.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	session *session.Session
}

// New creates a Client and its session. id appears in logs only.
func New(id string, conn *websocket.Conn, reg *registry.Registry, h *hub.Hub, r session.Runner) *Client {
	c := &Client{
		id:   id,
		conn: conn,
		send: make(chan []byte, 256),
	}
	c.session = session.New(id, reg, h, r, c)
	return c
}

// Send queues a message to be sent to the WebSocket client.
func (c *Client) Send(data []byte) {
	select {
	case c.send <- data:
	default:
		// Client send buffer full, drop message.
		log.Printf("client %s: send buffer full, dropping message", c.id)
	}
}

// ReadPump reads messages from the WebSocket connection and feeds them to the
// session. On any read error the session's disconnect cleanup runs and the
// connection closes.
func (c *Client) ReadPump() {
	defer func() {
		c.session.Disconnect()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("client %s: read error: %v", c.id, err)
			}
			return
		}
		c.handleMessage(data)
	}
}

// WritePump writes messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	msg, err := domain.DecodeMessage(data)
	if err != nil {
		c.sendError("invalid JSON")
		return
	}

	// Events that require a joined session are silently ignored while Idle,
	// tolerating client/server state drift after a dropped join.
	switch msg.Event {
	case domain.EvtJoin:
		if msg.RoomID == "" || msg.UserName == "" {
			c.sendError("roomId and userName required")
			return
		}
		c.session.HandleJoin(msg.RoomID, msg.UserName)

	case domain.EvtCodeChange:
		c.session.HandleCodeChange(msg.Code)

	case domain.EvtTyping:
		c.session.HandleTyping()

	case domain.EvtLanguageChange:
		c.session.HandleLanguageChange(msg.Language)

	case domain.EvtLeaveRoom:
		c.session.HandleLeave()

	case domain.EvtCompileCode:
		c.session.HandleCompile(msg.Code, msg.Language, msg.Version)

	default:
		c.sendError("unknown event: " + msg.Event)
	}
}

func (c *Client) sendError(message string) {
	errMsg := domain.ErrorMessage{Event: domain.EvtError, Message: message}
	if data, err := domain.Encode(errMsg); err == nil {
		c.Send(data)
	}
}
