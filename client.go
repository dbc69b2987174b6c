package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 50
)

// Client is one player connection
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	sessionID  string
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads requests until the connection fails or is closed. Any
// read error counts as a disconnect.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error (%s): %v", c.sessionID, err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s (%s), disconnecting", c.sessionID, c.remoteAddr)
			break
		}

		if msgType != websocket.TextMessage {
			log.Printf("hub: %s sent a binary frame, ignored", c.sessionID)
			continue
		}
		c.handleMessage(message)
	}
}

// WritePump writes queued messages and keeps the connection alive.
// Text lines queued back-to-back leave in one frame, joined by '\n'.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			for message != nil {
				var err error
				message, err = c.writeFrame(message)
				if err != nil {
					return
				}
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// writeFrame writes one frame starting with message. Queued text is folded
// into a text frame; a binary message met while draining is returned so it
// goes out next, in order.
func (c *Client) writeFrame(message []byte) ([]byte, error) {
	// Binary marker (0xFF prefix from SendBinary)
	if isBinary(message) {
		return nil, c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
	}

	w, err := c.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return nil, err
	}
	w.Write(message)

	var held []byte
	n := len(c.send)
	for i := 0; i < n; i++ {
		next, ok := <-c.send
		if !ok {
			break
		}
		if isBinary(next) {
			held = next
			break
		}
		w.Write([]byte{'\n'})
		w.Write(next)
	}
	return held, w.Close()
}

func isBinary(message []byte) bool {
	return len(message) > 0 && message[0] == 0xFF
}

// SendRaw queues a text frame. A full queue drops the frame.
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary queues a binary frame, prefixed with the 0xFF marker so
// WritePump can tell it from text
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// SendMessage msgpack-encodes a structured message into a binary frame
func (c *Client) SendMessage(msg ServerMessage) {
	data, err := msgpack.Marshal(&msg)
	if err != nil {
		log.Printf("msgpack marshal error: %v", err)
		return
	}
	c.SendBinary(data)
}

// Close drops the connection; ReadPump then unregisters the session
func (c *Client) Close() {
	c.conn.Close()
}

// handleMessage decodes one request envelope and dispatches it
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("hub: %s sent malformed request: %v", c.sessionID, err)
		return
	}
	c.hub.dispatch(c, env)
}
