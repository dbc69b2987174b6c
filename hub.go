package main

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sasha-s/go-deadlock"
)

const (
	maxConnsPerIP = 5
	maxTotalConns = 16
)

// Services are the optional backing stores a hub reports to
type Services struct {
	DB        *DB
	Auth      *Auth
	Analytics *Analytics
}

// Hub is the session manager: it owns the connection registry and the
// phase machine, and fans game output out to every client.
type Hub struct {
	mu         deadlock.RWMutex
	clients    map[string]*Client // session ID -> client
	unregister chan *Client
	sessions   *SessionRegistry
	phase      PhaseMachine
	game       *Game
	mapData    *MapData
	// Connection limiting (accessed from HTTP handlers)
	connMu     deadlock.Mutex
	ipConns    map[string]int
	totalConns int

	db        *DB
	auth      *Auth
	analytics *Analytics

	empty     chan struct{} // closed when the last session leaves
	emptyOnce sync.Once
}

// NewHub creates a hub that will play m once every session is ready
func NewHub(m *MapData, period time.Duration, svc Services) *Hub {
	h := &Hub{
		clients:    make(map[string]*Client),
		unregister: make(chan *Client, 64),
		sessions:   NewSessionRegistry(),
		mapData:    m,
		ipConns:    make(map[string]int),
		db:         svc.DB,
		auth:       svc.Auth,
		analytics:  svc.Analytics,
		empty:      make(chan struct{}),
	}
	h.game = NewGame(&h.phase, h, period)
	if svc.Analytics != nil {
		h.game.events = svc.Analytics
	}
	if svc.DB != nil {
		h.game.matches = svc.DB
	}
	return h
}

// Phase returns the current server phase
func (h *Hub) Phase() Phase {
	return h.phase.Current()
}

// Done is closed once the last connected session has left
func (h *Hub) Done() <-chan struct{} {
	return h.empty
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	if h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Register binds a new connection to a fresh session ID and whispers the
// ID to it
func (h *Hub) Register(c *Client) string {
	id := h.sessions.Add()
	c.sessionID = id
	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()

	h.Whisper(id, ServerMessage{ID: id})
	log.Printf("hub: %s connected from %s", id, c.remoteAddr)
	h.analytics.Track(EvtSessionStart, id, "")
	return id
}

// Run processes disconnects
func (h *Hub) Run() {
	for c := range h.unregister {
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	id := c.sessionID
	h.mu.Lock()
	if cur, ok := h.clients[id]; !ok || cur != c {
		h.mu.Unlock()
		return
	}
	delete(h.clients, id)
	close(c.send)
	left := len(h.clients)
	h.mu.Unlock()

	h.sessions.Remove(id)
	log.Printf("hub: %s disconnected (%d left)", id, left)
	h.analytics.Track(EvtSessionEnd, id, "")
	h.game.Submit(func(*World) { h.game.dropSession(id) })

	if h.phase.Current() == PhaseLobby {
		h.checkStart()
	}
	if left == 0 {
		h.emptyOnce.Do(func() { close(h.empty) })
	}
}

// checkStart moves the server from LOBBY to GAME once every session is
// ready. Readiness implies a chosen avatar.
func (h *Hub) checkStart() {
	if !h.sessions.AllReady() {
		return
	}
	if !h.phase.StartGame() {
		return
	}
	log.Printf("hub: all %d sessions ready, starting game", h.sessions.Count())
	h.game.Begin(h.mapData)
}

// Broadcast sends lines to every session as one text frame
func (h *Hub) Broadcast(lines ...string) {
	if len(lines) == 0 {
		return
	}
	data := []byte(strings.Join(lines, "\n"))
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.SendRaw(data)
	}
}

// Whisper sends a structured message to one session
func (h *Hub) Whisper(sessionID string, msg ServerMessage) {
	h.mu.RLock()
	c, ok := h.clients[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	msg.Kind = MsgWhisper
	c.SendMessage(msg)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}
