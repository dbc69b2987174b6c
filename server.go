package main

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/invopop/jsonschema"
	"github.com/skip2/go-qrcode"
)

const (
	defaultMatchLimit = 20
	maxMatchLimit     = 200
	defaultEventDays  = 7
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// SetupRoutes configures HTTP routes
func SetupRoutes(hub *Hub) *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket endpoint. Sessions can only join while the lobby is open.
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if hub.Phase() != PhaseLobby {
			http.Error(w, "game in progress", http.StatusServiceUnavailable)
			return
		}
		ip := extractIP(r)
		if !hub.CanAccept(ip) {
			http.Error(w, "too many connections", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade error: %v", err)
			return
		}

		hub.TrackConnect(ip)

		client := NewClient(hub, conn, ip)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()
	})

	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"phase":    hub.Phase().String(),
			"sessions": hub.sessions.Count(),
			"ticks":    hub.game.Ticks(),
		})
	})

	mux.HandleFunc("/api/schema", func(w http.ResponseWriter, r *http.Request) {
		schema := jsonschema.Reflect(&RequestEnvelope{})
		schema.Title = "Client request"
		writeJSON(w, http.StatusOK, schema)
	})

	mux.HandleFunc("/join.png", func(w http.ResponseWriter, r *http.Request) {
		png, err := qrcode.Encode("ws://"+r.Host+"/ws", qrcode.Medium, 256)
		if err != nil {
			log.Printf("qr encode: %v", err)
			http.Error(w, "qr error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(png)
	})

	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST only")
			return
		}
		if hub.auth == nil {
			writeError(w, http.StatusServiceUnavailable, "operator login disabled")
			return
		}
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "bad request body")
			return
		}
		token, err := hub.auth.Login(body.Username, body.Password, extractIP(r))
		switch {
		case errors.Is(err, ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		case errors.Is(err, ErrBadCredentials):
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		case err != nil:
			log.Printf("login: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	})

	mux.Handle("/api/matches", requireOperator(hub, func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", defaultMatchLimit)
		if limit <= 0 || limit > maxMatchLimit {
			limit = defaultMatchLimit
		}
		if id := r.URL.Query().Get("id"); id != "" {
			players, err := hub.db.GetMatchPlayers(id)
			if err != nil {
				log.Printf("match players %s: %v", id, err)
				writeError(w, http.StatusInternalServerError, "database error")
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"id": id, "players": players})
			return
		}
		matches, err := hub.db.ListMatches(limit)
		if err != nil {
			log.Printf("list matches: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
	}))

	mux.Handle("/api/events", requireOperator(hub, func(w http.ResponseWriter, r *http.Request) {
		days := queryInt(r, "days", defaultEventDays)
		counts, err := hub.analytics.EventCounts(days)
		if err != nil {
			log.Printf("event counts: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"days": days, "events": counts})
	}))

	return mux
}

// requireOperator guards next behind a valid operator bearer token
func requireOperator(hub *Hub, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hub.auth == nil || hub.db == nil {
			writeError(w, http.StatusServiceUnavailable, "persistence disabled")
			return
		}
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || tok == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, err := hub.auth.ValidateToken(tok); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r)
	})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
