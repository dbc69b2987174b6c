package main

import (
	"encoding/json"
	"log"
	"time"
)

type gameHandler func(g *Game, a *Avatar, req Request, now time.Time)

// gameHandlers are the requests honored while a match runs, keyed by
// family then subtype. Slot requests carry no subtype.
var gameHandlers = map[string]map[string]gameHandler{
	ReqAbility: {
		SubJump:   func(_ *Game, a *Avatar, _ Request, _ time.Time) { a.Jump() },
		SubDash:   func(_ *Game, a *Avatar, _ Request, now time.Time) { a.Dash(now) },
		SubLaunch: func(_ *Game, a *Avatar, _ Request, now time.Time) { a.Launch(now) },
	},
	ReqAction: {
		SubNewAttack: func(g *Game, a *Avatar, req Request, now time.Time) { g.fire(a, Vec{req.X, req.Y}, now) },
		SubUltimate:  func(g *Game, a *Avatar, _ Request, now time.Time) { g.ultimate(a, now) },
	},
	ReqMove: {
		SubLeft:  func(_ *Game, a *Avatar, _ Request, _ time.Time) { a.SpeedUp(-1) },
		SubRight: func(_ *Game, a *Avatar, _ Request, _ time.Time) { a.SpeedUp(1) },
	},
	ReqSlot: {
		"": func(_ *Game, a *Avatar, req Request, _ time.Time) { a.SwitchWeapon(req.Slot) },
	},
}

// dispatch routes one decoded request according to the current phase
func (h *Hub) dispatch(c *Client, env InEnvelope) {
	var req Request
	if len(env.D) > 0 {
		if err := json.Unmarshal(env.D, &req); err != nil {
			log.Printf("hub: %s sent bad %q payload: %v", c.sessionID, env.T, err)
			return
		}
	}
	if req.ID != c.sessionID {
		log.Printf("hub: request from %s claims id %q, dropped", c.sessionID, req.ID)
		return
	}
	if env.T == ReqNet && req.Sub == SubDisconnect {
		c.Close()
		return
	}

	switch h.phase.Current() {
	case PhaseLobby:
		h.dispatchLobby(c, env.T, req)
	case PhaseGame:
		h.dispatchGame(c, env.T, req)
	default:
		log.Printf("hub: game over, %s %s/%s dropped", c.sessionID, env.T, req.Sub)
	}
}

func (h *Hub) dispatchLobby(c *Client, t string, req Request) {
	id := c.sessionID
	switch {
	case t == ReqWindow && req.Sub == SubCharacterChosen:
		kind, ok := ParseAvatarKind(req.Kind)
		if !ok {
			log.Printf("hub: %s chose unknown character %q", id, req.Kind)
			return
		}
		h.game.Submit(func(*World) {
			if err := h.game.chooseAvatar(id, kind); err != nil {
				log.Printf("hub: choose avatar for %s: %v", id, err)
			}
		})
	case t == ReqWindow && req.Sub == SubReady:
		var chosen bool
		if !h.game.Call(func(w *World) { chosen = w.AvatarBySession(id) != nil }) {
			return
		}
		if !chosen {
			log.Printf("hub: %s is ready without a character, ignored", id)
			return
		}
		h.sessions.MarkReady(id)
		log.Printf("hub: %s ready", id)
		h.checkStart()
	case t == ReqWindow && req.Sub == SubGameEnded:
		log.Printf("hub: %s reports game ended", id)
	case t == ReqNet && req.Sub == SubUpdateRequested:
		h.game.Submit(func(*World) { h.game.broadcastWorld() })
	default:
		log.Printf("hub: %s %s/%s not honored in lobby", id, t, req.Sub)
	}
}

func (h *Hub) dispatchGame(c *Client, t string, req Request) {
	id := c.sessionID
	if t == ReqNet && req.Sub == SubUpdateRequested {
		h.game.Submit(func(*World) { h.game.broadcastWorld() })
		return
	}
	sub := req.Sub
	if t == ReqSlot {
		sub = ""
	}
	handle, ok := gameHandlers[t][sub]
	if !ok {
		log.Printf("hub: %s %s/%s not honored in game", id, t, req.Sub)
		return
	}
	h.game.Submit(func(*World) {
		h.game.withAvatar(id, func(a *Avatar, now time.Time) { handle(h.game, a, req, now) })
	})
}
