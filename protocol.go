package main

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Request families (envelope "t")
const (
	ReqWindow  = "window"  // ready | game-ended | character-chosen
	ReqNet     = "net"     // disconnect | update-requested
	ReqAbility = "ability" // jump | dash | launch
	ReqAction  = "action"  // new-attack | ultimate-ability
	ReqMove    = "move"    // left | right
	ReqSlot    = "slot"    // weapon slot 1..4
)

// Request subtypes (payload "sub")
const (
	SubReady           = "ready"
	SubGameEnded       = "game-ended"
	SubCharacterChosen = "character-chosen"
	SubDisconnect      = "disconnect"
	SubUpdateRequested = "update-requested"
	SubJump            = "jump"
	SubDash            = "dash"
	SubLaunch          = "launch"
	SubNewAttack       = "new-attack"
	SubUltimate        = "ultimate-ability"
	SubLeft            = "left"
	SubRight           = "right"
)

// Text control lines
const (
	infoUpdate   = "INFO_UPDATE"
	GameOverLine = infoUpdate + " GAMEOVER"
)

// InEnvelope is the wire shape of every client request. D stays raw
// until the family is known.
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d"`
}

// Request is the payload shared by all request families
type Request struct {
	ID   string `json:"id" jsonschema:"description=sender session ID (C-n)"`
	Sub  string `json:"sub,omitempty" jsonschema:"description=request subtype"`
	Kind string `json:"kind,omitempty" jsonschema:"enum=norman,enum=goblino,enum=titan,description=avatar kind for character-chosen"`
	X    int    `json:"x,omitempty" jsonschema:"description=aim point x for new-attack"`
	Y    int    `json:"y,omitempty" jsonschema:"description=aim point y for new-attack"`
	Slot int    `json:"slot,omitempty" jsonschema:"minimum=1,maximum=4,description=weapon slot"`
}

// RequestEnvelope is the typed form of InEnvelope, used for schema
// generation and by Go clients.
type RequestEnvelope struct {
	T string  `json:"t" jsonschema:"enum=window,enum=net,enum=ability,enum=action,enum=move,enum=slot"`
	D Request `json:"d"`
}

// MessageKind tells a client whether a structured message was addressed
// to it alone or to everyone
type MessageKind uint8

const (
	MsgWhisper MessageKind = iota + 1
	MsgBroadcast
)

// BoxState is hitbox geometry on the wire
type BoxState struct {
	X int `msgpack:"x" json:"x"`
	Y int `msgpack:"y" json:"y"`
	W int `msgpack:"w" json:"w"`
	H int `msgpack:"h" json:"h"`
}

// ServerMessage is the structured entity update, sent msgpack-encoded in
// a binary frame. Box is nil for pure ID messages such as the session ID
// assignment.
type ServerMessage struct {
	ID   string      `msgpack:"id" json:"id"`
	Box  *BoxState   `msgpack:"box" json:"box"`
	Kind MessageKind `msgpack:"kind" json:"kind"`
}

// StateLine renders "<ID> <x> <y> <w> <h>"
func StateLine(o *Object) string {
	var b strings.Builder
	b.Grow(len(o.ID) + 24)
	b.WriteString(o.ID)
	for _, v := range [4]int{o.Box.X, o.Box.Y, o.Box.W, o.Box.H} {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// RemoveLine renders "INFO_UPDATE REMOVE <ID>"
func RemoveLine(id string) string {
	return infoUpdate + " REMOVE " + id
}
