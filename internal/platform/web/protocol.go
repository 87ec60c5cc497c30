package web

import (
	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/sim"
)

// Message types sent by the server.
const (
	TypeWelcome  = "welcome"
	TypeSnapshot = "snapshot"
	TypeEvent    = "event"
	TypePanel    = "panel"
	TypeFinished = "finished"
	TypeError    = "error"
)

// Message types sent by the client.
const (
	TypeIntent = "intent"
	TypePing   = "ping"
	TypePong   = "pong"
)

// clientMessage is a frame from the browser.
type clientMessage struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Down   bool   `json:"down"`
	SentAt int64  `json:"sentAt,omitempty"`
}

// welcomeMessage describes the session's world and static content.
type welcomeMessage struct {
	Type     string         `json:"type"`
	Player   string         `json:"player"`
	World    string         `json:"world"`
	Title    string         `json:"title"`
	Stages   int            `json:"stages"`
	Intro    string         `json:"intro"`
	Controls string         `json:"controls"`
	Links    []content.Link `json:"links"`
}

type snapshotMessage struct {
	Type     string       `json:"type"`
	Snapshot sim.Snapshot `json:"snapshot"`
}

// eventMessage reports a simulation event by kind.
type eventMessage struct {
	Type   string `json:"type"`
	Kind   string `json:"kind"`
	Reason string `json:"reason,omitempty"`
	Label  string `json:"label,omitempty"`
}

type panelMessage struct {
	Type  string        `json:"type"`
	Panel content.Panel `json:"panel"`
}

type finishedMessage struct {
	Type       string  `json:"type"`
	Elapsed    float64 `json:"elapsed"`
	Summary    string  `json:"summary"`
	Discovered string  `json:"discovered"`
	Share      string  `json:"share"`
	Best       float64 `json:"best,omitempty"`
}

type pongMessage struct {
	Type       string `json:"type"`
	ClientTime int64  `json:"clientTime"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// eventKind names an event on the wire.
func eventKind(e sim.Event) string {
	switch e.(type) {
	case sim.EventRespawn:
		return "respawn"
	case sim.EventStomp:
		return "stomp"
	case sim.EventContent:
		return "content"
	case sim.EventFinished:
		return "finished"
	case sim.EventJump:
		return "jump"
	default:
		return "unknown"
	}
}

func newEventMessage(e sim.Event) eventMessage {
	msg := eventMessage{Type: TypeEvent, Kind: eventKind(e)}
	switch ev := e.(type) {
	case sim.EventRespawn:
		msg.Reason = ev.Reason
	case sim.EventContent:
		msg.Label = ev.Label
	}
	return msg
}
