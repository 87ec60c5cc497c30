package web

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/sim"
	"github.com/vovakirdan/resume-run/internal/storage"
	"github.com/vovakirdan/resume-run/internal/world"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 256
)

// session is one connected browser and the run it drives.
type session struct {
	id      uint64
	conn    *websocket.Conn
	player  string
	logger  *log.Logger
	content content.Bundle
	store   *storage.Store
	every   int
	tick    time.Duration

	sim    *sim.Simulation
	driver *sim.Driver
	latch  *core.Latch

	send      chan []byte
	ctx       context.Context
	frames    int
	lastPhase sim.Phase
	closeOnce sync.Once
}

func newSession(s *Server, id uint64, conn *websocket.Conn, def world.Definition, player string) *session {
	tune := s.config.Tuning
	ss := &session{
		id:        id,
		conn:      conn,
		player:    player,
		logger:    s.logger.With("session", id),
		content:   s.config.Content,
		store:     s.config.Store,
		every:     s.config.SnapshotEvery,
		tick:      time.Second / time.Duration(s.config.TickRate),
		send:      make(chan []byte, sendBuffer),
		lastPhase: -1,
	}
	ss.sim = sim.New(def, tune)
	// Browsers report key releases, so held actions need no hold window.
	ss.latch = core.NewLatch(0)
	ss.driver = sim.NewDriver(ss.sim, tune.Driver.MaxStep, sim.RendererFunc(ss.render))
	ss.driver.OnEvents(ss.handleEvents)
	return ss
}

// run blocks until the client goes away.
func (ss *session) run(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	ss.ctx = ctx

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ss.writePump()
	}()

	def := ss.sim.Definition()
	ss.enqueue(welcomeMessage{
		Type:     TypeWelcome,
		Player:   ss.player,
		World:    def.ID,
		Title:    def.Title,
		Stages:   len(def.Stages),
		Intro:    content.Intro(len(def.Stages)),
		Controls: content.Controls(),
		Links:    ss.content.Links,
	}, true)

	ticker := time.NewTicker(ss.tick)
	driverDone := make(chan struct{})
	go func() {
		defer close(driverDone)
		_ = ss.driver.Run(ctx, ticker.C, ss.latch)
	}()

	ss.readLoop()

	cancel()
	ticker.Stop()
	<-driverDone
	ss.driver.Close()
	close(ss.send)
	<-writerDone
	ss.conn.Close()
}

// readLoop applies intents until the connection fails.
func (ss *session) readLoop() {
	ss.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := ss.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ss.logger.Warn("read error", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			ss.logger.Debug("discarding malformed message", "error", err)
			continue
		}

		switch msg.Type {
		case TypeIntent:
			a, err := core.ParseAction(msg.Action)
			if err != nil {
				ss.logger.Debug("discarding intent", "error", err)
				ss.enqueue(errorMessage{Type: TypeError, Error: err.Error()}, false)
				continue
			}
			if a == core.ActionQuit {
				ss.close(websocket.CloseNormalClosure, "bye")
				return
			}
			if msg.Down {
				ss.latch.Press(a, time.Now())
			} else {
				ss.latch.Release(a)
			}
		case TypePing:
			ss.enqueue(pongMessage{Type: TypePong, ClientTime: msg.SentAt}, false)
		default:
			ss.logger.Debug("discarding message", "type", msg.Type)
		}
	}
}

// writePump owns all data writes to the connection.
func (ss *session) writePump() {
	failed := false
	for msg := range ss.send {
		if failed {
			continue
		}
		_ = ss.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ss.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			ss.logger.Debug("write failed", "error", err)
			failed = true
			ss.conn.Close()
		}
	}
}

// enqueue queues a message. Reliable messages wait for room; others are
// dropped when the client falls behind.
func (ss *session) enqueue(v any, reliable bool) {
	data, err := json.Marshal(v)
	if err != nil {
		ss.logger.Error("encode message", "error", err)
		return
	}
	if !reliable {
		select {
		case ss.send <- data:
		default:
		}
		return
	}
	select {
	case ss.send <- data:
	case <-ss.ctx.Done():
	}
}

func (ss *session) close(code int, reason string) {
	ss.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(code, reason)
		_ = ss.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		ss.conn.Close()
	})
}

// render streams every n-th snapshot and every phase change.
func (ss *session) render(snap sim.Snapshot) {
	due := ss.frames%ss.every == 0 || snap.Phase != ss.lastPhase
	ss.frames++
	if !due {
		return
	}
	ss.lastPhase = snap.Phase
	ss.enqueue(snapshotMessage{Type: TypeSnapshot, Snapshot: snap}, snap.Phase != sim.PhasePlaying)
}

func (ss *session) handleEvents(events []sim.Event) {
	for _, e := range events {
		ss.enqueue(newEventMessage(e), true)
		switch ev := e.(type) {
		case sim.EventContent:
			ss.enqueue(panelMessage{Type: TypePanel, Panel: ss.content.Panel(ev.Label)}, true)
		case sim.EventFinished:
			ss.finish()
		}
	}
}

// finish records the run and sends the summary. EventFinished fires once per
// run, so every call is a distinct run.
func (ss *session) finish() {
	c := ss.sim.Completion()
	worldID := ss.sim.Definition().ID
	ss.logger.Info("run finished",
		"world", worldID,
		"player", ss.player,
		"time", content.FormatTime(c.Elapsed),
		"respawns", c.Respawns,
	)

	msg := finishedMessage{
		Type:       TypeFinished,
		Elapsed:    c.Elapsed,
		Summary:    content.Summary(c.Stages, c.Elapsed),
		Discovered: content.DiscoveredLine(c.Discovered, c.Signs),
		Share:      ss.content.ShareText(c.Elapsed),
	}

	if ss.store != nil {
		_, err := ss.store.SaveRun(storage.Run{
			WorldID:    worldID,
			Player:     ss.player,
			Elapsed:    time.Duration(c.Elapsed * float64(time.Second)),
			Respawns:   c.Respawns,
			Stomps:     c.Stomps,
			Discovered: c.Discovered,
			Signs:      c.Signs,
		})
		if err != nil {
			ss.logger.Error("could not save run", "error", err)
		} else if best, err := ss.store.Best(worldID); err == nil && best != nil {
			msg.Best = best.Elapsed.Seconds()
		}
	}

	ss.enqueue(msg, true)
}
