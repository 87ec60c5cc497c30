// Package audio plays short synthesized cues for simulation events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/resume-run/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a tone gliding from one frequency to another.
type Cue struct {
	Name     string
	From, To float64
	Duration time.Duration
	Volume   float64
}

// Cues for each event kind.
var (
	CueJump    = Cue{Name: "jump", From: 440, To: 660, Duration: 90 * time.Millisecond, Volume: 0.15}
	CueStomp   = Cue{Name: "stomp", From: 220, To: 110, Duration: 80 * time.Millisecond, Volume: 0.25}
	CueRespawn = Cue{Name: "respawn", From: 330, To: 110, Duration: 300 * time.Millisecond, Volume: 0.2}
	CueContent = Cue{Name: "content", From: 660, To: 880, Duration: 150 * time.Millisecond, Volume: 0.15}
	CueFinish  = Cue{Name: "finish", From: 523, To: 1046, Duration: 600 * time.Millisecond, Volume: 0.2}
)

// CueFor returns the cue played for an event.
func CueFor(e sim.Event) (Cue, bool) {
	switch e.(type) {
	case sim.EventJump:
		return CueJump, true
	case sim.EventStomp:
		return CueStomp, true
	case sim.EventRespawn:
		return CueRespawn, true
	case sim.EventContent:
		return CueContent, true
	case sim.EventFinished:
		return CueFinish, true
	}
	return Cue{}, false
}

// Streamer returns a finite streamer for the cue.
func (c Cue) Streamer(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(c.Duration), newToneGenerator(sr, c))
}

// Player mixes cues onto the speaker. All methods are no-ops until
// Initialize succeeds, so a missing audio device only silences the game.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewPlayer creates an uninitialized player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted toggles output without closing the speaker.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if muted && p.initialized {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

// Muted reports whether output is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Play queues a cue.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	speaker.Lock()
	p.mixer.Add(c.Streamer(sampleRate))
	speaker.Unlock()
}

// Handle plays the cues for a frame's events. It matches the driver's
// OnEvents callback.
func (p *Player) Handle(events []sim.Event) {
	for _, e := range events {
		if c, ok := CueFor(e); ok {
			p.Play(c)
		}
	}
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// toneGenerator is a sine glide with a short attack and exponential decay.
type toneGenerator struct {
	sr      beep.SampleRate
	cue     Cue
	samples int
	pos     int
	phase   float64
}

func newToneGenerator(sr beep.SampleRate, c Cue) *toneGenerator {
	return &toneGenerator{sr: sr, cue: c, samples: max(1, sr.N(c.Duration))}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	attack := float64(g.sr.N(5 * time.Millisecond))
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.samples), 1)
		freq := g.cue.From + (g.cue.To-g.cue.From)*progress

		envelope := math.Exp(-3 * progress)
		if attack > 0 && float64(g.pos) < attack {
			envelope *= float64(g.pos) / attack
		}

		sample := g.cue.Volume * envelope * math.Sin(g.phase)
		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += 2 * math.Pi * freq / float64(g.sr)
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}
