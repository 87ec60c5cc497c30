package sim

// Event is something that happened during a Step. The set is closed.
type Event interface {
	isEvent()
}

// EventRespawn is emitted when the player is sent back to the checkpoint.
type EventRespawn struct {
	Reason string
}

// EventStomp is emitted when the player squashes an enemy.
type EventStomp struct{}

// EventContent is emitted when the player opens a sign. Resolving the label
// to displayable content is up to the front end.
type EventContent struct {
	Label string
}

// EventFinished is emitted once when the run completes.
type EventFinished struct {
	Elapsed float64
}

// EventJump is emitted when a jump impulse is applied.
type EventJump struct{}

func (EventRespawn) isEvent()  {}
func (EventStomp) isEvent()    {}
func (EventContent) isEvent()  {}
func (EventFinished) isEvent() {}
func (EventJump) isEvent()     {}

// Respawn reasons shown to the player.
const (
	ReasonPit    = "Fell into pit!"
	ReasonHazard = "Hit hazard!"
	ReasonEnemy  = "Hit by enemy!"
	NoticeStomp  = "Bug squashed!"
)
