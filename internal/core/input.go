package core

import (
	"fmt"
	"strings"
)

// Action represents a semantic player intent, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow
	ActionRight           // D, Right arrow
	ActionJump            // Space, W, Up arrow
	ActionInteract        // E - open the panel of a nearby sign
	ActionPause           // P, Escape
	ActionConfirm         // Enter - start from the menu
	ActionRestart         // R
	ActionQuit            // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:     "none",
	ActionLeft:     "left",
	ActionRight:    "right",
	ActionJump:     "jump",
	ActionInteract: "interact",
	ActionPause:    "pause",
	ActionConfirm:  "confirm",
	ActionRestart:  "restart",
	ActionQuit:     "quit",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Continuous reports whether the action is a held state (movement, jump)
// rather than a one-shot command.
func (a Action) Continuous() bool {
	return a == ActionLeft || a == ActionRight || a == ActionJump
}

// ParseAction converts a wire name back to an Action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name && a != ActionNone {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// InputFrame represents the intents active during one simulation frame.
// Continuous actions are present while held; one-shot actions appear in
// exactly one frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// InputOf builds a frame with the given actions set.
func InputOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}
