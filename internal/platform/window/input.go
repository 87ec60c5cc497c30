package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/resume-run/internal/core"
)

// keyState is the part of the keyboard the game reads.
type keyState interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

// ebitenKeys reads the live keyboard.
type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Held keys produce continuous actions every frame they are down.
var heldKeys = map[core.Action][]ebiten.Key{
	core.ActionLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	core.ActionRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	core.ActionJump:  {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
}

// Pressed keys produce one-shot actions on the frame they go down.
var pressedKeys = map[core.Action][]ebiten.Key{
	core.ActionInteract: {ebiten.KeyE},
	core.ActionPause:    {ebiten.KeyEscape, ebiten.KeyP},
	core.ActionConfirm:  {ebiten.KeyEnter},
	core.ActionRestart:  {ebiten.KeyR},
	core.ActionQuit:     {ebiten.KeyQ},
}

// readInput samples the keyboard into an InputFrame. Left and right held
// together cancel out.
func readInput(ks keyState) core.InputFrame {
	f := core.NewInputFrame()
	for a, keys := range heldKeys {
		for _, k := range keys {
			if ks.Pressed(k) {
				f.Set(a)
				break
			}
		}
	}
	if f.Has(core.ActionLeft) && f.Has(core.ActionRight) {
		held := core.NewInputFrame()
		if f.Has(core.ActionJump) {
			held.Set(core.ActionJump)
		}
		f = held
	}
	for a, keys := range pressedKeys {
		for _, k := range keys {
			if ks.JustPressed(k) {
				f.Set(a)
				break
			}
		}
	}
	return f
}

// muteKey toggles audio.
const muteKey = ebiten.KeyM
