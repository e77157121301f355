package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

// actionKeys binds keys to actions. Several keys may share an action.
var actionKeys = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeySpace, core.ActionJump},
	{ebiten.KeyArrowUp, core.ActionJump},
	{ebiten.KeyW, core.ActionJump},
	{ebiten.KeyEnter, core.ActionConfirm},
	{ebiten.KeyNumpadEnter, core.ActionConfirm},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyR, core.ActionRestart},
	{ebiten.KeyF3, core.ActionDebug},
	{ebiten.KeyEscape, core.ActionBack},
	{ebiten.KeyB, core.ActionBack},
	{ebiten.KeyQ, core.ActionQuit},
}

// commandKeys are bound to the game's commands in order.
var commandKeys = [][2]ebiten.Key{
	{ebiten.KeyDigit1, ebiten.KeyNumpad1},
	{ebiten.KeyDigit2, ebiten.KeyNumpad2},
	{ebiten.KeyDigit3, ebiten.KeyNumpad3},
	{ebiten.KeyDigit4, ebiten.KeyNumpad4},
	{ebiten.KeyDigit5, ebiten.KeyNumpad5},
	{ebiten.KeyDigit6, ebiten.KeyNumpad6},
	{ebiten.KeyDigit7, ebiten.KeyNumpad7},
	{ebiten.KeyDigit8, ebiten.KeyNumpad8},
	{ebiten.KeyDigit9, ebiten.KeyNumpad9},
}

// readFrame adds the keys reported by justPressed to frame.
func readFrame(justPressed func(ebiten.Key) bool, commands []string, frame *core.InputFrame) {
	for _, b := range actionKeys {
		if justPressed(b.key) {
			frame.Set(b.action)
		}
	}
	for i, keys := range commandKeys {
		if i >= len(commands) {
			break
		}
		if justPressed(keys[0]) || justPressed(keys[1]) {
			frame.AddCommand(commands[i])
		}
	}
}
