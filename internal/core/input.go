package core

import (
	"math/bits"
	"strings"
)

// Action is a host-independent intent. Hosts translate keys into actions;
// games never see raw key codes.
type Action uint8

const (
	ActionNone    Action = iota
	ActionJump           // primary action: jump, start, restart
	ActionConfirm        // start a round
	ActionBack           // leave to the menu
	ActionRestart        // restart after game over
	ActionQuit           // exit the host
	ActionPause          // toggle pause
	ActionDebug          // toggle the debug overlay
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Jump", "Confirm", "Back", "Restart", "Quit", "Pause", "Debug",
}

// String returns the action's name.
func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// ActionSet is a bitmask of actions triggered during one frame.
type ActionSet uint16

// Len returns the number of actions in the set.
func (s ActionSet) Len() int { return bits.OnesCount16(uint16(s)) }

// String lists the set's actions in declaration order.
func (s ActionSet) String() string {
	var names []string
	for a := ActionNone + 1; a < actionCount; a++ {
		if s&(1<<a) != 0 {
			names = append(names, a.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}

// NormalizeCommand canonicalizes a command token: trimmed and upper-cased.
// Key presses and voice recognition both produce tokens in this form.
func NormalizeCommand(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

// InputFrame is one player's input for a single simulation tick.
// Commands are normalized tokens from number keys or voice, in arrival order.
type InputFrame struct {
	Actions  ActionSet
	Commands []string
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.Actions |= 1 << a
	}
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.Actions&(1<<a) != 0
}

// AddCommand appends a command token. Empty tokens are dropped.
func (f *InputFrame) AddCommand(token string) {
	if t := NormalizeCommand(token); t != "" {
		f.Commands = append(f.Commands, t)
	}
}

// HasCommand reports whether token was received this frame.
func (f InputFrame) HasCommand(token string) bool {
	want := NormalizeCommand(token)
	for _, c := range f.Commands {
		if c == want {
			return true
		}
	}
	return false
}

// Clear empties the frame, keeping the command slice's capacity.
func (f *InputFrame) Clear() {
	f.Actions = 0
	f.Commands = f.Commands[:0]
}

// Clone returns a copy that shares no storage with f.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{Actions: f.Actions, Commands: append([]string(nil), f.Commands...)}
}
