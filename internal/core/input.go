package core

import "strings"

// Action is a semantic input, abstracted from physical keys, buttons and touches.
type Action uint8

const (
	ActionNone    Action = iota
	ActionTap            // Space, click, touch: turn around, and shoot while armed
	ActionPause          // P
	ActionRestart        // R, after game over
	ActionBack           // Esc, B
	ActionQuit           // Q, Ctrl+C
	actionCount
)

var actionNames = [actionCount]string{"None", "Tap", "Pause", "Restart", "Back", "Quit"}

// String returns the name of the action.
func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one tick.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear drops every action.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// String lists the triggered actions, e.g. "Tap|Pause".
func (f InputFrame) String() string {
	var names []string
	for a := ActionTap; a < actionCount; a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}
