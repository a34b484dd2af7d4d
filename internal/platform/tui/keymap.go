package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/meteor-arcade/internal/core"
)

type gameKeys struct {
	Quit    key.Binding
	Tap     key.Binding
	Back    key.Binding
	Pause   key.Binding
	Restart key.Binding
}

type menuKeys struct {
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Scores key.Binding
}

// KeyMapper translates Bubble Tea key and mouse messages to actions.
type KeyMapper struct {
	game gameKeys
	menu menuKeys
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		game: gameKeys{
			Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q")),
			Tap:     key.NewBinding(key.WithKeys(" ", "up", "w", "enter")),
			Back:    key.NewBinding(key.WithKeys("b", "esc")),
			Pause:   key.NewBinding(key.WithKeys("p")),
			Restart: key.NewBinding(key.WithKeys("r")),
		},
		menu: menuKeys{
			Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q")),
			Up:     key.NewBinding(key.WithKeys("w", "up", "k")),
			Down:   key.NewBinding(key.WithKeys("s", "down", "j")),
			Left:   key.NewBinding(key.WithKeys("a", "left", "h")),
			Right:  key.NewBinding(key.WithKeys("d", "right", "l")),
			Select: key.NewBinding(key.WithKeys("enter", " ")),
			Back:   key.NewBinding(key.WithKeys("b", "esc")),
			Scores: key.NewBinding(key.WithKeys("tab")),
		},
	}
}

// MapKey returns the in-game action for msg (ActionNone if unbound) and
// whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.game.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.game.Tap):
		return core.ActionTap, false
	case key.Matches(msg, km.game.Back):
		return core.ActionBack, false
	case key.Matches(msg, km.game.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.game.Restart):
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame adds the action for msg to frame and reports a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	frame.Set(action)
	return isQuit
}

// MapMouseToFrame turns a left click into a tap.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		frame.Set(core.ActionTap)
	}
}

// MenuAction is a title screen action.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	k := km.menu
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Left):
		return MenuActionLeft
	case key.Matches(msg, k.Right):
		return MenuActionRight
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Back):
		return MenuActionBack
	case key.Matches(msg, k.Scores):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
