package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/meteor-arcade/internal/config"
	"github.com/vovakirdan/meteor-arcade/internal/core"
	"github.com/vovakirdan/meteor-arcade/internal/storage"
)

// Presets in the order the menu cycles through them.
var menuPresets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// MenuChoice is what the user picked on the title screen.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScoreboard
	ChoiceQuit
)

const (
	itemPlay = iota
	itemDifficulty
	itemScores
	itemQuit
	itemCount
)

// MenuModel is the Bubble Tea model for the title screen.
type MenuModel struct {
	cursor    int
	preset    int // Index into menuPresets
	width     int
	height    int
	best      time.Duration
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a new menu model. preset preselects a difficulty;
// the store, when present, supplies the best time shown under the title.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset string) MenuModel {
	m := MenuModel{
		preset:    1,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for i, p := range menuPresets {
		if string(p) == preset {
			m.preset = i
		}
	}
	if store != nil {
		if best, err := store.BestScore(); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor + itemCount - 1) % itemCount

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % itemCount

	case MenuActionLeft:
		if m.cursor == itemDifficulty {
			m.preset = (m.preset + len(menuPresets) - 1) % len(menuPresets)
		}

	case MenuActionRight:
		if m.cursor == itemDifficulty {
			m.preset = (m.preset + 1) % len(menuPresets)
		}

	case MenuActionScoreboard:
		m.choice = ChoiceScoreboard
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case itemPlay:
			m.choice = ChoicePlay
			return m, tea.Quit
		case itemDifficulty:
			m.preset = (m.preset + 1) % len(menuPresets)
		case itemScores:
			m.choice = ChoiceScoreboard
			return m, tea.Quit
		case itemQuit:
			m.choice = ChoiceQuit
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("D O D G E   T H E   M E T E O R"), m.width, 31))
	b.WriteString("\n\n")

	best := "No runs yet"
	if m.best > 0 {
		best = fmt.Sprintf("Best: %.1fs", m.best.Seconds())
	}
	b.WriteString(centerText(dimStyle.Render(best), m.width, len(best)))
	b.WriteString("\n\n")

	labels := [itemCount]string{
		"Play",
		fmt.Sprintf("Difficulty: < %s >", menuPresets[m.preset]),
		"High Scores",
		"Quit",
	}
	for i, label := range labels {
		line := "  " + label
		style := lipgloss.NewStyle()
		if i == m.cursor {
			line = "> " + label
			style = activeStyle
		}
		b.WriteString(centerText(style.Render(line), m.width, len(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width, len(controls)))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the user picked.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Preset returns the selected difficulty.
func (m MenuModel) Preset() config.DifficultyPreset {
	return menuPresets[m.preset]
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText left-pads text so that a visible width of n is centered.
func centerText(text string, width, n int) string {
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice     MenuChoice
	Difficulty config.DifficultyPreset
	Config     core.RuntimeConfig
}

// RunMenu runs the title screen and returns the selection.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset string) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, preset), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	return MenuResult{
		Choice:     m.Choice(),
		Difficulty: m.Preset(),
		Config:     m.Config(),
	}, nil
}
