package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
)

// MenuItem is one game entry of the picker.
type MenuItem struct {
	GameID    string
	Title     string
	HighScore int
	Commands  []string
}

// menuOutcome is how the picker was left.
type menuOutcome int

const (
	menuOpen menuOutcome = iota
	menuPlay
	menuScores
	menuQuit
)

// MenuModel is the game picker. It ends with a game choice, the scoreboard,
// or a quit request.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	outcome   menuOutcome
}

// NewMenuModel lists every registered game with its stored high score.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for _, g := range registry.List() {
		m.items = append(m.items, MenuItem{
			GameID:    g.ID,
			Title:     g.Title,
			HighScore: core.LoadHighScore(cfg.Store, core.HighScoreKey(g.ID)),
			Commands:  g.Commands,
		})
	}
	return m
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case tea.KeyMsg:
		if m.outcome = m.apply(m.keyMapper.MapKeyToMenuAction(msg)); m.outcome != menuOpen {
			return m, tea.Quit
		}
	}
	return m, nil
}

// apply moves the cursor or reports how the menu closes.
func (m *MenuModel) apply(action MenuAction) menuOutcome {
	n := len(m.items)
	switch action {
	case MenuActionQuit:
		return menuQuit
	case MenuActionScoreboard:
		return menuScores
	case MenuActionSelect:
		if n > 0 {
			return menuPlay
		}
	case MenuActionUp:
		if n > 0 {
			m.cursor = (m.cursor + n - 1) % n
		}
	case MenuActionDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	}
	return menuOpen
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuFooterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuListStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).Padding(0, 2)
)

func (m MenuModel) View() string {
	if m.outcome == menuQuit {
		return ""
	}

	rows := make([]string, 0, len(m.items))
	for i, item := range m.items {
		line := item.Title
		if item.HighScore > 0 {
			line += fmt.Sprintf("  (best %d)", item.HighScore)
		}
		if i == m.cursor {
			rows = append(rows, menuSelectedStyle.Render("> "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, menuFooterStyle.Render("no games registered"))
	}

	sections := []string{
		"",
		menuTitleStyle.Render("R E F L E X   A R C A D E"),
		"",
		menuListStyle.Render(strings.Join(rows, "\n")),
	}
	if item, ok := m.current(); ok && len(item.Commands) > 0 {
		sections = append(sections, menuFooterStyle.Render("Say or type: "+strings.Join(item.Commands, " ")))
	}
	sections = append(sections, "",
		menuFooterStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"))

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...)) + "\n"
}

func (m MenuModel) current() (MenuItem, bool) {
	if len(m.items) == 0 {
		return MenuItem{}, false
	}
	return m.items[m.cursor], true
}

// Choice returns the picked game once the player pressed Enter.
func (m MenuModel) Choice() (MenuItem, bool) {
	if m.outcome != menuPlay {
		return MenuItem{}, false
	}
	return m.current()
}

// IsQuitting reports whether the player asked to leave.
func (m MenuModel) IsQuitting() bool { return m.outcome == menuQuit }

// WantsScoreboard reports whether the player opened the scoreboard.
func (m MenuModel) WantsScoreboard() bool { return m.outcome == menuScores }

// Config returns the runtime config, updated by any resize.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerText left-pads a single line so it sits centered in width cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what a standalone menu run ended with.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker in the alternate screen until it closes.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config(), WantsScoreboard: m.WantsScoreboard()}
	if item, ok := m.Choice(); ok {
		result.GameID = item.GameID
	} else if !result.WantsScoreboard {
		result.Quit = true
	}
	return result, nil
}
