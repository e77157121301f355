package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
	"github.com/vovakirdan/reflex-arcade/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"f3", tea.KeyMsg{Type: tea.KeyF3}, core.ActionDebug, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"x", runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestDigitKeysSendCommands(t *testing.T) {
	km := NewKeyMapper("BOP", "TWIST", "PULL", "FLICK", "SPIN", "PASS")

	for i, want := range []string{"BOP", "TWIST", "PULL", "FLICK", "SPIN", "PASS"} {
		frame := core.NewInputFrame()
		km.MapKeyToFrame(runeKey(string(rune('1'+i))), &frame)
		if !frame.HasCommand(want) {
			t.Errorf("key %d: commands = %v, expected %s", i+1, frame.Commands, want)
		}
	}

	frame := core.NewInputFrame()
	km.MapKeyToFrame(runeKey("7"), &frame)
	km.MapKeyToFrame(runeKey("0"), &frame)
	if len(frame.Commands) != 0 {
		t.Errorf("unbound digits produced %v", frame.Commands)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

// stubGame ends the run on the first Step that carries the END command.
type stubGame struct {
	steps []core.InputFrame
	phase string
	score int
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Commands() []string       { return []string{"END", "NOP"} }
func (g *stubGame) Reset(core.RuntimeConfig) { g.phase = "ready" }
func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, Phase: g.phase, GameOver: g.phase == "game-over"}
}
func (g *stubGame) Render(dst core.Surface) {
	dst.FillText(0, 0, "STUB "+g.phase, core.ColorWhite)
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	var events []core.Event
	if in.HasCommand("END") {
		g.phase = "game-over"
		g.score = 42
		events = append(events, core.GameEnded{Score: 42, Reason: "test"})
	}
	return core.StepResult{State: g.State(), Events: events}
}

func TestGameModelFeedsKeysAndVoice(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, Seed: 1}, Options{})
	m.Init()

	next, _ := m.Update(runeKey("2"))
	m = next.(GameModel)
	next, _ = m.Update(VoiceMsg("end"))
	m = next.(GameModel)
	next, _ = m.Update(TickMsg{})
	m = next.(GameModel)

	if len(game.steps) != 1 {
		t.Fatalf("steps = %d, expected 1", len(game.steps))
	}
	if got := strings.Join(game.steps[0].Commands, ","); got != "NOP,END" {
		t.Errorf("commands = %s, expected NOP,END", got)
	}
	if !m.State().GameOver {
		t.Error("model should track the game state")
	}

	m.Update(TickMsg{})
	if len(game.steps[1].Commands) != 0 {
		t.Error("input should be cleared after each tick")
	}
}

func TestGameModelRecordsHistory(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/scores.db")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	game := &stubGame{}
	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, Seed: 1}, Options{History: store})
	m.Init()

	next, _ := m.Update(VoiceMsg("END"))
	next, _ = next.(GameModel).Update(TickMsg{})
	next.(GameModel).Update(TickMsg{})

	runs, err := store.RecentRuns("stub", 0)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 42 || runs[0].Reason != "test" {
		t.Errorf("RecentRuns() = %+v, expected one run of 42 ended by test", runs)
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, Seed: 1}, Options{})
	m.Init()
	m.gameState.Phase = "playing"

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(GameModel).BackToMenu() {
		t.Error("back is ignored during play")
	}

	m.gameState.Phase = "game-over"
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(GameModel).BackToMenu() || cmd == nil {
		t.Error("back after game over should leave the game")
	}
}

func TestGameModelView(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1}, Options{Voice: make(chan string), VoiceLabel: "mic"})
	m.Init()

	view := m.View()
	if !strings.Contains(view, "STUB ready") {
		t.Errorf("View() missing game output:\n%s", view)
	}
	if !strings.Contains(view, "mic") || !strings.Contains(view, "1-2 commands") {
		t.Errorf("View() missing status line:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != 10 {
		t.Errorf("View() has %d lines, expected 10", lines)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "AB", core.ColorRed)
	s.DrawText(2, 0, "CD", core.ColorGreen)

	out := RenderScreen(s)
	for _, want := range []string{"A", "B", "C", "D"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() lost %q", want)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() should emit one line per row")
	}
}

func init() {
	registry.Register("zz-board", func() registry.Game { return &stubGame{} })
	registry.Register("zz-other", func() registry.Game { return &stubGame{} })
}

func TestScoreboardViews(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/scores.db")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	for _, r := range []storage.Run{
		{GameID: "zz-board", Score: 30, Reason: "timeout", NewHigh: true},
		{GameID: "zz-board", Score: 10, Reason: "wrong command"},
		{GameID: "zz-board", Score: 20, Reason: "timeout"},
	} {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	for m.games[m.cursor].ID != "zz-board" {
		m.step(1)
	}

	scores := func() []int {
		var out []int
		for _, r := range m.runs {
			out = append(out, r.Score)
		}
		return out
	}

	if got := scores(); len(got) != 3 || got[0] != 30 || got[2] != 10 {
		t.Errorf("best view = %v, expected [30 20 10]", got)
	}
	if got := m.summary(); got != "Played 3  |  Best 30  |  Avg 20.0  |  timeout 2  |  wrong command 1" {
		t.Errorf("summary() = %q", got)
	}

	next, _ := m.Update(runeKey("v"))
	m = next.(ScoreboardModel)
	if got := scores(); len(got) != 3 || got[0] != 20 || got[2] != 30 {
		t.Errorf("recent view = %v, expected [20 10 30]", got)
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("View() should name the recent view")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if len(m.runs) != 0 || m.summary() != "" {
		t.Error("nil store should show an empty board")
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("View() should show the empty message")
	}
}

func TestMenuNavigation(t *testing.T) {
	store := core.NewMemoryStore()
	store.Set(core.HighScoreKey("zz-board"), "88")

	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Store: store})
	next, _ := m.Update(runeKey("k"))
	m = next.(MenuModel)
	if m.cursor != len(m.items)-1 {
		t.Errorf("up from the first item: cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}
	next, _ = m.Update(runeKey("j"))
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("down from the last item: cursor = %d, expected 0", m.cursor)
	}

	for m.items[m.cursor].GameID != "zz-board" {
		next, _ = m.Update(runeKey("j"))
		m = next.(MenuModel)
	}
	view := m.View()
	if !strings.Contains(view, "(best 88)") || !strings.Contains(view, "Say or type: END NOP") {
		t.Errorf("View() missing high score or command hint:\n%s", view)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if item, ok := m.Choice(); !ok || item.GameID != "zz-board" || cmd == nil {
		t.Errorf("Choice() = %+v, %v, expected zz-board", item, ok)
	}
	if m.IsQuitting() || m.WantsScoreboard() {
		t.Error("selecting a game should not quit or open the scoreboard")
	}
}
