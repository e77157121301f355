package bopit

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

var commandColors = map[string]core.Color{
	CommandBop:   core.ColorBrightRed,
	CommandTwist: core.ColorBrightYellow,
	CommandPull:  core.ColorBrightGreen,
	CommandFlick: core.ColorBrightCyan,
	CommandSpin:  core.ColorBrightMagenta,
	CommandPass:  core.ColorOrange,
}

// Render draws the current command, the countdown bar and the HUD.
func (g *Game) Render(dst core.Surface) {
	dst.Clear(core.ColorDefault)
	w := dst.Width()
	cx := w / 2

	core.FillTextCentered(dst, cx, 30, "BOP IT!", core.ColorBrightYellow)
	dst.FillText(20, 70, fmt.Sprintf("Score: %d", g.score), core.ColorBrightWhite)
	round := fmt.Sprintf("Round: %d", g.round)
	dst.FillText(w-20-dst.MeasureText(round), 70, round, core.ColorBrightWhite)
	if g.highScore > 0 {
		core.FillTextCentered(dst, cx, 70, fmt.Sprintf("High: %d", g.highScore), core.ColorYellow)
	}

	switch g.phase {
	case PhaseReady:
		core.DrawPanel(dst, core.ColorBrightGreen, "READY?",
			"Answer each command before time runs out",
			"Press SPACE or say START")
	case PhasePlaying:
		g.drawCommand(dst)
	case PhaseGameOver:
		last := fmt.Sprintf("High Score: %d", g.highScore)
		if g.newHigh {
			last = "NEW HIGH SCORE!"
		}
		why := "Too slow!"
		if g.reason == ReasonWrong {
			why = "Wrong move!"
		}
		core.DrawPanel(dst, core.ColorBrightRed, "GAME OVER", why,
			fmt.Sprintf("Final Score: %d", g.score),
			fmt.Sprintf("Rounds: %d", g.round-1),
			last,
			"Press SPACE to play again")
	}

	g.drawLegend(dst)
}

func (g *Game) drawCommand(dst core.Surface) {
	cx := dst.Width() / 2
	const boxW, boxH = 300.0, 100.0
	x, y := cx-boxW/2, 220.0

	if g.command == "" {
		core.FillTextCentered(dst, cx, y+boxH/2, "Get ready...", core.ColorGray)
		return
	}

	c := commandColors[g.command]
	dst.FillRect(x, y, boxW, boxH, core.ColorGray)
	core.FillTextCentered(dst, cx, y+boxH/2-7, g.command+"!", c)

	// Countdown bar.
	const barW, barH = 600.0, 20.0
	bx, by := cx-barW/2, y+boxH+40
	dst.FillRect(bx, by, barW, barH, core.ColorGray)

	frac := 0.0
	if g.limit > 0 {
		frac = float64(g.remaining) / float64(g.limit)
	}
	barColor := core.ColorBrightGreen
	switch {
	case frac <= 0.25:
		barColor = core.ColorBrightRed
	case frac <= 0.5:
		barColor = core.ColorBrightYellow
	}
	if frac > 0 {
		dst.FillRect(bx, by, barW*frac, barH, barColor)
	}
	core.FillTextCentered(dst, cx, by+barH+10, fmt.Sprintf("%.1fs", g.remaining.Seconds()), core.ColorWhite)
}

func (g *Game) drawLegend(dst core.Surface) {
	parts := make([]string, len(Commands))
	for i, c := range Commands {
		parts[i] = fmt.Sprintf("%d %s", i+1, c)
	}
	core.FillTextCentered(dst, dst.Width()/2, dst.Height()-40, strings.Join(parts, "  "), core.ColorGray)
}
