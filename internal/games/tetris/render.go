package tetris

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Layout, in screen cells. Each playfield cell is two characters wide so
// blocks look square in a terminal.
const (
	cellW = 2
	wellW = engine.Width*cellW + 2
	wellH = engine.Height + 2
	sideW = 12
	gapW  = 1

	layoutW = sideW + gapW + wellW + gapW + sideW

	minScreenW = layoutW
	minScreenH = wellH
)

var kindColors = map[engine.Kind]core.Color{
	engine.I: core.ColorCyan,
	engine.J: core.ColorBlue,
	engine.L: core.ColorOrange,
	engine.O: core.ColorYellow,
	engine.S: core.ColorGreen,
	engine.T: core.ColorMagenta,
	engine.Z: core.ColorRed,
}

const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '.'
)

// layout holds the screen origin of each panel for the current size.
type layout struct {
	left, well, right, top int
}

func (g *Game) layout() layout {
	area := core.CenteredRect(g.screenW, g.screenH, layoutW, wellH)
	return layout{
		left:  area.X,
		well:  area.X + sideW + gapW,
		right: area.X + sideW + gapW + wellW + gapW,
		top:   area.Y,
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()
	l := g.layout()

	g.renderWell(dst, l, &snap)
	g.renderHold(dst, l, &snap)
	g.renderStats(dst, l, &snap)
	g.renderNext(dst, l, &snap)
	g.renderOverlay(dst, l, &snap)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", minScreenW, minScreenH, g.screenW, g.screenH))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderWell draws the playfield border, locked cells, ghost and active piece.
func (g *Game) renderWell(dst *core.Screen, l layout, snap *engine.Snapshot) {
	dst.DrawBoxColored(core.NewRect(l.well, l.top, wellW, wellH), core.ColorGray)

	for y := range engine.Height {
		for x := range engine.Width {
			if k := snap.Field[y][x]; k != engine.None {
				g.drawCell(dst, l, x, y, blockRune, kindColors[k])
				continue
			}
			px, py := g.cellPos(l, x, y)
			dst.SetColored(px+1, py, emptyRune, core.ColorDim)
		}
	}

	if !snap.HasPiece {
		return
	}
	color := kindColors[snap.Piece.Kind]
	if snap.GhostOffset > 0 {
		for _, c := range snap.Cells {
			g.drawCell(dst, l, c.X, c.Y+snap.GhostOffset, ghostRune, color)
		}
	}
	for _, c := range snap.Cells {
		g.drawCell(dst, l, c.X, c.Y, blockRune, color)
	}
}

func (g *Game) cellPos(l layout, x, y int) (int, int) {
	return l.well + 1 + x*cellW, l.top + 1 + y
}

func (g *Game) drawCell(dst *core.Screen, l layout, x, y int, r rune, c core.Color) {
	px, py := g.cellPos(l, x, y)
	for i := range cellW {
		dst.SetColored(px+i, py, r, c)
	}
}

// renderHold draws the hold box. A held piece that cannot be swapped back
// yet is dimmed.
func (g *Game) renderHold(dst *core.Screen, l layout, snap *engine.Snapshot) {
	box := core.NewRect(l.left, l.top, sideW, 4)
	dst.DrawBoxColored(box, core.ColorGray)
	dst.DrawText(box.X+2, box.Y, " HOLD ")

	if snap.Held == engine.None {
		return
	}
	color := kindColors[snap.Held]
	if snap.HoldUsed {
		color = core.ColorGray
	}
	drawMini(dst, box.Inset(1), snap.Held, color)
}

// renderNext draws the preview column.
func (g *Game) renderNext(dst *core.Screen, l layout, snap *engine.Snapshot) {
	n := min(g.cfg.Game.Preview, len(snap.Next))
	if n == 0 {
		return
	}
	box := core.NewRect(l.right, l.top, sideW, 3*n+1)
	dst.DrawBoxColored(box, core.ColorGray)
	dst.DrawText(box.X+2, box.Y, " NEXT ")

	for i, k := range snap.Next[:n] {
		slot := core.NewRect(box.X+1, box.Y+1+3*i, sideW-2, 2)
		drawMini(dst, slot, k, kindColors[k])
	}
}

// drawMini draws a piece in its spawn orientation, centered in area.
func drawMini(dst *core.Screen, area core.Rect, k engine.Kind, color core.Color) {
	cells := engine.Shape(k, 0)
	minX, minY, maxX := cells[0].X, cells[0].Y, cells[0].X
	for _, c := range cells[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
		maxX = max(maxX, c.X)
	}
	w := (maxX - minX + 1) * cellW
	x0 := area.X + max((area.W-w)/2, 0)
	for _, c := range cells {
		px := x0 + (c.X-minX)*cellW
		py := area.Y + c.Y - minY
		for i := range cellW {
			dst.SetColored(px+i, py, blockRune, color)
		}
	}
}

// renderStats draws score, level, lines and time below the hold box.
func (g *Game) renderStats(dst *core.Screen, l layout, snap *engine.Snapshot) {
	type stat struct{ label, value string }

	elapsed := formatTicks(snap.Tick, g.runtime.TickRate)
	var stats []stat
	if g.mode == ModeSprint {
		remaining := max(snap.LineGoal-snap.Lines, 0)
		stats = []stat{
			{"LINES", fmt.Sprintf("%d/%d", snap.Lines, snap.LineGoal)},
			{"LEFT", strconv.Itoa(remaining)},
			{"TIME", elapsed},
			{"SCORE", strconv.Itoa(snap.Score)},
		}
	} else {
		stats = []stat{
			{"SCORE", strconv.Itoa(snap.Score)},
			{"LEVEL", strconv.Itoa(snap.Level)},
			{"LINES", strconv.Itoa(snap.Lines)},
			{"TIME", elapsed},
		}
	}

	y := l.top + 5
	for _, s := range stats {
		dst.DrawTextColored(l.left+1, y, s.label, core.ColorGray)
		dst.DrawText(l.left+1, y+1, s.value)
		y += 3
	}
}

// renderOverlay draws the pause, game over and sprint clear messages over the well.
func (g *Game) renderOverlay(dst *core.Screen, l layout, snap *engine.Snapshot) {
	var lines []string
	color := core.ColorWhite
	switch {
	case snap.Phase == engine.PhaseCompleted:
		lines = []string{"CLEAR!", formatTicks(snap.Tick, g.runtime.TickRate), "R to restart"}
		color = core.ColorGreen
	case snap.Phase == engine.PhaseGameOver:
		lines = []string{"GAME OVER", "Score " + strconv.Itoa(snap.Score), "R to restart"}
		color = core.ColorRed
	case g.paused:
		lines = []string{"PAUSED", "P to resume"}
		color = core.ColorYellow
	default:
		return
	}

	mid := l.top + wellH/2
	panel := core.NewRect(l.well+2, mid-len(lines)/2-1, wellW-4, len(lines)+2)
	dst.DrawRect(panel, ' ')
	dst.DrawBoxColored(panel, color)
	for i, line := range lines {
		x := l.well + (wellW-len(line))/2
		dst.DrawTextColored(x, panel.Y+1+i, line, color)
	}
}

// formatTicks renders a tick count as m:ss.cc.
func formatTicks(ticks uint64, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	centis := ticks * 100 / uint64(tickRate)
	return fmt.Sprintf("%d:%02d.%02d", centis/6000, centis/100%60, centis%100)
}
