package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-keydoor/internal/game"
)

// CellSize is the side of the square of field pixels drawn as one terminal
// cell. Each cell is 2 characters wide for a square-ish appearance.
const CellSize = 20

// Cell is what a terminal cell shows, in draw priority order.
type Cell int

const (
	CellFloor Cell = iota
	CellWall
	CellObstacle
	CellPlate
	CellPlatePressed
	CellDoorOpen
	CellDoor
	CellBlock
	CellGoal
	CellGoalOpen
	CellKey
	CellPlayer
)

// Color palette
var (
	floorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#1a1a2e"))

	wallStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#555555"))

	obstacleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2e3a4a")).
			Foreground(lipgloss.Color("#4a5a6e"))

	plateStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#777777"))

	platePressedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#1a1a2e")).
				Foreground(lipgloss.Color("#ffcc00")).
				Bold(true)

	doorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8b1a1a")).
			Foreground(lipgloss.Color("#c03030"))

	doorOpenStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#8b1a1a"))

	blockStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B6914")).
			Foreground(lipgloss.Color("#A0772B"))

	goalStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#5a3a1a")).
			Foreground(lipgloss.Color("#7a5a2a"))

	goalOpenStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#00aa66")).
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ffdd44")).
			Bold(true)

	playerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#4488ff")).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true)

	// HUD styles
	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffdd44")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	clearedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#44aaff")).
			Bold(true)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true).
			Blink(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

// CellAt reports what the cell at column cx, row cy shows. A cell shows the
// highest priority entity overlapping it.
func CellAt(snap *game.Snapshot, cx, cy int) Cell {
	r := game.NewRect(cx*CellSize, cy*CellSize, CellSize, CellSize)

	if r.Overlaps(snap.Player.Bounds) {
		return CellPlayer
	}
	if !snap.Key.Collected && r.Overlaps(snap.Key.Bounds) {
		return CellKey
	}
	if r.Overlaps(snap.Goal.Bounds) {
		if snap.Goal.Open {
			return CellGoalOpen
		}
		return CellGoal
	}
	for _, b := range snap.Blocks {
		if r.Overlaps(b.Bounds) {
			return CellBlock
		}
	}

	best := CellFloor
	for _, d := range snap.Doors {
		if !r.Overlaps(d.Bounds) {
			continue
		}
		if !d.Open {
			return CellDoor
		}
		best = CellDoorOpen
	}
	if best != CellFloor {
		return best
	}

	for _, p := range snap.Plates {
		if !r.Overlaps(p.Bounds) {
			continue
		}
		if p.Pressed {
			return CellPlatePressed
		}
		best = CellPlate
	}
	if best != CellFloor {
		return best
	}

	for _, o := range snap.Obstacles {
		if r.Overlaps(o.Bounds) {
			if o.Kind == game.KindDecor {
				best = CellObstacle
				continue
			}
			return CellWall
		}
	}
	return best
}

// RenderBoard converts a snapshot into a styled terminal string.
func RenderBoard(snap *game.Snapshot) string {
	if snap == nil || snap.Field.W == 0 {
		return "Loading level..."
	}

	cols := (snap.Field.W + CellSize - 1) / CellSize
	rows := (snap.Field.H + CellSize - 1) / CellSize

	lines := make([]string, 0, rows)
	for cy := 0; cy < rows; cy++ {
		var b strings.Builder
		for cx := 0; cx < cols; cx++ {
			b.WriteString(renderCell(CellAt(snap, cx, cy), snap.Player.Facing))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func renderCell(c Cell, facing game.Facing) string {
	switch c {
	case CellPlayer:
		if facing == game.FacingLeft {
			return playerStyle.Render("◂█")
		}
		return playerStyle.Render("█▸")
	case CellKey:
		return keyStyle.Render("o¬")
	case CellGoalOpen:
		return goalOpenStyle.Render("░░")
	case CellGoal:
		return goalStyle.Render("▓▓")
	case CellBlock:
		return blockStyle.Render("▒▒")
	case CellDoor:
		return doorStyle.Render("██")
	case CellDoorOpen:
		return doorOpenStyle.Render("::")
	case CellPlatePressed:
		return platePressedStyle.Render("==")
	case CellPlate:
		return plateStyle.Render("__")
	case CellObstacle:
		return obstacleStyle.Render("▓▓")
	case CellWall:
		return wallStyle.Render("██")
	default:
		return floorStyle.Render("  ")
	}
}

// RenderHUD renders level, key, move and timer status plus the controls.
func RenderHUD(snap *game.Snapshot) string {
	if snap == nil {
		return ""
	}

	var parts []string
	parts = append(parts, titleStyle.Render("🔑 KEYDOOR"))
	parts = append(parts, "")

	parts = append(parts, fmt.Sprintf("%s %d/%d", labelStyle.Render("Level:"), snap.Level+1, snap.LevelCount))
	if snap.LevelName != "" {
		parts = append(parts, "  "+snap.LevelName)
	}
	keyStatus := "not found"
	if snap.Player.HasKey {
		keyStatus = keyStyle.Render("collected")
	}
	parts = append(parts, fmt.Sprintf("%s %s", labelStyle.Render("Key:"), keyStatus))
	parts = append(parts, fmt.Sprintf("%s %d", labelStyle.Render("Moves:"), snap.Player.Moves))
	parts = append(parts, fmt.Sprintf("%s %s", labelStyle.Render("Time:"), formatClock(snap.Elapsed)))
	parts = append(parts, fmt.Sprintf("%s %s", labelStyle.Render("Total:"), formatClock(snap.Total)))
	parts = append(parts, "")

	switch snap.Status {
	case game.StatusPlaying:
		if snap.Player.HasKey {
			parts = append(parts, "Find the door!")
		} else {
			parts = append(parts, "Find the key!")
		}
	case game.StatusLevelCleared:
		parts = append(parts, clearedStyle.Render("✔ Level cleared!"))
	case game.StatusAllLevelsWon:
		parts = append(parts, winnerStyle.Render("🏆 You completed all levels!"))
		parts = append(parts, fmt.Sprintf("   in %s", formatClock(snap.Total)))
		parts = append(parts, "   Press [N] to play again")
	}

	parts = append(parts, "")
	parts = append(parts, helpStyle.Render("WASD/Arrows: Move | R: Reset"))
	parts = append(parts, helpStyle.Render("N: Restart | Q: Quit"))

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}

// formatClock renders a duration as m:ss.t
func formatClock(d time.Duration) string {
	tenths := int(d / (100 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}
