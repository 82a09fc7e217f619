// Package gfx is the graphical frontend: an ebiten window drawing the field
// at its native 800x600 resolution.
package gfx

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/amalg/go-keydoor/internal/game"
)

// Palette
var (
	backgroundColor   = colornames.Midnightblue
	wallColor         = colornames.Dimgray
	obstacleColor     = colornames.Slategray
	plateColor        = colornames.Darkgoldenrod
	platePressedColor = colornames.Gold
	doorColor         = colornames.Firebrick
	blockColor        = colornames.Peru
	blockEdgeColor    = colornames.Sienna
	goalColor         = colornames.Saddlebrown
	goalOpenColor     = colornames.Mediumseagreen
	keyColor          = colornames.Gold
	playerColor       = colornames.Dodgerblue
	eyeColor          = colornames.White
	overlayColor      = color.RGBA{A: 160}
)

// Game adapts an Engine to ebiten's frame loop. ebiten calls Update at the
// tick rate, so the engine is ticked from Update instead of running its own
// ticker.
type Game struct {
	engine *game.Engine
	snap   game.Snapshot

	keyBob    *bounce
	doorPulse *bounce
}

// New wires the keyboard to the engine and subscribes to its ticks.
func New(engine *game.Engine) *Game {
	g := &Game{
		engine:    engine,
		snap:      engine.Snapshot(),
		keyBob:    newBounce(-3, 3, 0.6),
		doorPulse: newBounce(0.25, 0.6, 0.8),
	}
	engine.SetInputSource(Keyboard{})
	// Tick runs on the Update goroutine, so the callback needs no lock
	engine.OnTick(func(s game.Snapshot) {
		g.snap = s
	})
	return g
}

// Update applies one-shot commands and steps the game one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.EnqueueCommand(game.CmdReset)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.engine.EnqueueCommand(game.CmdRestart)
	}

	g.engine.Tick()

	dt := float32(1) / float32(ebiten.TPS())
	g.keyBob.Update(dt)
	g.doorPulse.Update(dt)
	return nil
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	s := &g.snap
	screen.Fill(backgroundColor)

	for _, p := range s.Plates {
		c := plateColor
		if p.Pressed {
			c = platePressedColor
		}
		fillRect(screen, p.Bounds, c)
	}
	for _, o := range s.Obstacles {
		c := wallColor
		if o.Kind == game.KindDecor {
			c = obstacleColor
		}
		fillRect(screen, o.Bounds, c)
	}
	for _, d := range s.Doors {
		if d.Open {
			fillRect(screen, d.Bounds, fade(doorColor, g.doorPulse.value))
			strokeRect(screen, d.Bounds, 2, doorColor)
			continue
		}
		fillRect(screen, d.Bounds, doorColor)
	}

	if s.Goal.Open {
		fillRect(screen, s.Goal.Bounds, goalOpenColor)
	} else {
		fillRect(screen, s.Goal.Bounds, goalColor)
	}
	strokeRect(screen, s.Goal.Bounds, 2, blockEdgeColor)

	for _, b := range s.Blocks {
		fillRect(screen, b.Bounds, blockColor)
		strokeRect(screen, b.Bounds, 2, blockEdgeColor)
	}

	if !s.Key.Collected {
		// The bob is cosmetic; collision uses the unmoved bounds
		k := s.Key.Bounds
		vector.FillRect(screen, float32(k.X), float32(k.Y)+g.keyBob.value, float32(k.W), float32(k.H), keyColor, false)
	}

	drawPlayer(screen, s.Player)
	g.drawHUD(screen)
}

// Layout keeps the logical screen at the field size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.snap.Field.W, g.snap.Field.H
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := &g.snap
	key := "no"
	if s.Player.HasKey {
		key = "yes"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level %d/%d: %s", s.Level+1, s.LevelCount, s.LevelName), 15, 15)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Key: %s  Moves: %d", key, s.Player.Moves), 15, 35)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Time: %.1fs", s.Elapsed.Seconds()), 15, 55)
	ebitenutil.DebugPrintAt(screen, "R: reset  N: restart  Q: quit", 15, s.Field.H-25)

	switch s.Status {
	case game.StatusLevelCleared:
		g.drawBanner(screen, "Level complete!")
	case game.StatusAllLevelsWon:
		g.drawBanner(screen, fmt.Sprintf("You completed all levels in %.1fs!\nPress N to play again", s.Total.Seconds()))
	}
}

func (g *Game) drawBanner(screen *ebiten.Image, msg string) {
	w, h := float32(g.snap.Field.W), float32(g.snap.Field.H)
	vector.FillRect(screen, 0, h/2-40, w, 80, overlayColor, false)
	ebitenutil.DebugPrintAt(screen, msg, int(w/2)-100, int(h/2)-15)
}

func drawPlayer(screen *ebiten.Image, p game.Player) {
	r := p.Bounds
	fillRect(screen, r, playerColor)

	// Eye on the facing side
	eyeX := float32(r.X + r.W - 10)
	if p.Facing == game.FacingLeft {
		eyeX = float32(r.X + 4)
	}
	vector.FillRect(screen, eyeX, float32(r.Y+6), 6, 6, eyeColor, false)
}

func fillRect(screen *ebiten.Image, r game.Rect, c color.Color) {
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func strokeRect(screen *ebiten.Image, r game.Rect, width float32, c color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), width, c, false)
}

// fade scales a color to the given opacity. color.RGBA is premultiplied, so
// every channel is scaled.
func fade(c color.RGBA, alpha float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * alpha),
		G: uint8(float32(c.G) * alpha),
		B: uint8(float32(c.B) * alpha),
		A: uint8(float32(c.A) * alpha),
	}
}
