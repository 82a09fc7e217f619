package gfx

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/amalg/go-keydoor/internal/game"
)

// Keyboard reads held directions from arrows and WASD. ebiten reports real
// key state, so no latch is needed.
type Keyboard struct{}

// Poll implements game.InputSource.
func (Keyboard) Poll() game.Input {
	return game.Input{
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}
}
