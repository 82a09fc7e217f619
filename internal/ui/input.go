package ui

import (
	"sync"
	"time"

	"github.com/amalg/go-keydoor/internal/game"
)

// DefaultHold is how long a single key press keeps its direction held.
// Terminals send key repeats, not key-up events, so a press is latched for a
// little longer than the typical repeat interval.
const DefaultHold = 120 * time.Millisecond

// KeyLatch turns terminal key presses into held directions. The UI goroutine
// presses, the engine goroutine polls.
type KeyLatch struct {
	mu    sync.Mutex
	hold  time.Duration
	until [4]time.Time // Indexed by game.Direction
	now   func() time.Time
}

// NewKeyLatch creates a latch that holds each press for hold.
func NewKeyLatch(hold time.Duration) *KeyLatch {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyLatch{hold: hold, now: time.Now}
}

// Press holds dir for the latch window. Pressing a direction releases its
// opposite so reversing is immediate.
func (l *KeyLatch) Press(dir game.Direction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.until[dir] = l.now().Add(l.hold)
	l.until[opposite(dir)] = time.Time{}
}

// Release drops every held direction.
func (l *KeyLatch) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.until = [4]time.Time{}
}

// Poll implements game.InputSource.
func (l *KeyLatch) Poll() game.Input {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	held := func(d game.Direction) bool { return now.Before(l.until[d]) }
	return game.Input{
		Up:    held(game.DirUp),
		Down:  held(game.DirDown),
		Left:  held(game.DirLeft),
		Right: held(game.DirRight),
	}
}

func opposite(d game.Direction) game.Direction {
	switch d {
	case game.DirUp:
		return game.DirDown
	case game.DirDown:
		return game.DirUp
	case game.DirLeft:
		return game.DirRight
	}
	return game.DirLeft
}
