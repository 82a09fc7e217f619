package game

import (
	"testing"
	"time"
)

// testConfig is DefaultConfig with a three-frame level transition.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TransitionDelay = 3 * (time.Second / time.Duration(cfg.TickRate))
	return cfg
}

// newTestSession builds a session or fails the test.
func newTestSession(t *testing.T, l Level) *Session {
	t.Helper()
	s, err := NewSession(l, testConfig())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// emptyLevel has only a player, a key and a goal far from each other.
func emptyLevel() Level {
	return Level{
		Name:   "empty",
		Player: Point{X: 100, Y: 100},
		Key:    Point{X: 700, Y: 20},
		Goal:   Point{X: 700, Y: 500},
	}
}

// gatedLevel is split by a wall at x=400 whose only gap is gated door 0.
// The block below the spawn covers plate 0 after 13 frames of Down, the key
// is one step to the right of the spawn, and the goal is behind the door.
func gatedLevel(name string) Level {
	return Level{
		Name:   name,
		Player: Point{X: 100, Y: 100},
		Key:    Point{X: 131, Y: 100},
		Goal:   Point{X: 600, Y: 260},
		Walls: []Rect{
			{X: 400, Y: 0, W: 20, H: 260},
			{X: 400, Y: 340, W: 20, H: 260},
		},
		Blocks: []Point{{X: 95, Y: 140}},
		Plates: []PlateSpec{{X: 95, Y: 230, Door: 0}},
		Doors:  []Point{{X: 400, Y: 260}},
	}
}

// steps runs the same input for n frames.
func (s *Session) steps(in Input, n int) {
	for i := 0; i < n; i++ {
		s.step(in)
	}
}

func (g *Game) steps(in Input, n int) {
	for i := 0; i < n; i++ {
		g.Step(in)
	}
}

// checkInvariants fails the test if any entity overlaps something solid or
// leaves the field.
func checkInvariants(t *testing.T, s *Session, frame int) {
	t.Helper()
	var solids []Rect
	for _, o := range s.Obstacles {
		solids = append(solids, o.Bounds)
	}
	for _, d := range s.Doors {
		if !d.Open {
			solids = append(solids, d.Bounds)
		}
	}

	p := s.Player.Bounds
	if !p.Within(s.Field) {
		t.Fatalf("frame %d: player %+v outside field", frame, p)
	}
	if CollideAny(p, solids) {
		t.Fatalf("frame %d: player %+v overlaps a solid", frame, p)
	}
	for i, b := range s.Blocks {
		if !b.Bounds.Within(s.Field) {
			t.Fatalf("frame %d: block %d %+v outside field", frame, i, b.Bounds)
		}
		if CollideAny(b.Bounds, solids) {
			t.Fatalf("frame %d: block %d %+v overlaps a solid", frame, i, b.Bounds)
		}
		if b.Bounds.Overlaps(p) {
			t.Fatalf("frame %d: block %d %+v overlaps the player %+v", frame, i, b.Bounds, p)
		}
		for j := 0; j < i; j++ {
			if b.Bounds.Overlaps(s.Blocks[j].Bounds) {
				t.Fatalf("frame %d: block %d overlaps block %d", frame, i, j)
			}
		}
	}
}
