package game

import (
	"errors"
	"fmt"
)

// Point is a top-left spawn position in field pixels.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// PlateSpec places a plate and binds it to a door by index.
type PlateSpec struct {
	X    int `json:"x" yaml:"x"`
	Y    int `json:"y" yaml:"y"`
	Door int `json:"door" yaml:"door"`
}

// Level is the declarative layout of one level. Entity sizes come from
// Config; only walls and obstacles carry their own dimensions.
type Level struct {
	Name      string      `json:"name" yaml:"name"`
	Player    Point       `json:"player" yaml:"player"`
	Key       Point       `json:"key" yaml:"key"`
	Goal      Point       `json:"goal" yaml:"goal"`
	Walls     []Rect      `json:"walls" yaml:"walls"`
	Obstacles []Rect      `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
	Blocks    []Point     `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Plates    []PlateSpec `json:"plates,omitempty" yaml:"plates,omitempty"`
	Doors     []Point     `json:"doors,omitempty" yaml:"doors,omitempty"`
}

func (l Level) playerRect(cfg Config) Rect {
	return NewRect(l.Player.X, l.Player.Y, cfg.PlayerSize, cfg.PlayerSize)
}

func (l Level) keyRect(cfg Config) Rect {
	return NewRect(l.Key.X, l.Key.Y, cfg.KeySize, cfg.KeySize)
}

func (l Level) goalRect(cfg Config) Rect {
	return NewRect(l.Goal.X, l.Goal.Y, cfg.DoorWidth, cfg.DoorHeight)
}

func (l Level) blockRect(i int, cfg Config) Rect {
	return NewRect(l.Blocks[i].X, l.Blocks[i].Y, cfg.BlockSize, cfg.BlockSize)
}

func (l Level) plateRect(i int, cfg Config) Rect {
	return NewRect(l.Plates[i].X, l.Plates[i].Y, cfg.PlateSize, cfg.PlateSize)
}

func (l Level) doorRect(i int, cfg Config) Rect {
	return NewRect(l.Doors[i].X, l.Doors[i].Y, cfg.DoorWidth, cfg.DoorHeight)
}

// ValidateLevel checks a level against cfg and reports every problem found.
// The returned error wraps ErrInvalidLevel.
func ValidateLevel(l Level, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: level %q: %s", ErrInvalidLevel, l.Name, fmt.Sprintf(format, args...)))
	}
	field := cfg.Field()

	// Rectangles that are solid when the level starts: doors begin closed.
	var solids []Rect
	for i, r := range l.Walls {
		if !r.Valid() {
			fail("wall %d has degenerate size %dx%d", i, r.W, r.H)
			continue
		}
		if !r.Within(field) {
			fail("wall %d %+v lies outside the field", i, r)
		}
		solids = append(solids, r)
	}
	for i, r := range l.Obstacles {
		if !r.Valid() {
			fail("obstacle %d has degenerate size %dx%d", i, r.W, r.H)
			continue
		}
		if !r.Within(field) {
			fail("obstacle %d %+v lies outside the field", i, r)
		}
		solids = append(solids, r)
	}
	for i := range l.Doors {
		r := l.doorRect(i, cfg)
		if !r.Within(field) {
			fail("door %d %+v lies outside the field", i, r)
		}
		solids = append(solids, r)
	}

	for i, p := range l.Plates {
		if p.Door < 0 || p.Door >= len(l.Doors) {
			fail("plate %d targets door %d, level has %d doors", i, p.Door, len(l.Doors))
		}
		if r := l.plateRect(i, cfg); !r.Within(field) {
			fail("plate %d %+v lies outside the field", i, r)
		}
	}

	if r := l.keyRect(cfg); !r.Within(field) {
		fail("key %+v lies outside the field", r)
	}
	if r := l.goalRect(cfg); !r.Within(field) {
		fail("goal %+v lies outside the field", r)
	}

	player := l.playerRect(cfg)
	if !player.Within(field) {
		fail("player spawn %+v lies outside the field", player)
	}
	if CollideAny(player, solids) {
		fail("player spawn %+v overlaps a wall, obstacle or door", player)
	}

	blocks := make([]Rect, len(l.Blocks))
	for i := range l.Blocks {
		r := l.blockRect(i, cfg)
		blocks[i] = r
		if !r.Within(field) {
			fail("block %d %+v lies outside the field", i, r)
		}
		if CollideAny(r, solids) {
			fail("block %d %+v overlaps a wall, obstacle or door", i, r)
		}
		if r.Overlaps(player) {
			fail("block %d %+v overlaps the player spawn", i, r)
		}
		for j := 0; j < i; j++ {
			if r.Overlaps(blocks[j]) {
				fail("block %d overlaps block %d", i, j)
			}
		}
	}

	return errors.Join(errs...)
}
