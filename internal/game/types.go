package game

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidLevel is wrapped by every level validation failure.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrInvalidConfig is wrapped by every config validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrNoLevels is returned when a game is created without levels.
	ErrNoLevels = errors.New("no levels")
)

// Direction represents a movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// delta returns the unit vector of the direction.
func (d Direction) delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Facing is the horizontal direction the player sprite looks at.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Input is the snapshot of held directions for one frame. Directions are
// independent; holding two perpendicular directions moves diagonally.
type Input struct {
	Up    bool `json:"up" yaml:"up"`
	Down  bool `json:"down" yaml:"down"`
	Left  bool `json:"left" yaml:"left"`
	Right bool `json:"right" yaml:"right"`
}

// Hold returns an Input with the given directions held.
func Hold(dirs ...Direction) Input {
	var in Input
	for _, d := range dirs {
		switch d {
		case DirUp:
			in.Up = true
		case DirDown:
			in.Down = true
		case DirLeft:
			in.Left = true
		case DirRight:
			in.Right = true
		}
	}
	return in
}

// Idle reports whether no direction is held.
func (in Input) Idle() bool {
	return !in.Up && !in.Down && !in.Left && !in.Right
}

// axes returns the horizontal and vertical unit intents. Opposite directions
// held together cancel out.
func (in Input) axes() (int, int) {
	dx, dy := 0, 0
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	return dx, dy
}

// InputSource supplies the held directions once per frame.
type InputSource interface {
	Poll() Input
}

// Command is a one-shot player command.
type Command int

const (
	CmdReset   Command = iota // Rebuild the current level
	CmdRestart                // Rebuild the first level
)

func (c Command) String() string {
	switch c {
	case CmdReset:
		return "reset"
	case CmdRestart:
		return "restart"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Status represents the goal sequence phase.
type Status int

const (
	StatusPlaying      Status = iota // Player in control
	StatusLevelCleared               // Goal opened, next level pending
	StatusAllLevelsWon               // Last goal opened, terminal
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusLevelCleared:
		return "level_cleared"
	case StatusAllLevelsWon:
		return "all_levels_won"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText lets snapshots carry readable statuses.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ObstacleKind distinguishes walls from decorative obstacles. Both block
// movement the same way.
type ObstacleKind int

const (
	KindWall ObstacleKind = iota
	KindDecor
)

// Obstacle is an immovable collidable region.
type Obstacle struct {
	Bounds Rect         `json:"bounds"`
	Kind   ObstacleKind `json:"kind"`
}

// Block is a pushable crate.
type Block struct {
	ID     int  `json:"id"`
	Bounds Rect `json:"bounds"`
}

// Plate is a pressure plate bound to one gated door by index.
type Plate struct {
	Bounds  Rect `json:"bounds"`
	Pressed bool `json:"pressed"`
	Door    int  `json:"door"`
}

// Door is a gated door. Closed doors are solid.
type Door struct {
	Bounds Rect `json:"bounds"`
	Open   bool `json:"open"`
}

// Goal is the final door of a level. It opens once and never closes.
type Goal struct {
	Bounds Rect `json:"bounds"`
	Open   bool `json:"open"`
}

// Key must be collected before the goal opens.
type Key struct {
	Bounds    Rect `json:"bounds"`
	Collected bool `json:"collected"`
}

// Player is the only entity driven by input.
type Player struct {
	Bounds Rect   `json:"bounds"`
	HasKey bool   `json:"has_key"`
	Moves  int    `json:"moves"`
	Facing Facing `json:"facing"`
}

// Config holds the tunable constants of the simulation.
type Config struct {
	FieldWidth      int           `json:"field_width"`
	FieldHeight     int           `json:"field_height"`
	Speed           int           `json:"speed"` // Pixels per frame for player and pushed blocks
	PlayerSize      int           `json:"player_size"`
	BlockSize       int           `json:"block_size"`
	PlateSize       int           `json:"plate_size"`
	KeySize         int           `json:"key_size"`
	DoorWidth       int           `json:"door_width"`
	DoorHeight      int           `json:"door_height"`
	TickRate        int           `json:"tick_rate"` // Frames per second
	TransitionDelay time.Duration `json:"transition_delay"`
}

// DefaultConfig returns the configuration the shipped levels are authored for.
func DefaultConfig() Config {
	return Config{
		FieldWidth:      800,
		FieldHeight:     600,
		Speed:           5,
		PlayerSize:      30,
		BlockSize:       40,
		PlateSize:       40,
		KeySize:         20,
		DoorWidth:       50,
		DoorHeight:      80,
		TickRate:        60,
		TransitionDelay: time.Second,
	}
}

// Validate rejects degenerate sizes and rates.
func (c Config) Validate() error {
	var errs []error
	positive := []struct {
		name  string
		value int
	}{
		{"field_width", c.FieldWidth},
		{"field_height", c.FieldHeight},
		{"speed", c.Speed},
		{"player_size", c.PlayerSize},
		{"block_size", c.BlockSize},
		{"plate_size", c.PlateSize},
		{"key_size", c.KeySize},
		{"door_width", c.DoorWidth},
		{"door_height", c.DoorHeight},
		{"tick_rate", c.TickRate},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, p.name, p.value))
		}
	}
	if c.TransitionDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: transition_delay must not be negative, got %s", ErrInvalidConfig, c.TransitionDelay))
	}
	return errors.Join(errs...)
}

// Field returns the play-field rectangle.
func (c Config) Field() Rect {
	return NewRect(0, 0, c.FieldWidth, c.FieldHeight)
}

// transitionFrames converts TransitionDelay to whole frames, rounding up.
func (c Config) transitionFrames() int {
	if c.TickRate <= 0 || c.TransitionDelay <= 0 {
		return 0
	}
	return int((c.TransitionDelay*time.Duration(c.TickRate) + time.Second - 1) / time.Second)
}

// frameDuration converts a frame count to elapsed time.
func (c Config) frameDuration(frames int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(c.TickRate)
}
