package game

// EventType names something that happened during a frame.
type EventType string

const (
	EventBlockPushed   EventType = "block_pushed"
	EventPlatePressed  EventType = "plate_pressed"
	EventPlateReleased EventType = "plate_released"
	EventDoorOpened    EventType = "door_opened"
	EventDoorClosed    EventType = "door_closed"
	EventKeyCollected  EventType = "key_collected"
	EventGoalOpened    EventType = "goal_opened"
	EventLevelCleared  EventType = "level_cleared"
	EventLevelStarted  EventType = "level_started"
	EventAllLevelsWon  EventType = "all_levels_won"
	EventReset         EventType = "reset"
)

// Event is a state change reported to the presentation and the log.
// Index is the block, plate, door or level the event refers to.
type Event struct {
	Type  EventType `json:"type"`
	Index int       `json:"index"`
}

// Session is the live state of one level. It exclusively owns its entities
// and is rebuilt from the Level on reset or level change.
type Session struct {
	Level Level
	Field Rect

	Player    Player
	Key       Key
	Goal      Goal
	Obstacles []Obstacle
	Blocks    []Block
	Plates    []Plate
	Doors     []Door

	cfg    Config
	events []Event
}

// NewSession validates the level and instantiates its entities.
func NewSession(level Level, cfg Config) (*Session, error) {
	if err := ValidateLevel(level, cfg); err != nil {
		return nil, err
	}

	s := &Session{
		Level: level,
		Field: cfg.Field(),
		Player: Player{
			Bounds: level.playerRect(cfg),
			Facing: FacingRight,
		},
		Key:       Key{Bounds: level.keyRect(cfg)},
		Goal:      Goal{Bounds: level.goalRect(cfg)},
		Obstacles: make([]Obstacle, 0, len(level.Walls)+len(level.Obstacles)),
		Blocks:    make([]Block, len(level.Blocks)),
		Plates:    make([]Plate, len(level.Plates)),
		Doors:     make([]Door, len(level.Doors)),
		cfg:       cfg,
	}

	for _, r := range level.Walls {
		s.Obstacles = append(s.Obstacles, Obstacle{Bounds: r, Kind: KindWall})
	}
	for _, r := range level.Obstacles {
		s.Obstacles = append(s.Obstacles, Obstacle{Bounds: r, Kind: KindDecor})
	}
	for i := range level.Doors {
		s.Doors[i] = Door{Bounds: level.doorRect(i, cfg)}
	}
	for i, p := range level.Plates {
		s.Plates[i] = Plate{Bounds: level.plateRect(i, cfg), Door: p.Door}
	}
	for i := range level.Blocks {
		s.Blocks[i] = Block{ID: i, Bounds: level.blockRect(i, cfg)}
	}

	return s, nil
}

// step runs the per-frame pipeline for this level: movement and pushes,
// plate recompute, door transitions, key pickup, goal check. It returns the
// events of the frame and whether the goal opened.
func (s *Session) step(in Input) ([]Event, bool) {
	s.events = nil

	s.movePlayer(in)
	s.updatePlates()
	s.updateDoors()
	s.collectKey()
	opened := s.touchGoal()

	return s.events, opened
}

func (s *Session) emit(t EventType, index int) {
	s.events = append(s.events, Event{Type: t, Index: index})
}

// solidAt reports whether r overlaps a wall, an obstacle or a closed door.
func (s *Session) solidAt(r Rect) bool {
	for _, o := range s.Obstacles {
		if r.Overlaps(o.Bounds) {
			return true
		}
	}
	for _, d := range s.Doors {
		if !d.Open && r.Overlaps(d.Bounds) {
			return true
		}
	}
	return false
}

// blockAt reports whether r overlaps any block other than skip.
func (s *Session) blockAt(r Rect, skip int) bool {
	for i, b := range s.Blocks {
		if i == skip {
			continue
		}
		if r.Overlaps(b.Bounds) {
			return true
		}
	}
	return false
}
