package game

import "time"

// Snapshot is a read-only copy of everything the presentation draws.
// Mutating a snapshot never affects the game.
type Snapshot struct {
	Frame      int    `json:"frame"`
	Field      Rect   `json:"field"`
	Level      int    `json:"level"`
	LevelName  string `json:"level_name"`
	LevelCount int    `json:"level_count"`
	Status     Status `json:"status"`

	Player    Player     `json:"player"`
	Key       Key        `json:"key"`
	Goal      Goal       `json:"goal"`
	Obstacles []Obstacle `json:"obstacles"`
	Blocks    []Block    `json:"blocks"`
	Plates    []Plate    `json:"plates"`
	Doors     []Door     `json:"doors"`

	Elapsed time.Duration `json:"elapsed"` // Time on the current level
	Total   time.Duration `json:"total"`   // Time since the first level
	Events  []Event       `json:"events,omitempty"`
}

// Won reports whether every level has been cleared.
func (s Snapshot) Won() bool {
	return s.Status == StatusAllLevelsWon
}

// Snapshot returns a deep copy of the current state.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	snap := Snapshot{
		Frame:      g.frame,
		Field:      s.Field,
		Level:      g.index,
		LevelName:  s.Level.Name,
		LevelCount: len(g.levels),
		Status:     g.status,
		Player:     s.Player,
		Key:        s.Key,
		Goal:       s.Goal,
		Obstacles:  append([]Obstacle(nil), s.Obstacles...),
		Blocks:     append([]Block(nil), s.Blocks...),
		Plates:     append([]Plate(nil), s.Plates...),
		Doors:      append([]Door(nil), s.Doors...),
		Elapsed:    g.cfg.frameDuration(g.levelFrames),
		Total:      g.cfg.frameDuration(g.totalFrames),
	}
	if len(g.events) > 0 {
		snap.Events = append([]Event(nil), g.events...)
	}
	return snap
}
