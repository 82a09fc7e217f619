package game

import "fmt"

// Game plays a fixed sequence of levels. It is single-threaded: callers step
// it once per frame and never share it between goroutines without a lock.
type Game struct {
	cfg     Config
	levels  []Level
	index   int
	session *Session

	status    Status
	countdown int // Frames left before the next level is built

	frame       int // Every Step
	levelFrames int // Playing frames on the current level
	totalFrames int // Playing frames since the first level

	events  []Event
	pending []Event // Command events reported with the next Step
}

// NewGame validates the config and every level, then starts the first level.
// A malformed level fails the whole game rather than the frame it is reached.
func NewGame(levels []Level, cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	for i, l := range levels {
		if err := ValidateLevel(l, cfg); err != nil {
			return nil, fmt.Errorf("level %d: %w", i+1, err)
		}
	}

	g := &Game{
		cfg:    cfg,
		levels: append([]Level(nil), levels...),
	}
	if err := g.load(0); err != nil {
		return nil, err
	}
	return g, nil
}

// Config returns the configuration the game runs with.
func (g *Game) Config() Config {
	return g.cfg
}

// Session returns the live session of the current level.
func (g *Game) Session() *Session {
	return g.session
}

// Status returns the current goal sequence phase.
func (g *Game) Status() Status {
	return g.status
}

// LevelIndex returns the zero-based index of the current level.
func (g *Game) LevelIndex() int {
	return g.index
}

// LevelCount returns the number of levels in the sequence.
func (g *Game) LevelCount() int {
	return len(g.levels)
}

// Step advances the game by one frame: input and pushes, plates, doors,
// key and goal, then the level transition countdown. Input is ignored
// outside StatusPlaying.
func (g *Game) Step(in Input) []Event {
	g.frame++
	g.events = g.pending
	g.pending = nil

	switch g.status {
	case StatusPlaying:
		g.levelFrames++
		g.totalFrames++
		events, opened := g.session.step(in)
		g.events = append(g.events, events...)
		if opened {
			g.clearLevel()
		}

	case StatusLevelCleared:
		if g.countdown > 0 {
			g.countdown--
		}
		if g.countdown == 0 {
			g.advance()
		}

	case StatusAllLevelsWon:
		// Terminal until Reset or Restart
	}

	return g.events
}

// Apply executes a one-shot command.
func (g *Game) Apply(cmd Command) {
	switch cmd {
	case CmdReset:
		g.Reset()
	case CmdRestart:
		g.Restart()
	}
}

// Reset rebuilds the current level from its declarative data. It cancels a
// pending level transition and leaves the terminal state.
func (g *Game) Reset() {
	g.mustLoad(g.index)
	g.events = []Event{{Type: EventReset, Index: g.index}}
	g.pending = g.events
}

// Restart rebuilds the first level and clears the run timer.
func (g *Game) Restart() {
	g.totalFrames = 0
	g.mustLoad(0)
	g.events = []Event{{Type: EventReset, Index: 0}}
	g.pending = g.events
}

// StartAt jumps to the level with the given zero-based index.
func (g *Game) StartAt(index int) error {
	if index < 0 || index >= len(g.levels) {
		return fmt.Errorf("level %d out of range, have %d levels", index+1, len(g.levels))
	}
	return g.load(index)
}

// ReplaceLevels swaps the level sequence, for example after the files on
// disk changed, and rebuilds the current level. The current index is kept
// when it still exists. On error the game is left untouched.
func (g *Game) ReplaceLevels(levels []Level) error {
	if len(levels) == 0 {
		return ErrNoLevels
	}
	for i, l := range levels {
		if err := ValidateLevel(l, g.cfg); err != nil {
			return fmt.Errorf("level %d: %w", i+1, err)
		}
	}
	g.levels = append([]Level(nil), levels...)
	index := g.index
	if index >= len(g.levels) {
		index = len(g.levels) - 1
	}
	return g.load(index)
}

func (g *Game) clearLevel() {
	if g.index < len(g.levels)-1 {
		g.status = StatusLevelCleared
		g.countdown = g.cfg.transitionFrames()
		g.events = append(g.events, Event{Type: EventLevelCleared, Index: g.index})
		return
	}
	g.status = StatusAllLevelsWon
	g.events = append(g.events, Event{Type: EventAllLevelsWon, Index: g.index})
}

func (g *Game) advance() {
	g.mustLoad(g.index + 1)
	g.events = append(g.events, Event{Type: EventLevelStarted, Index: g.index})
}

// load builds the session for levels[index] and resets per-level state.
func (g *Game) load(index int) error {
	s, err := NewSession(g.levels[index], g.cfg)
	if err != nil {
		return fmt.Errorf("level %d: %w", index+1, err)
	}
	g.index = index
	g.session = s
	g.status = StatusPlaying
	g.countdown = 0
	g.levelFrames = 0
	return nil
}

// mustLoad is load for levels that were validated when they entered the game.
func (g *Game) mustLoad(index int) {
	if err := g.load(index); err != nil {
		panic(fmt.Sprintf("game: prevalidated level failed to load: %v", err))
	}
}
