package game

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine drives a Game at a fixed tick rate on its own goroutine.
type Engine struct {
	game     *Game
	commands chan Command
	done     chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
	input    InputSource
	onTick   func(Snapshot) // Callback after each tick with a COPY of state
	onStop   func()         // Callback once Run has returned
	log      logrus.FieldLogger
}

// NewEngine wraps a game. A nil logger discards log output.
func NewEngine(g *Game, log logrus.FieldLogger) *Engine {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Engine{
		game:     g,
		commands: make(chan Command, 16),
		done:     make(chan struct{}),
		log:      log,
	}
}

// OnTick sets a callback that is invoked after every tick with a snapshot.
// Used by frontends to redraw.
func (e *Engine) OnTick(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

// OnStop sets a callback that is invoked when Run returns, after the last
// OnTick callback. Frontends use it to learn that no more ticks will arrive.
func (e *Engine) OnStop(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onStop = fn
}

// SetInputSource sets where held directions are read from each tick.
func (e *Engine) SetInputSource(src InputSource) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.input = src
}

// Run starts the game loop at the configured tick rate.
// This blocks until Stop() is called.
func (e *Engine) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(e.game.Config().TickRate))
	defer ticker.Stop()
	defer e.stopped()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Stop halts the game loop. It is safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.done) })
}

// EnqueueCommand queues a command for the next tick.
func (e *Engine) EnqueueCommand(c Command) {
	select {
	case e.commands <- c:
	default:
		// Drop command if buffer is full (prevents blocking the UI)
		e.log.WithField("command", c).Warn("command buffer full, dropping")
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Snapshot()
}

// ReplaceLevels swaps the level sequence between ticks.
func (e *Engine) ReplaceLevels(levels []Level) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.game.ReplaceLevels(levels); err != nil {
		return err
	}
	e.log.WithField("levels", len(levels)).Info("level sequence replaced")
	return nil
}

// Tick processes one frame: drain commands, poll input, step, snapshot.
// Run calls it from the ticker; frontends with their own frame loop call it
// directly instead of Run. The snapshot is taken under the lock and the
// callback runs after it is released, since callbacks may call back into the
// engine.
func (e *Engine) Tick() {
	e.mu.Lock()

	e.drainCommands()
	var in Input
	if e.input != nil {
		in = e.input.Poll()
	}
	events := e.game.Step(in)
	snap := e.game.Snapshot()
	onTick := e.onTick

	e.mu.Unlock()

	e.logEvents(snap, events)
	if onTick != nil {
		onTick(snap)
	}
}

func (e *Engine) stopped() {
	e.mu.Lock()
	onStop := e.onStop
	e.mu.Unlock()
	if onStop != nil {
		onStop()
	}
}

// drainCommands applies all queued commands. MUST be called with e.mu held.
func (e *Engine) drainCommands() {
	for {
		select {
		case c := <-e.commands:
			e.game.Apply(c)
			e.log.WithFields(logrus.Fields{
				"command": c,
				"level":   e.game.LevelIndex() + 1,
			}).Info("command applied")
		default:
			return
		}
	}
}

func (e *Engine) logEvents(snap Snapshot, events []Event) {
	for _, ev := range events {
		entry := e.log.WithFields(logrus.Fields{
			"level": snap.Level + 1,
			"frame": snap.Frame,
			"index": ev.Index,
		})
		switch ev.Type {
		case EventBlockPushed, EventPlatePressed, EventPlateReleased:
			entry.Debug(string(ev.Type))
		default:
			entry.Info(string(ev.Type))
		}
	}
}
