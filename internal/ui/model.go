package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-keydoor/internal/game"
)

// stateUpdateMsg carries a new snapshot from the engine.
type stateUpdateMsg game.Snapshot

// engineStoppedMsg is sent when the snapshot channel closes.
type engineStoppedMsg struct{}

// Model is the Bubbletea model for the terminal frontend.
type Model struct {
	engine   *game.Engine
	latch    *KeyLatch
	states   <-chan game.Snapshot
	snap     *game.Snapshot
	quitting bool
}

// NewModel creates a TUI model driving the given engine. It installs the
// latch as the engine's input source and subscribes to its ticks. The model
// quits when the engine's Run returns.
func NewModel(engine *game.Engine, latch *KeyLatch) Model {
	states := make(chan game.Snapshot, 1)
	engine.SetInputSource(latch)
	engine.OnTick(func(s game.Snapshot) {
		publish(states, s)
	})
	// Run calls this after its last tick, so nothing sends afterwards
	engine.OnStop(func() {
		close(states)
	})

	snap := engine.Snapshot()
	return Model{
		engine: engine,
		latch:  latch,
		states: states,
		snap:   &snap,
	}
}

// publish hands the newest snapshot to the UI, replacing one it has not
// picked up yet. Only the engine goroutine sends.
func publish(ch chan game.Snapshot, s game.Snapshot) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

// Init starts listening for snapshots from the engine.
func (m Model) Init() tea.Cmd {
	return waitForState(m.states)
}

// Update handles incoming messages (key presses, snapshots).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateUpdateMsg:
		snap := game.Snapshot(msg)
		m.snap = &snap
		return m, waitForState(m.states)

	case engineStoppedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the current snapshot.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye! 👋\n"
	}

	board := RenderBoard(m.snap)
	hud := RenderHUD(m.snap)

	// Layout: board on the left, HUD on the right
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		board,
		"  ",
		hud,
	) + "\n"
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "w":
		m.latch.Press(game.DirUp)
	case "down", "s":
		m.latch.Press(game.DirDown)
	case "left", "a":
		m.latch.Press(game.DirLeft)
	case "right", "d":
		m.latch.Press(game.DirRight)
	case "r":
		m.latch.Release()
		m.engine.EnqueueCommand(game.CmdReset)
	case "n":
		m.latch.Release()
		m.engine.EnqueueCommand(game.CmdRestart)
	}

	return m, nil
}

// waitForState returns a Cmd that waits for the next snapshot from the engine.
func waitForState(states <-chan game.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-states
		if !ok {
			return engineStoppedMsg{}
		}
		return stateUpdateMsg(snap)
	}
}
