// Package replay runs a game headless over a scripted input sequence.
package replay

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/amalg/go-keydoor/internal/game"
)

// ErrInvalidScript is wrapped by every script validation failure.
var ErrInvalidScript = errors.New("invalid script")

// Step holds a set of keys for a number of frames. A command, when present,
// is applied once before the first of those frames.
type Step struct {
	Frames  int      `yaml:"frames"`
	Keys    []string `yaml:"keys,omitempty"`
	Command string   `yaml:"command,omitempty"`
}

// Script is a replay file.
type Script struct {
	Level int    `yaml:"level,omitempty"` // One-based starting level, 0 for the first
	Steps []Step `yaml:"steps"`
}

// LoadScript reads and validates a script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("replay: load %s: %w", path, err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("replay: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// Validate reports every unknown key, unknown command and negative count.
func (s Script) Validate() error {
	var errs []error
	if s.Level < 0 {
		errs = append(errs, fmt.Errorf("%w: level %d", ErrInvalidScript, s.Level))
	}
	for i, st := range s.Steps {
		if st.Frames < 0 {
			errs = append(errs, fmt.Errorf("%w: step %d: negative frames %d", ErrInvalidScript, i, st.Frames))
		}
		if _, err := parseKeys(st.Keys); err != nil {
			errs = append(errs, fmt.Errorf("%w: step %d: %v", ErrInvalidScript, i, err))
		}
		if _, err := parseCommand(st.Command); err != nil {
			errs = append(errs, fmt.Errorf("%w: step %d: %v", ErrInvalidScript, i, err))
		}
	}
	return errors.Join(errs...)
}

// Frames returns the total number of frames the script steps.
func (s Script) Frames() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Frames
	}
	return n
}

// Run plays the script on g and returns the final snapshot. Events of every
// frame are passed to onEvents when it is not nil.
func (s Script) Run(g *game.Game, onEvents func(frame int, events []game.Event)) (game.Snapshot, error) {
	if err := s.Validate(); err != nil {
		return game.Snapshot{}, err
	}
	if s.Level > 0 {
		if err := g.StartAt(s.Level - 1); err != nil {
			return game.Snapshot{}, fmt.Errorf("replay: %w", err)
		}
	}

	for _, st := range s.Steps {
		in, _ := parseKeys(st.Keys)
		if cmd, _ := parseCommand(st.Command); cmd != nil {
			g.Apply(*cmd)
		}
		for i := 0; i < st.Frames; i++ {
			events := g.Step(in)
			if onEvents != nil && len(events) > 0 {
				onEvents(g.Snapshot().Frame, events)
			}
		}
	}
	return g.Snapshot(), nil
}

func parseKeys(keys []string) (game.Input, error) {
	var dirs []game.Direction
	for _, k := range keys {
		switch strings.ToLower(k) {
		case "up", "w":
			dirs = append(dirs, game.DirUp)
		case "down", "s":
			dirs = append(dirs, game.DirDown)
		case "left", "a":
			dirs = append(dirs, game.DirLeft)
		case "right", "d":
			dirs = append(dirs, game.DirRight)
		default:
			return game.Input{}, fmt.Errorf("unknown key %q", k)
		}
	}
	return game.Hold(dirs...), nil
}

func parseCommand(name string) (*game.Command, error) {
	var cmd game.Command
	switch strings.ToLower(name) {
	case "":
		return nil, nil
	case "reset":
		cmd = game.CmdReset
	case "restart":
		cmd = game.CmdRestart
	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}
	return &cmd, nil
}
