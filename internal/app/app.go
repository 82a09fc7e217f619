// Package app holds the setup shared by the terminal and graphical commands:
// flags, environment, logging and loading the level sequence.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/amalg/go-keydoor/internal/game"
	"github.com/amalg/go-keydoor/internal/levels"
)

// Flag names shared by both commands.
const (
	FlagLevelsDir = "levels-dir"
	FlagLevel     = "level"
	FlagTickRate  = "tick-rate"
	FlagLog       = "log"
	FlagDebug     = "debug"
	FlagWatch     = "watch"
)

// Flags returns the flags every command accepts. Each can also be set from a
// KEYDOOR_* environment variable.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagLevelsDir,
			Usage:   "directory of level YAML files, overriding the built-in levels",
			Sources: cli.EnvVars("KEYDOOR_LEVELS_DIR"),
		},
		&cli.IntFlag{
			Name:    FlagLevel,
			Value:   1,
			Usage:   "level to start on",
			Sources: cli.EnvVars("KEYDOOR_LEVEL"),
		},
		&cli.IntFlag{
			Name:    FlagTickRate,
			Value:   game.DefaultConfig().TickRate,
			Usage:   "simulation frames per second",
			Sources: cli.EnvVars("KEYDOOR_TICK_RATE"),
		},
		&cli.StringFlag{
			Name:    FlagLog,
			Usage:   "log file path (default: discard logs while playing)",
			Sources: cli.EnvVars("KEYDOOR_LOG"),
		},
		&cli.BoolFlag{
			Name:    FlagDebug,
			Usage:   "log every push and plate change",
			Sources: cli.EnvVars("KEYDOOR_DEBUG"),
		},
		&cli.BoolFlag{
			Name:    FlagWatch,
			Usage:   "reload levels when files in --levels-dir change",
			Sources: cli.EnvVars("KEYDOOR_WATCH"),
		},
	}
}

// LoadEnv loads a .env file from the working directory when there is one.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Config builds the simulation config from the flags.
func Config(cmd *cli.Command) (game.Config, error) {
	cfg := game.DefaultConfig()
	cfg.TickRate = int(cmd.Int(FlagTickRate))
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// NewLogger writes to the --log file, or to fallback when no file is given.
// The returned close function must be called on exit.
func NewLogger(cmd *cli.Command, fallback io.Writer) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cmd.Bool(FlagDebug) {
		log.SetLevel(logrus.DebugLevel)
	}

	path := cmd.String(FlagLog)
	if path == "" {
		log.SetOutput(fallback)
		return log, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return log, f.Close, nil
}

// NewGame loads the level sequence and starts it on the --level flag.
func NewGame(cmd *cli.Command, cfg game.Config, log logrus.FieldLogger) (*game.Game, error) {
	dir := cmd.String(FlagLevelsDir)
	seq, err := levels.LoadAll(dir, cfg)
	if err != nil {
		return nil, err
	}

	g, err := game.NewGame(seq, cfg)
	if err != nil {
		return nil, err
	}
	if start := int(cmd.Int(FlagLevel)); start > 1 {
		if err := g.StartAt(start - 1); err != nil {
			return nil, err
		}
	}

	source := dir
	if source == "" {
		source = "built-in"
	}
	log.WithFields(logrus.Fields{
		"levels": g.LevelCount(),
		"source": source,
		"start":  g.LevelIndex() + 1,
	}).Info("levels loaded")
	return g, nil
}

// Watch reloads the levels into engine whenever --levels-dir changes, until
// ctx is done. It does nothing unless --watch is set.
func Watch(ctx context.Context, cmd *cli.Command, engine *game.Engine, cfg game.Config, log logrus.FieldLogger) error {
	if !cmd.Bool(FlagWatch) {
		return nil
	}
	dir := cmd.String(FlagLevelsDir)
	if dir == "" {
		return fmt.Errorf("--%s needs --%s", FlagWatch, FlagLevelsDir)
	}

	w, err := levels.NewWatcher(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	go func() {
		defer w.Close()
		w.Reload(ctx, dir, cfg, log, engine.ReplaceLevels)
	}()
	log.WithField("dir", dir).Info("watching levels")
	return nil
}
