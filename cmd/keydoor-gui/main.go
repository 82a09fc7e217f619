package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/urfave/cli/v3"

	"github.com/amalg/go-keydoor/internal/app"
	"github.com/amalg/go-keydoor/internal/game"
	"github.com/amalg/go-keydoor/internal/gfx"
)

func main() {
	if err := app.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd := &cli.Command{
		Name:   "keydoor-gui",
		Usage:  "play keydoor in a window",
		Flags:  app.Flags(),
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// No TUI to protect here, so logs go to stderr by default
	log, closeLog, err := app.NewLogger(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := app.Config(cmd)
	if err != nil {
		return err
	}
	g, err := app.NewGame(cmd, cfg, log)
	if err != nil {
		return err
	}

	engine := game.NewEngine(g, log)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := app.Watch(ctx, cmd, engine, cfg, log); err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.FieldWidth, cfg.FieldHeight)
	ebiten.SetWindowTitle("Keydoor")
	ebiten.SetTPS(cfg.TickRate)

	log.Info("window opened")
	if err := ebiten.RunGame(gfx.New(engine)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	log.WithField("status", engine.Snapshot().Status).Info("window closed")
	return nil
}
