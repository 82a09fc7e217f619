package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/amalg/go-keydoor/internal/app"
	"github.com/amalg/go-keydoor/internal/game"
	"github.com/amalg/go-keydoor/internal/levels"
	"github.com/amalg/go-keydoor/internal/replay"
	"github.com/amalg/go-keydoor/internal/ui"
)

func main() {
	if err := app.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd := &cli.Command{
		Name:  "keydoor",
		Usage: "push blocks onto plates, open doors, find the key",
		Flags: append(app.Flags(), &cli.DurationFlag{
			Name:    "hold",
			Value:   ui.DefaultHold,
			Usage:   "how long a key press keeps moving",
			Sources: cli.EnvVars("KEYDOOR_HOLD"),
		}),
		Action: play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play in the terminal (default)",
				Action: play,
			},
			{
				Name:  "levels",
				Usage: "inspect the level sequence",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "list levels in play order",
						Action: listLevels,
					},
					{
						Name:   "validate",
						Usage:  "check every level file and report all problems",
						Action: validateLevels,
					},
				},
			},
			{
				Name:  "replay",
				Usage: "run a scripted input sequence headless and print the final state as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "script",
						Usage:    "replay script YAML file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "events",
						Usage: "log events to stderr while replaying",
					},
				},
				Action: replayScript,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(ctx context.Context, cmd *cli.Command) error {
	// Any stderr output corrupts Bubbletea's rendering, so logs go to the
	// --log file or nowhere.
	log, closeLog, err := app.NewLogger(cmd, io.Discard)
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

	model := ui.NewModel(engine, ui.NewKeyLatch(cmd.Duration("hold")))

	go engine.Run()
	defer engine.Stop()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Handle Ctrl+C outside the TUI as well
	stopSignals := quitOnSignal(ctx, p.Quit)
	defer stopSignals()

	log.Info("game started")
	start := time.Now()
	if _, err := p.Run(); err != nil {
		return err
	}

	snap := engine.Snapshot()
	log.WithFields(logrus.Fields{
		"level":    snap.Level + 1,
		"status":   snap.Status,
		"duration": time.Since(start).Round(time.Second),
	}).Info("game ended")
	if snap.Won() {
		fmt.Printf("You completed all %d levels in %.1fs!\n", snap.LevelCount, snap.Total.Seconds())
	}
	return nil
}

// quitOnSignal calls quit on the first SIGINT or SIGTERM. The returned stop
// function detaches the handler; it is safe to call more than once.
func quitOnSignal(ctx context.Context, quit func()) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			quit()
		case <-ctx.Done():
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
}

func listLevels(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String(app.FlagLevelsDir)
	names, err := levels.Names(dir)
	if err != nil {
		return err
	}
	for i, name := range names {
		l, err := levels.LoadLevel(dir, name)
		if err != nil {
			fmt.Printf("%2d  %-24s  error: %v\n", i+1, name, err)
			continue
		}
		fmt.Printf("%2d  %-24s  %-16s  %d blocks, %d plates, %d doors\n",
			i+1, name, l.Name, len(l.Blocks), len(l.Plates), len(l.Doors))
	}
	return nil
}

func validateLevels(ctx context.Context, cmd *cli.Command) error {
	cfg, err := app.Config(cmd)
	if err != nil {
		return err
	}
	seq, err := levels.LoadAll(cmd.String(app.FlagLevelsDir), cfg)
	if err != nil {
		return err
	}
	fmt.Printf("%d levels OK\n", len(seq))
	return nil
}

func replayScript(ctx context.Context, cmd *cli.Command) error {
	log, closeLog, err := app.NewLogger(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	script, err := replay.LoadScript(cmd.String("script"))
	if err != nil {
		return err
	}
	cfg, err := app.Config(cmd)
	if err != nil {
		return err
	}
	g, err := app.NewGame(cmd, cfg, log)
	if err != nil {
		return err
	}

	var onEvents func(int, []game.Event)
	if cmd.Bool("events") {
		onEvents = func(frame int, events []game.Event) {
			for _, ev := range events {
				log.WithFields(logrus.Fields{"frame": frame, "index": ev.Index}).Info(string(ev.Type))
			}
		}
	}

	snap, err := script.Run(g, onEvents)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
