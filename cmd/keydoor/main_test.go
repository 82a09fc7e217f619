package main

import (
	"context"
	"os"
	"os/signal"
	"testing"
	"time"
)

func interruptSelf(t *testing.T) {
	t.Helper()
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("find process: %v", err)
	}
	if err := p.Signal(os.Interrupt); err != nil {
		t.Skipf("cannot interrupt self on this platform: %v", err)
	}
}

func TestQuitOnSignal(t *testing.T) {
	// Keeps the interrupt from killing the test binary once no handler is left
	observer := make(chan os.Signal, 4)
	signal.Notify(observer, os.Interrupt)
	defer signal.Stop(observer)

	quits := make(chan struct{}, 4)
	stop := quitOnSignal(context.Background(), func() { quits <- struct{}{} })
	defer stop()

	interruptSelf(t)
	select {
	case <-quits:
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt should quit")
	}
}

func TestQuitOnSignalStop(t *testing.T) {
	observer := make(chan os.Signal, 4)
	signal.Notify(observer, os.Interrupt)
	defer signal.Stop(observer)

	quits := make(chan struct{}, 4)
	stop := quitOnSignal(context.Background(), func() { quits <- struct{}{} })
	stop()
	stop() // Safe to call twice

	interruptSelf(t)
	select {
	case <-observer:
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt not delivered")
	}
	select {
	case <-quits:
		t.Error("a stopped handler should not quit")
	case <-time.After(100 * time.Millisecond):
	}
}
