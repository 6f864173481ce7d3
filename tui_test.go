package main

import (
	"bytes"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pulsebar/indicator"
)

// The mount sequence sends the mode line before any tick or key has
// been processed. Program.Send blocks until the loop is running, so the
// send has to wait on tuiReady the same way run() waits.
func TestMountSendsOnlyAfterLoopStarts(t *testing.T) {
	p := tea.NewProgram(tuiModel{engine: indicator.New()},
		tea.WithInput(&bytes.Buffer{}),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
	tuiMu.Lock()
	tuiProgram = p
	tuiMu.Unlock()
	defer func() {
		tuiMu.Lock()
		tuiProgram = nil
		tuiMu.Unlock()
	}()

	done := make(chan struct{})
	go func() {
		if _, err := p.Run(); err != nil {
			t.Errorf("tui run: %v", err)
		}
		close(done)
	}()

	select {
	case <-tuiReady:
	case <-time.After(2 * time.Second):
		t.Fatal("loop never signalled ready")
	}

	sent := make(chan struct{})
	go func() {
		tuiSink{}.ModeLine("[engine fake]")
		tuiSink{}.StateChanged(indicator.Listening)
		close(sent)
	}()
	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("sink send blocked after the program started")
	}

	p.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("program did not exit on Quit")
	}
}
