// Package doctor runs the -doctor diagnostics: everything pulsebar
// needs to render, checked out loud instead of silently degraded.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"pulsebar/feed"
	"pulsebar/log"
)

// Run executes diagnostic checks and returns an exit code (0=all pass,
// 1=any fail).
func Run(engineAddr string) int {
	interruptExits()

	fmt.Println("pulsebar doctor - system diagnostics")
	fmt.Println("====================================")

	allPass := true

	if !checkTerminal() {
		allPass = false
	}
	if !checkEngine(engineAddr) {
		allPass = false
	}
	if !checkLogDir() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

// interruptExits keeps Ctrl+C from leaving the report mid-line while
// the engine probe is blocked.
func interruptExits() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\npulsebar doctor: interrupted")
		os.Exit(1)
	}()
}

func checkTerminal() bool {
	fmt.Println()
	fmt.Println("[1/3] Terminal")

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println("  WARN: stdout is not a terminal (TUI host disabled, -gui still works)")
		return true
	}
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		fmt.Printf("  FAIL: cannot read terminal size: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: terminal %dx%d, TERM=%s\n", w, h, os.Getenv("TERM"))
	return true
}

func checkEngine(addr string) bool {
	fmt.Println()
	fmt.Println("[2/3] Recording engine")
	fmt.Printf("Probing %s...\n", addr)

	t := feed.NewWS(addr)
	if !t.Available() {
		fmt.Println("  WARN: engine not reachable (widget would render idle)")
		// Deliberate policy: an absent engine is a supported mode.
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	detach, err := t.Attach(ctx, feed.ChannelState, func([]byte) {})
	if err != nil {
		fmt.Printf("  FAIL: listener up but %s channel refused: %v\n", feed.ChannelState, err)
		return false
	}
	detach()
	fmt.Println("  PASS: engine reachable, state channel attaches")
	return true
}

func checkLogDir() bool {
	fmt.Println()
	fmt.Println("[3/3] Log directory")

	dir, err := log.ResolveDir("")
	if err != nil {
		fmt.Printf("  FAIL: cannot resolve log directory: %v\n", err)
		return false
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("  FAIL: cannot create %s: %v\n", dir, err)
		return false
	}
	probe, err := os.CreateTemp(dir, "doctor-*")
	if err != nil {
		fmt.Printf("  FAIL: %s not writable: %v\n", dir, err)
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	fmt.Printf("  PASS: %s writable\n", dir)
	return true
}
