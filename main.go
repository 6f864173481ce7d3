package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"

	"pulsebar/doctor"
	"pulsebar/feed"
	"pulsebar/indicator"
	"pulsebar/log"
)

var version = "dev"

// The engine is the single owner of all mutable visualization state.
// Event handlers and frame loops read it live instead of closing over
// snapshots, so one subscription serves the whole mount.
var engine = indicator.New()

var (
	sink        EventSink
	guiMode     bool
	transitions atomic.Int64
	detachFeed  feed.Detach
	stopCh      = make(chan struct{})
	stopFake    = func() {}
)

var shutdownOnce sync.Once

func main() {
	// Check for -gui flag early (before flag.Parse in run())
	for _, arg := range os.Args[1:] {
		if arg == "-gui" {
			initGUI()
			return
		}
	}
	run()
}

func gracefulShutdown() {
	shutdownOnce.Do(func() {
		if detachFeed != nil {
			detachFeed()
		}
		close(stopCh)
		stopFake()
		log.SessionEnd(int(transitions.Load()))
		log.Close()
	})
}

func defaultEngineAddr() string {
	if addr := os.Getenv("PULSEBAR_ENGINE"); addr != "" {
		return addr
	}
	return "ws://127.0.0.1:8517"
}

func run() {
	engineFlag := flag.String("engine", defaultEngineAddr(), "recording engine WebSocket address")
	fakeFlag := flag.Bool("fake", false, "drive the widget from a built-in synthetic engine")
	flag.Bool("gui", false, "run the desktop overlay instead of the terminal UI")
	doctorFlag := flag.Bool("doctor", false, "run connectivity diagnostics and exit")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("pulsebar " + version)
		return
	}

	logDir, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not resolve log directory: %v\n", err)
	} else {
		log.SetDir(logDir)
		if err := log.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
		}
	}

	if *doctorFlag {
		os.Exit(doctor.Run(*engineFlag))
	}

	if !guiMode && !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "pulsebar: stdout is not a terminal (use -gui for the desktop overlay)")
		os.Exit(1)
	}

	transport, modeLine := buildTransport(*engineFlag, *fakeFlag)

	tuiDone := make(chan struct{})
	if guiMode {
		sink = guiApp
	} else {
		p := NewTUIProgram(engine)
		tuiMu.Lock()
		tuiProgram = p
		tuiMu.Unlock()
		sink = tuiSink{}

		// The program must be running before the first sink send
		// lands, so Run goes on its own goroutine and the mount
		// waits for the loop to come up.
		go func() {
			if _, err := p.Run(); err != nil {
				log.Errorf("tui: %v", err)
			}
			close(tuiDone)
		}()
		<-tuiReady
	}

	host := "tui"
	if guiMode {
		host = "gui"
	}
	log.SessionStart(host, *engineFlag)
	sink.ModeLine(modeLine)

	detachFeed = feed.NewManager(transport).Subscribe(
		func(level float64) {
			engine.Amplitude(level)
		},
		func(value string) {
			if !engine.Transition(value) {
				log.Warnf("unknown recording state %q", value)
				return
			}
			transitions.Add(1)
			sink.StateChanged(engine.State())
		},
	)

	go watchFeed(engine, sink, stopCh)

	if guiMode {
		// The Fyne main loop owns the process; shutdown runs when it quits.
		return
	}

	<-tuiDone
	gracefulShutdown()
}

func buildTransport(addr string, fake bool) (feed.Transport, string) {
	if fake {
		t := feed.NewFake()
		scriptStop := make(chan struct{})
		go t.RunScript(scriptStop)
		stopFake = func() { close(scriptStop) }
		return t, "[engine fake]"
	}
	t := feed.NewWS(addr)
	label := fmt.Sprintf("[engine %s]", addr)
	if !t.Available() {
		label += " unavailable"
	}
	return t, label
}

// watchFeed runs the staleness monitor: while the engine claims to be
// listening, the sink is warned when amplitude events stop arriving.
func watchFeed(e *indicator.Engine, sink EventSink, stop <-chan struct{}) {
	m := newFeedMonitor()
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	var lastCount uint64
	prevState := e.State()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		st := e.State()
		if st != prevState {
			prevState = st
			if m.warned {
				sink.NoSignal(false)
			}
			m.Reset()
		}

		n := e.AmplitudeEvents()
		saw := n != lastCount
		lastCount = n

		if st != indicator.Listening {
			continue
		}
		switch m.Tick(saw) {
		case FeedQuiet:
			log.Warn("listening but no amplitude events from engine")
			sink.NoSignal(true)
		case FeedQuietClear:
			sink.NoSignal(false)
		}
	}
}
