package main

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pulsebar/indicator"
	"pulsebar/signal"
)

// TUI message types
type StateMsg struct{ State indicator.State }
type ModeLineMsg struct{ Text string }
type NoSignalMsg struct{ Active bool }
type tickMsg time.Time

const (
	tuiFrameInterval = 33 * time.Millisecond
	barRows          = 8
)

type tuiModel struct {
	engine        *indicator.Engine
	bars          [indicator.NumBars]float64
	state         indicator.State
	width, height int
	modeLine      string // "[engine ws://127.0.0.1:8517]"
	noSignal      bool   // feed went quiet while listening
}

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

// Program.Send blocks until the event loop is running, so anything that
// sends at mount time waits on tuiReady. Init closes it from inside the
// loop, which is the first point a send can land.
var (
	tuiReady     = make(chan struct{})
	tuiReadyOnce sync.Once
)

// Pre-computed bucket styles to avoid allocations in the render loop.
// One ramp for the live meter, one for the thinking pulse.
var (
	barColorsLive  = []string{"238", "22", "28", "34", "40", "46", "154", "190", "226", "208", "196"}
	barColorsPulse = []string{"238", "17", "18", "19", "20", "26", "27", "33", "39", "45", "51"}
	barStylesLive  [11]lipgloss.Style
	barStylesPulse [11]lipgloss.Style
	emptyCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
)

func init() {
	for i, c := range barColorsLive {
		barStylesLive[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	for i, c := range barColorsPulse {
		barStylesPulse[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
}

func NewTUIProgram(engine *indicator.Engine) *tea.Program {
	m := tuiModel{engine: engine}
	return tea.NewProgram(m, tea.WithAltScreen())
}

func tuiTick() tea.Cmd {
	return tea.Tick(tuiFrameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	tuiReadyOnce.Do(func() { close(tuiReady) })
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tickMsg:
		// The tick is the frame loop: it always re-arms itself and
		// never restarts because a target or state changed under it.
		m.engine.Advance()
		f := m.engine.Frame()
		m.bars = f.Bars
		m.state = f.State
		return m, tuiTick()

	case StateMsg:
		m.state = msg.State

	case ModeLineMsg:
		m.modeLine = msg.Text

	case NoSignalMsg:
		m.noSignal = msg.Active
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(renderBars(m.bars, m.state))
	b.WriteString("\n")

	// Status line
	var status string
	switch m.state {
	case indicator.Listening:
		status = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Render("● LISTENING")
	case indicator.Processing:
		status = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")).
			Render("◌ PROCESSING")
	case indicator.Cancelling:
		status = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("✕ CANCELLING")
	}
	b.WriteString(status + "\n")

	if m.noSignal && m.state == indicator.Listening {
		warn := lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Render("⚠ no signal from engine")
		b.WriteString(warn + "\n")
	}

	if m.modeLine != "" {
		mode := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render(m.modeLine)
		b.WriteString(mode + "\n")
	}

	// Help line with version
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q to quit") + "\n")
	b.WriteString(helpStyle.Render("pulsebar "+version))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// renderBars draws the nine bars as columns, top row first. Each cell
// is two block characters; the bucket class picks the style.
func renderBars(bars [indicator.NumBars]float64, state indicator.State) string {
	styles := &barStylesLive
	if state != indicator.Listening {
		styles = &barStylesPulse
	}

	var b strings.Builder
	for row := 0; row < barRows; row++ {
		threshold := float64(barRows-row) / barRows
		for i, v := range bars {
			if i > 0 {
				b.WriteString(" ")
			}
			if v >= threshold-1e-9 {
				b.WriteString(styles[signal.Bucket(v)].Render("██"))
			} else {
				b.WriteString(emptyCellStyle.Render("··"))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// tuiSink forwards engine notifications into the Bubble Tea loop.
type tuiSink struct{}

func (tuiSink) send(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (s tuiSink) StateChanged(st indicator.State) { s.send(StateMsg{State: st}) }
func (s tuiSink) ModeLine(text string)            { s.send(ModeLineMsg{Text: text}) }
func (s tuiSink) NoSignal(active bool)            { s.send(NoSignalMsg{Active: active}) }
