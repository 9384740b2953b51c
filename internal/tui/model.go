package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterkuimelis/swipecity/internal/game"
	"github.com/peterkuimelis/swipecity/internal/log"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2).
			Width(52)

	leavingStyle = cardStyle.
			BorderForeground(lipgloss.Color("#444444")).
			Foreground(lipgloss.Color("#666666"))

	gameOverStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#F25D94")).
			Padding(1, 2).
			Width(52)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1).
			Width(52)

	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
)

const logLines = 6

// transitionDoneMsg fires when the card-off/card-in animation has finished.
type transitionDoneMsg struct{}

// feed is an Observer buffering engine events between Update calls. The
// engine notifies synchronously, so no locking is needed.
type feed struct {
	events []log.GameEvent
}

func (f *feed) Notify(event log.GameEvent) {
	f.events = append(f.events, event)
}

func (f *feed) drain() []log.GameEvent {
	events := f.events
	f.events = nil
	return events
}

// Model is the bubbletea model for a local game.
type Model struct {
	engine     *game.Engine
	feed       *feed
	transition time.Duration

	bars    [game.ResourceCount]progress.Model
	changes map[string]int // resource deltas of the last decision
	log     []string
	status  string
	width   int
}

// NewModel wraps a started engine. transition is how long a swiped card
// takes to leave the screen.
func NewModel(engine *game.Engine, transition time.Duration) *Model {
	m := &Model{
		engine:     engine,
		feed:       &feed{},
		transition: transition,
		changes:    make(map[string]int),
	}
	for i := range m.bars {
		m.bars[i] = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(30))
	}
	engine.Subscribe(m.feed)
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "left", "h", "a":
			return m, m.swipe(false)
		case "right", "l", "d":
			return m, m.swipe(true)
		case "r":
			if m.engine.Over() {
				if err := m.engine.Restart(); err != nil {
					m.status = err.Error()
				}
				m.changes = make(map[string]int)
				m.consume()
			}
		}

	case transitionDoneMsg:
		if err := m.engine.TransitionComplete(); err != nil {
			m.status = err.Error()
		}
		m.consume()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := min(max(msg.Width-24, 10), 40)
		for i := range m.bars {
			m.bars[i].Width = w
		}
	}
	return m, nil
}

// swipe submits a decision and schedules the end of the card transition.
func (m *Model) swipe(isRight bool) tea.Cmd {
	err := m.engine.SubmitDecision(isRight)
	if errors.Is(err, game.ErrInvalidState) {
		// Mid-transition or game over: the swipe is dropped.
		return nil
	}
	if err != nil {
		m.status = err.Error()
		return nil
	}
	m.status = ""
	m.changes = make(map[string]int)
	m.consume()
	if m.engine.Over() {
		return nil
	}
	return tea.Tick(m.transition, func(time.Time) tea.Msg { return transitionDoneMsg{} })
}

// consume folds buffered engine events into the view state.
func (m *Model) consume() {
	for _, ev := range m.feed.drain() {
		switch ev.Type {
		case log.EventResourceChanged:
			m.changes[ev.Resource] += ev.Value - ev.Old
		case log.EventDecision, log.EventGameOver, log.EventShuffle, log.EventRestart:
			m.log = append(m.log, ev.Details)
		}
	}
	if len(m.log) > logLines {
		m.log = m.log[len(m.log)-logLines:]
	}
}

func (m *Model) renderResources() string {
	var sb strings.Builder
	for i, r := range m.engine.Snapshot() {
		pct := float64(r.Value-r.Min) / float64(r.Max-r.Min)
		line := fmt.Sprintf("%-12s %s %3d", r.Type, m.bars[i].ViewAs(pct), r.Value)
		if d := m.changes[r.Type.String()]; d > 0 {
			line += " " + upStyle.Render(fmt.Sprintf("▲%d", d))
		} else if d < 0 {
			line += " " + downStyle.Render(fmt.Sprintf("▼%d", -d))
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m *Model) renderCard() string {
	if m.engine.Over() {
		return gameOverStyle.Render(fmt.Sprintf("YOUR REIGN IS OVER\n\n%s", m.engine.Result()))
	}
	card, err := m.engine.Current()
	if err != nil {
		return cardStyle.Render("No cards to show.")
	}
	body := lipgloss.NewStyle().Bold(true).Render(card.Title)
	if card.Description != "" {
		body += "\n\n" + card.Description
	}
	body += fmt.Sprintf("\n\n← %s\n→ %s", card.Left.Label, card.Right.Label)

	if m.engine.State() == game.StateTransitioning {
		return leavingStyle.Render(body)
	}
	return cardStyle.Render(body)
}

func (m *Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("Swipe City · decision %d", m.engine.Decisions()))

	help := "←/h: left  →/l: right  q: quit"
	if m.engine.Over() {
		help = "r: restart  q: quit"
	}
	if m.status != "" {
		help = m.status + "  " + help
	}

	parts := []string{title, m.renderResources(), m.renderCard()}
	if len(m.log) > 0 {
		parts = append(parts, logBoxStyle.Render(strings.Join(m.log, "\n")))
	}
	parts = append(parts, infoStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Run starts an engine from cfg and plays it in the terminal.
func Run(cfg game.Config, transition time.Duration) error {
	engine, err := game.NewEngine(cfg)
	if err != nil {
		return err
	}
	m := NewModel(engine, transition)
	if err := engine.Start(); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	m.consume()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
