package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/hperssn/meditate/internal/domain"
	"github.com/hperssn/meditate/internal/runner"
	"github.com/hperssn/meditate/internal/timer"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewModeList    ViewMode = iota // Session list
	ViewModeSession                 // Countdown for one session
)

const (
	appTitle         = "Meditation Sessions"
	defaultBarWidth  = 40
	minimumBarWidth  = 10
	completedMessage = "Session Completed! You meditated for %d minutes."
	stoppedMessage   = "Session stopped. Remember to come back later!"
)

// Messages
type eventMsg struct {
	runID string
	event timer.Event
}

// eventsClosedMsg is sent when a run's event channel closes.
type eventsClosedMsg struct {
	runID string
}

// Model is the root Bubble Tea model
type Model struct {
	width int

	viewMode ViewMode
	cursor   int

	catalog *domain.Catalog
	clock   clockwork.Clock
	log     *logrus.Entry
	obs     runner.Observer

	run        *runner.Run
	events     <-chan timer.Event
	release    func()
	state      timer.State
	confirming bool
	message    string

	keys     KeyMap
	help     help.Model
	progress progress.Model
}

func New(catalog *domain.Catalog, clock clockwork.Clock, log *logrus.Entry, obs runner.Observer) Model {
	bar := progress.New(progress.WithSolidFill(string(ColorAccent)), progress.WithoutPercentage())
	bar.Width = defaultBarWidth

	return Model{
		catalog:  catalog,
		clock:    clock,
		log:      log,
		obs:      obs,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: bar,
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m Model) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(Model); ok {
		fm.closeSession()
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = max(msg.Width-8, minimumBarWidth)
		return m, nil

	case eventMsg:
		if m.run == nil || msg.runID != m.run.ID {
			return m, nil
		}
		m.state = m.run.State()
		switch msg.event.Type {
		case timer.EventCompleted:
			m.message = fmt.Sprintf(completedMessage, msg.event.DurationMinutes)
		case timer.EventStopped:
			m.message = stoppedMessage
		}
		if msg.event.Final() {
			m.closeSession()
			m.viewMode = ViewModeList
			return m, nil
		}
		return m, waitForEvent(m.run.ID, m.events)

	case eventsClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if m.viewMode == ViewModeSession {
			return m.updateSession(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.catalog.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		return m.openSession()
	}
	return m, nil
}

func (m Model) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.closeSession()
		return m, tea.Quit
	}

	if m.confirming {
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.confirming = false
			m.run.Stop(true)
		case key.Matches(msg, m.keys.No):
			m.confirming = false
			m.run.Stop(false)
		}
		m.state = m.run.State()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeSession()
		m.viewMode = ViewModeList
		return m, nil
	case key.Matches(msg, m.keys.Start):
		m.run.Start()
	case key.Matches(msg, m.keys.Pause):
		switch m.run.State().Phase {
		case timer.PhaseRunning:
			m.run.Pause()
		case timer.PhasePaused:
			m.run.Resume()
		}
	case key.Matches(msg, m.keys.Stop):
		m.confirming = m.run.RequestStop()
	}

	m.state = m.run.State()
	return m, nil
}

func (m Model) openSession() (tea.Model, tea.Cmd) {
	session, ok := m.catalog.At(m.cursor)
	if !ok {
		return m, nil
	}

	m.run = runner.NewRun(session, m.clock, m.log, m.obs)
	m.events, m.release = m.run.Subscribe()
	m.state = m.run.State()
	m.message = ""
	m.confirming = false
	m.viewMode = ViewModeSession

	return m, waitForEvent(m.run.ID, m.events)
}

func (m *Model) closeSession() {
	if m.run == nil {
		return
	}
	m.release()
	m.run.Close()
	m.run = nil
	m.events = nil
	m.release = nil
	m.confirming = false
}

// waitForEvent blocks until the run publishes an event or its channel closes.
func waitForEvent(runID string, events <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{runID: runID}
		}
		return eventMsg{runID: runID, event: ev}
	}
}

func (m Model) View() string {
	if m.viewMode == ViewModeSession && m.run != nil {
		return m.sessionView()
	}
	return m.listView()
}

func (m Model) listView() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(appTitle))
	b.WriteString("\n")
	status := StatusStyle
	if m.catalog.UsingFallback() {
		status = FallbackStatusStyle
	}
	b.WriteString(status.Render(m.catalog.Status()))
	b.WriteString("\n")
	if m.message != "" {
		// outcome of the last run
		b.WriteString(DoneStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, s := range m.catalog.Sessions() {
		entry := RenderEntry(s)
		if i == m.cursor {
			b.WriteString(SelectedItemStyle.Render(entry))
		} else {
			b.WriteString(ItemStyle.Render(entry))
		}
		b.WriteString("\n")
	}

	b.WriteString(FooterStyle.Render(Footer(m.catalog.Len())))
	b.WriteString("\n")
	b.WriteString(m.help.View(listKeys{m.keys}))
	return b.String()
}

func (m Model) sessionView() string {
	s := m.run.Session()

	var b strings.Builder
	b.WriteString(TitleStyle.Render(s.Title))
	b.WriteString("\n")
	b.WriteString(MetaStyle.Render(Meta(s)))
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render(s.Description))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(float64(m.state.Percent) / 100))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d%% Complete\n", m.state.Percent)
	fmt.Fprintf(&b, "Time remaining: %s\n\n", Clock(m.state.RemainingSeconds))

	keys := help.KeyMap(sessionKeys{m.keys})
	switch {
	case m.message != "":
		b.WriteString(DoneStyle.Render(m.message))
	case m.confirming:
		b.WriteString(PromptStyle.Render("Stop this session? (y/n)"))
		keys = confirmKeys{m.keys}
	case m.state.Phase == timer.PhaseIdle:
		b.WriteString(s.Kind.Cue())
	case m.state.Phase == timer.PhasePaused:
		b.WriteString(PromptStyle.Render("Paused"))
	default:
		b.WriteString(s.Kind.PlayMessage(s.Title))
	}

	return PanelStyle.Render(b.String()) + "\n" + m.help.View(keys)
}

// Meta renders the "N minutes • LABEL" line of a session.
func Meta(s domain.SessionRecord) string {
	return fmt.Sprintf("%d minutes • %s", s.DurationMinutes, s.Kind.Label())
}

func Footer(total int) string {
	return fmt.Sprintf("Total Sessions: %d | Select a session to begin", total)
}

// Clock formats seconds as MM:SS.
func Clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// RenderEntry renders one catalog entry as three lines.
func RenderEntry(s domain.SessionRecord) string {
	return TitleStyle.Render(s.Title) + "\n" + MetaStyle.Render(Meta(s)) + "\n" + DescriptionStyle.Render(s.Description)
}
