package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veldt-labs/eventscope/internal/adapters/driving/tui/components/grouplist"
	"github.com/veldt-labs/eventscope/internal/adapters/driving/tui/components/input"
	"github.com/veldt-labs/eventscope/internal/adapters/driving/tui/components/status"
	"github.com/veldt-labs/eventscope/internal/adapters/driving/tui/keymap"
	"github.com/veldt-labs/eventscope/internal/adapters/driving/tui/messages"
	"github.com/veldt-labs/eventscope/internal/adapters/driving/tui/styles"
	"github.com/veldt-labs/eventscope/internal/core/domain"
)

// chromeHeight is the number of lines taken by the header, the bordered
// filter input and the status bar around the event list.
const chromeHeight = 8

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea. There is a single
// screen: a filter input above a month-grouped event list; every
// keystroke in the input re-derives the list.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// clock supplies the reference time for the temporal filter.
	clock func() time.Time

	styles *styles.Styles
	keys   *keymap.KeyMap

	filter *input.FilterInput
	list   *grouplist.GroupList
	bar    *status.Bar

	// view is the current derivation of the working set.
	view *domain.View

	// err holds the last load error.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		clock:  time.Now,
		styles: s,
		keys:   km,
		filter: input.NewFilterInput(s),
		list:   grouplist.NewGroupList(s),
		bar:    status.NewBar(s, km),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithClock overrides the reference time source.
func (a *App) WithClock(clock func() time.Time) *App {
	a.clock = clock
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("eventscope - Upcoming Events"),
		a.filter.Init(),
		a.loadCmd(),
		a.watchCmd(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.filter.SetWidth(msg.Width)
		a.list.SetDimensions(msg.Width, msg.Height-chromeHeight)
		a.bar.SetWidth(msg.Width)
		return a, nil

	case messages.DocumentLoaded:
		a.err = msg.Err
		if msg.Err != nil {
			a.bar.SetMessage(fmt.Sprintf("load failed: %v", msg.Err))
			return a, nil
		}
		a.bar.SetMessage("")
		a.refresh()
		return a, nil

	case messages.ArtifactChanged:
		return a, tea.Batch(a.loadCmd(), a.watchCmd())

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, a.keys.Quit):
			return a, tea.Quit

		case keymap.Matches(key, a.keys.Clear):
			if a.filter.Value() != "" {
				a.filter.Reset()
				a.refresh()
			}
			return a, nil

		case keymap.Matches(key, a.keys.Reload):
			return a, a.loadCmd()

		case keymap.Matches(key, a.keys.Up), keymap.Matches(key, a.keys.Down):
			a.list, cmd = a.list.Update(msg)
			return a, cmd
		}

		// Everything else belongs to the filter input. Each keystroke
		// re-derives the view from the unchanged working set.
		a.filter, cmd = a.filter.Update(msg)
		a.refresh()
		return a, cmd
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := a.styles.Title.Render("Eventscope")
	body := a.renderBody()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		a.filter.View(),
		"",
		body,
		"",
		a.bar.View(),
	)
}

// renderBody picks between the event list and the empty states.
func (a *App) renderBody() string {
	if a.view == nil {
		return a.styles.Muted.Render("Loading events...")
	}

	switch a.view.Empty {
	case domain.EmptyNoData:
		lines := []string{a.styles.Warning.Render("No harvested event data yet.")}
		for _, note := range a.view.Notes {
			lines = append(lines, a.styles.Muted.Render("  note: "+note))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)

	case domain.EmptyNoMatches:
		if a.view.Query != "" {
			return a.styles.Muted.Render(fmt.Sprintf("No upcoming events match %q.", a.view.Query))
		}
		return a.styles.Muted.Render("No upcoming events.")
	}

	return a.list.View()
}

// refresh re-derives the view for the current filter text.
func (a *App) refresh() {
	view := a.ports.Events.View(a.filter.Value(), a.clock())
	a.view = view
	a.list.SetGroups(view.Groups)
	a.bar.SetCounts(view.MatchedEvents, view.TotalEvents)
	a.bar.SetSource(a.ports.Events.Meta().SourceLabel())
}

// loadCmd loads the artifact off the update loop.
func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return messages.DocumentLoaded{Err: a.ports.Events.Load(a.ctx)}
	}
}

// watchCmd blocks on the artifact change channel, if one is wired.
func (a *App) watchCmd() tea.Cmd {
	if a.ports.Changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-a.ports.Changes; !ok {
			return nil
		}
		return messages.ArtifactChanged{}
	}
}

// Ready reports whether the app has received its terminal dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// Query returns the current filter text.
func (a *App) Query() string {
	return a.filter.Value()
}

// CurrentView returns the last derived view.
func (a *App) CurrentView() *domain.View {
	return a.view
}

// Err returns the last load error.
func (a *App) Err() error {
	return a.err
}
