// Package grouplist renders month-grouped events as a scrollable list.
package grouplist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veldt-labs/eventscope/internal/adapters/driving/tui/styles"
	"github.com/veldt-labs/eventscope/internal/core/domain"
)

// GroupList displays the month groups of a view with line-based
// scrolling. The list is display-only; selection lives in the filter.
type GroupList struct {
	groups []domain.Group
	offset int
	styles *styles.Styles
	width  int
	height int
}

// NewGroupList creates a new group list component.
func NewGroupList(s *styles.Styles) *GroupList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &GroupList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the group list.
func (g *GroupList) Init() tea.Cmd {
	return nil
}

// Update handles scroll messages.
func (g *GroupList) Update(msg tea.Msg) (*GroupList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // only scroll keys are relevant
		switch msg.Type {
		case tea.KeyUp:
			g.ScrollUp()
		case tea.KeyDown:
			g.ScrollDown()
		default:
		}
	}
	return g, nil
}

// View renders the visible window of the rendered lines.
func (g *GroupList) View() string {
	lines := g.renderLines()
	if len(lines) == 0 {
		return ""
	}

	visible := g.height
	if visible < 1 {
		visible = 1
	}

	start := g.offset
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

// renderLines flattens the groups into styled display lines.
func (g *GroupList) renderLines() []string {
	lines := make([]string, 0, len(g.groups)*4)
	for i := range g.groups {
		group := &g.groups[i]
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, g.styles.MonthHeader.Render(group.Key.String()))
		for j := range group.Events {
			lines = append(lines, g.renderEvent(&group.Events[j])...)
		}
	}
	return lines
}

// renderEvent formats one event as a primary line plus an optional
// detail line.
func (g *GroupList) renderEvent(e *domain.Event) []string {
	when := e.Start.Local().Format("Mon 02 15:04")
	if e.HasEnd() {
		when += "–" + e.End.Local().Format("15:04")
	}

	title := e.Title
	maxTitle := g.width - len(when) - 6
	if maxTitle < 10 {
		maxTitle = 10
	}
	if lipgloss.Width(title) > maxTitle {
		// Cut on rune boundaries so multi-byte titles stay valid UTF-8.
		runes := []rune(title)
		if len(runes) > maxTitle-3 {
			runes = runes[:maxTitle-3]
		}
		title = string(runes) + "..."
	}

	primary := g.styles.Muted.Render("  "+when+"  ") + g.styles.Normal.Render(title)

	detail := e.Location()
	if detail == "" {
		return []string{primary}
	}

	indent := strings.Repeat(" ", len(when)+4)
	return []string{primary, g.styles.Muted.Render(indent + detail)}
}

// SetGroups replaces the displayed groups and resets the scroll.
func (g *GroupList) SetGroups(groups []domain.Group) {
	g.groups = groups
	g.offset = 0
}

// Groups returns the current groups.
func (g *GroupList) Groups() []domain.Group {
	return g.groups
}

// ScrollUp moves the window up one line.
func (g *GroupList) ScrollUp() {
	if g.offset > 0 {
		g.offset--
	}
}

// ScrollDown moves the window down one line.
func (g *GroupList) ScrollDown() {
	if g.offset < g.maxOffset() {
		g.offset++
	}
}

// Offset returns the current scroll offset.
func (g *GroupList) Offset() int {
	return g.offset
}

func (g *GroupList) maxOffset() int {
	total := g.lineCount()
	if total <= g.height {
		return 0
	}
	return total - g.height
}

// lineCount returns the total number of rendered lines.
func (g *GroupList) lineCount() int {
	count := 0
	for i := range g.groups {
		if i > 0 {
			count++
		}
		count++
		for j := range g.groups[i].Events {
			count += len(g.renderEvent(&g.groups[i].Events[j]))
		}
	}
	return count
}

// SetDimensions sets the component dimensions.
func (g *GroupList) SetDimensions(width, height int) {
	g.width = width
	g.height = height
	if g.offset > g.maxOffset() {
		g.offset = g.maxOffset()
	}
}

// Count returns the number of events across all groups.
func (g *GroupList) Count() int {
	count := 0
	for i := range g.groups {
		count += len(g.groups[i].Events)
	}
	return count
}

// IsEmpty returns whether the list has no events.
func (g *GroupList) IsEmpty() bool {
	return g.Count() == 0
}

// Summary returns a one-line description of the list contents.
func (g *GroupList) Summary() string {
	return fmt.Sprintf("%d events in %d months", g.Count(), len(g.groups))
}
