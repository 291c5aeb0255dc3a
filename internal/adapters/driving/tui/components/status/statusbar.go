// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veldt-labs/eventscope/internal/adapters/driving/tui/keymap"
	"github.com/veldt-labs/eventscope/internal/adapters/driving/tui/styles"
)

// Bar displays match counts, the feed source label and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	matched int
	total   int
	source  string
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages. The bar is passive; state arrives
// via Set methods.
func (b *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	// The style's own padding eats into the content area.
	frame := b.styles.StatusBar.GetHorizontalFrameSize()
	padding := b.width - frame - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	if b.message != "" {
		return b.styles.Warning.Render(b.message)
	}

	counts := fmt.Sprintf("%d/%d events", b.matched, b.total)
	if b.source == "" {
		return b.styles.Normal.Render(counts)
	}
	return b.styles.Normal.Render(counts) + b.styles.Muted.Render("  "+b.source)
}

func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Help.Render(strings.Join(hints, " | "))
}

// SetCounts sets the matched and total event counts.
func (b *Bar) SetCounts(matched, total int) {
	b.matched = matched
	b.total = total
}

// Matched returns the matched count.
func (b *Bar) Matched() int {
	return b.matched
}

// Total returns the total count.
func (b *Bar) Total() int {
	return b.total
}

// SetSource sets the feed source label.
func (b *Bar) SetSource(source string) {
	b.source = source
}

// SetMessage sets a transient message that replaces the counts.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}
