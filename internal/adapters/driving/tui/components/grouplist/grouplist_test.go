package grouplist

import (
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/eventscope/internal/core/domain"
)

func sampleGroups() []domain.Group {
	march := time.Date(2026, 3, 14, 19, 0, 0, 0, time.Local)
	april := time.Date(2026, 4, 2, 9, 30, 0, 0, time.Local)
	return []domain.Group{
		{
			Key: domain.MonthKeyOf(march),
			Events: []domain.Event{
				{Title: "Jazz Evening", Start: march, Venue: "Blue Note", City: "Lisbon"},
				{Title: "Morning Run", Start: march.Add(12 * time.Hour)},
			},
		},
		{
			Key: domain.MonthKeyOf(april),
			Events: []domain.Event{
				{Title: "Spring Fair", Start: april},
			},
		},
	}
}

func TestGroupList_ViewRendersMonthHeaders(t *testing.T) {
	list := NewGroupList(nil)
	list.SetDimensions(100, 40)
	list.SetGroups(sampleGroups())

	out := list.View()

	assert.Contains(t, out, "March 2026")
	assert.Contains(t, out, "April 2026")
	assert.Contains(t, out, "Jazz Evening")
	assert.Contains(t, out, "Blue Note, Lisbon")
	assert.Contains(t, out, "Spring Fair")
}

func TestGroupList_EmptyViewIsBlank(t *testing.T) {
	list := NewGroupList(nil)

	assert.Empty(t, list.View())
	assert.True(t, list.IsEmpty())
	assert.Equal(t, 0, list.Count())
}

func TestGroupList_Count(t *testing.T) {
	list := NewGroupList(nil)
	list.SetGroups(sampleGroups())

	assert.Equal(t, 3, list.Count())
	assert.False(t, list.IsEmpty())
	assert.Equal(t, "3 events in 2 months", list.Summary())
}

func TestGroupList_ScrollClampsAtBounds(t *testing.T) {
	list := NewGroupList(nil)
	list.SetDimensions(100, 3)
	list.SetGroups(sampleGroups())

	list.ScrollUp()
	assert.Equal(t, 0, list.Offset())

	for i := 0; i < 50; i++ {
		list.ScrollDown()
	}
	maxOffset := list.Offset()
	list.ScrollDown()
	assert.Equal(t, maxOffset, list.Offset())
}

func TestGroupList_ScrollChangesWindow(t *testing.T) {
	list := NewGroupList(nil)
	list.SetDimensions(100, 2)
	list.SetGroups(sampleGroups())

	top := list.View()
	assert.Contains(t, top, "March 2026")

	for i := 0; i < 50; i++ {
		list.ScrollDown()
	}
	bottom := list.View()
	assert.Contains(t, bottom, "Spring Fair")
	assert.NotContains(t, bottom, "March 2026")
}

func TestGroupList_UpdateHandlesArrowKeys(t *testing.T) {
	list := NewGroupList(nil)
	list.SetDimensions(100, 2)
	list.SetGroups(sampleGroups())

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, list.Offset())

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, list.Offset())
}

func TestGroupList_SetGroupsResetsScroll(t *testing.T) {
	list := NewGroupList(nil)
	list.SetDimensions(100, 2)
	list.SetGroups(sampleGroups())
	list.ScrollDown()
	require.Equal(t, 1, list.Offset())

	list.SetGroups(sampleGroups())

	assert.Equal(t, 0, list.Offset())
}

func TestGroupList_TruncatesLongTitles(t *testing.T) {
	long := "An Extremely Long Event Title That Cannot Possibly Fit In A Narrow Terminal Window At All"
	list := NewGroupList(nil)
	list.SetDimensions(40, 10)
	list.SetGroups([]domain.Group{
		{
			Key:    domain.MonthKey{Year: 2026, Month: time.May},
			Events: []domain.Event{{Title: long, Start: time.Date(2026, 5, 1, 10, 0, 0, 0, time.Local)}},
		},
	})

	out := list.View()

	assert.Contains(t, out, "...")
	assert.NotContains(t, out, long)
}

func TestGroupList_TruncatesMultibyteTitlesOnRuneBoundaries(t *testing.T) {
	long := "Größtes Frühlingsfest der Städte mit Künstlermärkten, Straßenmusik und Biergärten überall"
	list := NewGroupList(nil)
	list.SetDimensions(40, 10)
	list.SetGroups([]domain.Group{
		{
			Key:    domain.MonthKey{Year: 2026, Month: time.May},
			Events: []domain.Event{{Title: long, Start: time.Date(2026, 5, 1, 10, 0, 0, 0, time.Local)}},
		},
	})

	out := list.View()

	assert.Contains(t, out, "...")
	assert.NotContains(t, out, long)
	assert.True(t, utf8.ValidString(out), "truncation must not split a rune")
}
