package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar_ViewShowsCounts(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetCounts(3, 12)

	out := bar.View()

	assert.Contains(t, out, "3/12 events")
}

func TestBar_ViewShowsSourceLabel(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetCounts(5, 5)
	bar.SetSource("ics, html")

	out := bar.View()

	assert.Contains(t, out, "ics, html")
}

func TestBar_MessageReplacesCounts(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetCounts(3, 12)
	bar.SetMessage("load failed: no such file")

	out := bar.View()

	assert.Contains(t, out, "load failed")
	assert.NotContains(t, out, "3/12")
}

func TestBar_ViewShowsKeyHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)

	out := bar.View()

	assert.Contains(t, out, "ctrl+c: quit")
	assert.Contains(t, out, "esc: clear")
}

func TestBar_ViewFitsWidthWithoutWrapping(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetCounts(3, 12)
	bar.SetSource("ics")

	out := bar.View()

	// The style pads the content, so the filler must leave room for it;
	// a bar that overflows its width wraps and splits the key hints.
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "ctrl+c: quit")
}

func TestBar_Accessors(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetCounts(2, 7)
	bar.SetMessage("hello")
	bar.SetWidth(42)

	assert.Equal(t, 2, bar.Matched())
	assert.Equal(t, 7, bar.Total())
	assert.Equal(t, "hello", bar.Message())
	assert.Equal(t, 42, bar.Width())
}
