// Package filterbar hosts the dashboard's text criteria: the free-text
// search box and the createdOn date-range bounds.
package filterbar

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/charmbracelet/bubbles/v2/textinput"

	"tableflip.dev/intake/pkg/query"
	"tableflip.dev/intake/pkg/tui/theme"
)

// Field identifies which input owns the keyboard.
type Field int

const (
	FieldSearch Field = iota
	FieldStart
	FieldEnd
)

type Model struct {
	theme theme.FooterTheme

	search textinput.Model
	start  textinput.Model
	end    textinput.Model

	focus Field
}

func New(th theme.FooterTheme) Model {
	search := textinput.New()
	search.Placeholder = "search id, case, type, creator"
	search.CharLimit = 128
	search.Prompt = "/"

	start := textinput.New()
	start.Placeholder = "YYYY-MM-DD"
	start.CharLimit = 10
	start.Prompt = "from "

	end := textinput.New()
	end.Placeholder = "YYYY-MM-DD"
	end.CharLimit = 10
	end.Prompt = "to "

	return Model{theme: th, search: search, start: start, end: end}
}

// FocusSearch moves the keyboard into the search box.
func (m *Model) FocusSearch() tea.Cmd {
	m.blurAll()
	m.focus = FieldSearch
	cmd := m.search.Focus()
	return tea.Batch(cmd, textinput.Blink)
}

// FocusDates moves the keyboard into the date bounds, starting at the
// lower bound.
func (m *Model) FocusDates() tea.Cmd {
	m.blurAll()
	m.focus = FieldStart
	cmd := m.start.Focus()
	return tea.Batch(cmd, textinput.Blink)
}

// Cycle advances focus between the date bounds.
func (m *Model) Cycle() tea.Cmd {
	if m.focus == FieldStart {
		m.blurAll()
		m.focus = FieldEnd
		return m.end.Focus()
	}
	m.blurAll()
	m.focus = FieldStart
	return m.start.Focus()
}

// Blur releases the keyboard.
func (m *Model) Blur() {
	m.blurAll()
}

func (m *Model) blurAll() {
	m.search.Blur()
	m.start.Blur()
	m.end.Blur()
}

// Update routes the message to the focused input.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case FieldSearch:
		m.search, cmd = m.search.Update(msg)
	case FieldStart:
		m.start, cmd = m.start.Update(msg)
	case FieldEnd:
		m.end, cmd = m.end.Update(msg)
	}
	return cmd
}

// Search returns the current free-text needle.
func (m *Model) Search() string { return m.search.Value() }

// Dates returns the current range; it is enabled whenever a bound was
// typed.
func (m *Model) Dates() query.DateRange {
	r := query.DateRange{Start: m.start.Value(), End: m.end.Value()}
	r.Enabled = r.Start != "" || r.End != ""
	return r
}

// Clear resets every criterion input.
func (m *Model) Clear() {
	m.search.Reset()
	m.start.Reset()
	m.end.Reset()
}

// SearchView renders the search box line.
func (m *Model) SearchView() string {
	return m.search.View()
}

// DatesView renders the date-range line.
func (m *Model) DatesView() string {
	return m.start.View() + "  " + m.end.View()
}
