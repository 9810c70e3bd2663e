// Package filtermenu renders the per-column filter dropdown.
package filtermenu

import (
	"strings"

	"tableflip.dev/intake/pkg/dashboard"
	"tableflip.dev/intake/pkg/query"
	"tableflip.dev/intake/pkg/tui/theme"
)

type Model struct {
	theme   theme.MenuTheme
	column  query.Column
	options []dashboard.Option
	index   int
}

func New(th theme.MenuTheme) Model {
	return Model{theme: th}
}

// Open loads the dropdown for a column. Columns without a fixed
// vocabulary report false.
func (m *Model) Open(col query.Column, options []dashboard.Option) bool {
	if len(options) == 0 {
		return false
	}
	m.column = col
	m.options = options
	m.index = 0
	return true
}

func (m *Model) Column() query.Column { return m.column }

func (m *Model) Up() {
	if m.index > 0 {
		m.index--
	} else {
		m.index = len(m.options) - 1
	}
}

func (m *Model) Down() {
	if m.index < len(m.options)-1 {
		m.index++
	} else {
		m.index = 0
	}
}

// Choice returns the constraint for the highlighted option.
func (m *Model) Choice() query.ColumnFilter {
	if m.index < 0 || m.index >= len(m.options) {
		return query.ColumnFilter{}
	}
	return query.ColumnFilter{Column: m.column, Value: m.options[m.index].Value}
}

func (m *Model) View() string {
	lines := make([]string, 0, len(m.options)+1)
	lines = append(lines, m.theme.Selected.Render(string(m.column)))
	for i, opt := range m.options {
		label := opt.Label
		if i == m.index {
			lines = append(lines, m.theme.Selected.Render("> "+label))
		} else {
			lines = append(lines, m.theme.Item.Render("  "+label))
		}
	}
	return m.theme.Frame.Render(strings.Join(lines, "\n"))
}
