// Package recordtable renders one page of the assessment collection
// with a movable selection cursor.
package recordtable

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/intake/pkg/assessment"
	"tableflip.dev/intake/pkg/query"
	"tableflip.dev/intake/pkg/tui/theme"
)

var columns = []struct {
	title string
	width int
}{
	{"ID", 20},
	{"CASE", 10},
	{"TYPE", 12},
	{"STATUS", 12},
	{"CREATED ON", 24},
	{"CREATED BY", 14},
	{"SUBMITTED ON", 24},
}

// Model holds the rows of the current page and the cursor over them.
type Model struct {
	theme  theme.TableTheme
	result query.Result
	cursor int
	width  int
}

func New(th theme.TableTheme) Model {
	return Model{theme: th}
}

// SetResult replaces the visible page. The cursor stays on the same
// index when possible.
func (m *Model) SetResult(res query.Result) {
	m.result = res
	if m.cursor >= len(res.Items) {
		m.cursor = len(res.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) SetWidth(w int) { m.width = w }

// Result returns the page currently shown.
func (m *Model) Result() query.Result { return m.result }

func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *Model) CursorDown() {
	if m.cursor < len(m.result.Items)-1 {
		m.cursor++
	}
}

// Selected returns the record under the cursor.
func (m *Model) Selected() (assessment.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.result.Items) {
		return assessment.Record{}, false
	}
	return m.result.Items[m.cursor], true
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Header.Render(renderCells(headerCells())))
	b.WriteString("\n")

	if len(m.result.Items) == 0 {
		b.WriteString(m.theme.Empty.Render(" no assessments"))
		return b.String()
	}

	for i, rec := range m.result.Items {
		id, caseID, typ, status, createdOn, createdBy, submittedOn := rec.Row()
		line := renderCells([]string{id, caseID, typ, status, createdOn, createdBy, submittedOn})
		style := m.theme.Row
		if i == m.cursor {
			style = m.theme.Selected
		}
		b.WriteString(style.Render(line))
		if i < len(m.result.Items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Pager renders the "page N of M" tail, empty when one page fits all.
func (m *Model) Pager() string {
	if m.result.TotalPages <= 1 {
		return ""
	}
	return fmt.Sprintf("page %d of %d", m.result.Page, m.result.TotalPages)
}

// Tally renders the "N of M results" header line: matching records
// over the whole collection.
func (m *Model) Tally() string {
	return fmt.Sprintf("%d of %d results", m.result.TotalFiltered, m.result.TotalRecords)
}

func headerCells() []string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = col.title
	}
	return cells
}

func renderCells(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		w := columns[i].width
		cell = truncate.StringWithTail(cell, uint(w), "…")
		parts[i] = fmt.Sprintf("%-*s", w, cell)
	}
	return strings.Join(parts, "  ")
}
