// Package formhost embeds a questionnaire editor for one draft record.
// The host never writes to disk itself: it emits save payloads and the
// dashboard decides when to persist them.
package formhost

import (
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/intake/pkg/assessment"
	"tableflip.dev/intake/pkg/form"
	"tableflip.dev/intake/pkg/tui/theme"
)

type field int

const (
	fieldContract field = iota
	fieldCreator
	fieldNotes
	fieldCount
)

type Model struct {
	theme theme.FormTheme

	draft assessment.Record

	contract textinput.Model
	creator  textinput.Model
	notes    textinput.Model

	focus field
	dirty bool
}

func New(th theme.FormTheme) Model {
	contract := textinput.New()
	contract.Placeholder = "contract number"
	contract.CharLimit = 32
	contract.Prompt = ""

	creator := textinput.New()
	creator.Placeholder = "created by"
	creator.CharLimit = 64
	creator.Prompt = ""

	notes := textinput.New()
	notes.Placeholder = "overview notes"
	notes.CharLimit = 512
	notes.Prompt = ""

	return Model{theme: th, contract: contract, creator: creator, notes: notes}
}

// Load populates the editor from a draft and takes the keyboard.
func (m *Model) Load(rec assessment.Record) tea.Cmd {
	m.draft = rec
	m.dirty = false
	m.focus = fieldContract

	if rec.CaseID != "" && rec.CaseID != assessment.CaseIDNone {
		m.contract.SetValue(rec.CaseID)
	} else {
		m.contract.Reset()
	}
	m.creator.SetValue(rec.CreatedBy)
	m.notes.SetValue(notesFromOverview(rec.Overview))

	m.creator.Blur()
	m.notes.Blur()
	cmd := m.contract.Focus()
	return tea.Batch(cmd, textinput.Blink)
}

// Draft returns the record the editor was loaded with.
func (m *Model) Draft() assessment.Record { return m.draft }

// Dirty reports whether anything was typed since the last save.
func (m *Model) Dirty() bool { return m.dirty }

// MarkSaved resets the dirty flag after a persist, so the auto-save
// loop does not rewrite an unchanged draft.
func (m *Model) MarkSaved(rec assessment.Record) {
	m.draft = rec
	m.dirty = false
}

// Cycle advances keyboard focus to the next field.
func (m *Model) Cycle() tea.Cmd {
	m.blurAll()
	m.focus = (m.focus + 1) % fieldCount
	switch m.focus {
	case fieldContract:
		return m.contract.Focus()
	case fieldCreator:
		return m.creator.Focus()
	default:
		return m.notes.Focus()
	}
}

func (m *Model) blurAll() {
	m.contract.Blur()
	m.creator.Blur()
	m.notes.Blur()
}

// Update routes the message to the focused input.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	before := m.values()
	switch m.focus {
	case fieldContract:
		m.contract, cmd = m.contract.Update(msg)
	case fieldCreator:
		m.creator, cmd = m.creator.Update(msg)
	case fieldNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	if m.values() != before {
		m.dirty = true
	}
	return cmd
}

func (m *Model) values() [3]string {
	return [3]string{m.contract.Value(), m.creator.Value(), m.notes.Value()}
}

// Payload builds the save envelope for the current inputs. submit marks
// the draft Completed; auto marks a background save.
func (m *Model) Payload(submit, auto bool) form.SavePayload {
	p := form.SavePayload{
		ContractNumber: strings.TrimSpace(m.contract.Value()),
		CreatedBy:      strings.TrimSpace(m.creator.Value()),
		AutoSaved:      auto,
	}
	if notes := strings.TrimSpace(m.notes.Value()); notes != "" {
		if raw, err := json.Marshal(notes); err == nil {
			p.Overview = raw
		}
	}
	if submit {
		p.Status = assessment.StatusCompleted
	} else {
		p.Status = assessment.StatusInProgress
	}
	return p
}

func (m *Model) View() string {
	title := m.theme.Title.Render(string(m.draft.Type) + " " + m.draft.ID)
	rows := []string{
		title,
		"",
		m.theme.Label.Render("contract ") + m.contract.View(),
		m.theme.Label.Render("creator  ") + m.creator.View(),
		m.theme.Label.Render("overview ") + m.notes.View(),
		"",
		m.theme.Label.Render("status   ") + m.theme.Value.Render(string(m.draft.Status)),
	}
	return m.theme.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// notesFromOverview recovers the editable text from a stored overview.
// Overviews written elsewhere may be arbitrary JSON; those render as-is.
func notesFromOverview(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
