// Package tuiapp hosts the Bubble Tea program for the assessment
// dashboard.
package tuiapp

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"tableflip.dev/intake/pkg/app"
	"tableflip.dev/intake/pkg/assessment"
	"tableflip.dev/intake/pkg/dashboard"
	"tableflip.dev/intake/pkg/query"
	"tableflip.dev/intake/pkg/recovery"
	"tableflip.dev/intake/pkg/store"
	"tableflip.dev/intake/pkg/tui/components/filterbar"
	"tableflip.dev/intake/pkg/tui/components/filtermenu"
	"tableflip.dev/intake/pkg/tui/components/formhost"
	"tableflip.dev/intake/pkg/tui/components/recordtable"
	"tableflip.dev/intake/pkg/tui/theme"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeDates
	modeMenu
	modeNew
	modeForm
	modeHelp
)

// AutoSaveInterval is how often an open form persists a dirty draft in
// the background.
const AutoSaveInterval = 30 * time.Second

// filterColumns is the cycle order for the column filter menus.
var filterColumns = []query.Column{
	query.ColumnAssessmentID,
	query.ColumnCaseID,
	query.ColumnType,
	query.ColumnStatus,
	query.ColumnCreatedOn,
	query.ColumnCreatedBy,
	query.ColumnSubmittedOn,
}

// Model contains UI state.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	cancel context.CancelFunc

	mode  mode
	state dashboard.State

	records []assessment.Record

	table  recordtable.Model
	filter filterbar.Model
	menu   filtermenu.Model
	host   formhost.Model

	menuColumn int
	newIndex   int

	initialLink string

	termWidth  int
	termHeight int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	status string

	log   *zap.Logger
	theme theme.Theme
}

// New creates a new UI model backed by the Service. link, when not
// empty, is a deep link the dashboard opens immediately after loading.
func New(svc *app.Service, link string, log *zap.Logger) *Model {
	th := theme.Default()
	ctx, cancel := context.WithCancel(context.Background())
	if log == nil {
		log = zap.NewNop()
	}

	m := &Model{
		svc:         svc,
		ctx:         ctx,
		cancel:      cancel,
		mode:        modeList,
		state:       dashboard.NewState(),
		table:       recordtable.New(th.Table),
		filter:      filterbar.New(th.Footer),
		menu:        filtermenu.New(th.Menu),
		host:        formhost.New(th.Form),
		initialLink: link,
		log:         log,
		theme:       th,
	}
	return m
}

// Init loads initial data.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadRecords(), startWatchCmd(m.ctx, m.svc)}
	if m.initialLink != "" {
		cmds = append(cmds, m.openLinkCmd(m.initialLink))
	} else if intent, ok := m.svc.Resume(); ok && intent.RecordID != "" {
		cmds = append(cmds, m.openLinkCmd(intent.Fragment()))
	}
	return tea.Batch(cmds...)
}

// messages
type errMsg struct{ err error }
type recordsLoadedMsg struct{ records []assessment.Record }
type refreshDoneMsg struct{}
type draftResolvedMsg struct {
	rec    assessment.Record
	intent recovery.Intent
}
type draftSavedMsg struct {
	rec  assessment.Record
	auto bool
}
type saveFailedMsg struct {
	err  error
	auto bool
}
type autoSaveTickMsg struct{}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}
type watchEventMsg struct{ event store.Event }
type watchStoppedMsg struct{}

func (m *Model) loadRecords() tea.Cmd {
	return func() tea.Msg {
		records, err := m.svc.Records(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return recordsLoadedMsg{records: records}
	}
}

func (m *Model) openLinkCmd(link string) tea.Cmd {
	return func() tea.Msg {
		rec, intent, err := m.svc.Open(m.ctx, link)
		if err != nil {
			return errMsg{err}
		}
		return draftResolvedMsg{rec: rec, intent: intent}
	}
}

func (m *Model) saveDraftCmd(draft assessment.Record, auto bool) tea.Cmd {
	payload := m.host.Payload(false, auto)
	return func() tea.Msg {
		rec, err := m.svc.Save(m.ctx, draft, payload)
		if err != nil {
			return saveFailedMsg{err: err, auto: auto}
		}
		return draftSavedMsg{rec: rec, auto: auto}
	}
}

func (m *Model) submitDraftCmd(draft assessment.Record) tea.Cmd {
	payload := m.host.Payload(true, false)
	return func() tea.Msg {
		rec, err := m.svc.Save(m.ctx, draft, payload)
		if err != nil {
			return saveFailedMsg{err: err}
		}
		return draftSavedMsg{rec: rec}
	}
}

func refreshTick() tea.Cmd {
	return tea.Tick(dashboard.RefreshDelay, func(time.Time) tea.Msg {
		return refreshDoneMsg{}
	})
}

func autoSaveTick() tea.Cmd {
	return tea.Tick(AutoSaveInterval, func(time.Time) tea.Msg {
		return autoSaveTickMsg{}
	})
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) setStatus(s string) { m.status = s }

// applyView recomputes the visible page from the loaded collection and
// the current criteria.
func (m *Model) applyView() {
	res := query.View(m.records, m.state.Params(time.Now()))
	m.state = m.state.WithPage(m.state.Page, res.TotalPages)
	if res.Page != m.state.Page {
		res = query.View(m.records, m.state.Params(time.Now()))
	}
	m.table.SetResult(res)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.table.SetWidth(msg.Width)
	case errMsg:
		m.setStatus("ERR: " + msg.err.Error())
	case saveFailedMsg:
		// Auto-save failures stay off the screen; the next tick or a
		// manual save retries the write.
		if msg.auto {
			m.log.Warn("auto-save failed", zap.Error(msg.err))
		} else {
			m.setStatus("ERR: " + msg.err.Error())
		}
	case recordsLoadedMsg:
		m.records = msg.records
		m.applyView()
	case refreshDoneMsg:
		m.state = m.state.EndRefresh()
		m.setStatus("Refreshed")
		cmds = append(cmds, m.loadRecords())
	case draftResolvedMsg:
		m.mode = modeForm
		cmds = append(cmds, m.host.Load(msg.rec), autoSaveTick())
		m.setStatus("Editing " + msg.rec.ID)
	case draftSavedMsg:
		m.host.MarkSaved(msg.rec)
		if msg.auto {
			m.setStatus("Auto-saved " + msg.rec.ID)
		} else {
			m.setStatus("Saved " + msg.rec.ID)
		}
		cmds = append(cmds, m.loadRecords())
	case autoSaveTickMsg:
		if m.mode != modeForm {
			break
		}
		if m.host.Dirty() {
			cmds = append(cmds, m.saveDraftCmd(m.host.Draft(), true))
		}
		cmds = append(cmds, autoSaveTick())
	case watchStartedMsg:
		if msg.err != nil {
			m.setStatus("ERR: watch " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event, &cmds)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
	case tea.KeyPressMsg:
		m.handleKeyPress(msg, &cmds)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleWatchEvent(ev store.Event, cmds *[]tea.Cmd) {
	switch ev.Type {
	case store.EventHandoffStaged:
		// another process staged a draft; nothing to reload
	default:
		*cmds = append(*cmds, m.loadRecords())
	}
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch m.mode {
	case modeHelp:
		m.handleHelpKey(msg)
	case modeSearch:
		m.handleSearchKey(msg, cmds)
	case modeDates:
		m.handleDatesKey(msg, cmds)
	case modeMenu:
		m.handleMenuKey(msg)
	case modeNew:
		m.handleNewKey(msg, cmds)
	case modeForm:
		m.handleFormKey(msg, cmds)
	default:
		m.handleListKey(msg, cmds)
	}
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "q", "esc", "?":
		m.mode = modeList
	}
}

func (m *Model) handleListKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quit(cmds)
	case "?":
		m.mode = modeHelp
	case "/":
		m.mode = modeSearch
		*cmds = append(*cmds, m.filter.FocusSearch())
	case "d":
		m.mode = modeDates
		*cmds = append(*cmds, m.filter.FocusDates())
	case "f":
		m.openMenu(0)
	case "n":
		m.mode = modeNew
		m.newIndex = 0
	case "r":
		m.state = m.state.BeginRefresh()
		m.filter.Clear()
		m.applyView()
		m.setStatus("Refreshing")
		*cmds = append(*cmds, refreshTick())
	case "j", "down":
		m.table.CursorDown()
	case "k", "up":
		m.table.CursorUp()
	case "h", "left":
		m.state = m.state.PrevPage(m.table.Result().TotalPages)
		m.applyView()
	case "l", "right":
		m.state = m.state.NextPage(m.table.Result().TotalPages)
		m.applyView()
	case "enter":
		if rec, ok := m.table.Selected(); ok {
			intent, err := m.svc.OpenRecord(rec)
			if err != nil {
				m.setStatus("ERR: " + err.Error())
				return
			}
			*cmds = append(*cmds, m.openLinkCmd(intent.Fragment()))
		}
	case "y":
		if rec, ok := m.table.Selected(); ok {
			m.setStatus("share: " + recovery.ShareLink(rec))
		}
	case "esc":
		if m.state.Search != "" || m.state.Filter.Active() || m.state.Dates.Active() {
			m.state = m.state.Cleared()
			m.filter.Clear()
			m.applyView()
			m.setStatus("Filters cleared")
		}
	}
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filter.Blur()
		m.mode = modeList
	default:
		if cmd := m.filter.Update(msg); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		m.state = m.state.WithSearch(m.filter.Search())
		m.applyView()
	}
}

func (m *Model) handleDatesKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filter.Blur()
		m.mode = modeList
	case "tab", "shift+tab":
		if cmd := m.filter.Cycle(); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	default:
		if cmd := m.filter.Update(msg); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		m.state = m.state.WithDates(m.filter.Dates())
		m.applyView()
	}
}

func (m *Model) openMenu(start int) {
	m.menuColumn = start
	col := filterColumns[m.menuColumn]
	if m.menu.Open(col, dashboard.Options(col, m.records)) {
		m.state = m.state.ToggleDropdown(col)
		m.mode = modeMenu
	}
}

func (m *Model) handleMenuKey(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "esc", "q":
		m.state = m.state.ToggleDropdown(m.menu.Column())
		m.mode = modeList
	case "tab", "f", "right", "l":
		m.menuColumn = (m.menuColumn + 1) % len(filterColumns)
		col := filterColumns[m.menuColumn]
		m.menu.Open(col, dashboard.Options(col, m.records))
		m.state.OpenDropdown = col
	case "shift+tab", "left", "h":
		m.menuColumn = (m.menuColumn - 1 + len(filterColumns)) % len(filterColumns)
		col := filterColumns[m.menuColumn]
		m.menu.Open(col, dashboard.Options(col, m.records))
		m.state.OpenDropdown = col
	case "up", "k":
		m.menu.Up()
	case "down", "j":
		m.menu.Down()
	case "enter":
		m.state = m.state.WithFilter(m.menu.Choice())
		m.mode = modeList
		m.applyView()
	}
}

func (m *Model) handleNewKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	types := assessment.AllTypes()
	switch msg.String() {
	case "esc", "q":
		m.mode = modeList
	case "up", "k":
		m.newIndex = (m.newIndex - 1 + len(types)) % len(types)
	case "down", "j", "tab":
		m.newIndex = (m.newIndex + 1) % len(types)
	case "enter":
		slug := types[m.newIndex].Slug()
		_, intent, err := m.svc.Create(slug)
		if err != nil {
			m.setStatus("ERR: " + err.Error())
			m.mode = modeList
			return
		}
		*cmds = append(*cmds, m.openLinkCmd(intent.Fragment()))
	}
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.host.Dirty() {
			*cmds = append(*cmds, m.saveDraftCmd(m.host.Draft(), false))
		}
		m.svc.Close()
		m.mode = modeList
		m.state = m.state.BeginRefresh()
		m.filter.Clear()
		m.applyView()
		*cmds = append(*cmds, refreshTick())
	case "tab", "shift+tab":
		if cmd := m.host.Cycle(); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	case "ctrl+s":
		*cmds = append(*cmds, m.saveDraftCmd(m.host.Draft(), false))
	case "ctrl+d":
		*cmds = append(*cmds, m.submitDraftCmd(m.host.Draft()))
		m.svc.Close()
		m.mode = modeList
		m.state = m.state.BeginRefresh()
		m.filter.Clear()
		m.applyView()
		*cmds = append(*cmds, refreshTick())
	default:
		if cmd := m.host.Update(msg); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	}
}

func (m *Model) quit(cmds *[]tea.Cmd) {
	m.stopWatch()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	*cmds = append(*cmds, tea.Quit)
}

var helpLines = []string{
	"j/k      move cursor",
	"h/l      previous/next page",
	"enter    open assessment",
	"n        new assessment",
	"/        search",
	"f        column filters",
	"d        date range",
	"r        refresh (clears filters)",
	"y        show share link",
	"esc      clear filters",
	"q        quit",
	"",
	"in a form: tab cycles fields, ctrl+s saves,",
	"ctrl+d submits, esc saves and closes",
}

func (m *Model) View() string {
	var sections []string

	switch m.mode {
	case modeForm:
		sections = append(sections, m.host.View())
	case modeHelp:
		panel := lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2)
		sections = append(sections, panel.Render(strings.Join(helpLines, "\n")))
	case modeNew:
		sections = append(sections, m.renderNewMenu())
	default:
		sections = append(sections, m.theme.Footer.Status.Render(m.table.Tally()))
		sections = append(sections, m.table.View())
		if m.mode == modeMenu {
			sections = append(sections, m.menu.View())
		}
		if m.mode == modeSearch || m.state.Search != "" {
			sections = append(sections, m.filter.SearchView())
		}
		if m.mode == modeDates || m.state.Dates.Active() {
			sections = append(sections, m.filter.DatesView())
		}
	}

	if footer := m.renderFooter(); footer != "" {
		sections = append(sections, footer)
	}

	return strings.Join(sections, "\n\n")
}

func (m *Model) renderNewMenu() string {
	lines := []string{m.theme.Menu.Selected.Render("New assessment")}
	for i, t := range assessment.AllTypes() {
		if i == m.newIndex {
			lines = append(lines, m.theme.Menu.Selected.Render("> "+string(t)))
		} else {
			lines = append(lines, m.theme.Menu.Item.Render("  "+string(t)))
		}
	}
	return m.theme.Menu.Frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	parts := make([]string, 0, 3)
	if m.state.Refreshing {
		parts = append(parts, m.theme.Footer.Status.Render("refreshing..."))
	} else if m.status != "" {
		parts = append(parts, m.theme.Footer.Status.Render(m.status))
	}
	if pager := m.table.Pager(); pager != "" {
		parts = append(parts, m.theme.Footer.Pager.Render(pager))
	}
	parts = append(parts, m.theme.Footer.Help.Render("? help"))
	return strings.Join(parts, "  ")
}

// Run launches the interactive dashboard.
func Run(svc *app.Service, link string, log *zap.Logger) error {
	p := tea.NewProgram(New(svc, link, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
