// Package dashboard holds the list-view state machine. Transitions are
// pure value-to-value reductions so the terminal UI can replay them and
// tests can assert on them without any persistence attached.
package dashboard

import (
	"time"

	"tableflip.dev/intake/pkg/query"
)

// RefreshDelay is how long the refresh spinner shows before the
// collection is re-read. The reload itself is cheap; the delay makes
// the refresh observable and coalesces bursts of change events.
const RefreshDelay = 500 * time.Millisecond

// State is the dashboard's visible criteria plus pagination cursor.
// Every filter transition snaps back to the first page so the cursor
// never points past a shrunken result set.
type State struct {
	Search string
	Filter query.ColumnFilter
	Dates  query.DateRange
	Page   int

	// OpenDropdown names the column whose filter menu is expanded,
	// empty when none is.
	OpenDropdown query.Column

	Refreshing bool
}

// NewState returns the initial dashboard state: no criteria, page one.
func NewState() State {
	return State{Page: 1}
}

// WithSearch sets the free-text needle.
func (s State) WithSearch(needle string) State {
	s.Search = needle
	s.Page = 1
	return s
}

// WithFilter applies a column constraint and closes the dropdown it
// came from.
func (s State) WithFilter(f query.ColumnFilter) State {
	s.Filter = f
	s.OpenDropdown = ""
	s.Page = 1
	return s
}

// WithDates applies the createdOn range.
func (s State) WithDates(r query.DateRange) State {
	s.Dates = r
	s.Page = 1
	return s
}

// Cleared drops every criterion. Refresh uses this so a reload always
// shows the whole collection.
func (s State) Cleared() State {
	s.Search = ""
	s.Filter = query.ColumnFilter{}
	s.Dates = query.DateRange{}
	s.OpenDropdown = ""
	s.Page = 1
	return s
}

// WithPage moves the cursor, clamped to [1, totalPages]. An empty
// result set still has a page one.
func (s State) WithPage(page, totalPages int) State {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	s.Page = page
	return s
}

// NextPage advances one page, clamped.
func (s State) NextPage(totalPages int) State {
	return s.WithPage(s.Page+1, totalPages)
}

// PrevPage steps back one page, clamped.
func (s State) PrevPage(totalPages int) State {
	return s.WithPage(s.Page-1, totalPages)
}

// ToggleDropdown opens the named column's filter menu, or closes it if
// it was already open. Only one menu is open at a time.
func (s State) ToggleDropdown(col query.Column) State {
	if s.OpenDropdown == col {
		s.OpenDropdown = ""
	} else {
		s.OpenDropdown = col
	}
	return s
}

// BeginRefresh marks the reload in flight.
func (s State) BeginRefresh() State {
	s = s.Cleared()
	s.Refreshing = true
	return s
}

// EndRefresh clears the in-flight marker.
func (s State) EndRefresh() State {
	s.Refreshing = false
	return s
}

// Params renders the state as query criteria. now anchors the relative
// createdOn buckets.
func (s State) Params(now time.Time) query.Params {
	return query.Params{
		Search:    s.Search,
		DateRange: s.Dates,
		Filter:    s.Filter,
		Page:      s.Page,
		Now:       now,
	}
}
