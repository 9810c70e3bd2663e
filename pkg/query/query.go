// Package query decides which subset of the record collection is
// visible: free-text search, per-column filters, date-range filtering,
// ordering, and pagination. Everything here is pure; callers own state.
package query

import (
	"sort"
	"strings"
	"time"

	"tableflip.dev/intake/pkg/assessment"
	"tableflip.dev/intake/pkg/dateparse"
)

// PageSize is the fixed number of records per dashboard page.
const PageSize = 50

// Column names a filterable table column.
type Column string

const (
	ColumnAssessmentID Column = "assessmentId"
	ColumnCaseID       Column = "caseId"
	ColumnType         Column = "assessmentType"
	ColumnStatus       Column = "status"
	ColumnCreatedOn    Column = "createdOn"
	ColumnCreatedBy    Column = "createdBy"
	ColumnSubmittedOn  Column = "submittedOn"
)

// FilterAll is the sentinel value meaning "no constraint".
const FilterAll = "all"

// Relative createdOn buckets.
const (
	BucketToday = "today"
	BucketWeek  = "week"
	BucketMonth = "month"
)

// submittedOn presence values.
const (
	Submitted    = "submitted"
	NotSubmitted = "notSubmitted"
)

// ColumnFilter is one (column, value) constraint chosen from a table
// header. A zero value or the FilterAll sentinel disables it.
type ColumnFilter struct {
	Column Column
	Value  string
}

// Active reports whether the filter constrains anything.
func (f ColumnFilter) Active() bool {
	return f.Column != "" && f.Value != "" && f.Value != FilterAll
}

// DateRange filters on the record's createdOn calendar date. Bounds are
// inclusive; an empty bound is unbounded on that side. Enabled with
// both bounds empty is the same as disabled.
type DateRange struct {
	Enabled bool
	Start   string // ISO date, e.g. 2025-12-03
	End     string
}

// Active reports whether the range constrains anything.
func (r DateRange) Active() bool {
	return r.Enabled && (strings.TrimSpace(r.Start) != "" || strings.TrimSpace(r.End) != "")
}

// Params collects every criterion the dashboard can apply at once. A
// record is visible iff it passes search AND date range AND column
// filter.
type Params struct {
	Search    string
	DateRange DateRange
	Filter    ColumnFilter

	// Page is 1-based. Pages past the end yield an empty slice; the
	// caller is responsible for clamping its navigation controls.
	Page int

	// Now anchors the relative createdOn buckets; zero means time.Now.
	Now time.Time
}

// Result is one computed view over the collection.
type Result struct {
	Items         []assessment.Record
	TotalFiltered int
	TotalRecords  int
	TotalPages    int
	Page          int
}

// View filters, orders, and paginates records according to params.
func View(records []assessment.Record, params Params) Result {
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}

	filtered := make([]assessment.Record, 0, len(records))
	for _, rec := range records {
		if !matchesSearch(rec, params.Search) {
			continue
		}
		if !matchesDateRange(rec, params.DateRange) {
			continue
		}
		if !matchesFilter(rec, params.Filter, now) {
			continue
		}
		filtered = append(filtered, rec)
	}

	sortByCreatedOn(filtered)

	page := params.Page
	if page < 1 {
		page = 1
	}
	totalPages := (len(filtered) + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	end := start + PageSize
	var items []assessment.Record
	if start < len(filtered) {
		if end > len(filtered) {
			end = len(filtered)
		}
		items = filtered[start:end]
	}

	return Result{
		Items:         items,
		TotalFiltered: len(filtered),
		TotalRecords:  len(records),
		TotalPages:    totalPages,
		Page:          page,
	}
}

// matchesSearch is a case-insensitive substring match against the
// record's id, case id, type, and creator. Empty search matches all.
func matchesSearch(rec assessment.Record, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range []string{rec.ID, rec.CaseID, string(rec.Type), rec.CreatedBy} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// matchesDateRange checks the parsed createdOn against the inclusive
// bounds. Records whose createdOn cannot be parsed are excluded, never
// matched.
func matchesDateRange(rec assessment.Record, r DateRange) bool {
	if !r.Active() {
		return true
	}
	day, ok := dateparse.Parse(rec.CreatedOn)
	if !ok {
		return false
	}
	if start, ok := dateparse.Parse(strings.TrimSpace(r.Start)); ok {
		if day.Before(start) {
			return false
		}
	}
	if end, ok := dateparse.Parse(strings.TrimSpace(r.End)); ok {
		if day.After(end) {
			return false
		}
	}
	return true
}

func matchesFilter(rec assessment.Record, f ColumnFilter, now time.Time) bool {
	if !f.Active() {
		return true
	}
	switch f.Column {
	case ColumnAssessmentID:
		return strings.Contains(strings.ToLower(rec.ID), strings.ToLower(f.Value))
	case ColumnCaseID:
		return strings.Contains(strings.ToLower(rec.CaseID), strings.ToLower(f.Value))
	case ColumnType:
		return string(rec.Type) == f.Value
	case ColumnCreatedBy:
		return rec.CreatedBy == f.Value
	case ColumnStatus:
		return strings.EqualFold(string(rec.Status), f.Value)
	case ColumnCreatedOn:
		return matchesBucket(rec, f.Value, now)
	case ColumnSubmittedOn:
		switch f.Value {
		case Submitted:
			return rec.Submitted()
		case NotSubmitted:
			return !rec.Submitted()
		}
		return true
	}
	return true
}

func matchesBucket(rec assessment.Record, bucket string, now time.Time) bool {
	day, ok := dateparse.Parse(rec.CreatedOn)
	if !ok {
		return false
	}
	switch bucket {
	case BucketToday:
		return day.Year() == now.Year() && day.Month() == now.Month() && day.Day() == now.Day()
	case BucketWeek:
		return !day.Before(dayStart(now.Add(-7 * 24 * time.Hour)))
	case BucketMonth:
		return !day.Before(dayStart(now.Add(-30 * 24 * time.Hour)))
	}
	return true
}

// dayStart drops the time of day so bucket cutoffs compare against
// parsed dates, which are normalized to midnight.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sortByCreatedOn orders most recent first. Records with unparsable
// createdOn sort as infinitely old; ties break on id ascending so the
// order is total and stable across runs.
func sortByCreatedOn(records []assessment.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		left, lok := dateparse.Parse(records[i].CreatedOn)
		right, rok := dateparse.Parse(records[j].CreatedOn)
		switch {
		case !lok && !rok:
			return records[i].ID < records[j].ID
		case !lok:
			return false
		case !rok:
			return true
		default:
			if left.Equal(right) {
				return records[i].ID < records[j].ID
			}
			return left.After(right)
		}
	})
}
