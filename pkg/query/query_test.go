package query

import (
	"fmt"
	"testing"
	"time"

	"tableflip.dev/intake/pkg/assessment"
)

func record(id, createdOn string) assessment.Record {
	return assessment.Record{
		ID:        id,
		CaseID:    "CASE-" + id,
		Type:      assessment.TypeCANS,
		Status:    assessment.StatusInProgress,
		CreatedBy: "Test User",
		CreatedOn: createdOn,
	}
}

func TestSearchMatchesAnyField(t *testing.T) {
	records := []assessment.Record{
		{ID: "111111", CaseID: "CASE-9", Type: assessment.TypeFARE, CreatedBy: "Dana", CreatedOn: "2025-12-01"},
		{ID: "222222", CaseID: "OTHER", Type: assessment.TypeCANS, CreatedBy: "Alex", CreatedOn: "2025-12-02"},
	}

	cases := []struct {
		search string
		want   string
	}{
		{"dana", "111111"},
		{"case-9", "111111"},
		{"f.a.r", "111111"},
		{"2222", "222222"},
	}
	for _, tc := range cases {
		res := View(records, Params{Search: tc.search, Page: 1})
		if res.TotalFiltered != 1 || res.Items[0].ID != tc.want {
			t.Fatalf("search %q: expected only %q, got %d items", tc.search, tc.want, res.TotalFiltered)
		}
	}

	if res := View(records, Params{Page: 1}); res.TotalFiltered != 2 {
		t.Fatalf("empty search should match everything, got %d", res.TotalFiltered)
	}
}

func TestDateRangeBoundsAreInclusive(t *testing.T) {
	records := []assessment.Record{
		record("START", "2025-12-03"),
		record("BEFORE", "2025-12-02"),
		record("END", "2025-12-10"),
		record("AFTER", "2025-12-11"),
	}

	res := View(records, Params{
		DateRange: DateRange{Enabled: true, Start: "2025-12-03", End: "2025-12-10"},
		Page:      1,
	})

	if res.TotalFiltered != 2 {
		t.Fatalf("expected 2 records inside the range, got %d", res.TotalFiltered)
	}
	got := map[string]bool{}
	for _, rec := range res.Items {
		got[rec.ID] = true
	}
	if !got["START"] || !got["END"] {
		t.Fatalf("expected boundary records included, got %v", got)
	}
}

func TestDateRangeExcludesUnparsable(t *testing.T) {
	records := []assessment.Record{
		record("GOOD", "2025-12-05"),
		record("BAD", "not a date"),
	}
	res := View(records, Params{
		DateRange: DateRange{Enabled: true, Start: "2025-12-01", End: "2025-12-31"},
		Page:      1,
	})
	if res.TotalFiltered != 1 || res.Items[0].ID != "GOOD" {
		t.Fatalf("unparsable createdOn must be excluded, got %d items", res.TotalFiltered)
	}
}

func TestDateRangeEnabledButEmptyIsDisabled(t *testing.T) {
	records := []assessment.Record{record("A", "2025-12-01"), record("B", "bogus")}
	res := View(records, Params{DateRange: DateRange{Enabled: true}, Page: 1})
	if res.TotalFiltered != 2 {
		t.Fatalf("enabled range with empty bounds should match everything, got %d", res.TotalFiltered)
	}
}

func TestFiltersCombineWithAnd(t *testing.T) {
	records := []assessment.Record{
		{ID: "A", CaseID: "SHARED", Type: assessment.TypeCANS, CreatedBy: "Dana", CreatedOn: "2025-12-01"},
		{ID: "B", CaseID: "SHARED", Type: assessment.TypeFARE, CreatedBy: "Dana", CreatedOn: "2025-12-02"},
		{ID: "C", CaseID: "ELSE", Type: assessment.TypeFARE, CreatedBy: "Dana", CreatedOn: "2025-12-03"},
	}

	// Search matches A and B; the column filter matches B and C.
	res := View(records, Params{
		Search: "shared",
		Filter: ColumnFilter{Column: ColumnType, Value: string(assessment.TypeFARE)},
		Page:   1,
	})
	if res.TotalFiltered != 1 || res.Items[0].ID != "B" {
		t.Fatalf("expected only B to pass both criteria, got %d items", res.TotalFiltered)
	}
}

func TestColumnFilterSemantics(t *testing.T) {
	now := time.Date(2025, time.December, 10, 12, 0, 0, 0, time.Local)
	records := []assessment.Record{
		{ID: "CANS-100", CaseID: "900100", Type: assessment.TypeCANS, Status: assessment.StatusCompleted, CreatedBy: "Dana", CreatedOn: "2025-12-10", SubmittedOn: "12/10/2025, 4:45:00 PM"},
		{ID: "654321", CaseID: "900200", Type: assessment.TypeFARE, Status: assessment.StatusInProgress, CreatedBy: "Alex", CreatedOn: "2025-12-05", SubmittedOn: assessment.SubmittedNone},
		{ID: "111222", CaseID: "777000", Type: assessment.TypeResidential, Status: assessment.StatusInProgress, CreatedBy: "Alex", CreatedOn: "2025-10-01"},
	}

	cases := []struct {
		name   string
		filter ColumnFilter
		want   []string
	}{
		{"id substring", ColumnFilter{ColumnAssessmentID, "cans"}, []string{"CANS-100"}},
		{"case substring", ColumnFilter{ColumnCaseID, "900"}, []string{"CANS-100", "654321"}},
		{"type exact", ColumnFilter{ColumnType, "F.A.R.E"}, []string{"654321"}},
		{"status case-insensitive", ColumnFilter{ColumnStatus, "completed"}, []string{"CANS-100"}},
		{"creator exact", ColumnFilter{ColumnCreatedBy, "Alex"}, []string{"654321", "111222"}},
		{"today bucket", ColumnFilter{ColumnCreatedOn, BucketToday}, []string{"CANS-100"}},
		{"week bucket", ColumnFilter{ColumnCreatedOn, BucketWeek}, []string{"CANS-100", "654321"}},
		{"month bucket", ColumnFilter{ColumnCreatedOn, BucketMonth}, []string{"CANS-100", "654321"}},
		{"submitted", ColumnFilter{ColumnSubmittedOn, Submitted}, []string{"CANS-100"}},
		{"not submitted treats dash as absent", ColumnFilter{ColumnSubmittedOn, NotSubmitted}, []string{"654321", "111222"}},
		{"sentinel disables", ColumnFilter{ColumnStatus, FilterAll}, []string{"CANS-100", "654321", "111222"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := View(records, Params{Filter: tc.filter, Page: 1, Now: now})
			if res.TotalFiltered != len(tc.want) {
				t.Fatalf("expected %d records, got %d", len(tc.want), res.TotalFiltered)
			}
			got := map[string]bool{}
			for _, rec := range res.Items {
				got[rec.ID] = true
			}
			for _, id := range tc.want {
				if !got[id] {
					t.Fatalf("expected %q in result, got %v", id, got)
				}
			}
		})
	}
}

func TestBucketWindowIgnoresTimeOfDay(t *testing.T) {
	// Created dates normalize to midnight, so the window cutoff must
	// too. A record from the afternoon of the oldest in-window day is
	// still inside the window even when now is earlier in its day.
	now := time.Date(2025, time.December, 10, 12, 0, 0, 0, time.Local)
	records := []assessment.Record{
		{ID: "EDGE", CreatedOn: "12/03/2025, 4:00:00 PM"},
		{ID: "OUT", CreatedOn: "12/02/2025, 9:00:00 AM"},
	}

	res := View(records, Params{Filter: ColumnFilter{ColumnCreatedOn, BucketWeek}, Page: 1, Now: now})
	if res.TotalFiltered != 1 || res.Items[0].ID != "EDGE" {
		t.Fatalf("week window: expected only EDGE, got %+v", res.Items)
	}

	monthEdge := []assessment.Record{
		{ID: "EDGE-M", CreatedOn: "11/10/2025, 11:59:00 PM"},
		{ID: "OUT-M", CreatedOn: "11/09/2025, 8:00:00 AM"},
	}
	res = View(monthEdge, Params{Filter: ColumnFilter{ColumnCreatedOn, BucketMonth}, Page: 1, Now: now})
	if res.TotalFiltered != 1 || res.Items[0].ID != "EDGE-M" {
		t.Fatalf("month window: expected only EDGE-M, got %+v", res.Items)
	}
}

func TestOrderingNewestFirstWithUnparsableAtTail(t *testing.T) {
	records := []assessment.Record{
		record("OLD", "2025-12-01"),
		record("BAD-B", "???"),
		record("NEW", "2025-12-09"),
		record("BAD-A", "also bad"),
	}
	res := View(records, Params{Page: 1})
	wantOrder := []string{"NEW", "OLD", "BAD-A", "BAD-B"}
	for i, id := range wantOrder {
		if res.Items[i].ID != id {
			t.Fatalf("position %d: expected %q, got %q", i, id, res.Items[i].ID)
		}
	}
}

func TestPaginationMath(t *testing.T) {
	records := make([]assessment.Record, 0, 120)
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 120; i++ {
		records = append(records, record(fmt.Sprintf("R-%03d", i), base.AddDate(0, 0, -i).Format("2006-01-02")))
	}

	res := View(records, Params{Page: 1})
	if res.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 120 records, got %d", res.TotalPages)
	}
	if len(res.Items) != PageSize {
		t.Fatalf("page 1: expected %d items, got %d", PageSize, len(res.Items))
	}

	res = View(records, Params{Page: 2})
	if len(res.Items) != PageSize {
		t.Fatalf("page 2: expected %d items, got %d", PageSize, len(res.Items))
	}
	if res.Items[0].ID != "R-050" || res.Items[49].ID != "R-099" {
		t.Fatalf("page 2: expected records 51-100, got %q..%q", res.Items[0].ID, res.Items[49].ID)
	}

	res = View(records, Params{Page: 3})
	if len(res.Items) != 20 {
		t.Fatalf("page 3: expected 20 items, got %d", len(res.Items))
	}

	if res = View(records, Params{Page: 4}); len(res.Items) != 0 {
		t.Fatalf("page past the end should be empty, got %d items", len(res.Items))
	}
}

func TestEndToEndDateFilterExample(t *testing.T) {
	records := []assessment.Record{
		record("A", "12/01/2025, 10:00:00 AM"),
		record("B", "12/05/2025, 2:30:15 PM"),
	}
	res := View(records, Params{
		DateRange: DateRange{Enabled: true, Start: "2025-12-03", End: "2025-12-10"},
		Page:      1,
	})
	if res.TotalFiltered != 1 || res.Items[0].ID != "B" {
		t.Fatalf("expected only B, got %d items", res.TotalFiltered)
	}
}
