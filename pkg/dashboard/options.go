package dashboard

import (
	"sort"

	"tableflip.dev/intake/pkg/assessment"
	"tableflip.dev/intake/pkg/query"
)

// Option is one selectable entry in a column's filter dropdown.
type Option struct {
	Label string
	Value string
}

// all is the first entry of every dropdown.
var all = Option{Label: "All", Value: query.FilterAll}

// Options returns the dropdown entries for a column. Type, status,
// createdOn and submittedOn have fixed vocabularies; id, caseId and
// createdBy are derived from the collection so the menu only offers
// values that actually appear.
func Options(col query.Column, records []assessment.Record) []Option {
	switch col {
	case query.ColumnAssessmentID:
		return derived(records, func(r assessment.Record) string { return r.ID })
	case query.ColumnCaseID:
		return derived(records, func(r assessment.Record) string {
			if r.CaseID == assessment.CaseIDNone {
				return ""
			}
			return r.CaseID
		})
	case query.ColumnType:
		opts := []Option{all}
		for _, t := range assessment.AllTypes() {
			opts = append(opts, Option{Label: string(t), Value: string(t)})
		}
		return opts
	case query.ColumnStatus:
		return []Option{
			all,
			{Label: string(assessment.StatusInProgress), Value: string(assessment.StatusInProgress)},
			{Label: string(assessment.StatusCompleted), Value: string(assessment.StatusCompleted)},
		}
	case query.ColumnCreatedOn:
		return []Option{
			all,
			{Label: "Today", Value: query.BucketToday},
			{Label: "Last 7 days", Value: query.BucketWeek},
			{Label: "Last 30 days", Value: query.BucketMonth},
		}
	case query.ColumnSubmittedOn:
		return []Option{
			all,
			{Label: "Submitted", Value: query.Submitted},
			{Label: "Not submitted", Value: query.NotSubmitted},
		}
	case query.ColumnCreatedBy:
		return derived(records, func(r assessment.Record) string { return r.CreatedBy })
	}
	return nil
}

// derived builds a sorted distinct-value dropdown from the collection.
func derived(records []assessment.Record, value func(assessment.Record) string) []Option {
	seen := map[string]bool{}
	values := make([]string, 0, len(records))
	for _, rec := range records {
		v := value(rec)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	opts := []Option{all}
	for _, v := range values {
		opts = append(opts, Option{Label: v, Value: v})
	}
	return opts
}
