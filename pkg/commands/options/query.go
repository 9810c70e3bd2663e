package options

import (
	"github.com/spf13/cobra"
)

// QueryOptions carries the list command's filter criteria.
type QueryOptions struct {
	Search string
	Type   string
	Status string
	Column string
	Value  string
	Since  string
	Until  string
	Page   int
}

func AddQueryArgs(cmd *cobra.Command, qo *QueryOptions) {
	cmd.Flags().StringVarP(&qo.Search, "search", "s", "",
		"Case-insensitive search over id, case, type, and creator.")
	cmd.Flags().StringVarP(&qo.Type, "type", "t", "",
		"Filter by assessment type (CANS, F.A.R.E, Residential).")
	cmd.Flags().StringVar(&qo.Status, "status", "",
		"Filter by status (In-progress, Completed).")
	cmd.Flags().StringVar(&qo.Column, "column", "",
		"Filter column (assessmentId, caseId, assessmentType, status, createdOn, createdBy, submittedOn).")
	cmd.Flags().StringVar(&qo.Value, "value", "",
		"Filter value for --column.")
	cmd.Flags().StringVar(&qo.Since, "since", "",
		"Only records created on or after this date (YYYY-MM-DD).")
	cmd.Flags().StringVar(&qo.Until, "until", "",
		"Only records created on or before this date (YYYY-MM-DD).")
	cmd.Flags().IntVarP(&qo.Page, "page", "p", 1,
		"Result page, 50 records per page.")
}
