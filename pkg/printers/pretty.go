package printers

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"

	"tableflip.dev/intake/pkg/assessment"
	"tableflip.dev/intake/pkg/query"
)

type PrettyPrint struct{}

func init() {
	// Respect redirected output; uitable rows go through color.Output.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// TitleWithCount prints the title and the "N of M results" tally the
// dashboard shows above the table.
func (pp *PrettyPrint) TitleWithCount(title string, shown, total int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d of %d", shown, total)

	switch total {
	case 1:
		_, _ = c.Println(" result")
	default:
		_, _ = c.Println(" results")
	}
}

// Records renders one page of records as the dashboard table.
func (pp *PrettyPrint) Records(records ...assessment.Record) {
	if len(records) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "CASE", "TYPE", "STATUS", "CREATED ON", "CREATED BY", "SUBMITTED ON")
	for _, r := range records {
		tbl.AddRow(r.Row())
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Footer prints the pagination line under the table.
func (pp *PrettyPrint) Footer(res query.Result) {
	if res.TotalPages <= 1 {
		return
	}
	c := color.New(color.Faint)
	_, _ = c.Printf("page %d of %d\n", res.Page, res.TotalPages)
}
