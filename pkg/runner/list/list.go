package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"tableflip.dev/intake/pkg/app"
	"tableflip.dev/intake/pkg/printers"
	"tableflip.dev/intake/pkg/query"
)

type List struct {
	Search string
	Type   string
	Status string
	Column string
	Value  string
	Since  string
	Until  string
	Page   int
	JSON   bool

	Service *app.Service
	Log     *zap.Logger
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no service")
	}

	params := query.Params{
		Search: n.Search,
		Page:   n.Page,
	}
	if n.Since != "" || n.Until != "" {
		params.DateRange = query.DateRange{Enabled: true, Start: n.Since, End: n.Until}
	}
	switch {
	case n.Column != "" && n.Value != "":
		params.Filter = query.ColumnFilter{Column: query.Column(n.Column), Value: n.Value}
	case n.Type != "":
		params.Filter = query.ColumnFilter{Column: query.ColumnType, Value: n.Type}
	case n.Status != "":
		params.Filter = query.ColumnFilter{Column: query.ColumnStatus, Value: n.Status}
	}

	res, err := n.Service.View(ctx, params)
	if err != nil {
		return err
	}
	if n.Log != nil {
		n.Log.Debug("evaluated query",
			zap.Int("filtered", res.TotalFiltered),
			zap.Int("page", res.Page),
			zap.Int("pages", res.TotalPages))
	}

	if n.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Items)
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.TitleWithCount("Assessments", res.TotalFiltered, res.TotalRecords)
	pp.Records(res.Items...)
	pp.Footer(res)

	return nil
}
