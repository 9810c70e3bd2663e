package open

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/intake/pkg/app"
	"tableflip.dev/intake/pkg/printers"
	"tableflip.dev/intake/pkg/recovery"
)

type Open struct {
	// Link is a deep link, "assessment/{form}/{id}" with an optional
	// "?data=" payload.
	Link string

	// Form mints a fresh draft for the named form instead of following
	// a link.
	Form string

	Service *app.Service
	Log     *zap.Logger
}

func (n *Open) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not open, no service")
	}

	if n.Form != "" {
		rec, intent, err := n.Service.Create(n.Form)
		if err != nil {
			return err
		}
		return n.report(rec.ID, intent)
	}

	rec, intent, err := n.Service.Open(ctx, n.Link)
	if err != nil {
		return err
	}
	if n.Log != nil {
		n.Log.Debug("resolved deep link",
			zap.String("form", intent.FormType),
			zap.String("id", intent.RecordID))
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("Resolved draft")
	pp.Records(rec)
	fmt.Printf("share: %s\n", recovery.ShareLink(rec))

	return nil
}

func (n *Open) report(id string, intent recovery.Intent) error {
	fmt.Printf("staged draft %s\n", id)
	fmt.Printf("open with: intake ui %s\n", intent.Fragment())
	return nil
}
