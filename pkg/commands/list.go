package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/intake/pkg/app"
	"tableflip.dev/intake/pkg/commands/options"
	"tableflip.dev/intake/pkg/logging"
	"tableflip.dev/intake/pkg/runner/list"
	"tableflip.dev/intake/pkg/store"
)

func addList(topLevel *cobra.Command) {
	qo := &options.QueryOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list assessments",
		Example: `
intake list
intake list --type CANS --status In-progress
intake list --since 2025-12-01 --until 2025-12-31
intake list --search dana --page 2
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			log, err := logging.New(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			s := list.List{
				Search:  qo.Search,
				Type:    qo.Type,
				Status:  qo.Status,
				Column:  qo.Column,
				Value:   qo.Value,
				Since:   qo.Since,
				Until:   qo.Until,
				Page:    qo.Page,
				JSON:    oo.JSON,
				Service: &app.Service{Persistence: p},
				Log:     log,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddQueryArgs(cmd, qo)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
