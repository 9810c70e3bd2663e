package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/intake/pkg/app"
	"tableflip.dev/intake/pkg/commands/options"
	"tableflip.dev/intake/pkg/logging"
	"tableflip.dev/intake/pkg/runner/open"
	"tableflip.dev/intake/pkg/store"
)

func addOpen(topLevel *cobra.Command) {
	o := &options.OpenOptions{}

	cmd := &cobra.Command{
		Use:   "open [deep-link]",
		Short: "resolve a deep link or stage a fresh draft",
		Example: `
intake open assessment/fare/654321
intake open "assessment/cans/CANS-1733450975000?data=eyJpZCI6..."
intake open --new cans
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if o.New == "" && len(args) != 1 {
				return errors.New("provide a deep link or --new")
			}
			return nil
		},
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

			s := open.Open{
				Form:    o.New,
				Service: &app.Service{Persistence: p},
				Log:     log,
			}
			if len(args) > 0 {
				s.Link = args[0]
				if o.Data != "" {
					s.Link += "?data=" + o.Data
				}
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOpenArgs(cmd, o)

	topLevel.AddCommand(cmd)
}
