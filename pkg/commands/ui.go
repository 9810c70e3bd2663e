package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/intake/pkg/app"
	"tableflip.dev/intake/pkg/logging"
	"tableflip.dev/intake/pkg/runner/ui"
	"tableflip.dev/intake/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	var data string

	cmd := &cobra.Command{
		Use:   "ui [deep-link]",
		Short: "open the assessment dashboard",
		Example: `
intake ui
intake ui assessment/cans/CANS-1733450975000
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			log, err := logging.NewFile(cfg.BasePath(), verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			link := ""
			if len(args) > 0 {
				link = args[0]
				if data != "" {
					link += "?data=" + data
				}
			}
			i := ui.UI{Service: &app.Service{Persistence: p}, Link: link, Log: log}
			return i.Do(context.Background())
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "",
		"Inline base64 record payload for the deep link.")

	topLevel.AddCommand(cmd)
}
