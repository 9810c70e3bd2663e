package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}

	// verbose raises log level to debug, see logging.New.
	verbose bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "intake",
		Short: base.Wrap80("Assessment intake dashboard on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addOpen(topLevel)
	addVersion(topLevel)
}
