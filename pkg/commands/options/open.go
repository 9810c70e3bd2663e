package options

import (
	"github.com/spf13/cobra"
)

// OpenOptions carries the open command's target selection.
type OpenOptions struct {
	New  string
	Data string
}

func AddOpenArgs(cmd *cobra.Command, oo *OpenOptions) {
	cmd.Flags().StringVarP(&oo.New, "new", "n", "",
		"Mint a fresh draft for the named form (cans, fare, residential).")
	cmd.Flags().StringVarP(&oo.Data, "data", "d", "",
		"Inline base64 record payload for the deep link.")
}
