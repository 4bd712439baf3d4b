package cli

import (
	"github.com/spf13/cobra"

	"go.simpledb/internal/storage"
)

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Print the on-disk layout constants",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		storage.PrintConstants(cmd.OutOrStdout())
	},
}
