package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.simpledb/internal/engine"
	"go.simpledb/internal/metrics"
)

var btreeCmd = &cobra.Command{
	Use:   "btree <file>",
	Short: "Print the tree stored in <file>",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		// an empty file only gets its root leaf on first open, leave it alone
		if info.Size() == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "leaf (size 0)")
			return nil
		}

		log, closeLog, err := openLog(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		db, err := engine.Open(args[0], cfg, log, metrics.New())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		printErr := db.PrintTree(cmd.OutOrStdout())
		return errors.Join(printErr, db.Close())
	},
}
