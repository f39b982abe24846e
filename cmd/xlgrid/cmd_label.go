package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javajack/xlgrid"
)

// labelCmd prints column labels
var labelCmd = &cobra.Command{
	Use:   "label [index]...",
	Short: "Print the column label of zero-based column indexes",
	Long: `Prints one "<index>\t<label>" line per argument.

Example:
  xlgrid label 0 25 26 701 702`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLabel,
}

func runLabel(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, arg := range args {
		col, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("column index %q: %w", arg, xlgrid.ErrInvalidArgument)
		}
		label, err := xlgrid.ColumnLabel(col)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\t%s\n", col, label)
	}
	return nil
}
