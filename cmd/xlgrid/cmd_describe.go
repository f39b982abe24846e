package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javajack/xlgrid"
)

var describeSheet string

// describeCmd dumps a workbook sheet as loaded into a grid
var describeCmd = &cobra.Command{
	Use:   "describe [workbook.xlsx]",
	Short: "Print the cells of an XLSX sheet as a grid would hold them",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().StringVar(&describeSheet, "sheet", "", "worksheet name (default: first sheet)")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	r, c := gridSize(cmd)

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	grid, err := xlgrid.ReadXLSX(f, r, c, describeSheet)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), xlgrid.Describe(grid))
	return nil
}
