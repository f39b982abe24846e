package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/javajack/xlgrid"
	"github.com/javajack/xlgrid/internal/tui"
)

var editOutDir string

// editCmd runs the terminal editor
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the grid in the terminal",
	Long: `Opens a full-screen grid editor. Arrow keys move the focused cell,
enter edits it, ctrl+s writes spreadsheet_<unix-millis>.csv and ctrl+x
writes the XLSX equivalent.`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editOutDir, "out-dir", "o", "", "export directory (overrides config)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	r, c := gridSize(cmd)
	grid, err := xlgrid.NewGrid(r, c)
	if err != nil {
		return err
	}

	dir := cfg.Export.Dir
	if editOutDir != "" {
		dir = editOutDir
	}

	ctx, cancel := signalContext()
	defer cancel()

	err = tui.Run(ctx, grid, logger,
		tui.WithExportDir(dir),
		tui.WithExportOptions(cfg.ExportOptions()...),
	)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
