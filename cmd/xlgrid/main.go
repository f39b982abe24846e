package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javajack/xlgrid"
	"github.com/javajack/xlgrid/internal/config"
	"github.com/javajack/xlgrid/internal/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Grid flags shared by serve, edit, convert and describe
	rows int
	cols int

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "xlgrid",
	Short: "A grid of editable text cells with CSV export",
	Long: `xlgrid edits a fixed-size grid of text cells addressed like a
spreadsheet (A1, B2, ... AA1) and exports it as CSV or XLSX.

Use "xlgrid serve" for the browser editor or "xlgrid edit" for the
terminal editor.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		// The terminal editor owns stderr; only log when a file is configured.
		if cmd == editCmd && cfg.Logging.File == "" {
			logger = zap.NewNop()
			return nil
		}
		logger, err = logging.New(cfg.Logging, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "xlgrid.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	for _, c := range []*cobra.Command{serveCmd, editCmd, convertCmd, describeCmd} {
		c.Flags().IntVar(&rows, "rows", xlgrid.DefaultRows, "number of rows (overrides config)")
		c.Flags().IntVar(&cols, "cols", xlgrid.DefaultCols, "number of columns (overrides config)")
	}

	rootCmd.AddCommand(serveCmd, editCmd, labelCmd, convertCmd, describeCmd)
}

// gridSize returns the configured dimensions with explicit flags taking precedence.
func gridSize(cmd *cobra.Command) (int, int) {
	r, c := cfg.Grid.Rows, cfg.Grid.Cols
	if cmd.Flags().Changed("rows") {
		r = rows
	}
	if cmd.Flags().Changed("cols") {
		c = cols
	}
	return r, c
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
