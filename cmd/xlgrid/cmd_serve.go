package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javajack/xlgrid"
	"github.com/javajack/xlgrid/internal/server"
)

var serveAddr string

// serveCmd runs the browser editor
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the grid editor over HTTP",
	Long: `Serves a page that renders the grid as editable inputs, shows the
address of the focused cell and downloads the contents as
spreadsheet_<unix-millis>.csv.

Example:
  xlgrid serve --addr :8080 --rows 100 --cols 30`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	r, c := gridSize(cmd)
	grid, err := xlgrid.NewGrid(r, c)
	if err != nil {
		return err
	}

	heartbeat, err := cfg.HeartbeatInterval()
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(grid, logger,
		server.WithHeartbeat(heartbeat),
		server.WithExportOptions(cfg.ExportOptions()...),
	)
	defer srv.Close()

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("starting grid server", zap.String("addr", addr), zap.Int("rows", r), zap.Int("cols", c))
	if err := srv.Run(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
