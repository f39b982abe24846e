// Package server exposes a Grid to a browser: an embedded page that renders
// the cells, a small JSON API that edits them, and an SSE stream of changes.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/javajack/xlgrid"
)

//go:embed frontend
var frontendFS embed.FS

const (
	maxBodySize     = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server is the HTTP surface of a single grid.
type Server struct {
	mux    *http.ServeMux
	logger *zap.Logger
	sse    *Broadcaster

	mu          sync.Mutex // guards grid
	grid        *xlgrid.Grid
	unsubscribe func()

	heartbeat  time.Duration
	exportOpts []xlgrid.ExportOption
	now        func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithHeartbeat sets the SSE heartbeat interval.
func WithHeartbeat(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.heartbeat = d
		}
	}
}

// WithExportOptions sets the options used by the export endpoints.
func WithExportOptions(opts ...xlgrid.ExportOption) Option {
	return func(s *Server) { s.exportOpts = opts }
}

// WithClock overrides the time source used for export filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server for grid and subscribes to its notifications.
// Call Close to detach it again.
func New(grid *xlgrid.Grid, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		sse:       NewBroadcaster(logger),
		grid:      grid,
		heartbeat: defaultHeartbeat,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.unsubscribe = grid.Subscribe(s.sse)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/sheet", s.handleSheet)
	s.mux.HandleFunc("GET /api/cells/{ref}", s.handleGetCell)
	s.mux.HandleFunc("PUT /api/cells/{ref}", s.handleSetCell)
	s.mux.HandleFunc("PUT /api/focus/{ref}", s.handleFocus)
	s.mux.HandleFunc("DELETE /api/focus", s.handleBlur)
	s.mux.HandleFunc("GET /api/export.csv", s.handleExportCSV)
	s.mux.HandleFunc("GET /api/export.xlsx", s.handleExportXLSX)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)

	frontendDir, _ := fs.Sub(frontendFS, "frontend")
	s.mux.Handle("GET /", http.FileServer(http.FS(frontendDir)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; connect-src 'self'")
	s.logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	s.mux.ServeHTTP(w, r)
}

// Close detaches the server from its grid and disconnects SSE clients.
func (s *Server) Close() {
	s.mu.Lock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.mu.Unlock()
	s.sse.CloseAll()
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run with an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.sse.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// --- Sheet handlers ---

type sheetResponse struct {
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	Columns   []string   `json:"columns"`
	RowLabels []string   `json:"rowLabels"`
	Cells     [][]string `json:"cells"`
	Focused   string     `json:"focused"`
}

// GET /api/sheet: dimensions, header labels, values and focus.
func (s *Server) handleSheet(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	resp := sheetResponse{
		Rows:      s.grid.Rows(),
		Cols:      s.grid.Cols(),
		Columns:   s.grid.ColumnLabels(),
		RowLabels: s.grid.RowLabels(),
		Cells:     s.grid.Values(),
		Focused:   s.grid.FocusLabel(),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

type cellResponse struct {
	Ref   string `json:"ref"`
	Value string `json:"value"`
}

// GET /api/cells/{ref}
func (s *Server) handleGetCell(w http.ResponseWriter, r *http.Request) {
	ref, ok := s.parseRef(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	value, err := s.grid.Get(ref.Row, ref.Col)
	s.mu.Unlock()
	if err != nil {
		s.gridError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cellResponse{Ref: ref.Label(), Value: value})
}

// PUT /api/cells/{ref}: body {"value": "..."}.
func (s *Server) handleSetCell(w http.ResponseWriter, r *http.Request) {
	ref, ok := s.parseRef(w, r)
	if !ok {
		return
	}

	var req struct {
		Value *string `json:"value"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
		jsonError(w, "field 'value' required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.grid.Set(ref.Row, ref.Col, *req.Value)
	s.mu.Unlock()
	if err != nil {
		s.gridError(w, err)
		return
	}
	s.logger.Debug("cell set", zap.String("ref", ref.Label()))
	writeJSON(w, http.StatusOK, cellResponse{Ref: ref.Label(), Value: *req.Value})
}

type focusResponse struct {
	Focused string `json:"focused"`
}

// PUT /api/focus/{ref}
func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	ref, ok := s.parseRef(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	err := s.grid.Focus(ref.Row, ref.Col)
	label := s.grid.FocusLabel()
	s.mu.Unlock()
	if err != nil {
		s.gridError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, focusResponse{Focused: label})
}

// DELETE /api/focus
func (s *Server) handleBlur(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.grid.Blur()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, focusResponse{})
}

// --- Export handlers ---

// GET /api/export.csv
func (s *Server) handleExportCSV(w http.ResponseWriter, _ *http.Request) {
	s.export(w, "csv", "text/csv; charset=utf-8", xlgrid.WriteCSV)
}

// GET /api/export.xlsx
func (s *Server) handleExportXLSX(w http.ResponseWriter, _ *http.Request) {
	s.export(w, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", xlgrid.WriteXLSX)
}

type exportFunc func(w io.Writer, g *xlgrid.Grid, opts ...xlgrid.ExportOption) error

// export renders into memory first so that a failure can still be reported
// as a JSON error instead of a truncated download.
func (s *Server) export(w http.ResponseWriter, ext, contentType string, write exportFunc) {
	var buf bytes.Buffer
	s.mu.Lock()
	err := write(&buf, s.grid, s.exportOpts...)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("export failed", zap.String("format", ext), zap.Error(err))
		jsonError(w, "export failed", http.StatusInternalServerError)
		return
	}

	name := xlgrid.ExportFilename(s.now(), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("export download interrupted", zap.String("file", name), zap.Error(err))
		return
	}
	s.logger.Info("exported", zap.String("file", name), zap.Int("bytes", buf.Len()))
}

// --- Events ---

// GET /api/events: SSE stream of "cell" and "focus" events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.sse.ServeSSE(w, r, s.heartbeat, func(c *client) {
		s.mu.Lock()
		label := s.grid.FocusLabel()
		s.mu.Unlock()
		s.sse.SendTo(c, "focus", focusEvent{Ref: label})
	})
}

// --- Helpers ---

func (s *Server) parseRef(w http.ResponseWriter, r *http.Request) (xlgrid.CellRef, bool) {
	ref, err := xlgrid.ParseCellRef(r.PathValue("ref"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return xlgrid.CellRef{}, false
	}
	return ref, true
}

func (s *Server) gridError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, xlgrid.ErrOutOfRange):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, xlgrid.ErrInvalidArgument):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error("grid operation failed", zap.Error(err))
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
