// Package tui is a terminal editor for a Grid. The cursor is the grid's
// focused cell, so the focus indicator always names the cell under it.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javajack/xlgrid"
)

const (
	cellWidth      = 12
	defaultWidth   = 80
	defaultHeight  = 24
	chromeLines    = 3 // column header, status, help
	rowHeaderWidth = 5
)

// Model is the bubbletea model of the editor.
type Model struct {
	grid   *xlgrid.Grid
	logger *zap.Logger
	styles Styles

	exportDir  string
	exportOpts []xlgrid.ExportOption
	now        func() time.Time

	cursor  xlgrid.CellRef
	top     int // first visible row
	left    int // first visible column
	editing bool
	input   textinput.Model

	width, height int
	status        string
	statusErr     bool
	quitting      bool
}

// Option configures a Model.
type Option func(*Model)

// WithExportDir sets the directory exports are written to (default ".").
func WithExportDir(dir string) Option {
	return func(m *Model) { m.exportDir = dir }
}

// WithExportOptions sets the options passed to the exporters.
func WithExportOptions(opts ...xlgrid.ExportOption) Option {
	return func(m *Model) { m.exportOpts = opts }
}

// WithClock overrides the time source used for export filenames.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// New creates an editor for grid and focuses its first cell.
func New(grid *xlgrid.Grid, logger *zap.Logger, opts ...Option) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0

	m := Model{
		grid:      grid,
		logger:    logger,
		styles:    DefaultStyles(),
		exportDir: ".",
		now:       time.Now,
		input:     ti,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}
	_ = grid.Focus(0, 0)
	return m
}

// Run starts the editor on the terminal and blocks until it exits or ctx is done.
func Run(ctx context.Context, grid *xlgrid.Grid, logger *zap.Logger, opts ...Option) error {
	p := tea.NewProgram(New(grid, logger, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Cursor returns the cell under the cursor.
func (m Model) Cursor() xlgrid.CellRef { return m.cursor }

// Editing reports whether a cell is being edited.
func (m Model) Editing() bool { return m.editing }

// Status returns the last status message.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-20, 10)
		m.scrollToCursor()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNavigating(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commit(m.input.Value())
		m.stopEditing()
		return m, nil
	case "esc":
		m.stopEditing()
		m.setStatus("edit cancelled", false)
		return m, nil
	case "ctrl+c":
		return m.quit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateNavigating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h", "shift+tab":
		m.move(0, -1)
	case "right", "l", "tab":
		m.move(0, 1)
	case "pgup":
		m.move(-m.visibleRows(), 0)
	case "pgdown":
		m.move(m.visibleRows(), 0)
	case "home":
		m.move(0, -m.cursor.Col)
	case "end":
		m.move(0, m.grid.Cols()-1-m.cursor.Col)
	case "enter", "e", "i":
		return m.startEditing()
	case "backspace", "delete":
		m.commit("")
	case "ctrl+s":
		m.export("csv", xlgrid.SaveCSV)
	case "ctrl+x":
		m.export("xlsx", xlgrid.SaveXLSX)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.grid.Blur()
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) move(dr, dc int) {
	row := clamp(m.cursor.Row+dr, 0, m.grid.Rows()-1)
	col := clamp(m.cursor.Col+dc, 0, m.grid.Cols()-1)
	m.cursor = xlgrid.NewCellRef(row, col)
	if err := m.grid.Focus(row, col); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.scrollToCursor()
}

func (m Model) startEditing() (tea.Model, tea.Cmd) {
	value, err := m.grid.Get(m.cursor.Row, m.cursor.Col)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.editing = true
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) commit(value string) {
	if err := m.grid.Set(m.cursor.Row, m.cursor.Col, value); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("", false)
}

type saveFunc func(dir string, g *xlgrid.Grid, now time.Time, opts ...xlgrid.ExportOption) (string, error)

func (m *Model) export(format string, save saveFunc) {
	path, err := save(m.exportDir, m.grid, m.now(), m.exportOpts...)
	if err != nil {
		m.logger.Error("export failed", zap.String("format", format), zap.Error(err))
		m.setStatus(err.Error(), true)
		return
	}
	m.logger.Info("exported", zap.String("path", path))
	m.setStatus("exported "+path, false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m Model) visibleRows() int {
	return max(m.height-chromeLines-1, 1)
}

func (m Model) visibleCols() int {
	return max((m.width-rowHeaderWidth)/cellWidth, 1)
}

func (m *Model) scrollToCursor() {
	if rows := m.visibleRows(); m.cursor.Row >= m.top+rows {
		m.top = m.cursor.Row - rows + 1
	}
	if m.cursor.Row < m.top {
		m.top = m.cursor.Row
	}
	if cols := m.visibleCols(); m.cursor.Col >= m.left+cols {
		m.left = m.cursor.Col - cols + 1
	}
	if m.cursor.Col < m.left {
		m.left = m.cursor.Col
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	lastRow := min(m.top+m.visibleRows(), m.grid.Rows())
	lastCol := min(m.left+m.visibleCols(), m.grid.Cols())

	b.WriteString(strings.Repeat(" ", rowHeaderWidth))
	for col := m.left; col < lastCol; col++ {
		style := m.styles.Header
		if col == m.cursor.Col {
			style = m.styles.ActiveHeader
		}
		b.WriteString(style.Render(center(xlgrid.MustColumnLabel(col), cellWidth)))
	}
	b.WriteByte('\n')

	for row := m.top; row < lastRow; row++ {
		label, _ := xlgrid.RowLabel(row)
		style := m.styles.Header
		if row == m.cursor.Row {
			style = m.styles.ActiveHeader
		}
		b.WriteString(style.Render(fit(label, rowHeaderWidth-1)) + " ")

		values, _ := m.grid.Row(row)
		for col := m.left; col < lastCol; col++ {
			text := fit(values[col], cellWidth-1)
			if row == m.cursor.Row && col == m.cursor.Col {
				b.WriteString(m.styles.Cursor.Render(text) + " ")
			} else {
				b.WriteString(m.styles.Cell.Render(text) + " ")
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.styles.Help.Render("arrows/hjkl move · enter edit · del clear · ctrl+s csv · ctrl+x xlsx · q quit"))
	return b.String()
}

func (m Model) statusLine() string {
	focus := m.styles.FocusLabel.Render(fmt.Sprintf("%-6s", m.grid.FocusLabel()))
	if m.editing {
		return focus + " " + m.input.View()
	}
	value, _ := m.grid.Get(m.cursor.Row, m.cursor.Col)
	line := focus + " " + fit(value, max(m.width-30, 10))
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Error
		}
		line += "  " + style.Render(m.status)
	}
	return line
}

// fit truncates or pads s to exactly w runes, flattening line breaks.
func fit(s string, w int) string {
	s = strings.NewReplacer("\r\n", "↵", "\n", "↵", "\r", "↵", "\t", " ").Replace(s)
	r := []rune(s)
	if len(r) > w {
		if w <= 1 {
			return string(r[:w])
		}
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}

func center(s string, w int) string {
	pad := w - len([]rune(s))
	if pad <= 0 {
		return fit(s, w)
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
