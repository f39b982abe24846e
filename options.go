package xlgrid

// Default grid dimensions.
const (
	DefaultRows = 50
	DefaultCols = 50
)

// Options holds configuration for a Grid.
type Options struct {
	listeners []Listener
}

func defaultOptions() *Options {
	return &Options{}
}

// Option configures a Grid.
type Option func(*Options)

// WithListener registers a listener that is notified of cell and focus changes.
func WithListener(l Listener) Option {
	return func(o *Options) {
		if l != nil {
			o.listeners = append(o.listeners, l)
		}
	}
}

// ExportOptions holds configuration for CSV and XLSX exports.
type ExportOptions struct {
	quoting   bool
	sheetName string
}

func defaultExportOptions() *ExportOptions {
	return &ExportOptions{
		sheetName: "Sheet1",
	}
}

// ExportOption configures an export.
type ExportOption func(*ExportOptions)

// WithQuoting enables RFC 4180 quoting of fields that contain commas, quotes
// or line breaks (default: false). Without it values are written raw, so a
// value containing a comma or newline corrupts the row structure.
func WithQuoting(quote bool) ExportOption {
	return func(o *ExportOptions) { o.quoting = quote }
}

// WithSheetName sets the worksheet name used by XLSX export (default: "Sheet1").
func WithSheetName(name string) ExportOption {
	return func(o *ExportOptions) {
		if name != "" {
			o.sheetName = name
		}
	}
}

func buildExportOptions(opts []ExportOption) *ExportOptions {
	o := defaultExportOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}
