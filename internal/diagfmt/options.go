package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto is relative to BaseDir when the file lies under it.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of errors.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown above the error line.
	Context  int
	PathMode PathMode
	// BaseDir anchors relative paths; the working directory when empty.
	BaseDir string
	// TabWidth expands tabs in excerpts; 4 when zero.
	TabWidth int
}

// JSONOpts configures JSON output of errors.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
}
