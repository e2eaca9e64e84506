// Package diagfmt renders compiler errors and token streams for the terminal.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rcc/internal/diag"
	"rcc/internal/source"
)

type palette struct {
	err    *color.Color
	header *color.Color
	gutter *color.Color
	caret  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		header: color.New(color.Bold),
		gutter: color.New(color.FgCyan),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.header, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty writes err as
//
//	path:line:col: error[phase]: message
//	   3 | let y = x;
//	     |         ^
//
// Errors without a span, or whose file is not in fs, print only a header.
func Pretty(w io.Writer, err error, fs *source.FileSet, opts PrettyOpts) error {
	if err == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	de, ok := diag.AsError(err)
	if !ok || !de.HasSpan || fs == nil {
		_, werr := fmt.Fprintf(w, "%s %s\n", pal.err.Sprint("error:"), err.Error())
		return werr
	}

	file := fs.Get(de.Span.File)
	start, end := fs.Resolve(de.Span)
	label := "error"
	if de.Phase != diag.PhaseUnknown {
		label += "[" + de.Phase.String() + "]"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s\n",
		pal.header.Sprintf("%s:%d:%d:", displayPath(file.Path, opts.PathMode, opts.BaseDir), start.Line, start.Col),
		pal.err.Sprint(label+":"),
		de.Msg)

	tab := strings.Repeat(" ", max(opts.TabWidth, 0))
	if opts.TabWidth == 0 {
		tab = "    "
	}
	numWidth := len(strconv.FormatUint(uint64(start.Line), 10))
	first := start.Line
	for i := 0; i < opts.Context && first > 1; i++ {
		first--
	}
	for line := first; line <= start.Line; line++ {
		text := strings.ReplaceAll(file.GetLine(line), "\t", tab)
		fmt.Fprintf(&sb, "%s %s\n", pal.gutter.Sprintf("%*d |", numWidth, line), text)
	}

	lineText := file.GetLine(start.Line)
	col := clampCol(start.Col, lineText)
	endCol := uint32(len(lineText)) + 1 //nolint:gosec // a line fits in the file
	if end.Line == start.Line {
		endCol = clampCol(end.Col, lineText)
	}
	prefix := strings.ReplaceAll(lineText[:col-1], "\t", tab)
	marked := strings.ReplaceAll(lineText[col-1:max(endCol, col)-1], "\t", tab)
	width := max(runewidth.StringWidth(marked), 1)
	fmt.Fprintf(&sb, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", numWidth, ""),
		strings.Repeat(" ", runewidth.StringWidth(prefix)),
		pal.caret.Sprint("^"+strings.Repeat("~", width-1)))

	_, werr := io.WriteString(w, sb.String())
	return werr
}

// clampCol keeps a 1-based byte column inside [1, len(line)+1].
func clampCol(col uint32, line string) uint32 {
	limit := uint32(len(line)) + 1 //nolint:gosec // a line fits in the file
	return min(max(col, 1), limit)
}

func displayPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative, PathModeAuto:
		base := baseDir
		if base == "" {
			if mode == PathModeAuto && !filepath.IsAbs(path) {
				return path
			}
			base = "."
		}
		absBase, err1 := filepath.Abs(base)
		absPath, err2 := filepath.Abs(path)
		if err1 != nil || err2 != nil {
			return path
		}
		rel, err := filepath.Rel(absBase, absPath)
		if err != nil || (mode == PathModeAuto && strings.HasPrefix(rel, "..")) {
			return path
		}
		return filepath.ToSlash(rel)
	default:
		return path
	}
}
