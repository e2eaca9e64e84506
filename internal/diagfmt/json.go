package diagfmt

import (
	"encoding/json"
	"errors"
	"io"

	"rcc/internal/diag"
	"rcc/internal/source"
)

// LocationJSON is a span with resolved line and column numbers.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

// ErrorJSON is the machine-readable form of one compile error.
type ErrorJSON struct {
	Phase         string        `json:"phase,omitempty"`
	Message       string        `json:"message"`
	Unimplemented bool          `json:"unimplemented,omitempty"`
	Location      *LocationJSON `json:"location,omitempty"`
}

// ToJSON converts err, resolving its span through fs when it has one.
func ToJSON(err error, fs *source.FileSet, opts JSONOpts) ErrorJSON {
	de, ok := diag.AsError(err)
	if !ok {
		return ErrorJSON{Message: err.Error()}
	}
	out := ErrorJSON{Message: de.Msg, Unimplemented: errors.Is(err, diag.ErrUnimplemented)}
	if de.Phase != diag.PhaseUnknown {
		out.Phase = de.Phase.String()
	}
	if de.HasSpan && fs != nil {
		start, end := fs.Resolve(de.Span)
		out.Location = &LocationJSON{
			File:      displayPath(fs.Get(de.Span.File).Path, opts.PathMode, opts.BaseDir),
			StartByte: de.Span.Start,
			EndByte:   de.Span.End,
			StartLine: start.Line,
			StartCol:  start.Col,
			EndLine:   end.Line,
			EndCol:    end.Col,
		}
	}
	return out
}

// JSON writes errs as an indented JSON array.
func JSON(w io.Writer, errs []error, fs *source.FileSet, opts JSONOpts) error {
	out := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			out = append(out, ToJSON(err, fs, opts))
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
