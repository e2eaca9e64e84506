package source

import "sort"

// FileFlags record how the loaded bytes differ from the file on disk.
type FileFlags uint8

const (
	// FileVirtual marks content added from memory: tests, stdin, fuzzing.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one source text. Content is already normalized.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the offset of every '\n'.
	LineIdx []uint32
	// Hash is the sha256 of Content; the driver cache keys on it.
	Hash  [32]byte
	Flags FileFlags
}

// LineCount is the number of lines, counting a final line without '\n'.
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineIdx)) + 1 //nolint:gosec // one entry per content byte at most
}

// Position maps a byte offset to its line and column.
func (f *File) Position(off uint32) LineCol {
	// newlines strictly before off
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1} //nolint:gosec // line <= len(LineIdx)
}

// GetLine returns line n (1-based) without its newline, or "" when the file
// has no such line.
func (f *File) GetLine(n uint32) string {
	if n == 0 || n > f.LineCount() {
		return ""
	}
	var start uint32
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end := uint32(len(f.Content)) //nolint:gosec // content was indexed with uint32 offsets
	if n-1 < uint32(len(f.LineIdx)) { //nolint:gosec // see LineCount
		end = f.LineIdx[n-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
