package buildpipeline

import (
	"path/filepath"
	"slices"
	"strings"
)

// EmitQueued reports every file as queued for the first stage.
func EmitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageLex, Status: StatusQueued})
	}
}

// DisplayName is file relative to base when it lies below base, otherwise
// file cleaned. Separators are always forward slashes.
func DisplayName(file, base string) string {
	name := filepath.Clean(file)
	if base = strings.TrimSpace(base); base != "" {
		absBase, errBase := filepath.Abs(base)
		absFile, errFile := filepath.Abs(name)
		if errBase == nil && errFile == nil {
			rel, err := filepath.Rel(absBase, absFile)
			if err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				name = rel
			}
		}
	}
	return filepath.ToSlash(name)
}

// DisplayFiles maps files through DisplayName and returns the distinct
// names in sorted order. Empty entries are skipped.
func DisplayFiles(files []string, base string) []string {
	names := make([]string, 0, len(files))
	for _, file := range files {
		if file != "" {
			names = append(names, DisplayName(file, base))
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
