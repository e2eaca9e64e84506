package driver

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rcc/internal/buildpipeline"
	"rcc/internal/cfg"
)

// OutputPath maps src (relative to srcDir) to its CFG IR file under outDir.
func OutputPath(srcDir, outDir, src string) string {
	rel, err := filepath.Rel(srcDir, src)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(src)
	}
	return filepath.Join(outDir, strings.TrimSuffix(rel, SourceExt)+".cfg.mp")
}

// WriteCFG encodes cir to path, reporting the emit stage to sink.
func WriteCFG(path string, cir *cfg.CFGIR, sink buildpipeline.ProgressSink, display string) error {
	start := time.Now()
	emit(sink, display, buildpipeline.StageEmit, buildpipeline.StatusWorking, nil, 0)
	err := replaceFile(path, func(w io.Writer) error { return cfg.Encode(w, cir) })
	status := buildpipeline.StatusDone
	if err != nil {
		status = buildpipeline.StatusError
	}
	emit(sink, display, buildpipeline.StageEmit, status, err, time.Since(start))
	return err
}

// replaceFile writes path through a temp file in the same directory, so
// readers see either the old content or the complete new one.
func replaceFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success
	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
