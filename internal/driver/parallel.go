package driver

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"rcc/internal/buildpipeline"
)

// SourceExt is the extension CompileDir picks up.
const SourceExt = ".rs"

// FileResult is the outcome of one file of a directory build.
type FileResult struct {
	Path   string
	Result *Result
	Err    error
}

// ListSources returns every source file below dir in lexical order.
func ListSources(dir string) ([]string, error) {
	var files []string
	walk := func(path string, d fs.DirEntry, err error) error {
		if err == nil && d.Type().IsRegular() && filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return err
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// CompileDir compiles the sources under dir, at most jobs at a time (at
// least one). A failing file does not stop the others: its error is kept in
// its FileResult and all of them are joined into the returned error. Only
// cancelling ctx stops the build early.
func CompileDir(ctx context.Context, dir string, opts Options, jobs int, sink buildpipeline.ProgressSink) ([]FileResult, error) {
	files, err := ListSources(dir)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	opts.Progress = sink
	buildpipeline.EmitQueued(sink, files)

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := CompileFile(gctx, files[i], opts)
			results[i] = FileResult{Path: files[i], Result: res, Err: err}
			if errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	errs := make([]error, 0, len(results))
	for _, r := range results {
		errs = append(errs, r.Err)
	}
	return results, errors.Join(errs...)
}
