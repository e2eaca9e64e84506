// Package driver runs the compile pipeline over files and directories.
package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"rcc/internal/ast"
	"rcc/internal/buildpipeline"
	"rcc/internal/cfg"
	"rcc/internal/codegen"
	"rcc/internal/ir"
	"rcc/internal/lexer"
	"rcc/internal/observ"
	"rcc/internal/parser"
	"rcc/internal/sema"
	"rcc/internal/source"
	"rcc/internal/trace"
)

// Options configure one compilation.
type Options struct {
	Level  ir.OptimizeLevel
	Target codegen.TargetPlatform
	// Overloads extends the binary operator rules of the resolver.
	Overloads *sema.OverloadTable
	// Timer collects phase durations when set.
	Timer *observ.Timer
	// Cache short-circuits files whose CFG IR is already on disk.
	Cache *DiskCache
	// Progress receives per-stage events when set.
	Progress buildpipeline.ProgressSink
	// StopAfter ends the pipeline after a stage; empty runs everything.
	StopAfter buildpipeline.Stage
}

// Frame is the stack frame the simple allocator lays out for one function.
type Frame struct {
	Func string
	Size uint32
}

// Result holds the artefacts of one file. A cache hit fills only CFG and
// Frames.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	AST     *ast.File
	Sema    *sema.Result
	IR      *ir.LinearIR
	CFG     *cfg.CFGIR
	Frames  []Frame
	Cached  bool
}

// CompileFile loads path and compiles it.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return compile(ctx, fs, fs.Get(id), opts)
}

// CompileSource compiles src as if it were read from a file called name.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return compile(ctx, fs, fs.Get(id), opts)
}

func compile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*Result, error) {
	ctx, fileSpan := trace.BeginCtx(ctx, trace.ScopeModule, "file:"+file.Path)
	res := &Result{FileSet: fs, File: file}

	var key Digest
	full := opts.StopAfter == "" || opts.StopAfter == buildpipeline.StageEmit
	if opts.Cache != nil && full {
		key = CacheKey(file.Hash, opts)
		cir, ok, err := opts.Cache.Get(key)
		if err != nil {
			return nil, err
		}
		if ok {
			res.CFG = cir
			res.Cached = true
			emit(opts.Progress, file.Path, buildpipeline.StageCFG, buildpipeline.StatusCached, nil, 0)
			if err := res.layoutFrames(opts); err != nil {
				return nil, err
			}
			fileSpan.End("cached")
			return res, nil
		}
	}

	r := runner{ctx: ctx, opts: opts, file: file.Path}
	steps := []struct {
		stage buildpipeline.Stage
		run   func(context.Context) (string, error)
	}{
		{buildpipeline.StageLex, func(context.Context) (string, error) {
			toks, err := lexer.Tokenize(file)
			return strconv.Itoa(len(toks)) + " tokens", err
		}},
		{buildpipeline.StageParse, func(context.Context) (string, error) {
			f, err := parser.ParseFile(file)
			res.AST = f
			if err != nil {
				return "", err
			}
			return strconv.Itoa(len(f.TopLevel)) + " items", nil
		}},
		{buildpipeline.StageResolve, func(ctx context.Context) (string, error) {
			sr, err := sema.Resolve(ctx, res.AST, sema.Options{Overloads: opts.Overloads})
			res.Sema = sr
			return "", err
		}},
		{buildpipeline.StageLower, func(ctx context.Context) (string, error) {
			lir, err := ir.Build(ctx, res.AST, res.Sema, ir.Options{Level: opts.Level})
			res.IR = lir
			if err != nil {
				return "", err
			}
			return strconv.Itoa(len(lir.Funcs)) + " funcs", nil
		}},
		{buildpipeline.StageCFG, func(context.Context) (string, error) {
			cir, err := cfg.BuildIR(res.IR)
			if err != nil {
				return "", err
			}
			if err := cfg.ValidateIR(cir); err != nil {
				return "", err
			}
			res.CFG = cir
			return "", res.layoutFrames(opts)
		}},
	}
	for _, step := range steps {
		if err := r.stage(step.stage, step.run); err != nil {
			fileSpan.End("error")
			return res, err
		}
		if step.stage == opts.StopAfter {
			fileSpan.End("stopped after " + string(step.stage))
			return res, nil
		}
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, res.CFG); err != nil {
			return nil, err
		}
	}
	fileSpan.End("")
	return res, nil
}

// layoutFrames sizes every function's frame with the stack-slot allocator.
// Register allocation does not exist yet, so optimized builds use it too.
func (res *Result) layoutFrames(opts Options) error {
	res.Frames = make([]Frame, 0, len(res.CFG.CFGs))
	for _, c := range res.CFG.CFGs {
		alloc, err := codegen.NewAllocator(codegen.OptZero, c, opts.Target.AddrSize())
		if err != nil {
			return err
		}
		res.Frames = append(res.Frames, Frame{Func: c.FuncName, Size: alloc.FrameSize()})
	}
	return nil
}

type runner struct {
	ctx  context.Context
	opts Options
	file string
}

// stage runs one step inside a trace span and a timer phase, reporting
// progress before and after.
func (r *runner) stage(stage buildpipeline.Stage, run func(context.Context) (string, error)) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	emit(r.opts.Progress, r.file, stage, buildpipeline.StatusWorking, nil, 0)
	ctx, span := trace.BeginCtx(r.ctx, trace.ScopePass, string(stage))
	mark := r.opts.Timer.Begin(string(stage))
	start := time.Now()

	detail, err := run(ctx)

	elapsed := time.Since(start)
	mark.End(detail)
	if err != nil {
		span.End(err.Error())
		emit(r.opts.Progress, r.file, stage, buildpipeline.StatusError, err, elapsed)
		return fmt.Errorf("%s: %w", r.file, err)
	}
	span.End(detail)
	emit(r.opts.Progress, r.file, stage, buildpipeline.StatusDone, nil, elapsed)
	return nil
}

func emit(sink buildpipeline.ProgressSink, file string, stage buildpipeline.Stage, status buildpipeline.Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(buildpipeline.Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
