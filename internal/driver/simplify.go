package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"helios/internal/ir"
	"helios/internal/libcall"
)

// Options controls a module-wide pass run.
type Options struct {
	Config libcall.Config
	// Jobs caps the number of functions simplified concurrently; <= 0 means
	// GOMAXPROCS.
	Jobs int
}

func runPass(ctx context.Context, mod *ir.Module, opts Options,
	run func(*libcall.Simplifier, *ir.Func) bool) (bool, error) {
	funcs := mod.Funcs
	if len(funcs) == 0 {
		return false, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// The simplifier holds only read-only configuration, and no mutable
	// state crosses function boundaries, so one instance serves all workers.
	s := libcall.NewSimplifier(mod, opts.Config)

	// Per-index results, no mutex needed.
	results := make([]bool, len(funcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(funcs)))

	for i, fn := range funcs {
		i, fn := i, fn
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = run(s, fn)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return false, err
	}

	changed := false
	for _, r := range results {
		changed = changed || r
	}
	return changed, nil
}

// SimplifyModule runs the library-call simplification pass over every
// function of mod, in parallel at function granularity, and reports whether
// anything changed.
func SimplifyModule(ctx context.Context, mod *ir.Module, opts Options) (bool, error) {
	return runPass(ctx, mod, opts, (*libcall.Simplifier).Run)
}

// UseNativeModule runs the native substitution pass over every function of
// mod and reports whether anything changed.
func UseNativeModule(ctx context.Context, mod *ir.Module, opts Options) (bool, error) {
	return runPass(ctx, mod, opts, (*libcall.Simplifier).RunUseNative)
}
