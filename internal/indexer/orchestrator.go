package indexer

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/apexlang/apex-lsp/internal/apexparse"
	"github.com/apexlang/apex-lsp/internal/fsys"
	"github.com/apexlang/apex-lsp/internal/workspace"
)

// Orchestrator runs the Apex and SObject pipelines across every workspace
// root concurrently (spec.md §4.6, §5): one root's indexing never waits on
// another's.
type Orchestrator struct {
	FS     fsys.FS
	Parser *apexparse.Manager
	Logger *zap.Logger

	// Progress, if set, is called as each root finishes indexing, reporting
	// how many of the total roots are done so far. It may be called
	// concurrently from multiple roots' goroutines.
	Progress func(done, total int)

	// OnRootError, if set, is called whenever a root's pipeline setup fails
	// outright (as opposed to a single file/object failing to index, which
	// is only logged). It may be called concurrently.
	OnRootError func(root workspace.Root, err error)
}

// RunAll indexes every root in roots. A per-root failure is logged and does
// not prevent the other roots from completing.
func (o *Orchestrator) RunAll(ctx context.Context, roots []workspace.Root) {
	total := len(roots)
	var done int64

	g, gctx := errgroup.WithContext(ctx)
	for _, root := range roots {
		root := root
		g.Go(func() error {
			o.runRoot(gctx, root)
			n := atomic.AddInt64(&done, 1)
			if o.Progress != nil {
				o.Progress(int(n), total)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// runRoot runs the Apex and SObject pipelines for one root concurrently
// (spec.md §4.6: "Two instantiations run concurrently per workspace root").
// They write to distinct output directories and share no mutable state, so
// there is nothing to serialize between them.
func (o *Orchestrator) runRoot(ctx context.Context, root workspace.Root) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		apexIx := &ApexIndexer{FS: o.FS, Parser: o.Parser, Logger: o.Logger}
		if err := apexIx.RunRoot(gctx, root); err != nil {
			o.logger().Warn("apex indexing failed for root", zap.String("root", root.URI), zap.Error(err))
			if o.OnRootError != nil {
				o.OnRootError(root, err)
			}
		}
		return nil
	})

	g.Go(func() error {
		sobjectIx := &SObjectIndexer{FS: o.FS, Logger: o.Logger}
		if err := sobjectIx.RunRoot(gctx, root); err != nil {
			o.logger().Warn("sobject indexing failed for root", zap.String("root", root.URI), zap.Error(err))
			if o.OnRootError != nil {
				o.OnRootError(root, err)
			}
		}
		return nil
	})

	_ = g.Wait()
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
