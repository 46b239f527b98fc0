package domain

import (
	"context"

	"golang.org/x/sync/errgroup"

	m "torture.dev/pkg/torture/internal/model"
)

// BatchOptions tunes a batch run over a suite collection.
type BatchOptions struct {
	// FailFast terminates the stream right after the first entry whose
	// outcome counts as failed. It takes effect at suite boundaries only.
	FailFast bool

	// Parallel is the number of suites run concurrently. Values below two
	// select the sequential pipeline.
	Parallel int

	// ClearBuildCache deletes each suite's build cache before compiling.
	ClearBuildCache bool

	// OnStart, when set, is called right before a suite's pipeline begins.
	// In parallel mode it may be called from multiple goroutines.
	OnStart func(suite m.Path)
}

// BatchRunner applies the orchestrator to an ordered sequence of suites and
// streams one entry per suite, preserving input order.
type BatchRunner interface {
	// Stream lazily produces (suite, outcome) pairs. The error channel
	// carries at most one unrecoverable environment error; both channels
	// are closed when the stream ends.
	Stream(ctx context.Context, suites []m.Path, cfg m.Config, opts BatchOptions) (<-chan m.BatchEntry, <-chan error)
}

type batchRunner struct {
	orch Orchestrator
}

// NewBatchRunner constructs a BatchRunner on top of an Orchestrator.
func NewBatchRunner(orch Orchestrator) BatchRunner {
	return &batchRunner{orch: orch}
}

func (b *batchRunner) Stream(ctx context.Context, suites []m.Path, cfg m.Config, opts BatchOptions) (<-chan m.BatchEntry, <-chan error) {
	if opts.Parallel > 1 {
		return b.streamParallel(ctx, suites, cfg, opts)
	}

	return b.streamSequential(ctx, suites, cfg, opts)
}

func (b *batchRunner) streamSequential(ctx context.Context, suites []m.Path, cfg m.Config, opts BatchOptions) (<-chan m.BatchEntry, <-chan error) {
	entries := make(chan m.BatchEntry)
	errCh := make(chan error, 1)

	go func() {
		defer close(entries)
		defer close(errCh)

		for _, suite := range suites {
			if err := ctx.Err(); err != nil {
				errCh <- err
				return
			}

			if opts.OnStart != nil {
				opts.OnStart(suite)
			}

			outcome, err := b.orch.CompileAndRun(ctx, suite, cfg, RunOptions{ClearBuildCache: opts.ClearBuildCache})
			if err != nil {
				errCh <- err
				return
			}

			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case entries <- m.BatchEntry{Suite: suite, Outcome: outcome}:
			}

			if opts.FailFast && outcome.Failed() {
				return
			}
		}
	}()

	return entries, errCh
}

// streamParallel runs suites concurrently while emitting entries in input
// order. Each suite still owns its own output directory, so workers share
// nothing but the read-only configuration. Fail-fast cancels suites that
// have not started yet; in-flight suites finish and their entries are
// discarded.
func (b *batchRunner) streamParallel(ctx context.Context, suites []m.Path, cfg m.Config, opts BatchOptions) (<-chan m.BatchEntry, <-chan error) {
	entries := make(chan m.BatchEntry)
	errCh := make(chan error, 1)

	runCtx, cancel := context.WithCancel(ctx)

	slots := make([]chan m.BatchEntry, len(suites))
	for i := range slots {
		slots[i] = make(chan m.BatchEntry, 1)
	}

	group, groupCtx := errgroup.WithContext(runCtx)
	group.SetLimit(opts.Parallel)

	go func() {
		for i, suite := range suites {
			i, suite := i, suite
			group.Go(func() error {
				defer close(slots[i])

				// Cancellation is cooperative: checked before a suite
				// starts, never interrupting an in-flight pipeline.
				if groupCtx.Err() != nil {
					return nil
				}

				if opts.OnStart != nil {
					opts.OnStart(suite)
				}

				outcome, err := b.orch.CompileAndRun(ctx, suite, cfg, RunOptions{ClearBuildCache: opts.ClearBuildCache})
				if err != nil {
					return err
				}

				slots[i] <- m.BatchEntry{Suite: suite, Outcome: outcome}

				return nil
			})
		}
	}()

	go func() {
		defer close(entries)
		defer close(errCh)
		defer cancel()

		stopped := false

		for i := range slots {
			entry, ok := <-slots[i]
			if !ok || stopped {
				continue
			}

			select {
			case <-ctx.Done():
				stopped = true
				continue
			case entries <- entry:
			}

			if opts.FailFast && entry.Outcome.Failed() {
				cancel()

				stopped = true
			}
		}

		if err := group.Wait(); err != nil {
			errCh <- err
		}
	}()

	return entries, errCh
}
