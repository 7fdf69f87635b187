// Package search implements the concurrent worker pool that generates
// candidate keypairs, tests them against a compiled pattern, and emits
// matches through a bounded producer/consumer queue.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/solanityhq/solanity/pkg/keygen"
	"github.com/solanityhq/solanity/pkg/pattern"
	"github.com/solanityhq/solanity/pkg/vanityerr"
)

// ErrDone is returned by Take once every worker has exited and the results
// queue has been fully drained: there is nothing left to wait for.
var ErrDone = errors.New("search: generator terminated, no more results")

// Executor runs a function, typically on its own goroutine. The default
// GoroutineExecutor just does that; tests or callers that want bounded
// concurrency or deterministic scheduling can supply their own.
type Executor interface {
	Go(func())
}

// GoroutineExecutor runs each function on a new goroutine, unbounded.
type GoroutineExecutor struct{}

func (GoroutineExecutor) Go(fn func()) { go fn() }

// Generator owns a pool of workers all searching for the same pattern and
// funnels their matches through a single bounded queue, exposing Take,
// Poll, NumFound, NumSearched, State and BreakOut to its consumer.
type Generator struct {
	state *sharedState
}

// Spawn starts numThreads workers searching for matcher, persisting any
// match under keyPath, and stops once target matches have been found.
// checkEvery controls how often each worker flushes its local miss count
// into the shared searched counter. rng yields a fresh randomness source
// per worker. verify is the sigVerify self-check's signature checker; a nil
// verify falls back to the real crypto/ed25519.Verify (pkg/vanity's
// CreateGenerator always passes nil — the hook exists so tests can inject a
// verifier that always fails and drive the GenerationFault path end-to-end).
// Validation of these parameters is the caller's responsibility (pkg/vanity's
// CreateGenerator does it before calling Spawn).
func Spawn(
	exec Executor,
	matcher *pattern.Subsequence,
	keyPath string,
	sigVerify bool,
	rngFactory keygen.SecureRandomFactory,
	numThreads int,
	checkEvery int,
	target uint32,
	verify keygen.Verifier,
) *Generator {
	state := newSharedState(target, checkEvery, numThreads)
	state.wg.Add(numThreads)

	for i := 0; i < numThreads; i++ {
		cfg := workerConfig{
			matcher:    matcher,
			keyPath:    keyPath,
			sigVerify:  sigVerify,
			rng:        rngFactory(),
			verify:     verify,
			checkEvery: checkEvery,
		}
		exec.Go(func() {
			runWorker(state, cfg)
		})
	}

	exec.Go(func() {
		state.wg.Wait()
		state.workersExited.Store(true)
		close(state.results)
	})

	return &Generator{state: state}
}

// NumFound returns how many matches have been enqueued so far. Each one's
// key file was written first, unless its Result carries a PersistError.
func (g *Generator) NumFound() uint32 { return g.state.NumFound() }

// NumSearched returns an approximate total candidate count, batched in
// checkEvery-sized increments.
func (g *Generator) NumSearched() uint64 { return g.state.NumSearched() }

// State reports the generator's current lifecycle stage.
func (g *Generator) State() State { return g.state.State() }

// Results exposes the raw result channel for callers that want to select
// on it directly alongside their own ticker/signal channels instead of
// calling the blocking Take. The channel is closed once every worker has
// exited.
func (g *Generator) Results() <-chan Result { return g.state.results }

// BreakOut asks every worker to stop searching as soon as possible. It
// does not roll back work already in flight: a match already reserved will
// still be persisted and enqueued. Safe to call more than once, from any
// goroutine.
func (g *Generator) BreakOut() { g.state.BreakOut() }

// Take blocks until a Result is available, ctx is done, or the generator
// has no more results to ever produce. In the last case it returns
// ErrDone; in the ctx-cancelled case it returns a *vanityerr.Interrupted.
func (g *Generator) Take(ctx context.Context) (Result, error) {
	select {
	case r, ok := <-g.state.results:
		if !ok {
			return Result{}, ErrDone
		}
		return r, nil
	case <-ctx.Done():
		return Result{}, &vanityerr.Interrupted{Cause: ctx.Err()}
	}
}

// Poll waits up to timeout for a Result. ok is false if the timeout
// elapsed or the generator is done; it is never an error condition by
// itself.
func (g *Generator) Poll(timeout time.Duration) (Result, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	r, err := g.Take(ctx)
	if err != nil {
		return Result{}, false
	}
	return r, true
}
