package search

import (
	"context"
	"crypto/ed25519"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/solanityhq/solanity/pkg/keygen"
	"github.com/solanityhq/solanity/pkg/pattern"
)

func spawnForTest(t *testing.T, sub *pattern.Subsequence, numThreads int, checkEvery int, target uint32, sigVerify bool) (*Generator, string) {
	t.Helper()
	dir := t.TempDir()
	gen := Spawn(GoroutineExecutor{}, sub, dir, sigVerify, keygen.DefaultFactory(), numThreads, checkEvery, target, nil)
	return gen, dir
}

func drainAll(t *testing.T, gen *Generator, timeout time.Duration) []Result {
	t.Helper()
	var results []Result
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for {
		r, err := gen.Take(ctx)
		if err == ErrDone {
			return results
		}
		if err != nil {
			t.Fatalf("Take: %v", err)
		}
		results = append(results, r)
	}
}

// Scenario: trivial single-character prefix "1", single worker.
func TestTrivialPrefixSingleWorker(t *testing.T) {
	sub, err := pattern.Compile("1", pattern.Prefix, true)
	if err != nil {
		t.Fatal(err)
	}
	gen, _ := spawnForTest(t, sub, 1, 64, 2, true)

	results := drainAll(t, gen, 30*time.Second)
	if len(results) != 2 {
		t.Fatalf("expected exactly 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !sub.MatchesPrefix(r.PublicKey) {
			t.Fatalf("result %x does not actually satisfy the compiled pattern", r.PublicKey)
		}
	}
	if gen.State() != Terminated {
		t.Fatalf("expected Terminated after draining, got %s", gen.State())
	}
}

// Scenario: two-character prefix "So", four workers.
func TestTwoCharPrefixFourWorkers(t *testing.T) {
	sub, err := pattern.Compile("So", pattern.Prefix, true)
	if err != nil {
		t.Fatal(err)
	}
	gen, _ := spawnForTest(t, sub, 4, 1024, 1, true)

	results := drainAll(t, gen, 60*time.Second)
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
	if results[0].Base58PublicKey[:2] != "So" {
		t.Fatalf("result %q does not start with the requested prefix", results[0].Base58PublicKey)
	}
}

// Scenario: case-insensitive suffix "end".
func TestCaseInsensitiveSuffix(t *testing.T) {
	sub, err := pattern.Compile("end", pattern.Suffix, false)
	if err != nil {
		t.Fatal(err)
	}
	gen, _ := spawnForTest(t, sub, 4, 1024, 1, true)

	results := drainAll(t, gen, 120*time.Second)
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
	got := results[0].Base58PublicKey
	suffix := got[len(got)-3:]
	if !equalFold(suffix, "end") {
		t.Fatalf("result %q does not end with 'end' case-insensitively", got)
	}
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Scenario: combined prefix "A" and suffix "z".
func TestCombinedPrefixAndSuffix(t *testing.T) {
	sub, err := pattern.CombinePrefixSuffix("A", "z", true)
	if err != nil {
		t.Fatal(err)
	}
	gen, _ := spawnForTest(t, sub, 4, 1024, 1, true)

	results := drainAll(t, gen, 60*time.Second)
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
	got := results[0].Base58PublicKey
	if got[0] != 'A' || got[len(got)-1] != 'z' {
		t.Fatalf("result %q does not satisfy prefix 'A' and suffix 'z'", got)
	}
}

// Scenario: BreakOut responsiveness. A pattern rare enough that no match
// will plausibly be found in the test's short lifetime; BreakOut is called
// almost immediately, and every worker must notice and stop well before
// the pattern could realistically be satisfied.
func TestBreakOutResponsiveness(t *testing.T) {
	sub, err := pattern.Compile("ZZZZZZ", pattern.Prefix, true)
	if err != nil {
		t.Fatal(err)
	}
	gen, _ := spawnForTest(t, sub, 4, 64, 1, true)

	gen.BreakOut()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = gen.Take(ctx)
	if err != ErrDone {
		t.Fatalf("expected ErrDone shortly after BreakOut, got %v", err)
	}
	if gen.NumFound() != 0 {
		t.Fatalf("expected NumFound()==0 after an immediate BreakOut, got %d", gen.NumFound())
	}
	if gen.State() != Terminated {
		t.Fatalf("expected Terminated after BreakOut drains, got %s", gen.State())
	}
}

// Scenario: sigVerify enabled throughout, interleaved with an injected
// randomness source that intermittently fails to produce bytes at all.
// keygen.Next reports those reads as errors, and the worker must discard
// the candidates and keep going without crashing or stalling.
type flakySource struct {
	inner keygen.SecureRandom
	calls int
}

func (f *flakySource) Read(p []byte) (int, error) {
	f.calls++
	if f.calls%3 == 0 {
		return 0, io.ErrClosedPipe
	}
	return f.inner.Read(p)
}

func TestSigVerifyWithIntermittentGenerationFaults(t *testing.T) {
	sub, err := pattern.Compile("1", pattern.Prefix, true)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	factory := func() keygen.SecureRandom {
		return &flakySource{inner: keygen.DefaultFactory()()}
	}
	gen := Spawn(GoroutineExecutor{}, sub, dir, true, factory, 2, 32, 1, nil)

	results := drainAll(t, gen, 30*time.Second)
	if len(results) != 1 {
		t.Fatalf("expected the search to still converge despite intermittent generation faults, got %d results", len(results))
	}
}

// Scenario 6: sigVerify=true with a deliberately broken Ed25519 verifier.
// Every candidate must be rejected as a GenerationFault; searched still
// advances, no result is ever emitted, and the generator never crashes or
// stalls. Driven through the real worker path via the injectable Verifier
// hook, not by constructing a GenerationFault value by hand.
func TestSigVerifyBrokenVerifierNeverEmitsResult(t *testing.T) {
	sub, err := pattern.Compile("1", pattern.Prefix, true)
	if err != nil {
		t.Fatal(err)
	}
	brokenVerify := func(pub ed25519.PublicKey, message, sig []byte) bool { return false }

	dir := t.TempDir()
	gen := Spawn(GoroutineExecutor{}, sub, dir, true, keygen.DefaultFactory(), 4, 64, 1, brokenVerify)

	time.Sleep(200 * time.Millisecond)
	gen.BreakOut()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := gen.Take(ctx); err != ErrDone {
		t.Fatalf("expected ErrDone since every candidate fails sigVerify, got %v", err)
	}
	if gen.NumFound() != 0 {
		t.Fatalf("expected NumFound()==0 when every candidate fails its sigVerify self-check, got %d", gen.NumFound())
	}
	if gen.NumSearched() == 0 {
		t.Fatal("expected searched to keep advancing even though every candidate was rejected as a generation fault")
	}
}

// Target bound: the generator must never emit more than findKeys results,
// even with many workers racing to the same target.
func TestTargetBoundNotExceeded(t *testing.T) {
	sub, err := pattern.Compile("1", pattern.Prefix, true)
	if err != nil {
		t.Fatal(err)
	}
	gen, _ := spawnForTest(t, sub, 6, 64, 3, true)

	results := drainAll(t, gen, 60*time.Second)
	if len(results) != 3 {
		t.Fatalf("expected exactly 3 results (the target), got %d", len(results))
	}
	if gen.NumFound() != 3 {
		t.Fatalf("NumFound() = %d, want 3", gen.NumFound())
	}
}

// Persistence invariant: by the time a Result is observable via Take, its
// key file is already on disk, because persistence happens before the
// result is enqueued.
func TestPersistenceHappensBeforeTake(t *testing.T) {
	sub, err := pattern.Compile("1", pattern.Prefix, true)
	if err != nil {
		t.Fatal(err)
	}
	gen, dir := spawnForTest(t, sub, 2, 64, 1, true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	r, err := gen.Take(ctx)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if r.PersistError != nil {
		t.Fatalf("unexpected persist error: %v", r.PersistError)
	}
	path := filepath.Join(dir, r.Base58PublicKey+".json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected key file to exist once the result was observable via Take: %v", err)
	}
}

func TestPollTimesOutWithoutBlockingForever(t *testing.T) {
	sub, err := pattern.Compile("ZZZZZZ", pattern.Prefix, true)
	if err != nil {
		t.Fatal(err)
	}
	gen, _ := spawnForTest(t, sub, 2, 64, 1, true)
	defer gen.BreakOut()

	_, ok := gen.Poll(50 * time.Millisecond)
	if ok {
		t.Fatal("expected Poll to time out against an unreachable pattern")
	}
}

func TestBreakOutIsIdempotent(t *testing.T) {
	sub, err := pattern.Compile("ZZZZZZ", pattern.Prefix, true)
	if err != nil {
		t.Fatal(err)
	}
	gen, _ := spawnForTest(t, sub, 1, 64, 1, true)

	gen.BreakOut()
	gen.BreakOut()
	gen.BreakOut()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := gen.Take(ctx); err != ErrDone {
		t.Fatalf("expected ErrDone, got %v", err)
	}
}
