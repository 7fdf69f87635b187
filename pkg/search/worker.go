package search

import (
	"log"
	"time"

	mrtronbase58 "github.com/mr-tron/base58"

	"github.com/solanityhq/solanity/pkg/keygen"
	"github.com/solanityhq/solanity/pkg/pattern"
	"github.com/solanityhq/solanity/pkg/persist"
)

// workerConfig is everything a single worker goroutine needs; it never
// mutates after the Generator hands it out. Spawn builds one per worker,
// each with its own randomness source.
type workerConfig struct {
	matcher    *pattern.Subsequence
	keyPath    string
	sigVerify  bool
	rng        keygen.SecureRandom
	verify     keygen.Verifier
	checkEvery int
}

// runWorker is one worker's whole lifetime: generate, test, and on a match,
// persist-then-enqueue-then-count. It never returns an error; every fault
// short of the state's own termination signal is absorbed and logged, so
// the generator never crashes because one candidate was unlucky.
//
// Loops ed25519.GenerateKey -> pattern test -> checkEvery-batched counter
// flushing -> target-bounded reservation on a match.
func runWorker(state *sharedState, cfg workerConfig) {
	defer state.wg.Done()

	misses := 0
	for {
		if state.breakingOut() {
			return
		}

		kp, err := keygen.Next(cfg.rng, cfg.sigVerify, cfg.verify)
		if err != nil {
			log.Printf("solanity: discarding candidate after generation fault: %v", err)
			misses++
			if misses >= cfg.checkEvery {
				state.flush(misses)
				misses = 0
				if state.isTerminal() {
					return
				}
			}
			continue
		}

		if !cfg.matcher.Matches(kp.Public) {
			misses++
			if misses >= cfg.checkEvery {
				state.flush(misses)
				misses = 0
				if state.isTerminal() {
					return
				}
			}
			continue
		}

		if state.breakingOut() || !state.reserveSlot() {
			// Either told to stop, or every result slot was already
			// claimed by other workers racing to the same target.
			return
		}

		if misses > 0 {
			state.flush(misses)
			misses = 0
		}

		result := Result{
			PublicKey:        kp.Public,
			SecretKey:        kp.Secret,
			Base58PublicKey:  mrtronbase58.Encode(kp.Public),
			AttemptsBySearch: state.NumSearched(),
			DurationNanos:    time.Since(state.start).Nanoseconds(),
		}

		// Ordering guarantee: disk persistence happens-before the enqueue,
		// which happens-before the found counter that callers observe
		// through NumFound. Blocking on a full results channel here is
		// what throttles found whenever a consumer falls behind.
		if err := persist.WriteWithRetry(cfg.keyPath, result.Base58PublicKey, result.SecretKey); err != nil {
			result.PersistError = err
		}

		state.results <- result
		newFound := state.found.Add(1)

		if newFound >= state.target || state.breakingOut() {
			state.BreakOut()
			return
		}
	}
}
