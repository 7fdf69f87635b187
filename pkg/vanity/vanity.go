// Package vanity is the facade that validates a caller's search parameters
// and wires them into a running pkg/search.Generator.
package vanity

import (
	"io"
	"math"
	"os"

	"github.com/solanityhq/solanity/pkg/keygen"
	"github.com/solanityhq/solanity/pkg/pattern"
	"github.com/solanityhq/solanity/pkg/search"
	"github.com/solanityhq/solanity/pkg/vanityerr"
)

// Executor runs a function, typically on its own goroutine.
type Executor = search.Executor

// GoroutineExecutor is the zero-value default Executor: every Go call gets
// its own goroutine, unbounded.
type GoroutineExecutor = search.GoroutineExecutor

// DefaultCheckEvery is how many candidates a worker tries between flushing
// its local miss count into the shared searched counter.
const DefaultCheckEvery = 262144

// Config is every parameter CreateGenerator needs. BeginsWith and EndsWith
// are mutually optional but at least one must be non-empty.
type Config struct {
	KeyPath       string
	BeginsWith    string
	EndsWith      string
	CaseSensitive bool
	FindKeys      uint32
	NumThreads    int
	SigVerify     bool
	CheckEvery    int // 0 means DefaultCheckEvery
	RandFactory   keygen.SecureRandomFactory
	Executor      Executor
}

// CreateGenerator validates cfg and, if valid, starts the worker pool and
// returns a running *search.Generator. Invalid parameters yield an
// *vanityerr.InvalidArgument, and a randomness source whose first read
// fails yields an *vanityerr.UnavailableAlgorithm; no worker starts until
// validation has fully passed.
func CreateGenerator(cfg Config) (*search.Generator, error) {
	if cfg.BeginsWith == "" && cfg.EndsWith == "" {
		return nil, &vanityerr.InvalidArgument{Reason: "at least one of beginsWith or endsWith must be set"}
	}
	if cfg.FindKeys == 0 {
		return nil, &vanityerr.InvalidArgument{Reason: "findKeys must be at least 1"}
	}
	if cfg.FindKeys > math.MaxInt32 {
		return nil, &vanityerr.InvalidArgument{Reason: "findKeys must not exceed 2^31-1"}
	}
	if cfg.NumThreads < 1 {
		return nil, &vanityerr.InvalidArgument{Reason: "numThreads must be at least 1"}
	}
	if cfg.KeyPath == "" {
		return nil, &vanityerr.InvalidArgument{Reason: "keyPath must not be empty"}
	}
	if info, err := os.Stat(cfg.KeyPath); err != nil || !info.IsDir() {
		return nil, &vanityerr.InvalidArgument{Reason: "keyPath must be an existing directory: " + cfg.KeyPath}
	}

	matcher, err := compileMatcher(cfg.BeginsWith, cfg.EndsWith, cfg.CaseSensitive)
	if err != nil {
		return nil, err
	}

	checkEvery := cfg.CheckEvery
	if checkEvery <= 0 {
		checkEvery = DefaultCheckEvery
	}

	rngFactory := cfg.RandFactory
	if rngFactory == nil {
		rngFactory = keygen.DefaultFactory()
	}
	if _, err := io.ReadFull(rngFactory(), make([]byte, 32)); err != nil {
		return nil, &vanityerr.UnavailableAlgorithm{Reason: "randomness source failed its first read", Cause: err}
	}

	exec := cfg.Executor
	if exec == nil {
		exec = GoroutineExecutor{}
	}

	return search.Spawn(
		exec,
		matcher,
		cfg.KeyPath,
		cfg.SigVerify,
		rngFactory,
		cfg.NumThreads,
		checkEvery,
		cfg.FindKeys,
		nil,
	), nil
}

func compileMatcher(beginsWith, endsWith string, caseSensitive bool) (*pattern.Subsequence, error) {
	switch {
	case beginsWith != "" && endsWith != "":
		return pattern.CombinePrefixSuffix(beginsWith, endsWith, caseSensitive)
	case beginsWith != "":
		return pattern.Compile(beginsWith, pattern.Prefix, caseSensitive)
	default:
		return pattern.Compile(endsWith, pattern.Suffix, caseSensitive)
	}
}
