// Package keygen produces Ed25519 keypairs from an injectable randomness
// source, with an optional sign+verify self-check. The randomness source
// is a single-method capability rather than always the global rand.Reader,
// so workers never share one generator instance unless it's documented
// thread-safe.
package keygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"io"

	"github.com/solanityhq/solanity/pkg/vanityerr"
)

// SecureRandom is a cryptographically strong byte source. A single
// implementation must not be shared across workers unless it documents
// itself as safe for concurrent use; the default factory below hands out
// independent instances.
type SecureRandom interface {
	io.Reader
}

// SecureRandomFactory produces a fresh SecureRandom instance.
// DefaultFactory wraps the OS CSPRNG (crypto/rand) and is what
// CreateGenerator uses when the caller supplies no factory.
type SecureRandomFactory func() SecureRandom

// DefaultFactory returns a factory that hands out independent readers over
// the OS CSPRNG. crypto/rand.Reader is itself safe for concurrent use, but
// returning one instance per call keeps every worker's contract identical
// regardless of which factory is plugged in.
func DefaultFactory() SecureRandomFactory {
	return func() SecureRandom {
		return &osRandom{src: rand.Reader}
	}
}

// osRandom is one worker's own handle on the OS CSPRNG.
type osRandom struct {
	src io.Reader
}

func (r *osRandom) Read(p []byte) (int, error) { return r.src.Read(p) }

// Keypair is an Ed25519 keypair in Solana's on-disk layout: Secret is the
// 64-byte expanded form (seed ‖ public), Public is the 32-byte public key.
type Keypair struct {
	Public []byte // 32 bytes
	Secret []byte // 64 bytes
}

// probeMessage is the fixed 32-byte message signed during the optional
// sigVerify self-check.
var probeMessage = []byte("solanity-keypair-self-check-v1!!")

func init() {
	if len(probeMessage) != 32 {
		panic("keygen: probeMessage must be exactly 32 bytes")
	}
}

// Verifier checks an Ed25519 signature the way ed25519.Verify does. It is
// injectable so a broken implementation can drive the GenerationFault path
// end-to-end in tests, the same way SecureRandom is injectable for a
// corrupted randomness source. Next falls back to the real
// crypto/ed25519.Verify when verify is nil.
type Verifier func(pub ed25519.PublicKey, message, sig []byte) bool

// Next draws a fresh Ed25519 keypair from src. When sigVerify is true it
// additionally signs the probe message and checks it with verify (or
// ed25519.Verify, if verify is nil) before returning; a verification
// failure is reported as *vanityerr.GenerationFault and the caller should
// discard the candidate and continue — it is never fatal to the search as
// a whole.
func Next(src SecureRandom, sigVerify bool, verify Verifier) (Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(src)
	if err != nil {
		return Keypair{}, &vanityerr.UnavailableAlgorithm{
			Reason: "ed25519 key generation failed",
			Cause:  err,
		}
	}

	if sigVerify {
		if verify == nil {
			verify = ed25519.Verify
		}
		sig := ed25519.Sign(priv, probeMessage)
		if !verify(pub, probeMessage, sig) {
			return Keypair{}, &vanityerr.GenerationFault{
				Cause: errSelfCheckFailed,
			}
		}
	}

	return Keypair{Public: []byte(pub), Secret: []byte(priv)}, nil
}

var errSelfCheckFailed = selfCheckError{}

type selfCheckError struct{}

func (selfCheckError) Error() string { return "sign+verify self-check failed on probe message" }
