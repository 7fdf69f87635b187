package search

// Result is emitted once per matched keypair.
type Result struct {
	// PublicKey is the 32-byte Ed25519 public key.
	PublicKey []byte
	// SecretKey is the 64-byte Ed25519 expanded secret key (seed ‖ public).
	SecretKey []byte
	// Base58PublicKey is the canonical base58 encoding of PublicKey,
	// computed once at emission time — never in the hot loop.
	Base58PublicKey string
	// AttemptsBySearch is a snapshot of the shared searched counter when
	// this result was emitted. It is approximate: it can lag the true
	// total by up to checkEvery*numThreads-1.
	AttemptsBySearch uint64
	// DurationNanos is monotonic nanoseconds elapsed since the generator
	// started.
	DurationNanos int64
	// PersistError is non-nil when the key could not be written to disk
	// even after one retry. The result is still emitted — losing uptime is
	// preferable to losing a found key — so the consumer can decide how to
	// recover the secret key itself.
	PersistError error
}
