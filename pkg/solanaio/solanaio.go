// Package solanaio is the single boundary where this module's results cross
// into gagliardetto/solana-go's type system, for handoff to an out-of-scope
// RPC/transaction layer. Nothing else in this repo imports solana-go.
package solanaio

import (
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/solanityhq/solanity/pkg/search"
)

// ToSolanaPrivateKey converts a search.Result's 64-byte expanded secret key
// into solana-go's PrivateKey type.
func ToSolanaPrivateKey(r search.Result) solana.PrivateKey {
	return solana.PrivateKey(r.SecretKey)
}

// ToSolanaPublicKey converts a search.Result's 32-byte public key into
// solana-go's PublicKey type.
func ToSolanaPublicKey(r search.Result) solana.PublicKey {
	return solana.PublicKeyFromBytes(r.PublicKey)
}

// Attempt mirrors the shape the wider Solana Go ecosystem expects from a
// vanity search result, so code written against that convention can
// consume this module's output with no further translation.
type Attempt struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
	Attempts   uint64
	Duration   time.Duration
}

// ToAttempt builds an Attempt from a search.Result.
func ToAttempt(r search.Result) Attempt {
	return Attempt{
		PrivateKey: ToSolanaPrivateKey(r),
		PublicKey:  ToSolanaPublicKey(r),
		Attempts:   r.AttemptsBySearch,
		Duration:   time.Duration(r.DurationNanos),
	}
}
