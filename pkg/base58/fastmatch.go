package base58

import "math/big"

// powers58[i] holds 58^i, precomputed once so the hot matching path never
// computes a power of 58 itself.
var powers58 [46]*big.Int

func init() {
	powers58[0] = big.NewInt(1)
	fiftyEight := big.NewInt(58)
	for i := 1; i < len(powers58); i++ {
		powers58[i] = new(big.Int).Mul(powers58[i-1], fiftyEight)
	}
}

// digitCount returns how many base58 digits n needs (0 for n == 0).
func digitCount(n *big.Int) int {
	if n.Sign() == 0 {
		return 0
	}
	for l := 1; l < len(powers58); l++ {
		if powers58[l].Cmp(n) > 0 {
			return l
		}
	}
	return len(powers58) - 1
}

// EncodedLength returns len(Encode(key)) without allocating the string.
func EncodedLength(key []byte) int {
	z := LeadingZeroBytes(key)
	n := new(big.Int).SetBytes(key[z:])
	return z + digitCount(n)
}

// LeadingZeroBytes returns the number of leading 0x00 bytes in key.
func LeadingZeroBytes(key []byte) int {
	n := 0
	for n < len(key) && key[n] == 0 {
		n++
	}
	return n
}

// PrefixDigits returns the first `want` base58 digits of remaining's
// encoding (remaining is expected to be a key with its leading zero bytes
// already stripped), most-significant digit first. ok is false when
// remaining's own encoding is shorter than want digits, i.e. there is no
// way the pattern can be satisfied.
//
// After one digit-count scan, this performs exactly `want` big.Int
// divisions regardless of the key's total length, instead of a full encode.
// It does not stop early: all `want` digits are produced before the caller
// compares any of them against the pattern.
func PrefixDigits(remaining []byte, want int) (digits []byte, ok bool) {
	if want == 0 {
		return nil, true
	}
	n := new(big.Int).SetBytes(remaining)
	l := digitCount(n)
	if l < want {
		return nil, false
	}

	out := make([]byte, want)
	rem := new(big.Int)
	quo := new(big.Int)
	cur := n
	for i := 0; i < want; i++ {
		power := powers58[l-1-i]
		quo.QuoRem(cur, power, rem)
		out[i] = Alphabet[quo.Int64()]
		cur = rem
		rem = new(big.Int)
	}
	return out, true
}

// SuffixDigits returns the last `want` base58 digits of key's full
// encoding, in left-to-right order as they'd appear in the string (so
// digits[want-1] is the final character). ok is false when key's total
// encoded length is shorter than want.
func SuffixDigits(key []byte, want int) (digits []byte, ok bool) {
	if want == 0 {
		return nil, true
	}
	if EncodedLength(key) < want {
		return nil, false
	}

	n := new(big.Int).SetBytes(key)
	mod := powers58[want]
	cur := new(big.Int).Mod(n, mod)

	out := make([]byte, want)
	fiftyEight := big.NewInt(58)
	rem := new(big.Int)
	for i := want - 1; i >= 0; i-- {
		cur.QuoRem(cur, fiftyEight, rem)
		out[i] = Alphabet[rem.Int64()]
	}
	return out, true
}
