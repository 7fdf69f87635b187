package base58

import "math/big"

// Encode returns the canonical base58 encoding of data: one leading '1' per
// leading zero byte, followed by the base58 digits of the remaining
// big-endian integer, most significant digit first.
func Encode(data []byte) string {
	zeros := leadingZeroBytes(data)

	n := new(big.Int).SetBytes(data)
	mod := big.NewInt(58)
	rem := new(big.Int)

	digits := make([]byte, 0, len(data)*138/100+1)
	for n.Sign() > 0 {
		n.DivMod(n, mod, rem)
		digits = append(digits, Alphabet[rem.Int64()])
	}

	out := make([]byte, zeros+len(digits))
	for i := 0; i < zeros; i++ {
		out[i] = minChar
	}
	// digits were appended least-significant-first; reverse into place.
	for i, j := zeros, len(digits)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = digits[j]
	}
	return string(out)
}

// Decode reverses Encode. It returns an error if s contains a character
// outside the base58 alphabet.
func Decode(s string) ([]byte, error) {
	zeros := 0
	for zeros < len(s) && s[zeros] == minChar {
		zeros++
	}

	n := new(big.Int)
	mul := big.NewInt(58)
	for i := zeros; i < len(s); i++ {
		v := digitValue[s[i]]
		if v < 0 {
			return nil, &InvalidCharError{Char: rune(s[i])}
		}
		n.Mul(n, mul)
		n.Add(n, big.NewInt(int64(v)))
	}

	body := n.Bytes()
	out := make([]byte, zeros+len(body))
	copy(out[zeros:], body)
	return out, nil
}

func leadingZeroBytes(data []byte) int {
	n := 0
	for n < len(data) && data[n] == 0 {
		n++
	}
	return n
}

// InvalidCharError reports a character outside the base58 alphabet.
type InvalidCharError struct {
	Char rune
}

func (e *InvalidCharError) Error() string {
	return "base58: invalid character " + string(e.Char)
}
