// Package pattern compiles a user-supplied base58 prefix/suffix pattern
// into an immutable Subsequence that can be shared, lock-free, across every
// search worker.
package pattern

import (
	"github.com/solanityhq/solanity/pkg/base58"
	"github.com/solanityhq/solanity/pkg/vanityerr"
)

// Anchor identifies which end of the base58 public key a pattern must
// match.
type Anchor int

const (
	// Prefix requires the base58 encoding to start with the pattern.
	Prefix Anchor = iota
	// Suffix requires the base58 encoding to end with the pattern.
	Suffix
)

func (a Anchor) String() string {
	if a == Suffix {
		return "suffix"
	}
	return "prefix"
}

const maxPatternLen = 44

// side is a single compiled anchor constraint (one of prefix or suffix).
type side struct {
	anchor Anchor
	raw    string

	caseSensitive bool
	leadingOnes   int      // prefix only: length of the pattern's leading '1' run
	tail          [][]byte // accepted base58 characters per position, most-significant first (prefix) or left-to-right (suffix)
}

// Subsequence is an immutable compiled pattern. A zero-value Subsequence
// has no constraints and matches every key; use Compile to build one.
type Subsequence struct {
	prefix *side
	suffix *side
}

// Compile validates pattern and builds a Subsequence for the given anchor.
// pattern must be 1-44 base58 characters.
func Compile(raw string, anchor Anchor, caseSensitive bool) (*Subsequence, error) {
	s, err := compileSide(raw, anchor, caseSensitive)
	if err != nil {
		return nil, err
	}
	sub := &Subsequence{}
	switch anchor {
	case Prefix:
		sub.prefix = s
	case Suffix:
		sub.suffix = s
	}
	return sub, nil
}

// CombinePrefixSuffix builds a Subsequence that requires both a prefix and
// a suffix constraint to hold. It rejects combinations whose combined
// length exceeds 44 base58 characters, since no 32-byte key can ever
// satisfy both independently at that length.
func CombinePrefixSuffix(prefixRaw, suffixRaw string, caseSensitive bool) (*Subsequence, error) {
	if len(prefixRaw)+len(suffixRaw) > maxPatternLen {
		return nil, &vanityerr.InvalidArgument{
			Reason: "combined prefix+suffix length exceeds 44 base58 characters",
		}
	}
	p, err := compileSide(prefixRaw, Prefix, caseSensitive)
	if err != nil {
		return nil, err
	}
	s, err := compileSide(suffixRaw, Suffix, caseSensitive)
	if err != nil {
		return nil, err
	}
	return &Subsequence{prefix: p, suffix: s}, nil
}

func compileSide(raw string, anchor Anchor, caseSensitive bool) (*side, error) {
	if len(raw) == 0 || len(raw) > maxPatternLen {
		return nil, &vanityerr.InvalidArgument{
			Reason: "pattern must be 1-44 characters",
		}
	}
	if !base58.IsValid(raw) {
		bad := base58.InvalidChars(raw)
		return nil, &vanityerr.InvalidArgument{
			Reason: "pattern contains non-base58 character(s): " + string(bad),
		}
	}

	s := &side{anchor: anchor, raw: raw, caseSensitive: caseSensitive}

	switch anchor {
	case Prefix:
		i := 0
		for i < len(raw) && raw[i] == '1' {
			i++
		}
		s.leadingOnes = i
		s.tail = compileTail(raw[i:], caseSensitive)
	case Suffix:
		s.tail = compileTail(raw, caseSensitive)
	}
	return s, nil
}

func compileTail(raw string, caseSensitive bool) [][]byte {
	tail := make([][]byte, len(raw))
	for i := 0; i < len(raw); i++ {
		if caseSensitive {
			tail[i] = []byte{raw[i]}
		} else {
			tail[i] = caseSiblingValues(raw[i])
		}
	}
	return tail
}

func caseSiblingValues(c byte) []byte {
	siblings := []byte{c}
	switch {
	case c >= 'a' && c <= 'z':
		u := c - 'a' + 'A'
		if base58.IsValid(string(u)) {
			siblings = append(siblings, u)
		}
	case c >= 'A' && c <= 'Z':
		l := c - 'A' + 'a'
		if base58.IsValid(string(l)) {
			siblings = append(siblings, l)
		}
	}
	return siblings
}

// MatchesPrefix reports whether pub's base58 encoding starts with the
// compiled prefix pattern. It decides without ever materialising the full
// base58 string.
func (s *Subsequence) MatchesPrefix(pub []byte) bool {
	if s.prefix == nil {
		return true
	}
	return s.prefix.matchesPrefix(pub)
}

// MatchesSuffix reports whether pub's base58 encoding ends with the
// compiled suffix pattern.
func (s *Subsequence) MatchesSuffix(pub []byte) bool {
	if s.suffix == nil {
		return true
	}
	return s.suffix.matchesSuffix(pub)
}

// Matches checks prefix first (cheaper on average) then suffix.
func (s *Subsequence) Matches(pub []byte) bool {
	return s.MatchesPrefix(pub) && s.MatchesSuffix(pub)
}

func (s *side) matchesPrefix(pub []byte) bool {
	z := base58.LeadingZeroBytes(pub)
	if z > s.leadingOnes {
		// The encoding has a '1' at position leadingOnes, which satisfies the
		// pattern only when the pattern is nothing but '1's.
		return len(s.tail) == 0
	}
	// Every position below z is guaranteed '1' by the zero bytes themselves.
	// Positions in [z, leadingOnes) are not: they fall in the encoded body,
	// whose own digits must be checked like any other tail character instead
	// of assumed.
	deficit := s.leadingOnes - z
	want := deficit + len(s.tail)
	if want == 0 {
		return true
	}
	digits, ok := base58.PrefixDigits(pub[z:], want)
	if !ok {
		return false
	}
	for i := 0; i < deficit; i++ {
		if digits[i] != '1' {
			return false
		}
	}
	for i, candidates := range s.tail {
		if !containsByte(candidates, digits[deficit+i]) {
			return false
		}
	}
	return true
}

func (s *side) matchesSuffix(pub []byte) bool {
	if len(s.tail) == 0 {
		return true
	}
	digits, ok := base58.SuffixDigits(pub, len(s.tail))
	if !ok {
		return false
	}
	for i, candidates := range s.tail {
		if !containsByte(candidates, digits[i]) {
			return false
		}
	}
	return true
}

func containsByte(set []byte, b byte) bool {
	for _, c := range set {
		if c == b {
			return true
		}
	}
	return false
}

// ExpectedAttempts estimates the average number of candidates a search must
// generate before finding one match for this pattern: 58 per required
// character, halved for every case-insensitive letter position (since two
// candidate values satisfy it instead of one). This is reporting only; it
// never feeds back into the search loop.
func (s *Subsequence) ExpectedAttempts() uint64 {
	total := uint64(1)
	for _, sd := range []*side{s.prefix, s.suffix} {
		if sd == nil {
			continue
		}
		if sd.anchor == Prefix {
			total *= pow58(sd.leadingOnes)
		}
		for _, candidates := range sd.tail {
			total *= uint64(58) / uint64(len(candidates))
		}
	}
	if total == 0 {
		total = 1
	}
	return total
}

func pow58(n int) uint64 {
	r := uint64(1)
	for i := 0; i < n; i++ {
		r *= 58
	}
	return r
}
