package base58

import "testing"

func TestIsValid(t *testing.T) {
	cases := map[string]bool{
		"":              true,
		"abc123":        true,
		Alphabet:        true,
		"0":             false,
		"O":             false,
		"I":             false,
		"l":             false,
		"abc0":          false,
		"valid-but-not": false,
	}
	for s, want := range cases {
		if got := IsValid(s); got != want {
			t.Errorf("IsValid(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestInvalidChars(t *testing.T) {
	got := InvalidChars("aO0bI")
	want := []rune{'O', '0', 'I'}
	if len(got) != len(want) {
		t.Fatalf("InvalidChars = %q, want %q", string(got), string(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("InvalidChars = %q, want %q", string(got), string(want))
		}
	}
}
