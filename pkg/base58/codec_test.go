package base58

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for trial := 0; trial < 5000; trial++ {
		n := 1 + trial%40
		data := make([]byte, n)
		if _, err := rand.Read(data); err != nil {
			t.Fatal(err)
		}
		if trial%7 == 0 {
			data[0] = 0
		}

		encoded := Encode(data)
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode(%q): %v", encoded, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("round trip mismatch: in=%x out=%x via %q", data, decoded, encoded)
		}
	}
}

func TestEncodeLeadingZeros(t *testing.T) {
	data := []byte{0, 0, 0, 1, 2, 3}
	got := Encode(data)
	if got[0] != '1' || got[1] != '1' || got[2] != '1' {
		t.Fatalf("expected three leading '1' characters, got %q", got)
	}
}

func TestDecodeRejectsInvalidChar(t *testing.T) {
	_, err := Decode("abc0def")
	if err == nil {
		t.Fatal("expected an error decoding a string containing '0'")
	}
	var invalid *InvalidCharError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidCharError, got %T: %v", err, err)
	}
	if invalid.Char != '0' {
		t.Fatalf("expected the offending char to be '0', got %q", invalid.Char)
	}
}
