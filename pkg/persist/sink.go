// Package persist writes matched keypairs to disk as one JSON file per key,
// named after the key's base58 public key.
package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solanityhq/solanity/pkg/vanityerr"
)

// Write persists secretKey (the 64-byte Ed25519 expanded secret key) to
// keyPath/<base58PublicKey>.json as a JSON array of unsigned byte values,
// newline-terminated. Writes are write-then-close, so a reader never
// observes a partially written file from this process. Overwriting an
// existing file (an astronomically unlikely base58 collision) is
// permitted.
func Write(keyPath, base58PublicKey string, secretKey []byte) error {
	return writeOnce(keyPath, base58PublicKey, secretKey)
}

// WriteWithRetry retries the write once, and on a second failure returns
// *vanityerr.IoFault so the caller can surface the failure instead of
// silently losing the found key.
func WriteWithRetry(keyPath, base58PublicKey string, secretKey []byte) error {
	err := writeOnce(keyPath, base58PublicKey, secretKey)
	if err == nil {
		return nil
	}
	if err = writeOnce(keyPath, base58PublicKey, secretKey); err != nil {
		return &vanityerr.IoFault{Cause: err}
	}
	return nil
}

func writeOnce(keyPath, base58PublicKey string, secretKey []byte) error {
	values := make([]int, len(secretKey))
	for i, b := range secretKey {
		values[i] = int(b)
	}
	body, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("persist: marshal secret key: %w", err)
	}
	body = append(body, '\n')

	path := filepath.Join(keyPath, base58PublicKey+".json")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("persist: open %s: %w", path, err)
	}
	if _, err := f.Write(body); err != nil {
		f.Close()
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	return f.Close()
}

// Read decodes a previously written key file back into its 64-byte secret
// key.
func Read(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values []int
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	out := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("persist: byte value %d out of range", v)
		}
		out[i] = byte(v)
	}
	return out, nil
}
