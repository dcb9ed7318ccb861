// Package checksum fingerprints uploaded files. The hash is recorded on
// the import bookkeeping row for audit; it is not the reimport key.
package checksum

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Sum returns the xxhash64 of data as a hex string.
func Sum(data []byte) string {
	digest := xxhash.New()
	digest.Write(data)
	return hex.EncodeToString(digest.Sum(nil))
}

// SumReader returns the xxhash64 of everything readable from r.
func SumReader(r io.Reader) (string, error) {
	digest := xxhash.New()
	if _, err := io.Copy(digest, r); err != nil {
		return "", fmt.Errorf("failed to hash stream: %w", err)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
