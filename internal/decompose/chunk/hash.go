package chunk

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Hash computes the SHA-256 digest that names a chunk in the pool and
// the manifest. Chunk identity is fixed to SHA-256 by spec.md's
// testable properties, unlike internal/storage/chunk's BLAKE3.
func Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// HexHash renders a chunk hash as the lowercase hex string the
// manifest and pool filenames use.
func HexHash(h [32]byte) string {
	return hex.EncodeToString(h[:])
}

// Secondary computes an optional BLAKE2b-256 checksum recorded
// alongside the SHA-256 hash in the manifest, letting `sha` detect the
// vanishingly unlikely case of a SHA-256 collision between two chunks
// sharing a pool slot.
func Secondary(data []byte) [32]byte {
	return blake2b.Sum256(data)
}
