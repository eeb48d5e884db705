// Package manifest describes the decompose sidecar file: the ordered
// list of chunk hashes that reconstructs an original PSD/PSB file by
// concatenation. Its shape mirrors internal/storage/manifest's
// Manifest/ChunkRef split, but the codec is plain text per spec.md §6
// rather than that package's binary+checksum format.
package manifest

// ChunkRef names one chunk of the original file, in file order.
type ChunkRef struct {
	Hash [32]byte
	// Secondary is an optional BLAKE2b-256 checksum of the same chunk
	// bytes, recorded so `sha` can flag the one-in-2^256 case of a
	// SHA-256 collision between two differently-named pool entries.
	// All-zero means "not recorded".
	Secondary [32]byte
}

// Manifest is the ordered chunk list for one decomposed file.
type Manifest struct {
	Chunks []ChunkRef
}
