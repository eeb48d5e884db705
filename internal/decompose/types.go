package decompose

import "psddiff/internal/clock"

// runStamp orders successive Decompose/Cleanup runs against the same
// pool, e.g. for a caller correlating a report with the log line it
// produced.
var runStamp = clock.New()

// Options controls how Decompose lays out a new or growing pool.
type Options struct {
	// Shard splits the pool directory by the first two hex characters
	// of each hash, for pools expected to hold very many chunks.
	Shard bool
	// Compress stores chunk bytes zstd-compressed on disk. The
	// manifest still addresses chunks by their decompressed content
	// hash, so this is invisible to every other operation.
	Compress bool
	// Secondary additionally records a BLAKE2b-256 checksum per chunk,
	// checked by Sha alongside the primary SHA-256.
	Secondary bool
	// IndexPath, if set, is a chunkindex database that Decompose
	// records this manifest's chunk references in. Cleanup rebuilds the
	// index from a full manifest-directory scan on every run, so its
	// absence never blocks an operation.
	IndexPath string
}

// Report summarizes a Decompose run.
type Report struct {
	RunStamp      string
	ChunkCount    int
	NewChunks     int
	DedupedChunks int
	TotalBytes    int64
}

// VerifyReport summarizes a Sha run.
type VerifyReport struct {
	Checked   int
	Mismatched []string // hex hashes whose pool content no longer matches
}

// CleanupReport summarizes a Cleanup run.
type CleanupReport struct {
	RunStamp     string
	Removed      int
	BytesFreed   int64
	IndexRebuilt bool
}
