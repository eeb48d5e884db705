// Package decompose implements the content-addressed decomposer of
// spec.md §6: splitting a PSD/PSB file into a pool of reusable chunks
// plus a small manifest, and the operations (restore, sha, remove,
// cleanup, recompose) that work the pool back into files again.
package decompose

import "errors"

// ErrChunkMissing is returned by Restore/Recompose when a manifest
// names a hash the pool doesn't have.
var ErrChunkMissing = errors.New("decompose: chunk missing from pool")

// ErrHashMismatch names the failure of a pool chunk whose content no
// longer matches the hash that names it. Sha does not return it: it
// lists such chunks in VerifyReport.Mismatched instead.
var ErrHashMismatch = errors.New("decompose: chunk content does not match its hash")
