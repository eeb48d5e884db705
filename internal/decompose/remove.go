package decompose

import (
	"context"
	"os"
	"path/filepath"

	"psddiff/internal/decompose/chunkindex"
)

// Remove deletes a decomposed file's manifest and drops its chunk
// references from the index, if any. It never touches the pool
// itself: a chunk this manifest referenced may still be kept alive by
// another manifest, so freeing pool space is Cleanup's job, run
// whenever the caller wants a GC pass rather than on every Remove.
func Remove(manifestPath string, indexPath string) error {
	if err := os.Remove(manifestPath); err != nil {
		return err
	}
	if indexPath == "" {
		return nil
	}
	idx, err := chunkindex.Open(indexPath)
	if err != nil {
		return err
	}
	defer idx.Close()
	return idx.ForgetManifest(context.Background(), filepath.Base(manifestPath))
}
