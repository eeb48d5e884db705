package decompose

import (
	"context"

	"psddiff/internal/decompose/chunkindex"
	"psddiff/internal/decompose/pool"
)

// Cleanup removes every pool chunk no manifest under manifestsDir
// references any more. The index is always rebuilt from manifestsDir
// first — in memory if indexPath is empty, otherwise in place at
// indexPath — so it is never a second source of truth. An index file
// that cannot be opened is an error.
func Cleanup(poolDir, manifestsDir, indexPath string) (CleanupReport, error) {
	p, err := pool.Open(poolDir)
	if err != nil {
		return CleanupReport{}, err
	}

	idx, rebuilt, err := openOrRebuildIndex(indexPath, manifestsDir)
	if err != nil {
		return CleanupReport{}, err
	}
	defer idx.Close()

	var candidates []string
	if err := p.Walk(func(hashHex string) error {
		candidates = append(candidates, hashHex)
		return nil
	}); err != nil {
		return CleanupReport{}, err
	}

	garbage, err := idx.Unreferenced(context.Background(), candidates)
	if err != nil {
		return CleanupReport{}, err
	}

	report := CleanupReport{RunStamp: runStamp.Next()}
	report.IndexRebuilt = rebuilt
	for _, hashHex := range garbage {
		size, err := chunkSize(p, hashHex)
		if err != nil {
			return CleanupReport{}, err
		}
		if err := p.Remove(hashHex); err != nil {
			return CleanupReport{}, err
		}
		report.Removed++
		report.BytesFreed += size
	}
	return report, nil
}

func chunkSize(p *pool.Pool, hashHex string) (int64, error) {
	data, err := p.Get(hashHex)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func openOrRebuildIndex(indexPath, manifestsDir string) (*chunkindex.Store, bool, error) {
	if indexPath == "" {
		return rebuildTempIndex(manifestsDir)
	}
	idx, err := chunkindex.Open(indexPath)
	if err != nil {
		return nil, false, err
	}
	if err := chunkindex.Rebuild(context.Background(), idx, manifestsDir); err != nil {
		idx.Close()
		return nil, false, err
	}
	return idx, true, nil
}

func rebuildTempIndex(manifestsDir string) (*chunkindex.Store, bool, error) {
	idx, err := chunkindex.Open(":memory:")
	if err != nil {
		return nil, false, err
	}
	if err := chunkindex.Rebuild(context.Background(), idx, manifestsDir); err != nil {
		idx.Close()
		return nil, false, err
	}
	return idx, true, nil
}
