package chunkindex

import "context"

// RecordManifest replaces the reference set for one manifest with
// hashes, so a re-decompose of the same file doesn't accumulate stale
// rows from a previous version of its manifest.
func (s *Store) RecordManifest(ctx context.Context, manifestName string, hashes []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM chunk_refs WHERE manifest = ?", manifestName); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO chunk_refs(hash, manifest) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, h := range hashes {
		if _, err = stmt.ExecContext(ctx, h, manifestName); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ForgetManifest drops every reference a manifest holds, e.g. after
// its *.psd.decomposed file has itself been removed.
func (s *Store) ForgetManifest(ctx context.Context, manifestName string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunk_refs WHERE manifest = ?", manifestName)
	return err
}

// RefCount reports how many manifests currently reference hash.
func (s *Store) RefCount(ctx context.Context, hash string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunk_refs WHERE hash = ?", hash).Scan(&n)
	return n, err
}

// Unreferenced returns every hash from candidates that has zero
// manifest references, i.e. the GC set for `cleanup`.
func (s *Store) Unreferenced(ctx context.Context, candidates []string) ([]string, error) {
	var garbage []string
	for _, h := range candidates {
		n, err := s.RefCount(ctx, h)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			garbage = append(garbage, h)
		}
	}
	return garbage, nil
}
