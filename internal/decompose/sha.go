package decompose

import (
	"encoding/hex"
	"errors"

	dchunk "psddiff/internal/decompose/chunk"
	"psddiff/internal/decompose/pool"
)

// Sha verifies a manifest against the pool: every referenced chunk
// must exist and its content must still hash to the name it's stored
// under, catching pool corruption (bit rot, a manually edited chunk
// file) independently of ever restoring the file.
func Sha(manifestPath, poolDir string) (VerifyReport, error) {
	m, err := readManifestFile(manifestPath)
	if err != nil {
		return VerifyReport{}, err
	}
	p, err := pool.Open(poolDir)
	if err != nil {
		return VerifyReport{}, err
	}

	var report VerifyReport
	for _, c := range m.Chunks {
		hashHex := hex.EncodeToString(c.Hash[:])
		data, err := p.Get(hashHex)
		if err != nil {
			if errors.Is(err, pool.ErrNotFound) {
				report.Mismatched = append(report.Mismatched, hashHex)
				report.Checked++
				continue
			}
			return VerifyReport{}, err
		}

		report.Checked++
		if dchunk.Hash(data) != c.Hash {
			report.Mismatched = append(report.Mismatched, hashHex)
			continue
		}
		if c.Secondary != ([32]byte{}) && dchunk.Secondary(data) != c.Secondary {
			report.Mismatched = append(report.Mismatched, hashHex)
		}
	}
	return report, nil
}
