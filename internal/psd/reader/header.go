package reader

import (
	"psddiff/internal/psd/block"
	"psddiff/internal/psd/dialect"
)

// readHeader parses the fixed 26-byte PSD/PSB header synchronously, so
// New can fail fast on BadSignature/BadVersion before a parse
// goroutine is even started.
func readHeader(cr *countingReader) (dialect.Dialect, []block.Leaf, error) {
	var leaves []block.Leaf
	add := func(label string, length int64) {
		leaves = append(leaves, block.Leaf{
			Path:   "header." + label,
			Offset: cr.offset - length,
			Length: length,
		})
	}

	sig, err := cr.readN(4)
	if err != nil {
		return dialect.Unknown, nil, err
	}
	if string(sig) != "8BPS" {
		var got [4]byte
		copy(got[:], sig)
		return dialect.Unknown, nil, badSignature(got)
	}
	add("signature", 4)

	version, err := cr.readU16()
	if err != nil {
		return dialect.Unknown, nil, err
	}
	dial, err := dialect.FromVersion(version)
	if err != nil {
		return dialect.Unknown, nil, badVersion(version)
	}
	add("version", 2)

	if _, err := cr.readN(6); err != nil {
		return dialect.Unknown, nil, err
	}
	add("reserved", 6)

	if _, err := cr.readN(2); err != nil {
		return dialect.Unknown, nil, err
	}
	add("channels", 2)

	if _, err := cr.readN(4); err != nil {
		return dialect.Unknown, nil, err
	}
	add("height", 4)

	if _, err := cr.readN(4); err != nil {
		return dialect.Unknown, nil, err
	}
	add("width", 4)

	if _, err := cr.readN(2); err != nil {
		return dialect.Unknown, nil, err
	}
	add("depth", 2)

	if _, err := cr.readN(2); err != nil {
		return dialect.Unknown, nil, err
	}
	add("color_mode", 2)

	return dial, leaves, nil
}
