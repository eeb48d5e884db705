package manifest

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedLine is returned by Decode when a manifest line isn't a
// valid hex hash (optionally followed by a secondary hex hash).
var ErrMalformedLine = errors.New("manifest: malformed line")

// Encode writes one line per chunk: the chunk's SHA-256 hex hash alone,
// matching the on-disk manifest contract exactly. A second column
// carrying the chunk's BLAKE2b-256 hex hash is appended only when
// Secondary was recorded on that ChunkRef, which only happens when a
// caller opts into decompose.Options.Secondary (decompose's --secondary
// flag, off by default). A reader expecting the plain one-hash-per-line
// format must not assume a fixed field count if it's reading a
// manifest that might have been produced with that flag set.
func Encode(w io.Writer, m Manifest) error {
	bw := bufio.NewWriter(w)
	for _, c := range m.Chunks {
		if _, err := bw.WriteString(hex.EncodeToString(c.Hash[:])); err != nil {
			return err
		}
		if c.Secondary != ([32]byte{}) {
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
			if _, err := bw.WriteString(hex.EncodeToString(c.Secondary[:])); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads a manifest written by Encode.
func Decode(r io.Reader) (Manifest, error) {
	var m Manifest
	sc := bufio.NewScanner(r)
	// Manifest lines are short hex strings; the default scanner buffer
	// is generous, but widen it to tolerate accidental long lines
	// without silently truncating a malformed manifest.
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		ref, err := parseRef(fields)
		if err != nil {
			return Manifest{}, fmt.Errorf("%w at line %d: %v", ErrMalformedLine, lineNo, err)
		}
		m.Chunks = append(m.Chunks, ref)
	}
	if err := sc.Err(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func parseRef(fields []string) (ChunkRef, error) {
	if len(fields) < 1 || len(fields) > 2 {
		return ChunkRef{}, ErrMalformedLine
	}
	var ref ChunkRef
	if err := decodeHash(fields[0], ref.Hash[:]); err != nil {
		return ChunkRef{}, err
	}
	if len(fields) == 2 {
		if err := decodeHash(fields[1], ref.Secondary[:]); err != nil {
			return ChunkRef{}, err
		}
	}
	return ref, nil
}

func decodeHash(s string, dst []byte) error {
	if len(s) != len(dst)*2 {
		return fmt.Errorf("wrong hash length %d", len(s))
	}
	_, err := hex.Decode(dst, []byte(s))
	return err
}
