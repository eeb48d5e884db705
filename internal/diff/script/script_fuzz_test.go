package script

import (
	"bytes"
	"testing"
)

func FuzzDecodeHeader(f *testing.F) {
	var seed bytes.Buffer
	EncodeHeader(&seed, Header{Version: CurrentVersion})
	f.Add(seed.Bytes())
	f.Fuzz(func(t *testing.T, data []byte) {
		// Must never panic, whatever garbage precedes or replaces the header.
		_, _ = DecodeHeader(bytes.NewReader(data))
	})
}
