package manifest

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func hashOf(b byte) [32]byte {
	var h [32]byte
	for i := range h {
		h[i] = b
	}
	return h
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := Manifest{Chunks: []ChunkRef{
		{Hash: hashOf(0x01)},
		{Hash: hashOf(0x02), Secondary: hashOf(0xAA)},
	}}

	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(m, got) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, m)
	}
}

func TestEncodeOmitsUnsetSecondary(t *testing.T) {
	m := Manifest{Chunks: []ChunkRef{{Hash: hashOf(0x03)}}}
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	line := bytes.TrimSpace(buf.Bytes())
	if bytes.Contains(line, []byte(" ")) {
		t.Errorf("line with no secondary hash should have no space: %q", line)
	}
}

func TestDecodeEmptyManifest(t *testing.T) {
	m, err := Decode(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(m.Chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(m.Chunks))
	}
}

func TestDecodeMalformedLine(t *testing.T) {
	cases := []string{
		"not-hex\n",
		"aa\n", // too short
		"00112233445566778899aabbccddeeff00112233445566778899aabbccddee extra third\n",
	}
	for _, c := range cases {
		_, err := Decode(bytes.NewReader([]byte(c)))
		if !errors.Is(err, ErrMalformedLine) {
			t.Errorf("Decode(%q): expected ErrMalformedLine, got %v", c, err)
		}
	}
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	var buf bytes.Buffer
	Encode(&buf, Manifest{Chunks: []ChunkRef{{Hash: hashOf(0x05)}}})
	withBlanks := "\n\n" + buf.String() + "\n"
	m, err := Decode(bytes.NewReader([]byte(withBlanks)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(m.Chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(m.Chunks))
	}
}
