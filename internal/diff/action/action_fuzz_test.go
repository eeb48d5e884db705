package action

import (
	"bytes"
	"math/rand"
	"testing"
)

func FuzzDecode(f *testing.F) {
	f.Add([]byte("seed"))
	f.Fuzz(func(t *testing.T, data []byte) {
		// Decode must never panic on arbitrary bytes; errors are fine.
		_, _ = Decode(bytes.NewReader(data))

		a := randomAction(data)
		var buf bytes.Buffer
		if err := a.Encode(&buf); err != nil {
			return
		}
		got, err := Decode(&buf)
		if err != nil {
			t.Fatalf("decode after encode failed: %v", err)
		}
		if got.Kind != a.Kind || got.Len != a.Len || got.RemoveLen != a.RemoveLen || !bytes.Equal(got.Data, a.Data) {
			t.Fatalf("round-trip mismatch: got %+v, want %+v", got, a)
		}
	})
}

func randomAction(seed []byte) Action {
	r := rand.New(rand.NewSource(seedToInt64(seed)))
	switch r.Intn(5) {
	case 0:
		return NewSkip(r.Uint32())
	case 1:
		return NewAdd(randomBytes(r, 32))
	case 2:
		return NewRemove(r.Uint32())
	case 3:
		return NewReplace(r.Uint32(), randomBytes(r, 32))
	default:
		return NewReplaceEqual(randomBytes(r, 32))
	}
}

func randomBytes(r *rand.Rand, max int) []byte {
	n := r.Intn(max + 1)
	buf := make([]byte, n)
	_, _ = r.Read(buf)
	return buf
}

func seedToInt64(seed []byte) int64 {
	if len(seed) == 0 {
		return 0
	}
	var v int64
	for i := 0; i < len(seed) && i < 8; i++ {
		v |= int64(seed[i]) << (8 * i)
	}
	return v
}
