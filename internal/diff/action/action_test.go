package action

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewReplacePromotesToReplaceEqual(t *testing.T) {
	data := []byte("abcd")
	a := NewReplace(4, data)
	if a.Kind != ReplaceEqual {
		t.Fatalf("NewReplace(4, 4 bytes) = %v, want ReplaceEqual", a.Kind)
	}
	b := NewReplace(3, data)
	if b.Kind != Replace {
		t.Fatalf("NewReplace(3, 4 bytes) = %v, want Replace", b.Kind)
	}
	if b.RemoveLen != 3 || b.Len != 4 {
		t.Errorf("Replace fields = (%d, %d), want (3, 4)", b.RemoveLen, b.Len)
	}
}

func TestSourceConsumed(t *testing.T) {
	tests := []struct {
		a    Action
		want uint32
	}{
		{NewSkip(10), 10},
		{NewRemove(7), 7},
		{NewAdd([]byte("xyz")), 0},
		{NewReplace(5, []byte("abcde")), 5}, // promoted to ReplaceEqual
		{NewReplace(5, []byte("ab")), 5},
	}
	for _, tt := range tests {
		if got := tt.a.SourceConsumed(); got != tt.want {
			t.Errorf("%v.SourceConsumed() = %d, want %d", tt.a.Kind, got, tt.want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Action{
		NewSkip(0),
		NewSkip(1234),
		NewAdd(nil),
		NewAdd([]byte("hello world")),
		NewRemove(42),
		NewReplace(3, []byte("abcdef")),
		NewReplaceEqual([]byte("same-len")),
	}
	for _, a := range cases {
		var buf bytes.Buffer
		if err := a.Encode(&buf); err != nil {
			t.Fatalf("Encode(%v): %v", a.Kind, err)
		}
		got, err := Decode(&buf)
		if err != nil {
			t.Fatalf("Decode(%v): %v", a.Kind, err)
		}
		if got.Kind != a.Kind || got.Len != a.Len || got.RemoveLen != a.RemoveLen || !bytes.Equal(got.Data, a.Data) {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, a)
		}
		if buf.Len() != 0 {
			t.Errorf("Decode left %d unread bytes", buf.Len())
		}
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0, 99, 0, 0, 0, 0}))
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0, 0}))
	if err == nil {
		t.Fatal("expected error decoding a truncated Skip action")
	}
}

func TestCanMergeAndMerge(t *testing.T) {
	if CanMerge(NewReplace(1, []byte("ab")), NewReplace(3, []byte("c"))) {
		t.Error("Replace actions must never be mergeable")
	}
	if !CanMerge(NewSkip(3), NewSkip(4)) {
		t.Fatal("two Skip actions should be mergeable")
	}
	merged := Merge(NewSkip(3), NewSkip(4))
	if merged.Kind != Skip || merged.Len != 7 {
		t.Errorf("Merge(Skip(3), Skip(4)) = %+v, want Skip(7)", merged)
	}

	a := NewAdd([]byte("foo"))
	b := NewAdd([]byte("bar"))
	if !CanMerge(a, b) {
		t.Fatal("two Add actions should be mergeable")
	}
	merged = Merge(a, b)
	if merged.Kind != Add || string(merged.Data) != "foobar" {
		t.Errorf("Merge(Add, Add) = %+v, want Add(foobar)", merged)
	}
}

func TestKindString(t *testing.T) {
	for _, k := range []Kind{Skip, Add, Remove, Replace, ReplaceEqual} {
		if k.String() == "" {
			t.Errorf("Kind(%d).String() is empty", k)
		}
	}
	if Kind(77).String() == "" {
		t.Error("unknown Kind.String() should still render something")
	}
}
