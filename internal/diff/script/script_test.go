package script

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"psddiff/internal/diff/action"
)

func TestHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeHeader(&buf, Header{Version: CurrentVersion}); err != nil {
		t.Fatalf("EncodeHeader: %v", err)
	}
	if buf.Len() != headerLen {
		t.Fatalf("header is %d bytes, want %d", buf.Len(), headerLen)
	}
	h, err := DecodeHeader(&buf)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if h.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", h.Version, CurrentVersion)
	}
}

func TestDecodeHeaderBadMagic(t *testing.T) {
	_, err := DecodeHeader(bytes.NewReader([]byte("NOTAMAGIC\x00\x01")))
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestDecodeHeaderUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	EncodeHeader(&buf, Header{Version: 999})
	_, err := DecodeHeader(&buf)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestWriterEmptyScriptStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if buf.Len() != headerLen {
		t.Fatalf("empty script is %d bytes, want %d (header only)", buf.Len(), headerLen)
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	actions := []action.Action{
		action.NewSkip(10),
		action.NewAdd([]byte("hi")),
		action.NewRemove(3),
		action.NewReplace(4, []byte("late")),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, a := range actions {
		if err := w.Write(a); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(actions) {
		t.Fatalf("got %d actions, want %d", len(got), len(actions))
	}
	for i := range actions {
		if got[i].Kind != actions[i].Kind || got[i].Len != actions[i].Len {
			t.Errorf("action %d: got %+v, want %+v", i, got[i], actions[i])
		}
	}
}

func TestReaderNextEOF(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Close()

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF from an empty script, got %v", err)
	}
}
