package engine

import (
	"bytes"
	"fmt"
	"io"

	"psddiff/internal/diff/action"
	"psddiff/internal/diff/script"
)

// Apply replays a chain of edit scripts against src in order, writing
// the final reconstructed target to w, per spec.md §4.B.2 and §6: D1
// is applied to A to produce A1, D2 is applied to A1 to produce A2,
// and so on, with the last intermediate result written to w. At least
// one script is required. Every intermediate result is buffered in
// memory, since each script's source is the previous script's output.
func Apply(src io.Reader, w io.Writer, readers ...*script.Reader) error {
	if len(readers) == 0 {
		return fmt.Errorf("engine: Apply requires at least one script")
	}
	cur := src
	for _, r := range readers[:len(readers)-1] {
		var mid bytes.Buffer
		if err := applyOne(cur, r, &mid); err != nil {
			return err
		}
		cur = bytes.NewReader(mid.Bytes())
	}
	return applyOne(cur, readers[len(readers)-1], w)
}

// applyOne replays a single edit script against src, writing the
// reconstructed target to w: Skip and the consuming half of
// Replace/ReplaceEqual advance a single forward-only cursor over src;
// Add and the data half of Replace/ReplaceEqual write bytes that never
// touch src at all.
func applyOne(src io.Reader, r *script.Reader, w io.Writer) error {
	for {
		act, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch act.Kind {
		case action.Skip:
			if err := copyFromSource(w, src, int64(act.Len)); err != nil {
				return err
			}
		case action.Add:
			if _, err := w.Write(act.Data); err != nil {
				return err
			}
		case action.Remove:
			if err := discardFromSource(src, int64(act.Len)); err != nil {
				return err
			}
		case action.Replace:
			if err := discardFromSource(src, int64(act.RemoveLen)); err != nil {
				return err
			}
			if _, err := w.Write(act.Data); err != nil {
				return err
			}
		case action.ReplaceEqual:
			if err := discardFromSource(src, int64(act.Len)); err != nil {
				return err
			}
			if _, err := w.Write(act.Data); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %d", action.ErrUnknownKind, act.Kind)
		}
	}

	return checkExhausted(src)
}

func copyFromSource(w io.Writer, src io.Reader, n int64) error {
	copied, err := io.CopyN(w, src, n)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: wanted %d, got %d", ErrOverApplied, n, copied)
		}
		return err
	}
	return nil
}

func discardFromSource(src io.Reader, n int64) error {
	copied, err := io.CopyN(io.Discard, src, n)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: wanted %d, got %d", ErrOverApplied, n, copied)
		}
		return err
	}
	return nil
}

// checkExhausted confirms the script consumed exactly the whole of
// src: any byte still readable after the last action means the script
// was describing a shorter source than it was given.
func checkExhausted(src io.Reader) error {
	var probe [1]byte
	n, err := src.Read(probe[:])
	if n > 0 {
		return ErrUnappliedTail
	}
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}
