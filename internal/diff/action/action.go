// Package action implements the PSDDIFF1 action codec: the tagged
// union of Skip/Add/Remove/Replace/ReplaceEqual operations described
// in spec.md §3, and their big-endian wire encoding.
package action

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Kind is the action discriminant. It is written as a big-endian u16
// on the wire — spec.md's table only fixes field widths, but
// original_source/diffblock.rs's own encoding (u16_to_u8_be_vec of the
// tag) settles the discriminant's own width, and this module follows
// that rather than silently picking a narrower one. See SPEC_FULL.md.
type Kind uint16

const (
	Skip         Kind = 0
	Add          Kind = 1
	Remove       Kind = 2
	Replace      Kind = 3
	ReplaceEqual Kind = 4
)

func (k Kind) String() string {
	switch k {
	case Skip:
		return "Skip"
	case Add:
		return "Add"
	case Remove:
		return "Remove"
	case Replace:
		return "Replace"
	case ReplaceEqual:
		return "ReplaceEqual"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Action is one instruction of an edit script. Which fields are
// meaningful depends on Kind:
//
//	Skip:         Len
//	Add:          Len (== len(Data)), Data
//	Remove:       Len
//	Replace:      RemoveLen, Len (== len(Data)), Data
//	ReplaceEqual: Len (== len(Data)), Data
type Action struct {
	Kind      Kind
	Len       uint32
	RemoveLen uint32 // Replace only
	Data      []byte
}

// NewSkip returns a Skip(len) action.
func NewSkip(length uint32) Action { return Action{Kind: Skip, Len: length} }

// NewAdd returns an Add(data) action.
func NewAdd(data []byte) Action { return Action{Kind: Add, Len: uint32(len(data)), Data: data} }

// NewRemove returns a Remove(len) action.
func NewRemove(length uint32) Action { return Action{Kind: Remove, Len: length} }

// NewReplace returns a Replace(removeLen, data) action, or a
// ReplaceEqual if removeLen equals len(data) — the promotion required
// by spec.md's testable property 8.
func NewReplace(removeLen uint32, data []byte) Action {
	if removeLen == uint32(len(data)) {
		return NewReplaceEqual(data)
	}
	return Action{Kind: Replace, RemoveLen: removeLen, Len: uint32(len(data)), Data: data}
}

// NewReplaceEqual returns a ReplaceEqual(data) action.
func NewReplaceEqual(data []byte) Action {
	return Action{Kind: ReplaceEqual, Len: uint32(len(data)), Data: data}
}

// SourceConsumed reports how many source bytes this action advances
// the cursor by.
func (a Action) SourceConsumed() uint32 {
	switch a.Kind {
	case Skip, Remove:
		return a.Len
	case Replace:
		return a.RemoveLen
	case ReplaceEqual:
		return a.Len
	default: // Add
		return 0
	}
}

// Encode writes the action's wire representation: a u16 kind followed
// by its kind-specific fields, all big-endian.
func (a Action) Encode(w io.Writer) error {
	var head [2]byte
	binary.BigEndian.PutUint16(head[:], uint16(a.Kind))
	if _, err := w.Write(head[:]); err != nil {
		return err
	}

	var lenBuf [4]byte
	writeU32 := func(v uint32) error {
		binary.BigEndian.PutUint32(lenBuf[:], v)
		_, err := w.Write(lenBuf[:])
		return err
	}

	switch a.Kind {
	case Skip, Remove:
		return writeU32(a.Len)
	case Add:
		if err := writeU32(a.Len); err != nil {
			return err
		}
		_, err := w.Write(a.Data)
		return err
	case Replace:
		if err := writeU32(a.RemoveLen); err != nil {
			return err
		}
		if err := writeU32(a.Len); err != nil {
			return err
		}
		_, err := w.Write(a.Data)
		return err
	case ReplaceEqual:
		if err := writeU32(a.Len); err != nil {
			return err
		}
		_, err := w.Write(a.Data)
		return err
	default:
		return fmt.Errorf("action: unknown kind %d", a.Kind)
	}
}

// ErrUnknownKind is wrapped by Decode when a kind code outside 0-4 is
// encountered, corresponding to spec.md §7's UnknownAction.
var ErrUnknownKind = fmt.Errorf("action: unknown kind")

// Decode reads one action from r.
func Decode(r io.Reader) (Action, error) {
	var head [2]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return Action{}, err
	}
	kind := Kind(binary.BigEndian.Uint16(head[:]))

	readU32 := func() (uint32, error) {
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return binary.BigEndian.Uint32(buf[:]), nil
	}
	readData := func(n uint32) ([]byte, error) {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}

	switch kind {
	case Skip:
		n, err := readU32()
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Skip, Len: n}, nil
	case Add:
		n, err := readU32()
		if err != nil {
			return Action{}, err
		}
		data, err := readData(n)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Add, Len: n, Data: data}, nil
	case Remove:
		n, err := readU32()
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Remove, Len: n}, nil
	case Replace:
		removeLen, err := readU32()
		if err != nil {
			return Action{}, err
		}
		dataLen, err := readU32()
		if err != nil {
			return Action{}, err
		}
		data, err := readData(dataLen)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Replace, RemoveLen: removeLen, Len: dataLen, Data: data}, nil
	case ReplaceEqual:
		n, err := readU32()
		if err != nil {
			return Action{}, err
		}
		data, err := readData(n)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ReplaceEqual, Len: n, Data: data}, nil
	default:
		return Action{}, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
}

// CanMerge reports whether two consecutive actions of the same kind
// can be coalesced into one without ambiguity (spec.md §3's script
// invariant). Only same-kind, data-bearing-or-not-consistently pairs
// merge; Replace never merges since its two lengths would conflict.
func CanMerge(a, b Action) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Skip, Remove:
		return true
	case Add, ReplaceEqual:
		return true
	default: // Replace
		return false
	}
}

// Merge combines two mergeable actions (see CanMerge) into one.
func Merge(a, b Action) Action {
	switch a.Kind {
	case Skip, Remove:
		return Action{Kind: a.Kind, Len: a.Len + b.Len}
	default: // Add, ReplaceEqual
		data := make([]byte, 0, len(a.Data)+len(b.Data))
		data = append(data, a.Data...)
		data = append(data, b.Data...)
		return Action{Kind: a.Kind, Len: uint32(len(data)), Data: data}
	}
}
