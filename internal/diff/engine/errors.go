package engine

import "errors"

// ErrUnappliedTail is returned by Apply when the script ends before the
// source stream does: the script claimed to describe the whole of A
// but left bytes unconsumed.
var ErrUnappliedTail = errors.New("engine: source has unapplied tail")

// ErrOverApplied is returned by Apply when an action tries to consume
// more source bytes than remain, including Skip/Remove/Replace running
// past a source that has already hit EOF.
var ErrOverApplied = errors.New("engine: action overruns source")

// ErrIncompatibleScripts is returned by Combine when two scripts in a
// chain don't agree on intermediate byte counts.
var ErrIncompatibleScripts = errors.New("engine: scripts do not chain")
