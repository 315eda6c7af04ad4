// Package merkleerr defines the typed error taxa the core surfaces,
// distinct from plain storage-failure wrapping: invalid arguments and
// decode failures each get a concrete type so callers can errors.As them.
package merkleerr

import "fmt"

// InvalidArgument is returned when a caller-supplied argument is out of
// range for the operation, e.g. Prove(index) with index >= leavesCount.
type InvalidArgument struct {
	Op  string
	Msg string
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("%s: invalid argument: %s", e.Op, e.Msg)
}

// NewInvalidArgument constructs an *InvalidArgument.
func NewInvalidArgument(op, msg string) *InvalidArgument {
	return &InvalidArgument{Op: op, Msg: msg}
}

// Decode is returned when a serialized node primitive cannot be decoded,
// e.g. an unknown prefix byte in a sparse-node primitive.
type Decode struct {
	Op          string
	OffendingByte byte
	Msg         string
}

func (e *Decode) Error() string {
	return fmt.Sprintf("%s: decode failure: %s (byte=0x%02x)", e.Op, e.Msg, e.OffendingByte)
}

// NewDecode constructs a *Decode.
func NewDecode(op, msg string, offendingByte byte) *Decode {
	return &Decode{Op: op, OffendingByte: offendingByte, Msg: msg}
}
