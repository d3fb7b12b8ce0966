package lexengine

import "fmt"

// InternalError signals one of the two conditions spec §7 calls fatal to
// the parser: popping an empty group/AST/offset stack, or advancing the
// scanner while no group is active. Both indicate a bug in this package,
// never malformed input — malformed input is always represented as an AST
// node (Unrecognized, InvalidIdentifier, UnclosedGroup, ...), never as an
// error return. Actions raise InternalError by panicking with it, the same
// way pattern.Range panics on a programmer error (lo > hi) instead of
// returning one; Run recovers the panic at the top level and turns it back
// into a returned error so callers never need a recover of their own.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("lexengine: internal error: %s", e.Reason)
}
