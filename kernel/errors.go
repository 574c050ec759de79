package kernel

import "errors"

// Kernel operations fail in exactly two ways: the size relationships
// among ndf, undf, and the supplied slices are malformed, or a dof map
// entry addresses a position outside the global buffer. Callers match
// with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIndexOutOfRange = errors.New("index out of range")
)
