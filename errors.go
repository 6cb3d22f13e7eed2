package packer

import "errors"

var (
	// ErrInvalidRead indicates that an input is too short to hold what must be read from it, such as a ciphertext shorter than its nonce.
	ErrInvalidRead = errors.New("packer: input too short to read")

	// ErrUnsupportedType indicates that a value's type has no serializable
	// shape: a pointer, channel, function, or a struct with unexported
	// fields and no self-describing hooks. This is a programmer-misuse
	// condition, not a data-dependent decode failure, so it panics at
	// classification time rather than surfacing as a soft zero value.
	ErrUnsupportedType = errors.New("packer: type has no serializable representation")
)
