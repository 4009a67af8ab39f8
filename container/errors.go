package container

import "errors"

var (
	// ErrInvalidHeader is returned when the 8-byte header is missing or malformed
	ErrInvalidHeader = errors.New("invalid container header")

	// ErrLengthMismatch is returned when the payload is shorter than the header says
	ErrLengthMismatch = errors.New("payload length does not match header")

	// ErrPayloadTooLarge is returned when a payload does not fit the 32-bit length field
	ErrPayloadTooLarge = errors.New("payload too large for container")
)
