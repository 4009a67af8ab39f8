// Package container frames enhanced QOI streams for storage: an 8-byte header
// carrying the geometry and payload length, an optional zstd wrapper, and a
// hex dump for HDL testbenches.
package container

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// HeaderSize is the size of the encoded header in bytes
const HeaderSize = 8

// Header describes one framed stream. All fields are little-endian on disk.
type Header struct {
	Width      uint16
	Height     uint16
	EncodedLen uint32
}

// NewHeader builds a header for a width x height image and its opcode stream
func NewHeader(width, height int, payload []byte) (Header, error) {
	if width <= 0 || height <= 0 || width > math.MaxUint16 || height > math.MaxUint16 {
		return Header{}, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, width, height)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}
	return Header{
		Width:      uint16(width),
		Height:     uint16(height),
		EncodedLen: uint32(len(payload)),
	}, nil
}

// MarshalBinary encodes the header into its 8-byte form
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint16(buf[0:], h.Width)
	binary.LittleEndian.PutUint16(buf[2:], h.Height)
	binary.LittleEndian.PutUint32(buf[4:], h.EncodedLen)
	return buf, nil
}

// UnmarshalBinary decodes the 8-byte form
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrInvalidHeader, len(data), HeaderSize)
	}
	h.Width = binary.LittleEndian.Uint16(data[0:])
	h.Height = binary.LittleEndian.Uint16(data[2:])
	h.EncodedLen = binary.LittleEndian.Uint32(data[4:])
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, h.Width, h.Height)
	}
	return nil
}

// Pixels returns width*height
func (h Header) Pixels() int {
	return int(h.Width) * int(h.Height)
}

// Write writes the header followed by the payload.
// header.EncodedLen must equal len(payload).
func Write(w io.Writer, header Header, payload []byte) error {
	if int64(header.EncodedLen) != int64(len(payload)) {
		return fmt.Errorf("%w: header says %d, payload has %d", ErrLengthMismatch, header.EncodedLen, len(payload))
	}
	buf, _ := header.MarshalBinary()
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// Read reads a header and exactly EncodedLen payload bytes
func Read(r io.Reader) (Header, []byte, error) {
	var header Header
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return header, nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if err := header.UnmarshalBinary(buf); err != nil {
		return header, nil, err
	}

	payload := make([]byte, header.EncodedLen)
	if n, err := io.ReadFull(r, payload); err != nil {
		return header, nil, fmt.Errorf("%w: read %d of %d bytes: %v", ErrLengthMismatch, n, header.EncodedLen, err)
	}
	return header, payload, nil
}
