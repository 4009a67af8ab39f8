package codec

// Codec is the universal interface for all image codecs
type Codec interface {
	// Encode encodes pixel data
	Encode(params EncodeParams) ([]byte, error)

	// Decode decodes compressed data
	Decode(params DecodeParams) (*DecodeResult, error)

	// ID returns the short unique identifier used for registry lookups
	ID() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData  []byte  // Raw pixel data
	Width      int     // Image width
	Height     int     // Image height
	Components int     // Number of color components (3=RGB)
	BitDepth   int     // Bits per sample (8)
	Options    Options // Codec-specific options
}

// DecodeParams contains parameters for decoding.
// The compressed stream carries no header, so the caller supplies the geometry.
type DecodeParams struct {
	Data    []byte  // Compressed data
	Width   int     // Image width
	Height  int     // Image height
	Options Options // Codec-specific options
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	PixelData  []byte // Decoded pixel data
	Width      int    // Image width
	Height     int    // Image height
	Components int    // Number of color components
	BitDepth   int    // Bits per sample
	BytesRead  int    // Compressed bytes consumed
}

// ValidateGeometry checks the common encode parameters shared by all codecs
func (p EncodeParams) ValidateGeometry(components, bitDepth int) error {
	if p.Width <= 0 || p.Height <= 0 {
		return ErrInvalidParameter
	}
	if p.Components != components || p.BitDepth != bitDepth {
		return ErrUnsupportedFormat
	}
	if p.Options != nil {
		return p.Options.Validate()
	}
	return nil
}
