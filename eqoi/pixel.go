package eqoi

import "fmt"

// BytesPerPixel is the stride of one pixel in raw pixel buffers
const BytesPerPixel = 3

// MaxDimension is the largest width or height the stream framing can describe
const MaxDimension = 0xffff

// Pixel is a single 8-bit-per-channel RGB sample.
// All channel arithmetic wraps modulo 256, as the hardware registers do.
type Pixel struct {
	R, G, B uint8
}

// hash returns the recent-color cache slot for the pixel
func (p Pixel) hash() uint8 {
	return (p.R + p.G + p.B) % CacheSize
}

// add applies per-channel deltas (modulo 256)
func (p Pixel) add(dr, dg, db uint8) Pixel {
	return Pixel{R: p.R + dr, G: p.G + dg, B: p.B + db}
}

// sub returns the per-channel deltas p - q (modulo 256)
func (p Pixel) sub(q Pixel) (uint8, uint8, uint8) {
	return p.R - q.R, p.G - q.G, p.B - q.B
}

func (p Pixel) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.R, p.G, p.B)
}

// ChannelOrder is the byte order of the three channels inside a raw pixel buffer
type ChannelOrder int

const (
	// OrderBGR stores blue, green, red. This is the order the reference hardware model reads.
	OrderBGR ChannelOrder = iota
	// OrderRGB stores red, green, blue.
	OrderRGB
)

// String returns the lower-case name of the order
func (o ChannelOrder) String() string {
	switch o {
	case OrderBGR:
		return "bgr"
	case OrderRGB:
		return "rgb"
	default:
		return fmt.Sprintf("ChannelOrder(%d)", int(o))
	}
}

// ParseChannelOrder parses "bgr" or "rgb"
func ParseChannelOrder(s string) (ChannelOrder, error) {
	switch s {
	case "bgr", "BGR":
		return OrderBGR, nil
	case "rgb", "RGB":
		return OrderRGB, nil
	default:
		return OrderBGR, fmt.Errorf("%w: unknown channel order %q", ErrInvalidOrder, s)
	}
}

func (o ChannelOrder) valid() bool {
	return o == OrderBGR || o == OrderRGB
}

// load reads the pixel at index i of a raw buffer
func (o ChannelOrder) load(buf []byte, i int) Pixel {
	off := i * BytesPerPixel
	if o == OrderRGB {
		return Pixel{R: buf[off], G: buf[off+1], B: buf[off+2]}
	}
	return Pixel{R: buf[off+2], G: buf[off+1], B: buf[off]}
}

// store writes the pixel at index i of a raw buffer
func (o ChannelOrder) store(buf []byte, i int, p Pixel) {
	off := i * BytesPerPixel
	if o == OrderRGB {
		buf[off], buf[off+1], buf[off+2] = p.R, p.G, p.B
		return
	}
	buf[off], buf[off+1], buf[off+2] = p.B, p.G, p.R
}

// validateDimensions checks width and height against the framing limits
func validateDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}
