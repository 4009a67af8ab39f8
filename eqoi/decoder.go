package eqoi

import "fmt"

// Decoder represents an enhanced QOI decoder.
// A Decoder may be reused for several images of the same size, but not concurrently.
type Decoder struct {
	width  int
	height int
	order  ChannelOrder

	predictor *Predictor
	cache     ColorCache
	stats     Stats
	pos       int // read offset in the stream
}

// NewDecoder creates a new decoder for width x height images
func NewDecoder(width, height int, order ChannelOrder) (*Decoder, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	if !order.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, int(order))
	}
	predictor, err := NewPredictor(width)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		width:     width,
		height:    height,
		order:     order,
		predictor: predictor,
	}, nil
}

// Decode decodes an opcode stream into BGR pixel data
// Returns: width*height*3 bytes, blue first
func Decode(data []byte, width, height int) ([]byte, error) {
	return DecodeWithParameters(data, width, height, nil)
}

// DecodeWithParameters decodes using the channel order from params (nil = BGR)
func DecodeWithParameters(data []byte, width, height int, params *Parameters) ([]byte, error) {
	decoder, err := newDecoderWithParameters(width, height, params)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, width*height*BytesPerPixel)
	if err := decoder.DecodeInto(dst, data); err != nil {
		return nil, err
	}
	return dst, nil
}

// DecodeInto decodes BGR pixel data into a caller-provided buffer of at least width*height*3 bytes
func DecodeInto(dst, data []byte, width, height int) error {
	decoder, err := NewDecoder(width, height, OrderBGR)
	if err != nil {
		return err
	}
	return decoder.DecodeInto(dst, data)
}

func newDecoderWithParameters(width, height int, params *Parameters) (*Decoder, error) {
	order := OrderBGR
	if params != nil {
		if err := params.Validate(); err != nil {
			return nil, err
		}
		order = params.Order
	}
	return NewDecoder(width, height, order)
}

// Stats returns the statistics of the last decode
func (dec *Decoder) Stats() Stats {
	return dec.stats
}

// BytesRead returns how many stream bytes the last decode consumed
func (dec *Decoder) BytesRead() int {
	return dec.pos
}

// DecodeInto decodes one image into dst. State from earlier calls is discarded.
// On error dst may hold a partially decoded image and must not be used.
func (dec *Decoder) DecodeInto(dst, data []byte) error {
	n := dec.width * dec.height
	if len(dst) < n*BytesPerPixel {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferTooSmall, len(dst), n*BytesPerPixel)
	}

	dec.reset()
	dec.stats.Pixels = n

	px := Pixel{}
	run := 0
	predicted := dec.predictor.Current()

	for i := 0; i < n; i++ {
		if run > 0 {
			run--
			dec.stats.RunLen++
		} else {
			if dec.pos >= len(data) {
				return fmt.Errorf("%w: stream ended at byte %d, pixel %d of %d", ErrTruncated, dec.pos, i, n)
			}
			b1 := data[dec.pos]
			tag := Classify(b1)
			if dec.pos+tag.Len() > len(data) {
				return fmt.Errorf("%w: %s opcode at byte %d needs %d bytes, %d left",
					ErrTruncated, tag, dec.pos, tag.Len(), len(data)-dec.pos)
			}
			op := data[dec.pos : dec.pos+tag.Len()]

			switch tag {
			case TagDiff2:
				vr := b1&0x1f | (op[1]&0x03)<<5
				vg := op[1]>>2 | (op[2]&0x01)<<6
				vb := op[2] >> 1
				px = predicted.add(signExtend(vr, 7), signExtend(vg, 7), signExtend(vb, 7))

			case TagRGB:
				px = Pixel{R: op[1], G: op[2], B: op[3]}

			case TagRun:
				// this position is the first repeat
				run = int(b1 & 0x1f)
				dec.stats.RunLen++

			case TagIndex:
				px = dec.cache.At(b1)

			case TagDiff3:
				vr := signExtend(op[1]>>4, 4)
				vg := signExtend(b1&0x1f, 5)
				vb := signExtend(op[1]&0x0f, 4)
				px = predicted.add(vr, vg, vb)

			case TagDiff:
				vr := signExtend(b1>>4&0x03, 2)
				vg := signExtend(b1>>2&0x03, 2)
				vb := signExtend(b1&0x03, 2)
				px = predicted.add(vr, vg, vb)

			case TagLuma:
				vg := signExtend(b1&0x3f, 6)
				vgr := signExtend(op[1]>>4, 4)
				vgb := signExtend(op[1]&0x0f, 4)
				px = predicted.add(vg+vgr, vg, vg+vgb)
			}

			if tag != TagRun {
				dec.cache.Insert(px)
			}
			dec.stats.record(tag)
			dec.pos += tag.Len()
		}

		dec.order.store(dst, i, px)
		predicted = dec.predictor.Advance(px)
	}

	return nil
}

// reset restores the per-image state
func (dec *Decoder) reset() {
	dec.cache.Reset()
	dec.predictor.Reset()
	dec.stats = Stats{}
	dec.pos = 0
}
