package eqoi

import "fmt"

// Encoder represents an enhanced QOI encoder.
// An Encoder may be reused for several images of the same size, but not concurrently.
type Encoder struct {
	width  int
	height int
	order  ChannelOrder

	predictor *Predictor
	cache     ColorCache
	stats     Stats
}

// NewEncoder creates a new encoder for width x height images
func NewEncoder(width, height int, order ChannelOrder) (*Encoder, error) {
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
	return &Encoder{
		width:     width,
		height:    height,
		order:     order,
		predictor: predictor,
	}, nil
}

// Encode encodes BGR pixel data
// pixelData: width*height pixels, 3 bytes each, blue first
// Returns: the opcode stream, without any header
func Encode(pixelData []byte, width, height int) ([]byte, error) {
	return EncodeWithParameters(pixelData, width, height, nil)
}

// EncodeWithParameters encodes pixel data using the channel order from params (nil = BGR)
func EncodeWithParameters(pixelData []byte, width, height int, params *Parameters) ([]byte, error) {
	order := OrderBGR
	if params != nil {
		if err := params.Validate(); err != nil {
			return nil, err
		}
		order = params.Order
	}
	encoder, err := NewEncoder(width, height, order)
	if err != nil {
		return nil, err
	}
	return encoder.Encode(pixelData)
}

// Stats returns the statistics of the last Encode call
func (enc *Encoder) Stats() Stats {
	return enc.stats
}

// Encode encodes one image. State from earlier calls is discarded.
func (enc *Encoder) Encode(pixelData []byte) ([]byte, error) {
	n := enc.width * enc.height
	if len(pixelData) != n*BytesPerPixel {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%d",
			ErrInvalidPixelData, len(pixelData), n*BytesPerPixel, enc.width, enc.height)
	}

	enc.reset()
	enc.stats.Pixels = n

	// worst case is one RGB opcode (4 bytes) per pixel
	out := make([]byte, 0, n*4)
	prev := Pixel{}
	run := 0
	predicted := enc.predictor.Current()

	for i := 0; i < n; i++ {
		px := enc.order.load(pixelData, i)

		if px == prev {
			run++
			if run == MaxRun || i == n-1 {
				out = enc.appendRun(out, run)
				run = 0
			}
		} else {
			if run > 0 {
				out = enc.appendRun(out, run)
				run = 0
			}

			if slot, hit := enc.cache.Lookup(px); hit {
				out = append(out, OpIndex|slot)
				enc.stats.record(TagIndex)
			} else {
				var tag Tag
				out, tag = appendDelta(out, px, predicted)
				enc.stats.record(tag)
			}
			enc.cache.Insert(px)
		}

		prev = px
		predicted = enc.predictor.Advance(px)
	}

	return out, nil
}

// reset restores the per-image state
func (enc *Encoder) reset() {
	enc.cache.Reset()
	enc.predictor.Reset()
	enc.stats = Stats{}
}

// appendRun writes a RUN opcode for run (1..MaxRun) repeats
func (enc *Encoder) appendRun(out []byte, run int) []byte {
	enc.stats.record(TagRun)
	enc.stats.RunLen += run
	return append(out, OpRun|byte(run-1))
}

// appendDelta writes the narrowest opcode that carries px relative to the
// prediction: DIFF, DIFF3, LUMA, DIFF2, then the RGB literal.
func appendDelta(out []byte, px, predicted Pixel) ([]byte, Tag) {
	vr, vg, vb := px.sub(predicted)
	vgr := vr - vg
	vgb := vb - vg

	switch {
	case fits(vr, 2) && fits(vg, 2) && fits(vb, 2):
		// 2'b01 vr[1:0] vg[1:0] vb[1:0]
		return append(out, OpDiff|(vr&0x03)<<4|(vg&0x03)<<2|vb&0x03), TagDiff

	case fits(vr, 4) && fits(vg, 5) && fits(vb, 4):
		// 3'b001 vg[4:0] | vr[3:0] vb[3:0]
		return append(out,
			OpDiff3|vg&0x1f,
			(vr&0x0f)<<4|vb&0x0f,
		), TagDiff3

	case fits(vgr, 4) && fits(vgb, 4) && fits(vg, 6):
		// 2'b10 vg[5:0] | vgr[3:0] vgb[3:0]
		return append(out,
			OpLuma|vg&0x3f,
			(vgr&0x0f)<<4|vgb&0x0f,
		), TagLuma

	case fits(vr, 7) && fits(vg, 7) && fits(vb, 7):
		vr &= 0x7f
		vg &= 0x7f
		vb &= 0x7f
		// 3'b110 vr[4:0] | vg[5:0] vr[6:5] | vb[6:0] vg[6]
		return append(out,
			OpDiff2|vr&0x1f,
			vr>>5|(vg&0x3f)<<2,
			(vg&0x40)>>6|vb<<1,
		), TagDiff2

	default:
		return append(out, OpRGB, px.R, px.G, px.B), TagRGB
	}
}
