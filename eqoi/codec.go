package eqoi

import (
	"fmt"

	"github.com/cocosip/go-eqoi-codec/codec"
)

var _ codec.Codec = (*Codec)(nil)

// Codec implements the codec.Codec interface for enhanced QOI
type Codec struct {
	order ChannelOrder
}

// NewCodec creates a new enhanced QOI codec for the given raw channel order
func NewCodec(order ChannelOrder) *Codec {
	return &Codec{order: order}
}

// Encode encodes 8-bit, 3-component pixel data
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if err := params.ValidateGeometry(BytesPerPixel, 8); err != nil {
		return nil, fmt.Errorf("eqoi: %w (%dx%d, %d components, %d-bit)",
			err, params.Width, params.Height, params.Components, params.BitDepth)
	}
	return EncodeWithParameters(params.PixelData, params.Width, params.Height, c.parameters(params.Options))
}

// Decode decodes an enhanced QOI stream
func (c *Codec) Decode(params codec.DecodeParams) (*codec.DecodeResult, error) {
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, err
		}
	}
	decoder, err := newDecoderWithParameters(params.Width, params.Height, c.parameters(params.Options))
	if err != nil {
		return nil, err
	}
	pixelData := make([]byte, params.Width*params.Height*BytesPerPixel)
	if err := decoder.DecodeInto(pixelData, params.Data); err != nil {
		return nil, err
	}

	return &codec.DecodeResult{
		PixelData:  pixelData,
		Width:      params.Width,
		Height:     params.Height,
		Components: BytesPerPixel,
		BitDepth:   8,
		BytesRead:  decoder.BytesRead(),
	}, nil
}

// parameters picks typed options when given, the codec's order otherwise
func (c *Codec) parameters(options codec.Options) *Parameters {
	if p, ok := options.(*Parameters); ok && p != nil {
		return p
	}
	return NewParameters().WithOrder(c.order)
}

// ID returns the registry identifier
func (c *Codec) ID() string {
	if c.order == OrderRGB {
		return "eqoi-rgb"
	}
	return "eqoi"
}

// Name returns a human-readable name for this codec
func (c *Codec) Name() string {
	if c.order == OrderRGB {
		return "enhanced-qoi-rgb"
	}
	return "enhanced-qoi"
}

// RegisterCodec registers an enhanced QOI codec in the global registry
func RegisterCodec(order ChannelOrder) {
	codec.Register(NewCodec(order))
}

func init() {
	RegisterCodec(OrderBGR)
	RegisterCodec(OrderRGB)
}
