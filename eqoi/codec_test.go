package eqoi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cocosip/go-eqoi-codec/codec"
)

func TestCodecRegistered(t *testing.T) {
	tests := []struct {
		key       string
		wantID    string
		wantOrder ChannelOrder
	}{
		{"eqoi", "eqoi", OrderBGR},
		{"enhanced-qoi", "eqoi", OrderBGR},
		{"eqoi-rgb", "eqoi-rgb", OrderRGB},
		{"enhanced-qoi-rgb", "eqoi-rgb", OrderRGB},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, err := codec.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", tt.key, err)
			}
			if c.ID() != tt.wantID {
				t.Errorf("Get(%q).ID() = %q, want %q", tt.key, c.ID(), tt.wantID)
			}
			eqoiCodec, ok := c.(*Codec)
			if !ok {
				t.Fatalf("Get(%q) returned %T, want *Codec", tt.key, c)
			}
			if eqoiCodec.order != tt.wantOrder {
				t.Errorf("Get(%q) order = %v, want %v", tt.key, eqoiCodec.order, tt.wantOrder)
			}
		})
	}
}

func TestCodecEncodeDecode(t *testing.T) {
	width, height := 40, 30
	pixelData := makeTestImage(width, height)

	c := NewCodec(OrderRGB)
	encoded, err := c.Encode(codec.EncodeParams{
		PixelData:  pixelData,
		Width:      width,
		Height:     height,
		Components: 3,
		BitDepth:   8,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	t.Logf("Compressed size: %d bytes (ratio %.3f)", len(encoded), float64(len(encoded))/float64(len(pixelData)))

	direct, err := EncodeWithParameters(pixelData, width, height, NewParameters().WithOrder(OrderRGB))
	if err != nil {
		t.Fatalf("EncodeWithParameters failed: %v", err)
	}
	if !bytes.Equal(encoded, direct) {
		t.Error("codec output differs from EncodeWithParameters")
	}

	result, err := c.Decode(codec.DecodeParams{Data: encoded, Width: width, Height: height})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Width != width || result.Height != height {
		t.Errorf("Decoded size = %dx%d, want %dx%d", result.Width, result.Height, width, height)
	}
	if result.Components != 3 || result.BitDepth != 8 {
		t.Errorf("Decoded format = %d components %d-bit, want 3 components 8-bit", result.Components, result.BitDepth)
	}
	if result.BytesRead != len(encoded) {
		t.Errorf("BytesRead = %d, want %d", result.BytesRead, len(encoded))
	}
	if !bytes.Equal(result.PixelData, pixelData) {
		t.Error("Decoded pixels differ from the original")
	}
}

func TestCodecOptionsOverrideOrder(t *testing.T) {
	pixelData := rgbBytes(Pixel{100, 20, 30})
	c := NewCodec(OrderBGR)

	encoded, err := c.Encode(codec.EncodeParams{
		PixelData:  pixelData,
		Width:      1,
		Height:     1,
		Components: 3,
		BitDepth:   8,
		Options:    NewParameters().WithOrder(OrderRGB),
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if want := []byte{0xff, 100, 20, 30}; !bytes.Equal(encoded, want) {
		t.Errorf("Encode = % x, want % x", encoded, want)
	}
}

func TestCodecRejectsUnsupportedFormat(t *testing.T) {
	c := NewCodec(OrderBGR)
	tests := []struct {
		name    string
		params  codec.EncodeParams
		wantErr error
	}{
		{"grayscale", codec.EncodeParams{PixelData: make([]byte, 4), Width: 2, Height: 2, Components: 1, BitDepth: 8}, codec.ErrUnsupportedFormat},
		{"16-bit", codec.EncodeParams{PixelData: make([]byte, 24), Width: 2, Height: 2, Components: 3, BitDepth: 16}, codec.ErrUnsupportedFormat},
		{"zero width", codec.EncodeParams{Width: 0, Height: 2, Components: 3, BitDepth: 8}, codec.ErrInvalidParameter},
		{"short buffer", codec.EncodeParams{PixelData: make([]byte, 11), Width: 2, Height: 2, Components: 3, BitDepth: 8}, ErrInvalidPixelData},
		{"bad order", codec.EncodeParams{PixelData: make([]byte, 12), Width: 2, Height: 2, Components: 3, BitDepth: 8,
			Options: NewParameters().WithOrder(ChannelOrder(7))}, ErrInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Encode(tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Encode error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
