package eqoi

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestDecodeOpcodes(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		width int
		want  []Pixel
	}{
		{"RGB", []byte{0xff, 10, 20, 30}, 1, []Pixel{{10, 20, 30}}},
		{"DIFF2 from zero prediction", []byte{0xca, 0x50, 0x3c}, 1, []Pixel{{10, 20, 30}}},
		{"leading RUN repeats black", []byte{0xe2}, 3, []Pixel{{}, {}, {}}},
		{"DIFF wraps below zero", []byte{0x6a}, 1, []Pixel{{254, 254, 254}}},
		{"LUMA", []byte{0xff, 128, 128, 128, 0x9f, 0x79}, 2, []Pixel{{128, 128, 128}, {166, 159, 152}}},
		{"DIFF3", []byte{0xff, 128, 128, 128, 0x30, 0x87}, 2, []Pixel{{128, 128, 128}, {120, 112, 135}}},
		{"INDEX", []byte{0xff, 10, 200, 30, 0xff, 90, 20, 150, 0x10}, 3, []Pixel{{10, 200, 30}, {90, 20, 150}, {10, 200, 30}}},
		{"INDEX of empty slot", []byte{0x07}, 1, []Pixel{{}}},
		{"RUN after literal", []byte{0xff, 5, 6, 7, 0xe1}, 3, []Pixel{{5, 6, 7}, {5, 6, 7}, {5, 6, 7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeWithParameters(tt.data, tt.width, 1, NewParameters().WithOrder(OrderRGB))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if want := rgbBytes(tt.want...); !bytes.Equal(decoded, want) {
				t.Errorf("Decode(% x) = %v, want %v", tt.data, decoded, want)
			}
		})
	}
}

func TestDecodeWritesBGR(t *testing.T) {
	decoded, err := Decode([]byte{0xff, 10, 20, 30}, 1, 1)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if want := []byte{30, 20, 10}; !bytes.Equal(decoded, want) {
		t.Errorf("Decode = %v, want %v", decoded, want)
	}
}

func TestDecodeTruncated(t *testing.T) {
	pixelData := makeTestImage(16, 8)
	encoded, err := Encode(pixelData, 16, 8)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// every byte of a valid stream is needed
	for _, cut := range []int{0, 1, len(encoded) / 2, len(encoded) - 1} {
		_, err := Decode(encoded[:cut], 16, 8)
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("Decode of %d/%d bytes error = %v, want %v", cut, len(encoded), err, ErrTruncated)
		}
	}

	// an opcode cut in the middle
	if _, err := Decode([]byte{0xff, 1, 2}, 1, 1); !errors.Is(err, ErrTruncated) {
		t.Errorf("Decode of partial RGB error = %v, want %v", err, ErrTruncated)
	}
	if _, err := Decode([]byte{0xc0, 0x00}, 1, 1); !errors.Is(err, ErrTruncated) {
		t.Errorf("Decode of partial DIFF2 error = %v, want %v", err, ErrTruncated)
	}
}

func TestDecodeInto(t *testing.T) {
	pixelData := makeTestImage(9, 7)
	encoded, err := Encode(pixelData, 9, 7)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	dst := make([]byte, len(pixelData))
	if err := DecodeInto(dst, encoded, 9, 7); err != nil {
		t.Fatalf("DecodeInto failed: %v", err)
	}
	if !bytes.Equal(dst, pixelData) {
		t.Error("DecodeInto did not reproduce the image")
	}

	if err := DecodeInto(dst[:len(dst)-1], encoded, 9, 7); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("DecodeInto with short buffer error = %v, want %v", err, ErrBufferTooSmall)
	}
	if err := DecodeInto(dst, encoded, 0, 7); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("DecodeInto with zero width error = %v, want %v", err, ErrInvalidDimensions)
	}
}

func TestDecoderBytesReadAndStats(t *testing.T) {
	pixelData := makeTestImage(20, 20)
	encoder, err := NewEncoder(20, 20, OrderBGR)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	encoded, err := encoder.Encode(pixelData)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoder, err := NewDecoder(20, 20, OrderBGR)
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}
	// trailing bytes belong to the caller's framing and are left alone
	withTrailer := append(append([]byte{}, encoded...), 0xaa, 0xbb)
	dst := make([]byte, len(pixelData))
	if err := decoder.DecodeInto(dst, withTrailer); err != nil {
		t.Fatalf("DecodeInto failed: %v", err)
	}
	if decoder.BytesRead() != len(encoded) {
		t.Errorf("BytesRead = %d, want %d", decoder.BytesRead(), len(encoded))
	}
	if decoder.Stats() != encoder.Stats() {
		t.Errorf("decoder stats %v differ from encoder stats %v", decoder.Stats(), encoder.Stats())
	}
}

// TestDecodeArbitraryBytes feeds random streams to the decoder; it must either
// succeed or report an error, never read out of range.
func TestDecodeArbitraryBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		data := make([]byte, rng.Intn(64))
		rng.Read(data)
		width, height := rng.Intn(8)+1, rng.Intn(8)+1

		decoded, err := Decode(data, width, height)
		if err != nil {
			if !errors.Is(err, ErrTruncated) {
				t.Fatalf("unexpected error: %v", err)
			}
			continue
		}
		if len(decoded) != width*height*BytesPerPixel {
			t.Fatalf("decoded %d bytes, want %d", len(decoded), width*height*BytesPerPixel)
		}
	}
}
