// Package dicom adapts the enhanced QOI codec to go-dicom pixel data.
// Every frame is encoded independently as interleaved 8-bit RGB.
package dicom

import (
	"errors"
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/cocosip/go-eqoi-codec/eqoi"
)

// ErrUnsupportedFrame is returned for frame layouts the codec cannot carry
var ErrUnsupportedFrame = errors.New("unsupported frame layout")

// FrameCodec encodes and decodes go-dicom pixel data frame by frame
type FrameCodec struct {
	defaultOrder eqoi.ChannelOrder
}

// NewFrameCodec creates a frame codec. DICOM stores color-by-pixel frames as
// R,G,B, so OrderRGB is the usual choice.
func NewFrameCodec(defaultOrder eqoi.ChannelOrder) *FrameCodec {
	return &FrameCodec{defaultOrder: defaultOrder}
}

// Name returns the codec name
func (c *FrameCodec) Name() string {
	return fmt.Sprintf("Enhanced QOI (%s)", c.defaultOrder)
}

// GetDefaultParameters returns the default codec parameters
func (c *FrameCodec) GetDefaultParameters() codec.Parameters {
	return eqoi.NewParameters().WithOrder(c.defaultOrder)
}

// checkFrameInfo accepts 3 samples per pixel, 8 bits allocated, interleaved
func checkFrameInfo(frameInfo *imagetypes.FrameInfo) error {
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}
	if int(frameInfo.SamplesPerPixel) != eqoi.BytesPerPixel {
		return fmt.Errorf("%w: %d samples per pixel, want 3", ErrUnsupportedFrame, frameInfo.SamplesPerPixel)
	}
	if int(frameInfo.BitsAllocated) != 8 {
		return fmt.Errorf("%w: %d bits allocated, want 8", ErrUnsupportedFrame, frameInfo.BitsAllocated)
	}
	if int(frameInfo.PlanarConfiguration) != 0 {
		return fmt.Errorf("%w: planar configuration %d, want 0", ErrUnsupportedFrame, frameInfo.PlanarConfiguration)
	}
	if frameInfo.Width == 0 || frameInfo.Height == 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrUnsupportedFrame, frameInfo.Width, frameInfo.Height)
	}
	return nil
}

// Encode encodes every frame of oldPixelData into newPixelData
func (c *FrameCodec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if err := checkFrameInfo(frameInfo); err != nil {
		return err
	}
	params, err := eqoi.ParametersFrom(parameters, c.defaultOrder)
	if err != nil {
		return err
	}

	width, height := int(frameInfo.Width), int(frameInfo.Height)
	encoder, err := eqoi.NewEncoder(width, height, params.Order)
	if err != nil {
		return err
	}

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		encoded, err := encoder.Encode(frameData)
		if err != nil {
			return fmt.Errorf("eqoi encode failed for frame %d: %w", frameIndex, err)
		}
		if err := newPixelData.AddFrame(encoded); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// Decode decodes every frame of oldPixelData into newPixelData.
// The stream carries no geometry, so the frame info must describe the image.
func (c *FrameCodec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if err := checkFrameInfo(frameInfo); err != nil {
		return err
	}
	params, err := eqoi.ParametersFrom(parameters, c.defaultOrder)
	if err != nil {
		return err
	}

	width, height := int(frameInfo.Width), int(frameInfo.Height)
	decoder, err := eqoi.NewDecoder(width, height, params.Order)
	if err != nil {
		return err
	}

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		pixelData := make([]byte, width*height*eqoi.BytesPerPixel)
		if err := decoder.DecodeInto(pixelData, frameData); err != nil {
			return fmt.Errorf("eqoi decode failed for frame %d: %w", frameIndex, err)
		}
		if err := newPixelData.AddFrame(pixelData); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}
