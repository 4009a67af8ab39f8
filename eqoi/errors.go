package eqoi

import "errors"

// Codec errors
var (
	ErrPredictorInit     = errors.New("predictor initialization failed")
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrInvalidPixelData  = errors.New("invalid pixel data length")
	ErrInvalidOrder      = errors.New("invalid channel order")
	ErrBufferTooSmall    = errors.New("buffer too small")
	ErrTruncated         = errors.New("truncated eqoi stream")
)
