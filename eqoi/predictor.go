package eqoi

import "fmt"

// MED (Median Edge Detection) predictor, the LOCO-I rule also used by JPEG-LS.
// It picks the smaller neighbour on a rising edge, the larger one on a falling
// edge and the planar estimate a + b - c otherwise.

// Predict computes the MED prediction for one channel
// a = left pixel (West)
// b = top pixel (North)
// c = top-left pixel (North-West)
func Predict(a, b, c uint8) uint8 {
	if c >= max(a, b) {
		return min(a, b)
	}
	if c <= min(a, b) {
		return max(a, b)
	}
	return a + b - c
}

// Predictor is a streaming MED predictor over a raster-ordered image.
// It keeps a single line of history, matching the line buffer of the hardware.
type Predictor struct {
	width    int
	line     []Pixel // pixels of the previous row, overwritten as the current row advances
	prev     Pixel   // pixel at the previous raster position (a)
	column   int     // column of the next pixel passed to Advance
	firstRow bool
	current  Pixel // prediction for the next pixel
}

// NewPredictor creates a predictor for rows of the given width
func NewPredictor(width int) (*Predictor, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width %d", ErrPredictorInit, width)
	}
	p := &Predictor{
		width: width,
		line:  make([]Pixel, width),
	}
	p.Reset()
	return p, nil
}

// Reset returns the predictor to the first pixel of the image.
// The row buffer is not cleared; every entry is written before it is read.
func (p *Predictor) Reset() {
	p.prev = Pixel{}
	p.column = 0
	p.firstRow = true
	p.current = Pixel{}
}

// Current returns the prediction for the pixel about to be processed
func (p *Predictor) Current() Pixel {
	return p.current
}

// Advance records the true pixel of the current position and returns the
// prediction for the next raster position.
func (p *Predictor) Advance(px Pixel) Pixel {
	last := p.width - 1

	// update the line buffer
	if p.column > 0 {
		p.line[p.column-1] = p.prev
	}
	if p.column == last {
		p.line[p.column] = px
	}
	p.prev = px
	if p.column == last {
		p.column = 0
		p.firstRow = false
	} else {
		p.column++
	}

	switch {
	case p.firstRow:
		// row 0: left neighbour only
		p.current = p.prev
	case p.column == 0:
		// column 0: pixel above
		p.current = p.line[0]
	default:
		a := p.prev
		b := p.line[p.column]
		c := p.line[p.column-1]
		p.current = Pixel{
			R: Predict(a.R, b.R, c.R),
			G: Predict(a.G, b.G, c.G),
			B: Predict(a.B, b.B, c.B),
		}
	}
	return p.current
}
