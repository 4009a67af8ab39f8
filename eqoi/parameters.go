package eqoi

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/codec"
)

// Ensure Parameters implements codec.Parameters
var _ codec.Parameters = (*Parameters)(nil)

// Parameters contains the options of the enhanced QOI codec
type Parameters struct {
	// Order is the channel order of raw pixel buffers
	// - OrderBGR: blue, green, red (default, what the reference model reads)
	// - OrderRGB: red, green, blue
	Order ChannelOrder

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewParameters creates a new Parameters with default values
func NewParameters() *Parameters {
	return &Parameters{
		Order:  OrderBGR,
		params: make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *Parameters) GetParameter(name string) interface{} {
	switch name {
	case "order":
		return p.Order.String()
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
// "order" accepts a ChannelOrder or one of the strings "bgr" / "rgb".
func (p *Parameters) SetParameter(name string, value interface{}) {
	switch name {
	case "order":
		switch v := value.(type) {
		case ChannelOrder:
			p.Order = v
		case string:
			if order, err := ParseChannelOrder(v); err == nil {
				p.Order = order
			} else {
				p.Order = -1 // rejected by Validate
			}
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate checks that the parameters are usable
func (p *Parameters) Validate() error {
	if p == nil {
		return nil
	}
	if !p.Order.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, int(p.Order))
	}
	return nil
}

// WithOrder sets the channel order and returns the parameters for chaining
func (p *Parameters) WithOrder(order ChannelOrder) *Parameters {
	p.Order = order
	return p
}

// ParametersFrom builds typed parameters from any codec.Parameters value.
// nil yields the defaults with the given fallback order.
func ParametersFrom(parameters codec.Parameters, fallback ChannelOrder) (*Parameters, error) {
	params := NewParameters().WithOrder(fallback)
	if typed, ok := parameters.(*Parameters); ok {
		if typed == nil {
			return params, nil
		}
		return typed, typed.Validate()
	}
	if parameters != nil {
		if v := parameters.GetParameter("order"); v != nil {
			params.SetParameter("order", v)
		}
	}
	return params, params.Validate()
}
