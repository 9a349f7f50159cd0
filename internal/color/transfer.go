package color

import "fmt"

// Transfer identifies how samples in a file are encoded.
type Transfer int

const (
	// Linear samples are proportional to light intensity.
	Linear Transfer = iota
	// SRGB samples are display-encoded with the sRGB curve.
	SRGB
)

// ParseTransfer converts a transfer name to a Transfer constant.
func ParseTransfer(s string) (Transfer, error) {
	switch s {
	case "linear":
		return Linear, nil
	case "srgb":
		return SRGB, nil
	default:
		return 0, fmt.Errorf("unknown transfer function: %q", s)
	}
}

func (t Transfer) String() string {
	switch t {
	case Linear:
		return "linear"
	case SRGB:
		return "srgb"
	default:
		return fmt.Sprintf("Transfer(%d)", int(t))
	}
}

// ToLinear converts buf, stored with transfer t, to linear light in place.
func (t Transfer) ToLinear(buf []float32, workers int) {
	if t == SRGB {
		ConvertBufferN(buf, Decode, workers)
	}
}

// FromLinear converts linear buf to transfer t in place.
func (t Transfer) FromLinear(buf []float32, workers int) {
	if t == SRGB {
		ConvertBufferN(buf, Encode, workers)
	}
}
