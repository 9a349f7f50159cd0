package color

import "math"

// Float is the set of sample types the transfer functions accept.
type Float interface {
	~float32 | ~float64
}

// Breakpoints of the piecewise sRGB transfer curve.
const (
	srgbDecodeThreshold = 0.04045
	srgbEncodeThreshold = 0.0031308
)

// SRGBToLinear decodes one sRGB-encoded sample to linear light.
// Values outside [0, 1] are not clamped.
func SRGBToLinear[F Float](s F) F {
	if s < srgbDecodeThreshold {
		return s / 12.92
	}
	return F(math.Pow((float64(s)+0.055)/1.055, 2.4))
}

// LinearToSRGB encodes one linear-light sample with the sRGB curve.
// Values outside [0, 1] are not clamped.
func LinearToSRGB[F Float](l F) F {
	if l < srgbEncodeThreshold {
		return l * 12.92
	}
	return F(1.055*math.Pow(float64(l), 1/2.4) - 0.055)
}
