package imageio

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
)

// Output writes one image to a file. Create it with Create, then call Open,
// WriteImage and Close in that order.
type Output struct {
	path   string
	pfm    bool
	exr    bool
	format imaging.Format
	spec   Spec
	file   *os.File
}

// Create returns an Output for path, or nil if no codec can write files with
// that extension.
func Create(path string) *Output {
	if isEXR(path) {
		return &Output{path: path, exr: true}
	}
	if isPFM(path) {
		return &Output{path: path, pfm: true}
	}
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return nil
	}
	return &Output{path: path, format: f}
}

// Linear reports whether the output container stores linear float data
// natively.
func (out *Output) Linear() bool {
	return out.pfm || out.exr
}

// Open creates the file and records the spec of the image to be written.
// Integer containers store spec.Format samples (UInt8 or UInt16); OpenEXR and
// float map containers always store float32.
func (out *Output) Open(spec Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	switch {
	case out.exr:
		if spec.Channels > 4 {
			return fmt.Errorf("%w: %d channels", ErrInvalidSpec, spec.Channels)
		}
		spec.Format = Float32
	case out.pfm:
		if spec.Channels == 2 {
			return fmt.Errorf("%w: float map cannot store %d channels", ErrInvalidSpec, spec.Channels)
		}
		spec.Format = Float32
	default:
		if spec.Channels > 4 {
			return fmt.Errorf("%w: %d channels", ErrInvalidSpec, spec.Channels)
		}
		if spec.Format != UInt16 {
			spec.Format = UInt8
		}
	}

	f, err := os.Create(out.path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", out.path, err)
	}
	out.file = f
	out.spec = spec
	return nil
}

// WriteImage encodes pixels, which must hold spec.Samples() floats.
func (out *Output) WriteImage(pixels []float32) error {
	if out.file == nil {
		return fmt.Errorf("imageio: %s is not open", out.path)
	}
	if len(pixels) != out.spec.Samples() {
		return fmt.Errorf("%w: expected %d samples, got %d", ErrInvalidSpec, out.spec.Samples(), len(pixels))
	}
	var err error
	switch {
	case out.exr:
		err = encodeEXR(out.file, out.spec, pixels)
	case out.pfm:
		err = encodePFM(out.file, out.spec, pixels)
	default:
		err = imaging.Encode(out.file, quantize(out.spec, pixels), out.format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encoding %s: %w", out.path, err)
	}
	return nil
}

// Close flushes and closes the file.
func (out *Output) Close() error {
	if out.file == nil {
		return nil
	}
	err := out.file.Close()
	out.file = nil
	return err
}

// quantize converts float samples to an 8- or 16-bit image, clamping to
// [0, 1] and rounding to nearest.
func quantize(spec Spec, pixels []float32) image.Image {
	rect := image.Rect(0, 0, spec.Width, spec.Height)
	n := spec.Channels
	if spec.Format == UInt16 {
		if n == 1 {
			img := image.NewGray16(rect)
			for i, v := range pixels {
				img.Set(i%spec.Width, i/spec.Width, color.Gray16{Y: clamp16(v)})
			}
			return img
		}
		img := image.NewNRGBA64(rect)
		for p := 0; p < spec.Width*spec.Height; p++ {
			s := pixels[p*n : p*n+n]
			c := color.NRGBA64{A: 0xffff}
			c.R, c.G, c.B = expand(s, clamp16)
			if n == 2 || n == 4 {
				c.A = clamp16(s[n-1])
			}
			img.SetNRGBA64(p%spec.Width, p/spec.Width, c)
		}
		return img
	}

	if n == 1 {
		img := image.NewGray(rect)
		for i, v := range pixels {
			img.Pix[i] = clamp8(v)
		}
		return img
	}
	img := image.NewNRGBA(rect)
	for p := 0; p < spec.Width*spec.Height; p++ {
		s := pixels[p*n : p*n+n]
		r, g, b := expand(s, clamp8)
		a := uint8(0xff)
		if n == 2 || n == 4 {
			a = clamp8(s[n-1])
		}
		img.Pix[p*4] = r
		img.Pix[p*4+1] = g
		img.Pix[p*4+2] = b
		img.Pix[p*4+3] = a
	}
	return img
}

// expand maps a pixel's leading color samples to RGB, replicating gray.
func expand[T uint8 | uint16](s []float32, q func(float32) T) (r, g, b T) {
	if len(s) < 3 {
		v := q(s[0])
		return v, v, v
	}
	return q(s[0]), q(s[1]), q(s[2])
}

func clamp8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}

func clamp16(v float32) uint16 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}
