package imageio

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // decode-only
)

// Input is an opened image file. Pixel data is read once with ReadImage.
type Input struct {
	path   string
	spec   Spec
	raster image.Image
	floats []float32
}

// Open decodes the image at path and reports its spec. OpenEXR and portable
// float map files are recognised by their .exr and .pfm extensions;
// everything else goes through the registered raster decoders (png, jpeg,
// gif, tiff, bmp, webp).
func Open(path string) (*Input, error) {
	switch {
	case isEXR(path):
		return openEXR(path)
	case isPFM(path):
		return openPFM(path)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	b := img.Bounds()
	channels, format := rasterLayout(img.ColorModel())
	return &Input{
		path:   path,
		raster: img,
		spec: Spec{
			Width:    b.Dx(),
			Height:   b.Dy(),
			Channels: channels,
			Format:   format,
		},
	}, nil
}

func openPFM(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	spec, pixels, err := decodePFM(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}
	return &Input{path: path, spec: spec, floats: pixels}, nil
}

// Spec returns the dimensions and storage format of the file.
func (in *Input) Spec() Spec {
	return in.spec
}

// ReadImage returns all samples as float32, interleaved, row-major, top row
// first. Integer formats are normalized to [0, 1]; no transfer function is
// applied.
func (in *Input) ReadImage() ([]float32, error) {
	if in.floats != nil {
		out := make([]float32, len(in.floats))
		copy(out, in.floats)
		return out, nil
	}
	if in.raster == nil {
		return nil, fmt.Errorf("imageio: %s is closed", in.path)
	}
	return rasterSamples(in.raster, in.spec), nil
}

// Close releases decoded data.
func (in *Input) Close() error {
	in.raster = nil
	in.floats = nil
	return nil
}

func isPFM(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pfm")
}

func isEXR(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".exr")
}

// rasterLayout derives the channel count and storage format from the
// decoder's color model.
func rasterLayout(m color.Model) (channels int, format Format) {
	switch m {
	case color.GrayModel:
		return 1, UInt8
	case color.Gray16Model:
		return 1, UInt16
	case color.NRGBAModel:
		return 4, UInt8
	case color.NRGBA64Model:
		return 4, UInt16
	case color.RGBA64Model:
		return 3, UInt16
	default:
		if p, ok := m.(color.Palette); ok {
			for _, c := range p {
				if _, _, _, a := c.RGBA(); a != 0xffff {
					return 4, UInt8
				}
			}
		}
		return 3, UInt8
	}
}

func rasterSamples(img image.Image, spec Spec) []float32 {
	const scale = 1.0 / 0xffff
	b := img.Bounds()
	out := make([]float32, spec.Samples())
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			switch spec.Channels {
			case 1:
				out[i] = float32(c.R) * scale
			case 3:
				out[i] = float32(c.R) * scale
				out[i+1] = float32(c.G) * scale
				out[i+2] = float32(c.B) * scale
			default:
				out[i] = float32(c.R) * scale
				out[i+1] = float32(c.G) * scale
				out[i+2] = float32(c.B) * scale
				out[i+3] = float32(c.A) * scale
			}
			i += spec.Channels
		}
	}
	return out
}
