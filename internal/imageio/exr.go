package imageio

import (
	"fmt"
	"io"

	"github.com/mrjoshuak/go-openexr/exr"
)

func openEXR(path string) (*Input, error) {
	f, err := exr.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	rgba, err := exr.NewRGBAInputFile(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}
	channels, format := exrLayout(rgba.Header().Channels())
	img, err := rgba.ReadRGBA()
	if err != nil {
		return nil, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}

	b := img.Bounds()
	spec := Spec{Width: b.Dx(), Height: b.Dy(), Channels: channels, Format: format}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}
	pixels := make([]float32, 0, spec.Samples())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.RGBA(x, y)
			pixels = append(pixels, r, g, bl)
			if channels == 4 {
				pixels = append(pixels, a)
			}
		}
	}
	return &Input{path: path, spec: spec, floats: pixels}, nil
}

// exrLayout reports RGB or RGBA depending on whether the file carries an
// alpha channel, and Half unless the color channels are stored as float.
func exrLayout(cl *exr.ChannelList) (channels int, format Format) {
	channels, format = 3, Half
	if cl == nil {
		return channels, format
	}
	if cl.Get("A") != nil {
		channels = 4
	}
	if c := cl.Get("R"); c != nil && c.Type == exr.PixelTypeFloat {
		format = Float32
	}
	return channels, format
}

// encodeEXR writes a ZIP-compressed scanline file with float32 R, G, B and,
// when the image has alpha, A channels. Gray is replicated into R, G and B.
func encodeEXR(w io.WriteSeeker, spec Spec, pixels []float32) error {
	names := []string{"R", "G", "B"}
	if spec.Channels == 2 || spec.Channels == 4 {
		names = append(names, "A")
	}

	h := exr.NewScanlineHeader(spec.Width, spec.Height)
	h.SetCompression(exr.CompressionZIP)
	cl := exr.NewChannelList()
	for _, name := range names {
		cl.Add(exr.Channel{Name: name, Type: exr.PixelTypeFloat, XSampling: 1, YSampling: 1})
	}
	h.SetChannels(cl)

	n := spec.Width * spec.Height
	planes := make([][]float32, len(names))
	for i := range planes {
		planes[i] = make([]float32, n)
	}
	for p := 0; p < n; p++ {
		s := pixels[p*spec.Channels : (p+1)*spec.Channels]
		for c := range planes {
			planes[c][p] = exrSample(s, c)
		}
	}

	fb := exr.NewFrameBuffer()
	for i, name := range names {
		fb.Set(name, exr.NewSliceFromFloat32(planes[i], spec.Width, spec.Height))
	}

	sw, err := exr.NewScanlineWriter(w, h)
	if err != nil {
		return err
	}
	sw.SetFrameBuffer(fb)
	dw := h.DataWindow()
	if err := sw.WritePixels(int(dw.Min.Y), int(dw.Max.Y)); err != nil {
		return err
	}
	return sw.Close()
}

// exrSample picks the source sample for output channel c (R, G, B, A) of a
// pixel with len(s) channels.
func exrSample(s []float32, c int) float32 {
	switch len(s) {
	case 1:
		return s[0]
	case 2:
		if c == 3 {
			return s[1]
		}
		return s[0]
	default:
		return s[c]
	}
}
