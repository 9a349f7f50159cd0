package imageio

import (
	"bufio"
	"fmt"
	"image"
	"os"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/shiinamiyuki/OneDenoiser/internal/color"
)

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	Spec
	FileSize int64
	Transfer color.Transfer // encoding the loader assumes for the stored samples
}

// GetInfo reports the dimensions, storage format and size on disk of the
// image at path. Only the file header is decoded.
func GetInfo(path string) (*ImageInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: stat %s: %w", path, err)
	}

	var spec Spec
	switch {
	case isEXR(path):
		spec, err = exrConfig(path)
	case isPFM(path):
		spec, err = pfmConfig(path)
	default:
		spec, err = rasterConfig(path)
	}
	if err != nil {
		return nil, err
	}
	return &ImageInfo{
		Spec:     spec,
		FileSize: st.Size(),
		Transfer: spec.Format.Transfer(),
	}, nil
}

func rasterConfig(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spec{}, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Spec{}, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}
	channels, format := rasterLayout(cfg.ColorModel)
	return Spec{Width: cfg.Width, Height: cfg.Height, Channels: channels, Format: format}, nil
}

func pfmConfig(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spec{}, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	spec, _, err := readPFMHeader(bufio.NewReader(f))
	if err != nil {
		return Spec{}, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}
	return spec, nil
}

func exrConfig(path string) (Spec, error) {
	f, err := exr.OpenFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	rgba, err := exr.NewRGBAInputFile(f)
	if err != nil {
		return Spec{}, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}
	channels, format := exrLayout(rgba.Header().Channels())
	return Spec{Width: rgba.Width(), Height: rgba.Height(), Channels: channels, Format: format}, nil
}
