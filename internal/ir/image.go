package ir

import "fmt"

// Image is the in-memory raster passed between the loader, the denoising
// engine and the writer. Pixels are float32 samples in linear light, stored
// row-major with channels interleaved (len = Width * Height * Channels).
type Image struct {
	Width    int
	Height   int
	Channels int
	Pixels   []float32
}

// New allocates a zeroed image. It panics on non-positive dimensions.
func New(width, height, channels int) *Image {
	if width <= 0 || height <= 0 || channels <= 0 {
		panic(fmt.Sprintf("ir: invalid image dimensions %dx%dx%d", width, height, channels))
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pixels:   make([]float32, width*height*channels),
	}
}

// FromPixels wraps an existing sample buffer. The buffer length must match
// the dimensions; a mismatch is a programming error and panics.
func FromPixels(width, height, channels int, pixels []float32) *Image {
	img := &Image{Width: width, Height: height, Channels: channels, Pixels: pixels}
	if err := img.Validate(); err != nil {
		panic(err)
	}
	return img
}

// Validate reports whether the pixel buffer matches the declared dimensions.
func (img *Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 || img.Channels <= 0 {
		return fmt.Errorf("ir: invalid image dimensions %dx%dx%d", img.Width, img.Height, img.Channels)
	}
	if want := img.Width * img.Height * img.Channels; len(img.Pixels) != want {
		return fmt.Errorf("ir: expected %d samples for %dx%dx%d, got %d",
			want, img.Width, img.Height, img.Channels, len(img.Pixels))
	}
	return nil
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image {
	pixels := make([]float32, len(img.Pixels))
	copy(pixels, img.Pixels)
	return &Image{
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
		Pixels:   pixels,
	}
}

// SameSize reports whether other has the same width and height as img.
// Channel counts may differ.
func (img *Image) SameSize(other *Image) bool {
	return img.Width == other.Width && img.Height == other.Height
}

// Size returns the pixel buffer size in bytes.
func (img *Image) Size() int {
	return len(img.Pixels) * 4
}
