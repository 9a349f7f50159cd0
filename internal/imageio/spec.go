package imageio

import (
	"errors"
	"fmt"

	"github.com/shiinamiyuki/OneDenoiser/internal/color"
)

// Format is the numeric storage type of samples in an image file.
type Format int

// Storage formats.
const (
	Unknown Format = iota
	UInt8
	UInt16
	Half
	Float32
	Float64
)

var formatNames = map[Format]string{
	Unknown: "unknown",
	UInt8:   "uint8",
	UInt16:  "uint16",
	Half:    "half",
	Float32: "float",
	Float64: "double",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// IsFloat reports whether samples are stored as floating point. Float files
// hold linear data; integer files are display encoded.
func (f Format) IsFloat() bool {
	return f == Half || f == Float32 || f == Float64
}

// Transfer returns the encoding assumed for samples stored in format f.
func (f Format) Transfer() color.Transfer {
	if f.IsFloat() {
		return color.Linear
	}
	return color.SRGB
}

var (
	// ErrUnsupportedFormat is returned when no codec handles a file.
	ErrUnsupportedFormat = errors.New("imageio: unsupported image format")
	// ErrInvalidSpec is returned for dimensions or channel layouts a codec
	// cannot represent.
	ErrInvalidSpec = errors.New("imageio: invalid image spec")
)

// Spec describes an image independently of its pixel data.
type Spec struct {
	Width    int
	Height   int
	Channels int
	Format   Format
}

// Samples returns the number of samples in an image described by s.
func (s Spec) Samples() int {
	return s.Width * s.Height * s.Channels
}

// Validate checks that s describes a non-empty image.
func (s Spec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 || s.Channels <= 0 {
		return fmt.Errorf("%w: %dx%d with %d channels", ErrInvalidSpec, s.Width, s.Height, s.Channels)
	}
	return nil
}
