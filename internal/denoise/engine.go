// Package denoise maps engine names to denoiser adapters.
//
// Engines register themselves from init functions. An engine whose native
// library was not built into the binary registers as unavailable, so looking
// it up fails with ErrUnavailable instead of ErrUnknownEngine.
package denoise

import (
	"errors"

	"github.com/shiinamiyuki/OneDenoiser/internal/ir"
)

var (
	// ErrUnknownEngine is returned by Lookup for names nobody registered.
	ErrUnknownEngine = errors.New("unknown denoiser")
	// ErrUnavailable is returned by Lookup for engines not compiled in.
	ErrUnavailable = errors.New("denoiser not available")
	// ErrDimensionMismatch is returned when auxiliary buffers do not match
	// the color buffer.
	ErrDimensionMismatch = errors.New("auxiliary image dimensions do not match input")
)

// Request holds the buffers handed to an engine. Albedo and Normal are
// optional and, when set, have the same width and height as Color.
type Request struct {
	Color  *ir.Image
	Albedo *ir.Image
	Normal *ir.Image
	// HDR marks color data that may exceed [0, 1].
	HDR bool
}

// Validate checks the buffers against each other.
func (r *Request) Validate() error {
	if r.Color == nil {
		return errors.New("denoise: missing color image")
	}
	if err := r.Color.Validate(); err != nil {
		return err
	}
	for _, aux := range []*ir.Image{r.Albedo, r.Normal} {
		if aux == nil {
			continue
		}
		if err := aux.Validate(); err != nil {
			return err
		}
		if !r.Color.SameSize(aux) {
			return ErrDimensionMismatch
		}
	}
	return nil
}

// Engine is a denoiser adapter. Denoise returns a new image with the same
// dimensions and channel count as req.Color and must not modify the request
// buffers.
type Engine interface {
	Name() string
	Denoise(req Request) (*ir.Image, error)
}

// OIDN is the registry key of the OpenImageDenoise adapter.
const OIDN = "oidn"
