package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/shiinamiyuki/OneDenoiser/internal/color"
	"github.com/shiinamiyuki/OneDenoiser/internal/denoise"
	"github.com/shiinamiyuki/OneDenoiser/internal/imageio"
	"github.com/shiinamiyuki/OneDenoiser/internal/ir"
)

// Options controls a denoising run.
type Options struct {
	Engine  string // registry key of the denoiser
	Input   string // noisy color image
	Albedo  string // optional auxiliary albedo image
	Normal  string // optional auxiliary normal image
	Output  string // denoised image
	Workers int    // color conversion goroutines, 0 = GOMAXPROCS
}

// ConvertOptions controls a conversion without denoising.
type ConvertOptions struct {
	Input   string
	Output  string
	Workers int
	// Assume, when set, overrides the transfer function implied by the
	// input's storage format.
	Assume *color.Transfer
}

// Result describes a finished run.
type Result struct {
	Width    int
	Height   int
	Channels int
	Engine   string
	HDR      bool // input was stored as floating point
	Written  bool // false when no codec handles the output extension
}

// Load reads path into a linear-light image.
func Load(path string) (*ir.Image, error) {
	img, _, err := load(path, nil, 0)
	return img, err
}

// Save writes img to path, encoding it with the sRGB curve unless the
// extension names a linear container (.exr, .pfm). img is not modified.
//
// An extension no codec can write is not an error: nothing is written and a
// warning is logged.
func Save(img *ir.Image, path string) error {
	_, err := save(img, path, 0)
	return err
}

// Run executes the full pipeline: load → denoise → save.
func Run(opts Options) (*Result, error) {
	// 1. Load the noisy input
	input, format, err := load(opts.Input, nil, opts.Workers)
	if err != nil {
		return nil, err
	}

	// 2. Resolve the engine before anything is written
	engine, err := denoise.Lookup(opts.Engine)
	if err != nil {
		return nil, err
	}

	// 3. Auxiliary buffers
	req := denoise.Request{Color: input, HDR: format.IsFloat()}
	if opts.Albedo != "" {
		if req.Albedo, _, err = load(opts.Albedo, nil, opts.Workers); err != nil {
			return nil, err
		}
	}
	if opts.Normal != "" {
		if req.Normal, _, err = load(opts.Normal, nil, opts.Workers); err != nil {
			return nil, err
		}
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("denoise request: %w", err)
	}

	// 4. Denoise
	slog.Debug("denoising", "engine", engine.Name(), "width", input.Width, "height", input.Height,
		"channels", input.Channels, "albedo", req.Albedo != nil, "normal", req.Normal != nil, "hdr", req.HDR)
	output, err := engine.Denoise(req)
	if err != nil {
		return nil, fmt.Errorf("denoise: %w", err)
	}
	if !output.SameSize(input) || output.Channels != input.Channels {
		return nil, fmt.Errorf("denoise: %s returned %dx%dx%d for %dx%dx%d input", engine.Name(),
			output.Width, output.Height, output.Channels, input.Width, input.Height, input.Channels)
	}

	// 5. Save
	written, err := save(output, opts.Output, opts.Workers)
	if err != nil {
		return nil, err
	}

	return &Result{
		Width:    input.Width,
		Height:   input.Height,
		Channels: input.Channels,
		Engine:   engine.Name(),
		HDR:      req.HDR,
		Written:  written,
	}, nil
}

// Convert re-encodes opts.Input as opts.Output through the linear
// representation, without denoising. It reports whether a file was written.
func Convert(opts ConvertOptions) (*ir.Image, bool, error) {
	img, _, err := load(opts.Input, opts.Assume, opts.Workers)
	if err != nil {
		return nil, false, err
	}
	written, err := save(img, opts.Output, opts.Workers)
	if err != nil {
		return nil, false, err
	}
	return img, written, nil
}

func load(path string, assume *color.Transfer, workers int) (*ir.Image, imageio.Format, error) {
	in, err := imageio.Open(path)
	if err != nil {
		return nil, imageio.Unknown, fmt.Errorf("loading %s: %w", path, err)
	}
	defer in.Close()

	spec := in.Spec()
	pixels, err := in.ReadImage()
	if err != nil {
		return nil, imageio.Unknown, fmt.Errorf("loading %s: %w", path, err)
	}

	// Integer files are display encoded; float files already hold linear data.
	transfer := spec.Format.Transfer()
	if assume != nil {
		transfer = *assume
	}
	transfer.ToLinear(pixels, workers)

	slog.Debug("loaded image", "path", path, "width", spec.Width, "height", spec.Height,
		"channels", spec.Channels, "format", spec.Format, "transfer", transfer)
	return ir.FromPixels(spec.Width, spec.Height, spec.Channels, pixels), spec.Format, nil
}

func save(img *ir.Image, path string, workers int) (bool, error) {
	out := imageio.Create(path)
	if out == nil {
		slog.Warn("unsupported output format, nothing written", "path", path)
		return false, nil
	}

	pixels := img.Pixels
	if !out.Linear() {
		pixels = make([]float32, len(img.Pixels))
		copy(pixels, img.Pixels)
		color.SRGB.FromLinear(pixels, workers)
	}

	spec := imageio.Spec{
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
		Format:   imageio.UInt8,
	}
	if err := out.Open(spec); err != nil {
		return false, fmt.Errorf("saving %s: %w", path, err)
	}
	if err := out.WriteImage(pixels); err != nil {
		out.Close()
		return false, fmt.Errorf("saving %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return false, fmt.Errorf("saving %s: %w", path, err)
	}
	return true, nil
}
