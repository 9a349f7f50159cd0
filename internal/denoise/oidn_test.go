//go:build oidn

package denoise

import (
	"testing"

	"github.com/shiinamiyuki/OneDenoiser/internal/ir"
)

func TestOIDNLinkage(t *testing.T) {
	ver := OIDNVersion()
	if ver == 0 {
		t.Fatal("OIDN version returned 0")
	}
	t.Logf("OpenImageDenoise version: %d", ver)
}

func TestOIDNDenoiseKeepsDimensionsAndAlpha(t *testing.T) {
	engine, err := Lookup(OIDN)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	// 8x8 RGBA noise pattern with a constant alpha.
	color := ir.New(8, 8, 4)
	for i := 0; i < len(color.Pixels); i += 4 {
		v := float32((i/4)%3) * 0.4
		color.Pixels[i], color.Pixels[i+1], color.Pixels[i+2] = v, v, v
		color.Pixels[i+3] = 0.75
	}
	albedo := ir.New(8, 8, 3)
	for i := range albedo.Pixels {
		albedo.Pixels[i] = 0.5
	}

	out, err := engine.Denoise(Request{Color: color, Albedo: albedo, HDR: true})
	if err != nil {
		t.Fatalf("Denoise: %v", err)
	}
	if out.Width != 8 || out.Height != 8 || out.Channels != 4 {
		t.Fatalf("unexpected output %dx%dx%d", out.Width, out.Height, out.Channels)
	}
	for i := 3; i < len(out.Pixels); i += 4 {
		if out.Pixels[i] != 0.75 {
			t.Fatalf("alpha at %d changed to %v", i, out.Pixels[i])
		}
	}
}

func TestOIDNRejectsSingleChannel(t *testing.T) {
	_, err := oidnEngine{}.Denoise(Request{Color: ir.New(2, 2, 1)})
	if err == nil {
		t.Fatal("expected error for 1-channel input")
	}
}
