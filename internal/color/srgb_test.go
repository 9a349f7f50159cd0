package color

import (
	"math"
	"testing"
)

func TestTransferZero(t *testing.T) {
	if got := SRGBToLinear(0.0); got != 0 {
		t.Errorf("SRGBToLinear(0) = %v, want 0", got)
	}
	if got := LinearToSRGB(0.0); got != 0 {
		t.Errorf("LinearToSRGB(0) = %v, want 0", got)
	}
}

func TestRoundTripWithinTolerance(t *testing.T) {
	const steps = 10000
	for i := 0; i <= steps; i++ {
		x := float64(i) / steps
		got := LinearToSRGB(SRGBToLinear(x))
		if math.Abs(got-x) >= 1e-4 {
			t.Fatalf("round trip of %v gave %v", x, got)
		}
		x32 := float32(x)
		got32 := LinearToSRGB(SRGBToLinear(x32))
		if math.Abs(float64(got32-x32)) >= 1e-4 {
			t.Fatalf("float32 round trip of %v gave %v", x32, got32)
		}
	}
}

func TestMonotonic(t *testing.T) {
	const steps = 10000
	prevDec, prevEnc := SRGBToLinear(0.0), LinearToSRGB(0.0)
	for i := 1; i <= steps; i++ {
		x := float64(i) / steps
		dec, enc := SRGBToLinear(x), LinearToSRGB(x)
		if dec < prevDec {
			t.Fatalf("SRGBToLinear decreases at %v: %v < %v", x, dec, prevDec)
		}
		if enc < prevEnc {
			t.Fatalf("LinearToSRGB decreases at %v: %v < %v", x, enc, prevEnc)
		}
		prevDec, prevEnc = dec, enc
	}
}

func TestMidGray(t *testing.T) {
	// 128/255 in an 8-bit file.
	got := SRGBToLinear(128.0 / 255.0)
	if math.Abs(got-0.2158) > 1e-4 {
		t.Errorf("SRGBToLinear(128/255) = %v, want ~0.2158", got)
	}
}

func TestNoClamping(t *testing.T) {
	if got := SRGBToLinear(2.0); got <= 1 {
		t.Errorf("SRGBToLinear(2) = %v, expected > 1", got)
	}
	if got := LinearToSRGB(-0.5); got != -0.5*12.92 {
		t.Errorf("LinearToSRGB(-0.5) = %v, expected linear segment", got)
	}
}

func TestParseTransfer(t *testing.T) {
	for _, name := range []string{"linear", "srgb"} {
		tr, err := ParseTransfer(name)
		if err != nil {
			t.Fatalf("ParseTransfer(%q): %v", name, err)
		}
		if tr.String() != name {
			t.Errorf("String() = %q, want %q", tr.String(), name)
		}
	}
	if _, err := ParseTransfer("gamma22"); err == nil {
		t.Error("expected error for unknown transfer")
	}
}
