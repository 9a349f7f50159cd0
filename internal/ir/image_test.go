package ir

import "testing"

func TestNewAllocatesInterleavedBuffer(t *testing.T) {
	img := New(4, 3, 3)
	if len(img.Pixels) != 36 {
		t.Fatalf("expected 36 samples, got %d", len(img.Pixels))
	}
	if err := img.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if img.Size() != 144 {
		t.Errorf("expected 144 bytes, got %d", img.Size())
	}
}

func TestFromPixelsPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mismatched buffer")
		}
	}()
	FromPixels(2, 2, 3, make([]float32, 11))
}

func TestValidateRejectsBadDimensions(t *testing.T) {
	img := &Image{Width: 0, Height: 2, Channels: 3}
	if img.Validate() == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestCloneIsDeep(t *testing.T) {
	img := FromPixels(1, 1, 3, []float32{0.1, 0.2, 0.3})
	c := img.Clone()
	c.Pixels[0] = 9
	if img.Pixels[0] != 0.1 {
		t.Errorf("clone aliases source buffer")
	}
	if !img.SameSize(c) {
		t.Errorf("clone dimensions differ")
	}
}
