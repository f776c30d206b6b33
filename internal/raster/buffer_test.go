package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestNew_ZeroDimensionsClampedToOne(t *testing.T) {
	b := New(0, 0)
	if b.W != 1 || b.H != 1 {
		t.Errorf("dimensions: got %dx%d, want 1x1", b.W, b.H)
	}
	if len(b.Pix) != 4 {
		t.Errorf("pix length: got %d, want 4", len(b.Pix))
	}
}

func TestClone_Independence(t *testing.T) {
	b := New(2, 2)
	b.Pix[0] = 200

	c := b.Clone()
	if !b.Equal(c) {
		t.Fatal("clone should equal its source")
	}

	c.Pix[0] = 10
	if b.Pix[0] != 200 {
		t.Error("mutating the clone must not affect the source")
	}
}

func TestEqual(t *testing.T) {
	a := New(2, 3)
	b := New(2, 3)
	if !a.Equal(b) {
		t.Error("identical buffers should be equal")
	}

	b.Pix[5] = 1
	if a.Equal(b) {
		t.Error("buffers with differing bytes should not be equal")
	}

	c := New(3, 2)
	if a.Equal(c) {
		t.Error("buffers with differing dimensions should not be equal")
	}
}

func TestFingerprint(t *testing.T) {
	a := New(4, 4)
	b := New(4, 4)
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical buffers should share a fingerprint")
	}

	b.Pix[0] = 1
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("differing buffers should have differing fingerprints")
	}

	// Same byte count, different shape.
	c := New(2, 8)
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("dimensions must contribute to the fingerprint")
	}
}

func TestFromImage_NonPremultiplied(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	src.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	b := FromImage(src)
	if b.W != 2 || b.H != 1 {
		t.Fatalf("dimensions: got %dx%d, want 2x1", b.W, b.H)
	}

	got := b.Pix[b.Offset(0, 0) : b.Offset(0, 0)+4]
	want := []uint8{200, 100, 50, 128}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel (0,0) channel %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFromImage_NonZeroOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 13, 12))
	src.SetNRGBA(10, 10, color.NRGBA{R: 9, G: 8, B: 7, A: 255})

	b := FromImage(src)
	if b.W != 3 || b.H != 2 {
		t.Fatalf("dimensions: got %dx%d, want 3x2", b.W, b.H)
	}
	if b.Pix[0] != 9 || b.Pix[1] != 8 || b.Pix[2] != 7 {
		t.Errorf("origin pixel: got (%d,%d,%d), want (9,8,7)", b.Pix[0], b.Pix[1], b.Pix[2])
	}
}

func TestNRGBA_RoundTrip(t *testing.T) {
	b := New(3, 3)
	for i := range b.Pix {
		b.Pix[i] = uint8(i * 7)
	}

	img := b.NRGBA()
	back := FromNRGBA(img)
	if !b.Equal(back) {
		t.Error("NRGBA wrap followed by FromNRGBA should preserve bytes")
	}

	// The wrap shares memory with the buffer.
	img.Pix[0] = 99
	if b.Pix[0] != 99 {
		t.Error("NRGBA should wrap without copying")
	}
}

func TestLuma(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint8
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{128, 128, 128, 128},
		{255, 0, 0, 76},  // 0.299*255 = 76.245
		{0, 255, 0, 150}, // 0.587*255 = 149.685
		{0, 0, 255, 29},  // 0.114*255 = 29.07
	}

	for _, tt := range tests {
		if got := LumaU8(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("LumaU8(%d,%d,%d): got %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestClampU8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{127.4, 127},
		{127.5, 128},
		{255, 255},
		{300, 255},
	}

	for _, tt := range tests {
		if got := ClampU8(tt.in); got != tt.want {
			t.Errorf("ClampU8(%.1f): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := ClampInt(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("ClampInt(%d, %d, %d): got %d, want %d",
				tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
