package operator

import (
	"image"
	"testing"
)

func TestRotate90_SwapsDimensions(t *testing.T) {
	src := gradientBuf(6, 4)
	out := Rotate90(src)
	if out.W != 4 || out.H != 6 {
		t.Errorf("dimensions: got %dx%d, want 4x6", out.W, out.H)
	}
}

func TestRotate90_FourTimesIsIdentity(t *testing.T) {
	src := gradientBuf(7, 5)
	out := Rotate90(Rotate90(Rotate90(Rotate90(src))))
	if !out.Equal(src) {
		t.Error("four quarter turns must restore the original")
	}
}

func TestRotate180_TwiceIsIdentity(t *testing.T) {
	src := gradientBuf(5, 5)
	if !Rotate180(Rotate180(src)).Equal(src) {
		t.Error("two half turns must restore the original")
	}
}

func TestRotate90Then270_IsIdentity(t *testing.T) {
	src := gradientBuf(6, 3)
	if !Rotate270(Rotate90(src)).Equal(src) {
		t.Error("90 then 270 must restore the original")
	}
}

func TestFlipH_TwiceIsIdentity(t *testing.T) {
	src := gradientBuf(8, 3)
	if !FlipH(FlipH(src)).Equal(src) {
		t.Error("double horizontal flip must restore the original")
	}
}

func TestFlipH_MirrorsPixels(t *testing.T) {
	src := gradientBuf(4, 2)
	out := FlipH(src)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if pixelAt(out, x, y) != pixelAt(src, 3-x, y) {
				t.Fatalf("pixel (%d,%d) not mirrored", x, y)
			}
		}
	}
}

func TestFlipV_MirrorsPixels(t *testing.T) {
	src := gradientBuf(3, 4)
	out := FlipV(src)
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			if pixelAt(out, x, y) != pixelAt(src, x, 3-y) {
				t.Fatalf("pixel (%d,%d) not mirrored", x, y)
			}
		}
	}
}

func TestCrop(t *testing.T) {
	src := gradientBuf(10, 10)
	out := Crop(src, image.Rect(2, 3, 7, 9))

	if out.W != 5 || out.H != 6 {
		t.Fatalf("dimensions: got %dx%d, want 5x6", out.W, out.H)
	}
	if pixelAt(out, 0, 0) != pixelAt(src, 2, 3) {
		t.Error("cropped origin does not match source region")
	}
	if pixelAt(out, 4, 5) != pixelAt(src, 6, 8) {
		t.Error("cropped corner does not match source region")
	}
}

func TestCrop_ClampsToBounds(t *testing.T) {
	src := gradientBuf(5, 5)
	out := Crop(src, image.Rect(3, 3, 50, 50))
	if out.W != 2 || out.H != 2 {
		t.Errorf("dimensions: got %dx%d, want 2x2", out.W, out.H)
	}
}

func TestCrop_ZeroAreaYieldsOnePixel(t *testing.T) {
	src := gradientBuf(5, 5)

	tests := []struct {
		name string
		rect image.Rectangle
	}{
		{"empty rect", image.Rect(2, 2, 2, 2)},
		{"inverted rect", image.Rect(4, 4, 1, 1)},
		{"fully outside", image.Rect(100, 100, 120, 120)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Crop(src, tt.rect)
			if out.W < 1 || out.H < 1 {
				t.Errorf("dimensions: got %dx%d, want at least 1x1", out.W, out.H)
			}
		})
	}
}

func TestGeometry_DoesNotMutateSource(t *testing.T) {
	src := gradientBuf(6, 4)
	orig := src.Clone()

	Rotate90(src)
	FlipH(src)
	Crop(src, image.Rect(1, 1, 3, 3))

	if !src.Equal(orig) {
		t.Error("geometry operators mutated their input")
	}
}

func TestResize(t *testing.T) {
	src := uniform(8, 8, 50, 100, 150, 255)
	out := Resize(src, 4, 4)
	if out.W != 4 || out.H != 4 {
		t.Errorf("dimensions: got %dx%d, want 4x4", out.W, out.H)
	}
}
