package operator

import (
	"testing"
)

func TestSharpen_NeutralIdentity(t *testing.T) {
	src := gradientBuf(8, 8)
	if !Sharpen(src, 0).Equal(src) {
		t.Error("strength 0 must be bit-identical to input")
	}
}

func TestSharpen_UniformIsFixedPoint(t *testing.T) {
	// Kernel weights sum to 1, so flat regions are unchanged at any
	// strength.
	src := uniform(6, 6, 77, 144, 201, 255)
	if !Sharpen(src, 100).Equal(src) {
		t.Error("sharpening a uniform image must not change it")
	}
}

func TestSharpen_AmplifiesEdge(t *testing.T) {
	// Vertical step edge: sharpening overshoots on both sides.
	src := uniform(6, 6, 0, 0, 0, 255)
	for y := 0; y < 6; y++ {
		for x := 3; x < 6; x++ {
			i := src.Offset(x, y)
			src.Pix[i], src.Pix[i+1], src.Pix[i+2] = 200, 200, 200
		}
	}

	out := Sharpen(src, 100)

	// Bright side of the edge: 200*5 - (0 + 200 + 200 + 200) = 400,
	// clamped to 255.
	if got := pixelAt(out, 3, 2)[0]; got != 255 {
		t.Errorf("bright side: got %d, want 255", got)
	}
	// Dark side: 0*5 - 200 = -200, clamped to 0.
	if got := pixelAt(out, 2, 2)[0]; got != 0 {
		t.Errorf("dark side: got %d, want 0", got)
	}
}

func TestSharpen_HalfStrength(t *testing.T) {
	// alpha = 0.5: center 3, edges -0.5.
	src := uniform(5, 5, 100, 100, 100, 255)
	i := src.Offset(2, 2)
	src.Pix[i], src.Pix[i+1], src.Pix[i+2] = 120, 120, 120

	out := Sharpen(src, 50)
	// 120*3 - 0.5*4*100 = 360 - 200 = 160.
	if got := pixelAt(out, 2, 2)[0]; got != 160 {
		t.Errorf("center: got %d, want 160", got)
	}
}

func TestLaplacianSharpen_UniformIsFixedPoint(t *testing.T) {
	src := uniform(6, 6, 33, 66, 99, 255)
	if !LaplacianSharpen(src).Equal(src) {
		t.Error("uniform image must be unchanged")
	}
}

func TestLaplacianSharpen_BoostsCenterDetail(t *testing.T) {
	src := uniform(5, 5, 100, 100, 100, 255)
	i := src.Offset(2, 2)
	src.Pix[i], src.Pix[i+1], src.Pix[i+2] = 110, 110, 110

	out := LaplacianSharpen(src)
	// 110*5 - 4*100 = 150.
	if got := pixelAt(out, 2, 2)[0]; got != 150 {
		t.Errorf("center: got %d, want 150", got)
	}
	// Neighbor dips: 100*5 - (100+100+100+110) = 90.
	if got := pixelAt(out, 1, 2)[0]; got != 90 {
		t.Errorf("neighbor: got %d, want 90", got)
	}
}

func TestSharpen_PreservesAlpha(t *testing.T) {
	src := uniform(4, 4, 50, 50, 50, 123)
	out := Sharpen(src, 100)
	if got := pixelAt(out, 1, 1)[3]; got != 123 {
		t.Errorf("alpha: got %d, want 123", got)
	}
}
