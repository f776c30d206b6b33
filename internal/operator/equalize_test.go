package operator

import (
	"testing"

	"github.com/retouchlab/retouch/internal/raster"
)

// bimodal creates a low-contrast two-level image that equalization
// stretches toward the full range.
func bimodal(w, h int) *raster.Buffer {
	buf := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := buf.Offset(x, y)
			v := uint8(100)
			if x >= w/2 {
				v = 140
			}
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = v, v, v
			buf.Pix[i+3] = 255
		}
	}
	return buf
}

func TestEqualize_NeutralIdentity(t *testing.T) {
	src := gradientBuf(8, 8)
	for _, mode := range []EqualizeMode{EqualizeLuminance, EqualizeRGB} {
		t.Run(mode.String(), func(t *testing.T) {
			if !Equalize(src, 0, mode).Equal(src) {
				t.Error("strength 0 must be bit-identical to input")
			}
		})
	}
}

func TestEqualize_FullStrengthStretchesRange(t *testing.T) {
	src := bimodal(8, 8)
	out := Equalize(src, 100, EqualizeRGB)

	// Half the pixels at the low level map to 0, the rest to 255:
	// cdf(100)=32=cdfMin -> 0; cdf(140)=64 -> (64-32)/(64-32)*255 = 255.
	if got := pixelAt(out, 0, 0)[0]; got != 0 {
		t.Errorf("low level: got %d, want 0", got)
	}
	if got := pixelAt(out, 7, 0)[0]; got != 255 {
		t.Errorf("high level: got %d, want 255", got)
	}
}

func TestEqualize_BlendContinuity(t *testing.T) {
	src := bimodal(8, 8)

	// Sample the same pixel at increasing strengths: values must trend
	// monotonically from the original toward the fully equalized value,
	// with no jump between 0 and a small strength.
	strengths := []int{0, 25, 50, 75, 100}

	var lowPrev, highPrev uint8 = 100, 140
	for i, s := range strengths {
		out := Equalize(src, s, EqualizeRGB)
		low := pixelAt(out, 0, 0)[0]
		high := pixelAt(out, 7, 0)[0]
		if i > 0 {
			if low > lowPrev {
				t.Errorf("strength %d: low pixel rose from %d to %d", s, lowPrev, low)
			}
			if high < highPrev {
				t.Errorf("strength %d: high pixel fell from %d to %d", s, highPrev, high)
			}
		}
		lowPrev, highPrev = low, high
	}

	// Intermediate strength must land strictly between the endpoints.
	mid := Equalize(src, 50, EqualizeRGB)
	if v := pixelAt(mid, 0, 0)[0]; v == 0 || v == 100 {
		t.Errorf("strength 50 should interpolate, got %d", v)
	}
}

func TestEqualize_UniformImageIsFixedPoint(t *testing.T) {
	// A single-level image has nothing to redistribute; the remap is
	// identity at any strength.
	src := uniform(6, 6, 90, 90, 90, 255)
	for _, mode := range []EqualizeMode{EqualizeLuminance, EqualizeRGB} {
		t.Run(mode.String(), func(t *testing.T) {
			if !Equalize(src, 100, mode).Equal(src) {
				t.Error("uniform image must be unchanged")
			}
		})
	}
}

func TestEqualize_LuminancePreservesColorRatio(t *testing.T) {
	// Four luma levels of the same hue, two pixels each. Level 1 maps
	// to a moderate luma where no channel clamps, so its R:G ratio
	// must survive the rescale.
	levels := [4][3]uint8{
		{0, 0, 0},     // luma 0
		{80, 40, 0},   // luma 47
		{160, 80, 0},  // luma 95
		{240, 120, 0}, // luma 142
	}
	src := raster.New(4, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			i := src.Offset(x, y)
			src.Pix[i], src.Pix[i+1], src.Pix[i+2] = levels[x][0], levels[x][1], levels[x][2]
			src.Pix[i+3] = 255
		}
	}

	out := Equalize(src, 100, EqualizeLuminance)

	// Level 1: cdf 4 of 8, cdfMin 2 -> newLuma (4-2)/(8-2)*255 = 85,
	// ratio 85/47; R=80*1.809=145, G=40*1.809=72.
	p := pixelAt(out, 1, 0)
	if p[1] == 0 {
		t.Fatalf("level 1 green channel clamped to 0: %v", p)
	}
	ratio := float64(p[0]) / float64(p[1])
	if ratio < 1.9 || ratio > 2.1 {
		t.Errorf("R:G ratio %.2f drifted from 2.0 (%v)", ratio, p)
	}
}

func TestEqualize_LuminanceZeroLumaGuard(t *testing.T) {
	// Black pixels have zero luma; they must take the new luma in all
	// channels instead of dividing by zero.
	src := raster.New(4, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			i := src.Offset(x, y)
			if x < 2 {
				src.Pix[i], src.Pix[i+1], src.Pix[i+2] = 0, 0, 0
			} else {
				src.Pix[i], src.Pix[i+1], src.Pix[i+2] = 200, 200, 200
			}
			src.Pix[i+3] = 255
		}
	}

	out := Equalize(src, 100, EqualizeLuminance)
	p := pixelAt(out, 0, 0)
	if p[0] != p[1] || p[1] != p[2] {
		t.Errorf("zero-luma pixel should be achromatic, got %v", p)
	}
}

func TestEqualize_DoesNotMutateSource(t *testing.T) {
	src := bimodal(8, 8)
	orig := src.Clone()
	Equalize(src, 100, EqualizeLuminance)
	if !src.Equal(orig) {
		t.Error("operator mutated its input")
	}
}

func TestParseEqualizeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    EqualizeMode
		wantErr bool
	}{
		{"luminance", EqualizeLuminance, false},
		{"", EqualizeLuminance, false},
		{"rgb", EqualizeRGB, false},
		{"hsv", EqualizeLuminance, true},
	}

	for _, tt := range tests {
		got, err := ParseEqualizeMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEqualizeMode(%q): err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseEqualizeMode(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
