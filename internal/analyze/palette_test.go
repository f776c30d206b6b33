package analyze

import (
	"testing"

	"github.com/retouchlab/retouch/internal/raster"
)

func solid(w, h int, r, g, b uint8) *raster.Buffer {
	buf := raster.New(w, h)
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = r, g, b, 255
	}
	return buf
}

func TestPalette_SolidImage(t *testing.T) {
	buf := solid(10, 10, 240, 16, 32)
	got := Palette(buf, 5)

	if len(got) != 1 {
		t.Fatalf("entries: got %d, want 1", len(got))
	}
	if got[0].Percentage != 100 {
		t.Errorf("percentage: got %.1f, want 100", got[0].Percentage)
	}
	if got[0].Hex != "#F01020" {
		t.Errorf("hex: got %s, want #F01020", got[0].Hex)
	}
}

func TestPalette_OrderedByFrequency(t *testing.T) {
	// 3/4 red, 1/4 blue.
	buf := raster.New(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			i := buf.Offset(x, y)
			if x < 6 {
				buf.Pix[i] = 224
			} else {
				buf.Pix[i+2] = 224
			}
			buf.Pix[i+3] = 255
		}
	}

	got := Palette(buf, 5)
	if len(got) != 2 {
		t.Fatalf("entries: got %d, want 2", len(got))
	}
	if got[0].R != 224 || got[0].B != 0 {
		t.Errorf("most frequent should be red, got %+v", got[0])
	}
	if got[0].Percentage <= got[1].Percentage {
		t.Error("entries must be sorted by descending frequency")
	}
}

func TestPalette_MergesNearIdenticalShades(t *testing.T) {
	// Two blues one quantization step apart; perceptually one color.
	buf := raster.New(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			i := buf.Offset(x, y)
			if (x+y)%2 == 0 {
				buf.Pix[i+2] = 200
			} else {
				buf.Pix[i+2] = 210
			}
			buf.Pix[i+3] = 255
		}
	}

	got := Palette(buf, 10)
	if len(got) != 1 {
		t.Fatalf("near-identical shades should merge, got %d entries", len(got))
	}
	if got[0].Percentage != 100 {
		t.Errorf("merged percentage: got %.1f, want 100", got[0].Percentage)
	}
}

func TestPalette_TruncatesToCount(t *testing.T) {
	// Four clearly distinct colors in equal shares.
	colors := [4][3]uint8{{224, 0, 0}, {0, 224, 0}, {0, 0, 224}, {224, 224, 224}}
	buf := raster.New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			i := buf.Offset(x, y)
			c := colors[x]
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = c[0], c[1], c[2], 255
		}
	}

	got := Palette(buf, 2)
	if len(got) != 2 {
		t.Errorf("entries: got %d, want 2", len(got))
	}
}
