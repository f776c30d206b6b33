// Package analyze provides read-only derived views over a pixel buffer
// beyond the plain histogram, currently dominant-palette extraction for
// the stats surfaces.
package analyze

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/retouchlab/retouch/internal/raster"
)

// quantStep groups colors within 16 units per component into one bin
// before the perceptual merge pass.
const quantStep = 16

// mergeDistance is the CIE-Lab distance under which two quantized bins
// count as the same perceived color. 0.1 roughly matches "indistinguishable
// at a glance".
const mergeDistance = 0.1

// PaletteEntry is one dominant color and its share of the image.
type PaletteEntry struct {
	Hex        string  `json:"hex"`
	R          uint8   `json:"r"`
	G          uint8   `json:"g"`
	B          uint8   `json:"b"`
	Percentage float64 `json:"percentage"`
}

// Palette returns up to count dominant colors, most frequent first.
//
// Pixels are first quantized to 16-unit bins, then bins closer than a
// small CIE-Lab distance are merged into the more frequent one, so a
// smooth sky reads as one entry instead of a dozen near-identical blues.
func Palette(buf *raster.Buffer, count int) []PaletteEntry {
	if count < 1 {
		count = 1
	}

	type bin struct {
		r, g, b uint8
		pixels  int
	}
	counts := make(map[[3]uint8]*bin)
	total := 0
	for i := 0; i < len(buf.Pix); i += 4 {
		key := [3]uint8{
			buf.Pix[i] / quantStep * quantStep,
			buf.Pix[i+1] / quantStep * quantStep,
			buf.Pix[i+2] / quantStep * quantStep,
		}
		if b, ok := counts[key]; ok {
			b.pixels++
		} else {
			counts[key] = &bin{r: key[0], g: key[1], b: key[2], pixels: 1}
		}
		total++
	}

	bins := make([]*bin, 0, len(counts))
	for _, b := range counts {
		bins = append(bins, b)
	}
	sort.Slice(bins, func(i, j int) bool {
		if bins[i].pixels != bins[j].pixels {
			return bins[i].pixels > bins[j].pixels
		}
		// Deterministic order among equal counts.
		a, b := bins[i], bins[j]
		if a.r != b.r {
			return a.r < b.r
		}
		if a.g != b.g {
			return a.g < b.g
		}
		return a.b < b.b
	})

	// Merge perceptually close bins into the more frequent one.
	merged := make([]*bin, 0, len(bins))
	labs := make([]colorful.Color, 0, len(bins))
	for _, b := range bins {
		c := colorful.Color{R: float64(b.r) / 255, G: float64(b.g) / 255, B: float64(b.b) / 255}
		absorbed := false
		for i, m := range merged {
			if c.DistanceLab(labs[i]) < mergeDistance {
				m.pixels += b.pixels
				absorbed = true
				break
			}
		}
		if !absorbed {
			merged = append(merged, b)
			labs = append(labs, c)
		}
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].pixels > merged[j].pixels })
	if len(merged) > count {
		merged = merged[:count]
	}

	out := make([]PaletteEntry, len(merged))
	for i, b := range merged {
		out[i] = PaletteEntry{
			Hex:        fmt.Sprintf("#%02X%02X%02X", b.r, b.g, b.b),
			R:          b.r,
			G:          b.g,
			B:          b.b,
			Percentage: float64(b.pixels) / float64(total) * 100,
		}
	}
	return out
}
