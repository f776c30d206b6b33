// Package histogram derives per-channel frequency statistics from a pixel
// buffer. The stats are a read model: recomputed on demand, never stored,
// consumed by the UI surfaces and by the equalization operator.
package histogram

import (
	"github.com/retouchlab/retouch/internal/raster"
)

// Buckets is the number of intensity levels per channel.
const Buckets = 256

// Stats holds frequency counts for the red, green and blue channels plus
// the Rec.601 luma, 256 buckets each.
type Stats struct {
	R    [Buckets]int `json:"r"`
	G    [Buckets]int `json:"g"`
	B    [Buckets]int `json:"b"`
	Luma [Buckets]int `json:"luma"`
}

// Compute scans the buffer once and returns the per-channel counts.
// Alpha is ignored; fully transparent pixels still contribute their
// stored (non-premultiplied) color values.
func Compute(buf *raster.Buffer) *Stats {
	s := &Stats{}
	pix := buf.Pix
	for i := 0; i < len(pix); i += 4 {
		r, g, b := pix[i], pix[i+1], pix[i+2]
		s.R[r]++
		s.G[g]++
		s.B[b]++
		s.Luma[raster.LumaU8(r, g, b)]++
	}
	return s
}

// CDF returns the running sum of a single channel's counts, plus the
// smallest non-zero cumulative value. The latter anchors the
// equalization remap so the darkest occupied level maps to 0.
func CDF(counts *[Buckets]int) (cdf [Buckets]int, cdfMin int) {
	sum := 0
	for i := 0; i < Buckets; i++ {
		sum += counts[i]
		cdf[i] = sum
		if cdfMin == 0 && sum > 0 {
			cdfMin = sum
		}
	}
	return cdf, cdfMin
}
