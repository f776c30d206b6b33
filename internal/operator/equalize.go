package operator

import (
	"fmt"
	"math"

	"github.com/retouchlab/retouch/internal/histogram"
	"github.com/retouchlab/retouch/internal/raster"
)

// EqualizeMode selects how histogram equalization remaps intensities.
type EqualizeMode int

const (
	// EqualizeLuminance equalizes the luma distribution and rescales
	// R, G and B proportionally, preserving color ratios.
	EqualizeLuminance EqualizeMode = iota
	// EqualizeRGB equalizes each color channel independently.
	EqualizeRGB
)

// String returns the lowercase name of the mode.
func (m EqualizeMode) String() string {
	switch m {
	case EqualizeLuminance:
		return "luminance"
	case EqualizeRGB:
		return "rgb"
	}
	return fmt.Sprintf("EqualizeMode(%d)", int(m))
}

// ParseEqualizeMode maps a mode name to its EqualizeMode value.
func ParseEqualizeMode(s string) (EqualizeMode, error) {
	switch s {
	case "luminance", "":
		return EqualizeLuminance, nil
	case "rgb":
		return EqualizeRGB, nil
	}
	return EqualizeLuminance, fmt.Errorf("unknown equalize mode: %q", s)
}

// Equalize remaps pixel intensities through the image's cumulative
// distribution function and blends the result with the original by
// alpha = strength/100.
//
// The blend is what makes the parameter continuous: strength 0 is
// exactly identity, strength 100 is the fully equalized image, and
// intermediate strengths interpolate per pixel — never an on/off jump.
//
// In RGB mode each channel is equalized against its own histogram. In
// luminance mode the luma distribution drives the remap and each
// channel is rescaled by newLuma/oldLuma so hue and saturation hold;
// a pixel with zero luma takes the new luma in all three channels.
func Equalize(src *raster.Buffer, strength int, mode EqualizeMode) *raster.Buffer {
	if strength <= 0 {
		return src.Clone()
	}
	if strength > 100 {
		strength = 100
	}
	alpha := float64(strength) / 100
	stats := histogram.Compute(src)
	total := src.W * src.H

	out := src.Clone()
	switch mode {
	case EqualizeRGB:
		mapR := equalizeMap(&stats.R, total)
		mapG := equalizeMap(&stats.G, total)
		mapB := equalizeMap(&stats.B, total)
		pix := out.Pix
		for i := 0; i < len(pix); i += 4 {
			pix[i] = blend(pix[i], mapR[pix[i]], alpha)
			pix[i+1] = blend(pix[i+1], mapG[pix[i+1]], alpha)
			pix[i+2] = blend(pix[i+2], mapB[pix[i+2]], alpha)
		}
	case EqualizeLuminance:
		mapL := equalizeMap(&stats.Luma, total)
		pix := out.Pix
		for i := 0; i < len(pix); i += 4 {
			oldLuma := raster.LumaU8(pix[i], pix[i+1], pix[i+2])
			newLuma := mapL[oldLuma]
			for c := 0; c < 3; c++ {
				var eq uint8
				if oldLuma == 0 {
					eq = newLuma
				} else {
					ratio := float64(newLuma) / float64(oldLuma)
					eq = raster.ClampU8(float64(pix[i+c]) * ratio)
				}
				pix[i+c] = blend(pix[i+c], eq, alpha)
			}
		}
	}
	return out
}

// equalizeMap builds the 256-entry intensity remap
// round((cdf[v]-cdfMin) / (total-cdfMin) * 255). A channel whose pixels
// all share one value has total == cdfMin; the remap is then identity
// since there is nothing to redistribute.
func equalizeMap(counts *[histogram.Buckets]int, total int) [histogram.Buckets]uint8 {
	var m [histogram.Buckets]uint8
	cdf, cdfMin := histogram.CDF(counts)
	denom := total - cdfMin
	if denom <= 0 {
		for i := range m {
			m[i] = uint8(i)
		}
		return m
	}
	for i := range m {
		if cdf[i] < cdfMin {
			m[i] = 0
			continue
		}
		m[i] = uint8(math.Round(float64(cdf[i]-cdfMin) / float64(denom) * 255))
	}
	return m
}

// blend linearly interpolates between the original and equalized value.
func blend(orig, eq uint8, alpha float64) uint8 {
	return raster.ClampU8(float64(orig) + (float64(eq)-float64(orig))*alpha)
}
