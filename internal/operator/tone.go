package operator

import (
	"github.com/retouchlab/retouch/internal/raster"
)

// Brightness shifts every RGB channel by value/100 of the full range.
//
// Parameters:
//   - value: -100 to 100. Negative darkens, positive lightens, 0 is
//     identity.
//
// Each channel becomes clamp(c + value/100*255). Alpha is unchanged.
func Brightness(src *raster.Buffer, value int) *raster.Buffer {
	delta := float64(value) / 100 * 255
	return mapRGB(src, func(c uint8) uint8 {
		return raster.ClampU8(float64(c) + delta)
	})
}

// Contrast scales each channel's distance from mid-gray (128) by
// (value+100)/100. value ranges -100 (flat gray) to 100 (doubled
// contrast); 0 is identity.
func Contrast(src *raster.Buffer, value int) *raster.Buffer {
	factor := float64(value+100) / 100
	return mapRGB(src, func(c uint8) uint8 {
		return raster.ClampU8(128 + (float64(c)-128)*factor)
	})
}

// Saturation blends each channel toward (negative values) or away from
// (positive values) the pixel's Rec.601 luma by (value+100)/100.
// At -100 the result is fully desaturated; 0 is identity.
func Saturation(src *raster.Buffer, value int) *raster.Buffer {
	factor := float64(value+100) / 100
	out := src.Clone()
	pix := out.Pix
	for i := 0; i < len(pix); i += 4 {
		l := raster.Luma(pix[i], pix[i+1], pix[i+2])
		for c := 0; c < 3; c++ {
			pix[i+c] = raster.ClampU8(l + (float64(pix[i+c])-l)*factor)
		}
	}
	return out
}

// ChannelOffset adds an independent offset to each RGB channel, each
// expressed as a -100..100 fraction of the full range.
func ChannelOffset(src *raster.Buffer, r, g, b int) *raster.Buffer {
	dr := float64(r) / 100 * 255
	dg := float64(g) / 100 * 255
	db := float64(b) / 100 * 255
	out := src.Clone()
	pix := out.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = raster.ClampU8(float64(pix[i]) + dr)
		pix[i+1] = raster.ClampU8(float64(pix[i+1]) + dg)
		pix[i+2] = raster.ClampU8(float64(pix[i+2]) + db)
	}
	return out
}

// Grayscale replaces R, G and B with the rounded Rec.601 luma.
func Grayscale(src *raster.Buffer) *raster.Buffer {
	out := src.Clone()
	pix := out.Pix
	for i := 0; i < len(pix); i += 4 {
		l := raster.LumaU8(pix[i], pix[i+1], pix[i+2])
		pix[i], pix[i+1], pix[i+2] = l, l, l
	}
	return out
}

// Invert replaces each RGB channel with its complement (255 - c).
func Invert(src *raster.Buffer) *raster.Buffer {
	return mapRGB(src, func(c uint8) uint8 {
		return 255 - c
	})
}

// mapRGB applies fn to the R, G and B samples of every pixel, leaving
// alpha untouched.
func mapRGB(src *raster.Buffer, fn func(uint8) uint8) *raster.Buffer {
	out := src.Clone()
	pix := out.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = fn(pix[i])
		pix[i+1] = fn(pix[i+1])
		pix[i+2] = fn(pix[i+2])
	}
	return out
}
