package operator

import (
	"github.com/retouchlab/retouch/internal/raster"
)

// Sharpen applies a parametric unsharp kernel interpolated between
// identity and the fixed Laplacian-sharpen kernel
//
//	 0 -1  0
//	-1  5 -1
//	 0 -1  0
//
// by alpha = strength/100: center weight 1+4*alpha, the four edge
// weights -alpha, corners 0. Strength 0 is exactly identity.
func Sharpen(src *raster.Buffer, strength int) *raster.Buffer {
	if strength == 0 {
		return src.Clone()
	}
	alpha := float64(strength) / 100
	k := kernel3{
		{0, -alpha, 0},
		{-alpha, 1 + 4*alpha, -alpha},
		{0, -alpha, 0},
	}
	return convolveRGB(src, k)
}

// LaplacianSharpen convolves with the fixed Laplacian
//
//	 0 -1  0
//	-1  4 -1
//	 0 -1  0
//
// and adds the response to the original pixel, emphasizing fine detail.
// Equivalent to a single convolution with center 5 and edges -1.
func LaplacianSharpen(src *raster.Buffer) *raster.Buffer {
	k := kernel3{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}
	return convolveRGB(src, k)
}
