package operator

import (
	"github.com/retouchlab/retouch/internal/raster"
)

// kernel3 is a 3x3 convolution kernel in row-major order.
type kernel3 [3][3]float64

// convolveRGB convolves the RGB channels of src with a 3x3 kernel using
// clamp-extend borders. Alpha is copied from the source. The result is
// rounded and clamped per channel.
func convolveRGB(src *raster.Buffer, k kernel3) *raster.Buffer {
	out := raster.New(src.W, src.H)
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			var sumR, sumG, sumB float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					w := k[ky+1][kx+1]
					if w == 0 {
						continue
					}
					px := raster.ClampInt(x+kx, 0, src.W-1)
					py := raster.ClampInt(y+ky, 0, src.H-1)
					i := src.Offset(px, py)
					sumR += w * float64(src.Pix[i])
					sumG += w * float64(src.Pix[i+1])
					sumB += w * float64(src.Pix[i+2])
				}
			}
			i := out.Offset(x, y)
			out.Pix[i] = raster.ClampU8(sumR)
			out.Pix[i+1] = raster.ClampU8(sumG)
			out.Pix[i+2] = raster.ClampU8(sumB)
			out.Pix[i+3] = src.Pix[src.Offset(x, y)+3]
		}
	}
	return out
}

// lumaPlane extracts the Rec.601 luma of every pixel as a flat float
// plane, the working representation for gradient operators.
func lumaPlane(src *raster.Buffer) []float64 {
	plane := make([]float64, src.W*src.H)
	for i, j := 0, 0; i < len(src.Pix); i, j = i+4, j+1 {
		plane[j] = raster.Luma(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
	}
	return plane
}

// planeAt samples a luma plane with clamp-extend borders.
func planeAt(plane []float64, w, h, x, y int) float64 {
	x = raster.ClampInt(x, 0, w-1)
	y = raster.ClampInt(y, 0, h-1)
	return plane[y*w+x]
}
