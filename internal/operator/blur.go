package operator

import (
	"math"
	"sort"

	"github.com/retouchlab/retouch/internal/raster"
)

// BoxBlur averages each pixel over a square window. The window side is
// max(1, floor(radius*2)+1), always odd; radius 0 yields a side of 1 and
// is identity. Samples beyond the image reuse the nearest edge pixel.
func BoxBlur(src *raster.Buffer, radius float64) *raster.Buffer {
	size := int(math.Floor(radius*2)) + 1
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}
	if size == 1 {
		return src.Clone()
	}
	half := size / 2

	out := raster.New(src.W, src.H)
	n := float64(size * size)
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			var sumR, sumG, sumB float64
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					px := raster.ClampInt(x+kx, 0, src.W-1)
					py := raster.ClampInt(y+ky, 0, src.H-1)
					i := src.Offset(px, py)
					sumR += float64(src.Pix[i])
					sumG += float64(src.Pix[i+1])
					sumB += float64(src.Pix[i+2])
				}
			}
			i := out.Offset(x, y)
			out.Pix[i] = raster.ClampU8(sumR / n)
			out.Pix[i+1] = raster.ClampU8(sumG / n)
			out.Pix[i+2] = raster.ClampU8(sumB / n)
			out.Pix[i+3] = src.Pix[src.Offset(x, y)+3]
		}
	}
	return out
}

// GaussianBlur convolves with a normalized Gaussian kernel of radius
// ceil(3*sigma); weight(dx,dy) = exp(-(dx²+dy²)/(2σ²)). Sigma 0 is
// identity. Borders clamp-extend.
func GaussianBlur(src *raster.Buffer, sigma float64) *raster.Buffer {
	if sigma <= 0 {
		return src.Clone()
	}
	radius := int(math.Ceil(3 * sigma))

	// Build and normalize the kernel once.
	side := 2*radius + 1
	kernel := make([]float64, side*side)
	sum := 0.0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			w := math.Exp(-float64(dx*dx+dy*dy) / (2 * sigma * sigma))
			kernel[(dy+radius)*side+(dx+radius)] = w
			sum += w
		}
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	out := raster.New(src.W, src.H)
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			var sumR, sumG, sumB float64
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					w := kernel[(dy+radius)*side+(dx+radius)]
					px := raster.ClampInt(x+dx, 0, src.W-1)
					py := raster.ClampInt(y+dy, 0, src.H-1)
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

// Median replaces each RGB channel with the median of a (2*radius+1)²
// window, removing impulse noise. Radius 0 is identity. Borders
// clamp-extend, so edge pixels are processed like interior ones.
func Median(src *raster.Buffer, radius int) *raster.Buffer {
	if radius <= 0 {
		return src.Clone()
	}

	side := 2*radius + 1
	window := make([][3]uint8, 0, side*side)
	chans := make([]uint8, side*side)

	out := raster.New(src.W, src.H)
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			window = window[:0]
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					px := raster.ClampInt(x+dx, 0, src.W-1)
					py := raster.ClampInt(y+dy, 0, src.H-1)
					i := src.Offset(px, py)
					window = append(window, [3]uint8{src.Pix[i], src.Pix[i+1], src.Pix[i+2]})
				}
			}

			i := out.Offset(x, y)
			for c := 0; c < 3; c++ {
				chans = chans[:0]
				for _, px := range window {
					chans = append(chans, px[c])
				}
				sort.Slice(chans, func(a, b int) bool { return chans[a] < chans[b] })
				out.Pix[i+c] = chans[len(chans)/2]
			}
			out.Pix[i+3] = src.Pix[src.Offset(x, y)+3]
		}
	}
	return out
}
