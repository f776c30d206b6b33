package operator

import (
	"fmt"
	"math"

	"github.com/retouchlab/retouch/internal/raster"
)

// EdgeMode selects the gradient operator used by EdgeDetect.
type EdgeMode int

const (
	// EdgeNone disables edge detection (the neutral value).
	EdgeNone EdgeMode = iota
	// EdgeSobel uses the 3x3 Sobel kernels.
	EdgeSobel
	// EdgePrewitt uses the 3x3 Prewitt kernels.
	EdgePrewitt
	// EdgeRoberts uses the 2x2 Roberts cross kernels.
	EdgeRoberts
)

// String returns the lowercase name of the mode.
func (m EdgeMode) String() string {
	switch m {
	case EdgeNone:
		return "none"
	case EdgeSobel:
		return "sobel"
	case EdgePrewitt:
		return "prewitt"
	case EdgeRoberts:
		return "roberts"
	}
	return fmt.Sprintf("EdgeMode(%d)", int(m))
}

// ParseEdgeMode maps a mode name to its EdgeMode value.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch s {
	case "none", "":
		return EdgeNone, nil
	case "sobel":
		return EdgeSobel, nil
	case "prewitt":
		return EdgePrewitt, nil
	case "roberts":
		return EdgeRoberts, nil
	}
	return EdgeNone, fmt.Errorf("unknown edge mode: %q", s)
}

// EdgeDetect approximates the luma gradient with a pair of fixed kernels
// and replaces every pixel with the gradient magnitude
// min(255, sqrt(Gx²+Gy²)) replicated into R, G and B.
//
// This operator discards transparency: alpha is forced to 255. Samples
// beyond the image reuse the nearest edge pixel. EdgeNone returns an
// unmodified copy.
func EdgeDetect(src *raster.Buffer, mode EdgeMode) *raster.Buffer {
	if mode == EdgeNone {
		return src.Clone()
	}

	plane := lumaPlane(src)
	out := raster.New(src.W, src.H)

	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			var gx, gy float64
			switch mode {
			case EdgeSobel:
				gx, gy = gradient3(plane, src.W, src.H, x, y, sobelX, sobelY)
			case EdgePrewitt:
				gx, gy = gradient3(plane, src.W, src.H, x, y, prewittX, prewittY)
			case EdgeRoberts:
				// Roberts cross: diagonal differences over a 2x2
				// neighborhood anchored at (x, y).
				p00 := planeAt(plane, src.W, src.H, x, y)
				p10 := planeAt(plane, src.W, src.H, x+1, y)
				p01 := planeAt(plane, src.W, src.H, x, y+1)
				p11 := planeAt(plane, src.W, src.H, x+1, y+1)
				gx = p00 - p11
				gy = p10 - p01
			}

			mag := math.Sqrt(gx*gx + gy*gy)
			if mag > 255 {
				mag = 255
			}
			v := uint8(math.Round(mag))
			i := out.Offset(x, y)
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = v, v, v
			out.Pix[i+3] = 255
		}
	}
	return out
}

var (
	sobelX = kernel3{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = kernel3{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
	prewittX = kernel3{
		{-1, 0, 1},
		{-1, 0, 1},
		{-1, 0, 1},
	}
	prewittY = kernel3{
		{-1, -1, -1},
		{0, 0, 0},
		{1, 1, 1},
	}
)

// gradient3 applies a pair of 3x3 kernels to the luma plane at (x, y)
// with clamp-extend sampling.
func gradient3(plane []float64, w, h, x, y int, kx, ky kernel3) (gx, gy float64) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			v := planeAt(plane, w, h, x+dx, y+dy)
			gx += v * kx[dy+1][dx+1]
			gy += v * ky[dy+1][dx+1]
		}
	}
	return gx, gy
}
