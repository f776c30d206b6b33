package operator

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/retouchlab/retouch/internal/raster"
)

// Geometry operators are exact index remappings and the only operators
// that may change buffer dimensions. Rotations are counter-clockwise,
// matching the underlying imaging library.

// Rotate90 rotates 90° counter-clockwise, swapping width and height.
func Rotate90(src *raster.Buffer) *raster.Buffer {
	return raster.FromNRGBA(imaging.Rotate90(src.NRGBA()))
}

// Rotate180 rotates 180°, preserving dimensions.
func Rotate180(src *raster.Buffer) *raster.Buffer {
	return raster.FromNRGBA(imaging.Rotate180(src.NRGBA()))
}

// Rotate270 rotates 270° counter-clockwise, swapping width and height.
func Rotate270(src *raster.Buffer) *raster.Buffer {
	return raster.FromNRGBA(imaging.Rotate270(src.NRGBA()))
}

// FlipH mirrors the image horizontally (left-right).
func FlipH(src *raster.Buffer) *raster.Buffer {
	return raster.FromNRGBA(imaging.FlipH(src.NRGBA()))
}

// FlipV mirrors the image vertically (top-bottom).
func FlipV(src *raster.Buffer) *raster.Buffer {
	return raster.FromNRGBA(imaging.FlipV(src.NRGBA()))
}

// Crop extracts a rectangular region. The requested rectangle is clamped
// to the image bounds and expanded to at least 1x1, so a degenerate
// request yields a single-pixel result rather than an error.
func Crop(src *raster.Buffer, rect image.Rectangle) *raster.Buffer {
	bounds := image.Rect(0, 0, src.W, src.H)
	r := rect.Intersect(bounds)
	if r.Empty() {
		// Clamp the anchor into bounds and take one pixel.
		x := raster.ClampInt(rect.Min.X, 0, src.W-1)
		y := raster.ClampInt(rect.Min.Y, 0, src.H-1)
		r = image.Rect(x, y, x+1, y+1)
	}
	return raster.FromNRGBA(imaging.Crop(src.NRGBA(), r))
}

// Resize scales to the given dimensions with Lanczos resampling. Not part
// of the adjustment chain; used by preview surfaces to bound payload size.
func Resize(src *raster.Buffer, w, h int) *raster.Buffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return raster.FromNRGBA(imaging.Resize(src.NRGBA(), w, h, imaging.Lanczos))
}
