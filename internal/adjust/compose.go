package adjust

import (
	"github.com/retouchlab/retouch/internal/operator"
	"github.com/retouchlab/retouch/internal/raster"
)

// Compose derives the current buffer from the untouched original.
//
// It always starts from a fresh deep copy and re-applies the whole
// stack, so rounding error never compounds across edits and every
// parameter stays independently adjustable. Operators run in a fixed
// total order and are skipped at their neutral value:
//
//	brightness, contrast, saturation, RGB offset, grayscale, invert,
//	box blur, sharpen, equalization, median, Gaussian blur,
//	Laplacian sharpen, edge detection
//
// The order is not user-configurable; changing it changes output
// (sharpening before denoising amplifies noise, edge detection last
// because it discards color). Composition is synchronous and performs
// no caching of intermediate stages.
func Compose(original *raster.Buffer, a Adjustments) *raster.Buffer {
	out := original.Clone()

	if a.Brightness != 0 {
		out = operator.Brightness(out, a.Brightness)
	}
	if a.Contrast != 0 {
		out = operator.Contrast(out, a.Contrast)
	}
	if a.Saturation != 0 {
		out = operator.Saturation(out, a.Saturation)
	}
	if a.OffsetR != 0 || a.OffsetG != 0 || a.OffsetB != 0 {
		out = operator.ChannelOffset(out, a.OffsetR, a.OffsetG, a.OffsetB)
	}
	if a.Grayscale {
		out = operator.Grayscale(out)
	}
	if a.Invert {
		out = operator.Invert(out)
	}
	if a.BlurRadius > 0 {
		out = operator.BoxBlur(out, a.BlurRadius)
	}
	if a.SharpenAmount != 0 {
		out = operator.Sharpen(out, a.SharpenAmount)
	}
	if a.Equalize.Strength > 0 {
		out = operator.Equalize(out, a.Equalize.Strength, a.Equalize.Mode)
	}
	if a.MedianRadius > 0 {
		out = operator.Median(out, a.MedianRadius)
	}
	if a.GaussianSigma > 0 {
		out = operator.GaussianBlur(out, a.GaussianSigma)
	}
	if a.Laplacian {
		out = operator.LaplacianSharpen(out)
	}
	if a.Edge != operator.EdgeNone {
		out = operator.EdgeDetect(out, a.Edge)
	}

	return out
}
