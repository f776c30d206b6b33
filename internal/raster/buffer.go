package raster

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/draw"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Buffer is an in-memory RGBA raster: row-major, 8 bits per channel,
// non-premultiplied alpha. Pix holds exactly 4*W*H bytes in R,G,B,A order.
type Buffer struct {
	W, H int
	Pix  []uint8
}

// New allocates a zeroed buffer of the given dimensions.
// Width and height must be at least 1.
func New(w, h int) *Buffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Buffer{W: w, H: h, Pix: make([]uint8, 4*w*h)}
}

// Offset returns the index of the R sample of pixel (x, y) within Pix.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.W + x) * 4
}

// Clone returns a deep copy. The result shares no memory with b.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{W: b.W, H: b.H, Pix: make([]uint8, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// Equal reports whether two buffers have identical dimensions and
// byte-identical pixel data.
func (b *Buffer) Equal(o *Buffer) bool {
	if o == nil {
		return b == nil
	}
	return b.W == o.W && b.H == o.H && bytes.Equal(b.Pix, o.Pix)
}

// Fingerprint returns an xxHash64 digest of the dimensions and pixel
// bytes. Two buffers share a fingerprint iff they are (with overwhelming
// probability) byte-identical, which makes it a cheap identity for logs
// and cache validators.
func (b *Buffer) Fingerprint() uint64 {
	h := xxhash.New()
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(b.W))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(b.H))
	_, _ = h.Write(dims[:])
	_, _ = h.Write(b.Pix)
	return h.Sum64()
}

// FromImage converts any image.Image into a Buffer, normalizing to
// 8-bit non-premultiplied RGBA. The source is read once; the result owns
// its pixel data.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &Buffer{W: w, H: h, Pix: dst.Pix}
}

// FromNRGBA adopts an *image.NRGBA as a Buffer. When the image is tightly
// packed with its rectangle at the origin the pixel slice is adopted
// without copying; otherwise the rows are repacked.
func FromNRGBA(img *image.NRGBA) *Buffer {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Rect.Min.X == 0 && img.Rect.Min.Y == 0 && img.Stride == 4*w && len(img.Pix) == 4*w*h {
		return &Buffer{W: w, H: h, Pix: img.Pix}
	}
	out := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := img.PixOffset(x+img.Rect.Min.X, y+img.Rect.Min.Y)
			di := out.Offset(x, y)
			copy(out.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return out
}

// NRGBA wraps the buffer as an *image.NRGBA without copying. Mutating
// the returned image mutates the buffer.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: 4 * b.W,
		Rect:   image.Rect(0, 0, b.W, b.H),
	}
}

// Luma returns the Rec.601 luma of an RGB triple as a float in [0, 255].
func Luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// LumaU8 returns the Rec.601 luma rounded to the nearest 8-bit value.
func LumaU8(r, g, b uint8) uint8 {
	return uint8(math.Round(Luma(r, g, b)))
}

// ClampU8 constrains a float to [0, 255] and rounds it to a byte.
func ClampU8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// ClampInt constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func ClampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
