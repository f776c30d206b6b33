// Package codec is the file-format boundary of the pipeline: it decodes
// image files into pixel buffers and encodes buffers back out. The core
// never sees a file format; everything beyond this package works on raw
// buffers.
package codec

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/retouchlab/retouch/internal/raster"
)

// DefaultJPEGQuality is used when saving .jpg/.jpeg output.
const DefaultJPEGQuality = 92

// Decode reads one image from r and converts it to a pixel buffer.
func Decode(r io.Reader) (*raster.Buffer, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return raster.FromImage(img), format, nil
}

// Load decodes the image file at path. A failed load returns an error
// and nothing else happens, so callers keep their previous state.
func Load(path string) (*raster.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	buf, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return buf, nil
}

// Save encodes the buffer to path, choosing the encoder from the file
// extension: .png, .jpg or .jpeg. Other extensions are rejected.
func Save(buf *raster.Buffer, path string) error {
	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(DefaultJPEGQuality)
	default:
		return fmt.Errorf("unsupported output format: %q", filepath.Ext(path))
	}

	if err := imgio.Save(path, buf.NRGBA(), enc); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}
