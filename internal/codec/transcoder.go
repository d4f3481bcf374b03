// Package codec is the decode capability of the pipeline: entropy-variant
// probing, first-frame decoding, thumbnail constraining, and re-encoding
// into the efficient target format (WebP).
package codec

import (
	"bytes"
	"fmt"
	"image"
	"os"

	// Decoders for the formats the catalog stores besides WebP.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Transcoder decodes an image file and re-encodes it as WebP, constraining
// the longest edge. It is stateless and safe for concurrent use; the work
// is CPU-bound and holds no locks.
type Transcoder struct {
	maxEdge int
	quality float32
}

// NewTranscoder creates a transcoder producing images of at most maxEdge
// pixels on the longest side at the given WebP quality.
func NewTranscoder(maxEdge int, quality float32) *Transcoder {
	return &Transcoder{maxEdge: maxEdge, quality: quality}
}

// Transcode decodes the file (first frame only for animated sources),
// scales it down to fit maxEdge without upscaling, and returns the WebP
// encoding.
func (t *Transcoder) Transcode(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// image.Decode stops after the first frame of multi-frame sources.
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return t.encode(thumbnail(img, t.maxEdge))
}

// ProbeArithmetic reports whether a JPEG uses arithmetic entropy coding.
func (t *Transcoder) ProbeArithmetic(path string) (bool, error) {
	return ProbeArithmeticJPEG(path)
}

func (t *Transcoder) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: t.quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// thumbnail constrains the longest edge to maxEdge preserving aspect ratio.
// Images already within bounds are returned unscaled.
func thumbnail(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxEdge && bounds.Dy() <= maxEdge {
		return img
	}
	return imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
}
