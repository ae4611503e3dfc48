// Package encode turns rendered frames into compressed image bytes.
package encode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// DefaultJPEGQuality matches what the inference endpoint is sent.
const DefaultJPEGQuality = 92

// Encoder writes an image in one fixed format.
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
	MIMEType() string
	Ext() string
}

// JPEG encodes baseline JPEG at a fixed quality.
type JPEG struct {
	Quality int
}

func (e JPEG) Encode(w io.Writer, img image.Image) error {
	q := e.Quality
	if q <= 0 || q > 100 {
		q = DefaultJPEGQuality
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
}

func (JPEG) MIMEType() string { return "image/jpeg" }
func (JPEG) Ext() string      { return ".jpg" }

// PNG encodes lossless PNG.
type PNG struct{}

func (PNG) Encode(w io.Writer, img image.Image) error { return png.Encode(w, img) }
func (PNG) MIMEType() string                          { return "image/png" }
func (PNG) Ext() string                               { return ".png" }

// WebP encodes lossless WebP.
type WebP struct{}

func (WebP) Encode(w io.Writer, img image.Image) error { return nativewebp.Encode(w, img, nil) }
func (WebP) MIMEType() string                          { return "image/webp" }
func (WebP) Ext() string                               { return ".webp" }

// ForFormat returns the encoder for a format name: jpeg (default), png, webp.
func ForFormat(name string, quality int) (Encoder, error) {
	switch strings.ToLower(name) {
	case "", "jpeg", "jpg":
		return JPEG{Quality: quality}, nil
	case "png":
		return PNG{}, nil
	case "webp":
		return WebP{}, nil
	}
	return nil, fmt.Errorf("encode: unknown format %q", name)
}

// Bytes encodes img into memory.
func Bytes(e Encoder, img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL formats encoded bytes as a base64 data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
