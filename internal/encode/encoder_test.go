package encode

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 128, 255
	}
	img.SetNRGBA(3, 3, color.NRGBA{0, 255, 0, 255})
	return img
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		name  string
		mime  string
		ext   string
		magic []byte
	}{
		{"", "image/jpeg", ".jpg", []byte{0xFF, 0xD8}},
		{"JPEG", "image/jpeg", ".jpg", []byte{0xFF, 0xD8}},
		{"png", "image/png", ".png", []byte("\x89PNG")},
		{"webp", "image/webp", ".webp", []byte("RIFF")},
	}
	for _, tt := range tests {
		t.Run(tt.mime+"/"+tt.name, func(t *testing.T) {
			e, err := ForFormat(tt.name, 80)
			require.NoError(t, err)
			assert.Equal(t, tt.mime, e.MIMEType())
			assert.Equal(t, tt.ext, e.Ext())

			data, err := Bytes(e, frame())
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, tt.magic))
		})
	}

	_, err := ForFormat("bmp", 0)
	assert.Error(t, err)
}

func TestDataURL(t *testing.T) {
	u := DataURL("image/jpeg", []byte{1, 2, 3})
	assert.True(t, strings.HasPrefix(u, "data:image/jpeg;base64,"))
	assert.Equal(t, "data:image/jpeg;base64,AQID", u)
}
