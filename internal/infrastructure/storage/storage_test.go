package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metalpedia-backend/internal/config"
)

func TestGrayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 16), G: 200, B: uint8(y * 16), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := NewImageProcessor().Grayscale(buf.Bytes())
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	b := decoded.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			r, g, bl, _ := decoded.At(x, y).RGBA()
			assert.Equal(t, r, g)
			assert.Equal(t, g, bl)
		}
	}
}

func TestGrayscaleRejectsGarbage(t *testing.T) {
	_, err := NewImageProcessor().Grayscale([]byte("not an image"))
	assert.Error(t, err)
}

func TestKeyFromURL(t *testing.T) {
	base := "http://localhost:9000/metalpedia-media"

	tests := []struct {
		name string
		url  string
		key  string
		ok   bool
	}{
		{"logo", base + "/band-logos/abc-1700000000000-logo-bw.jpg", "band-logos/abc-1700000000000-logo-bw.jpg", true},
		{"query stripped", base + "/avatars/addr/me.png?v=2", "avatars/addr/me.png", true},
		{"escaped", base + "/album-covers/b/1-my%20cover.jpg", "album-covers/b/1-my cover.jpg", true},
		{"foreign host", "https://example.com/logo.png", "", false},
		{"bucket root", base + "/", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := keyFromURL(base, tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "https://s3.example.com/media",
		publicBase(configFor("s3.example.com", "media", true, "")))
	assert.Equal(t, "https://cdn.example.com/media",
		publicBase(configFor("minio:9000", "media", false, "https://cdn.example.com")))
}

func configFor(endpoint, bucket string, ssl bool, public string) config.MinIOConfig {
	return config.MinIOConfig{Endpoint: endpoint, Bucket: bucket, UseSSL: ssl, PublicURL: public}
}
