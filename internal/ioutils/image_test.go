package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageService_ResizeImage(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{name: "landscape", w: 600, h: 400, max: 300, wantW: 300, wantH: 200},
		{name: "portrait", w: 400, h: 800, max: 200, wantW: 100, wantH: 200},
		{name: "already small", w: 50, h: 40, max: 300, wantW: 50, wantH: 40},
	}

	svc := NewImageService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.ResizeImage(context.Background(), pngBytes(t, tt.w, tt.h), tt.max)
			require.NoError(t, err)

			cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
		})
	}
}

func TestImageService_ResizeImage_Errors(t *testing.T) {
	svc := NewImageService()

	_, err := svc.ResizeImage(context.Background(), []byte("not an image"), 100)
	assert.Error(t, err)

	_, err = svc.ResizeImage(context.Background(), pngBytes(t, 10, 10), 0)
	assert.Error(t, err)
}

func TestImageService_WriteThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "1.png")
	dst := filepath.Join(dir, "1_thumb.jpg")
	require.NoError(t, os.WriteFile(src, pngBytes(t, 1000, 500), 0644))

	require.NoError(t, NewImageService().WriteThumbnail(context.Background(), src, dst, 100))

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}
