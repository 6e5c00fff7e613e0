package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"

	"golang.org/x/image/draw"
)

// ImageService produces thumbnails of downloaded comics.
//
// Example usage:
//
//	svc := NewImageService()
//	err := svc.WriteThumbnail(ctx, "614.png", "614_thumb.jpg", 300)
type ImageService struct {
	// Quality is the JPEG quality used for thumbnails.
	Quality int
}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{Quality: 90}
}

// ResizeImage resizes an image to fit within maxSize x maxSize.
//
// The aspect ratio is preserved. Images already within bounds are only
// re-encoded. Returns the result as JPEG-encoded bytes.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// A 1500x1000 image becomes 300x200
//	resized, err := svc.ResizeImage(ctx, imageData, 300)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("invalid thumbnail size %d", maxSize)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxSize)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Comics have transparent backgrounds; paint white first so JPEG has no black areas.
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: s.Quality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteThumbnail reads the image at src and writes a resized JPEG to dst.
func (s *ImageService) WriteThumbnail(ctx context.Context, src, dst string, maxSize int) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	thumb, err := s.ResizeImage(ctx, data, maxSize)
	if err != nil {
		return fmt.Errorf("resize %s: %w", src, err)
	}

	return os.WriteFile(dst, thumb, 0644)
}

func fitWithin(width, height, maxSize int) (int, int) {
	if width <= maxSize && height <= maxSize {
		return width, height
	}
	if width >= height {
		h := height * maxSize / width
		return maxSize, max(h, 1)
	}
	w := width * maxSize / height
	return max(w, 1), maxSize
}
