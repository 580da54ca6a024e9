package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const grayscaleQuality = 90

type ImageProcessor struct {
	Quality int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{Quality: grayscaleQuality}
}

// Grayscale decodes a jpeg, png or gif image and re-encodes it as a
// grayscale JPEG. Every pixel of the result has R == G == B.
func (p *ImageProcessor) Grayscale(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	gray := imaging.Grayscale(img)

	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, gray, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("cannot encode grayscale image: %w", err)
	}
	return b.Bytes(), nil
}
