package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// ThumbnailSize is the bounding box for generated previews.
const ThumbnailSize = 200

// Thumbnail scales the image to fit the ThumbnailSize box, preserving aspect
// ratio, and encodes it as JPEG. Small sources are scaled up so the preview
// has a consistent display size in the history view.
func Thumbnail(img image.Image) ([]byte, error) {
	b := img.Bounds()
	w, h := fitDims(b.Dx(), b.Dy(), ThumbnailSize)
	thumb := Scale(img, w, h)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
