package evidence

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	thumbnailSize    = 480
	thumbnailQuality = 82
)

// Thumbnail renders a JPEG preview variant of an evidence image for the
// authority dashboard lists. The original is stored untouched.
func Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbnailQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}

// ThumbnailKey derives the object key for the preview variant of objectKey.
func ThumbnailKey(objectKey string) string {
	if idx := strings.LastIndex(objectKey, "."); idx > 0 {
		return objectKey[:idx] + "_thumb.jpg"
	}
	return objectKey + "_thumb.jpg"
}
