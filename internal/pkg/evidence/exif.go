package evidence

import (
	"bytes"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureInfo carries the camera metadata recovered from an evidence photo.
type CaptureInfo struct {
	Latitude  float64
	Longitude float64
	HasGPS    bool
	TakenAt   *time.Time
}

// ExtractCapture reads EXIF metadata from an image. Browsers strip GPS data
// inconsistently, so a missing or unreadable EXIF block is not an error -
// the zero CaptureInfo is returned instead.
func ExtractCapture(data []byte) CaptureInfo {
	var info CaptureInfo

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return info
	}

	if lat, lng, err := x.LatLong(); err == nil {
		info.Latitude = lat
		info.Longitude = lng
		info.HasGPS = true
	}

	if taken, err := x.DateTime(); err == nil {
		info.TakenAt = &taken
	}

	return info
}
