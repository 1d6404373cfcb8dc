package submission

import "github.com/stripscan/stripscan/internal/model"

// Quality thresholds. bytesPerPixel is a cheap proxy for compression loss:
// a heavily compressed photo of the same resolution carries fewer bytes.
const (
	goodPixels = 1_000_000
	fairPixels = 500_000
	goodBPP    = 0.5
	fairBPP    = 0.3
)

// AssessQuality grades image fitness from resolution and file size alone.
// Independent of decode outcome: it runs even when no payload is found.
func AssessQuality(width, height int, sizeBytes int64) string {
	totalPixels := width * height
	if totalPixels <= 0 {
		return model.QualityPoor
	}
	bytesPerPixel := float64(sizeBytes) / float64(totalPixels)

	if totalPixels >= goodPixels && bytesPerPixel > goodBPP {
		return model.QualityGood
	}
	if totalPixels >= fairPixels || bytesPerPixel > fairBPP {
		return model.QualityFair
	}
	return model.QualityPoor
}
