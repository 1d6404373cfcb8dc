package submission

import (
	"testing"

	"github.com/stripscan/stripscan/internal/model"
)

func TestAssessQuality(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		size   int64
		want   string
	}{
		{"high res, high detail", 1200, 1000, 800_000, model.QualityGood},
		{"high res, heavy compression", 1200, 1000, 100_000, model.QualityFair},
		{"medium res", 1000, 600, 100_000, model.QualityFair},
		{"low res, high detail", 400, 400, 60_000, model.QualityFair},
		{"low res, low detail", 400, 400, 20_000, model.QualityPoor},
		{"tiny", 100, 100, 2_000, model.QualityPoor},
		{"zero dimensions", 0, 0, 1_000, model.QualityPoor},
	}

	for _, tt := range tests {
		if got := AssessQuality(tt.width, tt.height, tt.size); got != tt.want {
			t.Errorf("%s: AssessQuality(%d, %d, %d) = %q, want %q",
				tt.name, tt.width, tt.height, tt.size, got, tt.want)
		}
	}
}

func TestAssessQualityGoodBoundary(t *testing.T) {
	// Exactly 1M pixels with just over 0.5 bytes/pixel.
	if got := AssessQuality(1000, 1000, 600_000); got != model.QualityGood {
		t.Errorf("expected good at boundary, got %q", got)
	}
	// Exactly 1M pixels but 0.5 bytes/pixel is not "> 0.5".
	if got := AssessQuality(1000, 1000, 500_000); got != model.QualityFair {
		t.Errorf("expected fair just under the detail threshold, got %q", got)
	}
}
