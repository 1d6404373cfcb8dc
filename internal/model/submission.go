package model

import "time"

// Submission is the durable result of one test-strip upload. A record is
// created once by the upload pipeline and never updated or deleted; status
// and qrCodeValid are derived from the decoded payload at creation time.
//
// JSON keys are camelCase because they are the wire contract consumed by the
// mobile app.
type Submission struct {
	ID                int64     `json:"id"`
	QRCode            *string   `json:"qrCode"`
	QRCodeValid       bool      `json:"qrCodeValid"`
	Status            string    `json:"status"`
	Quality           string    `json:"quality"`
	OriginalImagePath string    `json:"originalImagePath"`
	ThumbnailPath     string    `json:"thumbnailUrl"`
	ImageSize         int64     `json:"imageSize"`
	ImageWidth        int       `json:"imageWidth"`
	ImageHeight       int       `json:"imageHeight"`
	ErrorMessage      string    `json:"errorMessage,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Submission statuses.
const (
	StatusProcessed = "processed"
	StatusExpired   = "expired"
	StatusError     = "error"
)

// Quality grades.
const (
	QualityGood = "good"
	QualityFair = "fair"
	QualityPoor = "poor"
)

// SubmissionPage is one page of submissions plus pagination metadata.
// The page is a snapshot: inserts between page fetches may shift records
// across page boundaries.
type SubmissionPage struct {
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
	Total       int          `json:"total"`
	TotalPages  int          `json:"totalPages"`
	Submissions []Submission `json:"submissions"`
}
