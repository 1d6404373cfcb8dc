package submission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/stripscan/stripscan/internal/decode"
	"github.com/stripscan/stripscan/internal/imaging"
	"github.com/stripscan/stripscan/internal/model"
	"github.com/stripscan/stripscan/internal/store"
)

// Validation errors, rejected before any processing runs.
var (
	ErrUnsupportedType = errors.New("invalid file type: only JPEG and PNG images are accepted")
	ErrTooLarge        = errors.New("file too large")
)

// Service runs the upload pipeline and exposes submission retrieval. It holds
// an explicitly injected store handle; there is no process-wide state.
type Service struct {
	db         *sql.DB
	decoder    *decode.Decoder
	uploadsDir string
	maxBytes   int64
	now        func() time.Time
}

// NewService creates a Service writing images under uploadsDir and rejecting
// uploads larger than maxBytes.
func NewService(db *sql.DB, decoder *decode.Decoder, uploadsDir string, maxBytes int64) *Service {
	return &Service{
		db:         db,
		decoder:    decoder,
		uploadsDir: uploadsDir,
		maxBytes:   maxBytes,
		now:        time.Now,
	}
}

// MaxBytes returns the configured upload size limit.
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// HandleUpload processes one strip image end to end: validate, decode,
// assess quality, classify, thumbnail, persist. A failed decode is a
// legitimate outcome and still produces a persisted record with status
// "error"; only validation failures and infrastructure errors return an
// error instead of a record.
//
// The store insert is last and authoritative. If the image and thumbnail
// files are written but the insert fails, the orphaned files are left in
// place; they are unreferenced and harmless, and cleaning them up here would
// turn a reportable storage failure into a multi-step rollback.
func (s *Service) HandleUpload(ctx context.Context, data []byte, filename, mimeType string) (*model.Submission, error) {
	if !imaging.AllowedMIME[mimeType] {
		return nil, fmt.Errorf("%w (got %q)", ErrUnsupportedType, mimeType)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: maximum upload size is %d bytes", ErrTooLarge, s.maxBytes)
	}

	img, err := imaging.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("processing image: %w", err)
	}
	bounds := img.Bounds()

	result := s.decoder.DecodeImage(img)

	quality := AssessQuality(bounds.Dx(), bounds.Dy(), int64(len(data)))

	payload := ""
	if result != nil {
		payload = result.Payload
	}
	cls := Classify(payload, s.now())

	// The thumbnail is generated regardless of decode outcome: failed scans
	// still need a preview in the history view.
	thumb, err := imaging.Thumbnail(img)
	if err != nil {
		return nil, fmt.Errorf("generating thumbnail: %w", err)
	}

	originalPath, thumbnailPath, err := s.writeFiles(data, mimeType, thumb)
	if err != nil {
		return nil, err
	}

	rec := &model.Submission{
		QRCodeValid:       cls.QRCodeValid,
		Status:            cls.Status,
		Quality:           quality,
		OriginalImagePath: originalPath,
		ThumbnailPath:     thumbnailPath,
		ImageSize:         int64(len(data)),
		ImageWidth:        bounds.Dx(),
		ImageHeight:       bounds.Dy(),
		ErrorMessage:      cls.ErrorMessage,
	}
	if result != nil {
		rec.QRCode = &result.Payload
	}

	created, err := store.CreateSubmission(ctx, s.db, rec)
	if err != nil {
		return nil, fmt.Errorf("saving submission: %w", err)
	}

	attrs := []any{"id", created.ID, "status", created.Status, "quality", created.Quality, "file", filename}
	if result != nil {
		attrs = append(attrs, "strategy", result.Strategy)
	}
	slog.Info("upload processed", attrs...)

	return created, nil
}

// Get returns a submission by ID, or nil if it does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*model.Submission, error) {
	return store.GetSubmission(ctx, s.db, id)
}

// List returns one page of submissions, newest first. Out-of-range values
// fall back to the defaults (page 1, limit 10).
func (s *Service) List(ctx context.Context, page, limit int) (*model.SubmissionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return store.ListSubmissions(ctx, s.db, page, limit)
}

// writeFiles persists the original image and its thumbnail under a
// collision-free per-upload token, so concurrent uploads never clash.
func (s *Service) writeFiles(data []byte, mimeType string, thumb []byte) (string, string, error) {
	token := s.now().UTC().Format("20060102T150405") + "-" + uuid.NewString()

	ext := ".jpg"
	if mimeType == "image/png" {
		ext = ".png"
	}

	originalPath := filepath.Join(s.uploadsDir, token+ext)
	thumbnailPath := filepath.Join(s.uploadsDir, token+"-thumb.jpg")

	if err := os.WriteFile(originalPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("writing original image: %w", err)
	}
	if err := os.WriteFile(thumbnailPath, thumb, 0o644); err != nil {
		return "", "", fmt.Errorf("writing thumbnail: %w", err)
	}

	return originalPath, thumbnailPath, nil
}
