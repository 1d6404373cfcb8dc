package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stripscan/stripscan/internal/model"
)

// CreateSubmission appends a new submission record and returns it with the
// store-assigned id and creation timestamp. Submissions are never updated or
// deleted after this point.
func CreateSubmission(ctx context.Context, db *sql.DB, s *model.Submission) (*model.Submission, error) {
	var qrCode sql.NullString
	if s.QRCode != nil {
		qrCode = sql.NullString{String: *s.QRCode, Valid: true}
	}
	var errMsg sql.NullString
	if s.ErrorMessage != "" {
		errMsg = sql.NullString{String: s.ErrorMessage, Valid: true}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO submissions
		 (qr_code, qr_code_valid, status, quality, original_image_path, thumbnail_path,
		  image_size, image_width, image_height, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		qrCode, s.QRCodeValid, s.Status, s.Quality, s.OriginalImagePath, s.ThumbnailPath,
		s.ImageSize, s.ImageWidth, s.ImageHeight, errMsg,
	)
	if err != nil {
		return nil, fmt.Errorf("creating submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting submission id: %w", err)
	}

	return GetSubmission(ctx, db, id)
}

// GetSubmission returns a submission by ID, or nil if it does not exist.
func GetSubmission(ctx context.Context, db *sql.DB, id int64) (*model.Submission, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, qr_code, qr_code_valid, status, quality, original_image_path,
		        thumbnail_path, image_size, image_width, image_height, error_message, created_at
		 FROM submissions WHERE id = ?`, id,
	)

	s, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting submission: %w", err)
	}
	return s, nil
}

// ListSubmissions returns one page of submissions, newest first, with ties on
// created_at broken by id descending. page and limit must both be >= 1.
func ListSubmissions(ctx context.Context, db *sql.DB, page, limit int) (*model.SubmissionPage, error) {
	var total int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions`,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting submissions: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, qr_code, qr_code_valid, status, quality, original_image_path,
		        thumbnail_path, image_size, image_width, image_height, error_message, created_at
		 FROM submissions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		limit, (page-1)*limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		submissions = append(submissions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.SubmissionPage{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  (total + limit - 1) / limit,
		Submissions: submissions,
	}, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*model.Submission, error) {
	s := &model.Submission{}
	var qrCode, errMsg sql.NullString
	err := row.Scan(&s.ID, &qrCode, &s.QRCodeValid, &s.Status, &s.Quality,
		&s.OriginalImagePath, &s.ThumbnailPath, &s.ImageSize, &s.ImageWidth,
		&s.ImageHeight, &errMsg, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if qrCode.Valid {
		s.QRCode = &qrCode.String
	}
	s.ErrorMessage = errMsg.String
	return s, nil
}
