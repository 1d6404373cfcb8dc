package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/stripscan/stripscan/internal/submission"
)

// multipartOverhead covers boundary and part-header bytes so that a file
// exactly at the size limit still parses.
const multipartOverhead = 1 << 20

// SubmissionsHandler handles the strip upload and history endpoints.
type SubmissionsHandler struct {
	Service *submission.Service
}

type uploadResponse struct {
	ID           int64     `json:"id"`
	Status       string    `json:"status"`
	QRCode       *string   `json:"qrCode"`
	QRCodeValid  bool      `json:"qrCodeValid"`
	Quality      string    `json:"quality"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	ProcessedAt  time.Time `json:"processedAt"`
	ThumbnailURL string    `json:"thumbnailUrl"`
}

// Upload handles POST /api/test-strips/upload. Any completed classification,
// including a failed decode, is a 200; only validation failures and
// infrastructure errors map to 4xx/5xx.
func (h *SubmissionsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.Service.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(maxBytes + multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file too large: maximum upload size is %d bytes", maxBytes))
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	sub, err := h.Service.HandleUpload(r.Context(), data, header.Filename, header.Header.Get("Content-Type"))
	switch {
	case errors.Is(err, submission.ErrUnsupportedType):
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, submission.ErrTooLarge):
		jsonError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	case err != nil:
		slog.Error("upload failed", "file", header.Filename, "error", err)
		jsonError(w, http.StatusInternalServerError, "unexpected error processing image")
		return
	}

	jsonResponse(w, http.StatusOK, uploadResponse{
		ID:           sub.ID,
		Status:       sub.Status,
		QRCode:       sub.QRCode,
		QRCodeValid:  sub.QRCodeValid,
		Quality:      sub.Quality,
		ErrorMessage: sub.ErrorMessage,
		ProcessedAt:  sub.CreatedAt,
		ThumbnailURL: sub.ThumbnailPath,
	})
}

// List handles GET /api/test-strips with page and limit query parameters.
func (h *SubmissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.Service.List(r.Context(), page, limit)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to fetch submissions")
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

// Get handles GET /api/test-strips/{id}.
func (h *SubmissionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	sub, err := h.Service.Get(r.Context(), id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to fetch submission")
		return
	}
	if sub == nil {
		jsonError(w, http.StatusNotFound, "submission not found")
		return
	}
	jsonResponse(w, http.StatusOK, sub)
}
