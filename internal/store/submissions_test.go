package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stripscan/stripscan/internal/db"
	"github.com/stripscan/stripscan/internal/model"
)

func testSubmission(code string) *model.Submission {
	s := &model.Submission{
		Status:            model.StatusProcessed,
		Quality:           model.QualityGood,
		OriginalImagePath: "uploads/a.jpg",
		ThumbnailPath:     "uploads/a-thumb.jpg",
		ImageSize:         12345,
		ImageWidth:        800,
		ImageHeight:       600,
		QRCodeValid:       true,
	}
	if code != "" {
		s.QRCode = &code
	}
	return s
}

func mustCreate(t *testing.T, database *sql.DB, s *model.Submission) *model.Submission {
	t.Helper()
	created, err := CreateSubmission(context.Background(), database, s)
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	return created
}

func TestCreateAndGetSubmission(t *testing.T) {
	database := db.NewTestDB(t)

	created := mustCreate(t, database, testSubmission("ELI-2025-001"))
	if created.ID == 0 {
		t.Error("expected store-assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected store-assigned creation timestamp")
	}

	got, err := GetSubmission(context.Background(), database, created.ID)
	if err != nil {
		t.Fatalf("GetSubmission: %v", err)
	}
	if got == nil {
		t.Fatal("expected submission")
	}
	if got.QRCode == nil || *got.QRCode != "ELI-2025-001" {
		t.Errorf("expected qr code round trip, got %v", got.QRCode)
	}
	if got.Status != model.StatusProcessed || got.Quality != model.QualityGood {
		t.Errorf("unexpected fields: status=%q quality=%q", got.Status, got.Quality)
	}
}

func TestCreateSubmissionWithoutCode(t *testing.T) {
	database := db.NewTestDB(t)

	s := testSubmission("")
	s.Status = model.StatusError
	s.Quality = model.QualityPoor
	s.QRCodeValid = false
	s.ErrorMessage = "no code detected"

	created := mustCreate(t, database, s)
	if created.QRCode != nil {
		t.Errorf("expected absent qr code, got %q", *created.QRCode)
	}
	if created.ErrorMessage != "no code detected" {
		t.Errorf("expected error message round trip, got %q", created.ErrorMessage)
	}
}

func TestGetSubmissionNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetSubmission(context.Background(), database, 9999)
	if err != nil {
		t.Fatalf("GetSubmission: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing submission, got %+v", got)
	}
}

func TestListSubmissionsOrdering(t *testing.T) {
	database := db.NewTestDB(t)

	first := mustCreate(t, database, testSubmission("ELI-2025-001"))
	second := mustCreate(t, database, testSubmission("ELI-2025-002"))
	third := mustCreate(t, database, testSubmission("ELI-2025-003"))

	page, err := ListSubmissions(context.Background(), database, 1, 10)
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	if len(page.Submissions) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(page.Submissions))
	}
	// Newest first; creation timestamps share a second, so id breaks the tie.
	if page.Submissions[0].ID != third.ID ||
		page.Submissions[1].ID != second.ID ||
		page.Submissions[2].ID != first.ID {
		t.Errorf("expected newest-first ordering, got ids %d, %d, %d",
			page.Submissions[0].ID, page.Submissions[1].ID, page.Submissions[2].ID)
	}
}

func TestListSubmissionsPagination(t *testing.T) {
	database := db.NewTestDB(t)

	for i := 0; i < 5; i++ {
		mustCreate(t, database, testSubmission("ELI-2025-001"))
	}

	page, err := ListSubmissions(context.Background(), database, 1, 2)
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	if page.Total != 5 {
		t.Errorf("expected total 5, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Errorf("expected ceil(5/2)=3 pages, got %d", page.TotalPages)
	}
	if len(page.Submissions) != 2 {
		t.Errorf("expected 2 submissions on page 1, got %d", len(page.Submissions))
	}

	last, err := ListSubmissions(context.Background(), database, 3, 2)
	if err != nil {
		t.Fatalf("ListSubmissions page 3: %v", err)
	}
	if len(last.Submissions) != 1 {
		t.Errorf("expected 1 submission on the last page, got %d", len(last.Submissions))
	}

	beyond, err := ListSubmissions(context.Background(), database, 4, 2)
	if err != nil {
		t.Fatalf("ListSubmissions page 4: %v", err)
	}
	if len(beyond.Submissions) != 0 {
		t.Errorf("expected empty page beyond the end, got %d", len(beyond.Submissions))
	}
}

func TestListSubmissionsEmpty(t *testing.T) {
	database := db.NewTestDB(t)

	page, err := ListSubmissions(context.Background(), database, 1, 10)
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	if page.Total != 0 || page.TotalPages != 0 {
		t.Errorf("expected zero totals, got total=%d totalPages=%d", page.Total, page.TotalPages)
	}
	if page.Submissions == nil {
		t.Error("expected empty slice, not nil")
	}
}
