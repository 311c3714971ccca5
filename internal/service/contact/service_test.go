package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"portfolio-backend/internal/model"
)

type memoryRepository struct {
	mu          sync.Mutex
	submissions []model.ContactSubmissionItem
	failPut     bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{}
}

func (m *memoryRepository) CreateSubmission(ctx context.Context, submission model.ContactSubmissionItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("put failed")
	}
	m.submissions = append(m.submissions, submission)
	return nil
}

func (m *memoryRepository) ListSubmissions(ctx context.Context, limit int) ([]model.ContactSubmissionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ContactSubmissionItem, len(m.submissions))
	copy(out, m.submissions)
	return out, nil
}

func fixedTime() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func TestSubmitPersistsOneRow(t *testing.T) {
	repo := newMemoryRepository()
	service := NewWithRepository(repo, fixedTime)

	result, err := service.Submit(context.Background(), SubmitParams{
		Name:    "Ava",
		Email:   "ava@x.com",
		Message: "Hi",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.ID == "" {
		t.Fatal("no id returned")
	}
	if !result.CreatedAt.Equal(fixedTime()) {
		t.Fatalf("unexpected created at: %v", result.CreatedAt)
	}

	if len(repo.submissions) != 1 {
		t.Fatalf("expected 1 row, got %d", len(repo.submissions))
	}
	row := repo.submissions[0]
	if row.Name != "Ava" || row.Email != "ava@x.com" || row.Message != "Hi" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.Source != SourceLabel {
		t.Fatalf("unexpected source: %s", row.Source)
	}
	if row.Company != nil || row.Phone != nil {
		t.Fatal("absent optional fields should be nil")
	}
}

func TestSubmitKeepsOptionalFields(t *testing.T) {
	repo := newMemoryRepository()
	service := NewWithRepository(repo, fixedTime)

	if _, err := service.Submit(context.Background(), SubmitParams{
		Name:    "Ava",
		Email:   "ava@x.com",
		Company: "Acme",
		Phone:   "+971 50 000 0000",
		Message: "Hi",
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	row := repo.submissions[0]
	if row.Company == nil || *row.Company != "Acme" {
		t.Fatalf("company not stored: %v", row.Company)
	}
	if row.Phone == nil || *row.Phone != "+971 50 000 0000" {
		t.Fatalf("phone not stored: %v", row.Phone)
	}
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	repo := newMemoryRepository()
	service := NewWithRepository(repo, fixedTime)

	cases := []SubmitParams{
		{Email: "ava@x.com", Message: "Hi"},
		{Name: "Ava", Message: "Hi"},
		{Name: "Ava", Email: "ava@x.com"},
		{Name: "  ", Email: "ava@x.com", Message: "Hi"},
	}

	for _, params := range cases {
		_, err := service.Submit(context.Background(), params)
		var svcErr *Error
		if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", params, err)
		}
		if svcErr.Message != "Name, email, and message are required" {
			t.Fatalf("unexpected message: %s", svcErr.Message)
		}
	}

	if len(repo.submissions) != 0 {
		t.Fatalf("rejected submissions were persisted: %d rows", len(repo.submissions))
	}
}

func TestSubmitRejectsMalformedEmail(t *testing.T) {
	repo := newMemoryRepository()
	service := NewWithRepository(repo, fixedTime)

	for _, email := range []string{"ava", "ava@", "@x.com", "ava@x", "a va@x.com"} {
		_, err := service.Submit(context.Background(), SubmitParams{
			Name:    "Ava",
			Email:   email,
			Message: "Hi",
		})
		var svcErr *Error
		if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeValidation {
			t.Fatalf("expected validation error for email %q, got %v", email, err)
		}
		if svcErr.Message != "Invalid email format" {
			t.Fatalf("unexpected message for %q: %s", email, svcErr.Message)
		}
	}

	if len(repo.submissions) != 0 {
		t.Fatal("malformed email was persisted")
	}
}

func TestSubmitMapsPersistenceFailure(t *testing.T) {
	repo := newMemoryRepository()
	repo.failPut = true
	service := NewWithRepository(repo, fixedTime)

	_, err := service.Submit(context.Background(), SubmitParams{
		Name:    "Ava",
		Email:   "ava@x.com",
		Message: "Hi",
	})

	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if svcErr.Message != "Failed to submit message. Please try again." {
		t.Fatalf("internal detail leaked into message: %s", svcErr.Message)
	}
}
