package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"portfolio-backend/internal/api"
	"portfolio-backend/internal/dto"
	"portfolio-backend/internal/model"
	"portfolio-backend/internal/queue"
	contactservice "portfolio-backend/internal/service/contact"
)

func contactFixedTime() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

type contactTestRepository struct {
	submissions []model.ContactSubmissionItem
	createErr   error
}

func (r *contactTestRepository) CreateSubmission(_ context.Context, submission model.ContactSubmissionItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.submissions = append(r.submissions, submission)
	return nil
}

func (r *contactTestRepository) ListSubmissions(_ context.Context, limit int) ([]model.ContactSubmissionItem, error) {
	out := make([]model.ContactSubmissionItem, len(r.submissions))
	copy(out, r.submissions)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func setupContactHandler(t *testing.T, repo contactservice.Repository) (http.Handler, func()) {
	t.Helper()

	service := contactservice.NewWithRepository(repo, contactFixedTime)
	contactEndpoints := NewContactEndpoints(service)

	queueManager := queue.NewRequestQueueManager(10, 1)
	server := api.NewAPIServer(":0", queueManager, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/contact", server.MakeHTTPHandleFunc(contactEndpoints.Contact))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func TestContactSubmit(t *testing.T) {
	repo := &contactTestRepository{}
	handler, cleanup := setupContactHandler(t, repo)
	t.Cleanup(cleanup)

	payload, _ := json.Marshal(dto.ContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Company: "Acme",
		Message: "Hello there",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(payload))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}

	var resp dto.ContactResponse
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !resp.Success || resp.ID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.CreatedAt != contactFixedTime().Format(time.RFC3339) {
		t.Fatalf("unexpected createdAt: %s", resp.CreatedAt)
	}

	if len(repo.submissions) != 1 {
		t.Fatalf("expected 1 stored submission, got %d", len(repo.submissions))
	}
	stored := repo.submissions[0]
	if stored.Name != "Jane Doe" || stored.Email != "jane@example.com" {
		t.Fatalf("unexpected stored submission: %+v", stored)
	}
	if stored.Company == nil || *stored.Company != "Acme" {
		t.Fatalf("expected company to be stored, got %+v", stored.Company)
	}
	if stored.Phone != nil {
		t.Fatalf("expected nil phone, got %q", *stored.Phone)
	}
}

func TestContactSubmitMissingFields(t *testing.T) {
	repo := &contactTestRepository{}
	handler, cleanup := setupContactHandler(t, repo)
	t.Cleanup(cleanup)

	payload, _ := json.Marshal(dto.ContactRequest{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(payload))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", res.Code, res.Body.String())
	}

	var resp api.ApiError
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Name, email, and message are required" {
		t.Fatalf("unexpected error message: %s", resp.Error)
	}

	if len(repo.submissions) != 0 {
		t.Fatalf("rejected submission must not be persisted")
	}
}

func TestContactSubmitInvalidEmail(t *testing.T) {
	repo := &contactTestRepository{}
	handler, cleanup := setupContactHandler(t, repo)
	t.Cleanup(cleanup)

	payload, _ := json.Marshal(dto.ContactRequest{
		Name:    "Jane Doe",
		Email:   "not-an-email",
		Message: "Hello",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(payload))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", res.Code, res.Body.String())
	}

	var resp api.ApiError
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Invalid email format" {
		t.Fatalf("unexpected error message: %s", resp.Error)
	}
}

func TestContactSubmitPersistenceFailure(t *testing.T) {
	repo := &contactTestRepository{createErr: errors.New("dynamo down")}
	handler, cleanup := setupContactHandler(t, repo)
	t.Cleanup(cleanup)

	payload, _ := json.Marshal(dto.ContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Hello",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(payload))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", res.Code, res.Body.String())
	}

	var resp api.ApiError
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Failed to submit message. Please try again." {
		t.Fatalf("unexpected error message: %s", resp.Error)
	}
}

func TestContactMethodNotAllowed(t *testing.T) {
	repo := &contactTestRepository{}
	handler, cleanup := setupContactHandler(t, repo)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contact", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d: %s", res.Code, res.Body.String())
	}
}
