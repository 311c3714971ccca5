package contact

import (
	"context"
	"regexp"
	"strings"
	"time"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/model"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

// SourceLabel tags every submission with the site it came from.
const SourceLabel = "portfolio-website"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

type SubmitParams struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Message string
}

type SubmitResult struct {
	ID        string
	CreatedAt time.Time
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return NewWithRepository(NewDynamoRepository(db), time.Now)
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	return &Service{
		repo: repo,
		now:  now,
	}
}

// Submit validates and persists one contact-form submission. Validation runs
// before any persistence attempt; nothing is written for rejected input.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (SubmitResult, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.TrimSpace(params.Email)
	message := strings.TrimSpace(params.Message)

	if name == "" || email == "" || message == "" {
		return SubmitResult{}, newError(ErrorCodeValidation, "Name, email, and message are required", nil)
	}
	if !emailPattern.MatchString(email) {
		return SubmitResult{}, newError(ErrorCodeValidation, "Invalid email format", nil)
	}

	now := s.now().UTC()
	submission := model.ContactSubmissionItem{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Company:   optional(params.Company),
		Phone:     optional(params.Phone),
		Message:   message,
		Source:    SourceLabel,
		CreatedAt: now.Format(time.RFC3339),
	}

	if err := s.repo.CreateSubmission(ctx, submission); err != nil {
		return SubmitResult{}, newError(ErrorCodeInternal, "Failed to submit message. Please try again.", err)
	}

	return SubmitResult{
		ID:        submission.ID,
		CreatedAt: now,
	}, nil
}

// List returns submissions newest first, for the admin read side.
func (s *Service) List(ctx context.Context, limit int) ([]model.ContactSubmissionItem, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	submissions, err := s.repo.ListSubmissions(ctx, limit)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "Failed to list submissions", err)
	}
	return submissions, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
