package chatlog

import (
	"context"
	"strings"
	"time"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/geo"
	"portfolio-backend/internal/model"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

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

// Resolver is the geolocation lookup. *geo.Client satisfies it; tests
// substitute fakes.
type Resolver interface {
	Lookup(ctx context.Context, ip string) geo.Location
}

type WriteParams struct {
	SessionID      string
	ConversationID string
	UserMessage    string
	AIResponse     string
	Referrer       string
	// IPAddress and UserAgent are derived from the inbound request's headers
	// by the caller; "unknown" stands in for absent values.
	IPAddress string
	UserAgent string
}

type WriteResult struct {
	ID        string
	CreatedAt time.Time
	Location  geo.Location
}

type Service struct {
	repo     Repository
	resolver Resolver
	now      func() time.Time
}

func New(db *database.Database, resolver Resolver) *Service {
	return NewWithRepository(NewDynamoRepository(db), resolver, time.Now)
}

func NewWithRepository(repo Repository, resolver Resolver, now func() time.Time) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		now:      now,
	}
}

// Write persists one completed assistant turn, enriched with geolocation
// resolved from the caller's IP. Geo resolution happens here and only here;
// callers never supply country or city, so there is exactly one lookup path.
func (s *Service) Write(ctx context.Context, params WriteParams) (WriteResult, error) {
	userMessage := strings.TrimSpace(params.UserMessage)
	conversationID := strings.TrimSpace(params.ConversationID)
	if userMessage == "" || conversationID == "" {
		return WriteResult{}, newError(ErrorCodeValidation, "userMessage and conversationId are required", nil)
	}

	ipAddress := geo.CleanIP(params.IPAddress)
	if ipAddress == "" {
		ipAddress = "unknown"
	}

	location := s.resolver.Lookup(ctx, ipAddress)

	userAgent := params.UserAgent
	if userAgent == "" {
		userAgent = "unknown"
	}

	now := s.now().UTC()
	entry := model.ChatLogItem{
		ID:             uuid.NewString(),
		SessionID:      optional(params.SessionID),
		ConversationID: conversationID,
		UserMessage:    userMessage,
		AIResponse:     optional(params.AIResponse),
		Country:        location.Country,
		City:           location.City,
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		Referrer:       optional(params.Referrer),
		CreatedAt:      now.Format(time.RFC3339),
	}

	if err := s.repo.CreateLog(ctx, entry); err != nil {
		return WriteResult{}, newError(ErrorCodeInternal, "Failed to log chat", err)
	}

	return WriteResult{
		ID:        entry.ID,
		CreatedAt: now,
		Location:  location,
	}, nil
}

// List returns chat logs newest first, optionally filtered to one
// conversation, for the admin read side.
func (s *Service) List(ctx context.Context, conversationID string, limit int) ([]model.ChatLogItem, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	logs, err := s.repo.ListLogs(ctx, strings.TrimSpace(conversationID), limit)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "Failed to list chat logs", err)
	}
	return logs, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
