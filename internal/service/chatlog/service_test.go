package chatlog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"portfolio-backend/internal/geo"
	"portfolio-backend/internal/model"
)

type memoryRepository struct {
	mu      sync.Mutex
	logs    []model.ChatLogItem
	failPut bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{}
}

func (m *memoryRepository) CreateLog(ctx context.Context, entry model.ChatLogItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("put failed")
	}
	m.logs = append(m.logs, entry)
	return nil
}

func (m *memoryRepository) ListLogs(ctx context.Context, conversationID string, limit int) ([]model.ChatLogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ChatLogItem, 0, len(m.logs))
	for _, entry := range m.logs {
		if conversationID != "" && entry.ConversationID != conversationID {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

type fakeResolver struct {
	location geo.Location
	lookups  []string
}

func (f *fakeResolver) Lookup(ctx context.Context, ip string) geo.Location {
	f.lookups = append(f.lookups, ip)
	return f.location
}

func fixedTime() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func strptr(s string) *string { return &s }

func TestWritePersistsEnrichedEntry(t *testing.T) {
	repo := newMemoryRepository()
	resolver := &fakeResolver{location: geo.Location{
		Country: strptr("United States"),
		City:    strptr("Mountain View"),
	}}
	service := NewWithRepository(repo, resolver, fixedTime)

	result, err := service.Write(context.Background(), WriteParams{
		SessionID:      "session-1",
		ConversationID: "conv-1",
		UserMessage:    "Hello",
		AIResponse:     "Hi there",
		Referrer:       "https://linkedin.com",
		IPAddress:      "::ffff:8.8.8.8:1234",
		UserAgent:      "Mozilla/5.0",
	})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if result.ID == "" {
		t.Fatal("no id returned")
	}

	if len(repo.logs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(repo.logs))
	}
	row := repo.logs[0]
	if row.IPAddress != "8.8.8.8" {
		t.Fatalf("ip was not cleaned before storage: %q", row.IPAddress)
	}
	if row.Country == nil || *row.Country != "United States" {
		t.Fatalf("country not stored: %v", row.Country)
	}
	if row.City == nil || *row.City != "Mountain View" {
		t.Fatalf("city not stored: %v", row.City)
	}
	if row.SessionID == nil || *row.SessionID != "session-1" {
		t.Fatalf("session id not stored: %v", row.SessionID)
	}
	if row.AIResponse == nil || *row.AIResponse != "Hi there" {
		t.Fatalf("ai response not stored: %v", row.AIResponse)
	}

	if len(resolver.lookups) != 1 {
		t.Fatalf("expected exactly one geo lookup, got %d", len(resolver.lookups))
	}
	if resolver.lookups[0] != "8.8.8.8" {
		t.Fatalf("lookup received uncleaned ip: %q", resolver.lookups[0])
	}
}

func TestWriteUnresolvableIPStoresNullGeo(t *testing.T) {
	repo := newMemoryRepository()
	service := NewWithRepository(repo, &fakeResolver{}, fixedTime)

	if _, err := service.Write(context.Background(), WriteParams{
		ConversationID: "conv-1",
		UserMessage:    "Hello",
		IPAddress:      "192.168.1.20",
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	row := repo.logs[0]
	if row.Country != nil || row.City != nil {
		t.Fatalf("unresolvable ip produced non-null geo: %v %v", row.Country, row.City)
	}
	if row.SessionID != nil || row.AIResponse != nil || row.Referrer != nil {
		t.Fatal("absent optional fields should be stored as nulls")
	}
	if row.UserAgent != "unknown" {
		t.Fatalf("missing user agent should store %q, got %q", "unknown", row.UserAgent)
	}
}

func TestWriteRejectsMissingRequiredFields(t *testing.T) {
	repo := newMemoryRepository()
	service := NewWithRepository(repo, &fakeResolver{}, fixedTime)

	cases := []WriteParams{
		{ConversationID: "conv-1"},
		{UserMessage: "Hello"},
		{ConversationID: "  ", UserMessage: "Hello"},
	}

	for _, params := range cases {
		_, err := service.Write(context.Background(), params)
		var svcErr *Error
		if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", params, err)
		}
	}

	if len(repo.logs) != 0 {
		t.Fatal("rejected entries were persisted")
	}
}

func TestWriteMapsPersistenceFailure(t *testing.T) {
	repo := newMemoryRepository()
	repo.failPut = true
	service := NewWithRepository(repo, &fakeResolver{}, fixedTime)

	_, err := service.Write(context.Background(), WriteParams{
		ConversationID: "conv-1",
		UserMessage:    "Hello",
	})

	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if svcErr.Message != "Failed to log chat" {
		t.Fatalf("internal detail leaked into message: %s", svcErr.Message)
	}
}

func TestListFiltersByConversation(t *testing.T) {
	repo := newMemoryRepository()
	service := NewWithRepository(repo, &fakeResolver{}, fixedTime)

	for _, conv := range []string{"conv-1", "conv-2", "conv-1"} {
		if _, err := service.Write(context.Background(), WriteParams{
			ConversationID: conv,
			UserMessage:    "Hello",
		}); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	logs, err := service.List(context.Background(), "conv-1", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs for conv-1, got %d", len(logs))
	}
	for _, entry := range logs {
		if entry.ConversationID != "conv-1" {
			t.Fatalf("unexpected conversation in results: %s", entry.ConversationID)
		}
	}
}
