package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"portfolio-backend/internal/assistant"

	"github.com/google/uuid"
)

type State string

const (
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting_response"
	StateStreaming        State = "streaming"
	StateReady            State = "ready"
)

const logDispatchTimeout = 10 * time.Second

// Entry is the payload assembled for one completed assistant turn.
type Entry struct {
	SessionID      string
	ConversationID string
	UserMessage    string
	AIResponse     string
	Referrer       string
}

// Logger receives one Entry per completed turn. Implementations must tolerate
// being called from a background goroutine; failures are logged and dropped,
// never surfaced to the chat path.
type Logger interface {
	LogTurn(ctx context.Context, entry Entry) error
}

type Options struct {
	// SessionID is the analytics-provided session identifier. When empty a
	// fallback id is minted once and kept for the session's lifetime.
	SessionID string
	Referrer  string
}

// Session correlates one chat widget instance: a conversation id minted at
// mount, the most recently submitted user turn, and the streamed assistant
// text. Its job is to hand the Logger exactly one Entry per completed turn.
type Session struct {
	mu             sync.Mutex
	state          State
	conversationID string
	sessionID      string
	referrer       string
	pending        string
	response       strings.Builder
	turns          []assistant.Turn
	logger         Logger
}

func New(logger Logger, opts Options) *Session {
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	return &Session{
		state:          StateIdle,
		conversationID: NewConversationID(),
		sessionID:      sessionID,
		referrer:       opts.Referrer,
		logger:         logger,
	}
}

func NewConversationID() string {
	return "conv_" + uuid.NewString()
}

func NewSessionID() string {
	return "session_" + uuid.NewString()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Turns returns the ordered conversation so far, including the turn currently
// awaiting a response.
func (s *Session) Turns() []assistant.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]assistant.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Submit records text as the pending log payload and appends it to the
// transcript. It reports false, without changing state, for empty input or
// while a previous turn is still in flight.
func (s *Session) Submit(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAwaitingResponse || s.state == StateStreaming {
		return false
	}

	s.pending = text
	s.response.Reset()
	s.turns = append(s.turns, assistant.Turn{Role: assistant.RoleUser, Content: text})
	s.state = StateAwaitingResponse
	return true
}

// Chunk accumulates one piece of streamed assistant output.
func (s *Session) Chunk(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingResponse && s.state != StateStreaming {
		return
	}
	s.response.WriteString(text)
	s.state = StateStreaming
}

// Complete marks the stream cleanly finished. On the streaming-to-ready
// transition with a pending payload it dispatches exactly one Entry to the
// Logger and clears the payload, so a later idle-to-ready pass dispatches
// nothing. The dispatch is fire and forget.
func (s *Session) Complete() bool {
	s.mu.Lock()

	if s.state != StateStreaming || s.pending == "" {
		s.state = StateReady
		s.mu.Unlock()
		return false
	}

	entry := Entry{
		SessionID:      s.sessionID,
		ConversationID: s.conversationID,
		UserMessage:    s.pending,
		AIResponse:     s.response.String(),
		Referrer:       s.referrer,
	}
	s.turns = append(s.turns, assistant.Turn{Role: assistant.RoleAssistant, Content: entry.AIResponse})
	s.pending = ""
	s.state = StateReady
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logDispatchTimeout)
		defer cancel()
		if err := s.logger.LogTurn(ctx, entry); err != nil {
			log.Printf("chat log dispatch failed for %s: %v", entry.ConversationID, err)
		}
	}()
	return true
}

// Cancel drops the in-flight turn without logging. A cancelled stream is never
// recorded as a final assistant response.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAwaitingResponse || s.state == StateStreaming {
		// Remove the user turn that will never get its reply.
		if n := len(s.turns); n > 0 && s.turns[n-1].Role == assistant.RoleUser {
			s.turns = s.turns[:n-1]
		}
	}
	s.pending = ""
	s.response.Reset()
	s.state = StateReady
}

// Clear resets the transcript and mints a fresh conversation id. The session
// id is kept; it spans conversations.
func (s *Session) Clear() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversationID = NewConversationID()
	s.pending = ""
	s.response.Reset()
	s.turns = nil
	s.state = StateIdle
	return s.conversationID
}
