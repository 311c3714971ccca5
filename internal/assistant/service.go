package assistant

import (
	"context"
	"errors"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeUpstream   ErrorCode = "upstream_error"
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

// StreamProvider is the upstream model transport. *Provider satisfies it;
// tests substitute fakes.
type StreamProvider interface {
	Stream(ctx context.Context, system string, turns []Turn, fn func(chunk string) error) error
}

// Service is the bridge between conversation turns and the hosted model. It
// holds no per-conversation state; callers pass the full ordered history on
// every call.
type Service struct {
	provider     StreamProvider
	systemPrompt string
}

func New() (*Service, error) {
	provider, err := NewProviderFromEnv()
	if err != nil {
		return nil, err
	}
	return NewWithProvider(provider), nil
}

func NewWithProvider(provider StreamProvider) *Service {
	return &Service{
		provider:     provider,
		systemPrompt: BuildSystemPrompt(),
	}
}

// Stream validates the turns, prepends the system instruction, and forwards
// model output chunks to fn unmodified. Context cancellation stops the stream
// immediately and is returned as-is so callers can tell it from an upstream
// failure.
func (s *Service) Stream(ctx context.Context, turns []Turn, fn func(chunk string) error) error {
	if len(turns) == 0 {
		return newError(ErrorCodeValidation, "Messages array is required", nil)
	}
	for _, turn := range turns {
		if turn.Content == "" {
			return newError(ErrorCodeValidation, "Each message needs content", nil)
		}
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			return newError(ErrorCodeValidation, "Message role must be user or assistant", nil)
		}
	}

	if err := s.provider.Stream(ctx, s.systemPrompt, turns, fn); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return newError(ErrorCodeUpstream, err.Error(), err)
	}
	return nil
}
