package assistant

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingProvider struct {
	system string
	turns  []Turn
	chunks []string
	err    error
}

func (p *recordingProvider) Stream(_ context.Context, system string, turns []Turn, fn func(chunk string) error) error {
	p.system = system
	p.turns = turns
	if p.err != nil {
		return p.err
	}
	for _, chunk := range p.chunks {
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

func TestStreamForwardsChunks(t *testing.T) {
	provider := &recordingProvider{chunks: []string{"Hel", "lo"}}
	service := NewWithProvider(provider)

	var got []string
	err := service.Stream(context.Background(), []Turn{
		{Role: RoleUser, Content: "Hi"},
		{Role: RoleAssistant, Content: "Hello"},
		{Role: RoleUser, Content: "How are you?"},
	}, func(chunk string) error {
		got = append(got, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}

	if len(got) != 2 || got[0] != "Hel" || got[1] != "lo" {
		t.Fatalf("unexpected chunks: %+v", got)
	}
	if provider.system == "" {
		t.Fatalf("system prompt was not forwarded upstream")
	}
	if len(provider.turns) != 3 || provider.turns[2].Content != "How are you?" {
		t.Fatalf("conversation order not preserved: %+v", provider.turns)
	}
}

func TestStreamValidation(t *testing.T) {
	cases := []struct {
		name    string
		turns   []Turn
		message string
	}{
		{
			name:    "no turns",
			turns:   nil,
			message: "Messages array is required",
		},
		{
			name:    "empty content",
			turns:   []Turn{{Role: RoleUser, Content: ""}},
			message: "Each message needs content",
		},
		{
			name:    "bad role",
			turns:   []Turn{{Role: "system", Content: "sneaky"}},
			message: "Message role must be user or assistant",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &recordingProvider{}
			service := NewWithProvider(provider)

			err := service.Stream(context.Background(), tc.turns, func(string) error {
				t.Fatalf("no chunks expected for rejected input")
				return nil
			})

			var svcErr *Error
			if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if svcErr.Message != tc.message {
				t.Fatalf("unexpected message: %s", svcErr.Message)
			}
			if provider.turns != nil {
				t.Fatalf("rejected input must not reach the provider")
			}
		})
	}
}

func TestStreamWrapsUpstreamFailure(t *testing.T) {
	provider := &recordingProvider{err: errors.New("upstream exploded")}
	service := NewWithProvider(provider)

	err := service.Stream(context.Background(), []Turn{{Role: RoleUser, Content: "Hi"}}, func(string) error {
		return nil
	})

	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestStreamPassesCancellationThrough(t *testing.T) {
	provider := &recordingProvider{err: context.Canceled}
	service := NewWithProvider(provider)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	err := service.Stream(ctx, []Turn{{Role: RoleUser, Content: "Hi"}}, func(string) error {
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		t.Fatalf("cancellation must not be wrapped as a service error")
	}
}
