package assistant

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/internal/env"
)

// Turn is one user or assistant message in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider streams completions from an OpenAI-compatible chat endpoint. The
// concrete upstream is picked by AI_PROVIDER; all three speak the same wire
// format, so only the base URL, key, and default model differ.
type Provider struct {
	name       string
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewProviderFromEnv() (*Provider, error) {
	provider := env.GetOrDefault(env.AIProvider, "cerebras")

	p := &Provider{
		name: provider,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	switch provider {
	case "openai":
		p.baseURL = "https://api.openai.com/v1"
		p.apiKey = env.Get(env.OpenAIAPIKey)
		p.model = env.GetOrDefault(env.OpenAIModel, "gpt-4o")
		if p.apiKey == "" {
			return nil, fmt.Errorf("provider %q requires %s", provider, env.OpenAIAPIKey)
		}
	case "fireworks":
		p.baseURL = "https://api.fireworks.ai/inference/v1"
		p.apiKey = env.Get(env.FireworksAPIKey)
		p.model = env.GetOrDefault(env.FireworksModel, "accounts/fireworks/models/glm-4p6")
		if p.apiKey == "" {
			return nil, fmt.Errorf("provider %q requires %s", provider, env.FireworksAPIKey)
		}
	case "cerebras":
		p.baseURL = "https://api.cerebras.ai/v1"
		p.apiKey = env.Get(env.CerebrasAPIKey)
		p.model = env.GetOrDefault(env.CerebrasModel, "zai-glm-4.7")
		if p.apiKey == "" {
			return nil, fmt.Errorf("provider %q requires %s", provider, env.CerebrasAPIKey)
		}
	default:
		return nil, fmt.Errorf("unknown AI_PROVIDER %q (valid: openai, fireworks, cerebras)", provider)
	}

	return p, nil
}

// Stream sends the system prompt plus the conversation turns upstream with
// streaming enabled and forwards each content delta to fn. It returns when the
// upstream signals completion, fn returns an error, or ctx is cancelled.
func (p *Provider) Stream(ctx context.Context, system string, turns []Turn, fn func(chunk string) error) error {
	messages := make([]Turn, 0, len(turns)+1)
	messages = append(messages, Turn{Role: RoleSystem, Content: system})
	messages = append(messages, turns...)

	body := map[string]interface{}{
		"model":       p.model,
		"messages":    messages,
		"temperature": 0.7,
		"max_tokens":  1000,
		"stream":      true,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	res, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", p.name, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%s returned status %d: %s", p.name, res.StatusCode, upstreamMessage(raw))
	}

	scanner := bufio.NewScanner(res.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return nil
		}

		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}

		if err := fn(chunk.Choices[0].Delta.Content); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// upstreamMessage extracts the human-readable message from an OpenAI-style
// error body, falling back to the raw body.
func upstreamMessage(raw []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
