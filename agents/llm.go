// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/onomate/models"
)

const (
	defaultTimeout = 30 * time.Second

	namerPrompt = `You are a startup naming expert working with two co-founders.
Propose %d company names that balance both founders' interview answers.
Respond with JSON only: {"suggestions":[{"name":"","category":"compound|coined|descriptive|metaphorical|abstract","rationale":"","confidence_score":0,"domain_status":"unknown"}]}`

	variationPrompt = `The founders reviewed the previous suggestions (with their reactions) and want %s.
Build on the names they liked and avoid the ones they rejected.`

	synthesizerPrompt = `You compare two co-founders' naming interviews.
Respond with JSON only: {"alignment_areas":"","balance_areas":"","naming_strategy":""}`
)

var errMisconfigured = errors.New("llm client misconfigured")

// LLMClient implements SuggestionGenerator and Summarizer against an
// OpenAI-compatible chat completions endpoint.
type LLMClient struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var (
	_ SuggestionGenerator = (*LLMClient)(nil)
	_ Summarizer          = (*LLMClient)(nil)
)

// Option configures an LLMClient.
type Option func(*LLMClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *LLMClient) { l.httpClient = c }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *LLMClient) { l.httpClient.Timeout = d }
}

// NewLLMClient builds a client. A client missing any of endpoint, model or
// key is still returned; every call on it fails as unavailable.
func NewLLMClient(endpoint, model, apiKey string, opts ...Option) *LLMClient {
	c := &LLMClient{
		endpoint:   endpoint,
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate asks the model for name suggestions.
func (c *LLMClient) Generate(ctx context.Context, req GenerateRequest) ([]Draft, error) {
	count := req.Constraints.Count
	if count <= 0 {
		count = 5
	}
	system := fmt.Sprintf(namerPrompt, count)
	if req.Constraints.VariationType != VariationNone {
		system += "\n" + fmt.Sprintf(variationPrompt, req.Constraints.VariationType)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	content, err := c.complete(ctx, system, string(payload))
	if err != nil {
		return nil, Unavailable(AgentNamer, err)
	}

	var out struct {
		Suggestions []Draft `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, Unavailable(AgentNamer, fmt.Errorf("invalid response format: %w", err))
	}
	if out.Suggestions == nil {
		return nil, Unavailable(AgentNamer, errors.New("response has no suggestions"))
	}
	return out.Suggestions, nil
}

// Summarize asks the model to compare both founders' interviews.
func (c *LLMClient) Summarize(ctx context.Context, a, b models.FounderProfile) (Synthesis, error) {
	payload, err := json.Marshal(map[string]models.FounderProfile{
		string(models.FounderA): a,
		string(models.FounderB): b,
	})
	if err != nil {
		return Synthesis{}, fmt.Errorf("marshal profiles: %w", err)
	}

	content, err := c.complete(ctx, synthesizerPrompt, string(payload))
	if err != nil {
		return Synthesis{}, Unavailable(AgentSynthesizer, err)
	}

	var out Synthesis
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return Synthesis{}, Unavailable(AgentSynthesizer, fmt.Errorf("invalid response format: %w", err))
	}
	return out, nil
}

func (c *LLMClient) complete(ctx context.Context, system, user string) (string, error) {
	if c == nil || c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", errMisconfigured
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("llm error %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("empty response")
	}

	return stripFence(parsed.Choices[0].Message.Content), nil
}

// stripFence removes a ```json ... ``` wrapper some models add.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
