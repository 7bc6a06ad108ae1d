// Package lmstudio implements the first summarization tier: an
// OpenAI-compatible chat completions service on the local network. Every
// connection error, non-success status or timeout makes the tier fall
// through to the next one; nothing here is fatal.
package lmstudio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/medscrub/medscrub/internal/core/domain"
	"github.com/medscrub/medscrub/internal/infrastructure/llm/prompt"
	"github.com/medscrub/medscrub/internal/infrastructure/resilience"
)

const (
	defaultTimeout = 60 * time.Second
	probeTimeout   = 2 * time.Second
	maxTokens      = 300
	temperature    = 0.7
)

type Client struct {
	baseURL     string
	model       string
	httpClient  *http.Client
	probeClient *http.Client
	limiter     *rate.Limiter
	guard       *resilience.Guard
}

func New(baseURL, model string, timeout time.Duration, limiter *rate.Limiter, guard *resilience.Guard) *Client {
	if timeout <= 0 || timeout > defaultTimeout {
		// The remote call is the only place the pipeline could block on a
		// stalled peer; the timeout is mandatory, not tunable upward.
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		httpClient:  &http.Client{Timeout: timeout},
		probeClient: &http.Client{Timeout: probeTimeout},
		limiter:     limiter,
		guard:       guard,
	}
}

func (c *Client) Tier() domain.SummaryTier {
	return domain.TierRemoteLLM
}

func (c *Client) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/models", nil)
	if err != nil {
		return false
	}
	resp, err := c.probeClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 300
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var out string
	call := func(ctx context.Context) error {
		summary, err := c.chatCompletion(ctx, prompt.BuildSummaryPrompt(text))
		if err != nil {
			return err
		}
		out = summary
		return nil
	}

	var err error
	if c.guard != nil {
		err = c.guard.Do(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) chatCompletion(ctx context.Context, userPrompt string) (string, error) {
	payload := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: userPrompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote llm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		msg := strings.TrimSpace(string(detail))
		if msg == "" {
			return "", fmt.Errorf("remote llm status: %s", resp.Status)
		}
		return "", fmt.Errorf("remote llm status: %s: %s", resp.Status, msg)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("remote llm returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
