// Package ollama implements the second summarization tier: a quantized
// model served by a local Ollama instance. The model is heavy for the host,
// so every generation runs with keep_alive zero (the server unloads the
// weights as soon as the response is written) and load/unload is serialized
// by a mutex so concurrent pipeline invocations cannot double-load it.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/medscrub/medscrub/internal/core/domain"
	"github.com/medscrub/medscrub/internal/infrastructure/llm/prompt"
)

const (
	probeTimeout = 2 * time.Second
	numPredict   = 300
)

type Client struct {
	baseURL     string
	model       string
	httpClient  *http.Client
	probeClient *http.Client

	mu sync.Mutex
}

func New(baseURL, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		// Loading quantized weights on CPU can take minutes.
		timeout = 5 * time.Minute
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		httpClient:  &http.Client{Timeout: timeout},
		probeClient: &http.Client{Timeout: probeTimeout},
	}
}

func (c *Client) Tier() domain.SummaryTier {
	return domain.TierLocalLLM
}

// Available reports whether the Ollama server is reachable and the
// configured model is present in its library.
func (c *Client) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.probeClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return false
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false
	}
	for _, m := range tags.Models {
		if m.Name == c.model || strings.SplitN(m.Name, ":", 2)[0] == c.model {
			return true
		}
	}
	return false
}

type generateRequest struct {
	Model     string         `json:"model"`
	Prompt    string         `json:"prompt"`
	Stream    bool           `json:"stream"`
	KeepAlive int            `json:"keep_alive"`
	Options   map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Summarize runs one load→generate→release cycle. keep_alive zero makes
// the server drop the weights right after a successful generation; the
// deferred unload covers every error exit so a failed call cannot leave the
// model resident.
func (c *Client) Summarize(ctx context.Context, text string) (out string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer func() {
		if err != nil {
			c.unload()
		}
	}()

	payload := generateRequest{
		Model:     c.model,
		Prompt:    prompt.BuildSummaryPrompt(text),
		Stream:    false,
		KeepAlive: 0,
		Options: map[string]any{
			"num_predict":    numPredict,
			"temperature":    0.7,
			"top_p":          0.9,
			"repeat_penalty": 1.2,
		},
	}

	var parsed generateResponse
	if err := c.postJSON(ctx, "/api/generate", payload, &parsed); err != nil {
		return "", err
	}
	return strings.TrimSpace(parsed.Response), nil
}

// unload is a best-effort explicit release: a generate call with no prompt
// and keep_alive zero tells the server to evict the model immediately. It
// runs outside the caller's context on purpose, a canceled generation still
// needs its weights freed.
func (c *Client) unload() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payload := generateRequest{Model: c.model, KeepAlive: 0}
	var parsed generateResponse
	_ = c.postJSON(ctx, "/api/generate", payload, &parsed)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		msg := strings.TrimSpace(string(detail))
		if msg == "" {
			return fmt.Errorf("ollama status: %s", resp.Status)
		}
		return fmt.Errorf("ollama status: %s: %s", resp.Status, msg)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ollama response: %w", err)
	}
	return nil
}
