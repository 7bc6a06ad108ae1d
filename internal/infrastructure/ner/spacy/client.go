// Package spacy talks to a spaCy NER sidecar over HTTP and buckets its
// native label taxonomy into the five fixed entity categories.
package spacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/medscrub/medscrub/internal/core/domain"
	"github.com/medscrub/medscrub/internal/infrastructure/resilience"
)

type Client struct {
	baseURL     string
	httpClient  *http.Client
	probeClient *http.Client
	guard       *resilience.Guard
}

func New(baseURL string, timeout time.Duration, guard *resilience.Guard) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		probeClient: &http.Client{Timeout: 2 * time.Second},
		guard:       guard,
	}
}

// Available performs a short-timeout health probe. Absence of a network
// path resolves to false, never blocks and never errors.
func (c *Client) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
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

type entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

func (c *Client) Recognize(ctx context.Context, text string) (map[string][]string, error) {
	var ents []entity

	call := func(ctx context.Context) error {
		return c.postJSON(ctx, "/ent", map[string]any{"text": text}, &ents)
	}

	var err error
	if c.guard != nil {
		err = c.guard.Do(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, err
	}
	return bucketEntities(ents), nil
}

// bucketEntities maps the engine's native labels onto the fixed categories;
// unrecognized labels are dropped.
func bucketEntities(ents []entity) map[string][]string {
	out := domain.EmptyEntities()
	for _, ent := range ents {
		switch ent.Label {
		case "PERSON":
			out[domain.EntityPersons] = append(out[domain.EntityPersons], ent.Text)
		case "GPE", "LOC":
			out[domain.EntityLocations] = append(out[domain.EntityLocations], ent.Text)
		case "ORG":
			out[domain.EntityOrganizations] = append(out[domain.EntityOrganizations], ent.Text)
		case "DATE":
			out[domain.EntityDates] = append(out[domain.EntityDates], ent.Text)
		case "MONEY":
			out[domain.EntityMoney] = append(out[domain.EntityMoney], ent.Text)
		}
	}
	return out
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal ner request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create ner request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ner request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		msg := strings.TrimSpace(string(detail))
		if msg == "" {
			return fmt.Errorf("ner status: %s", resp.Status)
		}
		return fmt.Errorf("ner status: %s: %s", resp.Status, msg)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ner response: %w", err)
	}
	return nil
}
