// Package enrich holds the optional external lookups: AI task breakdown
// and holiday calendars. Both degrade to empty results on any failure; the
// caller never sees an error from them.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/cache"
)

const (
	maxSuggestions = 5
	minSuggestions = 3

	suggestionTTL = 10 * time.Minute
)

// AIClient asks a hosted generative API to break a task title into
// subtask suggestions.
type AIClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
	cache    *cache.TTLCache[string, []string]
}

func NewAIClient(endpoint, apiKey string) *AIClient {
	return &AIClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 15 * time.Second},
		cache:    cache.New[string, []string](),
	}
}

type breakdownRequest struct {
	Title string `json:"title"`
	Max   int    `json:"max"`
}

type breakdownResponse struct {
	Subtasks []string `json:"subtasks"`
}

// Breakdown returns 3-5 suggested subtask titles, or an empty list on any
// failure (unconfigured, network, status, parse). Suggestions have no
// effect on task state until the user accepts them.
func (c *AIClient) Breakdown(ctx context.Context, title string) []string {
	if c.endpoint == "" || title == "" {
		return nil
	}
	if cached, ok := c.cache.Get(title); ok {
		return cached
	}

	body, err := json.Marshal(breakdownRequest{Title: title, Max: maxSuggestions})
	if err != nil {
		log.Printf("ai breakdown: encode request: %v", err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("ai breakdown: build request: %v", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("ai breakdown: request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("ai breakdown: %v", fmt.Errorf("unexpected status %d", resp.StatusCode))
		return nil
	}

	var parsed breakdownResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("ai breakdown: decode response: %v", err)
		return nil
	}

	suggestions := parsed.Subtasks
	if len(suggestions) < minSuggestions {
		return nil
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	c.cache.Set(title, suggestions, suggestionTTL)
	return suggestions
}
