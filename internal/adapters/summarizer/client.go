package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client implements ports.Summarizer against an external language-model
// endpoint. The endpoint receives the bill and returns a plain-language
// summary; retries are the workflow's responsibility.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// New creates a summarizer client.
func New(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

type summarizeRequest struct {
	BillID string `json:"bill_id"`
	Title  string `json:"title"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Summarize requests a summary for one bill.
func (c *Client) Summarize(ctx context.Context, billID, title string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("summarizer endpoint not configured")
	}

	body, err := json.Marshal(summarizeRequest{BillID: billID, Title: title})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarizer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("summarizer status %d: %s", resp.StatusCode, snippet)
	}

	var out summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("summarizer response: %w", err)
	}
	if out.Summary == "" {
		return "", fmt.Errorf("summarizer returned empty summary for bill %s", billID)
	}
	return out.Summary, nil
}
