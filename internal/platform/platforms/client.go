package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nextrack/internal/common"
)

// Client fetches public profile statistics from the three coding platforms.
// Each fetch is an independent, best-effort call with a fixed timeout; the
// caller decides whether a failure is fatal or just leaves that section
// unavailable.
type Client struct {
	httpClient *http.Client

	leetcodeBaseURL string
	codechefBaseURL string
	githubBaseURL   string
}

func NewClient(leetcodeBaseURL, codechefBaseURL, githubBaseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		leetcodeBaseURL: leetcodeBaseURL,
		codechefBaseURL: codechefBaseURL,
		githubBaseURL:   githubBaseURL,
	}
}

func (c *Client) getJSON(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("platforms: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("platforms: fetch %s: %w", url, common.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("platforms: %s returned status %d: %w", url, resp.StatusCode, common.ErrServiceUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("platforms: read response from %s: %w", url, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("platforms: %s returned invalid JSON: %w", url, common.ErrServiceUnavailable)
	}
	return json.RawMessage(body), nil
}
