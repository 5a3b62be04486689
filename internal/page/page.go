package page

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds the whole page fetch including body read.
const DefaultTimeout = 20 * time.Second

const defaultUserAgent = "Mozilla/5.0 (Summarizer)"

// Page is the readable content recovered from a fetched document.
type Page struct {
	Title string
	Text  string
}

// Client fetches web pages and extracts their readable text
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new page client with the given request timeout
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}
}

// Fetch performs one GET against url and extracts the readable content.
// Non-2xx responses are an error; so is a page with no readable text.
func (c *Client) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	page, err := Extract(resp.Body)
	if err != nil {
		return nil, err
	}

	return page, nil
}
