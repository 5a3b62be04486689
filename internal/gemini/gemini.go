package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// maxPromptContentBytes caps how much page text is embedded in one prompt.
const maxPromptContentBytes = 16000

// Client handles Gemini API operations
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Gemini API client
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Summary is one summarization result: a short abstract plus key points.
type Summary struct {
	Abstract string   `json:"abstract"`
	Bullets  []string `json:"bullets"`
}

// geminiRequest represents the request structure for Gemini API
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

// geminiResponse represents the response structure from Gemini API
type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

// SummarizeBlock sends one block of text to the model and returns its summary.
// The prompt asks for strict JSON; whatever comes back is repaired by
// ParseSummary, so only transport and API errors are returned.
func (c *Client) SummarizeBlock(ctx context.Context, text string, bullets, maxWords int) (*Summary, error) {
	prompt := buildPrompt(text, bullets, maxWords)

	raw, err := c.generateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParseSummary(raw), nil
}

// buildPrompt creates the strict-JSON summarization prompt
func buildPrompt(text string, bullets, maxWords int) string {
	return fmt.Sprintf(
		"You are a precise, neutral summarizer. Return STRICT JSON only with keys: abstract, bullets.\n"+
			`Format: {"abstract":"<= %d words","bullets":["up to %d key points"]}`+"\n\n"+
			"CONTENT:\n%s",
		maxWords, bullets, truncate(text, maxPromptContentBytes))
}

// generateContent makes the actual API call to Gemini and returns the raw
// text payload of the first candidate.
func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	geminiReq := geminiRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: prompt},
				},
			},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      0.3,
			TopP:             0.8,
			MaxOutputTokens:  8000,
			ResponseMIMEType: "application/json",
		},
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	body, err := json.Marshal(geminiReq)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return extractText(&geminiResp), nil
}

// extractText recovers the text payload from a response. The common shape is
// a single part; some responses split the payload across parts, which are
// joined in order. An empty payload is not an error here, the repair cascade
// degrades it to an empty summary.
func extractText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}

	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 1 {
		return parts[0].Text
	}

	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// truncate caps s at n bytes without splitting a multi-byte rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
