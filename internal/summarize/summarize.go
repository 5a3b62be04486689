// Package summarize runs the whole pipeline: fetch a page, chunk its text,
// summarize each chunk, then merge and polish the result.
package summarize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/pep299/page-summarizer/internal/chunk"
	"github.com/pep299/page-summarizer/internal/gemini"
	"github.com/pep299/page-summarizer/internal/page"
)

// Per-chunk prompts are protected from unbounded caller requests; chunk count
// can be large, the final pass uses the caller's real limits.
const (
	maxChunkBullets   = 7
	maxChunkWords     = 220
	maxMergedAbstract = 20000
)

// PageFetcher fetches a URL and returns its readable content.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*page.Page, error)
}

// BlockSummarizer summarizes one block of text.
type BlockSummarizer interface {
	SummarizeBlock(ctx context.Context, text string, bullets, maxWords int) (*gemini.Summary, error)
}

// Result is the terminal artifact of a run, serialized to JSON as-is.
type Result struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Abstract string   `json:"abstract"`
	Bullets  []string `json:"bullets"`
}

// Summarizer orchestrates the fetch, chunk, summarize and merge stages
type Summarizer struct {
	pages  PageFetcher
	model  BlockSummarizer
	logger *log.Logger
}

// New creates a new Summarizer over the given fetcher and model
func New(pages PageFetcher, model BlockSummarizer) *Summarizer {
	return &Summarizer{
		pages:  pages,
		model:  model,
		logger: log.Default(),
	}
}

// SummarizeURL fetches url and produces the final summary. Long pages are
// summarized chunk by chunk and the per-chunk abstracts are summarized once
// more, so one model call never has to ingest the whole page.
func (s *Summarizer) SummarizeURL(ctx context.Context, url string, bullets, maxWords int) (*Result, error) {
	// Negative limits would flow into slice and truncation bounds.
	if bullets < 0 {
		bullets = 0
	}
	if maxWords < 0 {
		maxWords = 0
	}

	p, err := s.pages.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	chunks := chunk.Split(p.Text, chunk.DefaultMaxLen, chunk.DefaultOverlap)
	s.logger.Info("summarizing page", "url", url, "chunks", len(chunks))

	chunkBullets := min(maxChunkBullets, bullets)
	chunkWords := min(maxChunkWords, maxWords)

	sections := make([]*gemini.Summary, 0, len(chunks))
	for i, c := range chunks {
		s.logger.Debug("summarizing chunk", "index", i+1, "total", len(chunks), "bytes", len(c))
		section, err := s.model.SummarizeBlock(ctx, c, chunkBullets, chunkWords)
		if err != nil {
			return nil, fmt.Errorf("summarizing chunk %d/%d: %w", i+1, len(chunks), err)
		}
		sections = append(sections, section)
	}

	mergedAbstract, mergedBullets := merge(sections, bullets)

	final, err := s.model.SummarizeBlock(ctx, mergedAbstract, bullets, maxWords)
	if err != nil {
		return nil, fmt.Errorf("summarizing merged abstract: %w", err)
	}

	abstract := final.Abstract
	if abstract == "" {
		abstract = truncate(mergedAbstract, maxWords*8)
	}

	finalBullets := final.Bullets
	if len(finalBullets) == 0 {
		finalBullets = mergedBullets
	}
	if len(finalBullets) > bullets {
		finalBullets = finalBullets[:bullets]
	}
	if finalBullets == nil {
		finalBullets = []string{}
	}

	return &Result{
		Title:    p.Title,
		URL:      url,
		Abstract: abstract,
		Bullets:  finalBullets,
	}, nil
}

// merge concatenates section abstracts with single spaces, capped, and keeps
// bullets in chunk order sliced to the requested count. Near-duplicate bullets
// across chunks are not merged.
func merge(sections []*gemini.Summary, bullets int) (string, []string) {
	abstracts := make([]string, 0, len(sections))
	var merged []string
	for _, sect := range sections {
		abstracts = append(abstracts, sect.Abstract)
		merged = append(merged, sect.Bullets...)
	}

	if len(merged) > bullets {
		merged = merged[:bullets]
	}

	return truncate(strings.Join(abstracts, " "), maxMergedAbstract), merged
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
