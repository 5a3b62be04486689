package page

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoContent is returned when a page yields no readable text after filtering.
var ErrNoContent = errors.New("could not extract readable text from the page")

const (
	// noiseSelectors lists elements removed entirely, including their subtrees.
	noiseSelectors = "script, style, noscript, header, footer, nav, aside, form, svg, img, video, audio, iframe, canvas"

	// contentSelectors lists the elements whose text is collected, in document order.
	contentSelectors = "h1, h2, h3, p, li, blockquote"

	// minFragmentWords drops nav labels, captions and similar short fragments.
	minFragmentWords = 3
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extract parses HTML and returns the page title and its readable text.
func Extract(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(noiseSelectors).Remove()

	var parts []string
	doc.Find(contentSelectors).Each(func(i int, s *goquery.Selection) {
		words := strings.Fields(s.Text())
		if len(words) < minFragmentWords {
			return
		}
		parts = append(parts, strings.Join(words, " "))
	})

	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.Join(parts, "\n"), " "))
	if text == "" {
		return nil, ErrNoContent
	}

	return &Page{Title: title, Text: text}, nil
}
