package gemini

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
	braceSpanRe  = regexp.MustCompile(`(?s)(\{.*\})`)
)

// ParseSummary recovers a Summary from a model payload. Models wrap JSON in
// prose or code fences often enough that parsing runs as a strategy chain:
// the whole payload as JSON, then a fenced ```json block, then the widest
// {...} span. When every strategy fails the raw payload becomes the abstract,
// so malformed output degrades instead of failing the run.
func ParseSummary(raw string) *Summary {
	if s, ok := unmarshalSummary(raw); ok {
		return s
	}

	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		if s, ok := unmarshalSummary(m[1]); ok {
			return s
		}
	}

	if m := braceSpanRe.FindStringSubmatch(raw); m != nil {
		if s, ok := unmarshalSummary(m[1]); ok {
			return s
		}
	}

	return &Summary{Abstract: strings.TrimSpace(raw), Bullets: []string{}}
}

func unmarshalSummary(s string) (*Summary, bool) {
	var out Summary
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, false
	}
	if out.Bullets == nil {
		out.Bullets = []string{}
	}
	return &out, true
}
