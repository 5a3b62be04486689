// Package chunk splits long text into overlapping segments sized for
// model input limits.
package chunk

import "strings"

const (
	// DefaultMaxLen is the maximum chunk length in bytes.
	DefaultMaxLen = 12000

	// DefaultOverlap is how many bytes consecutive chunks share.
	DefaultOverlap = 400
)

// Split cuts s into an ordered sequence of chunks of at most maxLen bytes.
// Consecutive chunks overlap by overlap bytes. When a window contains a line
// break past 60% of maxLen, the window ends there instead of mid-paragraph.
// Input of maxLen or less comes back as a single chunk equal to s.
func Split(s string, maxLen, overlap int) []string {
	if len(s) <= maxLen {
		return []string{s}
	}

	var out []string
	for i := 0; i < len(s); {
		end := i + maxLen
		if end > len(s) {
			end = len(s)
		}
		seg := s[i:end]

		if j := strings.LastIndexByte(seg, '\n'); float64(j) > float64(maxLen)*0.6 {
			seg = seg[:j]
		}

		out = append(out, seg)

		// The window can be smaller than the overlap; never stall or go backwards.
		step := len(seg) - overlap
		if step < 1 {
			step = 1
		}
		i += step
	}

	return out
}
