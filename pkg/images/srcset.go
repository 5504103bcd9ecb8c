package images

import (
	"regexp"
	"strconv"
	"strings"
)

// Candidate is one entry of a srcset list.
type Candidate struct {
	URL string
	// Descriptor is the integer width (w) or density (x) value, or 0 when
	// the entry has none.
	Descriptor int
}

var candidateRe = regexp.MustCompile(`(?i)^(.*?)\s+(\d+)(w|x)$`)

// ParseSrcset splits a srcset value into candidates. Blank entries are
// skipped.
func ParseSrcset(srcset string) []Candidate {
	var out []Candidate
	for _, part := range strings.Split(srcset, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := candidateRe.FindStringSubmatch(part); m != nil {
			n, err := strconv.Atoi(m[2])
			if err == nil && strings.TrimSpace(m[1]) != "" {
				out = append(out, Candidate{URL: strings.TrimSpace(m[1]), Descriptor: n})
				continue
			}
		}
		// Unknown descriptor (e.g. "1.5x"): keep the URL, score it 0.
		out = append(out, Candidate{URL: strings.Fields(part)[0]})
	}
	return out
}

// PickBest returns the candidate with the largest descriptor. The first
// candidate wins ties.
func PickBest(srcset string) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range ParseSrcset(srcset) {
		if !found || c.Descriptor > best.Descriptor {
			best = c
			found = true
		}
	}
	return best, found
}

// score ranks per-source winners across a picture element. The URL length
// term only breaks ties between equal descriptors.
func (c Candidate) score() float64 {
	return float64(c.Descriptor) + float64(len(c.URL))/1000
}
