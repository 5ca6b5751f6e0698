package mimetype

import (
	"sort"
	"strconv"
	"strings"
)

// Candidate is one entry of an ordered content-type preference list. Lists are
// unique by Type and sorted most-preferred first.
type Candidate struct {
	// The normalized content type.
	Type MimeType
	// Accept-header quality for this type. Candidates produced from an explicit
	// Content-Type header or query parameter carry a quality of 1.0.
	Quality float64
}

/*
ParseAccept parses an HTTP Accept header into an ordered Candidate list.

Entries are split on commas and normalized with FromString. A ";q=" parameter sets
the entry's quality; a missing or malformed quality defaults to 1.0. The result is
sorted by descending quality, with ties broken by header order. Duplicate types keep
their highest-quality occurrence.

A blank header returns an empty list. Wildcard ranges are preserved as
mimetype.WILDCARD candidates for the caller to map to a default type.
*/
func ParseAccept(header string) []Candidate {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	candidates := make([]Candidate, 0, 4)
	seen := make(map[MimeType]int)

	for _, entry := range strings.Split(header, ",") {
		mimeType, quality := parseAcceptEntry(entry)
		if mimeType == UNKNOWN {
			continue
		}

		// Keep the higher-ranked occurrence of a repeated type.
		if existing, ok := seen[mimeType]; ok {
			if quality > candidates[existing].Quality {
				candidates[existing].Quality = quality
			}
			continue
		}

		seen[mimeType] = len(candidates)
		candidates = append(candidates, Candidate{Type: mimeType, Quality: quality})
	}

	// Stable so equal qualities keep their header order.
	sort.SliceStable(candidates, func(i int, j int) bool {
		return candidates[i].Quality > candidates[j].Quality
	})

	return candidates
}

// Parses a single Accept entry such as "application/json;q=0.9".
func parseAcceptEntry(entry string) (MimeType, float64) {
	parts := strings.Split(entry, ";")
	mimeType := FromString(parts[0])

	quality := 1.0
	for _, param := range parts[1:] {
		param = strings.TrimSpace(param)
		if !strings.HasPrefix(param, "q=") {
			continue
		}

		parsed, err := strconv.ParseFloat(strings.TrimPrefix(param, "q="), 64)
		// Malformed qualities fall back to 1.0 rather than poisoning the whole
		// header.
		if err != nil || parsed < 0 || parsed > 1 {
			parsed = 1.0
		}
		quality = parsed
	}

	return mimeType, quality
}
