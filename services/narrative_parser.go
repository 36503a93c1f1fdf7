package services

import (
	"regexp"
	"strconv"
	"strings"
)

// improvementsMarker is the canonical section label every synonym is rewritten
// to before the response is split. The bracketed form cannot occur naturally
// in model prose, so the split point is unambiguous after normalization.
const improvementsMarker = "[[improvements]]"

// sectionSynonyms is the normalization table for the improvements section
// label: an ordered list of line-anchored patterns, each rewritten to the
// canonical marker. Model outputs vary in how they title the second section;
// extending support for a new phrasing means adding a row here, not branching
// in the parser.
var sectionSynonyms = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^.{0,8}areas?\s+(?:for|of|to)\s+improvements?\b.*$`),
	regexp.MustCompile(`(?im)^.{0,8}improvement\s+areas?\b.*$`),
	regexp.MustCompile(`(?im)^.{0,8}(?:points?|things|areas?)\s+to\s+improve\b.*$`),
	regexp.MustCompile(`(?im)^.{0,8}improvements?\s*:?\s*$`),
}

// numberedLine matches a numbered-list bullet: optional indentation, a leading
// integer, a period. Everything else (headers, prose, blanks) is discarded.
var numberedLine = regexp.MustCompile(`^\s*(\d+)\.\s*\S`)

// normalizeSectionLabels rewrites every recognized improvements-section label
// line to the canonical marker.
func normalizeSectionLabels(raw string) string {
	out := raw
	for _, pattern := range sectionSynonyms {
		out = pattern.ReplaceAllString(out, improvementsMarker)
	}
	return out
}

// numberedLines keeps the lines of text that look like numbered bullets with
// numbers 1..maxBullets, trimmed, in original order.
func numberedLines(text string, maxBullets int) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		m := numberedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > maxBullets {
			continue
		}
		items = append(items, strings.TrimSpace(line))
	}
	return items
}

// parseNarrative splits a free-form generation response into strengths and
// improvements bullet lists. The text before the first improvements marker is
// the strengths section; the text after it is the improvements section. A
// response with no recognizable improvements section yields an empty
// improvements list rather than an error, and a section with no numbered
// lines yields an empty list for that side.
func parseNarrative(raw string, maxBullets int) (strengths, improvements []string) {
	normalized := normalizeSectionLabels(raw)
	before, after, found := strings.Cut(normalized, improvementsMarker)
	strengths = numberedLines(before, maxBullets)
	if found {
		improvements = numberedLines(after, maxBullets)
	} else {
		improvements = []string{}
	}
	return strengths, improvements
}
