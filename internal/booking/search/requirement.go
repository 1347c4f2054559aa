// internal/booking/search/requirement.go
package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RequirementToken is one normalized facility request extracted from the
// query, optionally carrying a size attribute ("55\"" for a screen).
type RequirementToken struct {
	Value string `json:"value"`
	Size  string `json:"size,omitempty"`
}

// Requirement is the structured form of a free-text space query. Built once
// per search call and discarded afterwards. A Capacity of zero means none was
// requested.
type Requirement struct {
	Capacity       int
	FacilityTokens []RequirementToken
	DateFrom       string
	DateTo         string
	BuildingID     int64
	CategoryHint   string
}

// HasTokens reports whether the query asked for any specific facility.
func (r *Requirement) HasTokens() bool {
	return len(r.FacilityTokens) > 0
}

// TokenValues returns the normalized token strings in extraction order.
func (r *Requirement) TokenValues() []string {
	values := make([]string, len(r.FacilityTokens))
	for i, tok := range r.FacilityTokens {
		values[i] = tok.Value
	}
	return values
}

// capacityPatterns are tried in order; the first capturing match wins.
var capacityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfor\s+(\d+)\s+(?:people|persons?|attendees|guests|participants)\b`),
	regexp.MustCompile(`(?i)\b(\d+)[\s-]person\b`),
	regexp.MustCompile(`(?i)\bseats?\s+(\d+)\b`),
	regexp.MustCompile(`(?i)\bcapacity\s+(?:of\s+)?(\d+)\b`),
}

// vocabularyRule maps query phrasings onto a canonical facility token.
// Multi-word phrases precede their component words so "conference phone"
// never degrades to "phone".
type vocabularyRule struct {
	canonical string
	pattern   *regexp.Regexp
}

func vocab(canonical, expr string) vocabularyRule {
	return vocabularyRule{canonical: canonical, pattern: regexp.MustCompile(`(?i)\b(?:` + expr + `)\b`)}
}

var facilityVocabulary = []vocabularyRule{
	vocab("video conference", `video[\s-]?conferenc\w*|videoconferenc\w*`),
	vocab("conference phone", `conference\s+phone|speaker\s*phone`),
	vocab("standing desk", `standing\s+desk|height\s+adjustable\s+desk`),
	vocab("air conditioning", `air\s+conditioning|air[\s-]?con`),
	vocab("wheelchair accessible", `wheelchair(?:\s+access(?:ible)?)?|accessible`),
	// "screen" and "TV" normalize toward the same display family.
	vocab("screen", `screens?|tvs?|televisions?|monitors?|displays?`),
	vocab("projector", `projectors?`),
	vocab("whiteboard", `white\s?boards?`),
	vocab("camera", `cameras?|webcams?`),
	vocab("phone", `phones?`),
	vocab("wifi", `wi-?fi`),
	vocab("ethernet", `ethernet`),
	vocab("desk", `desks?`),
	vocab("coffee", `coffee`),
	vocab("catering", `catering`),
	vocab("speaker", `speakers?`),
}

// Size expressions: `55"`, `55 inch`, `55-inch`.
var sizePattern = regexp.MustCompile(`(\d{2,3})\s*(?:"|''|[\s-]?inch(?:es)?\b)`)

// ParseQuery turns free-text into a structured Requirement. A query with no
// recognized tokens and no capacity is valid: it matches any available space.
func ParseQuery(query string) *Requirement {
	req := &Requirement{}
	req.Capacity = extractCapacity(query)
	req.FacilityTokens = extractFacilityTokens(query)
	return req
}

func extractCapacity(query string) int {
	for _, pattern := range capacityPatterns {
		if m := pattern.FindStringSubmatch(query); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

type tokenMatch struct {
	token    RequirementToken
	position int
}

func extractFacilityTokens(query string) []RequirementToken {
	var matches []tokenMatch
	seen := map[string]int{}
	consumed := make([]bool, len(query))

	for _, rule := range facilityVocabulary {
		for _, loc := range rule.pattern.FindAllStringIndex(query, -1) {
			if spanConsumed(consumed, loc[0], loc[1]) {
				continue
			}
			markConsumed(consumed, loc[0], loc[1])
			if _, dup := seen[rule.canonical]; dup {
				continue
			}
			seen[rule.canonical] = len(matches)
			matches = append(matches, tokenMatch{
				token:    RequirementToken{Value: rule.canonical},
				position: loc[0],
			})
		}
	}

	matches = attachSizes(query, matches)

	// Restore query order; vocabulary precedence only decides which rule
	// claimed a span, not result ordering.
	sortTokenMatches(matches)

	tokens := make([]RequirementToken, len(matches))
	for i, m := range matches {
		tokens[i] = m.token
	}
	return tokens
}

// attachSizes extracts size expressions and attaches each to the nearest
// facility token by query position. With no tokens at all, a size becomes a
// standalone token so it still participates in matching.
func attachSizes(query string, matches []tokenMatch) []tokenMatch {
	for _, loc := range sizePattern.FindAllStringSubmatchIndex(query, -1) {
		size := fmt.Sprintf(`%s"`, query[loc[2]:loc[3]])
		nearest := -1
		bestDistance := -1
		for i, m := range matches {
			if m.token.Size != "" {
				continue
			}
			distance := m.position - loc[0]
			if distance < 0 {
				distance = -distance
			}
			if nearest == -1 || distance < bestDistance {
				nearest = i
				bestDistance = distance
			}
		}
		if nearest >= 0 {
			matches[nearest].token.Size = size
		} else {
			matches = append(matches, tokenMatch{
				token:    RequirementToken{Value: size, Size: size},
				position: loc[0],
			})
		}
	}
	return matches
}

func sortTokenMatches(matches []tokenMatch) {
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].position < matches[j-1].position; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
}

func spanConsumed(consumed []bool, from, to int) bool {
	for i := from; i < to && i < len(consumed); i++ {
		if consumed[i] {
			return true
		}
	}
	return false
}

func markConsumed(consumed []bool, from, to int) {
	for i := from; i < to && i < len(consumed); i++ {
		consumed[i] = true
	}
}

// NormalizeToken lowercases and trims a caller-supplied facility token so it
// compares the way parsed tokens do.
func NormalizeToken(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// canonicalFamily maps a facility type through the query vocabulary, so a
// "screen" token relates to a facility whose parsed type is "tv".
func canonicalFamily(s string) string {
	for _, rule := range facilityVocabulary {
		if rule.pattern.MatchString(s) {
			return rule.canonical
		}
	}
	return NormalizeToken(s)
}
