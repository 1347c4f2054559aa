// internal/booking/search/facility.go
package search

import (
	"regexp"
	"strings"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

// FacilityCategory is the closed taxonomy for facility classification.
type FacilityCategory string

const (
	CategoryAudioVisual   FacilityCategory = "audio_visual"
	CategoryFurniture     FacilityCategory = "furniture"
	CategoryTechnology    FacilityCategory = "technology"
	CategoryConnectivity  FacilityCategory = "connectivity"
	CategoryAccessibility FacilityCategory = "accessibility"
	CategoryCatering      FacilityCategory = "catering"
	CategoryComfort       FacilityCategory = "comfort"
)

// ParsedFacility is the structured view extracted from a facility label.
type ParsedFacility struct {
	Type     string   `json:"type"`
	Size     string   `json:"size,omitempty"`
	Features []string `json:"features,omitempty"`
}

// Facility is a single amenity attached to a bookable location, classified
// and decomposed from its raw catalog label.
type Facility struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category FacilityCategory `json:"category"`
	Parsed   ParsedFacility   `json:"parsed"`
}

// categoryRule pairs a category with the keywords that select it. Rules are
// checked in order, first match wins; anything unmatched is technology.
type categoryRule struct {
	category FacilityCategory
	keywords []string
}

var categoryRules = []categoryRule{
	{CategoryAudioVisual, []string{"screen", "tv", "television", "monitor", "display", "projector", "phone", "speaker", "video"}},
	{CategoryTechnology, []string{"camera", "webcam", "streaming", "computer", "laptop", "docking"}},
	{CategoryFurniture, []string{"desk", "chair", "table", "whiteboard", "flipchart"}},
	{CategoryConnectivity, []string{"wifi", "wi-fi", "ethernet", "network", "internet"}},
	{CategoryAccessibility, []string{"wheelchair", "accessible", "accessibility", "hearing"}},
	{CategoryCatering, []string{"coffee", "tea", "water", "catering", "food", "refreshment"}},
	{CategoryComfort, []string{"climate", "air conditioning", "aircon", "heating", "ventilation"}},
}

// categoryPattern is a rule compiled to a word-boundary alternation, so
// "chair" never fires inside "wheelchair" and "tea" never fires inside
// "team". The optional plural keeps "screens" and "TVs" matching.
type categoryPattern struct {
	category FacilityCategory
	pattern  *regexp.Regexp
}

var categoryPatterns = buildCategoryPatterns()

func buildCategoryPatterns() []categoryPattern {
	patterns := make([]categoryPattern, 0, len(categoryRules))
	for _, rule := range categoryRules {
		quoted := make([]string, len(rule.keywords))
		for i, keyword := range rule.keywords {
			quoted[i] = regexp.QuoteMeta(keyword)
		}
		patterns = append(patterns, categoryPattern{
			category: rule.category,
			pattern:  regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)s?\b`),
		})
	}
	return patterns
}

// featureKeywords are captured into parsed.features wherever they appear in a
// label. Stored normalized (lowercase). Multi-word entries come first so the
// longer phrase wins over its components.
var featureKeywords = []string{
	"height adjustable", "4k", "uhd", "hd", "wireless", "touch", "adjustable",
	"dual", "curved", "smart", "interactive", "ergonomic",
}

var featurePatterns = buildFeaturePatterns()

func buildFeaturePatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(featureKeywords))
	for _, keyword := range featureKeywords {
		patterns[keyword] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	}
	return patterns
}

var (
	// Leading size token such as `55"` (optionally with decimals).
	leadingSizePattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?")\s*`)
	slugSeparators     = regexp.MustCompile(`[\s\p{P}]+`)
	slugInvalid        = regexp.MustCompile(`[^a-z0-9_]`)
	whitespaceRuns     = regexp.MustCompile(`\s+`)
)

// ParseFacility classifies one raw facility label and extracts its metadata.
func ParseFacility(label string) Facility {
	name := strings.TrimSpace(label)
	return Facility{
		ID:       FacilityID(name),
		Name:     name,
		Category: Categorize(name),
		Parsed:   extractMetadata(name),
	}
}

// ParseFacilities derives the structured facility list for a location.
func ParseFacilities(raw []matrix.RawFacility) []Facility {
	if len(raw) == 0 {
		return nil
	}
	facilities := make([]Facility, 0, len(raw))
	for _, rf := range raw {
		if strings.TrimSpace(rf.Name) == "" {
			continue
		}
		facilities = append(facilities, ParseFacility(rf.Name))
	}
	return facilities
}

// ParseFacilityList splits a comma-separated label list and parses each entry.
func ParseFacilityList(labels string) []Facility {
	parts := strings.Split(labels, ",")
	facilities := make([]Facility, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		facilities = append(facilities, ParseFacility(part))
	}
	return facilities
}

// Categorize maps a label onto the category taxonomy, first keyword match wins.
// Keywords match whole words only.
func Categorize(label string) FacilityCategory {
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(label) {
			return cp.category
		}
	}
	return CategoryTechnology
}

func extractMetadata(label string) ParsedFacility {
	parsed := ParsedFacility{}
	rest := label

	if m := leadingSizePattern.FindStringSubmatch(rest); m != nil {
		parsed.Size = m[1]
		rest = rest[len(m[0]):]
	}

	for _, feature := range featureKeywords {
		pattern := featurePatterns[feature]
		if !pattern.MatchString(rest) {
			continue
		}
		parsed.Features = append(parsed.Features, feature)
		rest = pattern.ReplaceAllString(rest, " ")
	}

	parsed.Type = normalizeLabel(rest)
	return parsed
}

// FacilityID derives a stable slug id from a facility label: lowercase,
// separator runs collapsed to underscores, 50 chars max.
func FacilityID(label string) string {
	id := strings.ToLower(strings.TrimSpace(label))
	id = slugSeparators.ReplaceAllString(id, "_")
	id = slugInvalid.ReplaceAllString(id, "")
	id = strings.Trim(id, "_")
	if len(id) > 50 {
		id = id[:50]
	}
	return id
}

func normalizeLabel(s string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(strings.ToLower(s), " "))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
