// internal/booking/search/matcher.go
package search

import "strings"

// MatchType is the specificity class of a token/facility match.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchPartial  MatchType = "partial"
	MatchRelated  MatchType = "related"
	MatchCategory MatchType = "category"
)

// Scores are internal tuning; the contract is only the ordering
// exact >= partial/related >= category, within [0,100].
const (
	scoreExact    = 100
	scorePartial  = 75
	scoreRelated  = 60
	scoreCategory = 40
)

// MatchResult records one positive token/facility match.
type MatchResult struct {
	Facility  Facility  `json:"facility"`
	MatchType MatchType `json:"matchType"`
	Score     int       `json:"score"`
}

// MatchFacility compares one requirement token against one facility. The
// match types are evaluated in precedence order and the first success wins;
// pairs with no relationship return ok=false and are omitted from results.
func MatchFacility(token RequirementToken, facility Facility) (MatchResult, bool) {
	needle := NormalizeToken(token.Value)
	if needle == "" {
		return MatchResult{}, false
	}
	name := NormalizeToken(facility.Name)

	if needle == name {
		return MatchResult{Facility: facility, MatchType: MatchExact, Score: scoreExact}, true
	}

	if strings.Contains(name, needle) || strings.Contains(needle, name) {
		return MatchResult{Facility: facility, MatchType: MatchPartial, Score: scorePartial}, true
	}

	if needle == facility.Parsed.Type || needle == canonicalFamily(facility.Parsed.Type) ||
		containsString(facility.Parsed.Features, needle) {
		return MatchResult{Facility: facility, MatchType: MatchRelated, Score: scoreRelated}, true
	}

	if needle == string(facility.Category) {
		return MatchResult{Facility: facility, MatchType: MatchCategory, Score: scoreCategory}, true
	}

	return MatchResult{}, false
}

// BestMatch runs one token across a location's facilities and keeps the
// highest-scoring match.
func BestMatch(token RequirementToken, facilities []Facility) (MatchResult, bool) {
	var best MatchResult
	found := false
	for _, facility := range facilities {
		result, ok := MatchFacility(token, facility)
		if !ok {
			continue
		}
		if !found || result.Score > best.Score {
			best = result
			found = true
		}
	}
	return best, found
}
