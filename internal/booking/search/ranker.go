// internal/booking/search/ranker.go
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

// CapacityFit annotates how a location's capacity compares to the request.
type CapacityFit struct {
	Requested int  `json:"requested"`
	Actual    int  `json:"actual"`
	IsMatch   bool `json:"isMatch"`
}

// AvailabilityInfo annotates the availability check outcome for the window.
type AvailabilityInfo struct {
	IsAvailable bool `json:"isAvailable"`
}

// SearchResult is one ranked candidate location.
type SearchResult struct {
	Location        matrix.Location   `json:"location"`
	RelevanceScore  float64           `json:"relevanceScore"`
	MatchReason     string            `json:"matchReason"`
	FacilityMatches []MatchResult     `json:"facilityMatches,omitempty"`
	Capacity        *CapacityFit      `json:"capacity,omitempty"`
	Availability    *AvailabilityInfo `json:"availability,omitempty"`
}

// Relevance weighting. Facility coverage dominates; capacity fit and
// availability are bonuses. The aggregate stays within [0,100].
const (
	facilityWeight    = 70.0
	neutralFacility   = 50.0
	capacityBonus     = 20.0
	availabilityBonus = 10.0
	maxRelevance      = 100.0
)

// combineRelevance is the single place facility match scores, capacity fit
// and availability fold into one ranking signal. bestScores holds the best
// per-token match score for each satisfied token; tokenCount is the number of
// tokens requested.
func combineRelevance(bestScores []int, tokenCount int, capacity *CapacityFit, availability *AvailabilityInfo) float64 {
	var score float64
	if tokenCount > 0 {
		sum := 0
		for _, s := range bestScores {
			sum += s
		}
		score = facilityWeight * float64(sum) / float64(tokenCount*100)
	} else {
		// No facility tokens: every candidate is facility-neutral and
		// capacity/availability decide the ordering.
		score = neutralFacility
	}

	if capacity != nil && capacity.IsMatch {
		score += capacityBonus
	}
	if availability != nil && availability.IsAvailable {
		score += availabilityBonus
	}

	if score > maxRelevance {
		score = maxRelevance
	}
	return score
}

// scoreLocation evaluates one candidate against the requirement. It returns
// ok=false when the requirement has tokens and none of them matched; such
// locations are excluded entirely. matchedTokens reports which token values
// were satisfied, for suggestion building.
func scoreLocation(req *Requirement, loc matrix.Location, availability *AvailabilityInfo) (result SearchResult, matchedTokens []string, ok bool) {
	facilities := ParseFacilities(loc.Facilities)

	var matches []MatchResult
	var bestScores []int
	for _, token := range req.FacilityTokens {
		best, found := BestMatch(token, facilities)
		if !found {
			continue
		}
		matches = append(matches, best)
		bestScores = append(bestScores, best.Score)
		matchedTokens = append(matchedTokens, token.Value)
	}

	if req.HasTokens() && len(matches) == 0 {
		return SearchResult{}, nil, false
	}

	var capacity *CapacityFit
	if req.Capacity > 0 {
		capacity = &CapacityFit{
			Requested: req.Capacity,
			Actual:    loc.Capacity,
			IsMatch:   loc.HasCapacity() && loc.Capacity >= req.Capacity,
		}
	}

	return SearchResult{
		Location:        loc,
		RelevanceScore:  combineRelevance(bestScores, len(req.FacilityTokens), capacity, availability),
		MatchReason:     matchReason(req, matches, capacity, availability),
		FacilityMatches: matches,
		Capacity:        capacity,
		Availability:    availability,
	}, matchedTokens, true
}

func matchReason(req *Requirement, matches []MatchResult, capacity *CapacityFit, availability *AvailabilityInfo) string {
	var parts []string
	if req.HasTokens() {
		parts = append(parts, fmt.Sprintf("matched %d of %d requested facilities", len(matches), len(req.FacilityTokens)))
	} else {
		parts = append(parts, "available space")
	}
	if capacity != nil {
		if capacity.IsMatch {
			parts = append(parts, fmt.Sprintf("fits %d people", capacity.Requested))
		} else {
			parts = append(parts, fmt.Sprintf("capacity below requested %d", capacity.Requested))
		}
	}
	if availability != nil && availability.IsAvailable {
		parts = append(parts, "free in the requested window")
	}
	return strings.Join(parts, ", ")
}

// rankResults sorts descending by relevance and truncates to maxResults.
// The sort is stable so equal scores keep catalog order.
func rankResults(results []SearchResult, maxResults int) []SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if maxResults >= 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// buildSuggestions produces broadening advice for a zero-result search with
// tokens. tokenMatchCounts maps each token value to how many candidates it
// matched; the rarest token is the first candidate to drop.
func buildSuggestions(req *Requirement, tokenMatchCounts map[string]int) []string {
	var suggestions []string

	if rarest, ok := rarestToken(req, tokenMatchCounts); ok {
		suggestions = append(suggestions, fmt.Sprintf("Try removing %q from your search", rarest))
	}
	suggestions = append(suggestions, "Browse available rooms by category using get_locations_by_category")
	if req.BuildingID > 0 {
		suggestions = append(suggestions, "Search across all buildings by omitting the building filter")
	}
	if req.Capacity > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Reduce the requested capacity below %d", req.Capacity))
	}
	return suggestions
}

func rarestToken(req *Requirement, counts map[string]int) (string, bool) {
	rarest := ""
	rarestCount := -1
	for _, token := range req.FacilityTokens {
		c := counts[token.Value]
		if rarestCount == -1 || c < rarestCount {
			rarest = token.Value
			rarestCount = c
		}
	}
	return rarest, rarest != ""
}
