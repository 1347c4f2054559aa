// internal/booking/search/service.go
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/chrisns/matrixbookingmcp-sub000/internal/common/errors"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/logger"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

// Service orchestrates a facility search: parse the query, scope candidates
// through the catalog, score and rank them, then enrich the survivors.
type Service struct {
	catalog      matrix.LocationCatalog
	availability matrix.AvailabilityChecker
	logger       logger.Logger
	defaultMax   int
	maxMax       int
}

func NewService(catalog matrix.LocationCatalog, availability matrix.AvailabilityChecker, defaultMax, maxMax int, log logger.Logger) *Service {
	if defaultMax <= 0 {
		defaultMax = 10
	}
	if maxMax <= 0 {
		maxMax = 50
	}
	return &Service{
		catalog:      catalog,
		availability: availability,
		logger:       log.WithFields(map[string]interface{}{"component": "facility-search"}),
		defaultMax:   defaultMax,
		maxMax:       maxMax,
	}
}

// Request carries the search entrypoint inputs. MaxResults below zero means
// "not supplied"; zero is honored as a literal cap. Duration is in minutes
// and derives the window end when DateFrom is set without DateTo.
type Request struct {
	Query      string
	DateFrom   string
	DateTo     string
	Duration   int
	BuildingID int64
	Category   string
	MaxResults int
}

// ParsedRequirements echoes what the parser extracted, for response metadata.
type ParsedRequirements struct {
	Capacity   int      `json:"capacity,omitempty"`
	Facilities []string `json:"facilities"`
}

// Response is the search entrypoint output.
type Response struct {
	Query              string             `json:"query"`
	ParsedRequirements ParsedRequirements `json:"parsedRequirements"`
	FiltersApplied     []string           `json:"filtersApplied"`
	Results            []SearchResult     `json:"results"`
	TotalResults       int                `json:"totalResults"`
	Suggestions        []string           `json:"suggestions,omitempty"`
	SearchTime         string             `json:"searchTime"`
}

// Search runs the full pipeline. A zero-result search is a success with
// suggestions, never an error; the only hard validation failure is a missing
// query, which the tool boundary rejects before calling here.
func (s *Service) Search(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, apperrors.NewMissingParameterError("query")
	}

	start := time.Now()

	dateFrom, dateTo := req.DateFrom, req.DateTo
	if dateTo == "" && dateFrom != "" && req.Duration > 0 {
		if derived, ok := windowEnd(dateFrom, req.Duration); ok {
			dateTo = derived
		}
	}

	requirement := ParseQuery(req.Query)
	requirement.DateFrom = dateFrom
	requirement.DateTo = dateTo
	requirement.BuildingID = req.BuildingID
	requirement.CategoryHint = req.Category

	maxResults := req.MaxResults
	if maxResults < 0 {
		maxResults = s.defaultMax
	}
	if maxResults > s.maxMax {
		maxResults = s.maxMax
	}

	candidates, err := s.loadCandidates(ctx, requirement)
	if err != nil {
		return nil, apperrors.WithContext(err, "query", req.Query)
	}

	hasWindow := dateFrom != "" && dateTo != ""
	availabilityByID := map[int64]*AvailabilityInfo{}
	if hasWindow {
		candidates, availabilityByID = s.filterByAvailability(ctx, candidates, dateFrom, dateTo)
	}

	tokenMatchCounts := map[string]int{}
	var results []SearchResult
	for _, loc := range candidates {
		result, matchedTokens, ok := scoreLocation(requirement, loc, availabilityByID[loc.ID])
		if !ok {
			continue
		}
		for _, value := range matchedTokens {
			tokenMatchCounts[value]++
		}
		results = append(results, result)
	}

	results = rankResults(results, maxResults)
	s.enrichResults(ctx, results)

	resp := &Response{
		Query: req.Query,
		ParsedRequirements: ParsedRequirements{
			Capacity:   requirement.Capacity,
			Facilities: requirement.TokenValues(),
		},
		FiltersApplied: filtersApplied(req, requirement, dateFrom, dateTo),
		Results:        results,
		TotalResults:   len(results),
		SearchTime:     fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
	}
	if resp.Results == nil {
		resp.Results = []SearchResult{}
	}
	if resp.ParsedRequirements.Facilities == nil {
		resp.ParsedRequirements.Facilities = []string{}
	}
	if requirement.HasTokens() && resp.TotalResults == 0 {
		resp.Suggestions = buildSuggestions(requirement, tokenMatchCounts)
	}

	s.logger.Info("search completed", map[string]interface{}{
		"query":        req.Query,
		"tokens":       len(requirement.FacilityTokens),
		"candidates":   len(candidates),
		"totalResults": resp.TotalResults,
		"searchTime":   resp.SearchTime,
	})
	return resp, nil
}

// loadCandidates scopes the search to bookable leaf locations under the
// requested building (or the whole organization).
func (s *Service) loadCandidates(ctx context.Context, requirement *Requirement) ([]matrix.Location, error) {
	hierarchy, err := s.catalog.GetLocationHierarchy(ctx, &matrix.HierarchyRequest{
		ParentID:          requirement.BuildingID,
		IncludeChildren:   true,
		IncludeFacilities: true,
		Kind:              requirement.CategoryHint,
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]matrix.Location, 0, len(hierarchy.Locations))
	for _, loc := range hierarchy.Locations {
		if isBookableCandidate(loc) {
			candidates = append(candidates, loc)
		}
	}
	return candidates, nil
}

// Structural nodes (buildings, floors) are never booking candidates.
func isBookableCandidate(loc matrix.Location) bool {
	switch strings.ToUpper(loc.Kind) {
	case "ORGANISATION", "ORGANIZATION", "BUILDING", "FLOOR":
		return false
	}
	return loc.IsBookable || loc.Kind == "" || strings.EqualFold(loc.Kind, "ROOM") || strings.EqualFold(loc.Kind, "DESK")
}

// filterByAvailability checks each candidate concurrently. A failed check is
// isolated to that candidate: it stays in the result set without an
// availability annotation rather than failing the whole search.
func (s *Service) filterByAvailability(ctx context.Context, candidates []matrix.Location, dateFrom, dateTo string) ([]matrix.Location, map[int64]*AvailabilityInfo) {
	type outcome struct {
		checked   bool
		available bool
	}
	outcomes := make([]outcome, len(candidates))

	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := s.availability.CheckAvailability(ctx, &matrix.AvailabilityRequest{
				LocationID: candidates[i].ID,
				DateFrom:   dateFrom,
				DateTo:     dateTo,
			})
			if err != nil {
				s.logger.Debug("availability check failed, keeping candidate unannotated", map[string]interface{}{
					"locationId": candidates[i].ID,
					"error":      err.Error(),
				})
				return
			}
			outcomes[i] = outcome{checked: true, available: resp.Available}
		}(i)
	}
	wg.Wait()

	kept := make([]matrix.Location, 0, len(candidates))
	annotations := make(map[int64]*AvailabilityInfo, len(candidates))
	for i, loc := range candidates {
		if outcomes[i].checked && !outcomes[i].available {
			continue
		}
		if outcomes[i].checked {
			annotations[loc.ID] = &AvailabilityInfo{IsAvailable: true}
		}
		kept = append(kept, loc)
	}
	return kept, annotations
}

// enrichResults fills in full location detail (ancestors, complete facility
// lists) for the final page. A failed lookup degrades that result to the
// hierarchy entry it already carries.
func (s *Service) enrichResults(ctx context.Context, results []SearchResult) {
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			detail, err := s.catalog.GetLocation(ctx, results[i].Location.ID)
			if err != nil {
				enrichErr := apperrors.NewEnrichmentFailedError(results[i].Location.ID, err)
				s.logger.Debug("result enrichment failed, using minimal location info", map[string]interface{}{
					"locationId": results[i].Location.ID,
					"error":      enrichErr.Details,
				})
				return
			}
			if len(detail.Facilities) == 0 {
				detail.Facilities = results[i].Location.Facilities
			}
			results[i].Location = *detail
		}(i)
	}
	wg.Wait()
}

func filtersApplied(req *Request, requirement *Requirement, dateFrom, dateTo string) []string {
	filters := []string{}
	if req.BuildingID > 0 {
		filters = append(filters, fmt.Sprintf("building:%d", req.BuildingID))
	}
	if req.Category != "" {
		filters = append(filters, fmt.Sprintf("category:%s", req.Category))
	}
	if dateFrom != "" && dateTo != "" {
		filters = append(filters, fmt.Sprintf("timeWindow:%s/%s", dateFrom, dateTo))
	}
	if req.Duration > 0 {
		filters = append(filters, fmt.Sprintf("duration:%dm", req.Duration))
	}
	if requirement.Capacity > 0 {
		filters = append(filters, fmt.Sprintf("capacity:%d", requirement.Capacity))
	}
	return filters
}

// Matrix API times are ISO 8601 local-to-venue without a zone.
const timeLayout = "2006-01-02T15:04:05"

// windowEnd derives the end of the availability window from a start time and
// a duration in minutes. An unparseable start leaves the window open rather
// than failing the search.
func windowEnd(dateFrom string, minutes int) (string, bool) {
	start, err := time.Parse(timeLayout, dateFrom)
	if err != nil {
		return "", false
	}
	return start.Add(time.Duration(minutes) * time.Minute).Format(timeLayout), true
}
