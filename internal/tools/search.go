// internal/tools/search.go
package tools

import (
	"context"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/booking/search"
)

func (h *Handlers) findRoomsWithFacilitiesTool() *Tool {
	return &Tool{
		Name:        "find_rooms_with_facilities",
		Description: "Search for bookable rooms and desks matching a natural-language facility query, e.g. \"room with 55 inch screen and video conference for 8 people\".",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language description of the required facilities, capacity and room type",
				},
				"dateFrom": map[string]interface{}{
					"type":        "string",
					"description": "Start of the desired time window, ISO 8601",
				},
				"dateTo": map[string]interface{}{
					"type":        "string",
					"description": "End of the desired time window, ISO 8601",
				},
				"duration": map[string]interface{}{
					"type":        "integer",
					"description": "Desired booking length in minutes; with dateFrom and no dateTo it sets the end of the time window",
				},
				"buildingId": map[string]interface{}{
					"type":        "integer",
					"description": "Restrict the search to one building's subtree",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Restrict the search to a location kind, e.g. ROOM or DESK",
				},
				"maxResults": map[string]interface{}{
					"type":        "integer",
					"description": "Cap on the number of ranked results returned",
				},
			},
			"required": []interface{}{"query"},
		},
		Handler: h.handleFindRoomsWithFacilities,
	}
}

type findRoomsParams struct {
	Query      string `json:"query"`
	DateFrom   string `json:"dateFrom"`
	DateTo     string `json:"dateTo"`
	Duration   int    `json:"duration"`
	BuildingID int64  `json:"buildingId"`
	Category   string `json:"category"`
	MaxResults *int   `json:"maxResults"`
}

func (h *Handlers) handleFindRoomsWithFacilities(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var params findRoomsParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	// MaxResults absent and MaxResults zero are different requests.
	maxResults := -1
	if params.MaxResults != nil {
		maxResults = *params.MaxResults
	}

	return h.search.Search(ctx, &search.Request{
		Query:      params.Query,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		Duration:   params.Duration,
		BuildingID: params.BuildingID,
		Category:   params.Category,
		MaxResults: maxResults,
	})
}
