// internal/tools/locations.go
package tools

import (
	"context"
	"strings"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

func (h *Handlers) getLocationTool() *Tool {
	return &Tool{
		Name:        "matrix_booking_get_location",
		Description: "Look up one location by name, room number, or numeric id and return its full detail, including facilities and ancestors.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"location": map[string]interface{}{
					"type":        "string",
					"description": "Location name, room number, or id as text",
				},
				"locationId": map[string]interface{}{
					"type":        "integer",
					"description": "Numeric location id, takes precedence over location",
				},
			},
		},
		Handler: h.handleGetLocation,
	}
}

type getLocationParams struct {
	Location   string `json:"location"`
	LocationID int64  `json:"locationId"`
}

func (h *Handlers) handleGetLocation(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var params getLocationParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	locationID, err := h.resolveLocationArg(ctx, params.LocationID, params.Location)
	if err != nil {
		return nil, err
	}
	return h.catalog.GetLocation(ctx, locationID)
}

func (h *Handlers) getLocationsByCategoryTool() *Tool {
	return &Tool{
		Name:        "get_locations_by_category",
		Description: "List bookable locations of one kind (e.g. ROOM or DESK), optionally scoped to a building subtree.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Location kind to list, e.g. ROOM or DESK",
				},
				"buildingId": map[string]interface{}{
					"type":        "integer",
					"description": "Restrict the listing to one building's subtree",
				},
			},
			"required": []interface{}{"category"},
		},
		Handler: h.handleGetLocationsByCategory,
	}
}

type locationsByCategoryParams struct {
	Category   string `json:"category"`
	BuildingID int64  `json:"buildingId"`
}

func (h *Handlers) handleGetLocationsByCategory(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var params locationsByCategoryParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	hierarchy, err := h.catalog.GetLocationHierarchy(ctx, &matrix.HierarchyRequest{
		ParentID:          params.BuildingID,
		IncludeChildren:   true,
		IncludeFacilities: true,
		Kind:              params.Category,
	})
	if err != nil {
		return nil, err
	}

	kind := strings.ToUpper(strings.TrimSpace(params.Category))
	matched := make([]matrix.Location, 0, len(hierarchy.Locations))
	for _, loc := range hierarchy.Locations {
		if strings.ToUpper(loc.Kind) == kind {
			matched = append(matched, loc)
		}
	}

	return map[string]interface{}{
		"category":  kind,
		"locations": matched,
		"total":     len(matched),
	}, nil
}
