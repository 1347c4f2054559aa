// internal/tools/availability.go
package tools

import (
	"context"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

func (h *Handlers) checkAvailabilityTool() *Tool {
	return &Tool{
		Name:        "matrix_booking_check_availability",
		Description: "Check whether a room or desk is free for a time window. Accepts a location name, room number, or numeric id.",
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
				"dateFrom": map[string]interface{}{
					"type":        "string",
					"description": "Start of the window, ISO 8601",
				},
				"dateTo": map[string]interface{}{
					"type":        "string",
					"description": "End of the window, ISO 8601",
				},
			},
			"required": []interface{}{"dateFrom", "dateTo"},
		},
		Handler: h.handleCheckAvailability,
	}
}

type availabilityParams struct {
	Location   string `json:"location"`
	LocationID int64  `json:"locationId"`
	DateFrom   string `json:"dateFrom"`
	DateTo     string `json:"dateTo"`
}

func (h *Handlers) handleCheckAvailability(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var params availabilityParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	locationID, err := h.resolveLocationArg(ctx, params.LocationID, params.Location)
	if err != nil {
		return nil, err
	}

	return h.availability.CheckAvailability(ctx, &matrix.AvailabilityRequest{
		LocationID: locationID,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
	})
}
