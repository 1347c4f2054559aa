// internal/tools/booking.go
package tools

import (
	"context"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

func (h *Handlers) createBookingTool() *Tool {
	return &Tool{
		Name:        "matrix_booking_create_booking",
		Description: "Create a booking for a room or desk. The location can be given by name, room number, or numeric id; the booking owner defaults to the authenticated user.",
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
				"timeFrom": map[string]interface{}{
					"type":        "string",
					"description": "Booking start, ISO 8601",
				},
				"timeTo": map[string]interface{}{
					"type":        "string",
					"description": "Booking end, ISO 8601",
				},
				"attendees": map[string]interface{}{
					"type":        "array",
					"description": "People to invite",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"email": map[string]interface{}{"type": "string"},
							"name":  map[string]interface{}{"type": "string"},
						},
						"required": []interface{}{"email"},
					},
				},
				"extraRequests": map[string]interface{}{
					"type":        "array",
					"description": "Free-text requests passed to the venue, e.g. catering notes",
					"items":       map[string]interface{}{"type": "string"},
				},
			},
			"required": []interface{}{"timeFrom", "timeTo"},
		},
		Handler: h.handleCreateBooking,
	}
}

type createBookingParams struct {
	Location      string            `json:"location"`
	LocationID    int64             `json:"locationId"`
	TimeFrom      string            `json:"timeFrom"`
	TimeTo        string            `json:"timeTo"`
	Attendees     []matrix.Attendee `json:"attendees"`
	ExtraRequests []string          `json:"extraRequests"`
}

func (h *Handlers) handleCreateBooking(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var params createBookingParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	locationID, err := h.resolveLocationArg(ctx, params.LocationID, params.Location)
	if err != nil {
		return nil, err
	}

	user, err := h.organization.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	ownerID := user.PersonID
	if ownerID == 0 {
		ownerID = user.ID
	}
	ownerName := user.Name
	if ownerName == "" {
		ownerName = user.FirstName + " " + user.LastName
	}

	return h.bookings.CreateBooking(ctx, &matrix.CreateBookingRequest{
		TimeFrom:      params.TimeFrom,
		TimeTo:        params.TimeTo,
		LocationID:    locationID,
		Attendees:     params.Attendees,
		ExtraRequests: params.ExtraRequests,
		Owner: matrix.BookingOwner{
			ID:    ownerID,
			Email: user.Email,
			Name:  ownerName,
		},
		OwnerIsAttendee: true,
		Source:          "WEB",
	})
}

func (h *Handlers) cancelBookingTool() *Tool {
	return &Tool{
		Name:        "matrix_booking_cancel_booking",
		Description: "Cancel an existing booking by id, optionally controlling who gets notified.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"bookingId": map[string]interface{}{
					"type":        "integer",
					"description": "Id of the booking to cancel",
				},
				"notifyScope": map[string]interface{}{
					"type":        "string",
					"description": "Who to notify: ALL_ATTENDEES, OWNER_ONLY, or NONE",
					"enum":        []interface{}{"ALL_ATTENDEES", "OWNER_ONLY", "NONE"},
				},
			},
			"required": []interface{}{"bookingId"},
		},
		Handler: h.handleCancelBooking,
	}
}

type cancelBookingParams struct {
	BookingID   int64  `json:"bookingId"`
	NotifyScope string `json:"notifyScope"`
}

func (h *Handlers) handleCancelBooking(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var params cancelBookingParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	return h.bookings.CancelBooking(ctx, params.BookingID, params.NotifyScope)
}
