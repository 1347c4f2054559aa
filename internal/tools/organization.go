// internal/tools/organization.go
package tools

import "context"

func (h *Handlers) getBookingCategoriesTool() *Tool {
	return &Tool{
		Name:        "get_booking_categories",
		Description: "List the organization's booking categories (groupings of bookable locations such as meeting rooms or desks).",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Handler: h.handleGetBookingCategories,
	}
}

func (h *Handlers) handleGetBookingCategories(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	user, err := h.organization.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := h.organization.GetBookingCategories(ctx, user.OrganisationID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"categories": categories,
		"total":      len(categories),
	}, nil
}

func (h *Handlers) getCurrentUserTool() *Tool {
	return &Tool{
		Name:        "get_current_user",
		Description: "Return the authenticated Matrix Booking user, including the organization id used for catalog lookups.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Handler: h.handleGetCurrentUser,
	}
}

func (h *Handlers) handleGetCurrentUser(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	return h.organization.GetCurrentUser(ctx)
}
