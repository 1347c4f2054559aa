// internal/matrix/interfaces.go
package matrix

import "context"

// LocationCatalog reads the organization's location tree. The search engine
// and the hierarchy resolver both consume it.
type LocationCatalog interface {
	GetLocation(ctx context.Context, id int64) (*Location, error)
	GetLocationHierarchy(ctx context.Context, req *HierarchyRequest) (*HierarchyResponse, error)
}

// AvailabilityChecker answers whether a location is free for a time window.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, req *AvailabilityRequest) (*AvailabilityResponse, error)
}

// BookingService creates and cancels bookings against the platform.
type BookingService interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID int64, notifyScope string) (*CancelBookingResponse, error)
}

// OrganizationService exposes account and organization-level lookups.
type OrganizationService interface {
	GetCurrentUser(ctx context.Context) (*User, error)
	GetBookingCategories(ctx context.Context, orgID int64) ([]BookingCategory, error)
}
