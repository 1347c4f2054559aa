// internal/matrix/types.go
package matrix

// LocationSummary is the compact form of a location used in ancestor chains
// and booking confirmations.
type LocationSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind,omitempty"`
}

// RawFacility is a facility exactly as the Matrix API reports it. The search
// engine derives its own structured view from Name.
type RawFacility struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Location is a node in the organization's location tree. Capacity of zero
// means the catalog did not report one.
type Location struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Kind       string            `json:"kind,omitempty"`
	Capacity   int               `json:"capacity,omitempty"`
	IsBookable bool              `json:"isBookable,omitempty"`
	Facilities []RawFacility     `json:"facilities,omitempty"`
	Ancestors  []LocationSummary `json:"ancestors,omitempty"`
	Children   []Location        `json:"children,omitempty"`
}

// HasCapacity reports whether the catalog supplied a capacity for this location.
func (l *Location) HasCapacity() bool {
	return l.Capacity > 0
}

// HierarchyRequest scopes a location hierarchy query. A zero ParentID means
// the caller's whole organization.
type HierarchyRequest struct {
	ParentID          int64
	IncludeChildren   bool
	IncludeFacilities bool
	Kind              string
}

// HierarchyResponse lists locations in catalog traversal order. The order is
// part of the resolution contract: name/number lookups take the first hit.
type HierarchyResponse struct {
	Locations []Location `json:"locations"`
}

// AvailabilityRequest asks whether a location is free for a time window.
// Times are ISO 8601 local-to-venue strings, matching the Matrix API.
type AvailabilityRequest struct {
	LocationID int64  `json:"locationId"`
	DateFrom   string `json:"dateFrom"`
	DateTo     string `json:"dateTo"`
}

type AvailabilitySlot struct {
	TimeFrom  string `json:"timeFrom"`
	TimeTo    string `json:"timeTo"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	Available bool               `json:"available"`
	Slots     []AvailabilitySlot `json:"slots,omitempty"`
	Location  *LocationSummary   `json:"location,omitempty"`
}

// BookingOwner identifies who the booking is made for.
type BookingOwner struct {
	ID    int64  `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

type Attendee struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// CreateBookingRequest is the payload for POST /booking.
type CreateBookingRequest struct {
	TimeFrom        string       `json:"timeFrom"`
	TimeTo          string       `json:"timeTo"`
	LocationID      int64        `json:"locationId"`
	Attendees       []Attendee   `json:"attendees,omitempty"`
	ExtraRequests   []string     `json:"extraRequests,omitempty"`
	Owner           BookingOwner `json:"owner"`
	OwnerIsAttendee bool         `json:"ownerIsAttendee"`
	Source          string       `json:"source,omitempty"`
}

type BookingResponse struct {
	ID         int64            `json:"id"`
	Status     string           `json:"status"`
	TimeFrom   string           `json:"timeFrom"`
	TimeTo     string           `json:"timeTo"`
	LocationID int64            `json:"locationId"`
	Location   *LocationSummary `json:"location,omitempty"`
	Owner      *BookingOwner    `json:"owner,omitempty"`
}

type CancelBookingResponse struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	NotifyScope string `json:"notifyScope,omitempty"`
}

// User is the authenticated Matrix Booking account.
type User struct {
	ID             int64  `json:"id"`
	PersonID       int64  `json:"personId,omitempty"`
	OrganisationID int64  `json:"organisationId"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email"`
}

// BookingCategory is an organization-level grouping of bookable locations
// (e.g. meeting rooms vs desks).
type BookingCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"locationKind,omitempty"`
	Description string `json:"description,omitempty"`
}
