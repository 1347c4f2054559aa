// internal/tools/handlers.go
package tools

import (
	"context"
	"strings"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/booking/locations"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/booking/search"
	apperrors "github.com/chrisns/matrixbookingmcp-sub000/internal/common/errors"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/logger"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

// Handlers binds every tool implementation to the services it needs.
type Handlers struct {
	search       *search.Service
	resolver     *locations.Resolver
	catalog      matrix.LocationCatalog
	availability matrix.AvailabilityChecker
	bookings     matrix.BookingService
	organization matrix.OrganizationService
	version      string
	logger       logger.Logger
}

func NewHandlers(
	searchSvc *search.Service,
	resolver *locations.Resolver,
	catalog matrix.LocationCatalog,
	availability matrix.AvailabilityChecker,
	bookings matrix.BookingService,
	organization matrix.OrganizationService,
	version string,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		search:       searchSvc,
		resolver:     resolver,
		catalog:      catalog,
		availability: availability,
		bookings:     bookings,
		organization: organization,
		version:      version,
		logger:       log.WithFields(map[string]interface{}{"component": "tool-handlers"}),
	}
}

// RegisterAll wires every tool into the registry. Registration order is the
// discovery order.
func (h *Handlers) RegisterAll(registry *Registry) {
	registry.Register(h.findRoomsWithFacilitiesTool())
	registry.Register(h.checkAvailabilityTool())
	registry.Register(h.createBookingTool())
	registry.Register(h.cancelBookingTool())
	registry.Register(h.getLocationTool())
	registry.Register(h.getBookingCategoriesTool())
	registry.Register(h.getLocationsByCategoryTool())
	registry.Register(h.getCurrentUserTool())
	registry.Register(h.healthCheckTool())
}

// resolveLocationArg accepts either a numeric locationId or a free-text
// location (name, room number, or id typed as text) and resolves it to one id.
func (h *Handlers) resolveLocationArg(ctx context.Context, locationID int64, location string) (int64, error) {
	if locationID > 0 {
		return locationID, nil
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return 0, apperrors.NewMissingParameterError("location")
	}
	return h.resolver.Resolve(ctx, location)
}
