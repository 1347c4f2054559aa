// internal/booking/locations/resolver.go
package locations

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/chrisns/matrixbookingmcp-sub000/internal/common/errors"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/logger"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

// Catalog location ids start well above this; anything numeric at or past the
// threshold is treated as an id, never a room number.
const directIDThreshold = 100000

var digitRunPattern = regexp.MustCompile(`\d+`)

// Resolver turns a typed-in room name, room number, or numeric id into a
// single location id. Name and number lookups search the configured
// preferred-building subtree first, then the whole organization.
type Resolver struct {
	catalog   matrix.LocationCatalog
	preferred int64
	logger    logger.Logger
}

// NewResolver builds a resolver. preferredLocation comes straight from
// configuration; it only narrows the first search phase when it parses as a
// numeric location id.
func NewResolver(catalog matrix.LocationCatalog, preferredLocation string, log logger.Logger) *Resolver {
	var preferred int64
	if preferredLocation != "" {
		if id, err := strconv.ParseInt(strings.TrimSpace(preferredLocation), 10, 64); err == nil && id > 0 {
			preferred = id
		}
	}
	return &Resolver{
		catalog:   catalog,
		preferred: preferred,
		logger:    log.WithFields(map[string]interface{}{"component": "location-resolver"}),
	}
}

// Resolve returns exactly one location id for the search term, or a
// not-found error naming the term. Catalog failures are wrapped with the
// term for diagnostics; not-found signals pass through unchanged.
func (r *Resolver) Resolve(ctx context.Context, term string) (int64, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return 0, apperrors.NewMissingParameterError("location")
	}

	if id, err := strconv.ParseInt(term, 10, 64); err == nil && id >= directIDThreshold {
		return r.resolveDirect(ctx, id, term)
	}

	if r.preferred > 0 {
		id, found, err := r.searchSubtree(ctx, r.preferred, term)
		if err != nil {
			return 0, apperrors.WithContext(err, "searchTerm", term)
		}
		if found {
			return id, nil
		}
	}

	id, found, err := r.searchSubtree(ctx, 0, term)
	if err != nil {
		return 0, apperrors.WithContext(err, "searchTerm", term)
	}
	if found {
		return id, nil
	}

	return 0, apperrors.NewLocationNotFoundError(term)
}

// resolveDirect looks the id up without any name fallback; an id that does
// not exist is a hard not-found.
func (r *Resolver) resolveDirect(ctx context.Context, id int64, term string) (int64, error) {
	if _, err := r.catalog.GetLocation(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return 0, err
		}
		return 0, apperrors.WithContext(err, "searchTerm", term)
	}
	return id, nil
}

// searchSubtree runs the two-pass search over one subtree (parentID zero
// means the whole organization): first exact name matches, then partial and
// room-number matches. The first hit in catalog traversal order wins.
//
// First-match is a deliberate contract: two buildings with rooms sharing a
// number resolve to whichever the catalog lists first. Whether ambiguous
// matches should instead surface as a disambiguation list is an open product
// question; until that is settled, traversal order decides.
func (r *Resolver) searchSubtree(ctx context.Context, parentID int64, term string) (int64, bool, error) {
	hierarchy, err := r.catalog.GetLocationHierarchy(ctx, &matrix.HierarchyRequest{
		ParentID:        parentID,
		IncludeChildren: true,
	})
	if err != nil {
		return 0, false, err
	}

	needle := strings.ToLower(term)

	for _, loc := range hierarchy.Locations {
		if strings.ToLower(loc.Name) == needle {
			return loc.ID, true, nil
		}
	}

	// An all-digit term is a room number: it must equal a whole digit run,
	// never a substring, so "101" skips "Room 1012".
	numeric := isDigits(term)
	for _, loc := range hierarchy.Locations {
		if numeric {
			if matchesRoomNumber(loc.Name, term) {
				return loc.ID, true, nil
			}
			continue
		}
		name := strings.ToLower(loc.Name)
		if name != "" && (strings.Contains(name, needle) || strings.Contains(needle, name)) {
			return loc.ID, true, nil
		}
	}

	return 0, false, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// matchesRoomNumber reports whether any run of digits inside the location
// name equals the search term exactly ("101" matches "Room 101" but not
// "Room 1012").
func matchesRoomNumber(name, term string) bool {
	if term == "" {
		return false
	}
	for _, digits := range digitRunPattern.FindAllString(name, -1) {
		if digits == term {
			return true
		}
	}
	return false
}
