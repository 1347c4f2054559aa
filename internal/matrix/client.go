// internal/matrix/client.go
package matrix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/config"
	apperrors "github.com/chrisns/matrixbookingmcp-sub000/internal/common/errors"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/httpclient"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/logger"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/metrics"
)

// Client is the REST client for the Matrix Booking API. It implements
// LocationCatalog, AvailabilityChecker, BookingService and
// OrganizationService. Calls carry a per-call deadline; there is no internal
// retry, failed calls surface to the caller as-is.
type Client struct {
	baseURL  string
	username string
	password string
	http     *httpclient.Client
	logger   logger.Logger

	mu    sync.Mutex
	orgID int64
}

func NewClient(cfg config.MatrixConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		password: cfg.Password,
		http:     httpclient.NewClient(cfg.RequestTimeout()),
		logger:   log.WithFields(map[string]interface{}{"component": "matrix-client"}),
	}
}

// statusError carries a non-2xx response so operations can map it onto the
// domain taxonomy.
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("matrix api status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError(fmt.Errorf("encode %s request: %w", operation, err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("build %s request: %w", operation, err))
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-matrix-source", "WEB")
	req.Header.Set("x-request-id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		metrics.MatrixAPIRequests.WithLabelValues(operation, "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return apperrors.NewMatrixTimeoutError(operation, err)
		}
		return apperrors.NewMatrixTransportError(operation, err)
	}
	defer resp.Body.Close()

	metrics.MatrixAPIRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return apperrors.NewMatrixAuthError(fmt.Sprintf("operation: %s, status: %d", operation, resp.StatusCode))
	}
	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.NewMatrixTransportError(operation, fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// transportOr maps a leftover statusError onto a generic transport error;
// operation-specific statuses are handled by the callers before this.
func transportOr(operation string, err error) error {
	var se *statusError
	if errors.As(err, &se) {
		return apperrors.NewMatrixTransportError(operation, se)
	}
	return err
}

// GetLocation fetches a single location with its facilities.
func (c *Client) GetLocation(ctx context.Context, id int64) (*Location, error) {
	q := url.Values{}
	q.Set("include", "facilities")

	var loc Location
	err := c.do(ctx, "getLocation", http.MethodGet, fmt.Sprintf("/location/%d", id), q, nil, &loc)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, apperrors.NewLocationNotFoundError(strconv.FormatInt(id, 10))
		}
		return nil, transportOr("getLocation", err)
	}
	return &loc, nil
}

// GetLocationHierarchy lists locations below a parent in catalog traversal
// order. A zero ParentID scopes to the caller's organization.
func (c *Client) GetLocationHierarchy(ctx context.Context, req *HierarchyRequest) (*HierarchyResponse, error) {
	if req == nil {
		req = &HierarchyRequest{}
	}

	q := url.Values{}
	if req.ParentID > 0 {
		q.Set("parentId", strconv.FormatInt(req.ParentID, 10))
	}
	if req.IncludeChildren {
		q.Set("includeChildren", "true")
	}
	if req.IncludeFacilities {
		q.Set("includeFacilities", "true")
	}
	if req.Kind != "" {
		q.Set("kind", req.Kind)
	}

	orgID, err := c.organizationID(ctx)
	if err != nil {
		return nil, err
	}

	var resp HierarchyResponse
	if err := c.do(ctx, "getLocationHierarchy", http.MethodGet, fmt.Sprintf("/org/%d/locations", orgID), q, nil, &resp); err != nil {
		return nil, transportOr("getLocationHierarchy", err)
	}
	return &resp, nil
}

// CheckAvailability asks whether the location is free for the window.
func (c *Client) CheckAvailability(ctx context.Context, req *AvailabilityRequest) (*AvailabilityResponse, error) {
	q := url.Values{}
	q.Set("l", strconv.FormatInt(req.LocationID, 10))
	q.Set("f", req.DateFrom)
	q.Set("t", req.DateTo)
	q.Set("include", "locations")

	var resp AvailabilityResponse
	err := c.do(ctx, "checkAvailability", http.MethodGet, "/availability", q, nil, &resp)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, apperrors.NewLocationNotFoundError(strconv.FormatInt(req.LocationID, 10))
		}
		return nil, transportOr("checkAvailability", err)
	}
	if !resp.Available && len(resp.Slots) > 0 {
		resp.Available = true
	}
	return &resp, nil
}

// CreateBooking books a location for the requested window.
func (c *Client) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error) {
	q := url.Values{}
	q.Set("notifyScope", "ALL_ATTENDEES")

	var resp BookingResponse
	err := c.do(ctx, "createBooking", http.MethodPost, "/booking", q, req, &resp)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			switch se.StatusCode {
			case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
				return nil, apperrors.NewBookingRejectedError(se.Body)
			case http.StatusNotFound:
				return nil, apperrors.NewLocationNotFoundError(strconv.FormatInt(req.LocationID, 10))
			}
		}
		return nil, transportOr("createBooking", err)
	}

	c.logger.Info("booking created", map[string]interface{}{
		"bookingId":  resp.ID,
		"locationId": resp.LocationID,
		"timeFrom":   resp.TimeFrom,
		"timeTo":     resp.TimeTo,
	})
	return &resp, nil
}

// CancelBooking cancels an existing booking.
func (c *Client) CancelBooking(ctx context.Context, bookingID int64, notifyScope string) (*CancelBookingResponse, error) {
	if notifyScope == "" {
		notifyScope = "ALL_ATTENDEES"
	}
	q := url.Values{}
	q.Set("notifyScope", notifyScope)

	var resp CancelBookingResponse
	err := c.do(ctx, "cancelBooking", http.MethodDelete, fmt.Sprintf("/booking/%d", bookingID), q, nil, &resp)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, apperrors.NewBookingNotFoundError(bookingID)
		}
		return nil, transportOr("cancelBooking", err)
	}
	if resp.ID == 0 {
		resp.ID = bookingID
	}
	if resp.Status == "" {
		resp.Status = "CANCELLED"
	}
	return &resp, nil
}

// GetCurrentUser returns the authenticated account.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, "getCurrentUser", http.MethodGet, "/user/current", nil, nil, &user); err != nil {
		return nil, transportOr("getCurrentUser", err)
	}
	return &user, nil
}

// GetBookingCategories lists the organization's booking categories.
func (c *Client) GetBookingCategories(ctx context.Context, orgID int64) ([]BookingCategory, error) {
	var categories []BookingCategory
	if err := c.do(ctx, "getBookingCategories", http.MethodGet, fmt.Sprintf("/org/%d/categories", orgID), nil, nil, &categories); err != nil {
		return nil, transportOr("getBookingCategories", err)
	}
	return categories, nil
}

// organizationID memoizes the caller's organization id from /user/current.
func (c *Client) organizationID(ctx context.Context) (int64, error) {
	c.mu.Lock()
	cached := c.orgID
	c.mu.Unlock()
	if cached > 0 {
		return cached, nil
	}

	user, err := c.GetCurrentUser(ctx)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.orgID = user.OrganisationID
	c.mu.Unlock()
	return user.OrganisationID, nil
}
