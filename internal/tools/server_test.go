// internal/tools/server_test.go
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/booking/locations"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/booking/search"
	apperrors "github.com/chrisns/matrixbookingmcp-sub000/internal/common/errors"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/logger"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/observability"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeMatrix implements all four platform interfaces against fixed data.
type fakeMatrix struct {
	locations  []matrix.Location
	categories []matrix.BookingCategory

	createdBookings  []*matrix.CreateBookingRequest
	cancelledIDs     []int64
	availabilityByID map[int64]bool
}

func (f *fakeMatrix) GetLocation(_ context.Context, id int64) (*matrix.Location, error) {
	for _, loc := range f.locations {
		if loc.ID == id {
			copied := loc
			return &copied, nil
		}
	}
	return nil, apperrors.NewLocationNotFoundError(strconv.FormatInt(id, 10))
}

func (f *fakeMatrix) GetLocationHierarchy(_ context.Context, req *matrix.HierarchyRequest) (*matrix.HierarchyResponse, error) {
	return &matrix.HierarchyResponse{Locations: f.locations}, nil
}

func (f *fakeMatrix) CheckAvailability(_ context.Context, req *matrix.AvailabilityRequest) (*matrix.AvailabilityResponse, error) {
	available, ok := f.availabilityByID[req.LocationID]
	if !ok {
		available = true
	}
	return &matrix.AvailabilityResponse{Available: available}, nil
}

func (f *fakeMatrix) CreateBooking(_ context.Context, req *matrix.CreateBookingRequest) (*matrix.BookingResponse, error) {
	f.createdBookings = append(f.createdBookings, req)
	return &matrix.BookingResponse{
		ID:         900,
		Status:     "CONFIRMED",
		TimeFrom:   req.TimeFrom,
		TimeTo:     req.TimeTo,
		LocationID: req.LocationID,
	}, nil
}

func (f *fakeMatrix) CancelBooking(_ context.Context, bookingID int64, notifyScope string) (*matrix.CancelBookingResponse, error) {
	f.cancelledIDs = append(f.cancelledIDs, bookingID)
	return &matrix.CancelBookingResponse{ID: bookingID, Status: "CANCELLED", NotifyScope: notifyScope}, nil
}

func (f *fakeMatrix) GetCurrentUser(_ context.Context) (*matrix.User, error) {
	return &matrix.User{ID: 7, PersonID: 70, OrganisationID: 42, Name: "Test User", Email: "test@example.com"}, nil
}

func (f *fakeMatrix) GetBookingCategories(_ context.Context, _ int64) ([]matrix.BookingCategory, error) {
	return f.categories, nil
}

func officeFixture() *fakeMatrix {
	return &fakeMatrix{
		locations: []matrix.Location{
			{ID: 1, Name: "HQ", Kind: "BUILDING"},
			{
				ID: 300001, Name: "Room 101", Kind: "ROOM", Capacity: 8, IsBookable: true,
				Facilities: []matrix.RawFacility{{Name: "Whiteboard"}, {Name: `55" TV`}},
			},
			{
				ID: 300002, Name: "Room 102", Kind: "ROOM", Capacity: 4, IsBookable: true,
				Facilities: []matrix.RawFacility{{Name: "Conference Phone"}},
			},
			{ID: 300003, Name: "Desk 14", Kind: "DESK", Capacity: 1, IsBookable: true},
		},
		categories: []matrix.BookingCategory{
			{ID: 1, Name: "Meeting Rooms", Kind: "ROOM"},
			{ID: 2, Name: "Desks", Kind: "DESK"},
		},
	}
}

type testServer struct {
	url    string
	matrix *fakeMatrix
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.NewTestLogger(t)
	fake := officeFixture()

	searchSvc := search.NewService(fake, fake, 10, 50, log)
	resolver := locations.NewResolver(fake, "", log)

	registry := NewRegistry()
	handlers := NewHandlers(searchSvc, resolver, fake, fake, fake, fake, "test", log)
	handlers.RegisterAll(registry)

	server := httptest.NewServer(NewServer(registry, observability.New("tools-test"), log))
	t.Cleanup(server.Close)
	return &testServer{url: server.URL, matrix: fake}
}

func executeTool(t *testing.T, ts *testServer, toolName string, args map[string]interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"tool_name": toolName,
		"arguments": args,
	})
	require.NoError(t, err)

	resp, err := http.Post(ts.url+"/mcp/tools/execute", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func resultOf(t *testing.T, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	require.Equal(t, true, payload["success"])
	result, ok := payload["result"].(map[string]interface{})
	require.True(t, ok)
	return result
}

// ==========================
// Discovery Tests
// ==========================

func TestServer_ToolDiscovery(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.url + "/mcp/tools")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Tools []Descriptor `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Tools, 9)

	assert.Equal(t, "find_rooms_with_facilities", payload.Tools[0].Name)
	for _, tool := range payload.Tools {
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.Equal(t, "object", tool.InputSchema["type"], tool.Name)
	}
}

func TestServer_UnknownPath(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.url + "/mcp/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ==========================
// Execution Plumbing Tests
// ==========================

func TestServer_UnknownTool(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "no_such_tool", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "TOOL_NOT_FOUND", payload["code"])
	assert.Contains(t, payload["error"], "no_such_tool")
}

func TestServer_MalformedBody(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Post(ts.url+"/mcp/tools/execute", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_MissingQuery(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "find_rooms_with_facilities", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Query parameter is required", payload["error"])
	assert.Equal(t, "MISSING_PARAMETER", payload["code"])
}

func TestServer_SchemaRejectsWrongTypes(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "find_rooms_with_facilities", map[string]interface{}{
		"query":      "whiteboard",
		"maxResults": "five",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", payload["code"])
}

// ==========================
// Tool Behavior Tests
// ==========================

func TestServer_FindRooms(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "find_rooms_with_facilities", map[string]interface{}{
		"query": "room with a whiteboard for 6 people",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := resultOf(t, payload)

	assert.Equal(t, float64(1), result["totalResults"])
	results := result["results"].([]interface{})
	first := results[0].(map[string]interface{})
	location := first["location"].(map[string]interface{})
	assert.Equal(t, "Room 101", location["name"])
}

func TestServer_FindRooms_ZeroResultsStillSucceeds(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "find_rooms_with_facilities", map[string]interface{}{
		"query": "room with catering",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := resultOf(t, payload)

	assert.Equal(t, float64(0), result["totalResults"])
	assert.NotEmpty(t, result["suggestions"])
}

func TestServer_CheckAvailabilityByName(t *testing.T) {
	ts := setupTestServer(t)
	ts.matrix.availabilityByID = map[int64]bool{300001: false}

	resp, payload := executeTool(t, ts, "matrix_booking_check_availability", map[string]interface{}{
		"location": "Room 101",
		"dateFrom": "2026-09-01T09:00:00",
		"dateTo":   "2026-09-01T10:00:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := resultOf(t, payload)
	assert.Equal(t, false, result["available"])
}

func TestServer_CreateBookingByRoomName(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "matrix_booking_create_booking", map[string]interface{}{
		"location": "Room 101",
		"timeFrom": "2026-09-01T09:00:00",
		"timeTo":   "2026-09-01T10:00:00",
		"attendees": []interface{}{
			map[string]interface{}{"email": "guest@example.com", "name": "Guest"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := resultOf(t, payload)
	assert.Equal(t, "CONFIRMED", result["status"])

	require.Len(t, ts.matrix.createdBookings, 1)
	booked := ts.matrix.createdBookings[0]
	assert.Equal(t, int64(300001), booked.LocationID)
	assert.Equal(t, "test@example.com", booked.Owner.Email)
	assert.Equal(t, int64(70), booked.Owner.ID)
	assert.True(t, booked.OwnerIsAttendee)
	require.Len(t, booked.Attendees, 1)
	assert.Equal(t, "guest@example.com", booked.Attendees[0].Email)
}

func TestServer_CreateBooking_UnknownRoom(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "matrix_booking_create_booking", map[string]interface{}{
		"location": "The Moon",
		"timeFrom": "2026-09-01T09:00:00",
		"timeTo":   "2026-09-01T10:00:00",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "LOCATION_NOT_FOUND", payload["code"])
	assert.Empty(t, ts.matrix.createdBookings)
}

func TestServer_CancelBooking(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "matrix_booking_cancel_booking", map[string]interface{}{
		"bookingId":   900,
		"notifyScope": "NONE",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := resultOf(t, payload)
	assert.Equal(t, "CANCELLED", result["status"])
	assert.Equal(t, []int64{900}, ts.matrix.cancelledIDs)
}

func TestServer_GetLocationByNumber(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "matrix_booking_get_location", map[string]interface{}{
		"location": "101",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := resultOf(t, payload)
	assert.Equal(t, "Room 101", result["name"])
}

func TestServer_GetBookingCategories(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "get_booking_categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := resultOf(t, payload)
	assert.Equal(t, float64(2), result["total"])
}

func TestServer_GetLocationsByCategory(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "get_locations_by_category", map[string]interface{}{
		"category": "desk",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := resultOf(t, payload)

	assert.Equal(t, "DESK", result["category"])
	assert.Equal(t, float64(1), result["total"])
}

func TestServer_GetCurrentUser(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "get_current_user", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := resultOf(t, payload)
	assert.Equal(t, "test@example.com", result["email"])
}

func TestServer_HealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp, payload := executeTool(t, ts, "health_check", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := resultOf(t, payload)
	assert.Equal(t, "healthy", result["status"])
	assert.Equal(t, "test", result["version"])
}
