// internal/booking/search/requirement_test.go
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Capacity Extraction Tests
// ==========================

func TestParseQuery_Capacity(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"for N people", "room for 12 people", 12},
		{"for N persons", "space for 3 persons", 3},
		{"for N attendees", "a room for 25 attendees", 25},
		{"N-person", "8-person meeting room", 8},
		{"N person with space", "6 person room", 6},
		{"seats N", "room that seats 10", 10},
		{"capacity of N", "capacity of 40", 40},
		{"no capacity", "room with a whiteboard", 0},
		{"number without context is not capacity", "room 101", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseQuery(tt.query)
			assert.Equal(t, tt.expected, req.Capacity)
		})
	}
}

// ==========================
// Facility Token Tests
// ==========================

func TestParseQuery_FacilityTokens(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []RequirementToken
	}{
		{
			name:  "single token",
			query: "room with a whiteboard",
			expected: []RequirementToken{
				{Value: "whiteboard"},
			},
		},
		{
			name:  "display synonyms normalize to screen",
			query: "room with a big TV",
			expected: []RequirementToken{
				{Value: "screen"},
			},
		},
		{
			name:  "multi-word phrase wins over component word",
			query: "room with a conference phone",
			expected: []RequirementToken{
				{Value: "conference phone"},
			},
		},
		{
			name:  "video conference variants",
			query: "videoconferencing setup",
			expected: []RequirementToken{
				{Value: "video conference"},
			},
		},
		{
			name:  "duplicates collapse",
			query: "screen on each wall, another screen by the door",
			expected: []RequirementToken{
				{Value: "screen"},
			},
		},
		{
			name:  "tokens keep query order",
			query: "desk with dual monitors and a conference phone",
			expected: []RequirementToken{
				{Value: "desk"},
				{Value: "screen"},
				{Value: "conference phone"},
			},
		},
		{
			name:     "no recognized facilities",
			query:    "somewhere quiet",
			expected: []RequirementToken{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseQuery(tt.query)
			if len(tt.expected) == 0 {
				assert.False(t, req.HasTokens())
				return
			}
			assert.Equal(t, tt.expected, req.FacilityTokens)
		})
	}
}

func TestParseQuery_SizeAttachment(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []RequirementToken
	}{
		{
			name:  "inch notation attaches to nearest token",
			query: "room with a 55 inch screen",
			expected: []RequirementToken{
				{Value: "screen", Size: `55"`},
			},
		},
		{
			name:  "quote notation",
			query: `desk with 27" monitor`,
			expected: []RequirementToken{
				{Value: "desk"},
				{Value: "screen", Size: `27"`},
			},
		},
		{
			name:  "size with no facility token stands alone",
			query: `needs a 75"`,
			expected: []RequirementToken{
				{Value: `75"`, Size: `75"`},
			},
		},
		{
			// "monitor" collapses into the same screen token, so the second
			// size has no unsized token left and stands alone.
			name:  "second size with no unsized token stands alone",
			query: `55 inch screen and 27 inch monitor`,
			expected: []RequirementToken{
				{Value: "screen", Size: `55"`},
				{Value: `27"`, Size: `27"`},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseQuery(tt.query)
			assert.Equal(t, tt.expected, req.FacilityTokens)
		})
	}
}

func TestParseQuery_FullQuery(t *testing.T) {
	req := ParseQuery("room for 12 people with a 55 inch screen and video conference")

	assert.Equal(t, 12, req.Capacity)
	require.Len(t, req.FacilityTokens, 2)
	assert.Equal(t, RequirementToken{Value: "screen", Size: `55"`}, req.FacilityTokens[0])
	assert.Equal(t, RequirementToken{Value: "video conference"}, req.FacilityTokens[1])
	assert.Equal(t, []string{"screen", "video conference"}, req.TokenValues())
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "whiteboard", NormalizeToken("  Whiteboard "))
	assert.Equal(t, "", NormalizeToken("   "))
}

func TestCanonicalFamily(t *testing.T) {
	assert.Equal(t, "screen", canonicalFamily("tv"))
	assert.Equal(t, "screen", canonicalFamily("monitor"))
	assert.Equal(t, "camera", canonicalFamily("webcam"))
	assert.Equal(t, "hdmi cable", canonicalFamily("HDMI Cable"))
}
