// internal/booking/search/facility_test.go
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

// ==========================
// Categorization Tests
// ==========================

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected FacilityCategory
	}{
		{"tv is audio visual", `55" TV`, CategoryAudioVisual},
		{"monitor is audio visual", `27" Monitor`, CategoryAudioVisual},
		{"projector is audio visual", "Ceiling Projector", CategoryAudioVisual},
		{"conference phone is audio visual", "Conference Phone", CategoryAudioVisual},
		{"webcam is technology", "HD Webcam", CategoryTechnology},
		{"docking station is technology", "USB-C Docking Station", CategoryTechnology},
		{"whiteboard is furniture", "Whiteboard", CategoryFurniture},
		{"standing desk is furniture", "Height Adjustable Desk", CategoryFurniture},
		{"wifi is connectivity", "Guest WiFi", CategoryConnectivity},
		{"wheelchair is accessibility", "Wheelchair Access", CategoryAccessibility},
		{"coffee is catering", "Coffee Machine", CategoryCatering},
		{"aircon is comfort", "Air Conditioning", CategoryComfort},
		{"unknown defaults to technology", "Biometric Lock", CategoryTechnology},
		{"empty defaults to technology", "", CategoryTechnology},
		{"chair inside wheelchair is not furniture", "Wheelchair Ramp", CategoryAccessibility},
		{"tea inside team is not catering", "Team Huddle Pod", CategoryTechnology},
		{"plural keyword still matches", "Dual Screens", CategoryAudioVisual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Categorize(tt.label))
		})
	}
}

func TestCategorize_FirstRuleWins(t *testing.T) {
	// "video" (audio_visual) appears in the label alongside "camera"
	// (technology); the earlier rule claims it.
	assert.Equal(t, CategoryAudioVisual, Categorize("Video Camera"))
}

// ==========================
// Metadata Extraction Tests
// ==========================

func TestParseFacility_SizeAndFeatures(t *testing.T) {
	tests := []struct {
		name         string
		label        string
		expectedType string
		expectedSize string
		features     []string
	}{
		{
			name:         "size and single feature",
			label:        `55" Smart TV`,
			expectedType: "tv",
			expectedSize: `55"`,
			features:     []string{"smart"},
		},
		{
			name:         "multiple features",
			label:        `65" 4K Interactive Touch Screen`,
			expectedType: "screen",
			expectedSize: `65"`,
			features:     []string{"4k", "touch", "interactive"},
		},
		{
			name:         "multi-word feature wins over component",
			label:        "Height Adjustable Desk",
			expectedType: "desk",
			features:     []string{"height adjustable"},
		},
		{
			name:         "feature keyword inside a word does not match",
			label:        "HDMI Cable",
			expectedType: "hdmi cable",
		},
		{
			name:         "plain label",
			label:        "Whiteboard",
			expectedType: "whiteboard",
		},
		{
			name:         "decimal size",
			label:        `27.5" Monitor`,
			expectedType: "monitor",
			expectedSize: `27.5"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facility := ParseFacility(tt.label)
			assert.Equal(t, tt.expectedType, facility.Parsed.Type)
			assert.Equal(t, tt.expectedSize, facility.Parsed.Size)
			assert.Equal(t, tt.features, facility.Parsed.Features)
		})
	}
}

func TestParseFacilityList(t *testing.T) {
	facilities := ParseFacilityList(`55" TV, 27" Monitor, Whiteboard`)
	require.Len(t, facilities, 3)

	assert.Equal(t, `55"`, facilities[0].Parsed.Size)
	assert.Equal(t, CategoryAudioVisual, facilities[0].Category)
	assert.Equal(t, `27"`, facilities[1].Parsed.Size)
	assert.Equal(t, CategoryAudioVisual, facilities[1].Category)
	assert.Equal(t, CategoryFurniture, facilities[2].Category)
}

func TestParseFacilities_SkipsBlankNames(t *testing.T) {
	facilities := ParseFacilities([]matrix.RawFacility{
		{Name: "Whiteboard"},
		{Name: "   "},
		{Name: ""},
		{Name: "Projector"},
	})
	require.Len(t, facilities, 2)
	assert.Equal(t, "Whiteboard", facilities[0].Name)
	assert.Equal(t, "Projector", facilities[1].Name)
}

func TestParseFacilities_Empty(t *testing.T) {
	assert.Nil(t, ParseFacilities(nil))
	assert.Nil(t, ParseFacilities([]matrix.RawFacility{}))
}

// ==========================
// Slug ID Tests
// ==========================

func TestFacilityID(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{"size and words", `55" TV`, "55_tv"},
		{"punctuation collapses", "Wi-Fi (Guest)", "wi_fi_guest"},
		{"leading and trailing separators trimmed", "  Whiteboard!  ", "whiteboard"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FacilityID(tt.label))
		})
	}
}

func TestFacilityID_Truncates(t *testing.T) {
	long := "very long facility label that keeps going and going and going beyond the limit"
	id := FacilityID(long)
	assert.LessOrEqual(t, len(id), 50)
	assert.NotEmpty(t, id)
}
