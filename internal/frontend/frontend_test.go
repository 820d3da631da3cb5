package frontend

import (
	"testing"

	"github.com/impactsolutionsas/transitcat/internal/transit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBuildJSON = `{
  "base_requests": [
    {"type": "Stop", "name": "Tolstopaltsevo", "latitude": 55.611087, "longitude": 37.20829,
     "road_distances": {"Marushkino": 3900}},
    {"type": "Stop", "name": "Marushkino", "latitude": 55.595884, "longitude": 37.209755,
     "road_distances": {"Tolstopaltsevo": 9900}},
    {"type": "Bus", "name": "256", "stops": ["Tolstopaltsevo", "Marushkino"], "is_roundtrip": false}
  ],
  "routing_settings": {"bus_wait_time": 6, "bus_velocity": 40},
  "render_settings": {
    "width": 600, "height": 400, "padding": 50,
    "line_width": 14, "stop_radius": 5,
    "bus_label_font_size": 20, "bus_label_offset": [7, 15],
    "stop_label_font_size": 18, "stop_label_offset": [7, -3],
    "underlayer_color": [255, 255, 255, 0.85], "underlayer_width": 3,
    "color_palette": ["green", [255, 160, 0]]
  },
  "serialization_settings": {"file": "out.db"}
}`

func TestParseBuildRequestFullDocument(t *testing.T) {
	req, err := ParseBuildRequest(sampleBuildJSON)
	require.NoError(t, err)

	require.Len(t, req.Stops, 2)
	assert.Equal(t, "Tolstopaltsevo", req.Stops[0].Name)
	assert.Equal(t, 3900.0, req.Stops[0].RoadDistances["Marushkino"])

	require.Len(t, req.Buses, 1)
	assert.Equal(t, []string{"Tolstopaltsevo", "Marushkino"}, req.Buses[0].Stops)
	assert.False(t, req.Buses[0].IsRoundtrip)

	assert.Equal(t, 6.0, req.Routing.BusWaitTimeMinutes)
	assert.Equal(t, 40.0, req.Routing.BusVelocityKmh)

	assert.Equal(t, 600.0, req.Render.Width)
	require.Len(t, req.Render.Palette, 2)
	assert.Equal(t, "out.db", req.OutputFile)
}

func TestBuildCatalogueAppliesThreePhaseOrdering(t *testing.T) {
	req, err := ParseBuildRequest(sampleBuildJSON)
	require.NoError(t, err)

	cat, err := BuildCatalogue(req)
	require.NoError(t, err)

	info, ok := cat.GetBusInfo("256")
	require.True(t, ok)
	assert.Equal(t, 3900.0+9900.0, info.RouteLength)
}

func TestBuildCatalogueRejectsReferentialFailure(t *testing.T) {
	req := BuildRequest{
		Buses: []BusRequest{{Name: "X", Stops: []string{"Nowhere", "Also Nowhere"}}},
	}
	_, err := BuildCatalogue(req)
	assert.Error(t, err)
}

func TestAnswerStatRequestsStopBusMapRoute(t *testing.T) {
	req, err := ParseBuildRequest(sampleBuildJSON)
	require.NoError(t, err)
	cat, err := BuildCatalogue(req)
	require.NoError(t, err)
	tr := transit.Build(cat)

	statRaw := `{"stat_requests": [
		{"id": 1, "type": "Stop", "name": "Tolstopaltsevo"},
		{"id": 2, "type": "Stop", "name": "Nowhere"},
		{"id": 3, "type": "Bus", "name": "256"},
		{"id": 4, "type": "Map"},
		{"id": 5, "type": "Route", "from": "Tolstopaltsevo", "to": "Marushkino"}
	]}`
	statRequests, err := ParseStatRequests(statRaw)
	require.NoError(t, err)
	require.Len(t, statRequests, 5)

	responses := AnswerStatRequests(cat, tr, req.Render, statRequests).AsArray()
	require.Len(t, responses, 5)

	buses, ok := responses[0].Get("buses")
	require.True(t, ok)
	require.Len(t, buses.AsArray(), 1)
	assert.Equal(t, "256", buses.AsArray()[0].AsString())

	_, hasError := responses[1].Get("error_message")
	assert.True(t, hasError)

	curvature, ok := responses[2].Get("curvature")
	require.True(t, ok)
	assert.Greater(t, curvature.AsFloat(), 0.0)

	mapSVG, ok := responses[3].Get("map")
	require.True(t, ok)
	assert.Contains(t, mapSVG.AsString(), "<svg")

	totalTime, ok := responses[4].Get("total_time")
	require.True(t, ok)
	assert.Greater(t, totalTime.AsFloat(), 0.0)
}
