package catalogue

import (
	"testing"

	"github.com/impactsolutionsas/transitcat/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addTestStops(t *testing.T, c *Catalogue) map[string]StopId {
	t.Helper()
	ids := make(map[string]StopId)
	coords := map[string]geo.Coordinate{
		"A": {Latitude: 55.611087, Longitude: 37.20829},
		"B": {Latitude: 55.595884, Longitude: 37.209755},
		"C": {Latitude: 55.632761, Longitude: 37.333324},
	}
	for _, name := range []string{"A", "B", "C"} {
		id, err := c.AddStop(name, coords[name])
		require.NoError(t, err)
		ids[name] = id
	}
	return ids
}

func TestAddStopRejectsDuplicate(t *testing.T) {
	c := New()
	_, err := c.AddStop("A", geo.Coordinate{})
	require.NoError(t, err)
	_, err = c.AddStop("A", geo.Coordinate{})
	assert.Error(t, err)
}

func TestAddDistanceAsymmetric(t *testing.T) {
	c := New()
	ids := addTestStops(t, c)
	require.NoError(t, c.AddDistance(ids["A"], map[string]float64{"B": 100}))

	fwd, ok := c.Distance(ids["A"], ids["B"])
	require.True(t, ok)
	assert.Equal(t, 100.0, fwd)

	rev, ok := c.Distance(ids["B"], ids["A"])
	require.True(t, ok)
	assert.Equal(t, 100.0, rev, "reverse filled since absent")

	// A later, different forward value must not disturb the reverse.
	require.NoError(t, c.AddDistance(ids["A"], map[string]float64{"B": 150}))
	fwd, _ = c.Distance(ids["A"], ids["B"])
	assert.Equal(t, 150.0, fwd)
	rev, _ = c.Distance(ids["B"], ids["A"])
	assert.Equal(t, 100.0, rev, "reverse already present, must not be overwritten")
}

func TestAddBusRingRoute(t *testing.T) {
	c := New()
	ids := addTestStops(t, c)
	// Road distances exceed the great-circle hops (about 1693, 8777 and
	// 8212 m), as real roads do, so the curvature is above 1.
	require.NoError(t, c.AddDistance(ids["A"], map[string]float64{"B": 2000}))
	require.NoError(t, c.AddDistance(ids["B"], map[string]float64{"C": 9000}))
	require.NoError(t, c.AddDistance(ids["C"], map[string]float64{"A": 9000}))

	_, err := c.AddBus("Ring 1", []string{"A", "B", "C", "A"}, true)
	require.NoError(t, err)

	info, ok := c.GetBusInfo("Ring 1")
	require.True(t, ok)
	assert.Equal(t, 4, info.StopsCount)
	assert.Equal(t, 3, info.UniqueStopsCount)
	assert.Equal(t, 20000.0, info.RouteLength)
	assert.Greater(t, info.Curvature, 1.0)
}

func TestAddBusLinearRouteDoublesGeoDistance(t *testing.T) {
	c := New()
	ids := addTestStops(t, c)
	require.NoError(t, c.AddDistance(ids["A"], map[string]float64{"B": 1000}))

	_, err := c.AddBus("Line 1", []string{"A", "B"}, false)
	require.NoError(t, err)

	info, ok := c.GetBusInfo("Line 1")
	require.True(t, ok)
	assert.Equal(t, 3, info.StopsCount, "linear route with 2 stops: (1+1)*2-1")
	assert.Equal(t, 2, info.UniqueStopsCount)
	// AddDistance's own asymmetric fill already set B->A = 1000 (absent at
	// the time), so route length is forward + reverse = 2000.
	assert.Equal(t, 2000.0, info.RouteLength)
	// The geo distance is counted once per direction, so it is doubled too.
	geoOneWay := geo.Distance(c.Stop(ids["A"]).Coordinate, c.Stop(ids["B"]).Coordinate)
	assert.InDelta(t, 2000.0/(2*geoOneWay), info.Curvature, 1e-9)
}

func TestAddBusFillsMissingDistanceWithGeoDistance(t *testing.T) {
	c := New()
	ids := addTestStops(t, c)
	_ = ids

	_, err := c.AddBus("NoDistances", []string{"A", "B"}, true)
	require.NoError(t, err)

	d, ok := c.Distance(ids["A"], ids["B"])
	require.True(t, ok)
	assert.Greater(t, d, 0.0)
}

func TestGetBusesByStopDistinguishesUnknownFromEmpty(t *testing.T) {
	c := New()
	ids := addTestStops(t, c)
	_, err := c.AddBus("Ring 1", []string{"A", "B", "A"}, true)
	require.NoError(t, err)

	buses, ok := c.GetBusesByStop("A")
	require.True(t, ok)
	assert.Equal(t, []string{"Ring 1"}, buses)

	buses, ok = c.GetBusesByStop("C")
	require.True(t, ok, "C is a known stop with no buses")
	assert.Empty(t, buses)

	_, ok = c.GetBusesByStop("Nonexistent")
	assert.False(t, ok)

	_ = ids
}

func TestGetBusRideTimeUsesVelocityAndWaitSettings(t *testing.T) {
	c := New()
	ids := addTestStops(t, c)
	require.NoError(t, c.AddDistance(ids["A"], map[string]float64{"B": 6000}))
	c.SetRoutingSettings(RoutingSettings{BusWaitTimeMinutes: 5, BusVelocityKmh: 60})

	minutes, ok := c.GetBusRideTime(ids["A"], ids["B"])
	require.True(t, ok)
	assert.InDelta(t, 6.0, minutes, 1e-9)
	assert.Equal(t, 5.0, c.WaitTimeMinutes())
}

func TestGetBusInfoUnknownBus(t *testing.T) {
	c := New()
	_, ok := c.GetBusInfo("Nope")
	assert.False(t, ok)
}
