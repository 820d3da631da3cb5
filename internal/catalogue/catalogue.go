// Package catalogue holds the network's ground truth: stops, buses, and
// the road-distance table, filled once during build and frozen for the
// rest of the program's life. Cross-entity references are stable indices
// (StopId, BusId) into append-only slices, not pointers, so a reference
// taken during build stays valid for the program's lifetime and so the
// wire format can use the same ids (spec's "Ownership rearchitecture").
package catalogue

import (
	"fmt"
	"sort"

	"github.com/impactsolutionsas/transitcat/internal/geo"
)

// StopId is a stable index into the catalogue's stop slice.
type StopId int

// BusId is a stable index into the catalogue's bus slice.
type BusId int

// NoStop / NoBus mark the absence of a resolved reference.
const (
	NoStop = StopId(-1)
	NoBus  = BusId(-1)
)

// Stop is a named geographic point.
type Stop struct {
	Name       string
	Coordinate geo.Coordinate
}

// Bus is an ordered sequence of stops travelled by one line. Stops holds
// the full traversed sequence as ingested: for a ring bus that means the
// closing stop repeated at the end, for a linear bus the one-way chain.
type Bus struct {
	Name        string
	IsRing      bool
	Stops       []StopId
	UniqueStops map[StopId]struct{}
	GeoDistance float64
}

// adjacentPairs returns the consecutive (from, to) hops of the traversal,
// i.e. what the original implementation calls keys_for_distance.
func (b Bus) adjacentPairs() [][2]StopId {
	if len(b.Stops) < 2 {
		return nil
	}
	pairs := make([][2]StopId, 0, len(b.Stops)-1)
	for i := 0; i+1 < len(b.Stops); i++ {
		pairs = append(pairs, [2]StopId{b.Stops[i], b.Stops[i+1]})
	}
	return pairs
}

// BusInfo is the descriptive summary returned by GetBusInfo.
type BusInfo struct {
	StopsCount       int
	UniqueStopsCount int
	RouteLength      float64
	Curvature        float64
}

// RoutingSettings are the wait/velocity knobs used by the transit router.
type RoutingSettings struct {
	BusWaitTimeMinutes float64
	BusVelocityKmh     float64
}

// DefaultRoutingSettings matches the source's defaults: no wait, 1 km/h.
func DefaultRoutingSettings() RoutingSettings {
	return RoutingSettings{BusWaitTimeMinutes: 0, BusVelocityKmh: 1}
}

// Catalogue is the append-only store of stops, buses, and distances.
type Catalogue struct {
	settings RoutingSettings

	stops    []Stop
	buses    []Bus
	stopByID map[string]StopId
	busByID  map[string]BusId

	distances map[[2]StopId]float64
	stopBuses map[StopId]map[BusId]struct{}
}

// New returns an empty catalogue with default routing settings.
func New() *Catalogue {
	return &Catalogue{
		settings:  DefaultRoutingSettings(),
		stopByID:  make(map[string]StopId),
		busByID:   make(map[string]BusId),
		distances: make(map[[2]StopId]float64),
		stopBuses: make(map[StopId]map[BusId]struct{}),
	}
}

// SetRoutingSettings installs the wait time / velocity used for ride-time
// calculations. Each field is assigned exactly once from its own source
// value (the source's persistence layer has a documented bug where one
// branch sets bus_wait_time twice, clobbering it with bus_velocity; this
// implementation does not reproduce that).
func (c *Catalogue) SetRoutingSettings(s RoutingSettings) {
	c.settings = s
}

func (c *Catalogue) WaitTimeMinutes() float64 { return c.settings.BusWaitTimeMinutes }
func (c *Catalogue) VelocityKmh() float64     { return c.settings.BusVelocityKmh }

// AddStop appends a new stop. Duplicate names are rejected (spec.md's
// Open Question: duplicate behaviour is unspecified in the source, this
// implementation rejects at ingestion).
func (c *Catalogue) AddStop(name string, coord geo.Coordinate) (StopId, error) {
	if _, exists := c.stopByID[name]; exists {
		return NoStop, fmt.Errorf("catalogue: duplicate stop name %q", name)
	}
	id := StopId(len(c.stops))
	c.stops = append(c.stops, Stop{Name: name, Coordinate: coord})
	c.stopByID[name] = id
	c.stopBuses[id] = make(map[BusId]struct{})
	return id, nil
}

// FindStop resolves a stop name to its id.
func (c *Catalogue) FindStop(name string) (StopId, bool) {
	id, ok := c.stopByID[name]
	return id, ok
}

// FindBus resolves a bus name to its id.
func (c *Catalogue) FindBus(name string) (BusId, bool) {
	id, ok := c.busByID[name]
	return id, ok
}

// Stop returns the stop at id.
func (c *Catalogue) Stop(id StopId) Stop { return c.stops[id] }

// Bus returns the bus at id.
func (c *Catalogue) Bus(id BusId) Bus { return c.buses[id] }

// Stops returns every stop, in insertion order.
func (c *Catalogue) Stops() []Stop { return c.stops }

// Buses returns every bus, in insertion order.
func (c *Catalogue) Buses() []Bus { return c.buses }

// StopsCount / BusesCount report the catalogue's size.
func (c *Catalogue) StopsCount() int { return len(c.stops) }
func (c *Catalogue) BusesCount() int { return len(c.buses) }

// AddDistance records the road distance from stop to each named
// neighbour. The forward direction is always (re)written; the reverse
// direction is filled with the same value only if it is still absent.
func (c *Catalogue) AddDistance(stop StopId, neighbours map[string]float64) error {
	for name, dist := range neighbours {
		other, ok := c.FindStop(name)
		if !ok {
			return fmt.Errorf("catalogue: AddDistance references unknown stop %q", name)
		}
		c.distances[[2]StopId{stop, other}] = dist
		if _, exists := c.distances[[2]StopId{other, stop}]; !exists {
			c.distances[[2]StopId{other, stop}] = dist
		}
	}
	return nil
}

// Distance returns the road distance from a to b, if known.
func (c *Catalogue) Distance(a, b StopId) (float64, bool) {
	d, ok := c.distances[[2]StopId{a, b}]
	return d, ok
}

// Distances returns every known (from, to) -> metres entry, including
// ones filled in automatically by AddBus's fallback. Used by
// internal/serialize to persist the fully-resolved table.
func (c *Catalogue) Distances() map[[2]StopId]float64 {
	return c.distances
}

// AddBus resolves stopNames against the catalogue, builds the bus's
// adjacent-pair chain, fills any still-missing road distance with the
// great-circle distance between the two stops (every traversed hop has
// a forward entry after this call; the reverse entry is filled the same
// way only for a linear bus), and accumulates the bus's geo distance.
func (c *Catalogue) AddBus(name string, stopNames []string, isRing bool) (BusId, error) {
	stops := make([]StopId, 0, len(stopNames))
	for _, sn := range stopNames {
		id, ok := c.FindStop(sn)
		if !ok {
			return NoBus, fmt.Errorf("catalogue: AddBus %q references unknown stop %q", name, sn)
		}
		stops = append(stops, id)
	}

	bus := Bus{
		Name:        name,
		IsRing:      isRing,
		Stops:       stops,
		UniqueStops: make(map[StopId]struct{}),
	}

	for i := 0; i+1 < len(stops); i++ {
		from, to := stops[i], stops[i+1]
		geoDist := geo.Distance(c.stops[from].Coordinate, c.stops[to].Coordinate)

		if _, ok := c.distances[[2]StopId{from, to}]; !ok {
			c.distances[[2]StopId{from, to}] = geoDist
		}
		if !isRing {
			if _, ok := c.distances[[2]StopId{to, from}]; !ok {
				c.distances[[2]StopId{to, from}] = geoDist
			}
		}

		bus.GeoDistance += geoDist
	}
	if !isRing {
		bus.GeoDistance *= 2
	}

	for _, id := range stops {
		bus.UniqueStops[id] = struct{}{}
	}

	busID := BusId(len(c.buses))
	c.buses = append(c.buses, bus)
	c.busByID[name] = busID

	for _, id := range stops {
		c.stopBuses[id][busID] = struct{}{}
	}

	return busID, nil
}

// GetBusInfo returns the descriptive stats for a known bus.
func (c *Catalogue) GetBusInfo(name string) (BusInfo, bool) {
	id, ok := c.FindBus(name)
	if !ok {
		return BusInfo{}, false
	}
	bus := c.buses[id]

	pairs := bus.adjacentPairs()
	var stopsCount int
	if bus.IsRing {
		stopsCount = len(pairs) + 1
	} else {
		stopsCount = (len(pairs)+1)*2 - 1
	}

	var routeLength float64
	for _, p := range pairs {
		routeLength += c.distances[p]
		if !bus.IsRing {
			routeLength += c.distances[[2]StopId{p[1], p[0]}]
		}
	}

	return BusInfo{
		StopsCount:       stopsCount,
		UniqueStopsCount: len(bus.UniqueStops),
		RouteLength:      routeLength,
		Curvature:        routeLength / bus.GeoDistance,
	}, true
}

// GetBusesByStop returns the sorted set of bus names touching a stop. The
// second return distinguishes "unknown stop" (false) from "known stop
// with no buses" (true, empty slice).
func (c *Catalogue) GetBusesByStop(name string) ([]string, bool) {
	stopID, ok := c.FindStop(name)
	if !ok {
		return nil, false
	}
	busSet := c.stopBuses[stopID]
	names := make([]string, 0, len(busSet))
	for busID := range busSet {
		names = append(names, c.buses[busID].Name)
	}
	sort.Strings(names)
	return names, true
}

// GetBusRideTime returns the ride time in minutes from a to b, using the
// source's arithmetic: metres / 1000 / km_per_hour * 60. The source names
// this helper "KilometresToMetres" despite dividing by 1000 (i.e.
// metres->kilometres); this implementation keeps the arithmetic and
// renames the function.
func (c *Catalogue) GetBusRideTime(a, b StopId) (float64, bool) {
	dist, ok := c.Distance(a, b)
	if !ok {
		return 0, false
	}
	kilometres := dist / 1000
	hours := kilometres / c.settings.BusVelocityKmh
	return hours * 60, true
}
