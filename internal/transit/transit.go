// Package transit builds the doubled-vertex graph described by the
// spec's core routing component and answers itinerary queries against
// it via a precomputed internal/router.AllPairsRouter.
//
// Every stop contributes two vertices: an even "wait" port (2*id) that a
// passenger arrives at, and an odd "ride" port (2*id+1) reached only by
// waiting. Encoding the waiting/riding distinction as two vertices lets
// every edge carry a scalar, additive weight instead of per-edge state.
package transit

import (
	"fmt"

	"github.com/impactsolutionsas/transitcat/internal/catalogue"
	"github.com/impactsolutionsas/transitcat/internal/graph"
	"github.com/impactsolutionsas/transitcat/internal/router"
	"github.com/impactsolutionsas/transitcat/internal/routeweight"
)

// Item is one leg of a reconstructed itinerary.
type Item struct {
	Type      string // "Wait" or "Bus"
	StopName  string // set when Type == "Wait"
	BusName   string // set when Type == "Bus"
	SpanCount int    // set when Type == "Bus"
	Time      float64
}

// Itinerary is the full answer to a route query: the total elapsed time
// and the ordered legs that make it up.
type Itinerary struct {
	TotalTime float64
	Items     []Item
}

// Transit is the built routing graph for one catalogue, ready to answer
// BuildRoute queries in precomputed time.
type Transit struct {
	cat      *catalogue.Catalogue
	g        *graph.Graph[routeweight.RouteWeight]
	allPairs *router.AllPairsRouter[routeweight.RouteWeight]
}

func waitPort(id catalogue.StopId) graph.EdgeVertex { return graph.EdgeVertex(2 * int(id)) }
func ridePort(id catalogue.StopId) graph.EdgeVertex { return graph.EdgeVertex(2*int(id) + 1) }

// WaitVertex returns the wait-port vertex id a stop name resolves to in
// cat's doubled-vertex numbering, for building (and, on load, checking)
// the stop-name -> vertex-id map internal/serialize persists alongside
// the graph. The second return is false for an unknown stop.
func WaitVertex(cat *catalogue.Catalogue, stopName string) (graph.EdgeVertex, bool) {
	id, ok := cat.FindStop(stopName)
	if !ok {
		return 0, false
	}
	return waitPort(id), true
}

// Graph exposes the built doubled-vertex graph, for internal/serialize
// to persist directly instead of recomputing it on every load.
func (t *Transit) Graph() *graph.Graph[routeweight.RouteWeight] { return t.g }

// AllPairs exposes the precomputed all-pairs router, for internal/serialize
// to persist directly instead of rerunning Floyd-Warshall on every load.
func (t *Transit) AllPairs() *router.AllPairsRouter[routeweight.RouteWeight] { return t.allPairs }

// Restore reassembles a Transit from a catalogue and a graph/all-pairs
// router already loaded from a persisted bundle, without rebuilding
// either — the counterpart to Build used when the bundle's tables were
// restored directly rather than recomputed.
func Restore(cat *catalogue.Catalogue, g *graph.Graph[routeweight.RouteWeight], allPairs *router.AllPairsRouter[routeweight.RouteWeight]) *Transit {
	return &Transit{cat: cat, g: g, allPairs: allPairs}
}

// Build constructs the doubled-vertex graph for cat and precomputes
// all-pairs shortest paths over it. The catalogue must already hold its
// final routing settings (wait time, velocity) and all buses.
func Build(cat *catalogue.Catalogue) *Transit {
	n := cat.StopsCount()
	g := graph.New[routeweight.RouteWeight](n * 2)

	waitTime := cat.WaitTimeMinutes()
	for i := 0; i < n; i++ {
		id := catalogue.StopId(i)
		g.AddEdge(waitPort(id), ridePort(id), routeweight.RouteWeight{
			Kind: routeweight.Wait, Value: waitTime,
		})
	}

	for _, bus := range cat.Buses() {
		addRideEdges(g, cat, bus.Stops, bus.Name)
		if !bus.IsRing {
			reversed := make([]catalogue.StopId, len(bus.Stops))
			for i, s := range bus.Stops {
				reversed[len(bus.Stops)-1-i] = s
			}
			addRideEdges(g, cat, reversed, bus.Name)
		}
	}

	return &Transit{cat: cat, g: g, allPairs: router.Build(g)}
}

// addRideEdges adds, for every starting position i in stops and every
// later position j, an edge from stops[i]'s ride port to stops[j]'s
// wait port carrying the cumulative ride time and span count of riding
// straight through from i to j without disembarking.
func addRideEdges(g *graph.Graph[routeweight.RouteWeight], cat *catalogue.Catalogue, stops []catalogue.StopId, busName string) {
	for i := 0; i < len(stops); i++ {
		var cumulative float64
		span := 0
		for j := i + 1; j < len(stops); j++ {
			t, ok := cat.GetBusRideTime(stops[j-1], stops[j])
			if !ok {
				continue
			}
			cumulative += t
			span++
			g.AddEdge(ridePort(stops[i]), waitPort(stops[j]), routeweight.RouteWeight{
				Kind: routeweight.Bus, Value: cumulative, BusName: busName, SpanCount: span,
			})
		}
	}
}

// BuildRoute answers a route query between two known stop names. The
// second return is false if either stop is unknown or no path exists.
func (t *Transit) BuildRoute(fromName, toName string) (Itinerary, bool) {
	from, ok := t.cat.FindStop(fromName)
	if !ok {
		return Itinerary{}, false
	}
	to, ok := t.cat.FindStop(toName)
	if !ok {
		return Itinerary{}, false
	}

	route, ok := t.allPairs.BuildRoute(waitPort(from), waitPort(to))
	if !ok {
		return Itinerary{}, false
	}

	items := make([]Item, 0, len(route.Edges))
	for _, id := range route.Edges {
		edge := t.g.GetEdge(id)
		w := edge.Weight
		switch w.Kind {
		case routeweight.Wait:
			stopID := catalogue.StopId(int(edge.From) / 2)
			items = append(items, Item{
				Type:     "Wait",
				StopName: t.cat.Stop(stopID).Name,
				Time:     w.Value,
			})
		case routeweight.Bus:
			items = append(items, Item{
				Type:      "Bus",
				BusName:   w.BusName,
				SpanCount: w.SpanCount,
				Time:      w.Value,
			})
		default:
			panic(fmt.Sprintf("transit: unexpected %v weight in reconstructed route", w.Kind))
		}
	}

	return Itinerary{TotalTime: route.Weight.Value, Items: items}, true
}
