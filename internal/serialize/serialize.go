// Package serialize persists a built catalogue together with its fully
// built transit network — the doubled-vertex graph and the precomputed
// all-pairs table, not just the catalogue that derives them — and its
// render settings, to a single binary file via encoding/gob. Load
// restores the graph and table directly from the bundle; it never
// reruns graph construction or Floyd-Warshall, so process_requests pays
// for the O(V^3) precomputation exactly once, at make_base time.
package serialize

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/impactsolutionsas/transitcat/internal/catalogue"
	"github.com/impactsolutionsas/transitcat/internal/geo"
	"github.com/impactsolutionsas/transitcat/internal/graph"
	"github.com/impactsolutionsas/transitcat/internal/renderer"
	"github.com/impactsolutionsas/transitcat/internal/router"
	"github.com/impactsolutionsas/transitcat/internal/routeweight"
	"github.com/impactsolutionsas/transitcat/internal/svg"
	"github.com/impactsolutionsas/transitcat/internal/transit"
)

// SchemaVersion is bumped whenever PersistedBundle's shape changes in a
// way that would make an older file unreadable.
const SchemaVersion = 2

type persistedStop struct {
	Name      string
	Latitude  float64
	Longitude float64
}

type persistedBus struct {
	Name        string
	IsRing      bool
	StopIndices []int
}

type persistedDistance struct {
	FromIndex int
	ToIndex   int
	Metres    float64
}

type persistedRenderSettings struct {
	Width, Height, Padding float64
	LineWidth, StopRadius  float64

	BusLabelFontSize uint32
	BusLabelOffsetX  float64
	BusLabelOffsetY  float64

	StopLabelFontSize uint32
	StopLabelOffsetX  float64
	StopLabelOffsetY  float64

	UnderlayerColor string
	UnderlayerWidth float64
	Palette         []string
}

// persistedRouteWeight is the gob-safe shape of routeweight.RouteWeight.
// BusName travels as plain text; Load re-interns it against the
// reloaded catalogue's own bus-name strings rather than trusting the
// decoded copy, so every restored edge's name reference points into the
// catalogue that owns it.
type persistedRouteWeight struct {
	Kind      int
	Value     float64
	BusName   string
	SpanCount int
}

// persistedEdge is one graph.Edge[routeweight.RouteWeight], in original
// insertion order (so its index in PersistedBundle.Edges is its EdgeId).
type persistedEdge struct {
	From   int
	To     int
	Weight persistedRouteWeight
}

// persistedTableEntry is one dense-matrix cell of the all-pairs table,
// in row-major order over PersistedBundle.VertexCount rows/columns.
type persistedTableEntry struct {
	Reachable bool
	Weight    persistedRouteWeight
	LastEdge  int
}

// PersistedBundle is the exact shape written to and read from disk. It
// carries the complete transit network — not just the catalogue data
// that could, in principle, rebuild it — so Load never recomputes.
type PersistedBundle struct {
	SchemaVersion uint32
	BuildID       uuid.UUID

	RoutingSettings catalogue.RoutingSettings
	Stops           []persistedStop
	Distances       []persistedDistance
	Buses           []persistedBus
	RenderSettings  persistedRenderSettings

	// StopNameToVertex is the stop-name -> wait-port vertex-id map the
	// transit graph is keyed by. It is redundant with Stops' order
	// (vertex == 2*index) but persisted explicitly, as the ground-truth
	// layout does, and cross-checked on Load rather than trusted blindly.
	StopNameToVertex map[string]int

	VertexCount int
	Edges       []persistedEdge

	TableVertexCount int
	Table            []persistedTableEntry
}

// Save writes cat's fully built transit network tr, and render, to w as
// a gob-encoded PersistedBundle, stamping a fresh BuildID. The BuildID
// has no bearing on a later Load's reconstructed catalogue; it is
// provenance only. tr must have been built from cat.
func Save(cat *catalogue.Catalogue, tr *transit.Transit, render renderer.Settings, w io.Writer) error {
	bundle := PersistedBundle{
		SchemaVersion:   SchemaVersion,
		BuildID:         uuid.New(),
		RoutingSettings: catalogue.RoutingSettings{BusWaitTimeMinutes: cat.WaitTimeMinutes(), BusVelocityKmh: cat.VelocityKmh()},
		RenderSettings:  persistRenderSettings(render),
	}

	for _, s := range cat.Stops() {
		bundle.Stops = append(bundle.Stops, persistedStop{
			Name: s.Name, Latitude: s.Coordinate.Latitude, Longitude: s.Coordinate.Longitude,
		})
	}

	for pair, metres := range cat.Distances() {
		bundle.Distances = append(bundle.Distances, persistedDistance{
			FromIndex: int(pair[0]), ToIndex: int(pair[1]), Metres: metres,
		})
	}

	for _, b := range cat.Buses() {
		indices := make([]int, len(b.Stops))
		for i, id := range b.Stops {
			indices[i] = int(id)
		}
		bundle.Buses = append(bundle.Buses, persistedBus{Name: b.Name, IsRing: b.IsRing, StopIndices: indices})
	}

	bundle.StopNameToVertex = make(map[string]int, len(bundle.Stops))
	for _, s := range cat.Stops() {
		v, ok := transit.WaitVertex(cat, s.Name)
		if !ok {
			return fmt.Errorf("serialize: stop %q vanished between catalogue and transit graph", s.Name)
		}
		bundle.StopNameToVertex[s.Name] = int(v)
	}

	g := tr.Graph()
	bundle.VertexCount = g.VertexCount()
	for _, e := range g.Edges() {
		bundle.Edges = append(bundle.Edges, persistedEdge{
			From: int(e.From), To: int(e.To), Weight: persistWeight(e.Weight),
		})
	}

	n, entries := tr.AllPairs().Table()
	bundle.TableVertexCount = n
	for _, e := range entries {
		bundle.Table = append(bundle.Table, persistedTableEntry{
			Reachable: e.Reachable, Weight: persistWeight(e.Weight), LastEdge: int(e.LastEdge),
		})
	}

	if err := gob.NewEncoder(w).Encode(&bundle); err != nil {
		return fmt.Errorf("serialize: encode bundle: %w", err)
	}
	return nil
}

// Load reads a PersistedBundle from r and restores the catalogue, its
// complete transit network, and the render settings it was saved with.
// The graph and all-pairs table are restored directly from the bundle's
// dense tables — Build (and its O(V^3) precomputation) is never called.
func Load(r io.Reader) (*catalogue.Catalogue, *transit.Transit, renderer.Settings, error) {
	var bundle PersistedBundle
	if err := gob.NewDecoder(r).Decode(&bundle); err != nil {
		return nil, nil, renderer.Settings{}, fmt.Errorf("serialize: decode bundle: %w", err)
	}
	if bundle.SchemaVersion != SchemaVersion {
		return nil, nil, renderer.Settings{}, fmt.Errorf("serialize: unsupported schema version %d (want %d)", bundle.SchemaVersion, SchemaVersion)
	}

	cat := catalogue.New()
	cat.SetRoutingSettings(bundle.RoutingSettings)

	for _, s := range bundle.Stops {
		if _, err := cat.AddStop(s.Name, coordinateOf(s)); err != nil {
			return nil, nil, renderer.Settings{}, fmt.Errorf("serialize: replay stop %q: %w", s.Name, err)
		}
	}

	for _, d := range bundle.Distances {
		from := catalogue.StopId(d.FromIndex)
		toName := bundle.Stops[d.ToIndex].Name
		if err := cat.AddDistance(from, map[string]float64{toName: d.Metres}); err != nil {
			return nil, nil, renderer.Settings{}, fmt.Errorf("serialize: replay distance: %w", err)
		}
	}

	for _, b := range bundle.Buses {
		names := make([]string, len(b.StopIndices))
		for i, idx := range b.StopIndices {
			names[i] = bundle.Stops[idx].Name
		}
		if _, err := cat.AddBus(b.Name, names, b.IsRing); err != nil {
			return nil, nil, renderer.Settings{}, fmt.Errorf("serialize: replay bus %q: %w", b.Name, err)
		}
	}

	for name, vertex := range bundle.StopNameToVertex {
		got, ok := transit.WaitVertex(cat, name)
		if !ok || int(got) != vertex {
			return nil, nil, renderer.Settings{}, fmt.Errorf("serialize: stop-name-to-vertex map disagrees with replayed catalogue for %q", name)
		}
	}

	busNames := make(map[string]string, len(bundle.Buses))
	for _, b := range cat.Buses() {
		busNames[b.Name] = b.Name
	}

	edges := make([]graph.Edge[routeweight.RouteWeight], len(bundle.Edges))
	for i, pe := range bundle.Edges {
		w, err := restoreWeight(pe.Weight, busNames)
		if err != nil {
			return nil, nil, renderer.Settings{}, fmt.Errorf("serialize: restore edge %d: %w", i, err)
		}
		edges[i] = graph.Edge[routeweight.RouteWeight]{From: graph.EdgeVertex(pe.From), To: graph.EdgeVertex(pe.To), Weight: w}
	}
	g := graph.Restore[routeweight.RouteWeight](bundle.VertexCount, edges)

	tableEntries := make([]router.Entry[routeweight.RouteWeight], len(bundle.Table))
	for i, pt := range bundle.Table {
		w, err := restoreWeight(pt.Weight, busNames)
		if err != nil {
			return nil, nil, renderer.Settings{}, fmt.Errorf("serialize: restore table entry %d: %w", i, err)
		}
		tableEntries[i] = router.Entry[routeweight.RouteWeight]{Reachable: pt.Reachable, Weight: w, LastEdge: graph.EdgeId(pt.LastEdge)}
	}
	allPairs := router.Restore(g, bundle.TableVertexCount, tableEntries)

	tr := transit.Restore(cat, g, allPairs)

	return cat, tr, restoreRenderSettings(bundle.RenderSettings), nil
}

func coordinateOf(s persistedStop) geo.Coordinate {
	return geo.Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

func persistWeight(w routeweight.RouteWeight) persistedRouteWeight {
	return persistedRouteWeight{Kind: int(w.Kind), Value: w.Value, BusName: w.BusName, SpanCount: w.SpanCount}
}

// restoreWeight rebuilds a RouteWeight from its persisted shape,
// re-interning BusName against busNames (name -> the reloaded
// catalogue's own copy of that name) so a restored edge never carries a
// dangling or divergent name reference. An empty name (Wait/Zero
// weights) passes through untouched.
func restoreWeight(p persistedRouteWeight, busNames map[string]string) (routeweight.RouteWeight, error) {
	name := p.BusName
	if name != "" {
		canonical, ok := busNames[name]
		if !ok {
			return routeweight.RouteWeight{}, fmt.Errorf("references unknown bus %q", name)
		}
		name = canonical
	}
	return routeweight.RouteWeight{Kind: routeweight.Kind(p.Kind), Value: p.Value, BusName: name, SpanCount: p.SpanCount}, nil
}

func persistRenderSettings(s renderer.Settings) persistedRenderSettings {
	palette := make([]string, len(s.Palette))
	for i, c := range s.Palette {
		palette[i] = c.String()
	}
	return persistedRenderSettings{
		Width: s.Width, Height: s.Height, Padding: s.Padding,
		LineWidth: s.LineWidth, StopRadius: s.StopRadius,
		BusLabelFontSize: s.BusLabelFontSize, BusLabelOffsetX: s.BusLabelOffsetX, BusLabelOffsetY: s.BusLabelOffsetY,
		StopLabelFontSize: s.StopLabelFontSize, StopLabelOffsetX: s.StopLabelOffsetX, StopLabelOffsetY: s.StopLabelOffsetY,
		UnderlayerColor: s.UnderlayerColor.String(), UnderlayerWidth: s.UnderlayerWidth,
		Palette: palette,
	}
}

func restoreRenderSettings(p persistedRenderSettings) renderer.Settings {
	palette := make([]svg.Color, len(p.Palette))
	for i, s := range p.Palette {
		palette[i] = svg.NamedColor(s)
	}
	return renderer.Settings{
		Width: p.Width, Height: p.Height, Padding: p.Padding,
		LineWidth: p.LineWidth, StopRadius: p.StopRadius,
		BusLabelFontSize: p.BusLabelFontSize, BusLabelOffsetX: p.BusLabelOffsetX, BusLabelOffsetY: p.BusLabelOffsetY,
		StopLabelFontSize: p.StopLabelFontSize, StopLabelOffsetX: p.StopLabelOffsetX, StopLabelOffsetY: p.StopLabelOffsetY,
		UnderlayerColor: svg.NamedColor(p.UnderlayerColor), UnderlayerWidth: p.UnderlayerWidth,
		Palette: palette,
	}
}
