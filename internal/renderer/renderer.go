// Package renderer draws a network's buses and stops as an SVG map:
// route polylines, then route labels, then stop markers, then stop
// labels, each layer painted lexicographically by name so repeated
// renders of an unchanged network are byte-identical.
package renderer

import (
	"sort"

	"github.com/impactsolutionsas/transitcat/internal/catalogue"
	"github.com/impactsolutionsas/transitcat/internal/geo"
	"github.com/impactsolutionsas/transitcat/internal/svg"
)

// Settings controls the map's canvas size and the look of every shape.
// Grounded on original_source/map_renderer.h's RenderSettings struct.
type Settings struct {
	Width, Height float64
	Padding       float64

	LineWidth  float64
	StopRadius float64

	BusLabelFontSize uint32
	BusLabelOffsetX  float64
	BusLabelOffsetY  float64

	StopLabelFontSize uint32
	StopLabelOffsetX  float64
	StopLabelOffsetY  float64

	UnderlayerColor svg.Color
	UnderlayerWidth float64

	Palette []svg.Color
}

// Render draws the full map for cat's buses and stops and returns the
// rendered SVG document as text. Stops not served by any non-empty bus
// are omitted, matching the source's "only what's reachable" convention.
func Render(cat *catalogue.Catalogue, settings Settings) string {
	buses := sortedNonEmptyBuses(cat)
	usedStops := usedStopNames(cat, buses)
	proj := projectorFor(cat, usedStops, settings)

	doc := &svg.Document{}
	renderRoutePolylines(doc, cat, buses, proj, settings)
	renderRouteLabels(doc, cat, buses, proj, settings)
	renderStopCircles(doc, cat, usedStops, proj, settings)
	renderStopLabels(doc, cat, usedStops, proj, settings)
	return doc.Render()
}

func sortedNonEmptyBuses(cat *catalogue.Catalogue) []catalogue.Bus {
	var buses []catalogue.Bus
	for _, b := range cat.Buses() {
		if len(b.Stops) > 0 {
			buses = append(buses, b)
		}
	}
	sort.Slice(buses, func(i, j int) bool { return buses[i].Name < buses[j].Name })
	return buses
}

func usedStopNames(cat *catalogue.Catalogue, buses []catalogue.Bus) []string {
	seen := make(map[string]struct{})
	for _, b := range buses {
		for _, id := range b.Stops {
			seen[cat.Stop(id).Name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func projectorFor(cat *catalogue.Catalogue, stopNames []string, settings Settings) SphereProjector {
	coords := make([]geo.Coordinate, 0, len(stopNames))
	for _, name := range stopNames {
		id, _ := cat.FindStop(name)
		coords = append(coords, cat.Stop(id).Coordinate)
	}
	return NewSphereProjector(coords, settings.Width, settings.Height, settings.Padding)
}

// travelOrder returns the sequence of stops to draw a route's polyline
// through: the traversed order as stored for a ring bus (already
// closed), or the forward run followed by the backward run (skipping
// the duplicated turnaround point) for a linear bus, so the line
// visually represents a round trip.
func travelOrder(bus catalogue.Bus) []catalogue.StopId {
	if bus.IsRing {
		return bus.Stops
	}
	order := make([]catalogue.StopId, 0, len(bus.Stops)*2-1)
	order = append(order, bus.Stops...)
	for i := len(bus.Stops) - 2; i >= 0; i-- {
		order = append(order, bus.Stops[i])
	}
	return order
}

func renderRoutePolylines(doc *svg.Document, cat *catalogue.Catalogue, buses []catalogue.Bus, proj SphereProjector, settings Settings) {
	for i, bus := range buses {
		color := paletteColor(settings, i)
		poly := svg.NewPolyline().
			SetStrokeColor(color).
			SetStrokeWidth(settings.LineWidth).
			SetStrokeLineCap(svg.LineCapRound).
			SetStrokeLineJoin(svg.LineJoinRound)
		for _, id := range travelOrder(bus) {
			poly.AddPoint(proj.Project(cat.Stop(id).Coordinate))
		}
		doc.Add(poly)
	}
}

func renderRouteLabels(doc *svg.Document, cat *catalogue.Catalogue, buses []catalogue.Bus, proj SphereProjector, settings Settings) {
	for i, bus := range buses {
		color := paletteColor(settings, i)
		first := bus.Stops[0]
		addBusLabel(doc, cat, proj, settings, bus.Name, first, color)

		if !bus.IsRing {
			last := bus.Stops[len(bus.Stops)-1]
			if last != first {
				addBusLabel(doc, cat, proj, settings, bus.Name, last, color)
			}
		}
	}
}

func addBusLabel(doc *svg.Document, cat *catalogue.Catalogue, proj SphereProjector, settings Settings, busName string, stop catalogue.StopId, color svg.Color) {
	pos := proj.Project(cat.Stop(stop).Coordinate)
	offset := svg.Point{X: settings.BusLabelOffsetX, Y: settings.BusLabelOffsetY}

	underlay := svg.NewText().SetPosition(pos).SetOffset(offset).
		SetFontSize(settings.BusLabelFontSize).SetFontFamily("Verdana").SetFontWeight("bold").
		SetData(busName).
		SetFillColor(settings.UnderlayerColor).SetStrokeColor(settings.UnderlayerColor).
		SetStrokeWidth(settings.UnderlayerWidth).
		SetStrokeLineCap(svg.LineCapRound).SetStrokeLineJoin(svg.LineJoinRound)
	doc.Add(underlay)

	foreground := svg.NewText().SetPosition(pos).SetOffset(offset).
		SetFontSize(settings.BusLabelFontSize).SetFontFamily("Verdana").SetFontWeight("bold").
		SetData(busName).SetFillColor(color)
	doc.Add(foreground)
}

func renderStopCircles(doc *svg.Document, cat *catalogue.Catalogue, stopNames []string, proj SphereProjector, settings Settings) {
	for _, name := range stopNames {
		id, _ := cat.FindStop(name)
		circle := svg.NewCircle().
			SetCenter(proj.Project(cat.Stop(id).Coordinate)).
			SetRadius(settings.StopRadius).
			SetFillColor(svg.NamedColor("white"))
		doc.Add(circle)
	}
}

func renderStopLabels(doc *svg.Document, cat *catalogue.Catalogue, stopNames []string, proj SphereProjector, settings Settings) {
	offset := svg.Point{X: settings.StopLabelOffsetX, Y: settings.StopLabelOffsetY}
	for _, name := range stopNames {
		id, _ := cat.FindStop(name)
		pos := proj.Project(cat.Stop(id).Coordinate)

		underlay := svg.NewText().SetPosition(pos).SetOffset(offset).
			SetFontSize(settings.StopLabelFontSize).SetFontFamily("Verdana").SetData(name).
			SetFillColor(settings.UnderlayerColor).SetStrokeColor(settings.UnderlayerColor).
			SetStrokeWidth(settings.UnderlayerWidth).
			SetStrokeLineCap(svg.LineCapRound).SetStrokeLineJoin(svg.LineJoinRound)
		doc.Add(underlay)

		foreground := svg.NewText().SetPosition(pos).SetOffset(offset).
			SetFontSize(settings.StopLabelFontSize).SetFontFamily("Verdana").SetData(name).
			SetFillColor(svg.NamedColor("black"))
		doc.Add(foreground)
	}
}

func paletteColor(settings Settings, index int) svg.Color {
	if len(settings.Palette) == 0 {
		return svg.NamedColor("black")
	}
	return settings.Palette[index%len(settings.Palette)]
}
