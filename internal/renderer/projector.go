package renderer

import (
	"math"

	"github.com/impactsolutionsas/transitcat/internal/geo"
	"github.com/impactsolutionsas/transitcat/internal/svg"
)

// SphereProjector maps geographic coordinates onto an SVG canvas of a
// fixed width/height, preserving relative spacing and leaving a padding
// margin on every side. Grounded on original_source/map_renderer.h/.cpp.
type SphereProjector struct {
	minLon, maxLat float64
	zoom           float64
	padding        float64
}

const epsilon = 1e-6

// NewSphereProjector computes the projection that fits every coordinate
// in points within a (width, height) canvas inset by padding on each
// side. A degenerate axis (every point sharing one latitude, or one
// longitude) is handled by falling back to the other axis's zoom
// factor, or to zero if both axes are degenerate (a single point).
func NewSphereProjector(points []geo.Coordinate, width, height, padding float64) SphereProjector {
	if len(points) == 0 {
		return SphereProjector{padding: padding}
	}

	minLon, maxLon := points[0].Longitude, points[0].Longitude
	minLat, maxLat := points[0].Latitude, points[0].Latitude
	for _, p := range points[1:] {
		if p.Longitude < minLon {
			minLon = p.Longitude
		}
		if p.Longitude > maxLon {
			maxLon = p.Longitude
		}
		if p.Latitude < minLat {
			minLat = p.Latitude
		}
		if p.Latitude > maxLat {
			maxLat = p.Latitude
		}
	}

	var widthZoom, heightZoom float64
	var haveWidthZoom, haveHeightZoom bool
	if math.Abs(maxLon-minLon) > epsilon {
		widthZoom = (width - 2*padding) / (maxLon - minLon)
		haveWidthZoom = true
	}
	if math.Abs(maxLat-minLat) > epsilon {
		heightZoom = (height - 2*padding) / (maxLat - minLat)
		haveHeightZoom = true
	}

	var zoom float64
	switch {
	case haveWidthZoom && haveHeightZoom:
		zoom = math.Min(widthZoom, heightZoom)
	case haveWidthZoom:
		zoom = widthZoom
	case haveHeightZoom:
		zoom = heightZoom
	default:
		zoom = 0
	}

	return SphereProjector{minLon: minLon, maxLat: maxLat, zoom: zoom, padding: padding}
}

// Project maps one coordinate onto the canvas. Latitude is flipped
// since SVG's y axis grows downward while latitude grows northward.
func (p SphereProjector) Project(c geo.Coordinate) svg.Point {
	return svg.Point{
		X: (c.Longitude-p.minLon)*p.zoom + p.padding,
		Y: (p.maxLat-c.Latitude)*p.zoom + p.padding,
	}
}
