package frontend

import (
	"fmt"

	"github.com/impactsolutionsas/transitcat/internal/catalogue"
	"github.com/impactsolutionsas/transitcat/internal/geo"
)

// BuildCatalogue replays a parsed BuildRequest into a fresh catalogue in
// the fixed order the source requires: every stop, then every road
// distance, then every bus. A referential failure at any phase (a
// distance or bus naming an unknown stop, or a duplicate stop name) is
// fatal and aborts the build (spec.md's "fatal at build" error kind).
func BuildCatalogue(req BuildRequest) (*catalogue.Catalogue, error) {
	cat := catalogue.New()
	cat.SetRoutingSettings(req.Routing)

	for _, s := range req.Stops {
		if _, err := cat.AddStop(s.Name, geo.Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}); err != nil {
			return nil, fmt.Errorf("frontend: build catalogue: %w", err)
		}
	}

	for _, s := range req.Stops {
		if len(s.RoadDistances) == 0 {
			continue
		}
		id, ok := cat.FindStop(s.Name)
		if !ok {
			return nil, fmt.Errorf("frontend: build catalogue: road_distances for unregistered stop %q", s.Name)
		}
		if err := cat.AddDistance(id, s.RoadDistances); err != nil {
			return nil, fmt.Errorf("frontend: build catalogue: %w", err)
		}
	}

	for _, b := range req.Buses {
		if _, err := cat.AddBus(b.Name, b.Stops, b.IsRoundtrip); err != nil {
			return nil, fmt.Errorf("frontend: build catalogue: %w", err)
		}
	}

	return cat, nil
}
