// Package frontend parses the request/response JSON documents
// described by spec.md's external interfaces and orchestrates the
// catalogue/transit/renderer components to answer them. Apart from
// cmd/transitcat reading serialization_settings.file in query mode, it
// is the only package that knows the wire shape; every other package
// deals in Go values.
package frontend

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/impactsolutionsas/transitcat/internal/catalogue"
	"github.com/impactsolutionsas/transitcat/internal/jsonval"
	"github.com/impactsolutionsas/transitcat/internal/renderer"
	"github.com/impactsolutionsas/transitcat/internal/svg"
)

// normalizeName applies Unicode NFC normalization to stop and bus names
// at ingestion, so two requests that spell the same name with different
// (but canonically equivalent) Unicode sequences resolve to one stop.
func normalizeName(s string) string {
	return norm.NFC.String(s)
}

// StopRequest is one "Stop" base_request.
type StopRequest struct {
	Name          string
	Latitude      float64
	Longitude     float64
	RoadDistances map[string]float64
}

// BusRequest is one "Bus" base_request.
type BusRequest struct {
	Name        string
	Stops       []string
	IsRoundtrip bool
}

// BuildRequest is everything a make_base run needs: the base entities,
// in the order they're ingested, plus the build's settings.
type BuildRequest struct {
	Stops      []StopRequest
	Buses      []BusRequest
	Routing    catalogue.RoutingSettings
	Render     renderer.Settings
	OutputFile string
}

// ParseBuildRequest parses a make_base input document.
func ParseBuildRequest(raw string) (BuildRequest, error) {
	root, err := jsonval.Parse(raw)
	if err != nil {
		return BuildRequest{}, fmt.Errorf("frontend: parse build request: %w", err)
	}

	var req BuildRequest
	req.Routing = catalogue.DefaultRoutingSettings()

	if baseRequests, ok := root.Get("base_requests"); ok {
		for _, item := range baseRequests.AsArray() {
			kind, ok := item.GetString("type")
			if !ok {
				return BuildRequest{}, fmt.Errorf("frontend: base_request missing \"type\"")
			}
			switch kind {
			case "Stop":
				sr, err := parseStopRequest(item)
				if err != nil {
					return BuildRequest{}, err
				}
				req.Stops = append(req.Stops, sr)
			case "Bus":
				br, err := parseBusRequest(item)
				if err != nil {
					return BuildRequest{}, err
				}
				req.Buses = append(req.Buses, br)
			default:
				return BuildRequest{}, fmt.Errorf("frontend: unknown base_request type %q", kind)
			}
		}
	}

	if rs, ok := root.Get("routing_settings"); ok {
		req.Routing = parseRoutingSettings(rs)
	}
	if rs, ok := root.Get("render_settings"); ok {
		req.Render = parseRenderSettings(rs)
	}
	if ss, ok := root.Get("serialization_settings"); ok {
		if file, ok := ss.GetString("file"); ok {
			req.OutputFile = file
		}
	}

	return req, nil
}

func parseStopRequest(v jsonval.Value) (StopRequest, error) {
	name, ok := v.GetString("name")
	if !ok {
		return StopRequest{}, fmt.Errorf("frontend: Stop base_request missing \"name\"")
	}
	lat, ok := v.Get("latitude")
	if !ok {
		return StopRequest{}, fmt.Errorf("frontend: Stop %q missing \"latitude\"", name)
	}
	lon, ok := v.Get("longitude")
	if !ok {
		return StopRequest{}, fmt.Errorf("frontend: Stop %q missing \"longitude\"", name)
	}

	distances := make(map[string]float64)
	if rd, ok := v.Get("road_distances"); ok {
		for _, m := range rd.AsDict() {
			distances[normalizeName(m.Key)] = m.Value.AsFloat()
		}
	}

	return StopRequest{
		Name:          normalizeName(name),
		Latitude:      lat.AsFloat(),
		Longitude:     lon.AsFloat(),
		RoadDistances: distances,
	}, nil
}

func parseBusRequest(v jsonval.Value) (BusRequest, error) {
	name, ok := v.GetString("name")
	if !ok {
		return BusRequest{}, fmt.Errorf("frontend: Bus base_request missing \"name\"")
	}
	stopsVal, ok := v.Get("stops")
	if !ok {
		return BusRequest{}, fmt.Errorf("frontend: Bus %q missing \"stops\"", name)
	}

	stops := make([]string, 0, len(stopsVal.AsArray()))
	for _, s := range stopsVal.AsArray() {
		stops = append(stops, normalizeName(s.AsString()))
	}

	isRoundtrip := false
	if rt, ok := v.Get("is_roundtrip"); ok {
		isRoundtrip = rt.AsBool()
	}

	return BusRequest{Name: normalizeName(name), Stops: stops, IsRoundtrip: isRoundtrip}, nil
}

func parseRoutingSettings(v jsonval.Value) catalogue.RoutingSettings {
	settings := catalogue.DefaultRoutingSettings()
	if wt, ok := v.Get("bus_wait_time"); ok {
		settings.BusWaitTimeMinutes = wt.AsFloat()
	}
	if vel, ok := v.Get("bus_velocity"); ok {
		settings.BusVelocityKmh = vel.AsFloat()
	}
	return settings
}

func parseRenderSettings(v jsonval.Value) renderer.Settings {
	var s renderer.Settings
	getFloat := func(key string) float64 {
		if f, ok := v.Get(key); ok {
			return f.AsFloat()
		}
		return 0
	}
	getOffset := func(key string) (float64, float64) {
		off, ok := v.Get(key)
		if !ok {
			return 0, 0
		}
		arr := off.AsArray()
		if len(arr) != 2 {
			return 0, 0
		}
		return arr[0].AsFloat(), arr[1].AsFloat()
	}

	s.Width = getFloat("width")
	s.Height = getFloat("height")
	s.Padding = getFloat("padding")
	s.LineWidth = getFloat("line_width")
	s.StopRadius = getFloat("stop_radius")
	s.BusLabelFontSize = uint32(getFloat("bus_label_font_size"))
	s.BusLabelOffsetX, s.BusLabelOffsetY = getOffset("bus_label_offset")
	s.StopLabelFontSize = uint32(getFloat("stop_label_font_size"))
	s.StopLabelOffsetX, s.StopLabelOffsetY = getOffset("stop_label_offset")
	s.UnderlayerWidth = getFloat("underlayer_width")

	if uc, ok := v.Get("underlayer_color"); ok {
		s.UnderlayerColor = parseColor(uc)
	}
	if palette, ok := v.Get("color_palette"); ok {
		for _, c := range palette.AsArray() {
			s.Palette = append(s.Palette, parseColor(c))
		}
	}

	return s
}

// parseColor accepts the three shapes the source's JSON reader accepts:
// a CSS/named string, a [r,g,b] triple, or a [r,g,b,a] quadruple.
func parseColor(v jsonval.Value) svg.Color {
	if v.IsString() {
		return svg.NamedColor(v.AsString())
	}
	arr := v.AsArray()
	r := uint8(arr[0].AsInt())
	g := uint8(arr[1].AsInt())
	b := uint8(arr[2].AsInt())
	if len(arr) == 4 {
		return svg.RGBA(r, g, b, arr[3].AsFloat())
	}
	return svg.RGB(r, g, b)
}

// StatRequest is one query in a process_requests document.
type StatRequest struct {
	ID   int64
	Type string // "Stop", "Bus", "Map", "Route"
	Name string // Stop/Bus
	From string // Route
	To   string // Route
}

// ParseStatRequests parses a process_requests input document into its
// ordered list of queries.
func ParseStatRequests(raw string) ([]StatRequest, error) {
	root, err := jsonval.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("frontend: parse stat requests: %w", err)
	}

	statRequests, ok := root.Get("stat_requests")
	if !ok {
		return nil, nil
	}

	var out []StatRequest
	for _, item := range statRequests.AsArray() {
		id, ok := item.Get("id")
		if !ok {
			return nil, fmt.Errorf("frontend: stat_request missing \"id\"")
		}
		kind, ok := item.GetString("type")
		if !ok {
			return nil, fmt.Errorf("frontend: stat_request missing \"type\"")
		}

		sr := StatRequest{ID: id.AsInt(), Type: kind}
		if name, ok := item.GetString("name"); ok {
			sr.Name = normalizeName(name)
		}
		if from, ok := item.GetString("from"); ok {
			sr.From = normalizeName(from)
		}
		if to, ok := item.GetString("to"); ok {
			sr.To = normalizeName(to)
		}
		out = append(out, sr)
	}
	return out, nil
}
