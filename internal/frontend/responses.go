package frontend

import (
	"github.com/impactsolutionsas/transitcat/internal/catalogue"
	"github.com/impactsolutionsas/transitcat/internal/jsonval"
	"github.com/impactsolutionsas/transitcat/internal/renderer"
	"github.com/impactsolutionsas/transitcat/internal/transit"
)

// AnswerStatRequests answers every query in requests against the built
// network and returns the JSON array to print. A query that misses
// (unknown stop/bus, or no route) gets an "error_message" member rather
// than aborting the whole batch — only malformed input or a referential
// failure during build is fatal (spec.md's error-handling split).
func AnswerStatRequests(cat *catalogue.Catalogue, tr *transit.Transit, render renderer.Settings, requests []StatRequest) jsonval.Value {
	responses := make([]jsonval.Value, 0, len(requests))
	for _, req := range requests {
		switch req.Type {
		case "Stop":
			responses = append(responses, answerStop(cat, req))
		case "Bus":
			responses = append(responses, answerBus(cat, req))
		case "Map":
			responses = append(responses, answerMap(cat, render, req))
		case "Route":
			responses = append(responses, answerRoute(tr, req))
		default:
			responses = append(responses, notFound(req.ID, "unknown request type"))
		}
	}
	return jsonval.Array(responses...)
}

func notFound(id int64, message string) jsonval.Value {
	return jsonval.Dict(
		jsonval.Field("request_id", jsonval.Int(id)),
		jsonval.Field("error_message", jsonval.String(message)),
	)
}

func answerStop(cat *catalogue.Catalogue, req StatRequest) jsonval.Value {
	buses, ok := cat.GetBusesByStop(req.Name)
	if !ok {
		return notFound(req.ID, "not found")
	}
	items := make([]jsonval.Value, len(buses))
	for i, b := range buses {
		items[i] = jsonval.String(b)
	}
	return jsonval.Dict(
		jsonval.Field("request_id", jsonval.Int(req.ID)),
		jsonval.Field("buses", jsonval.Array(items...)),
	)
}

func answerBus(cat *catalogue.Catalogue, req StatRequest) jsonval.Value {
	info, ok := cat.GetBusInfo(req.Name)
	if !ok {
		return notFound(req.ID, "not found")
	}
	return jsonval.Dict(
		jsonval.Field("request_id", jsonval.Int(req.ID)),
		jsonval.Field("curvature", jsonval.Double(info.Curvature)),
		jsonval.Field("route_length", jsonval.Double(info.RouteLength)),
		jsonval.Field("stop_count", jsonval.Int(int64(info.StopsCount))),
		jsonval.Field("unique_stop_count", jsonval.Int(int64(info.UniqueStopsCount))),
	)
}

func answerMap(cat *catalogue.Catalogue, render renderer.Settings, req StatRequest) jsonval.Value {
	svgDoc := renderer.Render(cat, render)
	return jsonval.Dict(
		jsonval.Field("request_id", jsonval.Int(req.ID)),
		jsonval.Field("map", jsonval.String(svgDoc)),
	)
}

func answerRoute(tr *transit.Transit, req StatRequest) jsonval.Value {
	itinerary, ok := tr.BuildRoute(req.From, req.To)
	if !ok {
		return notFound(req.ID, "not found")
	}

	items := make([]jsonval.Value, len(itinerary.Items))
	for i, item := range itinerary.Items {
		switch item.Type {
		case "Wait":
			items[i] = jsonval.Dict(
				jsonval.Field("type", jsonval.String("Wait")),
				jsonval.Field("stop_name", jsonval.String(item.StopName)),
				jsonval.Field("time", jsonval.Double(item.Time)),
			)
		case "Bus":
			items[i] = jsonval.Dict(
				jsonval.Field("type", jsonval.String("Bus")),
				jsonval.Field("bus", jsonval.String(item.BusName)),
				jsonval.Field("span_count", jsonval.Int(int64(item.SpanCount))),
				jsonval.Field("time", jsonval.Double(item.Time)),
			)
		}
	}

	return jsonval.Dict(
		jsonval.Field("request_id", jsonval.Int(req.ID)),
		jsonval.Field("total_time", jsonval.Double(itinerary.TotalTime)),
		jsonval.Field("items", jsonval.Array(items...)),
	)
}
