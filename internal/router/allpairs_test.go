package router

import (
	"testing"

	"github.com/impactsolutionsas/transitcat/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cost int

func (c cost) Less(other cost) bool { return c < other }
func (c cost) Add(other cost) cost  { return c + other }
func (c cost) Zero() cost           { return 0 }

func TestBuildRouteDirectEdge(t *testing.T) {
	g := graph.New[cost](2)
	g.AddEdge(0, 1, 5)

	r := Build(g)
	route, ok := r.BuildRoute(0, 1)
	require.True(t, ok)
	assert.Equal(t, cost(5), route.Weight)
	assert.Equal(t, 1, len(route.Edges))
}

func TestBuildRouteChoosesShortestOverMultipleHops(t *testing.T) {
	g := graph.New[cost](3)
	g.AddEdge(0, 1, 10)
	g.AddEdge(1, 2, 10)
	g.AddEdge(0, 2, 100) // longer direct edge

	r := Build(g)
	route, ok := r.BuildRoute(0, 2)
	require.True(t, ok)
	assert.Equal(t, cost(20), route.Weight)
	assert.Equal(t, 2, len(route.Edges))
}

func TestBuildRouteSameVertexIsZeroWeightAndEdgeless(t *testing.T) {
	g := graph.New[cost](3)
	g.AddEdge(0, 1, 10)

	r := Build(g)
	route, ok := r.BuildRoute(1, 1)
	require.True(t, ok)
	assert.Equal(t, cost(0), route.Weight)
	assert.Empty(t, route.Edges)
}

func TestBuildRouteUnreachable(t *testing.T) {
	g := graph.New[cost](3)
	g.AddEdge(0, 1, 10)

	r := Build(g)
	_, ok := r.BuildRoute(2, 0)
	assert.False(t, ok)
}

func TestBuildRouteStrictTieBreakKeepsIncumbent(t *testing.T) {
	g := graph.New[cost](2)
	first := g.AddEdge(0, 1, 5)
	g.AddEdge(0, 1, 5) // equal-weight alternative, added later

	r := Build(g)
	route, ok := r.BuildRoute(0, 1)
	require.True(t, ok)
	require.Len(t, route.Edges, 1)
	assert.Equal(t, first, route.Edges[0], "incumbent edge wins a strict tie")
}

func TestTableRestoreAnswersRoutesWithoutRebuilding(t *testing.T) {
	g := graph.New[cost](3)
	g.AddEdge(0, 1, 10)
	g.AddEdge(1, 2, 10)

	built := Build(g)
	n, entries := built.Table()

	restored := Restore(g, n, entries)
	route, ok := restored.BuildRoute(0, 2)
	require.True(t, ok)
	assert.Equal(t, cost(20), route.Weight)
	assert.Equal(t, 2, len(route.Edges))

	_, ok = restored.BuildRoute(2, 0)
	assert.False(t, ok, "unreachable cells must round-trip as unreachable")
}
