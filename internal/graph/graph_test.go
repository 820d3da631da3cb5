package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type intWeight int

func (w intWeight) Less(other intWeight) bool     { return w < other }
func (w intWeight) Add(other intWeight) intWeight { return w + other }
func (w intWeight) Zero() intWeight               { return 0 }

func TestAddEdgeAndIncidence(t *testing.T) {
	g := New[intWeight](3)
	e0 := g.AddEdge(0, 1, 5)
	e1 := g.AddEdge(0, 2, 7)
	e2 := g.AddEdge(1, 2, 1)

	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, []EdgeId{e0, e1}, g.GetIncidentEdges(0))
	assert.Equal(t, []EdgeId{e2}, g.GetIncidentEdges(1))
	assert.Empty(t, g.GetIncidentEdges(2))

	edge := g.GetEdge(e1)
	assert.Equal(t, EdgeVertex(0), edge.From)
	assert.Equal(t, EdgeVertex(2), edge.To)
	assert.Equal(t, intWeight(7), edge.Weight)
}

func TestVertexCount(t *testing.T) {
	g := New[intWeight](10)
	assert.Equal(t, 10, g.VertexCount())
}

func TestRestoreReproducesEdgesAndIncidence(t *testing.T) {
	g := New[intWeight](3)
	g.AddEdge(0, 1, 5)
	g.AddEdge(0, 2, 7)
	g.AddEdge(1, 2, 1)

	restored := Restore[intWeight](g.VertexCount(), g.Edges())

	assert.Equal(t, g.VertexCount(), restored.VertexCount())
	assert.Equal(t, g.EdgeCount(), restored.EdgeCount())
	assert.Equal(t, g.Edges(), restored.Edges())
	assert.Equal(t, g.GetIncidentEdges(0), restored.GetIncidentEdges(0))
	assert.Equal(t, g.GetIncidentEdges(1), restored.GetIncidentEdges(1))
}
