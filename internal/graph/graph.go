// Package graph is a generic directed weighted graph: a fixed vertex
// count and an append-only edge list, with per-vertex incidence lists
// updated as each edge is added. It carries no routing policy
// of its own; internal/router runs all-pairs precomputation over it.
package graph

// Weight is the algebra a graph's edge weights must support: a total
// order (Less) and a monoid (Zero, Add) used to accumulate path costs.
type Weight[W any] interface {
	Less(other W) bool
	Add(other W) W
	Zero() W
}

// EdgeId is a stable index into a graph's edge list.
type EdgeId int

// Edge is one directed, weighted connection between two vertices.
type Edge[W any] struct {
	From, To EdgeVertex
	Weight   W
}

// EdgeVertex is a vertex index. Named distinctly from EdgeId so the two
// integer spaces are never confused at call sites.
type EdgeVertex int

// Graph is a directed graph over vertices 0..VertexCount-1, with edges
// added via AddEdge and looked up by id or by incidence.
type Graph[W Weight[W]] struct {
	vertexCount int
	edges       []Edge[W]
	incident    [][]EdgeId // incident[v] = edges with From == v
}

// New returns an empty graph over the given number of vertices.
func New[W Weight[W]](vertexCount int) *Graph[W] {
	return &Graph[W]{
		vertexCount: vertexCount,
		incident:    make([][]EdgeId, vertexCount),
	}
}

// VertexCount returns the number of vertices the graph was built with.
func (g *Graph[W]) VertexCount() int { return g.vertexCount }

// EdgeCount returns the number of edges added so far.
func (g *Graph[W]) EdgeCount() int { return len(g.edges) }

// AddEdge appends a directed edge and returns its id. Incidence lists
// are updated incrementally, so edges may be added in any order and
// queried immediately.
func (g *Graph[W]) AddEdge(from, to EdgeVertex, weight W) EdgeId {
	id := EdgeId(len(g.edges))
	g.edges = append(g.edges, Edge[W]{From: from, To: to, Weight: weight})
	g.incident[from] = append(g.incident[from], id)
	return id
}

// GetEdge returns the edge stored at id.
func (g *Graph[W]) GetEdge(id EdgeId) Edge[W] { return g.edges[id] }

// GetIncidentEdges returns the ids of edges leaving vertex v, in the
// order they were added.
func (g *Graph[W]) GetIncidentEdges(v EdgeVertex) []EdgeId {
	return g.incident[v]
}

// Edges returns every edge in insertion order (so its index equals its
// EdgeId), for a caller that wants to persist the graph directly.
func (g *Graph[W]) Edges() []Edge[W] {
	return g.edges
}

// Restore rebuilds a graph from a vertex count and a full edge list in
// original insertion order, recomputing incidence lists deterministically.
// It is the counterpart to New+AddEdge used when reloading a graph whose
// edges were persisted rather than rebuilt from scratch.
func Restore[W Weight[W]](vertexCount int, edges []Edge[W]) *Graph[W] {
	g := New[W](vertexCount)
	for _, e := range edges {
		g.AddEdge(e.From, e.To, e.Weight)
	}
	return g
}
