// Package router precomputes shortest paths between every pair of
// vertices in a graph.Graph, once, and answers BuildRoute queries by
// replaying the precomputed table — no search happens at query time.
package router

import "github.com/impactsolutionsas/transitcat/internal/graph"

// AllPairsRouter holds the n*n distance table and last-edge table built
// by Build. Ties are broken in favour of the incumbent: a candidate path
// replaces the current best only if it is strictly shorter.
type AllPairsRouter[W graph.Weight[W]] struct {
	g         *graph.Graph[W]
	n         int
	dist      [][]W
	reachable [][]bool
	lastEdge  [][]graph.EdgeId
}

// Route is the result of a successful BuildRoute: the total weight and
// the ordered edges that realize it.
type Route[W any] struct {
	Weight W
	Edges  []graph.EdgeId
}

// Entry is one dense-matrix cell of a persisted all-pairs table: the
// weight and last-edge id for a reachable pair, or an absent cell
// (Reachable == false, the other fields meaningless).
type Entry[W any] struct {
	Reachable bool
	Weight    W
	LastEdge  graph.EdgeId
}

// Table flattens the router's dense n*n dist/reachable/lastEdge tables
// into row-major Entry cells (entries[i*n+j] is the (i,j) cell), for a
// caller that wants to persist the precomputed table directly.
func (r *AllPairsRouter[W]) Table() (n int, entries []Entry[W]) {
	entries = make([]Entry[W], 0, r.n*r.n)
	for i := 0; i < r.n; i++ {
		for j := 0; j < r.n; j++ {
			entries = append(entries, Entry[W]{
				Reachable: r.reachable[i][j],
				Weight:    r.dist[i][j],
				LastEdge:  r.lastEdge[i][j],
			})
		}
	}
	return r.n, entries
}

// Restore rebuilds a router directly from a previously computed dense
// table (as returned by Table), without rerunning Floyd-Warshall. g must
// be the same graph, reloaded, the table was originally built from —
// BuildRoute's edge-id lookups into it must resolve to the same edges.
func Restore[W graph.Weight[W]](g *graph.Graph[W], n int, entries []Entry[W]) *AllPairsRouter[W] {
	r := &AllPairsRouter[W]{
		g:         g,
		n:         n,
		dist:      make([][]W, n),
		reachable: make([][]bool, n),
		lastEdge:  make([][]graph.EdgeId, n),
	}
	for i := 0; i < n; i++ {
		r.dist[i] = make([]W, n)
		r.reachable[i] = make([]bool, n)
		r.lastEdge[i] = make([]graph.EdgeId, n)
		for j := 0; j < n; j++ {
			e := entries[i*n+j]
			r.dist[i][j] = e.Weight
			r.reachable[i][j] = e.Reachable
			r.lastEdge[i][j] = e.LastEdge
		}
	}
	return r
}

// Build runs edge relaxation followed by Floyd-Warshall-style
// intermediate-vertex relaxation over g, and returns a router ready to
// answer BuildRoute queries in time proportional to the route's edge count.
func Build[W graph.Weight[W]](g *graph.Graph[W]) *AllPairsRouter[W] {
	n := g.VertexCount()
	var zero W

	r := &AllPairsRouter[W]{
		g:         g,
		n:         n,
		dist:      make([][]W, n),
		reachable: make([][]bool, n),
		lastEdge:  make([][]graph.EdgeId, n),
	}
	for i := 0; i < n; i++ {
		r.dist[i] = make([]W, n)
		r.reachable[i] = make([]bool, n)
		r.lastEdge[i] = make([]graph.EdgeId, n)
		r.dist[i][i] = zero.Zero()
		r.reachable[i][i] = true
	}

	for id := 0; id < g.EdgeCount(); id++ {
		e := g.GetEdge(graph.EdgeId(id))
		u, v := int(e.From), int(e.To)
		candidate := r.dist[u][u].Add(e.Weight)
		if !r.reachable[u][v] || candidate.Less(r.dist[u][v]) {
			r.dist[u][v] = candidate
			r.reachable[u][v] = true
			r.lastEdge[u][v] = graph.EdgeId(id)
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if !r.reachable[i][k] {
				continue
			}
			for j := 0; j < n; j++ {
				if !r.reachable[k][j] {
					continue
				}
				candidate := r.dist[i][k].Add(r.dist[k][j])
				if !r.reachable[i][j] || candidate.Less(r.dist[i][j]) {
					r.dist[i][j] = candidate
					r.reachable[i][j] = true
					r.lastEdge[i][j] = r.lastEdge[k][j]
				}
			}
		}
	}

	return r
}

// BuildRoute returns the cheapest precomputed path from -> to. The
// second return is false when no path exists. from == to always
// succeeds with a zero-weight, edge-less route, without consulting the
// table (the spec's empty-itinerary special case).
func (r *AllPairsRouter[W]) BuildRoute(from, to graph.EdgeVertex) (Route[W], bool) {
	var zero W
	if from == to {
		return Route[W]{Weight: zero.Zero()}, true
	}
	fi, ti := int(from), int(to)
	if !r.reachable[fi][ti] {
		return Route[W]{}, false
	}

	var edges []graph.EdgeId
	cur := ti
	for cur != fi {
		e := r.lastEdge[fi][cur]
		edges = append(edges, e)
		cur = int(r.g.GetEdge(e).From)
	}
	for l, rr := 0, len(edges)-1; l < rr; l, rr = l+1, rr-1 {
		edges[l], edges[rr] = edges[rr], edges[l]
	}

	return Route[W]{Weight: r.dist[fi][ti], Edges: edges}, true
}
