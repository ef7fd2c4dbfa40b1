package projection

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gilchrisn/costar-graph-service/pkg/bipartite"
)

// Matrix is the dense symmetric 0/1 adjacency over the projected
// actor-actor graph, indexed by actor ordinals in first-seen order.
// Two actors are connected iff they share at least one movie; edge
// weight and multiplicity are deliberately dropped.
type Matrix struct {
	names []string
	index map[string]int
	adj   *mat.Dense
	edges int
}

// BuildMatrix projects the bipartite graph: every movie connects its
// credited cast pairwise (a co-star clique). The diagonal stays zero.
func BuildMatrix(g *bipartite.Graph) *Matrix {
	n := g.NumActors()
	m := &Matrix{
		names: make([]string, n),
		index: make(map[string]int, n),
	}
	copy(m.names, g.ActorOrder())
	for i, name := range m.names {
		m.index[name] = i
	}
	if n == 0 {
		return m
	}
	m.adj = mat.NewDense(n, n, nil)

	for _, key := range g.MovieOrder() {
		movie, ok := g.Movie(key)
		if !ok {
			continue
		}
		cast := movie.Cast
		for a := 0; a < len(cast); a++ {
			for b := a + 1; b < len(cast); b++ {
				u := m.index[cast[a]]
				v := m.index[cast[b]]
				if u == v {
					// Repeated credit of the same actor in one movie
					continue
				}
				if m.adj.At(u, v) == 0 {
					m.adj.Set(u, v, 1)
					m.adj.Set(v, u, 1)
					m.edges++
				}
			}
		}
	}

	return m
}

// Size returns the number of actors.
func (m *Matrix) Size() int {
	return len(m.names)
}

// Edges returns the number of distinct undirected projected edges.
func (m *Matrix) Edges() int {
	return m.edges
}

// Name returns the actor name for an ordinal.
func (m *Matrix) Name(i int) string {
	return m.names[i]
}

// Names returns actor names in ordinal order. Callers must not reorder.
func (m *Matrix) Names() []string {
	return m.names
}

// Ordinal returns the ordinal for an actor name.
func (m *Matrix) Ordinal(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Connected reports whether two ordinals share at least one movie.
func (m *Matrix) Connected(i, j int) bool {
	return m.adj.At(i, j) != 0
}

// Degree returns the number of distinct co-stars of an ordinal.
func (m *Matrix) Degree(i int) int {
	return int(floats.Sum(m.adj.RawRowView(i)))
}

// MutualCount returns the number of third actors adjacent to both
// ordinals: the dot product of their adjacency rows.
func (m *Matrix) MutualCount(i, j int) int {
	return int(mat.Dot(m.adj.RowView(i), m.adj.RowView(j)))
}
