package projection

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/gilchrisn/costar-graph-service/pkg/bipartite"
)

// Stats summarizes one loaded dataset and its projection.
type Stats struct {
	Actors              int     `json:"actors"`
	Movies              int     `json:"movies"`
	Edges               int     `json:"edges"`
	Density             float64 `json:"density"`
	AvgDegree           float64 `json:"avg_degree"`
	MaxDegree           int     `json:"max_degree"`
	ConnectedComponents int     `json:"connected_components"`
}

// ComputeStats derives dataset statistics from the bipartite graph and
// its dense projection.
func ComputeStats(g *bipartite.Graph, m *Matrix) *Stats {
	n := m.Size()
	stats := &Stats{
		Actors: n,
		Movies: g.NumMovies(),
		Edges:  m.Edges(),
	}
	if n == 0 {
		return stats
	}

	degrees := make([]float64, n)
	for i := 0; i < n; i++ {
		d := m.Degree(i)
		degrees[i] = float64(d)
		if d > stats.MaxDegree {
			stats.MaxDegree = d
		}
	}
	stats.AvgDegree = stat.Mean(degrees, nil)
	if n > 1 {
		stats.Density = 2 * float64(stats.Edges) / (float64(n) * float64(n-1))
	}

	// Component count over an undirected gonum view of the projection
	ug := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		ug.AddNode(simple.Node(int64(i)))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.Connected(i, j) {
				ug.SetEdge(simple.Edge{F: simple.Node(int64(i)), T: simple.Node(int64(j))})
			}
		}
	}
	stats.ConnectedComponents = len(topo.ConnectedComponents(ug))

	return stats
}
