package pathfinder

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/gilchrisn/costar-graph-service/pkg/bipartite"
)

// Per-query outcomes; callers test with errors.Is
var (
	ErrUnknownActor = errors.New("pathfinder: unknown actor")
	ErrNoPath       = errors.New("pathfinder: no path between actors")
)

// unreached marks a vertex no relaxation has touched yet
const unreached = math.MaxInt

// Step is one hop of a reconstructed path: the movie crossed and the
// actor reached through it.
type Step struct {
	Movie string `json:"movie"`
	Actor string `json:"actor"`
}

// Path is a shortest actor-movie-actor chain between two actors.
type Path struct {
	Start    string `json:"start"`
	Steps    []Step `json:"steps"`
	Distance int    `json:"distance"`
}

// String formats the chain as alternating actor and movie tokens:
// (start)--[movie#@year]-->(actor)--...-->(end)
func (p *Path) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(%s)", p.Start)
	for _, step := range p.Steps {
		fmt.Fprintf(&b, "--[%s]-->(%s)", step.Movie, step.Actor)
	}
	return b.String()
}

// vertexState is one arena entry of transient per-query search state.
// prevActor is an ordinal back-pointer, -1 when unset.
type vertexState struct {
	dist      int
	done      bool
	prevActor int
	prevMovie string
}

// pathItem is one priority queue entry. prevName is the previous-actor
// name recorded at push time; it drives deterministic tie-breaking.
type pathItem struct {
	actor    int
	dist     int
	name     string
	prevName string
}

// pathQueue is a min-heap ordered by tentative distance, then
// previous-actor name, then the entry's own actor name, so of two
// equal-length paths the lexicographically smaller chain always wins.
type pathQueue []pathItem

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	if pq[i].prevName != pq[j].prevName {
		return pq[i].prevName < pq[j].prevName
	}
	return pq[i].name < pq[j].name
}

func (pq pathQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *pathQueue) Push(x interface{}) {
	*pq = append(*pq, x.(pathItem))
}

func (pq *pathQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Engine runs shortest-path queries over one loaded bipartite graph.
// The search arena is allocated once per engine and fully reset at the
// start of every query; queries must run sequentially.
type Engine struct {
	graph *bipartite.Graph
	names []string
	index map[string]int
	state []vertexState
}

// NewEngine builds the ordinal bijection and search arena for a graph.
func NewEngine(g *bipartite.Graph) *Engine {
	names := g.ActorOrder()
	e := &Engine{
		graph: g,
		names: names,
		index: make(map[string]int, len(names)),
		state: make([]vertexState, len(names)),
	}
	for i, name := range names {
		e.index[name] = i
	}
	return e
}

func (e *Engine) reset() {
	for i := range e.state {
		e.state[i] = vertexState{dist: unreached, prevActor: -1}
	}
}

// FindPath runs Dijkstra from start to end over the implicit projected
// graph: neighbors are discovered by walking the current actor's
// movies and each movie's cast, with the movie weight as edge weight.
// Queue entries are never removed on relaxation, only superseded; a
// vertex is finalized on first pop and the search stops as soon as the
// target is popped as the current minimum.
func (e *Engine) FindPath(start, end string) (*Path, error) {
	startOrd, ok := e.index[start]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActor, start)
	}
	endOrd, ok := e.index[end]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActor, end)
	}

	e.reset()
	e.state[startOrd].dist = 0

	pq := &pathQueue{}
	heap.Init(pq)
	heap.Push(pq, pathItem{actor: startOrd, dist: 0, name: start})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pathItem)
		if e.state[item.actor].done {
			// Stale entry, superseded by a cheaper relaxation
			continue
		}
		e.state[item.actor].done = true
		if item.actor == endOrd {
			break
		}

		current := e.names[item.actor]
		base := e.state[item.actor].dist
		for _, key := range e.graph.MoviesOf(current) {
			movie, ok := e.graph.Movie(key)
			if !ok {
				continue
			}
			for _, coStar := range movie.Cast {
				next := e.index[coStar]
				if next == item.actor || e.state[next].done {
					continue
				}
				through := base + movie.Weight
				if through < e.state[next].dist {
					e.state[next].dist = through
					e.state[next].prevActor = item.actor
					e.state[next].prevMovie = key
					heap.Push(pq, pathItem{actor: next, dist: through, name: coStar, prevName: current})
				}
			}
		}
	}

	if !e.state[endOrd].done {
		return nil, fmt.Errorf("%w: %q and %q", ErrNoPath, start, end)
	}

	return e.buildPath(startOrd, endOrd), nil
}

// buildPath walks back-pointers from the target to the start and
// reverses the collected hops into start-to-end order.
func (e *Engine) buildPath(startOrd, endOrd int) *Path {
	steps := make([]Step, 0)
	for cur := endOrd; cur != startOrd; cur = e.state[cur].prevActor {
		steps = append(steps, Step{Movie: e.state[cur].prevMovie, Actor: e.names[cur]})
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	return &Path{
		Start:    e.names[startOrd],
		Steps:    steps,
		Distance: e.state[endOrd].dist,
	}
}

// QueryResult is the outcome of one start/end pair.
type QueryResult struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Path  *Path  `json:"path,omitempty"`
	Err   error  `json:"-"`
}

// Statistics contains run performance metrics
type Statistics struct {
	QueriesRun   int   `json:"queries_run"`
	PathsFound   int   `json:"paths_found"`
	RuntimeMS    int64 `json:"runtime_ms"`
	MemoryPeakMB int64 `json:"memory_peak_mb"`
}

// Result represents the batch output
type Result struct {
	Queries    []QueryResult `json:"queries"`
	Statistics Statistics    `json:"statistics"`
}

// Run executes the query pairs sequentially over one loaded graph.
// Per-query failures (unknown actor, no path) are recorded on the query
// result and do not abort the remaining queries.
func Run(graph *bipartite.Graph, pairs [][2]string, config *Config, ctx context.Context) (*Result, error) {
	startTime := time.Now()
	logger := config.CreateLogger()

	logger.Info().
		Int("actors", graph.NumActors()).
		Int("movies", graph.NumMovies()).
		Int("pairs", len(pairs)).
		Bool("weighted", graph.Options().Weighted).
		Msg("Starting shortest-path queries")

	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	engine := NewEngine(graph)
	result := &Result{Queries: make([]QueryResult, 0, len(pairs))}

	for i, pair := range pairs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		query := QueryResult{Start: pair[0], End: pair[1]}
		path, err := engine.FindPath(pair[0], pair[1])
		if err != nil {
			query.Err = err
			logger.Warn().
				Int("pair", i+1).
				Str("start", pair[0]).
				Str("end", pair[1]).
				Err(err).
				Msg("Query failed")
		} else {
			query.Path = path
			result.Statistics.PathsFound++
			if config.EnableProgress() {
				logger.Debug().
					Int("pair", i+1).
					Int("distance", path.Distance).
					Int("hops", len(path.Steps)).
					Msg("Path found")
			}
		}
		result.Queries = append(result.Queries, query)
	}

	result.Statistics.QueriesRun = len(result.Queries)
	result.Statistics.RuntimeMS = time.Since(startTime).Milliseconds()
	result.Statistics.MemoryPeakMB = getMemoryUsage()

	logger.Info().
		Int("queries", result.Statistics.QueriesRun).
		Int("paths_found", result.Statistics.PathsFound).
		Int64("runtime_ms", result.Statistics.RuntimeMS).
		Msg("Shortest-path queries completed")

	return result, nil
}

// getMemoryUsage returns current memory usage in MB
func getMemoryUsage() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}
