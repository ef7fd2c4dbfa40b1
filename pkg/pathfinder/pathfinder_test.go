package pathfinder

import (
	"container/heap"
	"context"
	"errors"
	"testing"

	"github.com/gilchrisn/costar-graph-service/pkg/bipartite"
)

type creditRow struct {
	actor string
	title string
	year  int
}

// Helper to build a bipartite graph from credit rows
func buildGraph(t *testing.T, weighted bool, rows []creditRow) *bipartite.Graph {
	t.Helper()
	opts := bipartite.DefaultLoadOptions()
	opts.Weighted = weighted
	g := bipartite.NewGraph(opts)
	for _, r := range rows {
		if err := g.AddCredit(bipartite.Credit{Actor: r.actor, Title: r.title, Year: r.year}); err != nil {
			t.Fatalf("AddCredit(%s, %s, %d) failed: %v", r.actor, r.title, r.year, err)
		}
	}
	return g
}

func testConfig() *Config {
	config := NewConfig()
	config.Set("logging.level", "disabled")
	return config
}

func TestPathQueueOrdering(t *testing.T) {
	pq := &pathQueue{}
	heap.Init(pq)
	heap.Push(pq, pathItem{actor: 0, dist: 2, name: "A", prevName: "A"})
	heap.Push(pq, pathItem{actor: 1, dist: 1, name: "C", prevName: "S"})
	heap.Push(pq, pathItem{actor: 2, dist: 1, name: "B", prevName: "S"})
	heap.Push(pq, pathItem{actor: 3, dist: 1, name: "Z", prevName: "A"})

	// Distance first, then previous-actor name, then own name
	expected := []string{"Z", "B", "C", "A"}
	for i, want := range expected {
		item := heap.Pop(pq).(pathItem)
		if item.name != want {
			t.Errorf("pop %d: expected %s, got %s", i, want, item.name)
		}
	}
}

func TestFindPathDirect(t *testing.T) {
	g := buildGraph(t, false, []creditRow{
		{"A", "M", 2000},
		{"B", "M", 2000},
	})
	engine := NewEngine(g)

	path, err := engine.FindPath("A", "B")
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}

	if path.Distance != 1 {
		t.Errorf("Expected distance 1, got %d", path.Distance)
	}
	if len(path.Steps) != 1 {
		t.Fatalf("Expected 1 step, got %d", len(path.Steps))
	}
	if got := path.String(); got != "(A)--[M#@2000]-->(B)" {
		t.Errorf("Unexpected chain: %s", got)
	}
}

func TestFindPathTwoHops(t *testing.T) {
	g := buildGraph(t, false, []creditRow{
		{"A", "M", 2000},
		{"B", "M", 2000},
		{"B", "N", 2001},
		{"C", "N", 2001},
	})
	engine := NewEngine(g)

	path, err := engine.FindPath("A", "C")
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}

	if path.Distance != 2 {
		t.Errorf("Expected distance 2, got %d", path.Distance)
	}
	if got := path.String(); got != "(A)--[M#@2000]-->(B)--[N#@2001]-->(C)" {
		t.Errorf("Unexpected chain: %s", got)
	}
}

func TestFindPathSameActor(t *testing.T) {
	g := buildGraph(t, false, []creditRow{
		{"A", "M", 2000},
		{"B", "M", 2000},
	})
	engine := NewEngine(g)

	path, err := engine.FindPath("A", "A")
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}

	if path.Distance != 0 {
		t.Errorf("Expected distance 0, got %d", path.Distance)
	}
	if len(path.Steps) != 0 {
		t.Errorf("Expected no steps, got %d", len(path.Steps))
	}
	if got := path.String(); got != "(A)" {
		t.Errorf("Unexpected chain: %s", got)
	}
}

func TestFindPathUnknownActor(t *testing.T) {
	g := buildGraph(t, false, []creditRow{
		{"A", "M", 2000},
		{"B", "M", 2000},
	})
	engine := NewEngine(g)

	if _, err := engine.FindPath("Z", "B"); !errors.Is(err, ErrUnknownActor) {
		t.Errorf("Expected ErrUnknownActor for start, got %v", err)
	}
	if _, err := engine.FindPath("A", "Z"); !errors.Is(err, ErrUnknownActor) {
		t.Errorf("Expected ErrUnknownActor for end, got %v", err)
	}
}

func TestFindPathNoPath(t *testing.T) {
	g := buildGraph(t, false, []creditRow{
		{"A", "M", 2000},
		{"B", "M", 2000},
		{"C", "N", 2001},
		{"D", "N", 2001},
	})
	engine := NewEngine(g)

	if _, err := engine.FindPath("A", "D"); !errors.Is(err, ErrNoPath) {
		t.Errorf("Expected ErrNoPath, got %v", err)
	}
}

// Two equal-length routes through different intermediates must resolve
// to the lexicographically smaller intermediate, regardless of the
// order the credits were loaded in.
func TestFindPathTieBreak(t *testing.T) {
	fork := []creditRow{
		{"S", "M1", 2000},
		{"B", "M1", 2000},
		{"S", "M2", 2000},
		{"C", "M2", 2000},
		{"B", "M3", 2000},
		{"E", "M3", 2000},
		{"C", "M4", 2000},
		{"E", "M4", 2000},
	}
	reversed := []creditRow{
		{"S", "M2", 2000},
		{"C", "M2", 2000},
		{"S", "M1", 2000},
		{"B", "M1", 2000},
		{"C", "M4", 2000},
		{"E", "M4", 2000},
		{"B", "M3", 2000},
		{"E", "M3", 2000},
	}

	for name, rows := range map[string][]creditRow{"Insertion": fork, "ReversedInsertion": reversed} {
		t.Run(name, func(t *testing.T) {
			engine := NewEngine(buildGraph(t, false, rows))
			path, err := engine.FindPath("S", "E")
			if err != nil {
				t.Fatalf("FindPath failed: %v", err)
			}
			if got := path.String(); got != "(S)--[M1#@2000]-->(B)--[M3#@2000]-->(E)" {
				t.Errorf("Expected route through B, got %s", got)
			}

			// Re-running on the same engine must reproduce the chain exactly
			again, err := engine.FindPath("S", "E")
			if err != nil {
				t.Fatalf("Second FindPath failed: %v", err)
			}
			if again.String() != path.String() {
				t.Errorf("Repeat query diverged: %s vs %s", path.String(), again.String())
			}
		})
	}
}

// When two frontier vertices tie on distance, the one reached through
// the smaller previous actor wins even if its own name is larger.
func TestFindPathTieBreakPrevActorFirst(t *testing.T) {
	g := buildGraph(t, false, []creditRow{
		{"S", "M1", 2000},
		{"B", "M1", 2000},
		{"S", "M2", 2000},
		{"C", "M2", 2000},
		{"B", "M3", 2000},
		{"Z", "M3", 2000},
		{"C", "M4", 2000},
		{"Y", "M4", 2000},
		{"Z", "M5", 2000},
		{"E", "M5", 2000},
		{"Y", "M6", 2000},
		{"E", "M6", 2000},
	})
	engine := NewEngine(g)

	path, err := engine.FindPath("S", "E")
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if got := path.String(); got != "(S)--[M1#@2000]-->(B)--[M3#@2000]-->(Z)--[M5#@2000]-->(E)" {
		t.Errorf("Expected route through B and Z, got %s", got)
	}
}

func TestFindPathWeighted(t *testing.T) {
	rows := []creditRow{
		{"S", "Old", 1990},
		{"E", "Old", 1990},
		{"S", "RecentA", 2018},
		{"X", "RecentA", 2018},
		{"X", "RecentB", 2018},
		{"E", "RecentB", 2018},
	}

	t.Run("UnweightedTakesDirectEdge", func(t *testing.T) {
		engine := NewEngine(buildGraph(t, false, rows))
		path, err := engine.FindPath("S", "E")
		if err != nil {
			t.Fatalf("FindPath failed: %v", err)
		}
		if path.Distance != 1 {
			t.Errorf("Expected distance 1, got %d", path.Distance)
		}
		if got := path.String(); got != "(S)--[Old#@1990]-->(E)" {
			t.Errorf("Expected direct route, got %s", got)
		}
	})

	t.Run("WeightedAvoidsOldMovie", func(t *testing.T) {
		// Old#@1990 weighs 29, the two 2018 hops weigh 1 each
		engine := NewEngine(buildGraph(t, true, rows))
		path, err := engine.FindPath("S", "E")
		if err != nil {
			t.Fatalf("FindPath failed: %v", err)
		}
		if path.Distance != 2 {
			t.Errorf("Expected distance 2, got %d", path.Distance)
		}
		if got := path.String(); got != "(S)--[RecentA#@2018]-->(X)--[RecentB#@2018]-->(E)" {
			t.Errorf("Expected route through X, got %s", got)
		}
	})
}

func TestFindPathFirstSharedMovieKept(t *testing.T) {
	// Equal-weight parallel movies: the first one loaded labels the hop
	g := buildGraph(t, false, []creditRow{
		{"A", "First", 2000},
		{"B", "First", 2000},
		{"A", "Second", 2001},
		{"B", "Second", 2001},
	})
	engine := NewEngine(g)

	path, err := engine.FindPath("A", "B")
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if path.Steps[0].Movie != "First#@2000" {
		t.Errorf("Expected First#@2000, got %s", path.Steps[0].Movie)
	}
}

func TestRunBatch(t *testing.T) {
	g := buildGraph(t, false, []creditRow{
		{"A", "M", 2000},
		{"B", "M", 2000},
		{"C", "N", 2001},
	})
	pairs := [][2]string{
		{"A", "B"},
		{"A", "C"},
		{"A", "Zed"},
	}

	result, err := Run(g, pairs, testConfig(), context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Statistics.QueriesRun != 3 {
		t.Errorf("Expected 3 queries run, got %d", result.Statistics.QueriesRun)
	}
	if result.Statistics.PathsFound != 1 {
		t.Errorf("Expected 1 path found, got %d", result.Statistics.PathsFound)
	}
	if len(result.Queries) != 3 {
		t.Fatalf("Expected 3 query results, got %d", len(result.Queries))
	}

	if result.Queries[0].Path == nil || result.Queries[0].Err != nil {
		t.Error("First query should have a path and no error")
	}
	if !errors.Is(result.Queries[1].Err, ErrNoPath) {
		t.Errorf("Second query should fail with ErrNoPath, got %v", result.Queries[1].Err)
	}
	if result.Queries[1].Path != nil {
		t.Error("Failed query should have nil path")
	}
	if !errors.Is(result.Queries[2].Err, ErrUnknownActor) {
		t.Errorf("Third query should fail with ErrUnknownActor, got %v", result.Queries[2].Err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	g := buildGraph(t, false, []creditRow{
		{"A", "M", 2000},
		{"B", "M", 2000},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(g, [][2]string{{"A", "B"}}, testConfig(), ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	config := NewConfig()

	if config.Weighted() {
		t.Error("Expected weighted false by default")
	}
	if config.ReferenceYear() != 2018 {
		t.Errorf("Expected reference year 2018, got %d", config.ReferenceYear())
	}
	if config.LogLevel() != "info" {
		t.Errorf("Expected log level info, got %s", config.LogLevel())
	}
	if !config.EnableProgress() {
		t.Error("Expected progress enabled by default")
	}

	config.Set("graph.weighted", true)
	config.Set("graph.reference_year", 2025)
	opts := config.LoadOptions()
	if !opts.Weighted || opts.ReferenceYear != 2025 {
		t.Errorf("LoadOptions did not pick up overrides: %+v", opts)
	}
}
