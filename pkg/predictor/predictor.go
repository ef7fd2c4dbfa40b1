package predictor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/gilchrisn/costar-graph-service/pkg/projection"
)

// ErrUnknownActor marks a query naming an actor absent from the loaded
// graph; per-query, callers test with errors.Is
var ErrUnknownActor = errors.New("predictor: unknown actor")

// Mode selects the candidate filter.
type Mode int

const (
	// FutureInteractions ranks current neighbors: actors the query actor
	// already shares a movie with, likeliest to interact again.
	FutureInteractions Mode = iota
	// NewCollaborations ranks non-neighbors: actors the query actor has
	// never shared a movie with.
	NewCollaborations
)

func (m Mode) String() string {
	switch m {
	case FutureInteractions:
		return "future_interactions"
	case NewCollaborations:
		return "new_collaborations"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// wantNeighbor is the adjacency value a candidate must have in this mode
func (m Mode) wantNeighbor() bool {
	return m == FutureInteractions
}

// Prediction holds the ranked candidates of one query actor.
type Prediction struct {
	Actor      string   `json:"actor"`
	Candidates []string `json:"candidates"`
	Err        error    `json:"-"`
}

// Statistics contains run performance metrics
type Statistics struct {
	TargetsRun   int   `json:"targets_run"`
	RuntimeMS    int64 `json:"runtime_ms"`
	MemoryPeakMB int64 `json:"memory_peak_mb"`
}

// Result represents the prediction output
type Result struct {
	Mode        Mode         `json:"mode"`
	Predictions []Prediction `json:"predictions"`
	Statistics  Statistics   `json:"statistics"`
}

// candidate pairs a mutual-neighbor count with a name for ranking
type candidate struct {
	count int
	name  string
}

// Run scores candidates for every target actor sequentially. Unknown
// targets are recorded as per-query errors and do not abort the batch.
func Run(matrix *projection.Matrix, targets []string, mode Mode, config *Config, ctx context.Context) (*Result, error) {
	startTime := time.Now()
	logger := config.CreateLogger()

	maxPredictions := config.MaxPredictions()
	if maxPredictions <= 0 {
		return nil, fmt.Errorf("max predictions must be positive, got %d", maxPredictions)
	}

	logger.Info().
		Int("actors", matrix.Size()).
		Int("targets", len(targets)).
		Str("mode", mode.String()).
		Msg("Starting link prediction")

	result := &Result{
		Mode:        mode,
		Predictions: make([]Prediction, 0, len(targets)),
	}

	for _, target := range targets {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		prediction := Prediction{Actor: target}
		ord, ok := matrix.Ordinal(target)
		if !ok {
			prediction.Err = fmt.Errorf("%w: %q", ErrUnknownActor, target)
			logger.Warn().Str("actor", target).Msg("Unknown query actor")
			result.Predictions = append(result.Predictions, prediction)
			continue
		}

		if config.EnableProgress() {
			logger.Debug().Str("actor", target).Msg("Computing predictions")
		}
		prediction.Candidates = rank(matrix, ord, mode, maxPredictions)
		result.Predictions = append(result.Predictions, prediction)
	}

	result.Statistics.TargetsRun = len(result.Predictions)
	result.Statistics.RuntimeMS = time.Since(startTime).Milliseconds()
	result.Statistics.MemoryPeakMB = getMemoryUsage()

	logger.Info().
		Int("targets", result.Statistics.TargetsRun).
		Int64("runtime_ms", result.Statistics.RuntimeMS).
		Msg("Link prediction completed")

	return result, nil
}

// rank scores the eligible candidates of one query ordinal. The
// mutual-neighbor count of a candidate is the dot product of the two
// adjacency rows: the number of third actors adjacent to both. Self is
// excluded, candidates are filtered by the mode's neighbor predicate,
// zero counts are dropped, ordering is by descending count then
// ascending name, and the list truncates at max.
func rank(matrix *projection.Matrix, ord int, mode Mode, max int) []string {
	n := matrix.Size()
	want := mode.wantNeighbor()

	candidates := make([]candidate, 0)
	for c := 0; c < n; c++ {
		if c == ord {
			continue
		}
		if matrix.Connected(ord, c) != want {
			continue
		}
		count := matrix.MutualCount(ord, c)
		if count == 0 {
			continue
		}
		candidates = append(candidates, candidate{count: count, name: matrix.Name(c)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.name)
	}

	return names
}

// getMemoryUsage returns current memory usage in MB
func getMemoryUsage() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}
