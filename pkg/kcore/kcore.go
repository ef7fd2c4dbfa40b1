package kcore

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/gilchrisn/costar-graph-service/pkg/projection"
)

// Statistics contains run performance metrics
type Statistics struct {
	Passes       int   `json:"passes"`
	Removed      int   `json:"removed"`
	RuntimeMS    int64 `json:"runtime_ms"`
	MemoryPeakMB int64 `json:"memory_peak_mb"`
}

// Result represents the k-core output
type Result struct {
	K          int        `json:"k"`
	Members    []string   `json:"members"`
	Statistics Statistics `json:"statistics"`
}

// Run prunes the projection down to its k-core: the maximal subset
// where every member keeps at least k neighbors inside the subset.
//
// Counts start at full-graph degrees. Each full sweep removes every
// live vertex whose count dropped below k, decrementing all its
// neighbors, until a sweep removes nothing. Removals cascade within a
// sweep in ascending ordinal order and are monotonic: a removed vertex
// is never restored. This is a repeated full-matrix sweep, not
// work-queue peeling: O(passes x V^2), intentionally simple.
func Run(matrix *projection.Matrix, k int, config *Config, ctx context.Context) (*Result, error) {
	startTime := time.Now()
	logger := config.CreateLogger()

	if k < 0 {
		return nil, fmt.Errorf("k must be non-negative, got %d", k)
	}

	n := matrix.Size()
	logger.Info().
		Int("actors", n).
		Int("edges", matrix.Edges()).
		Int("k", k).
		Msg("Starting k-core pruning")

	var tracker *PruneTracker
	if config.TraceFile() != "" {
		tracker = NewPruneTracker(config.TraceFile())
		defer tracker.Close()
	}

	// Seed counts with full-graph degrees
	counts := make([]int, n)
	for i := 0; i < n; i++ {
		counts[i] = matrix.Degree(i)
	}

	// A live count never drops below zero (a vertex loses at most one
	// count per neighbor), so -n is unreachable by legitimate decrements.
	sentinel := -n

	result := &Result{K: k}

	removedTotal := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		removedThisPass := 0
		for i := 0; i < n; i++ {
			if counts[i] >= k || counts[i] <= sentinel {
				continue
			}
			count := counts[i]
			for j := 0; j < n; j++ {
				if matrix.Connected(i, j) {
					counts[j]--
				}
			}
			counts[i] = sentinel
			removedThisPass++
			tracker.LogRemoval(result.Statistics.Passes+1, i, matrix.Name(i), count)
		}

		result.Statistics.Passes++
		removedTotal += removedThisPass

		if config.EnableProgress() {
			logger.Info().
				Int("pass", result.Statistics.Passes).
				Int("removed", removedThisPass).
				Int("remaining", n-removedTotal).
				Msg("Pruning pass completed")
		}

		if removedThisPass == 0 {
			break
		}
	}

	// Survivors, lexicographically sorted
	members := make([]string, 0, n-removedTotal)
	for i := 0; i < n; i++ {
		if counts[i] >= k {
			members = append(members, matrix.Name(i))
		}
	}
	sort.Strings(members)

	result.Members = members
	result.Statistics.Removed = removedTotal
	result.Statistics.RuntimeMS = time.Since(startTime).Milliseconds()
	result.Statistics.MemoryPeakMB = getMemoryUsage()

	logger.Info().
		Int("members", len(members)).
		Int("removed", removedTotal).
		Int("passes", result.Statistics.Passes).
		Int64("runtime_ms", result.Statistics.RuntimeMS).
		Msg("K-core pruning completed")

	return result, nil
}

// getMemoryUsage returns current memory usage in MB
func getMemoryUsage() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}
