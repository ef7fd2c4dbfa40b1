package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gilchrisn/costar-graph-service/pkg/bipartite"
	"github.com/gilchrisn/costar-graph-service/pkg/kcore"
	"github.com/gilchrisn/costar-graph-service/pkg/pathfinder"
	"github.com/gilchrisn/costar-graph-service/pkg/predictor"
	"github.com/gilchrisn/costar-graph-service/pkg/projection"
)

// Session is one graph-analysis run: a loaded bipartite graph, the
// derived structures shared by the algorithms, and a run ID carried in
// every session log event. All analysis state lives here; there is no
// package-level mutable state anywhere in the module.
type Session struct {
	ID    string
	Graph *bipartite.Graph
	Stats *projection.Stats

	logger zerolog.Logger
	matrix *projection.Matrix
}

// LoadSession loads a credits file once and prepares the session. The
// dense projection is built lazily on first k-core or predictor use
// and shared afterwards.
func LoadSession(dataPath string, opts bipartite.LoadOptions, logger zerolog.Logger) (*Session, error) {
	id := uuid.New().String()
	log := logger.With().Str("session_id", id).Logger()

	log.Info().
		Str("data_file", dataPath).
		Bool("weighted", opts.Weighted).
		Int("reference_year", opts.ReferenceYear).
		Msg("Loading credits")

	graph, err := bipartite.LoadCreditsFile(dataPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load credits: %w", err)
	}
	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	log.Info().
		Int("actors", graph.NumActors()).
		Int("movies", graph.NumMovies()).
		Msg("Credits loaded")

	return &Session{
		ID:     id,
		Graph:  graph,
		logger: log,
	}, nil
}

// Matrix returns the dense projection, building it and the dataset
// statistics on first use.
func (s *Session) Matrix() *projection.Matrix {
	if s.matrix == nil {
		s.matrix = projection.BuildMatrix(s.Graph)
		s.Stats = projection.ComputeStats(s.Graph, s.matrix)
		s.logger.Info().
			Int("actors", s.Stats.Actors).
			Int("edges", s.Stats.Edges).
			Float64("density", s.Stats.Density).
			Float64("avg_degree", s.Stats.AvgDegree).
			Int("components", s.Stats.ConnectedComponents).
			Msg("Projection built")
	}
	return s.matrix
}

// ShortestPaths runs the query pairs against the session graph.
func (s *Session) ShortestPaths(pairs [][2]string, config *pathfinder.Config, ctx context.Context) (*pathfinder.Result, error) {
	s.logger.Info().Int("pairs", len(pairs)).Msg("Starting shortest-path analysis")

	result, err := pathfinder.Run(s.Graph, pairs, config, ctx)
	if err != nil {
		return nil, fmt.Errorf("shortest-path analysis failed: %w", err)
	}

	s.logger.Info().
		Int("paths_found", result.Statistics.PathsFound).
		Msg("Shortest-path analysis completed")
	return result, nil
}

// KCore prunes the session projection to its k-core.
func (s *Session) KCore(k int, config *kcore.Config, ctx context.Context) (*kcore.Result, error) {
	s.logger.Info().Int("k", k).Msg("Starting k-core analysis")

	result, err := kcore.Run(s.Matrix(), k, config, ctx)
	if err != nil {
		return nil, fmt.Errorf("k-core analysis failed: %w", err)
	}

	s.logger.Info().
		Int("members", len(result.Members)).
		Msg("K-core analysis completed")
	return result, nil
}

// Predictions ranks collaboration candidates against the session projection.
func (s *Session) Predictions(targets []string, mode predictor.Mode, config *predictor.Config, ctx context.Context) (*predictor.Result, error) {
	s.logger.Info().
		Int("targets", len(targets)).
		Str("mode", mode.String()).
		Msg("Starting prediction analysis")

	result, err := predictor.Run(s.Matrix(), targets, mode, config, ctx)
	if err != nil {
		return nil, fmt.Errorf("prediction analysis failed: %w", err)
	}

	s.logger.Info().
		Int("targets", result.Statistics.TargetsRun).
		Msg("Prediction analysis completed")
	return result, nil
}
