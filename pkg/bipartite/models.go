package bipartite

import (
	"fmt"
)

// KeySeparator joins a movie title and year into a compound key. The
// sequence never occurs in natural titles, so same-titled films from
// different years stay distinct.
const KeySeparator = "#@"

// DefaultReferenceYear is the dataset epoch used by the weighted edge
// formula. Newer datasets override it through LoadOptions.
const DefaultReferenceYear = 2018

// MovieKey builds the compound key identifying a movie release.
func MovieKey(title string, year int) string {
	return fmt.Sprintf("%s%s%d", title, KeySeparator, year)
}

// Credit is one parsed input record: an actor appearing in a movie.
type Credit struct {
	Actor string `json:"actor"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// Movie holds one side of the bipartite relation: the edge weight shared
// by every co-star pair of the movie, and the credited actors in file order.
type Movie struct {
	Key    string   `json:"key"`
	Year   int      `json:"year"`
	Weight int      `json:"weight"`
	Cast   []string `json:"cast"`
}

// LoadOptions control edge weight computation during loading.
type LoadOptions struct {
	Weighted      bool `json:"weighted"`
	ReferenceYear int  `json:"reference_year"`
}

// DefaultLoadOptions returns the unweighted defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Weighted:      false,
		ReferenceYear: DefaultReferenceYear,
	}
}

// MalformedRecordError reports an input record that violates the loader
// contract. Any such record aborts the whole load; no partial graphs.
type MalformedRecordError struct {
	Line   int    `json:"line"`
	Record string `json:"record"`
	Reason string `json:"reason"`
}

func (e MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %s (record: %q)", e.Line, e.Reason, e.Record)
}

// Graph is the bipartite actor-movie relation. Both maps append on
// re-insertion, never replace, and the first-seen order slices define the
// stable actor/movie ordinal bijections every derived structure indexes by.
type Graph struct {
	ActorMovies map[string][]string `json:"actor_movies"` // actor name -> movie keys, insertion order
	Movies      map[string]*Movie   `json:"movies"`       // movie key -> movie

	actorOrder []string
	movieOrder []string
	opts       LoadOptions
}

// NewGraph creates an empty bipartite graph with the given load options.
func NewGraph(opts LoadOptions) *Graph {
	return &Graph{
		ActorMovies: make(map[string][]string),
		Movies:      make(map[string]*Movie),
		actorOrder:  make([]string, 0),
		movieOrder:  make([]string, 0),
		opts:        opts,
	}
}

// AddCredit inserts one record into both sides of the relation. The movie
// weight is computed on first sight of its key:
//
//	weighted ? (ReferenceYear - year + 1) : 1
//
// A weighted year past the reference year would produce a non-positive
// edge weight, which the shortest-path search cannot tolerate, so it is
// rejected here rather than discovered mid-query.
func (g *Graph) AddCredit(c Credit) error {
	weight := 1
	if g.opts.Weighted {
		weight = g.opts.ReferenceYear - c.Year + 1
		if weight <= 0 {
			return fmt.Errorf("movie %q year %d exceeds reference year %d", c.Title, c.Year, g.opts.ReferenceYear)
		}
	}

	key := MovieKey(c.Title, c.Year)

	if _, seen := g.ActorMovies[c.Actor]; !seen {
		g.actorOrder = append(g.actorOrder, c.Actor)
	}
	g.ActorMovies[c.Actor] = append(g.ActorMovies[c.Actor], key)

	movie, seen := g.Movies[key]
	if !seen {
		movie = &Movie{Key: key, Year: c.Year, Weight: weight}
		g.Movies[key] = movie
		g.movieOrder = append(g.movieOrder, key)
	}
	movie.Cast = append(movie.Cast, c.Actor)

	return nil
}

// NumActors returns the number of distinct actors.
func (g *Graph) NumActors() int {
	return len(g.actorOrder)
}

// NumMovies returns the number of distinct movie keys.
func (g *Graph) NumMovies() int {
	return len(g.movieOrder)
}

// HasActor reports whether the name occurs in the loaded data.
func (g *Graph) HasActor(name string) bool {
	_, ok := g.ActorMovies[name]
	return ok
}

// MoviesOf returns the movie keys of an actor in insertion order.
func (g *Graph) MoviesOf(name string) []string {
	return g.ActorMovies[name]
}

// Movie returns the movie for a compound key.
func (g *Graph) Movie(key string) (*Movie, bool) {
	m, ok := g.Movies[key]
	return m, ok
}

// ActorOrder returns actor names in first-seen order. The slice backs the
// ordinal bijection; callers must not reorder it.
func (g *Graph) ActorOrder() []string {
	return g.actorOrder
}

// MovieOrder returns movie keys in first-seen order.
func (g *Graph) MovieOrder() []string {
	return g.movieOrder
}

// Options returns the load options the graph was built with.
func (g *Graph) Options() LoadOptions {
	return g.opts
}

// Validate checks cross-reference consistency between the two maps and
// rejects empty identifiers on either side.
func (g *Graph) Validate() error {
	if len(g.ActorMovies) != len(g.actorOrder) {
		return fmt.Errorf("actor map and order slice inconsistent: %d vs %d", len(g.ActorMovies), len(g.actorOrder))
	}
	if len(g.Movies) != len(g.movieOrder) {
		return fmt.Errorf("movie map and order slice inconsistent: %d vs %d", len(g.Movies), len(g.movieOrder))
	}

	for actor, keys := range g.ActorMovies {
		if actor == "" {
			return fmt.Errorf("graph contains an empty actor name")
		}
		for _, key := range keys {
			if _, ok := g.Movies[key]; !ok {
				return fmt.Errorf("actor %q references unknown movie key %q", actor, key)
			}
		}
	}

	for key, movie := range g.Movies {
		if key == "" {
			return fmt.Errorf("graph contains an empty movie key")
		}
		if len(movie.Cast) == 0 {
			return fmt.Errorf("movie %q has no credited actors", key)
		}
		if !g.opts.Weighted && movie.Weight != 1 {
			return fmt.Errorf("unweighted movie %q has weight %d", key, movie.Weight)
		}
		if movie.Weight <= 0 {
			return fmt.Errorf("non-positive weight %d for movie %q", movie.Weight, key)
		}
		for _, actor := range movie.Cast {
			if _, ok := g.ActorMovies[actor]; !ok {
				return fmt.Errorf("movie %q credits unknown actor %q", key, actor)
			}
		}
	}

	return nil
}
