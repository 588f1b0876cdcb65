package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"movie-graph/backend/internal/movies"
	apperrors "movie-graph/backend/pkg/errors"
	"go.uber.org/zap"
)

// ============================================================================
// Read Operations
// ============================================================================

const searchMoviesQuery = `
	MATCH (m:Movie)
	WHERE m.title =~ $pattern
	RETURN id(m) AS id, m.title AS title, m.tagline AS tagline, m.released AS released
	ORDER BY m.title
	LIMIT $limit
`

// Movie, its incoming ACTED_IN edges (if any) and their people, in one round
// trip. Pairs are ordered by the person's node id before collecting.
const fetchMovieQuery = `
	MATCH (m:Movie)
	WHERE id(m) = $id
	OPTIONAL MATCH (m)<-[r:ACTED_IN]-(p:Person)
	WITH m, r, p
	ORDER BY id(p)
	RETURN id(m) AS id, m.title AS title, m.tagline AS tagline, m.released AS released,
		collect({cast_id: id(r), roles: r.roles, actor_id: id(p), name: p.name, born: p.born}) AS cast
	LIMIT 1
`

const movieExistsQuery = `
	MATCH (m:Movie)
	WHERE id(m) = $id
	RETURN count(m) > 0 AS found
`

const searchActorsQuery = `
	MATCH (p:Person)
	WHERE p.name =~ $pattern
	RETURN id(p) AS id, p.name AS name, p.born AS born
	ORDER BY p.name
	LIMIT $limit
`

// SearchMovies returns movies whose title matches the regular expression.
// Relationships are not traversed: every returned movie has an empty cast.
func (r *Repository) SearchMovies(ctx context.Context, pattern string, limit int) ([]*movies.Movie, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, searchMoviesQuery, map[string]interface{}{
		"pattern": pattern,
		"limit":   int64(limit),
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("search movies", err)
	}

	found := []*movies.Movie{}
	for result.Next(ctx) {
		found = append(found, decodeMovie(result.Record()).toMovie())
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("search movies", err)
	}

	r.logger.Debug("Movies searched",
		zap.String("pattern", pattern),
		zap.Int("results", len(found)),
	)
	return found, nil
}

// FetchMovie returns the movie with its full cast, or a not-found error
func (r *Repository) FetchMovie(ctx context.Context, id int64) (*movies.Movie, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, fetchMovieQuery, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("fetch movie", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, apperrors.NewGraphQueryFailed("fetch movie", err)
		}
		return nil, apperrors.NewNotFound("movie", id)
	}

	return decodeMovie(result.Record()).toMovie(), nil
}

// MovieExists reports whether a movie node with that id exists
func (r *Repository) MovieExists(ctx context.Context, id int64) (bool, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, movieExistsQuery, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		return false, apperrors.NewGraphQueryFailed("check movie", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, apperrors.NewGraphQueryFailed("check movie", err)
	}
	exists := getBoolFromRecord(record, "found")
	return exists, nil
}

// SearchActors returns people whose name matches the regular expression
func (r *Repository) SearchActors(ctx context.Context, pattern string, limit int) ([]*movies.Actor, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, searchActorsQuery, map[string]interface{}{
		"pattern": pattern,
		"limit":   int64(limit),
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("search actors", err)
	}

	actors := []*movies.Actor{}
	for result.Next(ctx) {
		actors = append(actors, decodeActor(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("search actors", err)
	}

	return actors, nil
}
