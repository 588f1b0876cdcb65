package graph

import (
	"context"
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"movie-graph/backend/internal/movies"
	apperrors "movie-graph/backend/pkg/errors"
	"go.uber.org/zap"
)

// ============================================================================
// Write Operations
// ============================================================================

// txWriter implements movies.Writer on top of one explicit transaction
type txWriter struct {
	tx     neo4j.ExplicitTransaction
	logger *zap.Logger
}

var _ movies.Writer = (*txWriter)(nil)

const createMovieQuery = `
	CREATE (m:Movie {title: $title, tagline: $tagline, released: $released})
	RETURN id(m) AS id
`

const updateMovieQuery = `
	MATCH (m:Movie)
	WHERE id(m) = $id
	SET m.title = $title,
	    m.tagline = $tagline,
	    m.released = $released
	RETURN id(m) AS id
`

// DETACH DELETE drops the movie's ACTED_IN edges; the Person nodes stay
const deleteMovieQuery = `
	MATCH (m:Movie)
	WHERE id(m) = $id
	DETACH DELETE m
	RETURN count(*) AS deleted
`

const insertActorQuery = `
	CREATE (p:Person {name: $name, born: $born})
	RETURN id(p) AS id
`

// Properties missing from the payload keep their stored value
const mergeActorQuery = `
	MATCH (p:Person)
	WHERE id(p) = $id
	SET p.name = coalesce($name, p.name),
	    p.born = coalesce($born, p.born)
	RETURN id(p) AS id, p.name AS name, p.born AS born
`

const addCastMemberQuery = `
	MATCH (p:Person), (m:Movie)
	WHERE id(p) = $actorID AND id(m) = $movieID
	CREATE (p)-[r:ACTED_IN {roles: $roles}]->(m)
	RETURN id(r) AS id
`

const movieExistsInTxQuery = `
	OPTIONAL MATCH (m:Movie)
	WHERE id(m) = $movieID
	RETURN count(m) > 0 AS found
`

const updateCastMemberQuery = `
	MATCH (p:Person)-[r:ACTED_IN]->(m:Movie)
	WHERE id(r) = $castID AND id(m) = $movieID AND id(p) = $actorID
	SET r.roles = $roles
	RETURN id(r) AS id
`

const removeCastMemberQuery = `
	MATCH (:Person)-[r:ACTED_IN]->(m:Movie)
	WHERE id(r) = $castID AND id(m) = $movieID
	DELETE r
`

const pruneCastQuery = `
	MATCH (:Person)-[r:ACTED_IN]->(m:Movie)
	WHERE id(m) = $movieID AND NOT id(r) IN $keep
	DELETE r
	RETURN count(*) AS removed
`

var errNoRow = errors.New("query returned no row")

func movieParams(m *movies.Movie) map[string]interface{} {
	return map[string]interface{}{
		"title":    m.Title,
		"tagline":  optionalString(m.Tagline),
		"released": int64(m.Released),
	}
}

// optionalString maps a blank value to null so the property is not stored
func optionalString(v string) interface{} {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}

// CreateMovie creates the movie node and returns its id
func (w *txWriter) CreateMovie(ctx context.Context, m *movies.Movie) (int64, error) {
	record, err := first(ctx, w.tx, createMovieQuery, movieParams(m))
	if err != nil {
		return 0, apperrors.NewGraphQueryFailed("create movie", err)
	}
	if record == nil {
		return 0, apperrors.NewGraphQueryFailed("create movie", errNoRow)
	}
	return getInt64FromRecord(record, "id"), nil
}

// UpdateMovie overwrites the movie node's properties
func (w *txWriter) UpdateMovie(ctx context.Context, id int64, m *movies.Movie) error {
	params := movieParams(m)
	params["id"] = id

	record, err := first(ctx, w.tx, updateMovieQuery, params)
	if err != nil {
		return apperrors.NewGraphQueryFailed("update movie", err)
	}
	if record == nil {
		return apperrors.NewNotFound("movie", id)
	}
	return nil
}

// DeleteMovie removes the movie node and every edge attached to it
func (w *txWriter) DeleteMovie(ctx context.Context, id int64) error {
	record, err := first(ctx, w.tx, deleteMovieQuery, map[string]interface{}{"id": id})
	if err != nil {
		return apperrors.NewGraphQueryFailed("delete movie", err)
	}
	if record == nil || getInt64FromRecord(record, "deleted") == 0 {
		return apperrors.NewNotFound("movie", id)
	}
	return nil
}

// InsertActor creates a new person node
func (w *txWriter) InsertActor(ctx context.Context, a *movies.Actor) (int64, error) {
	record, err := first(ctx, w.tx, insertActorQuery, map[string]interface{}{
		"name": a.Name,
		"born": optionalInt(a.Born),
	})
	if err != nil {
		return 0, apperrors.NewGraphQueryFailed("insert actor", err)
	}
	if record == nil {
		return 0, apperrors.NewGraphQueryFailed("insert actor", errNoRow)
	}
	id := getInt64FromRecord(record, "id")
	w.logger.Debug("Actor inserted", zap.Int64("actor_id", id), zap.String("name", a.Name))
	return id, nil
}

// MergeActor updates an existing person node with the properties a carries
// and copies the stored values back onto a
func (w *txWriter) MergeActor(ctx context.Context, a *movies.Actor) error {
	if a.ID == nil {
		return apperrors.NewValidationFailed("an actor without identifier cannot be merged")
	}
	record, err := first(ctx, w.tx, mergeActorQuery, map[string]interface{}{
		"id":   *a.ID,
		"name": optionalString(a.Name),
		"born": optionalInt(a.Born),
	})
	if err != nil {
		return apperrors.NewGraphQueryFailed("merge actor", err)
	}
	if record == nil {
		return apperrors.NewNotFound("actor", *a.ID)
	}
	a.Name = getStringFromRecord(record, "name")
	a.Born = getOptionalIntFromRecord(record, "born")
	return nil
}

// AddCastMember creates the ACTED_IN edge from cm's actor to the movie
func (w *txWriter) AddCastMember(ctx context.Context, movieID int64, cm *movies.CastMember) (int64, error) {
	if cm.Actor == nil || cm.Actor.ID == nil {
		return 0, apperrors.NewValidationFailed("the actor must be stored before the character")
	}
	record, err := first(ctx, w.tx, addCastMemberQuery, map[string]interface{}{
		"actorID": *cm.Actor.ID,
		"movieID": movieID,
		"roles":   cm.Roles,
	})
	if err != nil {
		return 0, apperrors.NewGraphQueryFailed("add cast member", err)
	}
	if record == nil {
		return 0, w.missingCastEndpoint(ctx, movieID, *cm.Actor.ID)
	}
	return getInt64FromRecord(record, "id"), nil
}

// missingCastEndpoint reports which end of a cast edge does not exist
func (w *txWriter) missingCastEndpoint(ctx context.Context, movieID, actorID int64) error {
	record, err := first(ctx, w.tx, movieExistsInTxQuery, map[string]interface{}{"movieID": movieID})
	if err != nil {
		return apperrors.NewGraphQueryFailed("add cast member", err)
	}
	if record == nil || !getBoolFromRecord(record, "found") {
		return apperrors.NewNotFound("movie", movieID)
	}
	return apperrors.NewNotFound("actor", actorID)
}

// UpdateCastMember sets new roles on an existing edge
func (w *txWriter) UpdateCastMember(ctx context.Context, movieID int64, cm *movies.CastMember) (bool, error) {
	if cm.ID == nil || cm.Actor == nil || cm.Actor.ID == nil {
		return false, nil
	}
	record, err := first(ctx, w.tx, updateCastMemberQuery, map[string]interface{}{
		"castID":  *cm.ID,
		"movieID": movieID,
		"actorID": *cm.Actor.ID,
		"roles":   cm.Roles,
	})
	if err != nil {
		return false, apperrors.NewGraphQueryFailed("update cast member", err)
	}
	return record != nil, nil
}

// RemoveCastMember deletes one ACTED_IN edge of the movie
func (w *txWriter) RemoveCastMember(ctx context.Context, movieID, castID int64) error {
	err := exec(ctx, w.tx, removeCastMemberQuery, map[string]interface{}{
		"castID":  castID,
		"movieID": movieID,
	})
	if err != nil {
		return apperrors.NewGraphQueryFailed("remove cast member", err)
	}
	return nil
}

// PruneCast deletes the movie's edges whose ids are not listed in keep
func (w *txWriter) PruneCast(ctx context.Context, movieID int64, keep []int64) error {
	if keep == nil {
		// a null list would make the IN test null and keep everything
		keep = []int64{}
	}
	record, err := first(ctx, w.tx, pruneCastQuery, map[string]interface{}{
		"movieID": movieID,
		"keep":    keep,
	})
	if err != nil {
		return apperrors.NewGraphQueryFailed("prune cast", err)
	}
	if record != nil {
		w.logger.Debug("Cast pruned",
			zap.Int64("movie_id", movieID),
			zap.Int64("removed", getInt64FromRecord(record, "removed")),
		)
	}
	return nil
}
