package graph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"movie-graph/backend/internal/movies"
)

// movieRecord is one movie row as returned by the store, with the optional
// (relationship, actor) pairs already collected in actor id order.
type movieRecord struct {
	ID       int64
	Title    string
	Tagline  string
	Released int
	Cast     []castRecord
}

// castRecord is one ACTED_IN edge together with the Person at its start
type castRecord struct {
	CastID  int64
	Roles   []string
	ActorID int64
	Name    string
	Born    *int
}

// decodeMovie reads the id/title/tagline/released columns and, when present,
// the collected "cast" column.
func decodeMovie(record *neo4j.Record) movieRecord {
	mr := movieRecord{
		ID:       getInt64FromRecord(record, "id"),
		Title:    getStringFromRecord(record, "title"),
		Tagline:  getStringFromRecord(record, "tagline"),
		Released: getIntFromRecord(record, "released"),
	}

	for _, item := range getSliceFromRecord(record, "cast") {
		castMap, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		// OPTIONAL MATCH rows without an edge collapse to maps of nulls
		if castMap["cast_id"] == nil || castMap["actor_id"] == nil {
			continue
		}
		mr.Cast = append(mr.Cast, castRecord{
			CastID:  getInt64FromMap(castMap, "cast_id"),
			Roles:   getStringSliceFromMap(castMap, "roles"),
			ActorID: getInt64FromMap(castMap, "actor_id"),
			Name:    getStringFromMap(castMap, "name"),
			Born:    getOptionalIntFromMap(castMap, "born"),
		})
	}

	return mr
}

func decodeActor(record *neo4j.Record) *movies.Actor {
	return &movies.Actor{
		ID:   int64Ptr(getInt64FromRecord(record, "id")),
		Name: getStringFromRecord(record, "name"),
		Born: getOptionalIntFromRecord(record, "born"),
	}
}

// toMovie assembles the domain object. Actors are rebuilt per cast member
// from their node id; two cast members played by the same person carry
// distinct *Actor values with the same ID.
func (mr movieRecord) toMovie() *movies.Movie {
	m := &movies.Movie{
		ID:       int64Ptr(mr.ID),
		Title:    mr.Title,
		Tagline:  mr.Tagline,
		Released: mr.Released,
		Cast:     make([]*movies.CastMember, 0, len(mr.Cast)),
	}
	for _, c := range mr.Cast {
		m.Cast = append(m.Cast, &movies.CastMember{
			ID:    int64Ptr(c.CastID),
			Roles: c.Roles,
			Actor: &movies.Actor{
				ID:   int64Ptr(c.ActorID),
				Name: c.Name,
				Born: c.Born,
			},
		})
	}
	return m
}
