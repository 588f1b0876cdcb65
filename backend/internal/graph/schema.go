package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"movie-graph/backend/internal/constants"
	apperrors "movie-graph/backend/pkg/errors"
	"go.uber.org/zap"
)

// ============================================================================
// Schema and Maintenance
// ============================================================================

// EnsureSchema creates the text indexes backing title and name searches.
// Safe to run on every start.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	statements := []string{
		fmt.Sprintf("CREATE TEXT INDEX %s IF NOT EXISTS FOR (m:Movie) ON (m.title)", constants.MovieTitleIndex),
		fmt.Sprintf("CREATE TEXT INDEX %s IF NOT EXISTS FOR (p:Person) ON (p.name)", constants.PersonNameIndex),
	}

	for _, stmt := range statements {
		result, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return apperrors.NewGraphQueryFailed("ensure schema", err)
		}
		if _, err := result.Consume(ctx); err != nil {
			return apperrors.NewGraphQueryFailed("ensure schema", err)
		}
	}

	r.logger.Info("Schema ensured",
		zap.String("movie_index", constants.MovieTitleIndex),
		zap.String("person_index", constants.PersonNameIndex),
	)
	return nil
}

// DeleteAll removes every Movie and Person node with their relationships
func (r *Repository) DeleteAll(ctx context.Context) error {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (n)
		WHERE n:Movie OR n:Person
		DETACH DELETE n
	`, nil)
	if err != nil {
		return apperrors.NewGraphQueryFailed("delete all", err)
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return apperrors.NewGraphQueryFailed("delete all", err)
	}

	r.logger.Warn("Catalog cleared",
		zap.Int("nodes_deleted", summary.Counters().NodesDeleted()),
		zap.Int("relationships_deleted", summary.Counters().RelationshipsDeleted()),
	)
	return nil
}
