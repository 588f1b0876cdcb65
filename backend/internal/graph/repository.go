package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"movie-graph/backend/internal/movies"
	apperrors "movie-graph/backend/pkg/errors"
	"movie-graph/backend/pkg/logger"
	"go.uber.org/zap"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

var _ movies.Repository = (*Repository)(nil)

// NewRepository creates a new graph repository. An empty database name
// uses the server's default database.
func NewRepository(driver neo4j.DriverWithContext, database string) *Repository {
	return &Repository{
		driver:   driver,
		database: database,
		logger:   logger.Get().Named("graph"),
	}
}

// Connect opens a driver and verifies the server is reachable
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	return driver, nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

func (r *Repository) newSession(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: r.database,
	})
}

// WithinWrite runs fn inside a single explicit transaction. The transaction
// commits only if fn returns nil; any error rolls back every statement fn ran.
// Explicit transactions are not retried by the driver.
func (r *Repository) WithinWrite(ctx context.Context, fn func(w movies.Writer) error) error {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		return apperrors.NewGraphQueryFailed("begin transaction", err)
	}
	defer tx.Close(ctx)

	if err := fn(&txWriter{tx: tx, logger: r.logger}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.logger.Warn("Rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewGraphQueryFailed("commit transaction", err)
	}
	return nil
}

// runner is satisfied by explicit and managed transactions
type runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (neo4j.ResultWithContext, error)
}

// first runs the query and returns its first record, or nil when the query
// produced no rows.
func first(ctx context.Context, run runner, query string, params map[string]any) (*neo4j.Record, error) {
	result, err := run.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if !result.Next(ctx) {
		return nil, result.Err()
	}
	record := result.Record()
	if _, err := result.Consume(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

// exec runs a statement whose rows are not needed
func exec(ctx context.Context, run runner, query string, params map[string]any) error {
	result, err := run.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}
