package movies

import "context"

// Repository is the graph store as seen by the catalog service.
// Read methods take a ready-made regular expression pattern and a result cap.
type Repository interface {
	SearchMovies(ctx context.Context, pattern string, limit int) ([]*Movie, error)
	FetchMovie(ctx context.Context, id int64) (*Movie, error)
	MovieExists(ctx context.Context, id int64) (bool, error)
	SearchActors(ctx context.Context, pattern string, limit int) ([]*Actor, error)

	// WithinWrite runs fn as one atomic write unit. Any error returned by fn
	// discards every change made through the Writer.
	WithinWrite(ctx context.Context, fn func(w Writer) error) error
}

// Writer holds the write primitives available inside a write unit
type Writer interface {
	CreateMovie(ctx context.Context, m *Movie) (int64, error)
	UpdateMovie(ctx context.Context, id int64, m *Movie) error
	DeleteMovie(ctx context.Context, id int64) error

	InsertActor(ctx context.Context, a *Actor) (int64, error)
	MergeActor(ctx context.Context, a *Actor) error

	AddCastMember(ctx context.Context, movieID int64, cm *CastMember) (int64, error)
	// UpdateCastMember rewrites the roles of an existing edge between the
	// movie and cm's actor. It reports false when no such edge exists.
	UpdateCastMember(ctx context.Context, movieID int64, cm *CastMember) (bool, error)
	RemoveCastMember(ctx context.Context, movieID, castID int64) error
	// PruneCast removes every cast edge of the movie whose id is not in keep
	PruneCast(ctx context.Context, movieID int64, keep []int64) error
}
