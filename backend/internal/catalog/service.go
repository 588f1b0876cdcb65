package catalog

import (
	"context"
	"fmt"
	"regexp"

	"movie-graph/backend/internal/constants"
	"movie-graph/backend/internal/movies"
	apperrors "movie-graph/backend/pkg/errors"
	"movie-graph/backend/pkg/logger"
	"go.uber.org/zap"
)

// Service exposes the catalog queries and mutations. It keeps no state
// between calls; consistency comes from the store's transactions.
type Service struct {
	repo   movies.Repository
	logger *zap.Logger
}

// NewService creates a catalog service backed by repo
func NewService(repo movies.Repository) *Service {
	return &Service{
		repo:   repo,
		logger: logger.Get().Named("catalog"),
	}
}

// ContainsPattern turns raw search text into a case-insensitive "contains"
// regular expression. The text is matched literally. The store evaluates the
// pattern with Java regex, where case folding beyond ASCII needs the u flag.
func ContainsPattern(term string) string {
	return "(?iu).*" + regexp.QuoteMeta(term) + ".*"
}

// ============================================================================
// Queries
// ============================================================================

// SearchMovies returns up to constants.MovieSearchLimit movies whose title
// contains title, ignoring case. The cast of each result is always empty.
func (s *Service) SearchMovies(ctx context.Context, title string) ([]*movies.Movie, error) {
	found, err := s.repo.SearchMovies(ctx, ContainsPattern(title), constants.MovieSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return found, nil
}

// GetMovie returns the movie with its full cast ordered by actor id
func (s *Service) GetMovie(ctx context.Context, id int64) (*movies.Movie, error) {
	m, err := s.repo.FetchMovie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return m, nil
}

// SearchActors returns up to constants.ActorSearchLimit actors whose name
// contains name, ignoring case.
func (s *Service) SearchActors(ctx context.Context, name string) ([]*movies.Actor, error) {
	found, err := s.repo.SearchActors(ctx, ContainsPattern(name), constants.ActorSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search actors: %w", err)
	}
	return found, nil
}

// ============================================================================
// Mutations
// ============================================================================

// CreateMovie validates the payload and stores it with its cast in one write
// unit. The returned movie carries the store-assigned identifiers; the
// payload itself is left untouched.
func (s *Service) CreateMovie(ctx context.Context, payload *movies.Movie) (*movies.Movie, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	m := cloneMovie(payload)

	err := s.repo.WithinWrite(ctx, func(w movies.Writer) error {
		id, err := w.CreateMovie(ctx, m)
		if err != nil {
			return err
		}
		m.ID = &id

		for _, cm := range m.Cast {
			if err := s.addCastMember(ctx, w, id, cm); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.logger.Info("Movie created",
		zap.Int64("movie_id", *m.ID),
		zap.String("title", m.Title),
		zap.Int("cast", len(m.Cast)),
	)
	return m, nil
}

// UpdateMovie replaces the stored movie identified by id with the payload:
// attributes and the whole cast list. Stored cast members missing from the
// payload are removed; cast members without an identifier are created.
func (s *Service) UpdateMovie(ctx context.Context, id int64, payload *movies.Movie) (*movies.Movie, error) {
	exists, err := s.repo.MovieExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("movie", id)
	}

	if err := payload.Validate(); err != nil {
		return nil, err
	}
	m := cloneMovie(payload)
	m.ID = &id

	err = s.repo.WithinWrite(ctx, func(w movies.Writer) error {
		if err := w.UpdateMovie(ctx, id, m); err != nil {
			return err
		}

		keep := make([]int64, 0, len(m.Cast))
		for _, cm := range m.Cast {
			if cm.ID != nil {
				keep = append(keep, *cm.ID)
			}
		}
		if err := w.PruneCast(ctx, id, keep); err != nil {
			return err
		}

		for _, cm := range m.Cast {
			if cm.ID == nil {
				if err := s.addCastMember(ctx, w, id, cm); err != nil {
					return err
				}
				continue
			}
			if err := s.replaceCastMember(ctx, w, id, cm); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.logger.Info("Movie updated",
		zap.Int64("movie_id", id),
		zap.String("title", m.Title),
		zap.Int("cast", len(m.Cast)),
	)
	return m, nil
}

// DeleteMovie removes the movie and its cast edges, leaving the actors in
// place, and returns the movie as it was before deletion.
func (s *Service) DeleteMovie(ctx context.Context, id int64) (*movies.Movie, error) {
	m, err := s.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithinWrite(ctx, func(w movies.Writer) error {
		return w.DeleteMovie(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("delete movie: %w", err)
	}

	s.logger.Info("Movie deleted",
		zap.Int64("movie_id", id),
		zap.String("title", m.Title),
		zap.Int("cast", len(m.Cast)),
	)
	return m, nil
}

// upsertActor stores the actor referenced by a cast member. An actor with an
// identifier is merged into the existing node; one without is inserted and
// receives the new identifier, so the same *Actor shared by several cast
// members is only inserted once.
func (s *Service) upsertActor(ctx context.Context, w movies.Writer, a *movies.Actor) error {
	if a.ID != nil {
		return w.MergeActor(ctx, a)
	}
	id, err := w.InsertActor(ctx, a)
	if err != nil {
		return err
	}
	a.ID = &id
	return nil
}

func (s *Service) addCastMember(ctx context.Context, w movies.Writer, movieID int64, cm *movies.CastMember) error {
	if err := s.upsertActor(ctx, w, cm.Actor); err != nil {
		return err
	}
	castID, err := w.AddCastMember(ctx, movieID, cm)
	if err != nil {
		return err
	}
	cm.ID = &castID
	return nil
}

// replaceCastMember updates an existing edge in place. When the edge is gone
// or now points at a different actor it is dropped and recreated.
func (s *Service) replaceCastMember(ctx context.Context, w movies.Writer, movieID int64, cm *movies.CastMember) error {
	if err := s.upsertActor(ctx, w, cm.Actor); err != nil {
		return err
	}
	updated, err := w.UpdateCastMember(ctx, movieID, cm)
	if err != nil {
		return err
	}
	if updated {
		return nil
	}

	if err := w.RemoveCastMember(ctx, movieID, *cm.ID); err != nil {
		return err
	}
	castID, err := w.AddCastMember(ctx, movieID, cm)
	if err != nil {
		return err
	}
	cm.ID = &castID
	return nil
}

// cloneMovie deep-copies a movie. Cast members that share one *Actor in the
// source share one copy in the result.
func cloneMovie(src *movies.Movie) *movies.Movie {
	dst := *src
	dst.ID = cloneID(src.ID)
	dst.Cast = make([]*movies.CastMember, 0, len(src.Cast))

	actors := make(map[*movies.Actor]*movies.Actor)
	for _, cm := range src.Cast {
		actor, ok := actors[cm.Actor]
		if !ok {
			copied := *cm.Actor
			copied.ID = cloneID(cm.Actor.ID)
			actor = &copied
			actors[cm.Actor] = actor
		}
		dst.Cast = append(dst.Cast, &movies.CastMember{
			ID:    cloneID(cm.ID),
			Roles: append([]string(nil), cm.Roles...),
			Actor: actor,
		})
	}
	return &dst
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
