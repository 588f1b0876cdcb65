package movies

import (
	"fmt"
	"strings"

	"movie-graph/backend/internal/constants"
	apperrors "movie-graph/backend/pkg/errors"
)

// Actor is a real person, stored as a :Person node. Actors are shared between
// movies and outlive every movie that references them.
type Actor struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name"`
	Born *int   `json:"born,omitempty"`
}

// CastMember is an ACTED_IN relationship from an Actor to the owning Movie.
// It only exists as part of a Movie.
type CastMember struct {
	ID    *int64   `json:"id,omitempty"`
	Roles []string `json:"roles"`
	Actor *Actor   `json:"actor"`
}

// Movie is a film, stored as a :Movie node, together with its ordered cast
type Movie struct {
	ID       *int64        `json:"id,omitempty"`
	Title    string        `json:"title"`
	Tagline  string        `json:"tagline,omitempty"`
	Released int           `json:"released"`
	Cast     []*CastMember `json:"cast"`
}

// AddCastMember validates a new cast member and appends it to the cast.
// An invalid cast member leaves the movie untouched.
func (m *Movie) AddCastMember(roles []string, actor *Actor) (*CastMember, error) {
	cm := &CastMember{
		Roles: roles,
		Actor: actor,
	}
	if err := cm.Validate(); err != nil {
		return nil, err
	}
	m.Cast = append(m.Cast, cm)
	return cm, nil
}

// RemoveCastMember drops cm from the cast by identity. Absent members are ignored.
func (m *Movie) RemoveCastMember(cm *CastMember) {
	for i, c := range m.Cast {
		if c == cm {
			m.Cast = append(m.Cast[:i], m.Cast[i+1:]...)
			return
		}
	}
}

// Validate checks title, release year and then every cast member in order,
// reporting the first rule that fails.
func (m *Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return apperrors.NewValidationFailed("a title is required")
	}
	if m.Released <= constants.MinReleaseYear {
		return apperrors.NewValidationFailed(fmt.Sprintf("the release year must be greater than %d", constants.MinReleaseYear))
	}
	for i, cm := range m.Cast {
		if cm == nil {
			return apperrors.NewValidationFailed(fmt.Sprintf("cast member %d: must not be empty", i+1))
		}
		if msg := cm.violation(); msg != "" {
			return apperrors.NewValidationFailed(fmt.Sprintf("cast member %d: %s", i+1, msg))
		}
	}
	return nil
}

// Validate checks that the cast member has at least one named role and an
// actor. A new actor needs a full name; a stored one is referenced by id.
func (cm *CastMember) Validate() error {
	if msg := cm.violation(); msg != "" {
		return apperrors.NewValidationFailed(msg)
	}
	return nil
}

func (cm *CastMember) violation() string {
	if !hasRole(cm.Roles) {
		return "at least one role is required for the character"
	}
	if cm.Actor == nil {
		return "an actor is required for the character"
	}
	if cm.Actor.ID == nil && strings.TrimSpace(cm.Actor.Name) == "" {
		return "the actor's full name is required"
	}
	return ""
}

// PlayedBy reports whether the cast member is played by the actor with that full name
func (cm *CastMember) PlayedBy(name string) bool {
	return cm.Actor != nil && cm.Actor.Name == name
}

// FindCastMember returns the first cast member played by the named actor
func (m *Movie) FindCastMember(actorName string) (*CastMember, bool) {
	for _, cm := range m.Cast {
		if cm != nil && cm.PlayedBy(actorName) {
			return cm, true
		}
	}
	return nil, false
}

func hasRole(roles []string) bool {
	for _, r := range roles {
		if strings.TrimSpace(r) != "" {
			return true
		}
	}
	return false
}
