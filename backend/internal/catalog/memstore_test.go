package catalog

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"sync"

	"movie-graph/backend/internal/movies"
	apperrors "movie-graph/backend/pkg/errors"
)

// memStore is an in-memory stand-in for the Neo4j repository. Node and
// relationship ids come from separate counters, as in Neo4j. WithinWrite
// snapshots the whole graph and restores it when fn fails.
type memStore struct {
	mu sync.Mutex

	nextNode int64
	nextRel  int64
	movies   map[int64]memMovie
	people   map[int64]memPerson
	edges    map[int64]memEdge

	// failOn makes the named writer method fail on its failAfter-th call (1-based)
	failOn    string
	failAfter int
	calls     map[string]int

	writeUnits int
}

type memMovie struct {
	title    string
	tagline  string
	released int
}

type memPerson struct {
	name string
	born *int
}

type memEdge struct {
	person int64
	movie  int64
	roles  []string
}

var errInjected = errors.New("injected store failure")

func newMemStore() *memStore {
	return &memStore{
		nextNode: 100,
		nextRel:  5000,
		movies:   map[int64]memMovie{},
		people:   map[int64]memPerson{},
		edges:    map[int64]memEdge{},
		calls:    map[string]int{},
	}
}

// fullMatch evaluates a store pattern with RE2. RE2 folds case over Unicode
// without a flag, so the u flag is dropped.
func fullMatch(pattern, s string) bool {
	pattern = strings.Replace(pattern, "(?iu)", "(?i)", 1)
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func (s *memStore) SearchMovies(ctx context.Context, pattern string, limit int) ([]*movies.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := []*movies.Movie{}
	for id, m := range s.movies {
		if fullMatch(pattern, m.title) {
			found = append(found, s.toMovie(id, m))
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Title < found[j].Title })
	if len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (s *memStore) FetchMovie(ctx context.Context, id int64) (*movies.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mm, ok := s.movies[id]
	if !ok {
		return nil, apperrors.NewNotFound("movie", id)
	}
	m := s.toMovie(id, mm)
	for relID, e := range s.edges {
		if e.movie != id {
			continue
		}
		p := s.people[e.person]
		m.Cast = append(m.Cast, &movies.CastMember{
			ID:    ptr(relID),
			Roles: append([]string(nil), e.roles...),
			Actor: &movies.Actor{ID: ptr(e.person), Name: p.name, Born: p.born},
		})
	}
	sort.Slice(m.Cast, func(i, j int) bool { return *m.Cast[i].Actor.ID < *m.Cast[j].Actor.ID })
	return m, nil
}

func (s *memStore) MovieExists(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.movies[id]
	return ok, nil
}

func (s *memStore) SearchActors(ctx context.Context, pattern string, limit int) ([]*movies.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := []*movies.Actor{}
	for id, p := range s.people {
		if fullMatch(pattern, p.name) {
			found = append(found, &movies.Actor{ID: ptr(id), Name: p.name, Born: p.born})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	if len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (s *memStore) WithinWrite(ctx context.Context, fn func(w movies.Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeUnits++
	saved := s.snapshot()
	if err := fn(&memWriter{s: s}); err != nil {
		s.restore(saved)
		return err
	}
	return nil
}

func (s *memStore) toMovie(id int64, m memMovie) *movies.Movie {
	return &movies.Movie{
		ID:       ptr(id),
		Title:    m.title,
		Tagline:  m.tagline,
		Released: m.released,
		Cast:     []*movies.CastMember{},
	}
}

type memSnapshot struct {
	nextNode, nextRel int64
	movies            map[int64]memMovie
	people            map[int64]memPerson
	edges             map[int64]memEdge
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		nextNode: s.nextNode,
		nextRel:  s.nextRel,
		movies:   make(map[int64]memMovie, len(s.movies)),
		people:   make(map[int64]memPerson, len(s.people)),
		edges:    make(map[int64]memEdge, len(s.edges)),
	}
	for k, v := range s.movies {
		snap.movies[k] = v
	}
	for k, v := range s.people {
		snap.people[k] = v
	}
	for k, v := range s.edges {
		snap.edges[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.nextNode, s.nextRel = snap.nextNode, snap.nextRel
	s.movies, s.people, s.edges = snap.movies, snap.people, snap.edges
}

func (s *memStore) movieCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movies)
}

func (s *memStore) personCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.people)
}

func (s *memStore) edgeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edges)
}

// memWriter runs with memStore.mu already held by WithinWrite
type memWriter struct {
	s *memStore
}

func (w *memWriter) fail(method string) error {
	w.s.calls[method]++
	if w.s.failOn == method && w.s.calls[method] >= w.s.failAfter {
		return apperrors.NewGraphQueryFailed(method, errInjected)
	}
	return nil
}

func (w *memWriter) CreateMovie(ctx context.Context, m *movies.Movie) (int64, error) {
	if err := w.fail("CreateMovie"); err != nil {
		return 0, err
	}
	w.s.nextNode++
	id := w.s.nextNode
	w.s.movies[id] = memMovie{title: m.Title, tagline: m.Tagline, released: m.Released}
	return id, nil
}

func (w *memWriter) UpdateMovie(ctx context.Context, id int64, m *movies.Movie) error {
	if err := w.fail("UpdateMovie"); err != nil {
		return err
	}
	if _, ok := w.s.movies[id]; !ok {
		return apperrors.NewNotFound("movie", id)
	}
	w.s.movies[id] = memMovie{title: m.Title, tagline: m.Tagline, released: m.Released}
	return nil
}

func (w *memWriter) DeleteMovie(ctx context.Context, id int64) error {
	if err := w.fail("DeleteMovie"); err != nil {
		return err
	}
	if _, ok := w.s.movies[id]; !ok {
		return apperrors.NewNotFound("movie", id)
	}
	delete(w.s.movies, id)
	for relID, e := range w.s.edges {
		if e.movie == id {
			delete(w.s.edges, relID)
		}
	}
	return nil
}

func (w *memWriter) InsertActor(ctx context.Context, a *movies.Actor) (int64, error) {
	if err := w.fail("InsertActor"); err != nil {
		return 0, err
	}
	w.s.nextNode++
	id := w.s.nextNode
	w.s.people[id] = memPerson{name: a.Name, born: a.Born}
	return id, nil
}

func (w *memWriter) MergeActor(ctx context.Context, a *movies.Actor) error {
	if err := w.fail("MergeActor"); err != nil {
		return err
	}
	p, ok := w.s.people[*a.ID]
	if !ok {
		return apperrors.NewNotFound("actor", *a.ID)
	}
	if strings.TrimSpace(a.Name) != "" {
		p.name = a.Name
	}
	if a.Born != nil {
		p.born = a.Born
	}
	w.s.people[*a.ID] = p
	a.Name, a.Born = p.name, p.born
	return nil
}

func (w *memWriter) AddCastMember(ctx context.Context, movieID int64, cm *movies.CastMember) (int64, error) {
	if err := w.fail("AddCastMember"); err != nil {
		return 0, err
	}
	if _, ok := w.s.movies[movieID]; !ok {
		return 0, apperrors.NewNotFound("movie", movieID)
	}
	if _, ok := w.s.people[*cm.Actor.ID]; !ok {
		return 0, apperrors.NewNotFound("actor", *cm.Actor.ID)
	}
	w.s.nextRel++
	id := w.s.nextRel
	w.s.edges[id] = memEdge{person: *cm.Actor.ID, movie: movieID, roles: append([]string(nil), cm.Roles...)}
	return id, nil
}

func (w *memWriter) UpdateCastMember(ctx context.Context, movieID int64, cm *movies.CastMember) (bool, error) {
	if err := w.fail("UpdateCastMember"); err != nil {
		return false, err
	}
	e, ok := w.s.edges[*cm.ID]
	if !ok || e.movie != movieID || e.person != *cm.Actor.ID {
		return false, nil
	}
	e.roles = append([]string(nil), cm.Roles...)
	w.s.edges[*cm.ID] = e
	return true, nil
}

func (w *memWriter) RemoveCastMember(ctx context.Context, movieID, castID int64) error {
	if err := w.fail("RemoveCastMember"); err != nil {
		return err
	}
	if e, ok := w.s.edges[castID]; ok && e.movie == movieID {
		delete(w.s.edges, castID)
	}
	return nil
}

func (w *memWriter) PruneCast(ctx context.Context, movieID int64, keep []int64) error {
	if err := w.fail("PruneCast"); err != nil {
		return err
	}
	kept := make(map[int64]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}
	for relID, e := range w.s.edges {
		if e.movie == movieID && !kept[relID] {
			delete(w.s.edges, relID)
		}
	}
	return nil
}

func ptr(v int64) *int64 {
	return &v
}
