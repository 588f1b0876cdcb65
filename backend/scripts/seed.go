package main

import (
	"context"
	"flag"
	"fmt"

	"movie-graph/backend/internal/catalog"
	"movie-graph/backend/internal/graph"
	"movie-graph/backend/internal/movies"
	"movie-graph/backend/pkg/config"
	"movie-graph/backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	reset := flag.Bool("reset", false, "Delete every movie and person before seeding")
	fixtures := flag.Bool("fixtures", true, "Load the sample movies")
	workers := flag.Int("workers", 2, "Number of fixture groups loaded concurrently")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	ctx := context.Background()
	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}

	repo := graph.NewRepository(driver, cfg.Neo4jDatabase)
	defer repo.Close(context.Background())

	log.Info("Creating indexes...")
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to create indexes", zap.Error(err))
	}

	if *reset {
		log.Info("Deleting existing data...")
		if err := repo.DeleteAll(ctx); err != nil {
			log.Fatal("Failed to delete existing data", zap.Error(err))
		}
	}

	if !*fixtures {
		log.Info("Seeding completed (schema only)")
		return
	}

	svc := catalog.NewService(repo)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for _, group := range fixtureGroups() {
		group := group
		g.Go(func() error {
			return loadGroup(gctx, svc, log, group)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("Failed to load fixtures", zap.Error(err))
	}

	log.Info("Seeding completed successfully")
}

// loadGroup creates the movies of one group in order. Actors stored by an
// earlier movie are reused by name in the later ones.
func loadGroup(ctx context.Context, svc *catalog.Service, log *zap.Logger, group []*movies.Movie) error {
	known := make(map[string]int64)
	for _, m := range group {
		for _, cm := range m.Cast {
			if id, ok := known[cm.Actor.Name]; ok {
				cm.Actor.ID = &id
			}
		}

		created, err := svc.CreateMovie(ctx, m)
		if err != nil {
			return fmt.Errorf("seed %q: %w", m.Title, err)
		}
		for _, cm := range created.Cast {
			known[cm.Actor.Name] = *cm.Actor.ID
		}
		log.Info("Seeded movie", zap.String("title", created.Title), zap.Int64("movie_id", *created.ID))
	}
	return nil
}

func year(v int) *int { return &v }

func fixtureGroups() [][]*movies.Movie {
	keanu := func() *movies.Actor { return &movies.Actor{Name: "Keanu Reeves", Born: year(1964)} }
	carrie := func() *movies.Actor { return &movies.Actor{Name: "Carrie-Anne Moss", Born: year(1967)} }
	laurence := func() *movies.Actor { return &movies.Actor{Name: "Laurence Fishburne", Born: year(1961)} }
	hugo := func() *movies.Actor { return &movies.Actor{Name: "Hugo Weaving", Born: year(1960)} }

	matrix := func(title, tagline string, released int) *movies.Movie {
		return &movies.Movie{
			Title:    title,
			Tagline:  tagline,
			Released: released,
			Cast: []*movies.CastMember{
				{Roles: []string{"Neo"}, Actor: keanu()},
				{Roles: []string{"Trinity"}, Actor: carrie()},
				{Roles: []string{"Morpheus"}, Actor: laurence()},
				{Roles: []string{"Agent Smith"}, Actor: hugo()},
			},
		}
	}

	return [][]*movies.Movie{
		{
			matrix("The Matrix", "Welcome to the Real World", 1999),
			matrix("The Matrix Reloaded", "Free your mind", 2003),
			matrix("The Matrix Revolutions", "Everything that has a beginning has an end", 2003),
		},
		{
			{
				Title:    "Nueve reinas",
				Released: 2000,
				Cast: []*movies.CastMember{
					{Roles: []string{"Marcos"}, Actor: &movies.Actor{Name: "Ricardo Darín", Born: year(1957)}},
					{Roles: []string{"Juan"}, Actor: &movies.Actor{Name: "Gastón Pauls", Born: year(1972)}},
				},
			},
		},
		{
			{
				Title:    "Tiempo de valientes",
				Released: 2005,
				Cast: []*movies.CastMember{
					{Roles: []string{"Alfredo Díaz"}, Actor: &movies.Actor{Name: "Luis Luque", Born: year(1956)}},
					{Roles: []string{"Mariano Silverstein"}, Actor: &movies.Actor{Name: "Diego Peretti", Born: year(1963)}},
				},
			},
		},
		{
			{
				Title:    "Plata Dulce",
				Released: 1982,
				Cast: []*movies.CastMember{
					{Roles: []string{"Carlos Bonifatti"}, Actor: &movies.Actor{Name: "Federico Luppi", Born: year(1936)}},
					{Roles: []string{"Rubén Molinuevo"}, Actor: &movies.Actor{Name: "Julio de Grazia", Born: year(1929)}},
				},
			},
		},
	}
}
