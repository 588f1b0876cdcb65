package constants

// Domain rules
const (
	// MinReleaseYear is the exclusive lower bound for a movie's release year
	MinReleaseYear = 1900
)

// Search caps
const (
	// MovieSearchLimit is the maximum number of movies returned by a title search
	MovieSearchLimit = 10
	// ActorSearchLimit is the maximum number of actors returned by a name search
	ActorSearchLimit = 5
)

// Graph schema index names
const (
	MovieTitleIndex = "movie_title"
	PersonNameIndex = "person_name"
)
