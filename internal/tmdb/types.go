// In file: internal/tmdb/types.go
package tmdb

// Movie is the list-item shape shared by search, discover, trending,
// recommendations, similar, upcoming and now-playing responses.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	GenreIDs    []int   `json:"genre_ids"`
	Popularity  float64 `json:"popularity"`
	Overview    string  `json:"overview"`
}

// MoviePage is a paginated list of movies.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Named is any TMDB record that only matters for its name (genres,
// companies, spoken languages).
type Named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the response of /movie/{id}.
type MovieDetails struct {
	ID                  int     `json:"id"`
	Title               string  `json:"title"`
	OriginalTitle       string  `json:"original_title"`
	ReleaseDate         string  `json:"release_date"`
	Runtime             int     `json:"runtime"`
	Overview            string  `json:"overview"`
	VoteAverage         float64 `json:"vote_average"`
	VoteCount           int     `json:"vote_count"`
	Popularity          float64 `json:"popularity"`
	Genres              []Named `json:"genres"`
	OriginalLanguage    string  `json:"original_language"`
	SpokenLanguages     []Named `json:"spoken_languages"`
	ProductionCompanies []Named `json:"production_companies"`
	Budget              int64   `json:"budget"`
	Revenue             int64   `json:"revenue"`
	Status              string  `json:"status"`
	Tagline             string  `json:"tagline"`
}

// CastMember is one entry of a movie's cast.
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
}

// CrewMember is one entry of a movie's crew.
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Job        string `json:"job"`
}

// Credits is the response of /movie/{id}/credits. Cast and Crew are nil when
// TMDB omits the key, which is distinct from an empty list.
type Credits struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// PersonCredit is a movie a person appeared in.
type PersonCredit struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Character  string  `json:"character"`
	Popularity float64 `json:"popularity"`
}

// Person is the response of /person/{id} with movie_credits appended.
type Person struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Biography          string `json:"biography"`
	Birthday           string `json:"birthday"`
	PlaceOfBirth       string `json:"place_of_birth"`
	KnownForDepartment string `json:"known_for_department"`
	MovieCredits       *struct {
		Cast []PersonCredit `json:"cast"`
	} `json:"movie_credits"`
}

// GenreList is the response of /genre/movie/list.
type GenreList struct {
	Genres []Named `json:"genres"`
}

// MediaType values returned by multi search.
const (
	MediaMovie  = "movie"
	MediaTV     = "tv"
	MediaPerson = "person"
)

// KnownFor is a title a person is known for; movies carry Title, shows Name.
type KnownFor struct {
	Title string `json:"title"`
	Name  string `json:"name"`
}

// MultiResult is one heterogeneous multi-search hit.
type MultiResult struct {
	ID                 int        `json:"id"`
	MediaType          string     `json:"media_type"`
	Title              string     `json:"title"`
	Name               string     `json:"name"`
	ReleaseDate        string     `json:"release_date"`
	FirstAirDate       string     `json:"first_air_date"`
	GenreIDs           []int      `json:"genre_ids"`
	KnownForDepartment string     `json:"known_for_department"`
	KnownFor           []KnownFor `json:"known_for"`
}

// MultiSearchPage is the response of /search/multi.
type MultiSearchPage struct {
	Page    int           `json:"page"`
	Results []MultiResult `json:"results"`
}
