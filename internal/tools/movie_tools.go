// In file: internal/tools/movie_tools.go
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dileep-u-k/moviebot/internal/tmdb"
)

// movieArgs is the argument shape shared by every per-movie tool.
type movieArgs struct {
	MovieID  int    `json:"movie_id"`
	Language string `json:"language"`
}

func movieSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]*JSONSchema{
			"movie_id": movieIDParam(),
			"language": languageParam(),
		},
		Required: []string{"movie_id"},
	}
}

func parseMovieArgs(toolName, arguments string) (movieArgs, error) {
	var args movieArgs
	if err := decodeArgs(toolName, arguments, &args); err != nil {
		return args, err
	}
	if args.MovieID <= 0 {
		return args, &ToolError{Message: "Error: Movie ID is required."}
	}
	return args, nil
}

// --- Movie Details Tool ---

// MovieDetailsTool retrieves the full record of one movie.
type MovieDetailsTool struct{ tmdbTool }

var _ ToolExecutor = (*MovieDetailsTool)(nil)

func NewMovieDetailsTool(client *tmdb.Client, settings Settings) *MovieDetailsTool {
	return &MovieDetailsTool{newTMDBTool(client, settings)}
}

func (dt *MovieDetailsTool) Definition() Tool {
	return NewFunctionTool("get_movie_details", "Retrieve detailed information about a movie", movieSchema())
}

func (dt *MovieDetailsTool) Execute(ctx context.Context, arguments string) (string, error) {
	args, err := parseMovieArgs("get_movie_details", arguments)
	if err != nil {
		return "", err
	}

	var m tmdb.MovieDetails
	if err := dt.client.MovieDetails(ctx, args.MovieID, dt.language(args.Language)).Decode(&m); err != nil {
		return "", toolErrorf(err, "No details found for movie ID %d.", args.MovieID)
	}
	if m.ID == 0 {
		return fmt.Sprintf("No details found for movie ID %d.", args.MovieID), nil
	}

	runtime := notAvailable
	if m.Runtime > 0 {
		runtime = fmt.Sprintf("%d", m.Runtime)
	}

	var b strings.Builder
	b.WriteString("Movie details:\n")
	fmt.Fprintf(&b, "id: %d\n", m.ID)
	fmt.Fprintf(&b, "title: %s\n", m.Title)
	fmt.Fprintf(&b, "original_title: %s\n", orNA(m.OriginalTitle))
	fmt.Fprintf(&b, "release_date: %s\n", orNA(m.ReleaseDate))
	fmt.Fprintf(&b, "runtime: %s minutes\n", runtime)
	fmt.Fprintf(&b, "overview: %s\n", orNA(m.Overview))
	fmt.Fprintf(&b, "vote_average: %s\n", formatFloat(m.VoteAverage))
	fmt.Fprintf(&b, "vote_count: %d\n", m.VoteCount)
	fmt.Fprintf(&b, "popularity: %s\n", formatFloat(m.Popularity))
	fmt.Fprintf(&b, "genres: %s\n", joinNames(m.Genres))
	fmt.Fprintf(&b, "original_language: %s\n", orNA(m.OriginalLanguage))
	fmt.Fprintf(&b, "spoken_languages: %s\n", joinNames(m.SpokenLanguages))
	fmt.Fprintf(&b, "production_companies: %s\n", joinNames(m.ProductionCompanies))
	fmt.Fprintf(&b, "budget: $%d\n", m.Budget)
	fmt.Fprintf(&b, "revenue: $%d\n", m.Revenue)
	fmt.Fprintf(&b, "status: %s\n", orNA(m.Status))
	fmt.Fprintf(&b, "tagline: %s", orNA(m.Tagline))
	return b.String(), nil
}

// --- Movie Recommendations Tool ---

// MovieRecommendationsTool lists recommendations based on one movie.
type MovieRecommendationsTool struct{ tmdbTool }

var _ ToolExecutor = (*MovieRecommendationsTool)(nil)

func NewMovieRecommendationsTool(client *tmdb.Client, settings Settings) *MovieRecommendationsTool {
	return &MovieRecommendationsTool{newTMDBTool(client, settings)}
}

func (rt *MovieRecommendationsTool) Definition() Tool {
	return NewFunctionTool("get_movie_recommendations", "Get recommendations based on a specific movie", movieSchema())
}

func (rt *MovieRecommendationsTool) Execute(ctx context.Context, arguments string) (string, error) {
	args, err := parseMovieArgs("get_movie_recommendations", arguments)
	if err != nil {
		return "", err
	}

	var page tmdb.MoviePage
	if err := rt.client.MovieRecommendations(ctx, args.MovieID, rt.language(args.Language)).Decode(&page); err != nil {
		return "", toolErrorf(err, "Error getting recommendations: %s", errorMessage(err))
	}
	if len(page.Results) == 0 {
		return fmt.Sprintf("No recommendations found for movie ID %d.", args.MovieID), nil
	}
	return movieList("Recommended movies:", page.Results, rt.settings.ListLimit, false), nil
}

// --- Similar Movies Tool ---

// SimilarMoviesTool lists movies similar to one movie.
type SimilarMoviesTool struct{ tmdbTool }

var _ ToolExecutor = (*SimilarMoviesTool)(nil)

func NewSimilarMoviesTool(client *tmdb.Client, settings Settings) *SimilarMoviesTool {
	return &SimilarMoviesTool{newTMDBTool(client, settings)}
}

func (st *SimilarMoviesTool) Definition() Tool {
	return NewFunctionTool("get_similar_movies", "Retrieve movies similar to a specified movie", movieSchema())
}

func (st *SimilarMoviesTool) Execute(ctx context.Context, arguments string) (string, error) {
	args, err := parseMovieArgs("get_similar_movies", arguments)
	if err != nil {
		return "", err
	}

	var page tmdb.MoviePage
	if err := st.client.SimilarMovies(ctx, args.MovieID, st.language(args.Language)).Decode(&page); err != nil {
		return "", toolErrorf(err, "Error getting similar movies: %s", errorMessage(err))
	}
	if len(page.Results) == 0 {
		return fmt.Sprintf("No similar movies found for movie ID %d.", args.MovieID), nil
	}
	return movieList("Similar movies:", page.Results, st.settings.ListLimit, false), nil
}

// --- Movie Credits Tool ---

// MovieCreditsTool retrieves cast and crew of one movie.
type MovieCreditsTool struct{ tmdbTool }

var _ ToolExecutor = (*MovieCreditsTool)(nil)

func NewMovieCreditsTool(client *tmdb.Client, settings Settings) *MovieCreditsTool {
	return &MovieCreditsTool{newTMDBTool(client, settings)}
}

func (ct *MovieCreditsTool) Definition() Tool {
	return NewFunctionTool("get_movie_credits", "Retrieve cast and crew information for a movie", movieSchema())
}

func (ct *MovieCreditsTool) Execute(ctx context.Context, arguments string) (string, error) {
	args, err := parseMovieArgs("get_movie_credits", arguments)
	if err != nil {
		return "", err
	}

	var credits tmdb.Credits
	if err := ct.client.MovieCredits(ctx, args.MovieID, ct.language(args.Language)).Decode(&credits); err != nil {
		return "", toolErrorf(err, "Error getting movie credits: %s", errorMessage(err))
	}
	if credits.Cast == nil && credits.Crew == nil {
		return fmt.Sprintf("No credits found for movie ID %d.", args.MovieID), nil
	}

	limit := ct.settings.ExtendedListLimit
	var b strings.Builder
	b.WriteString("Movie credits:\n")
	if credits.Cast != nil {
		b.WriteString("cast:\n")
		for i, member := range credits.Cast {
			if i >= limit {
				break
			}
			fmt.Fprintf(&b, "name: %s character: %s\n", member.Name, orNA(member.Character))
		}
	}
	if credits.Crew != nil {
		b.WriteString("crew:\n")
		for i, member := range credits.Crew {
			if i >= limit {
				break
			}
			fmt.Fprintf(&b, "name: %s department: %s job: %s\n", member.Name, orNA(member.Department), orNA(member.Job))
		}
	}
	return b.String(), nil
}
