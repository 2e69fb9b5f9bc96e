// In file: internal/tmdb/endpoints.go
package tmdb

import (
	"context"
	"fmt"
)

// DefaultLanguage is used whenever a caller leaves Language empty.
const DefaultLanguage = "en-US"

func lang(l string) string {
	if l == "" {
		return DefaultLanguage
	}
	return l
}

// SearchOptions filters /search/movie.
type SearchOptions struct {
	Query              string
	Language           string
	Page               int
	IncludeAdult       bool
	Region             *string
	Year               *int
	PrimaryReleaseYear *int
}

// SearchMovie searches movies by title.
func (c *Client) SearchMovie(ctx context.Context, opts SearchOptions) *Result {
	return c.Get(ctx, "/search/movie", Params{
		"query":                opts.Query,
		"language":             lang(opts.Language),
		"page":                 pageOrFirst(opts.Page),
		"include_adult":        opts.IncludeAdult,
		"region":               opts.Region,
		"year":                 opts.Year,
		"primary_release_year": opts.PrimaryReleaseYear,
	})
}

// MovieDetails fetches the full record of one movie.
func (c *Client) MovieDetails(ctx context.Context, movieID int, language string) *Result {
	return c.Get(ctx, fmt.Sprintf("/movie/%d", movieID), Params{"language": lang(language)})
}

// DiscoverOptions filters /discover/movie. Pointer fields are optional.
type DiscoverOptions struct {
	Language              string
	Region                *string
	SortBy                string
	IncludeAdult          bool
	IncludeVideo          bool
	Page                  int
	PrimaryReleaseYear    *int
	PrimaryReleaseDateGTE *string
	PrimaryReleaseDateLTE *string
	WithGenres            *string
	WithCast              *string
	WithCrew              *string
	WithKeywords          *string
	WithRuntimeGTE        *int
	WithRuntimeLTE        *int
}

// DiscoverMovies finds movies by genre, people, dates and runtime.
func (c *Client) DiscoverMovies(ctx context.Context, opts DiscoverOptions) *Result {
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	return c.Get(ctx, "/discover/movie", Params{
		"language":                 lang(opts.Language),
		"region":                   opts.Region,
		"sort_by":                  sortBy,
		"include_adult":            opts.IncludeAdult,
		"include_video":            opts.IncludeVideo,
		"page":                     pageOrFirst(opts.Page),
		"primary_release_year":     opts.PrimaryReleaseYear,
		"primary_release_date.gte": opts.PrimaryReleaseDateGTE,
		"primary_release_date.lte": opts.PrimaryReleaseDateLTE,
		"with_genres":              opts.WithGenres,
		"with_cast":                opts.WithCast,
		"with_crew":                opts.WithCrew,
		"with_keywords":            opts.WithKeywords,
		"with_runtime.gte":         opts.WithRuntimeGTE,
		"with_runtime.lte":         opts.WithRuntimeLTE,
	})
}

// TrendingMovies lists trending movies for "day" or "week" (the default).
func (c *Client) TrendingMovies(ctx context.Context, timeWindow, language string) *Result {
	if timeWindow == "" {
		timeWindow = "week"
	}
	return c.Get(ctx, "/trending/movie/"+timeWindow, Params{"language": lang(language)})
}

// MovieRecommendations lists recommendations based on one movie.
func (c *Client) MovieRecommendations(ctx context.Context, movieID int, language string) *Result {
	return c.Get(ctx, fmt.Sprintf("/movie/%d/recommendations", movieID), Params{"language": lang(language)})
}

// MovieCredits fetches cast and crew of one movie.
func (c *Client) MovieCredits(ctx context.Context, movieID int, language string) *Result {
	return c.Get(ctx, fmt.Sprintf("/movie/%d/credits", movieID), Params{"language": lang(language)})
}

// PersonDetails fetches a person. appendToResponse defaults to movie_credits.
func (c *Client) PersonDetails(ctx context.Context, personID int, language, appendToResponse string) *Result {
	if appendToResponse == "" {
		appendToResponse = "movie_credits"
	}
	return c.Get(ctx, fmt.Sprintf("/person/%d", personID), Params{
		"language":           lang(language),
		"append_to_response": appendToResponse,
	})
}

// GenreList fetches the official movie genres.
func (c *Client) GenreList(ctx context.Context, language string) *Result {
	return c.Get(ctx, "/genre/movie/list", Params{"language": lang(language)})
}

// UpcomingMovies lists movies about to be released, optionally per region.
func (c *Client) UpcomingMovies(ctx context.Context, language string, region *string) *Result {
	return c.Get(ctx, "/movie/upcoming", Params{"language": lang(language), "region": region})
}

// NowPlayingMovies lists movies currently in theaters, optionally per region.
func (c *Client) NowPlayingMovies(ctx context.Context, language string, region *string) *Result {
	return c.Get(ctx, "/movie/now_playing", Params{"language": lang(language), "region": region})
}

// SimilarMovies lists movies similar to one movie.
func (c *Client) SimilarMovies(ctx context.Context, movieID int, language string) *Result {
	return c.Get(ctx, fmt.Sprintf("/movie/%d/similar", movieID), Params{"language": lang(language)})
}

// MultiSearchOptions filters /search/multi.
type MultiSearchOptions struct {
	Query        string
	Language     string
	Page         int
	IncludeAdult bool
	Region       *string
}

// MultiSearch searches movies, TV shows and people at once.
func (c *Client) MultiSearch(ctx context.Context, opts MultiSearchOptions) *Result {
	return c.Get(ctx, "/search/multi", Params{
		"query":         opts.Query,
		"language":      lang(opts.Language),
		"page":          pageOrFirst(opts.Page),
		"include_adult": opts.IncludeAdult,
		"region":        opts.Region,
	})
}

func pageOrFirst(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
