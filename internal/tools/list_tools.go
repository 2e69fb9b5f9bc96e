// In file: internal/tools/list_tools.go
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dileep-u-k/moviebot/internal/tmdb"
)

// --- Trending Movies Tool ---

// TrendingMoviesTool lists movies trending today or this week.
type TrendingMoviesTool struct{ tmdbTool }

var _ ToolExecutor = (*TrendingMoviesTool)(nil)

func NewTrendingMoviesTool(client *tmdb.Client, settings Settings) *TrendingMoviesTool {
	return &TrendingMoviesTool{newTMDBTool(client, settings)}
}

func (tt *TrendingMoviesTool) Definition() Tool {
	return NewFunctionTool(
		"get_trending_movies",
		"Retrieve a list of movies that are currently trending",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"time_window": {
					Type:        "string",
					Description: "Time window for trending (day or week)",
					Enum:        []string{"day", "week"},
					Default:     "week",
				},
				"language": languageParam(),
			},
		},
	)
}

func (tt *TrendingMoviesTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		TimeWindow string `json:"time_window"`
		Language   string `json:"language"`
	}
	if err := decodeArgs("get_trending_movies", arguments, &args); err != nil {
		return "", err
	}
	if args.TimeWindow == "" {
		args.TimeWindow = "week"
	}

	var page tmdb.MoviePage
	if err := tt.client.TrendingMovies(ctx, args.TimeWindow, tt.language(args.Language)).Decode(&page); err != nil {
		return "", toolErrorf(err, "Error getting trending movies: %s", errorMessage(err))
	}
	if len(page.Results) == 0 {
		return "No trending movies found.", nil
	}
	header := fmt.Sprintf("Trending movies for this %s:", args.TimeWindow)
	return movieList(header, page.Results, tt.settings.ListLimit, false), nil
}

// --- Discover Movies Tool ---

// DiscoverMoviesTool finds movies by genre, year, people or sort order.
type DiscoverMoviesTool struct{ tmdbTool }

var _ ToolExecutor = (*DiscoverMoviesTool)(nil)

func NewDiscoverMoviesTool(client *tmdb.Client, settings Settings) *DiscoverMoviesTool {
	return &DiscoverMoviesTool{newTMDBTool(client, settings)}
}

func (dt *DiscoverMoviesTool) Definition() Tool {
	return NewFunctionTool(
		"discover_movies",
		"Discover movies by different criteria like genre, year, or sorting",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"with_genres": {
					Type:        "string",
					Description: "Comma-separated genre IDs to filter by",
				},
				"primary_release_year": {
					Type:        "integer",
					Description: "Filter movies released in a specific year",
				},
				"sort_by": {
					Type:        "string",
					Description: "Sort results by criteria (e.g., popularity.desc, vote_average.desc)",
					Default:     "popularity.desc",
				},
				"language": languageParam(),
				"with_cast": {
					Type:        "string",
					Description: "Comma-separated person IDs to filter by cast",
				},
				"with_crew": {
					Type:        "string",
					Description: "Comma-separated person IDs to filter by crew",
				},
			},
		},
	)
}

func (dt *DiscoverMoviesTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		WithGenres         *string `json:"with_genres"`
		PrimaryReleaseYear *int    `json:"primary_release_year"`
		SortBy             string  `json:"sort_by"`
		Language           string  `json:"language"`
		WithCast           *string `json:"with_cast"`
		WithCrew           *string `json:"with_crew"`
	}
	if err := decodeArgs("discover_movies", arguments, &args); err != nil {
		return "", err
	}

	res := dt.client.DiscoverMovies(ctx, tmdb.DiscoverOptions{
		Language:           dt.language(args.Language),
		SortBy:             args.SortBy,
		PrimaryReleaseYear: args.PrimaryReleaseYear,
		WithGenres:         args.WithGenres,
		WithCast:           args.WithCast,
		WithCrew:           args.WithCrew,
	})
	var page tmdb.MoviePage
	if err := res.Decode(&page); err != nil {
		return "", toolErrorf(err, "Error discovering movies: %s", errorMessage(err))
	}
	if len(page.Results) == 0 {
		return "No movies found matching the criteria.", nil
	}
	return movieList("Discovered movies:", page.Results, dt.settings.ListLimit, false), nil
}

// --- Genre List Tool ---

// GenreListTool lists the official TMDB genres with their IDs.
type GenreListTool struct{ tmdbTool }

var _ ToolExecutor = (*GenreListTool)(nil)

func NewGenreListTool(client *tmdb.Client, settings Settings) *GenreListTool {
	return &GenreListTool{newTMDBTool(client, settings)}
}

func (gt *GenreListTool) Definition() Tool {
	return NewFunctionTool(
		"get_genre_list",
		"Retrieve the list of official movie genres with their IDs",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"language": languageParam(),
			},
		},
	)
}

func (gt *GenreListTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Language string `json:"language"`
	}
	if err := decodeArgs("get_genre_list", arguments, &args); err != nil {
		return "", err
	}

	var list tmdb.GenreList
	if err := gt.client.GenreList(ctx, gt.language(args.Language)).Decode(&list); err != nil {
		return "", toolErrorf(err, "Error getting genre list: %s", errorMessage(err))
	}
	if len(list.Genres) == 0 {
		return "No genre information available.", nil
	}

	var b strings.Builder
	b.WriteString("Available movie genres:\n")
	for _, g := range list.Genres {
		fmt.Fprintf(&b, "name: %s id: %d\n", g.Name, g.ID)
	}
	return b.String(), nil
}

// --- Release Calendar Tools ---

// regionalListTool backs the upcoming and now-playing tools, which only
// differ in endpoint and wording.
type regionalListTool struct {
	tmdbTool
	name        string
	description string
	fetch       func(c *tmdb.Client, ctx context.Context, language string, region *string) *tmdb.Result
	errorPrefix string
	emptyText   string
	header      string
}

func (rt *regionalListTool) Definition() Tool {
	return NewFunctionTool(
		rt.name,
		rt.description,
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"language": languageParam(),
				"region":   regionParam(),
			},
		},
	)
}

func (rt *regionalListTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Language string  `json:"language"`
		Region   *string `json:"region"`
	}
	if err := decodeArgs(rt.name, arguments, &args); err != nil {
		return "", err
	}

	var page tmdb.MoviePage
	if err := rt.fetch(rt.client, ctx, rt.language(args.Language), args.Region).Decode(&page); err != nil {
		return "", toolErrorf(err, "%s: %s", rt.errorPrefix, errorMessage(err))
	}
	if len(page.Results) == 0 {
		return rt.emptyText, nil
	}
	return movieList(rt.header, page.Results, rt.settings.ExtendedListLimit, true), nil
}

// UpcomingMoviesTool lists movies that are soon to be released.
type UpcomingMoviesTool struct{ regionalListTool }

var _ ToolExecutor = (*UpcomingMoviesTool)(nil)

func NewUpcomingMoviesTool(client *tmdb.Client, settings Settings) *UpcomingMoviesTool {
	return &UpcomingMoviesTool{regionalListTool{
		tmdbTool:    newTMDBTool(client, settings),
		name:        "get_upcoming_movies",
		description: "Retrieve movies that are soon to be released",
		fetch:       (*tmdb.Client).UpcomingMovies,
		errorPrefix: "Error getting upcoming movies",
		emptyText:   "No upcoming movie releases found.",
		header:      "Upcoming movies:",
	}}
}

// NowPlayingMoviesTool lists movies currently playing in theaters.
type NowPlayingMoviesTool struct{ regionalListTool }

var _ ToolExecutor = (*NowPlayingMoviesTool)(nil)

func NewNowPlayingMoviesTool(client *tmdb.Client, settings Settings) *NowPlayingMoviesTool {
	return &NowPlayingMoviesTool{regionalListTool{
		tmdbTool:    newTMDBTool(client, settings),
		name:        "get_now_playing_movies",
		description: "Retrieve movies currently playing in theaters",
		fetch:       (*tmdb.Client).NowPlayingMovies,
		errorPrefix: "Error getting now playing movies",
		emptyText:   "No movies currently playing in theaters found.",
		header:      "Movies currently playing in theaters:",
	}}
}
