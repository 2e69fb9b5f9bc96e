// In file: internal/tools/search_tools.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dileep-u-k/moviebot/internal/tmdb"
)

// --- Search Movie Tool ---

// SearchMovieTool searches TMDB for movies by title.
type SearchMovieTool struct{ tmdbTool }

var _ ToolExecutor = (*SearchMovieTool)(nil)

func NewSearchMovieTool(client *tmdb.Client, settings Settings) *SearchMovieTool {
	return &SearchMovieTool{newTMDBTool(client, settings)}
}

func (st *SearchMovieTool) Definition() Tool {
	return NewFunctionTool(
		"search_movie",
		"Search for movies by title",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"query": {
					Type:        "string",
					Description: "The movie title to search for",
				},
				"language": languageParam(),
				"year": {
					Type:        "integer",
					Description: "Filter results by release year",
				},
				"primary_release_year": {
					Type:        "integer",
					Description: "Filter results by primary release year",
				},
			},
			Required: []string{"query"},
		},
	)
}

func (st *SearchMovieTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Query              string `json:"query"`
		Language           string `json:"language"`
		Year               *int   `json:"year"`
		PrimaryReleaseYear *int   `json:"primary_release_year"`
	}
	if err := decodeArgs("search_movie", arguments, &args); err != nil {
		return "", err
	}

	res := st.client.SearchMovie(ctx, tmdb.SearchOptions{
		Query:              args.Query,
		Language:           st.language(args.Language),
		Year:               args.Year,
		PrimaryReleaseYear: args.PrimaryReleaseYear,
	})
	var page tmdb.MoviePage
	if err := res.Decode(&page); err != nil {
		return "", toolErrorf(err, "Error searching for movies: %s", errorMessage(err))
	}
	if len(page.Results) == 0 {
		return fmt.Sprintf("No movies found for '%s'.", args.Query), nil
	}
	return movieList("Search results for movies:", page.Results, st.settings.ListLimit, false), nil
}

// --- Multi Search Tool ---

// MultiSearchTool searches movies, TV shows and people with one query.
type MultiSearchTool struct{ tmdbTool }

var _ ToolExecutor = (*MultiSearchTool)(nil)

func NewMultiSearchTool(client *tmdb.Client, settings Settings) *MultiSearchTool {
	return &MultiSearchTool{newTMDBTool(client, settings)}
}

func (mt *MultiSearchTool) Definition() Tool {
	return NewFunctionTool(
		"multi_search",
		"Search for movies, TV shows, and people with a single query",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"query": {
					Type:        "string",
					Description: "The search query",
				},
				"language": languageParam(),
			},
			Required: []string{"query"},
		},
	)
}

func (mt *MultiSearchTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Query    string `json:"query"`
		Language string `json:"language"`
	}
	if err := decodeArgs("multi_search", arguments, &args); err != nil {
		return "", err
	}

	res := mt.client.MultiSearch(ctx, tmdb.MultiSearchOptions{
		Query:    args.Query,
		Language: mt.language(args.Language),
	})
	var page tmdb.MultiSearchPage
	if err := res.Decode(&page); err != nil {
		return "", toolErrorf(err, "Error in multi-search: %s", errorMessage(err))
	}
	if len(page.Results) == 0 {
		return fmt.Sprintf("No results found for '%s'.", args.Query), nil
	}

	var b strings.Builder
	b.WriteString("Multi-search results:\n")
	for i, item := range page.Results {
		if i >= mt.settings.ExtendedListLimit {
			break
		}
		switch item.MediaType {
		case tmdb.MediaMovie:
			fmt.Fprintf(&b, "movie: id: %d title: %s release_date: %s genre_ids: %s\n",
				item.ID, orUnknown(item.Title), yearOf(item.ReleaseDate), joinInts(item.GenreIDs))
		case tmdb.MediaTV:
			fmt.Fprintf(&b, "tv show: id: %d name: %s first_air_date: %s genre_ids: %s\n",
				item.ID, orUnknown(item.Name), yearOf(item.FirstAirDate), joinInts(item.GenreIDs))
		case tmdb.MediaPerson:
			titles := make([]string, len(item.KnownFor))
			for j, k := range item.KnownFor {
				if k.Title != "" {
					titles[j] = k.Title
				} else {
					titles[j] = orUnknown(k.Name)
				}
			}
			fmt.Fprintf(&b, "person: id: %d name: %s known_for: %s department: %s\n",
				item.ID, orUnknown(item.Name), strings.Join(titles, ", "), orNA(item.KnownForDepartment))
		}
	}
	return b.String(), nil
}

// errorMessage prefers the TMDB error record's message over the wrapped error text.
func errorMessage(err error) string {
	var apiErr *tmdb.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
