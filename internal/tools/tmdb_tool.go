// In file: internal/tools/tmdb_tool.go
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/dileep-u-k/moviebot/internal/tmdb"
)

// Settings tune how the TMDB tools query and summarize.
type Settings struct {
	// Language is used when the caller does not pass one.
	Language string `yaml:"language"`
	// ListLimit caps short lists (search, trending, recommendations).
	ListLimit int `yaml:"list_limit"`
	// ExtendedListLimit caps longer lists (upcoming, now playing, credits, multi search).
	ExtendedListLimit int `yaml:"extended_list_limit"`
}

// DefaultSettings mirrors what the agent has always spoken: five movies for
// most lists, ten for release calendars and credits.
func DefaultSettings() Settings {
	return Settings{
		Language:          tmdb.DefaultLanguage,
		ListLimit:         5,
		ExtendedListLimit: 10,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Language == "" {
		s.Language = d.Language
	}
	if s.ListLimit <= 0 {
		s.ListLimit = d.ListLimit
	}
	if s.ExtendedListLimit <= 0 {
		s.ExtendedListLimit = d.ExtendedListLimit
	}
	return s
}

// tmdbTool is embedded by every tool that calls TMDB.
type tmdbTool struct {
	client   *tmdb.Client
	settings Settings
}

func newTMDBTool(client *tmdb.Client, settings Settings) tmdbTool {
	return tmdbTool{client: client, settings: settings.withDefaults()}
}

func (t tmdbTool) language(requested string) string {
	if requested != "" {
		return requested
	}
	return t.settings.Language
}

// decodeArgs unmarshals the JSON arguments of a call into dst.
func decodeArgs(toolName, arguments string, dst any) error {
	if err := json.Unmarshal([]byte(arguments), dst); err != nil {
		return toolErrorf(err, "Error: invalid arguments for %s.", toolName)
	}
	return nil
}

// NewMovieTools builds every TMDB-backed tool the agent exposes.
func NewMovieTools(client *tmdb.Client, settings Settings) ([]ToolExecutor, error) {
	if client == nil {
		return nil, fmt.Errorf("TMDB client cannot be nil")
	}
	return []ToolExecutor{
		NewSearchMovieTool(client, settings),
		NewMovieDetailsTool(client, settings),
		NewMovieRecommendationsTool(client, settings),
		NewTrendingMoviesTool(client, settings),
		NewDiscoverMoviesTool(client, settings),
		NewGenreListTool(client, settings),
		NewUpcomingMoviesTool(client, settings),
		NewNowPlayingMoviesTool(client, settings),
		NewSimilarMoviesTool(client, settings),
		NewMultiSearchTool(client, settings),
		NewMovieCreditsTool(client, settings),
		NewPersonDetailsTool(client, settings),
	}, nil
}
