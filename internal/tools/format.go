// In file: internal/tools/format.go
package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dileep-u-k/moviebot/internal/tmdb"
)

// Formatting helpers shared by the TMDB tools. Output is plain "key: value"
// text because it is read out by a speech synthesizer, not rendered.

const notAvailable = "N/A"

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// yearOf returns the four-digit year of a YYYY-MM-DD date.
func yearOf(date string) string {
	if len(date) < 4 {
		return notAvailable
	}
	return date[:4]
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func joinNames(items []tmdb.Named) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return strings.Join(names, ", ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// writeMovieLines appends one line per movie, up to limit. With fullDate the
// complete release date is printed instead of just the year.
func writeMovieLines(b *strings.Builder, movies []tmdb.Movie, limit int, fullDate bool) {
	for i, m := range movies {
		if i >= limit {
			break
		}
		date := yearOf(m.ReleaseDate)
		if fullDate {
			date = orNA(m.ReleaseDate)
		}
		fmt.Fprintf(b, "id: %d title: %s release_date: %s genre_ids: %s\n",
			m.ID, orUnknown(m.Title), date, joinInts(m.GenreIDs))
	}
}

// movieList renders a header followed by the movie lines.
func movieList(header string, movies []tmdb.Movie, limit int, fullDate bool) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	writeMovieLines(&b, movies, limit, fullDate)
	return b.String()
}
