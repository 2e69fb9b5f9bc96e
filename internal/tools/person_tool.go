// In file: internal/tools/person_tool.go
package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dileep-u-k/moviebot/internal/tmdb"
)

// knownForCount is how many movie credits are read out for a person.
const knownForCount = 5

// PersonDetailsTool retrieves an actor's or director's profile.
type PersonDetailsTool struct{ tmdbTool }

var _ ToolExecutor = (*PersonDetailsTool)(nil)

func NewPersonDetailsTool(client *tmdb.Client, settings Settings) *PersonDetailsTool {
	return &PersonDetailsTool{newTMDBTool(client, settings)}
}

func (pt *PersonDetailsTool) Definition() Tool {
	return NewFunctionTool(
		"get_person_details",
		"Retrieve detailed information about a person (actor, director)",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"person_id": {
					Type:        "integer",
					Description: "The TMDB ID of the person",
				},
				"language": languageParam(),
			},
			Required: []string{"person_id"},
		},
	)
}

func (pt *PersonDetailsTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		PersonID int    `json:"person_id"`
		Language string `json:"language"`
	}
	if err := decodeArgs("get_person_details", arguments, &args); err != nil {
		return "", err
	}
	if args.PersonID <= 0 {
		return "", &ToolError{Message: "Error: Person ID is required."}
	}

	var p tmdb.Person
	if err := pt.client.PersonDetails(ctx, args.PersonID, pt.language(args.Language), "").Decode(&p); err != nil {
		return "", toolErrorf(err, "No details found for person ID %d.", args.PersonID)
	}
	if p.ID == 0 {
		return fmt.Sprintf("No details found for person ID %d.", args.PersonID), nil
	}

	knownFor := notAvailable
	if p.MovieCredits != nil && len(p.MovieCredits.Cast) > 0 {
		titles := topCreditTitles(p.MovieCredits.Cast, knownForCount)
		knownFor = strings.Join(titles, ", ")
	}

	var b strings.Builder
	b.WriteString("Person details:\n")
	fmt.Fprintf(&b, "name: %s\n", orNA(p.Name))
	fmt.Fprintf(&b, "biography: %s\n", orNA(p.Biography))
	fmt.Fprintf(&b, "birthday: %s\n", orNA(p.Birthday))
	fmt.Fprintf(&b, "place_of_birth: %s\n", orNA(p.PlaceOfBirth))
	fmt.Fprintf(&b, "known_for: %s", knownFor)
	return b.String(), nil
}

// topCreditTitles returns the titles of the n most popular credits.
func topCreditTitles(credits []tmdb.PersonCredit, n int) []string {
	sorted := make([]tmdb.PersonCredit, len(credits))
	copy(sorted, credits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Popularity > sorted[j].Popularity
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	titles := make([]string, len(sorted))
	for i, c := range sorted {
		titles[i] = orUnknown(c.Title)
	}
	return titles
}
