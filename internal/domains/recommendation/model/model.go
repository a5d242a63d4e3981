package model

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"

	MaxSuggestions = 3
)

type Suggestion struct {
	Title       string
	Description string
}

type Preferences struct {
	ChildAge int
	Location string
	Interest string
}

func (p Preferences) Prompt() string {
	return fmt.Sprintf(
		"Suggest 3 nature-based activities for a %d-year-old child who is interested in %s and prefers %s environments. "+
			"For each activity, include the name and a one-sentence description.",
		p.ChildAge, p.Interest, p.Location,
	)
}

var fallback = []Suggestion{
	{Title: "Nature Scavenger Hunt", Description: "Create a list of natural items for children to find in the park."},
	{Title: "Leaf Rubbing Art", Description: "Collect different leaves and create art by rubbing them with crayons."},
	{Title: "Bird Watching", Description: "Observe and identify different birds in your local area."},
}

func Fallback() []Suggestion {
	return append([]Suggestion(nil), fallback...)
}

// listMarker matches bullets, numbering and markdown emphasis in front of a line.
var listMarker = regexp.MustCompile(`^(?:[-*•]\s*|\d+[.)]\s*|#+\s*)+`)

// ParseSuggestions reads up to MaxSuggestions "Title: description" lines.
func ParseSuggestions(text string) []Suggestion {
	var res []Suggestion

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(listMarker.ReplaceAllString(strings.TrimSpace(line), ""))
		line = strings.ReplaceAll(line, "**", "")

		if line == "" {
			continue
		}

		title, description, _ := strings.Cut(line, ":")

		res = append(res, Suggestion{
			Title:       strings.TrimSpace(title),
			Description: strings.TrimSpace(description),
		})

		if len(res) == MaxSuggestions {
			break
		}
	}

	return res
}
