package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/internal/domains/recommendation/model"
)

func TestPreferences_Prompt(t *testing.T) {
	prompt := model.Preferences{ChildAge: 7, Location: "forest", Interest: "insects"}.Prompt()

	assert.Equal(t,
		"Suggest 3 nature-based activities for a 7-year-old child who is interested in insects and prefers forest environments. "+
			"For each activity, include the name and a one-sentence description.",
		prompt)
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []model.Suggestion
	}{
		{
			name: "plain lines",
			text: "Bug Safari: Look under logs for beetles.\n\nPond Dipping: Scoop and study pond life.",
			want: []model.Suggestion{
				{Title: "Bug Safari", Description: "Look under logs for beetles."},
				{Title: "Pond Dipping", Description: "Scoop and study pond life."},
			},
		},
		{
			name: "numbered markdown capped at three",
			text: "1. **Bug Safari**: Logs.\n2. **Pond Dipping**: Ponds.\n- Bark Rubbing: Trees.\n* Extra: Ignored.",
			want: []model.Suggestion{
				{Title: "Bug Safari", Description: "Logs."},
				{Title: "Pond Dipping", Description: "Ponds."},
				{Title: "Bark Rubbing", Description: "Trees."},
			},
		},
		{
			name: "line without description",
			text: "Cloud Spotting",
			want: []model.Suggestion{{Title: "Cloud Spotting"}},
		},
		{name: "blank", text: " \n \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.ParseSuggestions(tt.text))
		})
	}
}

func TestFallback(t *testing.T) {
	list := model.Fallback()
	require.Len(t, list, 3)
	assert.Equal(t, "Nature Scavenger Hunt", list[0].Title)

	list[0].Title = "changed"
	assert.Equal(t, "Nature Scavenger Hunt", model.Fallback()[0].Title)
}
