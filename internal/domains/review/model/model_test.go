package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/internal/domains/review/model"
)

func TestSubmission_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sub     model.Submission
		wantErr error
	}{
		{name: "rating 0", sub: model.Submission{Rating: 0, Comment: "fun"}, wantErr: model.ErrRatingOutOfRange},
		{name: "rating 1", sub: model.Submission{Rating: 1, Comment: "meh"}},
		{name: "rating 5", sub: model.Submission{Rating: 5, Comment: "great"}},
		{name: "rating 6", sub: model.Submission{Rating: 6, Comment: "wow"}, wantErr: model.ErrRatingOutOfRange},
		{name: "blank comment", sub: model.Submission{Rating: 4, Comment: "   "}, wantErr: model.ErrEmptyComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, model.Summary{}, model.Summarize(nil))

	summary := model.Summarize([]model.Review{{Rating: 5}, {Rating: 4}, {Rating: 3}})
	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 4.0, summary.Average, 0.0001)
}
