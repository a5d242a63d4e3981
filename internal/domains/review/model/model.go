package model

import (
	"errors"
	"naturekids/shared/model"
	"strings"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID         = "id"
	FieldActivityID = "activity_id"

	MinRating = 1
	MaxRating = 5
)

var (
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrEmptyComment     = errors.New("comment cannot be empty")
)

type Review struct {
	ID         string `db:"id"`
	ActivityID int64  `db:"activity_id"`
	UserID     string `db:"user_id"`
	Username   string `db:"username"`
	Rating     int    `db:"rating"`
	Comment    string `db:"comment"`
	model.Metadata
}

type Submission struct {
	Rating  int
	Comment string
}

func (s Submission) Validate() error {
	var errs []error

	if s.Rating < MinRating || s.Rating > MaxRating {
		errs = append(errs, ErrRatingOutOfRange)
	}

	if strings.TrimSpace(s.Comment) == "" {
		errs = append(errs, ErrEmptyComment)
	}

	return errors.Join(errs...)
}

// Summary aggregates the reviews of one activity.
type Summary struct {
	Count   int
	Average float64
}

func Summarize(reviews []Review) Summary {
	if len(reviews) == 0 {
		return Summary{}
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}

	return Summary{
		Count:   len(reviews),
		Average: float64(total) / float64(len(reviews)),
	}
}
