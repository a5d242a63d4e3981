package dto

import (
	"math"
	"naturekids/internal/domains/review/model"
	"naturekids/shared/constant"
	"naturekids/shared/timezone"
	"strings"
)

type AddReviewRequest struct {
	Rating  int    `json:"rating"  validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"notblank,max=2000"`
}

func (a AddReviewRequest) ToModel() model.Submission {
	return model.Submission{
		Rating:  a.Rating,
		Comment: strings.TrimSpace(a.Comment),
	}
}

type ReviewResponse struct {
	ID         string `json:"id"`
	ActivityID int64  `json:"activity_id"`
	Username   string `json:"username"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	Date       string `json:"date"`
}

func (r *ReviewResponse) FromModel(m model.Review) {
	r.ID = m.ID
	r.ActivityID = m.ActivityID
	r.Username = m.Username
	r.Rating = m.Rating
	r.Comment = m.Comment
	r.Date = timezone.Format(m.CreatedAt, constant.BookingDateFmt)
}

type GetReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Count   int              `json:"count"`
	Average float64          `json:"average"`
}

func (g *GetReviewsResponse) FromModels(models []model.Review) {
	g.Reviews = make([]ReviewResponse, 0, len(models))

	for _, m := range models {
		var res ReviewResponse
		res.FromModel(m)
		g.Reviews = append(g.Reviews, res)
	}

	summary := model.Summarize(models)
	g.Count = summary.Count
	g.Average = math.Round(summary.Average*10) / 10
}
