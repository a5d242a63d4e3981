package dto

import (
	"naturekids/internal/domains/recommendation/model"
	"strings"
)

type RecommendRequest struct {
	ChildAge int    `json:"child_age" validate:"min=1,max=17"`
	Location string `json:"location"  validate:"notblank,max=100"`
	Interest string `json:"interest"  validate:"notblank,max=100"`
}

func (r RecommendRequest) ToModel() model.Preferences {
	return model.Preferences{
		ChildAge: r.ChildAge,
		Location: strings.TrimSpace(r.Location),
		Interest: strings.TrimSpace(r.Interest),
	}
}

type SuggestionResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type RecommendResponse struct {
	Recommendations []SuggestionResponse `json:"recommendations"`
	Source          string               `json:"source"`
}

func (r *RecommendResponse) FromModels(suggestions []model.Suggestion, source string) {
	r.Recommendations = make([]SuggestionResponse, 0, len(suggestions))

	for _, s := range suggestions {
		r.Recommendations = append(r.Recommendations, SuggestionResponse{Title: s.Title, Description: s.Description})
	}

	r.Source = source
}
