package dto

import (
	"naturekids/internal/domains/catalog/model"
	"net/http"
	"strconv"
	"strings"
)

const (
	queryLocation  = "location"
	queryMinPrice  = "min_price"
	queryMaxPrice  = "max_price"
	queryMinRating = "min_rating"
	querySearch    = "search"
)

type ActivityResponse struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Location        string   `json:"location"`
	Date            string   `json:"date"`
	Price           int64    `json:"price"`
	Rating          float64  `json:"rating"`
	Reviews         int      `json:"reviews"`
	Image           string   `json:"image"`
	Description     string   `json:"description"`
	Duration        string   `json:"duration"`
	AgeRange        string   `json:"age_range"`
	MaxParticipants int      `json:"max_participants"`
	AvailableTimes  []string `json:"available_times"`
	Requirements    []string `json:"requirements"`
}

func (a *ActivityResponse) FromModel(m model.Activity) {
	a.ID = m.ID
	a.Title = m.Title
	a.Location = m.Location
	a.Date = m.ListingDate
	a.Price = m.Price
	a.Rating = m.Rating
	a.Reviews = m.ReviewCount
	a.Image = m.Image
	a.Description = m.Description
	a.Duration = m.Duration
	a.AgeRange = m.AgeRange
	a.MaxParticipants = m.MaxParticipants
	a.AvailableTimes = append([]string{}, m.AvailableTimes...)
	a.Requirements = append([]string{}, m.Requirements...)
}

type GetActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	TotalData  int                `json:"total_data"`
}

func (g *GetActivitiesResponse) FromModels(models []model.Activity) {
	g.Activities = make([]ActivityResponse, 0, len(models))

	for _, m := range models {
		var res ActivityResponse
		res.FromModel(m)
		g.Activities = append(g.Activities, res)
	}

	g.TotalData = len(models)
}

// FilterFromRequest reads the discover page filters. Locations may be repeated
// or comma separated; unparsable numbers are ignored.
func FilterFromRequest(r *http.Request) model.Filter {
	query := r.URL.Query()
	filter := model.Filter{
		Search: strings.TrimSpace(query.Get(querySearch)),
	}

	for _, raw := range query[queryLocation] {
		for location := range strings.SplitSeq(raw, ",") {
			if location = strings.TrimSpace(location); location != "" {
				filter.Locations = append(filter.Locations, location)
			}
		}
	}

	if v, err := strconv.ParseInt(query.Get(queryMinPrice), 10, 64); err == nil && v > 0 {
		filter.MinPrice = v
	}

	if v, err := strconv.ParseInt(query.Get(queryMaxPrice), 10, 64); err == nil && v > 0 {
		filter.MaxPrice = v
	}

	if v, err := strconv.ParseFloat(query.Get(queryMinRating), 64); err == nil && v > 0 {
		filter.MinRating = v
	}

	return filter
}
