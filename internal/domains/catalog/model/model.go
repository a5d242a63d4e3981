package model

import (
	"errors"
	"fmt"
	"naturekids/shared/model"
	"slices"
	"strings"

	"github.com/lib/pq"
)

const (
	TableName  = "activities"
	EntityName = "activity"

	FieldID              = "id"
	FieldTitle           = "title"
	FieldLocation        = "location"
	FieldPrice           = "price"
	FieldRating          = "rating"
	FieldMaxParticipants = "max_participants"
)

var (
	ErrNonPositivePrice    = errors.New("price must be positive")
	ErrNoParticipants      = errors.New("max participants must be positive")
	ErrNoAvailableTimes    = errors.New("available times must not be empty")
	ErrMissingActivityInfo = errors.New("title and location are required")
)

// Activity is an immutable catalog entry. Prices are whole currency units.
type Activity struct {
	ID              int64          `db:"id"               json:"id"`
	Title           string         `db:"title"            json:"title"`
	Location        string         `db:"location"         json:"location"`
	ListingDate     string         `db:"listing_date"     json:"date"`
	Price           int64          `db:"price"            json:"price"`
	Rating          float64        `db:"rating"           json:"rating"`
	ReviewCount     int            `db:"review_count"     json:"reviews"`
	Image           string         `db:"image"            json:"image"`
	Description     string         `db:"description"      json:"description"`
	Duration        string         `db:"duration"         json:"duration"`
	AgeRange        string         `db:"age_range"        json:"age_range"`
	MaxParticipants int            `db:"max_participants" json:"max_participants"`
	AvailableTimes  pq.StringArray `db:"available_times"  json:"available_times"`
	Requirements    pq.StringArray `db:"requirements"     json:"requirements"`
	model.Metadata
}

// Validate enforces the invariants every catalog record must satisfy.
func (a Activity) Validate() error {
	var errs []error

	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Location) == "" {
		errs = append(errs, ErrMissingActivityInfo)
	}

	if a.Price <= 0 {
		errs = append(errs, ErrNonPositivePrice)
	}

	if a.MaxParticipants <= 0 {
		errs = append(errs, ErrNoParticipants)
	}

	if len(a.AvailableTimes) == 0 {
		errs = append(errs, ErrNoAvailableTimes)
	}

	if len(errs) > 0 {
		return fmt.Errorf("activity %d: %w", a.ID, errors.Join(errs...))
	}

	return nil
}

func (a Activity) OffersTime(slot string) bool {
	return slices.Contains(a.AvailableTimes, slot)
}

// Total is the price for the given number of participants.
func (a Activity) Total(participants int) int64 {
	return a.Price * int64(participants)
}

// Filter narrows the catalog listing. Zero values disable a criterion.
type Filter struct {
	Locations []string `json:"locations,omitempty"`
	MinPrice  int64    `json:"min_price,omitempty"`
	MaxPrice  int64    `json:"max_price,omitempty"`
	MinRating float64  `json:"min_rating,omitempty"`
	Search    string   `json:"search,omitempty"`
}

func (f Filter) Matches(a Activity) bool {
	if len(f.Locations) > 0 && !slices.Contains(f.Locations, a.Location) {
		return false
	}

	if f.MinPrice > 0 && a.Price < f.MinPrice {
		return false
	}

	if f.MaxPrice > 0 && a.Price > f.MaxPrice {
		return false
	}

	if f.MinRating > 0 && a.Rating < f.MinRating {
		return false
	}

	if search := strings.TrimSpace(f.Search); search != "" &&
		!strings.Contains(strings.ToLower(a.Title), strings.ToLower(search)) {
		return false
	}

	return true
}
