package repository

import (
	"context"
	"naturekids/infras/otel"
	"naturekids/internal/domains/catalog/model"
	"naturekids/shared/constant"
	"slices"
)

type staticImpl struct {
	activities []model.Activity
	otel       otel.Otel
}

// NewStatic serves the built-in discover catalog.
func NewStatic(otel otel.Otel) Activity {
	return &staticImpl{
		activities: builtinActivities(),
		otel:       otel,
	}
}

func (s *staticImpl) Get(ctx context.Context, id int64) (model.Activity, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".activity.static.Get")
	defer scope.End()

	idx := slices.IndexFunc(s.activities, func(a model.Activity) bool { return a.ID == id })
	if idx < 0 {
		return model.Activity{}, nil
	}

	return clone(s.activities[idx]), nil
}

func (s *staticImpl) List(ctx context.Context, filter model.Filter) ([]model.Activity, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".activity.static.List")
	defer scope.End()

	res := []model.Activity{}

	for _, activity := range s.activities {
		if filter.Matches(activity) {
			res = append(res, clone(activity))
		}
	}

	return res, nil
}

// clone keeps callers from mutating the shared slices.
func clone(a model.Activity) model.Activity {
	a.AvailableTimes = slices.Clone(a.AvailableTimes)
	a.Requirements = slices.Clone(a.Requirements)

	return a
}

func builtinActivities() []model.Activity {
	return []model.Activity{
		{
			ID:              1,
			Title:           "Nature Scavenger Hunt",
			Location:        "Central Park",
			ListingDate:     "2024-04-15",
			Price:           350,
			Rating:          4.8,
			ReviewCount:     42,
			Image:           "https://images.unsplash.com/photo-1596464716127-f2a82984de30",
			Description:     "Join us for an exciting scavenger hunt through nature! Perfect for children aged 4-8.",
			Duration:        "2 hours",
			AgeRange:        "4-8 years",
			MaxParticipants: 15,
			AvailableTimes:  []string{"09:00 AM", "11:00 AM", "02:00 PM"},
			Requirements:    []string{"Comfortable shoes", "Water bottle", "Sun hat"},
		},
		{
			ID:              2,
			Title:           "Garden Explorers",
			Location:        "Botanical Gardens",
			ListingDate:     "2024-04-20",
			Price:           400,
			Rating:          4.9,
			ReviewCount:     38,
			Image:           "https://images.unsplash.com/photo-1585320806297-9794b3e4eeae",
			Description:     "Learn about plants and insects while exploring our beautiful gardens.",
			Duration:        "1.5 hours",
			AgeRange:        "3-7 years",
			MaxParticipants: 12,
			AvailableTimes:  []string{"10:00 AM", "01:00 PM", "03:00 PM"},
			Requirements:    []string{"Comfortable clothes", "Water bottle", "Insect repellent"},
		},
		{
			ID:              3,
			Title:           "Forest Adventure",
			Location:        "Greenwood Forest",
			ListingDate:     "2024-04-25",
			Price:           950,
			Rating:          4.7,
			ReviewCount:     56,
			Image:           "https://images.unsplash.com/photo-1511497584788-876760111969",
			Description:     "Explore the forest, learn about wildlife, and build a shelter!",
			Duration:        "3 hours",
			AgeRange:        "5-8 years",
			MaxParticipants: 10,
			AvailableTimes:  []string{"09:30 AM", "01:30 PM"},
			Requirements:    []string{"Hiking shoes", "Rain jacket", "Lunch box"},
		},
		{
			ID:              4,
			Title:           "Beach Discovery",
			Location:        "Sunny Beach",
			ListingDate:     "2024-04-28",
			Price:           600,
			Rating:          4.9,
			ReviewCount:     45,
			Image:           "https://images.unsplash.com/photo-1507525428034-b723cf961d3e",
			Description:     "Discover marine life and build sandcastles at the beach!",
			Duration:        "2.5 hours",
			AgeRange:        "3-6 years",
			MaxParticipants: 15,
			AvailableTimes:  []string{"10:00 AM", "02:00 PM"},
			Requirements:    []string{"Swimsuit", "Towel", "Sunscreen"},
		},
		{
			ID:              5,
			Title:           "Nature Art Workshop",
			Location:        "Art Center",
			ListingDate:     "2024-05-02",
			Price:           250,
			Rating:          4.6,
			ReviewCount:     32,
			Image:           "https://images.unsplash.com/photo-1499781350541-7783f6c6a0c8",
			Description:     "Create beautiful art using natural materials found in nature.",
			Duration:        "1.5 hours",
			AgeRange:        "4-7 years",
			MaxParticipants: 12,
			AvailableTimes:  []string{"09:00 AM", "11:00 AM", "02:00 PM"},
			Requirements:    []string{"Apron", "Water bottle", "Art supplies"},
		},
		{
			ID:              6,
			Title:           "Mini Gardeners",
			Location:        "Community Garden",
			ListingDate:     "2024-05-05",
			Price:           300,
			Rating:          4.8,
			ReviewCount:     28,
			Image:           "https://images.unsplash.com/photo-1557844352-761f2565b576",
			Description:     "Learn to plant and care for your own mini garden!",
			Duration:        "1.5 hours",
			AgeRange:        "3-5 years",
			MaxParticipants: 8,
			AvailableTimes:  []string{"10:00 AM", "02:00 PM"},
			Requirements:    []string{"Gardening gloves", "Water bottle", "Small pot"},
		},
		{
			ID:              7,
			Title:           "Animal Trackers",
			Location:        "Wildlife Reserve",
			ListingDate:     "2024-05-08",
			Price:           800,
			Rating:          4.9,
			ReviewCount:     41,
			Image:           "https://images.unsplash.com/photo-1503656142023-618e7d1f435a",
			Description:     "Learn to identify animal tracks and signs in the wild!",
			Duration:        "2 hours",
			AgeRange:        "5-8 years",
			MaxParticipants: 10,
			AvailableTimes:  []string{"09:00 AM", "11:00 AM"},
			Requirements:    []string{"Binoculars", "Notebook", "Pencil"},
		},
		{
			ID:              8,
			Title:           "Rainy Day Explorers",
			Location:        "Nature Center",
			ListingDate:     "2024-05-10",
			Price:           220,
			Rating:          4.7,
			ReviewCount:     35,
			Image:           "https://images.unsplash.com/photo-1515694346937-94d85e41e6f0",
			Description:     "Discover the magic of nature on a rainy day!",
			Duration:        "1.5 hours",
			AgeRange:        "3-6 years",
			MaxParticipants: 12,
			AvailableTimes:  []string{"10:00 AM", "02:00 PM"},
			Requirements:    []string{"Rain boots", "Rain jacket", "Umbrella"},
		},
		{
			ID:              9,
			Title:           "Stargazing Adventure",
			Location:        "Observatory Park",
			ListingDate:     "2024-05-12",
			Price:           700,
			Rating:          4.9,
			ReviewCount:     29,
			Image:           "https://images.unsplash.com/photo-1532978379173-523e16f371f4",
			Description:     "Explore the night sky and learn about constellations!",
			Duration:        "2 hours",
			AgeRange:        "6-8 years",
			MaxParticipants: 15,
			AvailableTimes:  []string{"07:00 PM", "08:00 PM"},
			Requirements:    []string{"Warm clothes", "Blanket", "Flashlight"},
		},
		{
			ID:              10,
			Title:           "Nature Storytellers",
			Location:        "Story Garden",
			ListingDate:     "2024-05-15",
			Price:           210,
			Rating:          4.8,
			ReviewCount:     33,
			Image:           "https://images.unsplash.com/photo-1512820790803-83ca734da794",
			Description:     "Create and share stories inspired by nature!",
			Duration:        "1 hour",
			AgeRange:        "4-7 years",
			MaxParticipants: 12,
			AvailableTimes:  []string{"10:00 AM", "11:00 AM", "02:00 PM"},
			Requirements:    []string{"Imagination", "Drawing materials", "Water bottle"},
		},
	}
}
