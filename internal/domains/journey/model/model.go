package model

import (
	"naturekids/shared/model"
	"slices"
	"time"
)

const (
	TableEntries = "user_activities"
	EntityEntry  = "journey entry"
	TableRewards = "rewards"
	EntityReward = "reward"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldStatus      = "status"
	FieldCompletedAt = "completed_at"
	FieldModifiedAt  = "modified_at"
	FieldModifiedBy  = "modified_by"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Entry follows one booked activity through a child's journey. Its id is the
// booking id.
type Entry struct {
	ID               string     `db:"id"`
	UserID           string     `db:"user_id"`
	ActivityID       int64      `db:"activity_id"`
	ActivityTitle    string     `db:"activity_title"`
	ActivityLocation string     `db:"activity_location"`
	Status           Status     `db:"status"`
	CompletedAt      *time.Time `db:"completed_at"`
	model.Metadata
}

type RewardType string

const (
	RewardFirstAdventure RewardType = "first_adventure"
	RewardTrailblazer    RewardType = "trailblazer"
	RewardNatureExplorer RewardType = "nature_explorer"
	RewardWildChampion   RewardType = "wild_champion"
)

type Reward struct {
	ID       string     `db:"id"`
	UserID   string     `db:"user_id"`
	Type     RewardType `db:"reward_type"`
	EarnedAt time.Time  `db:"earned_at"`
	model.Metadata
}

type Milestone struct {
	Completed int
	Reward    RewardType
}

// Milestones are ordered by the number of completed activities they need.
var Milestones = []Milestone{
	{Completed: 1, Reward: RewardFirstAdventure},
	{Completed: 3, Reward: RewardTrailblazer},
	{Completed: 5, Reward: RewardNatureExplorer},
	{Completed: 10, Reward: RewardWildChampion},
}

// Due lists the milestone rewards reached at completed that are not yet held.
func Due(completed int, held []Reward) []RewardType {
	var due []RewardType

	for _, m := range Milestones {
		if m.Completed > completed {
			break
		}

		owned := slices.ContainsFunc(held, func(r Reward) bool { return r.Type == m.Reward })
		if !owned {
			due = append(due, m.Reward)
		}
	}

	return due
}

func CountCompleted(entries []Entry) int {
	count := 0

	for _, e := range entries {
		if e.Status == StatusCompleted {
			count++
		}
	}

	return count
}

// Next is the first milestone not yet reached, or false past the last one.
func Next(completed int) (Milestone, bool) {
	for _, m := range Milestones {
		if m.Completed > completed {
			return m, true
		}
	}

	return Milestone{}, false
}
