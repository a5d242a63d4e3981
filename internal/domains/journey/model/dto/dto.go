package dto

import (
	"naturekids/internal/domains/journey/model"
	"naturekids/shared/constant"
	"naturekids/shared/timezone"
)

type EntryResponse struct {
	BookingID        string `json:"booking_id"`
	ActivityID       int64  `json:"activity_id"`
	ActivityTitle    string `json:"activity_title"`
	ActivityLocation string `json:"activity_location"`
	Status           string `json:"status"`
	CompletedAt      string `json:"completed_at,omitempty"`
}

func (e *EntryResponse) FromModel(m model.Entry) {
	e.BookingID = m.ID
	e.ActivityID = m.ActivityID
	e.ActivityTitle = m.ActivityTitle
	e.ActivityLocation = m.ActivityLocation
	e.Status = string(m.Status)

	if m.CompletedAt != nil {
		e.CompletedAt = timezone.Format(*m.CompletedAt, constant.BookingDateFmt)
	}
}

type MilestoneResponse struct {
	Reward    string `json:"reward"`
	Completed int    `json:"completed"`
}

type GetJourneyResponse struct {
	Entries   []EntryResponse    `json:"entries"`
	Completed int                `json:"completed"`
	Next      *MilestoneResponse `json:"next,omitempty"`
}

func (g *GetJourneyResponse) FromModels(models []model.Entry) {
	g.Entries = make([]EntryResponse, 0, len(models))

	for _, m := range models {
		var res EntryResponse
		res.FromModel(m)
		g.Entries = append(g.Entries, res)
	}

	g.Completed = model.CountCompleted(models)

	if next, ok := model.Next(g.Completed); ok {
		g.Next = &MilestoneResponse{Reward: string(next.Reward), Completed: next.Completed}
	}
}

type RewardResponse struct {
	ID       string `json:"id"`
	Type     string `json:"reward_type"`
	EarnedAt string `json:"earned_at"`
}

func (r *RewardResponse) FromModel(m model.Reward) {
	r.ID = m.ID
	r.Type = string(m.Type)
	r.EarnedAt = timezone.Format(m.EarnedAt, constant.BookingDateFmt)
}

type GetRewardsResponse struct {
	Rewards []RewardResponse `json:"rewards"`
}

func (g *GetRewardsResponse) FromModels(models []model.Reward) {
	g.Rewards = make([]RewardResponse, 0, len(models))

	for _, m := range models {
		var res RewardResponse
		res.FromModel(m)
		g.Rewards = append(g.Rewards, res)
	}
}
