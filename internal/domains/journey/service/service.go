package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"naturekids/infras/otel"
	"naturekids/internal/domains/journey/model"
	"naturekids/internal/domains/journey/model/dto"
	"naturekids/internal/domains/journey/repository"
	"naturekids/internal/events"
	"naturekids/shared/constant"
	"naturekids/shared/failure"
	"naturekids/shared/metrics"
	gModel "naturekids/shared/model"
	"naturekids/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Journey interface {
	// Track opens an in-progress entry for a confirmed booking.
	Track(ctx context.Context, entry model.Entry) error
	// Complete closes the booking's entry and returns the rewards it unlocked.
	Complete(ctx context.Context, entry model.Entry) ([]model.Reward, error)
	List(ctx context.Context) (dto.GetJourneyResponse, error)
	Rewards(ctx context.Context) (dto.GetRewardsResponse, error)
}

type serviceImpl struct {
	journal   repository.Journal
	publisher events.Publisher
	otel      otel.Otel
}

func New(journal repository.Journal, publisher events.Publisher, otel otel.Otel) Journey {
	return &serviceImpl{
		journal:   journal,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) Track(ctx context.Context, entry model.Entry) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Track")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	entry.Status = model.StatusInProgress
	entry.CompletedAt = nil
	entry.Metadata = gModel.NewMetadata(entry.UserID, timezone.Now())

	if err = s.journal.Track(ctx, entry); err != nil {
		log.Error().Err(err).Str("bookingID", entry.ID).Msg("failed to track journey entry")

		return fmt.Errorf("failed to track journey entry: %w", err)
	}

	return nil
}

func (s *serviceImpl) Complete(ctx context.Context, entry model.Entry) (awarded []model.Reward, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()

	if err = s.close(ctx, entry, now); err != nil {
		return nil, err
	}

	entries, err := s.journal.ListByOwner(ctx, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journey: %w", err)
	}

	held, err := s.journal.Rewards(ctx, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	completed := model.CountCompleted(entries)

	for _, kind := range model.Due(completed, held) {
		reward, stored, awardErr := s.award(ctx, entry.UserID, kind, now)
		if awardErr != nil {
			return awarded, awardErr
		}

		if !stored {
			continue
		}

		awarded = append(awarded, reward)
		s.announce(ctx, reward, completed)
	}

	return awarded, nil
}

// close completes the entry, recording it directly when tracking at checkout
// never landed.
func (s *serviceImpl) close(ctx context.Context, entry model.Entry, now time.Time) error {
	existing, err := s.journal.Get(ctx, entry.UserID, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to get journey entry: %w", err)
	}

	if existing.ID == constant.Empty {
		entry.Status = model.StatusCompleted
		entry.CompletedAt = &now
		entry.Metadata = gModel.NewMetadata(entry.UserID, now)

		if err = s.journal.Track(ctx, entry); err != nil {
			return fmt.Errorf("failed to record journey entry: %w", err)
		}

		return nil
	}

	if _, err = s.journal.Complete(ctx, entry.UserID, entry.ID, now); err != nil {
		return fmt.Errorf("failed to complete journey entry: %w", err)
	}

	return nil
}

func (s *serviceImpl) award(ctx context.Context, userID string, kind model.RewardType, now time.Time) (model.Reward, bool, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Reward{}, false, fmt.Errorf("failed to generate reward id: %w", err)
	}

	reward := model.Reward{
		ID:       id.String(),
		UserID:   userID,
		Type:     kind,
		EarnedAt: now,
		Metadata: gModel.NewMetadata(userID, now),
	}

	stored, err := s.journal.Award(ctx, reward)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Str("reward", string(kind)).Msg("failed to award reward")

		return model.Reward{}, false, fmt.Errorf("failed to award reward: %w", err)
	}

	return reward, stored, nil
}

func (s *serviceImpl) announce(ctx context.Context, reward model.Reward, completed int) {
	log.Info().Str("userID", reward.UserID).Str("reward", string(reward.Type)).Msg("reward earned")

	go func() {
		c := context.WithoutCancel(ctx)

		metrics.IncReward(string(reward.Type))

		event := events.RewardEvent{
			RewardID:   reward.ID,
			UserID:     reward.UserID,
			RewardType: string(reward.Type),
			Completed:  completed,
			OccurredAt: reward.EarnedAt,
		}

		if err := s.publisher.Publish(c, constant.TopicRewardEarned, reward.UserID, event); err != nil {
			log.Error().Err(err).Str("rewardID", reward.ID).Msg("failed to publish reward event")
		}
	}()
}

func owner(ctx context.Context) string {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return id
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetJourneyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID := owner(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthenticated
	}

	entries, err := s.journal.ListByOwner(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list journey")

		return res, fmt.Errorf("failed to list journey: %w", err)
	}

	res.FromModels(entries)

	return res, nil
}

func (s *serviceImpl) Rewards(ctx context.Context) (res dto.GetRewardsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rewards")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID := owner(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthenticated
	}

	rewards, err := s.journal.Rewards(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list rewards")

		return res, fmt.Errorf("failed to list rewards: %w", err)
	}

	res.FromModels(rewards)

	return res, nil
}
