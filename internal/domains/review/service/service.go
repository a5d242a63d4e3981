package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"naturekids/config"
	"naturekids/infras/otel"
	catalogService "naturekids/internal/domains/catalog/service"
	"naturekids/internal/domains/review/model"
	"naturekids/internal/domains/review/model/dto"
	"naturekids/internal/domains/review/repository"
	"naturekids/internal/events"
	"naturekids/shared"
	"naturekids/shared/cache"
	"naturekids/shared/constant"
	"naturekids/shared/failure"
	"naturekids/shared/metrics"
	gModel "naturekids/shared/model"
	"naturekids/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheListReview           = "review:list"
	cacheListReviewGeneration = "review:list:gen"

	// Must outlive Cache.TTL so a reset counter never revives an old list.
	generationTTLSeconds = 7 * 24 * 60 * 60
)

type Review interface {
	Add(ctx context.Context, activityID int64, req dto.AddReviewRequest) (dto.ReviewResponse, error)
	ListByActivity(ctx context.Context, activityID int64) (dto.GetReviewsResponse, error)
}

type serviceImpl struct {
	ledger    repository.Ledger
	catalog   catalogService.Catalog
	publisher events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	ledger repository.Ledger,
	catalog catalogService.Catalog,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Review {
	return &serviceImpl{
		ledger:    ledger,
		catalog:   catalog,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Add(ctx context.Context, activityID int64, req dto.AddReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	username, _ := ctx.Value(constant.ContextKeyUsername).(string)

	if userID == "" || username == "" {
		return res, failure.Unauthenticated
	}

	submission := req.ToModel()
	if err = submission.Validate(); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if _, err = s.catalog.Lookup(ctx, activityID); err != nil {
		return res, err // nolint:wrapcheck
	}

	id, err := uuid.NewV7()
	if err != nil {
		return res, fmt.Errorf("failed to generate review id: %w", err)
	}

	review := model.Review{
		ID:         id.String(),
		ActivityID: activityID,
		UserID:     userID,
		Username:   username,
		Rating:     submission.Rating,
		Comment:    submission.Comment,
		Metadata:   gModel.NewMetadata(username, timezone.Now()),
	}

	if err = s.ledger.Insert(ctx, review); err != nil {
		log.Error().Err(err).Int64("activityID", activityID).Msg("failed to add review")

		return res, fmt.Errorf("failed to add review: %w", err)
	}

	res.FromModel(review)

	// Lists cached under the previous generation are never read again, including
	// one a concurrent reader is still about to save.
	if _, incErr := s.cache.Increment(ctx, generationKey(activityID), generationTTLSeconds); incErr != nil {
		log.Error().Err(incErr).Int64("activityID", activityID).Msg("failed to invalidate cached reviews")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		metrics.IncReview()

		event := events.ReviewEvent{
			ReviewID:   review.ID,
			ActivityID: review.ActivityID,
			UserID:     review.UserID,
			Username:   review.Username,
			Rating:     review.Rating,
			OccurredAt: review.CreatedAt,
		}

		if err := s.publisher.Publish(c, constant.TopicReviewSubmitted, review.ID, event); err != nil {
			log.Error().Err(err).Str("reviewID", review.ID).Msg("failed to publish review event")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListByActivity(ctx context.Context, activityID int64) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByActivity")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	// The generation is read before the ledger so a list is never saved under a
	// generation newer than its contents.
	generation, genErr := s.generation(ctx, activityID)
	if genErr != nil {
		log.Warn().Err(genErr).Int64("activityID", activityID).Msg("review cache unavailable, reading ledger")
	}

	cacheKey := shared.BuildCacheKey(cacheListReview, activityID, generation)

	if genErr == nil {
		if getErr := s.cache.Get(ctx, cacheKey, &res); getErr == nil {
			log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

			return res, nil
		}
	}

	reviews, err := s.ledger.ListByActivity(ctx, activityID)
	if err != nil {
		log.Error().Err(err).Int64("activityID", activityID).Msg("failed to list reviews")

		return res, fmt.Errorf("failed to list reviews: %w", err)
	}

	res.FromModels(reviews)

	if genErr == nil {
		if saveErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); saveErr != nil {
			log.Error().Err(saveErr).Msg("failed to save reviews to cache")
		}
	}

	return res, nil
}

func generationKey(activityID int64) string {
	return shared.BuildCacheKey(cacheListReviewGeneration, activityID)
}

// generation is "0" until the first review for the activity lands.
func (s *serviceImpl) generation(ctx context.Context, activityID int64) (string, error) {
	var generation string

	err := s.cache.Get(ctx, generationKey(activityID), &generation)
	if errors.Is(err, cache.Nil) {
		return "0", nil
	}

	return generation, err //nolint:wrapcheck
}
