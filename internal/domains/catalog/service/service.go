package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"naturekids/config"
	"naturekids/infras/otel"
	"naturekids/internal/domains/catalog/model"
	"naturekids/internal/domains/catalog/model/dto"
	"naturekids/internal/domains/catalog/repository"
	"naturekids/shared"
	"naturekids/shared/cache"
	"naturekids/shared/constant"
	gDto "naturekids/shared/dto"
	"naturekids/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetActivity  = "activity:get"
	cacheListActivity = "activity:list"

	errActivityNotFound = "activity not found"
)

type Catalog interface {
	// Lookup returns the activity or a NotFound failure. It may serve a copy
	// cached up to Cache.TTL ago.
	Lookup(ctx context.Context, id int64) (model.Activity, error)
	// Authoritative always reads the store and refreshes the cached copy.
	Authoritative(ctx context.Context, id int64) (model.Activity, error)
	Get(ctx context.Context, id int64) (dto.ActivityResponse, error)
	List(ctx context.Context, filter model.Filter) (dto.GetActivitiesResponse, error)
}

type serviceImpl struct {
	repo  repository.Activity
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Activity, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Lookup(ctx context.Context, id int64) (activity model.Activity, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Lookup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("activity_id", id)

	cacheKey := shared.BuildCacheKey(cacheGetActivity, id)

	if getErr := s.cache.Get(ctx, cacheKey, &activity); getErr == nil && activity.ID == id {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for activity")

		return activity, nil
	}

	if activity, err = s.load(ctx, id); err != nil {
		return model.Activity{}, err
	}

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, activity, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save activity to cache")
		}
	}()

	return activity, nil
}

func (s *serviceImpl) Authoritative(ctx context.Context, id int64) (activity model.Activity, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Authoritative")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("activity_id", id)

	if activity, err = s.load(ctx, id); err != nil {
		return model.Activity{}, err
	}

	if saveErr := s.cache.Save(ctx, shared.BuildCacheKey(cacheGetActivity, id), activity, s.cfg.Cache.TTL); saveErr != nil {
		log.Error().Err(saveErr).Int64("activityID", id).Msg("failed to refresh cached activity")
	}

	return activity, nil
}

// load reads the store and rejects missing or malformed records.
func (s *serviceImpl) load(ctx context.Context, id int64) (model.Activity, error) {
	activity, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("activityID", id).Msg("failed to get activity")

		return model.Activity{}, fmt.Errorf("failed to get activity: %w", err)
	}

	if activity.ID == 0 {
		return model.Activity{}, failure.NotFound(errActivityNotFound) // nolint:wrapcheck
	}

	if err = activity.Validate(); err != nil {
		log.Error().Err(err).Int64("activityID", id).Msg("catalog returned an invalid activity")

		return model.Activity{}, fmt.Errorf("invalid catalog record: %w", err)
	}

	return activity, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ActivityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	activity, err := s.Lookup(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(activity)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, filter model.Filter) (res dto.GetActivitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheListActivity, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for activities")

		return res, nil
	}

	models, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list activities")

		return res, fmt.Errorf("failed to list activities: %w", err)
	}

	valid := make([]model.Activity, 0, len(models))

	for _, activity := range models {
		if err := activity.Validate(); err != nil {
			log.Warn().Err(err).Int64("activityID", activity.ID).Msg("skipping invalid activity")

			continue
		}

		valid = append(valid, activity)
	}

	res.FromModels(valid)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save activities to cache")
		}
	}()

	return res, nil
}
