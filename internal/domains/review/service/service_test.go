package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"naturekids/config"
	"naturekids/infras/otel/mocks"
	catalogMocks "naturekids/internal/domains/catalog/mocks"
	catalogModel "naturekids/internal/domains/catalog/model"
	reviewMocks "naturekids/internal/domains/review/mocks"
	"naturekids/internal/domains/review/model"
	"naturekids/internal/domains/review/model/dto"
	"naturekids/internal/domains/review/repository"
	"naturekids/internal/domains/review/service"
	eventMocks "naturekids/internal/events/mocks"
	"naturekids/shared/cache"
	"naturekids/shared/constant"
	"naturekids/shared/failure"
)

type fixture struct {
	svc       service.Review
	ledger    repository.Ledger
	catalog   *catalogMocks.MockCatalog
	cache     cache.RedisCache
	redis     *miniredis.Miniredis
	publisher *eventMocks.MockPublisher
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	srv, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), srv
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	f := &fixture{
		ledger:    repository.NewMemory(),
		catalog:   catalogMocks.NewMockCatalog(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
	}
	f.cache, f.redis = newCache(t)

	f.publisher.EXPECT().Publish(gomock.Any(), constant.TopicReviewSubmitted, gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.ledger, f.catalog, f.publisher, cfg, f.cache, mocks.NewOtel())

	return f
}

func userCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "1")

	return context.WithValue(ctx, constant.ContextKeyUsername, "testuser")
}

func TestReview_AddValidation(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.AddReviewRequest
		wantCode int
	}{
		{name: "rating 0", ctx: userCtx(), req: dto.AddReviewRequest{Rating: 0, Comment: "ok"}, wantCode: http.StatusBadRequest},
		{name: "rating 1", ctx: userCtx(), req: dto.AddReviewRequest{Rating: 1, Comment: "meh"}},
		{name: "rating 5", ctx: userCtx(), req: dto.AddReviewRequest{Rating: 5, Comment: "great"}},
		{name: "rating 6", ctx: userCtx(), req: dto.AddReviewRequest{Rating: 6, Comment: "wow"}, wantCode: http.StatusBadRequest},
		{name: "empty comment", ctx: userCtx(), req: dto.AddReviewRequest{Rating: 4}, wantCode: http.StatusBadRequest},
		{name: "anonymous", ctx: context.Background(), req: dto.AddReviewRequest{Rating: 4, Comment: "hi"}, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.catalog.EXPECT().Lookup(gomock.Any(), int64(1)).Return(catalogModel.Activity{ID: 1}, nil).AnyTimes()

			res, err := f.svc.Add(tt.ctx, 1, tt.req)

			stored, listErr := f.ledger.ListByActivity(context.Background(), 1)
			require.NoError(t, listErr)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantCode == http.StatusUnauthorized {
					assert.ErrorIs(t, err, failure.Unauthenticated)
				}

				assert.Empty(t, stored)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "testuser", res.Username)
			assert.Equal(t, tt.req.Rating, res.Rating)
			require.Len(t, stored, 1)
			assert.Equal(t, "1", stored[0].UserID)
		})
	}
}

func TestReview_AddUnknownActivity(t *testing.T) {
	f := newFixture(t)
	f.catalog.EXPECT().Lookup(gomock.Any(), int64(42)).Return(catalogModel.Activity{}, failure.NotFound("activity not found"))

	_, err := f.svc.Add(userCtx(), 42, dto.AddReviewRequest{Rating: 4, Comment: "hi"})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestReview_ListByActivityFiltersAndKeepsOrder(t *testing.T) {
	f := newFixture(t)
	f.catalog.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(catalogModel.Activity{ID: 1}, nil).AnyTimes()

	comments := []string{"first", "other-a", "second", "other-b", "third"}
	for i, comment := range comments {
		activityID := int64(1 + i%2)

		_, err := f.svc.Add(userCtx(), activityID, dto.AddReviewRequest{Rating: 5 - i%2, Comment: comment})
		require.NoError(t, err)
	}

	res, err := f.svc.ListByActivity(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, res.Reviews, 3)
	assert.Equal(t, "first", res.Reviews[0].Comment)
	assert.Equal(t, "second", res.Reviews[1].Comment)
	assert.Equal(t, "third", res.Reviews[2].Comment)
	assert.Equal(t, 3, res.Count)
	assert.InDelta(t, 5.0, res.Average, 0.0001)

	other, err := f.svc.ListByActivity(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, other.Count)
}

func TestReview_ListByActivityCacheHit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.ListByActivity(ctx, 3)
	require.NoError(t, err)
	assert.Zero(t, first.Count)

	// written behind the service's back, so only a cache miss would see it
	require.NoError(t, f.ledger.Insert(ctx, model.Review{ID: "r1", ActivityID: 3, UserID: "1", Username: "testuser", Rating: 4, Comment: "hi"}))

	cached, err := f.svc.ListByActivity(ctx, 3)
	require.NoError(t, err)
	assert.Zero(t, cached.Count)
}

func TestReview_AddIsVisibleToTheNextList(t *testing.T) {
	f := newFixture(t)
	f.catalog.EXPECT().Lookup(gomock.Any(), int64(1)).Return(catalogModel.Activity{ID: 1}, nil).AnyTimes()

	for i := range 50 {
		before, err := f.svc.ListByActivity(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, i, before.Count)

		added, err := f.svc.Add(userCtx(), 1, dto.AddReviewRequest{Rating: 5, Comment: fmt.Sprintf("visit %d", i)})
		require.NoError(t, err)

		after, err := f.svc.ListByActivity(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, i+1, after.Count)
		assert.Equal(t, added.ID, after.Reviews[i].ID, "newest review is last")
	}
}

func TestReview_LateRefillDoesNotHideNewReview(t *testing.T) {
	f := newFixture(t)
	f.catalog.EXPECT().Lookup(gomock.Any(), int64(1)).Return(catalogModel.Activity{ID: 1}, nil).AnyTimes()
	ctx := context.Background()

	stale, err := f.svc.ListByActivity(ctx, 1)
	require.NoError(t, err)

	_, err = f.svc.Add(userCtx(), 1, dto.AddReviewRequest{Rating: 4, Comment: "lovely"})
	require.NoError(t, err)

	// a reader that loaded the ledger before the add finishes its save now
	require.NoError(t, f.cache.Save(ctx, "review:list:1:0", stale, 300))

	res, err := f.svc.ListByActivity(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "lovely", res.Reviews[0].Comment)
}

func TestReview_ListWithoutCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ledger.Insert(ctx, model.Review{ID: "r1", ActivityID: 1, UserID: "1", Username: "testuser", Rating: 4, Comment: "hi"}))
	f.redis.Close()

	res, err := f.svc.ListByActivity(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestReview_LedgerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := reviewMocks.NewMockLedger(ctrl)
	redisCache, _ := newCache(t)

	ledger.EXPECT().ListByActivity(gomock.Any(), int64(1)).Return(nil, errors.New("db down"))

	svc := service.New(ledger, catalogMocks.NewMockCatalog(ctrl), eventMocks.NewMockPublisher(ctrl), &config.Config{}, redisCache, mocks.NewOtel())

	_, err := svc.ListByActivity(context.Background(), 1)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestReview_SubmissionMatchesModel(t *testing.T) {
	assert.Equal(t, model.Submission{Rating: 3, Comment: "ok"}, dto.AddReviewRequest{Rating: 3, Comment: " ok "}.ToModel())
}
