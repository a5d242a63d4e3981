package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"naturekids/config"
	"naturekids/infras/otel/mocks"
	catalogMocks "naturekids/internal/domains/catalog/mocks"
	"naturekids/internal/domains/catalog/model"
	"naturekids/internal/domains/catalog/service"
	cacheMocks "naturekids/shared/cache/mocks"
	"naturekids/shared/failure"
)

var errCacheMiss = errors.New("cache miss")

func scavengerHunt() model.Activity {
	return model.Activity{
		ID:              1,
		Title:           "Nature Scavenger Hunt",
		Location:        "Central Park",
		Price:           350,
		Rating:          4.8,
		MaxParticipants: 15,
		AvailableTimes:  []string{"09:00 AM", "11:00 AM", "02:00 PM"},
	}
}

func TestCatalogService_Lookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockActivity(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		id        int64
		setupMock func()
		wantCode  int
		wantTitle string
	}{
		{
			name: "cache hit",
			id:   1,
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), "activity:get:1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, dest any) error {
						*dest.(*model.Activity) = scavengerHunt()

						return nil
					})
			},
			wantTitle: "Nature Scavenger Hunt",
		},
		{
			name: "cache miss reads repository",
			id:   1,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(scavengerHunt(), nil)
				mockCache.EXPECT().Save(gomock.Any(), "activity:get:1", gomock.Any(), 300).Return(nil).AnyTimes()
			},
			wantTitle: "Nature Scavenger Hunt",
		},
		{
			name: "unknown activity",
			id:   42,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				mockRepo.EXPECT().Get(gomock.Any(), int64(42)).Return(model.Activity{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "invalid record",
			id:   7,
			setupMock: func() {
				broken := scavengerHunt()
				broken.ID = 7
				broken.AvailableTimes = nil

				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				mockRepo.EXPECT().Get(gomock.Any(), int64(7)).Return(broken, nil)
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "repository error",
			id:   1,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(model.Activity{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			activity, err := svc.Lookup(context.Background(), tt.id)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, activity.Title)
		})
	}
}

func TestCatalogService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockActivity(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
	mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(scavengerHunt(), nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(350), res.Price)
	assert.Equal(t, []string{"09:00 AM", "11:00 AM", "02:00 PM"}, res.AvailableTimes)
}

func TestCatalogService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockActivity(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	filter := model.Filter{MaxPrice: 500}

	t.Run("skips invalid records", func(t *testing.T) {
		broken := scavengerHunt()
		broken.ID = 2
		broken.Price = 0

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		mockRepo.EXPECT().List(gomock.Any(), filter).Return([]model.Activity{scavengerHunt(), broken}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.List(context.Background(), filter)
		require.NoError(t, err)
		require.Equal(t, 1, res.TotalData)
		assert.Equal(t, int64(1), res.Activities[0].ID)
	})

	t.Run("repository error", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		mockRepo.EXPECT().List(gomock.Any(), filter).Return(nil, errors.New("database error"))

		_, err := svc.List(context.Background(), filter)
		assert.Error(t, err)
	})
}

func TestCatalogService_AuthoritativeSkipsCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := catalogMocks.NewMockActivity(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	repriced := scavengerHunt()
	repriced.Price = 400

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(repriced, nil)
	mockCache.EXPECT().Save(gomock.Any(), "activity:get:1", repriced, 300).Return(nil)

	activity, err := svc.Authoritative(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(400), activity.Price)
}

func TestCatalogService_AuthoritativeFailures(t *testing.T) {
	tests := []struct {
		name     string
		stored   model.Activity
		err      error
		wantCode int
	}{
		{name: "missing", stored: model.Activity{}, wantCode: http.StatusNotFound},
		{name: "store down", err: errors.New("db down"), wantCode: http.StatusInternalServerError},
		{name: "malformed", stored: model.Activity{ID: 1, Title: "x"}, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := catalogMocks.NewMockActivity(ctrl)
			mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(tt.stored, tt.err)

			svc := service.New(mockRepo, &config.Config{}, cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

			_, err := svc.Authoritative(context.Background(), 1)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
