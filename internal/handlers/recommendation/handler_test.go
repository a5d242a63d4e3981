package recommendation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"naturekids/infras/otel/mocks"
	recommendationMocks "naturekids/internal/domains/recommendation/mocks"
	"naturekids/internal/domains/recommendation/model/dto"
	"naturekids/internal/handlers/recommendation"
)

func setup(t *testing.T) (*recommendationMocks.MockRecommendation, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := recommendationMocks.NewMockRecommendation(ctrl)

	handler := recommendation.New(service, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body)))

	return rec
}

func TestRecommend(t *testing.T) {
	service, router := setup(t)
	service.EXPECT().
		Recommend(gomock.Any(), dto.RecommendRequest{ChildAge: 8, Location: "forest", Interest: "birds"}).
		Return(dto.RecommendResponse{
			Recommendations: []dto.SuggestionResponse{{Title: "Bird Watching", Description: "Spot birds"}},
			Source:          "llm",
		})

	rec := post(router, `{"child_age":8,"location":"forest","interest":"birds"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"source":"llm"`)
}

func TestRecommend_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "age zero", body: `{"child_age":0,"location":"forest","interest":"birds"}`},
		{name: "blank interest", body: `{"child_age":8,"location":"forest","interest":" "}`},
		{name: "malformed", body: `[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := setup(t)

			assert.Equal(t, http.StatusBadRequest, post(router, tt.body).Code)
		})
	}
}
