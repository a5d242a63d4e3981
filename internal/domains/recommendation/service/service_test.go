package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"naturekids/infras/llm"
	llmMocks "naturekids/infras/llm/mocks"
	"naturekids/infras/otel/mocks"
	"naturekids/internal/domains/recommendation/model/dto"
	"naturekids/internal/domains/recommendation/service"
)

func TestRecommendation_Recommend(t *testing.T) {
	req := dto.RecommendRequest{ChildAge: 6, Location: "beach", Interest: "shells"}
	prompt := req.ToModel().Prompt()

	tests := []struct {
		name       string
		setupMock  func(g *llmMocks.MockGenerator)
		wantSource string
		wantFirst  string
		wantLen    int
	}{
		{
			name: "generated",
			setupMock: func(g *llmMocks.MockGenerator) {
				g.EXPECT().Generate(gomock.Any(), prompt).
					Return("Shell Sorting: Group shells by shape.\nTide Pool Peek: Spot crabs.\nSand Art: Draw with sticks.", nil)
			},
			wantSource: "llm",
			wantFirst:  "Shell Sorting",
			wantLen:    3,
		},
		{
			name: "not configured",
			setupMock: func(g *llmMocks.MockGenerator) {
				g.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", llm.ErrNotConfigured)
			},
			wantSource: "fallback",
			wantFirst:  "Nature Scavenger Hunt",
			wantLen:    3,
		},
		{
			name: "transport failure",
			setupMock: func(g *llmMocks.MockGenerator) {
				g.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.New("503"))
			},
			wantSource: "fallback",
			wantFirst:  "Nature Scavenger Hunt",
			wantLen:    3,
		},
		{
			name: "unusable text",
			setupMock: func(g *llmMocks.MockGenerator) {
				g.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("\n\n", nil)
			},
			wantSource: "fallback",
			wantFirst:  "Nature Scavenger Hunt",
			wantLen:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			generator := llmMocks.NewMockGenerator(ctrl)
			tt.setupMock(generator)

			res := service.New(generator, mocks.NewOtel()).Recommend(context.Background(), req)

			assert.Equal(t, tt.wantSource, res.Source)
			require.Len(t, res.Recommendations, tt.wantLen)
			assert.Equal(t, tt.wantFirst, res.Recommendations[0].Title)
		})
	}
}
