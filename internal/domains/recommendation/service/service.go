package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"naturekids/infras/llm"
	"naturekids/infras/otel"
	"naturekids/internal/domains/recommendation/model"
	"naturekids/internal/domains/recommendation/model/dto"
	"naturekids/shared/constant"
	"naturekids/shared/metrics"

	"github.com/rs/zerolog/log"
)

type Recommendation interface {
	// Recommend never fails; any generator problem yields the fallback list.
	Recommend(ctx context.Context, req dto.RecommendRequest) dto.RecommendResponse
}

type serviceImpl struct {
	generator llm.Generator
	otel      otel.Otel
}

func New(generator llm.Generator, otel otel.Otel) Recommendation {
	return &serviceImpl{
		generator: generator,
		otel:      otel,
	}
}

func (s *serviceImpl) Recommend(ctx context.Context, req dto.RecommendRequest) (res dto.RecommendResponse) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Recommend")
	defer scope.End()

	suggestions, source := s.suggest(ctx, req.ToModel())

	scope.SetAttribute("source", source)
	metrics.IncRecommendation(source)

	res.FromModels(suggestions, source)

	return res
}

func (s *serviceImpl) suggest(ctx context.Context, prefs model.Preferences) ([]model.Suggestion, string) {
	text, err := s.generator.Generate(ctx, prefs.Prompt())
	if err != nil {
		log.Warn().Err(err).Msg("using fallback recommendations")

		return model.Fallback(), model.SourceFallback
	}

	suggestions := model.ParseSuggestions(text)
	if len(suggestions) == 0 {
		log.Warn().Msg("generator returned no usable suggestions, using fallback")

		return model.Fallback(), model.SourceFallback
	}

	return suggestions, model.SourceLLM
}
