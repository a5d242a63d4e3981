package llm

//go:generate go run go.uber.org/mock/mockgen -source=./llm.go -destination=./mocks/llm_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"

	"naturekids/config"
	"naturekids/infras/otel"
	"naturekids/shared/constant"
)

const (
	roleUser        = "user"
	topK            = 40
	maxOutputTokens = 1000
)

var (
	ErrNotConfigured = errors.New("text generator is not configured")
	ErrEmptyResponse = errors.New("text generator returned no candidates")
)

// Generator produces free text for a single-turn prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (text string, err error)
}

type geminiImpl struct {
	service *generativelanguage.Service
	model   string
	timeout time.Duration
	otel    otel.Otel
}

type disabledImpl struct{}

func (disabledImpl) Generate(_ context.Context, _ string) (string, error) {
	return constant.Empty, ErrNotConfigured
}

// New returns a Gemini backed generator, or one that always fails with
// ErrNotConfigured when no API key is set.
func New(config *config.Config, otel otel.Otel) Generator {
	llmConfig := config.External.LLM
	if llmConfig.APIKey == "" {
		log.Warn().Msg("LLM API key not configured, recommendations will use the fallback list")

		return disabledImpl{}
	}

	service, err := generativelanguage.NewService(
		context.Background(),
		option.WithAPIKey(llmConfig.APIKey),
		option.WithEndpoint(llmConfig.Endpoint),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create generative language client")

		return disabledImpl{}
	}

	return &geminiImpl{
		service: service,
		model:   llmConfig.Model,
		timeout: time.Duration(llmConfig.TimeoutSeconds) * time.Second,
		otel:    otel,
	}
}

func (g *geminiImpl) Generate(ctx context.Context, prompt string) (text string, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Generate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("model", g.model)

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	request := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{
				Role:  roleUser,
				Parts: []*generativelanguage.Part{{Text: prompt}},
			},
		},
		GenerationConfig: &generativelanguage.GenerationConfig{
			TopK:            topK,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	response, err := g.service.Models.GenerateContent("models/"+g.model, request).Context(ctx).Do()
	if err != nil {
		log.Error().Err(err).Str("model", g.model).Msg("failed to generate content")

		return constant.Empty, fmt.Errorf("failed to generate content: %w", err)
	}

	for _, candidate := range response.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}

		var builder strings.Builder
		for _, part := range candidate.Content.Parts {
			if part != nil {
				builder.WriteString(part.Text)
			}
		}

		if builder.Len() > 0 {
			return builder.String(), nil
		}
	}

	return constant.Empty, ErrEmptyResponse
}
